package grid

// Direction is one of the eight compass moves. The y axis grows southward:
// y=0 is the top row, so North decrements y.
type Direction string

const (
	North     Direction = "north"
	NorthEast Direction = "northeast"
	East      Direction = "east"
	SouthEast Direction = "southeast"
	South     Direction = "south"
	SouthWest Direction = "southwest"
	West      Direction = "west"
	NorthWest Direction = "northwest"
)

var directionOffsets = map[Direction][2]int{
	North:     {0, -1},
	NorthEast: {1, -1},
	East:      {1, 0},
	SouthEast: {1, 1},
	South:     {0, 1},
	SouthWest: {-1, 1},
	West:      {-1, 0},
	NorthWest: {-1, -1},
}

func (d Direction) Offset() (dx, dy int) {
	o := directionOffsets[d]
	return o[0], o[1]
}

func (d Direction) Valid() bool {
	_, ok := directionOffsets[d]
	return ok
}

// Step returns the cell reached by moving one step from c in direction d.
func (c Cell) Step(d Direction) Cell {
	dx, dy := d.Offset()
	return Cell{X: c.X + dx, Y: c.Y + dy}
}

// DirectionBetween maps the sign pattern of (to - from) to a compass move.
// It reports false when the cells coincide or are not 8-adjacent; a waypoint
// more than one step away is a broken plan, not a longer move.
func DirectionBetween(from, to Cell) (Direction, bool) {
	dx := to.X - from.X
	dy := to.Y - from.Y
	if abs(dx) > 1 || abs(dy) > 1 || (dx == 0 && dy == 0) {
		return "", false
	}
	switch {
	case dx == 1 && dy == 1:
		return SouthEast, true
	case dx == 1 && dy == 0:
		return East, true
	case dx == 1 && dy == -1:
		return NorthEast, true
	case dx == 0 && dy == 1:
		return South, true
	case dx == 0 && dy == -1:
		return North, true
	case dx == -1 && dy == 1:
		return SouthWest, true
	case dx == -1 && dy == 0:
		return West, true
	default:
		return NorthWest, true
	}
}
