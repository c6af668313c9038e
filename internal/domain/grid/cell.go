package grid

// Cell is a single map position. Equality is coordinate equality, so Cell
// values are usable as map keys.
type Cell struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Chebyshev returns max(|dx|,|dy|), the number of 8-directional unit steps
// between two cells on an unobstructed map.
func Chebyshev(a, b Cell) int {
	return max(abs(a.X-b.X), abs(a.Y-b.Y))
}

// Adjacent reports whether o is one 8-directional step away from c.
func (c Cell) Adjacent(o Cell) bool {
	return Chebyshev(c, o) == 1
}

type Bounds struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

func (b Bounds) Contains(c Cell) bool {
	return c.X >= 0 && c.X < b.Width && c.Y >= 0 && c.Y < b.Height
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
