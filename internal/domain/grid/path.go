package grid

// Path is an ordered sequence of cells in movement order: the first entry is
// the first move away from the start, the last entry is the cell adjacent to
// the goal. Start and goal themselves are never part of a Path.
type Path []Cell

func (p Path) Contains(c Cell) bool {
	for _, pc := range p {
		if pc == c {
			return true
		}
	}
	return false
}
