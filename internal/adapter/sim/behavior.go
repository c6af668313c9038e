package sim

import (
	bt "github.com/joeycumines/go-behaviortree"

	"gridraid/internal/domain/battle"
	"gridraid/internal/domain/grid"
)

// interceptRadius is the Chebyshev range at which the hostile footman breaks
// off its patrol and moves to block the intruder.
const interceptRadius = 3

// hostileBrain runs the hostile footman. The tree is ticked once per turn
// while the engine lock is held; the leaves mutate engine state directly.
type hostileBrain struct {
	tree bt.Node
}

func newHostileBrain(e *Engine, id battle.UnitID, patrol []grid.Cell) hostileBrain {
	s := &hostileState{engine: e, id: id, patrol: append([]grid.Cell(nil), patrol...)}
	return hostileBrain{tree: bt.New(
		bt.Selector,
		bt.New(s.interceptTick),
		bt.New(s.patrolTick),
	)}
}

func (h hostileBrain) tick() {
	if h.tree != nil {
		_, _ = h.tree.Tick()
	}
}

type hostileState struct {
	engine *Engine
	id     battle.UnitID
	patrol []grid.Cell
	idx    int
}

func (s *hostileState) interceptTick([]bt.Node) (bt.Status, error) {
	e := s.engine
	hostile, ok := e.units[s.id]
	if !ok {
		return bt.Failure, nil
	}
	intr, ok := e.intruder()
	if !ok || grid.Chebyshev(hostile.Pos, intr.Pos) > interceptRadius {
		return bt.Failure, nil
	}
	if e.stepToward(s.id, intr.Pos) {
		return bt.Success, nil
	}
	return bt.Failure, nil
}

func (s *hostileState) patrolTick([]bt.Node) (bt.Status, error) {
	if len(s.patrol) == 0 {
		return bt.Success, nil
	}
	e := s.engine
	hostile, ok := e.units[s.id]
	if !ok {
		return bt.Failure, nil
	}
	if hostile.Pos == s.patrol[s.idx] {
		s.idx = (s.idx + 1) % len(s.patrol)
	}
	e.stepToward(s.id, s.patrol[s.idx])
	return bt.Success, nil
}
