package sim

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"gridraid/internal/domain/battle"
	"gridraid/internal/domain/grid"
)

var (
	ErrUnknownUnit = errors.New("unknown unit")
	ErrIllegalMove = errors.New("illegal move")
	ErrNotAdjacent = errors.New("target not adjacent")
)

const attackDamage = 1

// Engine is an in-process host simulation implementing ports.Battlefield.
// Execute applies the agent's command, then lets the hostile footman act and
// advances the turn counter. All mutation happens under one lock; snapshots
// are deep copies.
type Engine struct {
	mu          sync.Mutex
	turn        int
	bounds      grid.Bounds
	units       map[battle.UnitID]*battle.Unit
	order       []battle.UnitID
	obstacles   []grid.Cell
	obstacleSet map[grid.Cell]struct{}

	hostileID  battle.UnitID
	hasHostile bool
	brain      hostileBrain
}

// NewEngine builds a battlefield from a validated scenario. The hostile unit
// is the footman on the townhall owner's side; it gets the scenario's patrol
// route as its behavior.
func NewEngine(sc battle.Scenario) (*Engine, error) {
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	e := &Engine{
		bounds:      sc.Bounds(),
		units:       make(map[battle.UnitID]*battle.Unit, len(sc.Units)),
		obstacles:   append([]grid.Cell(nil), sc.Obstacles...),
		obstacleSet: make(map[grid.Cell]struct{}, len(sc.Obstacles)),
	}
	for _, c := range sc.Obstacles {
		e.obstacleSet[c] = struct{}{}
	}

	defender := -1
	for i, su := range sc.Units {
		hp := su.HP
		if hp <= 0 {
			hp = 1
		}
		id := battle.UnitID(i + 1)
		e.units[id] = &battle.Unit{ID: id, Player: su.Player, Name: su.Name, Pos: su.Pos, HP: hp}
		e.order = append(e.order, id)
		if (battle.Unit{Name: su.Name}).IsNamed(battle.UnitTownhall) {
			defender = su.Player
		}
	}
	if defender >= 0 {
		for _, id := range e.order {
			u := e.units[id]
			if u.Player == defender && u.IsNamed(battle.UnitFootman) {
				e.hostileID = id
				e.hasHostile = true
				e.brain = newHostileBrain(e, id, sc.Patrol)
				break
			}
		}
	}
	return e, nil
}

func (e *Engine) Snapshot(_ context.Context) (battle.Snapshot, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	snap := battle.Snapshot{
		Turn:      e.turn,
		Bounds:    e.bounds,
		Obstacles: append([]grid.Cell(nil), e.obstacles...),
	}
	for _, id := range e.order {
		if u, ok := e.units[id]; ok {
			snap.Units = append(snap.Units, *u)
		}
	}
	return snap, nil
}

func (e *Engine) Execute(_ context.Context, cmd battle.Command) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch cmd.Kind {
	case battle.CommandMove:
		actor, ok := e.units[cmd.Actor]
		if !ok {
			return fmt.Errorf("%w: %d", ErrUnknownUnit, cmd.Actor)
		}
		if !cmd.Dir.Valid() {
			return fmt.Errorf("%w: bad direction %q", ErrIllegalMove, cmd.Dir)
		}
		dest := actor.Pos.Step(cmd.Dir)
		if !e.walkable(dest) {
			return fmt.Errorf("%w: (%d,%d) is not walkable", ErrIllegalMove, dest.X, dest.Y)
		}
		actor.Pos = dest
	case battle.CommandAttack:
		actor, ok := e.units[cmd.Actor]
		if !ok {
			return fmt.Errorf("%w: %d", ErrUnknownUnit, cmd.Actor)
		}
		target, ok := e.units[cmd.Target]
		if !ok {
			return fmt.Errorf("%w: %d", ErrUnknownUnit, cmd.Target)
		}
		if grid.Chebyshev(actor.Pos, target.Pos) > 1 {
			return fmt.Errorf("%w: %d -> %d", ErrNotAdjacent, cmd.Actor, cmd.Target)
		}
		target.HP -= attackDamage
		if target.HP <= 0 {
			delete(e.units, cmd.Target)
		}
	case battle.CommandHold:
	default:
		return fmt.Errorf("%w: unknown command kind %q", ErrIllegalMove, cmd.Kind)
	}

	e.advanceHostile()
	e.turn++
	return nil
}

// walkable reports whether a cell can be entered: inside the map, not a
// static obstacle, not occupied by a unit.
func (e *Engine) walkable(c grid.Cell) bool {
	if !e.bounds.Contains(c) {
		return false
	}
	if _, blocked := e.obstacleSet[c]; blocked {
		return false
	}
	for _, u := range e.units {
		if u.Pos == c {
			return false
		}
	}
	return true
}

func (e *Engine) advanceHostile() {
	if !e.hasHostile {
		return
	}
	if _, alive := e.units[e.hostileID]; !alive {
		e.hasHostile = false
		return
	}
	e.brain.tick()
}

// intruder is the first footman on any side other than the hostile's.
func (e *Engine) intruder() (*battle.Unit, bool) {
	hostile, ok := e.units[e.hostileID]
	if !ok {
		return nil, false
	}
	for _, id := range e.order {
		u, alive := e.units[id]
		if alive && u.Player != hostile.Player && u.IsNamed(battle.UnitFootman) {
			return u, true
		}
	}
	return nil, false
}

// stepToward moves unit one legal cell toward dest, preferring the diagonal
// sign-pattern step, then the horizontal, then the vertical component.
func (e *Engine) stepToward(id battle.UnitID, dest grid.Cell) bool {
	u, ok := e.units[id]
	if !ok {
		return false
	}
	dx := sign(dest.X - u.Pos.X)
	dy := sign(dest.Y - u.Pos.Y)
	candidates := []grid.Cell{
		{X: u.Pos.X + dx, Y: u.Pos.Y + dy},
		{X: u.Pos.X + dx, Y: u.Pos.Y},
		{X: u.Pos.X, Y: u.Pos.Y + dy},
	}
	for _, c := range candidates {
		if c == u.Pos {
			continue
		}
		if e.walkable(c) {
			u.Pos = c
			return true
		}
	}
	return false
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
