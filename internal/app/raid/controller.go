package raid

import (
	"fmt"
	"time"

	"gridraid/internal/domain/battle"
	"gridraid/internal/domain/grid"
	"gridraid/internal/domain/nav"
)

type Phase string

const (
	PhaseAwaitingPath Phase = "awaiting_path"
	PhaseMoving       Phase = "moving"
	PhaseEngaging     Phase = "engaging"
	PhaseDone         Phase = "done"
	PhaseFailed       Phase = "failed"
)

type Config struct {
	Player int
	Now    func() time.Time
}

// Controller drives one friendly footman toward the enemy townhall, one
// command per turn. It owns the active path between turns; nothing else
// crosses turn boundaries.
type Controller struct {
	player     int
	unitID     battle.UnitID
	goalID     battle.UnitID
	hostileID  battle.UnitID
	hasHostile bool

	// planned is the full path from the most recent planning call. The
	// replanning check runs over all of it, consumed waypoints included;
	// cursor marks the next waypoint not yet handed out.
	planned grid.Path
	cursor  int
	next    *grid.Cell

	phase    Phase
	turns    int
	replans  int
	planTime time.Duration
	execTime time.Duration
	now      func() time.Time
}

// Decision is the outcome of one turn. Command is meaningful only when Act is
// set; a turn with a Diagnostic contributes no action but does not stop the
// run. Terminal carries the final Summary.
type Decision struct {
	Command    battle.Command
	Act        bool
	Replanned  bool
	Diagnostic string
	Terminal   bool
	Summary    *Summary
}

type Summary struct {
	Turns    int           `json:"turns"`
	Replans  int           `json:"replans"`
	PlanTime time.Duration `json:"plan_time"`
	ExecTime time.Duration `json:"exec_time"`
	Total    time.Duration `json:"total"`
}

// NewController resolves the controlled footman, the enemy townhall, and the
// enemy footman (if any) from the first snapshot, then computes the initial
// path. Any resolution failure or an unreachable townhall aborts before the
// first turn; no-path surfaces as a wrapped nav.ErrNoPath rather than halting
// the process.
func NewController(snap battle.Snapshot, cfg Config) (*Controller, error) {
	c := &Controller{
		player: cfg.Player,
		phase:  PhaseAwaitingPath,
		now:    cfg.Now,
	}
	if c.now == nil {
		c.now = time.Now
	}

	ids := snap.UnitIDs(cfg.Player)
	if len(ids) == 0 {
		return nil, ErrNoUnits
	}
	c.unitID = ids[0]
	unit, _ := snap.Unit(c.unitID)
	if unit.Name != battle.UnitFootman {
		return nil, ErrNotFootman
	}

	enemy := -1
	for _, p := range snap.Players() {
		if p != cfg.Player {
			enemy = p
			break
		}
	}
	if enemy == -1 {
		return nil, ErrNoEnemyPlayer
	}

	enemyIDs := snap.UnitIDs(enemy)
	if len(enemyIDs) == 0 {
		return nil, ErrNoEnemyUnits
	}
	goalFound := false
	for _, id := range enemyIDs {
		u, _ := snap.Unit(id)
		switch {
		case u.IsNamed(battle.UnitTownhall):
			c.goalID = id
			goalFound = true
		case u.IsNamed(battle.UnitFootman):
			c.hostileID = id
			c.hasHostile = true
		}
	}
	if !goalFound {
		return nil, ErrNoGoal
	}

	t0 := c.now()
	err := c.plan(snap, unit.Pos)
	c.planTime += c.now().Sub(t0)
	if err != nil {
		c.phase = PhaseFailed
		return nil, fmt.Errorf("initial plan: %w", err)
	}
	c.phase = PhaseMoving
	return c, nil
}

func (c *Controller) Phase() Phase { return c.phase }

func (c *Controller) UnitID() battle.UnitID { return c.unitID }

func (c *Controller) GoalID() battle.UnitID { return c.goalID }

// Remaining returns the not-yet-consumed tail of the active path.
func (c *Controller) Remaining() grid.Path {
	out := make(grid.Path, len(c.planned)-c.cursor)
	copy(out, c.planned[c.cursor:])
	return out
}

func (c *Controller) Summary() Summary {
	return Summary{
		Turns:    c.turns,
		Replans:  c.replans,
		PlanTime: c.planTime,
		ExecTime: c.execTime,
		Total:    c.planTime + c.execTime,
	}
}

// Step consumes one snapshot and produces one decision. Replanning happens
// first, then waypoint advancement, then emission; a destroyed townhall ends
// the run cleanly before anything else.
func (c *Controller) Step(snap battle.Snapshot) (Decision, error) {
	if c.phase == PhaseDone || c.phase == PhaseFailed {
		return Decision{}, ErrRunOver
	}
	start := c.now()
	var planDur time.Duration

	goal, goalAlive := snap.Unit(c.goalID)
	if !goalAlive {
		c.phase = PhaseDone
		s := c.Summary()
		return Decision{Terminal: true, Summary: &s}, nil
	}

	agent, ok := snap.Unit(c.unitID)
	if !ok {
		c.phase = PhaseFailed
		return Decision{}, ErrUnitLost
	}

	d := Decision{}
	if c.shouldReplan(snap) {
		t0 := c.now()
		err := c.plan(snap, agent.Pos)
		planDur = c.now().Sub(t0)
		c.planTime += planDur
		if err != nil {
			c.phase = PhaseFailed
			return Decision{}, fmt.Errorf("replan: %w", err)
		}
		c.replans++
		d.Replanned = true
	}

	if c.cursor < len(c.planned) && (c.next == nil || agent.Pos == *c.next) {
		wp := c.planned[c.cursor]
		c.cursor++
		c.next = &wp
	}

	if c.next != nil && agent.Pos != *c.next {
		dir, adjacent := grid.DirectionBetween(agent.Pos, *c.next)
		if !adjacent {
			d.Diagnostic = fmt.Sprintf("invalid path: waypoint (%d,%d) not one step from (%d,%d)",
				c.next.X, c.next.Y, agent.Pos.X, agent.Pos.Y)
		} else {
			d.Command = battle.Move(c.unitID, dir)
			d.Act = true
			c.phase = PhaseMoving
		}
	} else {
		if grid.Chebyshev(agent.Pos, goal.Pos) > 1 {
			d.Diagnostic = "invalid plan: cannot attack the townhall from here"
		} else {
			d.Command = battle.Attack(c.unitID, c.goalID)
			d.Act = true
			c.phase = PhaseEngaging
		}
	}

	c.turns++
	c.execTime += c.now().Sub(start) - planDur
	return d, nil
}

// shouldReplan fires when the hostile footman stands anywhere on the full
// original path, including waypoints the agent already passed. The coarse
// check over the whole planned path rather than the remaining suffix is kept
// on purpose; it can trigger a spurious replan behind the agent, and
// downstream behavior depends on exactly that.
func (c *Controller) shouldReplan(snap battle.Snapshot) bool {
	if !c.hasHostile {
		return false
	}
	hostile, alive := snap.Unit(c.hostileID)
	if !alive {
		c.hasHostile = false
		return false
	}
	return c.planned.Contains(hostile.Pos)
}

// plan replaces the active path wholesale with a fresh search from the live
// position. The in-flight waypoint is deliberately kept: a move already
// underway completes before the new path takes over.
func (c *Controller) plan(snap battle.Snapshot, from grid.Cell) error {
	goal, ok := snap.Unit(c.goalID)
	if !ok {
		return ErrNoGoal
	}
	q := nav.Query{
		Start:   from,
		Goal:    goal.Pos,
		Bounds:  snap.Bounds,
		Blocked: snap.ObstacleSet(),
	}
	if c.hasHostile {
		if hostile, alive := snap.Unit(c.hostileID); alive {
			pos := hostile.Pos
			q.Avoid = &pos
		}
	}
	path, err := nav.Search(q)
	if err != nil {
		return err
	}
	c.planned = path
	c.cursor = 0
	return nil
}
