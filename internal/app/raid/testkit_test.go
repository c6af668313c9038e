package raid

import (
	"time"

	"gridraid/internal/domain/battle"
	"gridraid/internal/domain/grid"
)

const (
	agentID   battle.UnitID = 1
	goalID    battle.UnitID = 2
	hostileID battle.UnitID = 3
)

// fieldBuilder assembles hand-placed snapshots for controller tests.
type fieldBuilder struct {
	bounds    grid.Bounds
	units     []battle.Unit
	obstacles []grid.Cell
}

func newField(width, height int) *fieldBuilder {
	return &fieldBuilder{bounds: grid.Bounds{Width: width, Height: height}}
}

func (b *fieldBuilder) footman(pos grid.Cell) *fieldBuilder {
	b.units = append(b.units, battle.Unit{ID: agentID, Player: 0, Name: battle.UnitFootman, Pos: pos, HP: 10})
	return b
}

func (b *fieldBuilder) townhall(pos grid.Cell, hp int) *fieldBuilder {
	b.units = append(b.units, battle.Unit{ID: goalID, Player: 1, Name: battle.UnitTownhall, Pos: pos, HP: hp})
	return b
}

func (b *fieldBuilder) hostile(pos grid.Cell) *fieldBuilder {
	b.units = append(b.units, battle.Unit{ID: hostileID, Player: 1, Name: battle.UnitFootman, Pos: pos, HP: 10})
	return b
}

func (b *fieldBuilder) unit(u battle.Unit) *fieldBuilder {
	b.units = append(b.units, u)
	return b
}

func (b *fieldBuilder) walls(cells ...grid.Cell) *fieldBuilder {
	b.obstacles = append(b.obstacles, cells...)
	return b
}

func (b *fieldBuilder) snapshot() battle.Snapshot {
	units := make([]battle.Unit, len(b.units))
	copy(units, b.units)
	obstacles := make([]grid.Cell, len(b.obstacles))
	copy(obstacles, b.obstacles)
	return battle.Snapshot{Bounds: b.bounds, Units: units, Obstacles: obstacles}
}

// moveUnit returns a copy of the snapshot with one unit relocated.
func moveUnit(snap battle.Snapshot, id battle.UnitID, to grid.Cell) battle.Snapshot {
	units := make([]battle.Unit, len(snap.Units))
	copy(units, snap.Units)
	for i := range units {
		if units[i].ID == id {
			units[i].Pos = to
		}
	}
	snap.Units = units
	return snap
}

// withoutUnit returns a copy of the snapshot with one unit destroyed.
func withoutUnit(snap battle.Snapshot, id battle.UnitID) battle.Snapshot {
	var units []battle.Unit
	for _, u := range snap.Units {
		if u.ID != id {
			units = append(units, u)
		}
	}
	snap.Units = units
	return snap
}

// walledField is the 5x3 map whose wall at y=1 leaves a single gap at x=3,
// forcing one shortest route from the footman to the townhall.
func walledField() *fieldBuilder {
	return newField(5, 3).
		footman(grid.Cell{X: 0, Y: 0}).
		townhall(grid.Cell{X: 0, Y: 2}, 3).
		walls(
			grid.Cell{X: 0, Y: 1},
			grid.Cell{X: 1, Y: 1},
			grid.Cell{X: 2, Y: 1},
			grid.Cell{X: 4, Y: 1},
		)
}

// tickingClock hands out strictly increasing instants so plan and exec
// durations come out positive without sleeping.
func tickingClock() func() time.Time {
	t := time.Unix(0, 0)
	return func() time.Time {
		t = t.Add(time.Millisecond)
		return t
	}
}
