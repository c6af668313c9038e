package battle

import "gridraid/internal/domain/grid"

// Snapshot is the per-turn read-only view of the battlefield. No identity
// persists across turns except unit IDs.
type Snapshot struct {
	Turn      int         `json:"turn"`
	Bounds    grid.Bounds `json:"bounds"`
	Units     []Unit      `json:"units"`
	Obstacles []grid.Cell `json:"obstacles"`
}

// Unit looks up a unit by ID. A destroyed unit is simply absent.
func (s Snapshot) Unit(id UnitID) (Unit, bool) {
	for _, u := range s.Units {
		if u.ID == id {
			return u, true
		}
	}
	return Unit{}, false
}

// UnitIDs returns the IDs of the units owned by player, in snapshot order.
func (s Snapshot) UnitIDs(player int) []UnitID {
	var out []UnitID
	for _, u := range s.Units {
		if u.Player == player {
			out = append(out, u.ID)
		}
	}
	return out
}

// Players returns the distinct player numbers present, in snapshot order.
func (s Snapshot) Players() []int {
	var out []int
	for _, u := range s.Units {
		seen := false
		for _, p := range out {
			if p == u.Player {
				seen = true
				break
			}
		}
		if !seen {
			out = append(out, u.Player)
		}
	}
	return out
}

// ObstacleSet returns the static obstacle cells keyed for membership tests.
func (s Snapshot) ObstacleSet() map[grid.Cell]struct{} {
	out := make(map[grid.Cell]struct{}, len(s.Obstacles))
	for _, c := range s.Obstacles {
		out[c] = struct{}{}
	}
	return out
}
