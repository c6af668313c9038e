package battle

import (
	"errors"
	"fmt"

	"gridraid/internal/domain/grid"
)

var ErrInvalidScenario = errors.New("invalid scenario")

// ScenarioUnit places one unit on the starting battlefield. HP defaults to 1
// when omitted.
type ScenarioUnit struct {
	Name   string    `yaml:"name" json:"name"`
	Player int       `yaml:"player" json:"player"`
	Pos    grid.Cell `yaml:"pos" json:"pos"`
	HP     int       `yaml:"hp" json:"hp"`
}

// Scenario is a complete starting battlefield: map extent, static obstacles,
// unit placement, and the optional patrol route of the hostile unit.
type Scenario struct {
	Name      string         `yaml:"name" json:"name"`
	Width     int            `yaml:"width" json:"width"`
	Height    int            `yaml:"height" json:"height"`
	Obstacles []grid.Cell    `yaml:"obstacles" json:"obstacles"`
	Units     []ScenarioUnit `yaml:"units" json:"units"`
	Patrol    []grid.Cell    `yaml:"patrol,omitempty" json:"patrol,omitempty"`
}

func (s Scenario) Bounds() grid.Bounds {
	return grid.Bounds{Width: s.Width, Height: s.Height}
}

func (s Scenario) Validate() error {
	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("%w: extent %dx%d", ErrInvalidScenario, s.Width, s.Height)
	}
	if len(s.Units) == 0 {
		return fmt.Errorf("%w: no units", ErrInvalidScenario)
	}
	bounds := s.Bounds()
	occupied := map[grid.Cell]struct{}{}
	for _, c := range s.Obstacles {
		if !bounds.Contains(c) {
			return fmt.Errorf("%w: obstacle (%d,%d) out of bounds", ErrInvalidScenario, c.X, c.Y)
		}
		occupied[c] = struct{}{}
	}
	for _, u := range s.Units {
		if u.Name == "" {
			return fmt.Errorf("%w: unit without name", ErrInvalidScenario)
		}
		if !bounds.Contains(u.Pos) {
			return fmt.Errorf("%w: unit %q at (%d,%d) out of bounds", ErrInvalidScenario, u.Name, u.Pos.X, u.Pos.Y)
		}
		if _, taken := occupied[u.Pos]; taken {
			return fmt.Errorf("%w: cell (%d,%d) placed twice", ErrInvalidScenario, u.Pos.X, u.Pos.Y)
		}
		occupied[u.Pos] = struct{}{}
	}
	for _, c := range s.Patrol {
		if !bounds.Contains(c) {
			return fmt.Errorf("%w: patrol waypoint (%d,%d) out of bounds", ErrInvalidScenario, c.X, c.Y)
		}
	}
	return nil
}
