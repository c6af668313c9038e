package battle

import (
	"strings"

	"gridraid/internal/domain/grid"
)

type UnitID int

// Unit template names used by raid scenarios. Name matching of enemy units is
// case-insensitive.
const (
	UnitFootman  = "Footman"
	UnitTownhall = "TownHall"
)

type Unit struct {
	ID     UnitID    `json:"id"`
	Player int       `json:"player"`
	Name   string    `json:"name"`
	Pos    grid.Cell `json:"pos"`
	HP     int       `json:"hp"`
}

func (u Unit) IsNamed(name string) bool {
	return strings.EqualFold(u.Name, name)
}
