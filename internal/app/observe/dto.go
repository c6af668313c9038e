package observe

import (
	"gridraid/internal/app/ports"
	"gridraid/internal/app/raid"
	"gridraid/internal/domain/battle"
	"gridraid/internal/domain/grid"
)

type Request struct {
	RunID string
}

type Response struct {
	Record   ports.RunRecord  `json:"record"`
	Live     bool             `json:"live"`
	Phase    raid.Phase       `json:"phase,omitempty"`
	Snapshot *battle.Snapshot `json:"snapshot,omitempty"`
	Agent    *ObservedUnit    `json:"agent,omitempty"`
	Goal     *ObservedUnit    `json:"goal,omitempty"`
	Path     grid.Path        `json:"path,omitempty"`
}

type ObservedUnit struct {
	ID   battle.UnitID `json:"id"`
	Name string        `json:"name"`
	Pos  grid.Cell     `json:"pos"`
	HP   int           `json:"hp"`
}
