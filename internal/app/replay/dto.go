package replay

import (
	"gridraid/internal/domain/battle"
	"gridraid/internal/domain/grid"
)

type Request struct {
	RunID        string
	Limit        int
	OccurredFrom int64
	OccurredTo   int64
}

type Response struct {
	Events        []battle.Event `json:"events"`
	FinalPosition *grid.Cell     `json:"final_position,omitempty"`
	Finished      bool           `json:"finished"`
}
