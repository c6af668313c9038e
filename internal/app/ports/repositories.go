package ports

import (
	"context"
	"time"

	"gridraid/internal/domain/battle"
)

type RunRecord struct {
	RunID     string    `json:"run_id"`
	Scenario  string    `json:"scenario"`
	Status    string    `json:"status"`
	Turns     int       `json:"turns"`
	Replans   int       `json:"replans"`
	PlanNanos int64     `json:"plan_nanos"`
	ExecNanos int64     `json:"exec_nanos"`
	Version   int64     `json:"version"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type RunRepository interface {
	GetByRunID(ctx context.Context, runID string) (RunRecord, error)
	SaveWithVersion(ctx context.Context, record RunRecord, expectedVersion int64) error
}

type EventRepository interface {
	Append(ctx context.Context, runID string, events []battle.Event) error
	ListByRunID(ctx context.Context, runID string, limit int) ([]battle.Event, error)
}

type ScenarioProvider interface {
	Get(ctx context.Context, name string) (battle.Scenario, error)
	List(ctx context.Context) ([]string, error)
}
