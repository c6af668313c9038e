package memory

import (
	"context"

	"gridraid/internal/domain/battle"
)

type EventRepo struct {
	store *Store
}

func NewEventRepo(store *Store) EventRepo {
	return EventRepo{store: store}
}

func (r EventRepo) Append(_ context.Context, runID string, events []battle.Event) error {
	r.store.events[runID] = append(r.store.events[runID], events...)
	return nil
}

// ListByRunID returns events newest first, matching the SQL repository.
func (r EventRepo) ListByRunID(_ context.Context, runID string, limit int) ([]battle.Event, error) {
	stored := r.store.events[runID]
	out := make([]battle.Event, 0, len(stored))
	for i := len(stored) - 1; i >= 0; i-- {
		out = append(out, stored[i])
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}
