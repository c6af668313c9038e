package memory

import (
	"context"

	"gridraid/internal/app/ports"
)

type RunRepo struct {
	store *Store
}

func NewRunRepo(store *Store) RunRepo {
	return RunRepo{store: store}
}

func (r RunRepo) GetByRunID(_ context.Context, runID string) (ports.RunRecord, error) {
	record, ok := r.store.runs[runID]
	if !ok {
		return ports.RunRecord{}, ports.ErrNotFound
	}
	return record, nil
}

func (r RunRepo) SaveWithVersion(_ context.Context, record ports.RunRecord, expectedVersion int64) error {
	current, ok := r.store.runs[record.RunID]
	if !ok {
		if expectedVersion != 0 {
			return ports.ErrConflict
		}
		r.store.runs[record.RunID] = record
		return nil
	}
	if current.Version != expectedVersion {
		return ports.ErrConflict
	}
	r.store.runs[record.RunID] = record
	return nil
}
