package ports

import (
	"context"

	"gridraid/internal/domain/battle"
)

// Battlefield is the narrow boundary with the host simulation: a read-only
// per-turn snapshot and a dispatch that applies one command and advances the
// world by one turn (including whatever the hostile side does on its own).
type Battlefield interface {
	Snapshot(ctx context.Context) (battle.Snapshot, error)
	Execute(ctx context.Context, cmd battle.Command) error
}
