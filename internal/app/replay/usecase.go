package replay

import (
	"context"
	"errors"
	"strings"

	"gridraid/internal/app/ports"
	"gridraid/internal/app/run"
	"gridraid/internal/domain/battle"
	"gridraid/internal/domain/grid"
)

var ErrInvalidRequest = errors.New("invalid replay request")

type UseCase struct {
	Events ports.EventRepository
}

// Execute lists a run's stored events, optionally filtered by a unix-seconds
// window, and reconstructs the agent's final known position from move events.
func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	if strings.TrimSpace(req.RunID) == "" {
		return Response{}, ErrInvalidRequest
	}
	events, err := u.Events.ListByRunID(ctx, req.RunID, req.Limit)
	if err != nil {
		return Response{}, err
	}
	events = filterByTimeWindow(events, req.OccurredFrom, req.OccurredTo)
	resp := Response{Events: events}
	resp.FinalPosition = lastPosition(events)
	for _, evt := range events {
		if evt.Type == run.EventRunFinished || evt.Type == run.EventGoalDestroyed {
			resp.Finished = true
			break
		}
	}
	return resp, nil
}

func filterByTimeWindow(events []battle.Event, from, to int64) []battle.Event {
	if from <= 0 && to <= 0 {
		return events
	}
	out := make([]battle.Event, 0, len(events))
	for _, evt := range events {
		ts := evt.OccurredAt.Unix()
		if from > 0 && ts < from {
			continue
		}
		if to > 0 && ts > to {
			continue
		}
		out = append(out, evt)
	}
	return out
}

// lastPosition replays moved events in stored (newest-first) order and takes
// the first one it sees.
func lastPosition(events []battle.Event) *grid.Cell {
	for _, evt := range events {
		if evt.Type != run.EventMoved {
			continue
		}
		x, okX := num(evt.Payload["x"])
		y, okY := num(evt.Payload["y"])
		if !okX || !okY {
			continue
		}
		return &grid.Cell{X: int(x), Y: int(y)}
	}
	return nil
}

func num(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}
