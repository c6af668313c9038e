package replay

import (
	"context"
	"errors"
	"testing"
	"time"

	"gridraid/internal/app/run"
	"gridraid/internal/domain/battle"
)

// stubEventRepo serves canned events newest-first, the way the real
// repositories do.
type stubEventRepo struct {
	events map[string][]battle.Event
}

func (r stubEventRepo) Append(context.Context, string, []battle.Event) error { return nil }

func (r stubEventRepo) ListByRunID(_ context.Context, runID string, limit int) ([]battle.Event, error) {
	stored := r.events[runID]
	out := make([]battle.Event, 0, len(stored))
	for i := len(stored) - 1; i >= 0; i-- {
		if limit > 0 && len(out) >= limit {
			break
		}
		out = append(out, stored[i])
	}
	return out, nil
}

func at(sec int64) time.Time { return time.Unix(sec, 0) }

func storyEvents() []battle.Event {
	return []battle.Event{
		{Type: run.EventRunStarted, Turn: 0, OccurredAt: at(100)},
		{Type: run.EventPathPlanned, Turn: 0, OccurredAt: at(100)},
		{Type: run.EventMoved, Turn: 0, OccurredAt: at(110), Payload: map[string]any{"dir": "east", "x": 1, "y": 0}},
		{Type: run.EventMoved, Turn: 1, OccurredAt: at(120), Payload: map[string]any{"dir": "east", "x": 2, "y": 0}},
		{Type: run.EventAttacked, Turn: 2, OccurredAt: at(130), Payload: map[string]any{"target": 2}},
		{Type: run.EventGoalDestroyed, Turn: 3, OccurredAt: at(140)},
		{Type: run.EventRunFinished, Turn: 3, OccurredAt: at(140)},
	}
}

func TestExecute_FullHistory(t *testing.T) {
	uc := UseCase{Events: stubEventRepo{events: map[string][]battle.Event{"r1": storyEvents()}}}

	out, err := uc.Execute(context.Background(), Request{RunID: "r1"})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(out.Events) != 7 {
		t.Fatalf("got %d events want 7", len(out.Events))
	}
	if out.Events[0].Type != run.EventRunFinished {
		t.Fatalf("first event %q, want newest first", out.Events[0].Type)
	}
	if !out.Finished {
		t.Fatalf("want finished run")
	}
	if out.FinalPosition == nil || out.FinalPosition.X != 2 || out.FinalPosition.Y != 0 {
		t.Fatalf("final position %+v, want (2,0)", out.FinalPosition)
	}
}

func TestExecute_TimeWindow(t *testing.T) {
	uc := UseCase{Events: stubEventRepo{events: map[string][]battle.Event{"r1": storyEvents()}}}

	out, err := uc.Execute(context.Background(), Request{RunID: "r1", OccurredFrom: 105, OccurredTo: 125})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(out.Events) != 2 {
		t.Fatalf("got %d events want 2: %+v", len(out.Events), out.Events)
	}
	for _, evt := range out.Events {
		if evt.Type != run.EventMoved {
			t.Fatalf("event %q outside the window slipped through", evt.Type)
		}
	}
	if out.Finished {
		t.Fatalf("window excludes the finish, Finished must be false")
	}
	if out.FinalPosition == nil || out.FinalPosition.X != 2 {
		t.Fatalf("final position %+v, want the newest move in window", out.FinalPosition)
	}
}

func TestExecute_LimitAndEmptyHistory(t *testing.T) {
	uc := UseCase{Events: stubEventRepo{events: map[string][]battle.Event{"r1": storyEvents()}}}

	out, err := uc.Execute(context.Background(), Request{RunID: "r1", Limit: 2})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(out.Events) != 2 {
		t.Fatalf("got %d events want 2", len(out.Events))
	}
	if out.FinalPosition != nil {
		t.Fatalf("final position %+v, want none without move events", out.FinalPosition)
	}

	empty, err := uc.Execute(context.Background(), Request{RunID: "ghost"})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(empty.Events) != 0 || empty.Finished || empty.FinalPosition != nil {
		t.Fatalf("response %+v, want empty history", empty)
	}
}

func TestExecute_RejectsBlankRunID(t *testing.T) {
	uc := UseCase{Events: stubEventRepo{events: map[string][]battle.Event{}}}
	if _, err := uc.Execute(context.Background(), Request{RunID: ""}); !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("err=%v want %v", err, ErrInvalidRequest)
	}
}
