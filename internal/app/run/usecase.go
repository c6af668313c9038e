package run

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"gridraid/internal/app/ports"
	"gridraid/internal/app/raid"
	"gridraid/internal/domain/battle"
	"gridraid/internal/domain/grid"
	"gridraid/internal/domain/nav"
)

var ErrInvalidRequest = errors.New("invalid run request")

const defaultMaxTurns = 256

// BattlefieldFactory builds a live battlefield from a scenario; the wiring
// decides which host simulation backs it.
type BattlefieldFactory func(sc battle.Scenario) (ports.Battlefield, error)

type UseCase struct {
	TxManager ports.TxManager
	Runs      ports.RunRepository
	Events    ports.EventRepository
	Scenarios ports.ScenarioProvider
	Metrics   ports.TurnMetrics
	Fields    BattlefieldFactory
	Sessions  *SessionStore
	Player    int
	Now       func() time.Time
	NewRunID  func() string
}

func (u UseCase) now() time.Time {
	if u.Now != nil {
		return u.Now()
	}
	return time.Now()
}

func (u UseCase) newRunID() string {
	if u.NewRunID != nil {
		return u.NewRunID()
	}
	return uuid.NewString()
}

// Create loads the scenario, builds a battlefield, and constructs the
// controller, which also computes the initial path. Setup failures abort
// without a record; an unreachable townhall persists a failed run before
// surfacing the error.
func (u UseCase) Create(ctx context.Context, req CreateRequest) (CreateResponse, error) {
	name := strings.TrimSpace(req.Scenario)
	if name == "" {
		return CreateResponse{}, ErrInvalidRequest
	}
	sc, err := u.Scenarios.Get(ctx, name)
	if err != nil {
		return CreateResponse{}, err
	}
	field, err := u.Fields(sc)
	if err != nil {
		return CreateResponse{}, err
	}
	snap, err := field.Snapshot(ctx)
	if err != nil {
		return CreateResponse{}, err
	}

	runID := u.newRunID()
	ctrl, err := raid.NewController(snap, raid.Config{Player: u.Player, Now: u.Now})
	if err != nil {
		if errors.Is(err, nav.ErrNoPath) {
			if u.Metrics != nil {
				u.Metrics.RecordFailure()
			}
			record := u.newRecord(runID, name, StatusFailed)
			saveErr := u.persist(ctx, record, 0, []battle.Event{
				u.event(EventNoPath, snap.Turn, map[string]any{"scenario": name}),
			})
			if saveErr != nil {
				return CreateResponse{}, saveErr
			}
		}
		return CreateResponse{}, err
	}

	record := u.newRecord(runID, name, StatusRunning)
	events := []battle.Event{
		u.event(EventRunStarted, snap.Turn, map[string]any{"scenario": name}),
		u.event(EventPathPlanned, snap.Turn, map[string]any{"path_len": len(ctrl.Remaining())}),
	}
	if err := u.persist(ctx, record, 0, events); err != nil {
		return CreateResponse{}, err
	}
	u.Sessions.Put(runID, &Session{Field: field, Controller: ctrl})

	return CreateResponse{
		RunID:   runID,
		Phase:   ctrl.Phase(),
		PathLen: len(ctrl.Remaining()),
		Record:  record,
	}, nil
}

// Step advances one turn: snapshot, controller decision, dispatch, persist.
func (u UseCase) Step(ctx context.Context, req StepRequest) (StepResponse, error) {
	sess, ok := u.Sessions.Get(req.RunID)
	if !ok {
		return StepResponse{}, fmt.Errorf("%w: run %q", ports.ErrNotFound, req.RunID)
	}
	record, err := u.Runs.GetByRunID(ctx, req.RunID)
	if err != nil {
		return StepResponse{}, err
	}
	snap, err := sess.Field.Snapshot(ctx)
	if err != nil {
		return StepResponse{}, err
	}

	ctrl := sess.Controller
	dec, stepErr := ctrl.Step(snap)

	var events []battle.Event
	if dec.Replanned {
		if u.Metrics != nil {
			u.Metrics.RecordReplan()
		}
		events = append(events, u.event(EventReplanned, snap.Turn, map[string]any{
			"path_len": len(ctrl.Remaining()),
		}))
	}

	if stepErr != nil {
		if u.Metrics != nil {
			u.Metrics.RecordFailure()
		}
		eventType := EventRunFinished
		if errors.Is(stepErr, nav.ErrNoPath) {
			eventType = EventNoPath
		}
		events = append(events, u.event(eventType, snap.Turn, map[string]any{"error": stepErr.Error()}))
		if err := u.finishRun(ctx, req.RunID, &record, ctrl, StatusFailed, events); err != nil {
			return StepResponse{}, err
		}
		return StepResponse{}, stepErr
	}

	resp := StepResponse{
		RunID:      req.RunID,
		Turn:       snap.Turn,
		Replanned:  dec.Replanned,
		Diagnostic: dec.Diagnostic,
	}

	if dec.Terminal {
		events = append(events,
			u.event(EventGoalDestroyed, snap.Turn, nil),
			u.event(EventRunFinished, snap.Turn, summaryPayload(*dec.Summary)),
		)
		if err := u.finishRun(ctx, req.RunID, &record, ctrl, StatusDone, events); err != nil {
			return StepResponse{}, err
		}
		resp.Status = StatusDone
		resp.Phase = ctrl.Phase()
		resp.Summary = dec.Summary
		resp.Record = record
		return resp, nil
	}

	cmd := dec.Command
	if !dec.Act {
		// A turn with a diagnostic still advances the world.
		cmd = battle.Hold(ctrl.UnitID())
		events = append(events, u.event(EventPlanInconsistency, snap.Turn, map[string]any{
			"diagnostic": dec.Diagnostic,
		}))
	} else {
		switch cmd.Kind {
		case battle.CommandMove:
			dest := mustAgentPos(snap, ctrl).Step(cmd.Dir)
			events = append(events, u.event(EventMoved, snap.Turn, map[string]any{
				"dir": string(cmd.Dir), "x": dest.X, "y": dest.Y,
			}))
		case battle.CommandAttack:
			events = append(events, u.event(EventAttacked, snap.Turn, map[string]any{
				"target": int(cmd.Target),
			}))
		}
	}
	if err := sess.Field.Execute(ctx, cmd); err != nil {
		if u.Metrics != nil {
			u.Metrics.RecordFailure()
		}
		events = append(events, u.event(EventRunFinished, snap.Turn, map[string]any{"error": err.Error()}))
		if saveErr := u.finishRun(ctx, req.RunID, &record, ctrl, StatusFailed, events); saveErr != nil {
			return StepResponse{}, saveErr
		}
		return StepResponse{}, err
	}
	if u.Metrics != nil {
		u.Metrics.RecordCommand(cmd.Kind)
	}

	if err := u.updateRecord(ctx, &record, ctrl, StatusRunning, events); err != nil {
		return StepResponse{}, err
	}

	resp.Status = StatusRunning
	resp.Phase = ctrl.Phase()
	resp.Command = &cmd
	resp.Record = record
	return resp, nil
}

// Play steps the run to completion, bounded by MaxTurns.
func (u UseCase) Play(ctx context.Context, req PlayRequest) (PlayResponse, error) {
	maxTurns := req.MaxTurns
	if maxTurns <= 0 {
		maxTurns = defaultMaxTurns
	}

	out := PlayResponse{RunID: req.RunID, Status: StatusRunning}
	for i := 0; i < maxTurns; i++ {
		resp, err := u.Step(ctx, StepRequest{RunID: req.RunID})
		if err != nil {
			if record, getErr := u.Runs.GetByRunID(ctx, req.RunID); getErr == nil {
				out.Record = record
				out.Status = record.Status
			}
			return out, err
		}
		out.Steps++
		out.Status = resp.Status
		out.Record = resp.Record
		if resp.Status != StatusRunning {
			out.Summary = resp.Summary
			break
		}
	}
	return out, nil
}

func (u UseCase) newRecord(runID, scenario, status string) ports.RunRecord {
	now := u.now()
	return ports.RunRecord{
		RunID:     runID,
		Scenario:  scenario,
		Status:    status,
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (u UseCase) finishRun(ctx context.Context, runID string, record *ports.RunRecord, ctrl *raid.Controller, status string, events []battle.Event) error {
	defer u.Sessions.Delete(runID)
	if u.Metrics != nil {
		u.Metrics.RecordRunFinished(status)
	}
	return u.updateRecord(ctx, record, ctrl, status, events)
}

func (u UseCase) updateRecord(ctx context.Context, record *ports.RunRecord, ctrl *raid.Controller, status string, events []battle.Event) error {
	s := ctrl.Summary()
	expected := record.Version
	record.Status = status
	record.Turns = s.Turns
	record.Replans = s.Replans
	record.PlanNanos = s.PlanTime.Nanoseconds()
	record.ExecNanos = s.ExecTime.Nanoseconds()
	record.UpdatedAt = u.now()
	record.Version = expected + 1
	return u.persist(ctx, *record, expected, events)
}

func (u UseCase) persist(ctx context.Context, record ports.RunRecord, expectedVersion int64, events []battle.Event) error {
	return u.TxManager.RunInTx(ctx, func(ctx context.Context) error {
		if err := u.Runs.SaveWithVersion(ctx, record, expectedVersion); err != nil {
			return err
		}
		return u.Events.Append(ctx, record.RunID, events)
	})
}

func (u UseCase) event(eventType string, turn int, payload map[string]any) battle.Event {
	return battle.Event{
		Type:       eventType,
		Turn:       turn,
		OccurredAt: u.now(),
		Payload:    payload,
	}
}

func summaryPayload(s raid.Summary) map[string]any {
	return map[string]any{
		"turns":       s.Turns,
		"replans":     s.Replans,
		"plan_nanos":  s.PlanTime.Nanoseconds(),
		"exec_nanos":  s.ExecTime.Nanoseconds(),
		"total_nanos": s.Total.Nanoseconds(),
	}
}

func mustAgentPos(snap battle.Snapshot, ctrl *raid.Controller) grid.Cell {
	u, _ := snap.Unit(ctrl.UnitID())
	return u.Pos
}
