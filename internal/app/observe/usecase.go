package observe

import (
	"context"
	"errors"
	"strings"

	"gridraid/internal/app/ports"
	"gridraid/internal/app/run"
	"gridraid/internal/domain/battle"
)

var ErrInvalidRequest = errors.New("invalid observe request")

type UseCase struct {
	Runs     ports.RunRepository
	Sessions *run.SessionStore
}

// Execute returns the stored run record, plus the live battlefield view when
// the run is still in progress: agent, goal, remaining path, phase.
func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	if strings.TrimSpace(req.RunID) == "" {
		return Response{}, ErrInvalidRequest
	}
	record, err := u.Runs.GetByRunID(ctx, req.RunID)
	if err != nil {
		return Response{}, err
	}

	resp := Response{Record: record}
	sess, ok := u.Sessions.Get(req.RunID)
	if !ok {
		return resp, nil
	}

	snap, err := sess.Field.Snapshot(ctx)
	if err != nil {
		return Response{}, err
	}
	ctrl := sess.Controller
	resp.Live = true
	resp.Phase = ctrl.Phase()
	resp.Snapshot = &snap
	resp.Path = ctrl.Remaining()
	resp.Agent = observedUnit(snap, ctrl.UnitID())
	resp.Goal = observedUnit(snap, ctrl.GoalID())
	return resp, nil
}

func observedUnit(snap battle.Snapshot, id battle.UnitID) *ObservedUnit {
	u, ok := snap.Unit(id)
	if !ok {
		return nil
	}
	return &ObservedUnit{ID: u.ID, Name: u.Name, Pos: u.Pos, HP: u.HP}
}
