package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"gridraid/internal/app/observe"
	"gridraid/internal/app/ports"
	"gridraid/internal/app/raid"
	"gridraid/internal/app/replay"
	"gridraid/internal/app/run"
	"gridraid/internal/domain/battle"
	"gridraid/internal/domain/nav"
)

type Handler struct {
	RunUC     run.UseCase
	ObserveUC observe.UseCase
	ReplayUC  replay.UseCase
	Scenarios ports.ScenarioProvider
	KPI       kpiSnapshotProvider
}

func (h Handler) RegisterRoutes(s *server.Hertz) {
	s.Use(corsMiddleware())

	runs := s.Group("/api/runs")
	runs.POST("", h.create)
	runs.POST("/:run_id/step", h.step)
	runs.POST("/:run_id/play", h.play)
	runs.GET("/:run_id", h.observe)
	runs.GET("/:run_id/replay", h.replay)

	s.GET("/api/scenarios", h.scenarios)
	s.GET("/ops/kpi", h.kpi)
}

type createRequest struct {
	Scenario string `json:"scenario"`
}

type playRequest struct {
	MaxTurns int `json:"max_turns"`
}

func (h Handler) create(c context.Context, ctx *app.RequestContext) {
	var body createRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	resp, err := h.RunUC.Create(c, run.CreateRequest{Scenario: body.Scenario})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusCreated, resp)
}

func (h Handler) step(c context.Context, ctx *app.RequestContext) {
	runID := string(ctx.Param("run_id"))
	resp, err := h.RunUC.Step(c, run.StepRequest{RunID: runID})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) play(c context.Context, ctx *app.RequestContext) {
	runID := string(ctx.Param("run_id"))
	var body playRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	resp, err := h.RunUC.Play(c, run.PlayRequest{RunID: runID, MaxTurns: body.MaxTurns})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) observe(c context.Context, ctx *app.RequestContext) {
	runID := string(ctx.Param("run_id"))
	resp, err := h.ObserveUC.Execute(c, observe.Request{RunID: runID})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) replay(c context.Context, ctx *app.RequestContext) {
	runID := string(ctx.Param("run_id"))
	limit, _ := strconv.Atoi(string(ctx.Query("limit")))
	occurredFrom, _ := strconv.ParseInt(string(ctx.Query("occurred_from")), 10, 64)
	occurredTo, _ := strconv.ParseInt(string(ctx.Query("occurred_to")), 10, 64)
	resp, err := h.ReplayUC.Execute(c, replay.Request{
		RunID:        runID,
		Limit:        limit,
		OccurredFrom: occurredFrom,
		OccurredTo:   occurredTo,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) scenarios(c context.Context, ctx *app.RequestContext) {
	names, err := h.Scenarios.List(c)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, map[string]any{"scenarios": names})
}

type kpiSnapshotProvider interface {
	SnapshotAny() any
}

func (h Handler) kpi(_ context.Context, ctx *app.RequestContext) {
	if h.KPI == nil {
		writeErrorBody(ctx, consts.StatusNotFound, "not_configured", "kpi provider not configured")
		return
	}
	ctx.JSON(consts.StatusOK, h.KPI.SnapshotAny())
}

func decodeJSON(ctx *app.RequestContext, out any) error {
	body := ctx.Request.Body()
	if len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, out)
}

func writeError(ctx *app.RequestContext, err error) {
	switch {
	case errors.Is(err, nav.ErrNoPath):
		writeErrorBody(ctx, consts.StatusConflict, "no_path", err.Error())
	case errors.Is(err, raid.ErrRunOver):
		writeErrorBody(ctx, consts.StatusConflict, "run_over", err.Error())
	case errors.Is(err, raid.ErrNoUnits),
		errors.Is(err, raid.ErrNotFootman),
		errors.Is(err, raid.ErrNoEnemyPlayer),
		errors.Is(err, raid.ErrNoEnemyUnits),
		errors.Is(err, raid.ErrNoGoal):
		writeErrorBody(ctx, consts.StatusUnprocessableEntity, "setup_failed", err.Error())
	case errors.Is(err, battle.ErrInvalidScenario):
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_scenario", err.Error())
	case errors.Is(err, run.ErrInvalidRequest),
		errors.Is(err, observe.ErrInvalidRequest),
		errors.Is(err, replay.ErrInvalidRequest):
		writeErrorBody(ctx, consts.StatusBadRequest, "bad_request", err.Error())
	case errors.Is(err, ports.ErrNotFound):
		writeErrorBody(ctx, consts.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, ports.ErrConflict):
		writeErrorBody(ctx, consts.StatusConflict, "conflict", err.Error())
	default:
		writeErrorBody(ctx, consts.StatusInternalServerError, "internal_error", err.Error())
	}
}

func writeErrorBody(ctx *app.RequestContext, status int, code, message string) {
	ctx.JSON(status, map[string]any{"error": code, "message": message})
}
