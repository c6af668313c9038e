package run

import (
	"gridraid/internal/app/ports"
	"gridraid/internal/app/raid"
	"gridraid/internal/domain/battle"
)

const (
	StatusRunning = "running"
	StatusDone    = "done"
	StatusFailed  = "failed"
)

const (
	EventRunStarted        = "run_started"
	EventPathPlanned       = "path_planned"
	EventReplanned         = "replanned"
	EventMoved             = "moved"
	EventAttacked          = "attacked"
	EventPlanInconsistency = "plan_inconsistency"
	EventGoalDestroyed     = "goal_destroyed"
	EventNoPath            = "no_path"
	EventRunFinished       = "run_finished"
)

type CreateRequest struct {
	Scenario string `json:"scenario"`
}

type CreateResponse struct {
	RunID   string          `json:"run_id"`
	Phase   raid.Phase      `json:"phase"`
	PathLen int             `json:"path_len"`
	Record  ports.RunRecord `json:"record"`
}

type StepRequest struct {
	RunID string `json:"run_id"`
}

type StepResponse struct {
	RunID      string          `json:"run_id"`
	Turn       int             `json:"turn"`
	Status     string          `json:"status"`
	Phase      raid.Phase      `json:"phase"`
	Command    *battle.Command `json:"command,omitempty"`
	Replanned  bool            `json:"replanned"`
	Diagnostic string          `json:"diagnostic,omitempty"`
	Summary    *raid.Summary   `json:"summary,omitempty"`
	Record     ports.RunRecord `json:"record"`
}

type PlayRequest struct {
	RunID    string `json:"run_id"`
	MaxTurns int    `json:"max_turns"`
}

type PlayResponse struct {
	RunID   string          `json:"run_id"`
	Steps   int             `json:"steps"`
	Status  string          `json:"status"`
	Summary *raid.Summary   `json:"summary,omitempty"`
	Record  ports.RunRecord `json:"record"`
}
