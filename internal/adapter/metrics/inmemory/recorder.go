package inmemory

import (
	"sync"

	"gridraid/internal/domain/battle"
)

type Snapshot struct {
	CommandTotal uint64            `json:"command_total"`
	ByCommand    map[string]uint64 `json:"by_command"`
	Replans      uint64            `json:"replans"`
	Failures     uint64            `json:"failures"`
	RunsByStatus map[string]uint64 `json:"runs_by_status"`
}

type Recorder struct {
	mu           sync.Mutex
	byCommand    map[string]uint64
	replans      uint64
	failures     uint64
	runsByStatus map[string]uint64
}

func NewRecorder() *Recorder {
	return &Recorder{
		byCommand:    map[string]uint64{},
		runsByStatus: map[string]uint64{},
	}
}

func (r *Recorder) RecordCommand(kind battle.CommandKind) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byCommand[string(kind)]++
}

func (r *Recorder) RecordReplan() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.replans++
}

func (r *Recorder) RecordFailure() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failures++
}

func (r *Recorder) RecordRunFinished(status string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.runsByStatus[status]++
}

func (r *Recorder) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := Snapshot{
		ByCommand:    make(map[string]uint64, len(r.byCommand)),
		Replans:      r.replans,
		Failures:     r.failures,
		RunsByStatus: make(map[string]uint64, len(r.runsByStatus)),
	}
	for k, v := range r.byCommand {
		out.ByCommand[k] = v
		out.CommandTotal += v
	}
	for k, v := range r.runsByStatus {
		out.RunsByStatus[k] = v
	}
	return out
}

func (r *Recorder) SnapshotAny() any {
	return r.Snapshot()
}
