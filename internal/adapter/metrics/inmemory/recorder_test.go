package inmemory

import (
	"testing"

	"gridraid/internal/domain/battle"
)

func TestRecorder_Snapshot(t *testing.T) {
	r := NewRecorder()
	r.RecordCommand(battle.CommandMove)
	r.RecordCommand(battle.CommandMove)
	r.RecordCommand(battle.CommandAttack)
	r.RecordReplan()
	r.RecordFailure()
	r.RecordRunFinished("done")
	r.RecordRunFinished("done")
	r.RecordRunFinished("failed")

	snap := r.Snapshot()
	if snap.CommandTotal != 3 {
		t.Fatalf("command total %d want 3", snap.CommandTotal)
	}
	if snap.ByCommand[string(battle.CommandMove)] != 2 || snap.ByCommand[string(battle.CommandAttack)] != 1 {
		t.Fatalf("by command %v, want 2 moves and 1 attack", snap.ByCommand)
	}
	if snap.Replans != 1 || snap.Failures != 1 {
		t.Fatalf("snapshot %+v, want 1 replan and 1 failure", snap)
	}
	if snap.RunsByStatus["done"] != 2 || snap.RunsByStatus["failed"] != 1 {
		t.Fatalf("runs by status %v", snap.RunsByStatus)
	}

	// The snapshot is a copy.
	snap.ByCommand["move"] = 99
	if again := r.Snapshot(); again.ByCommand[string(battle.CommandMove)] != 2 {
		t.Fatalf("recorder state leaked through snapshot: %v", again.ByCommand)
	}
}
