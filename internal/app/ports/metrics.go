package ports

import "gridraid/internal/domain/battle"

type TurnMetrics interface {
	RecordCommand(kind battle.CommandKind)
	RecordReplan()
	RecordFailure()
	RecordRunFinished(status string)
}
