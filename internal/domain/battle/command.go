package battle

import "gridraid/internal/domain/grid"

type CommandKind string

const (
	CommandMove   CommandKind = "move"
	CommandAttack CommandKind = "attack"
	CommandHold   CommandKind = "hold"
)

// Command is the single per-turn order for one unit: a one-step move, a melee
// attack against an adjacent target, or nothing.
type Command struct {
	Kind   CommandKind    `json:"kind"`
	Actor  UnitID         `json:"actor"`
	Dir    grid.Direction `json:"dir,omitempty"`
	Target UnitID         `json:"target,omitempty"`
}

func Move(actor UnitID, dir grid.Direction) Command {
	return Command{Kind: CommandMove, Actor: actor, Dir: dir}
}

func Attack(actor, target UnitID) Command {
	return Command{Kind: CommandAttack, Actor: actor, Target: target}
}

func Hold(actor UnitID) Command {
	return Command{Kind: CommandHold, Actor: actor}
}
