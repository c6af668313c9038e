package raid

import "errors"

// Setup failures: reported once, before the controller has taken any turn.
var (
	ErrNoUnits       = errors.New("no controllable units found")
	ErrNotFootman    = errors.New("controllable unit is not a footman")
	ErrNoEnemyPlayer = errors.New("no enemy player found")
	ErrNoEnemyUnits  = errors.New("no enemy units found")
	ErrNoGoal        = errors.New("no townhall found")
)

var (
	ErrUnitLost = errors.New("controlled unit missing from snapshot")
	ErrRunOver  = errors.New("raid already finished")
)
