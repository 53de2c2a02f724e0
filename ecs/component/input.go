package component

// Input stores per-frame input state for the player. It is written by the
// input collaborator (viewer or scenario script) before the world updates.
type Input struct {
	MoveX float64
	MoveY float64
	// AimX, AimY is the world-space point the player aims at.
	AimX     float64
	AimY     float64
	HasAim   bool
	Fire     bool
	UseSmall bool
	UseBig   bool
}

var InputComponent = NewComponent[Input]()
