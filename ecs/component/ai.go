package component

import "github.com/milk9111/angeldust/common"

// AIStateKind is the behaviour mode of an enemy.
type AIStateKind int

const (
	// AIIdle means no known threat.
	AIIdle AIStateKind = iota
	// AIAlert means the enemy is moving toward a last known disturbance.
	AIAlert
	// AICombat means the enemy sees its target and may shoot.
	AICombat
)

func (k AIStateKind) String() string {
	switch k {
	case AIIdle:
		return "idle"
	case AIAlert:
		return "alert"
	case AICombat:
		return "combat"
	default:
		return "unknown"
	}
}

// EnemyAI holds the behaviour state of one enemy. Only the fields of the
// current State are meaningful: Path, HasPath and Current for Alert,
// TargetPosition for Combat. Use the Enter helpers to change state.
type EnemyAI struct {
	State AIStateKind

	Path    []common.Vec2
	HasPath bool
	Current int

	TargetPosition common.Vec2
	// Unreachable is set when the chase toward TargetPosition found no path.
	// The query is not repeated until the enemy sees or hears the player again.
	Unreachable bool

	// Shock is the reaction delay between acquiring a target and the first shot.
	Shock Countdown

	SightRange   float64
	HearingRange float64
}

func (ai *EnemyAI) EnterIdle() {
	ai.State = AIIdle
	ai.Unreachable = false
	ai.Path = nil
	ai.HasPath = false
	ai.Current = 0
}

// EnterAlert switches to Alert with the given path. An empty path is stored as
// "no path" so Current always indexes Path while HasPath is set.
func (ai *EnemyAI) EnterAlert(path []common.Vec2) {
	ai.State = AIAlert
	ai.Unreachable = false
	ai.Path = path
	ai.HasPath = len(path) > 0
	ai.Current = 0
}

// EnterCombat records the target position and reports whether the enemy was
// not already in combat, in which case the shock timer restarts.
func (ai *EnemyAI) EnterCombat(target common.Vec2) bool {
	entered := ai.State != AICombat
	ai.State = AICombat
	ai.TargetPosition = target
	ai.Unreachable = false
	ai.Path = nil
	ai.HasPath = false
	ai.Current = 0
	if entered {
		ai.Shock.Reset()
	}
	return entered
}

// Waypoint returns the waypoint currently being approached.
func (ai *EnemyAI) Waypoint() (common.Vec2, bool) {
	if ai.State != AIAlert || !ai.HasPath || ai.Current < 0 || ai.Current >= len(ai.Path) {
		return common.Vec2{}, false
	}
	return ai.Path[ai.Current], true
}

// Advance moves to the next waypoint and falls back to Idle after the last one.
func (ai *EnemyAI) Advance() {
	if ai.State != AIAlert || !ai.HasPath {
		return
	}
	ai.Current++
	if ai.Current >= len(ai.Path) {
		ai.EnterIdle()
	}
}

var EnemyAIComponent = NewComponent[EnemyAI]()
