// Package scenario drives the player from a tengo script, for headless runs.
//
// A script defines update(obs, memory) and returns a map with any of the keys
// move_x, move_y, aim_x, aim_y, fire, use_small, use_big and quit. memory is a
// map kept between calls.
package scenario

import (
	"errors"
	"fmt"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/angeldust/ecs/component"
	"github.com/milk9111/angeldust/prefabs"
)

var ErrNoUpdate = errors.New("scenario: script does not define update")

const dispatchScript = `
__result = update(__obs, __memory)
`

// EnemyView is what a script sees of one enemy.
type EnemyView struct {
	X     float64
	Y     float64
	State string
}

// Observation is the world state handed to the script each tick.
type Observation struct {
	Tick          int
	Time          float64
	PlayerX       float64
	PlayerY       float64
	Health        float64
	SmallPowerups int
	BigPowerups   int
	Enemies       []EnemyView
}

// Action is the script's decision for one tick.
type Action struct {
	Input component.Input
	Quit  bool
}

type Runtime struct {
	name     string
	compiled *tengo.Compiled
	memory   *tengo.Map
}

// Load compiles prefabs/scripts/<name>.
func Load(name string) (*Runtime, error) {
	src, err := prefabs.LoadScript(name)
	if err != nil {
		return nil, fmt.Errorf("scenario: load %s: %w", name, err)
	}
	return Compile(name, src)
}

func Compile(name string, src []byte) (*Runtime, error) {
	full := string(src) + "\n" + dispatchScript
	script := tengo.NewScript([]byte(full))
	_ = script.Add("__obs", map[string]any{})
	_ = script.Add("__memory", map[string]any{})
	_ = script.Add("__result", nil)

	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		if strings.Contains(err.Error(), "unresolved reference 'update'") {
			return nil, fmt.Errorf("%w: %s", ErrNoUpdate, name)
		}
		return nil, fmt.Errorf("scenario: compile %s: %w", name, err)
	}

	return &Runtime{
		name:     name,
		compiled: compiled,
		memory:   &tengo.Map{Value: map[string]tengo.Object{}},
	}, nil
}

func (r *Runtime) Name() string {
	return r.name
}

// Step runs the script once for the given observation.
func (r *Runtime) Step(obs Observation) (Action, error) {
	if r == nil || r.compiled == nil {
		return Action{}, fmt.Errorf("scenario: nil runtime")
	}
	if err := r.compiled.Set("__obs", observationObject(obs)); err != nil {
		return Action{}, err
	}
	if err := r.compiled.Set("__memory", r.memory); err != nil {
		return Action{}, err
	}
	if err := r.compiled.Run(); err != nil {
		return Action{}, fmt.Errorf("scenario: %s tick %d: %w", r.name, obs.Tick, err)
	}

	result, ok := objectToAny(r.compiled.Get("__result").Object()).(map[string]any)
	if !ok {
		return Action{}, nil
	}

	var act Action
	act.Input.MoveX = asFloat(result["move_x"])
	act.Input.MoveY = asFloat(result["move_y"])
	if _, ok := result["aim_x"]; ok {
		act.Input.AimX = asFloat(result["aim_x"])
		act.Input.AimY = asFloat(result["aim_y"])
		act.Input.HasAim = true
	}
	act.Input.Fire = asBool(result["fire"])
	act.Input.UseSmall = asBool(result["use_small"])
	act.Input.UseBig = asBool(result["use_big"])
	act.Quit = asBool(result["quit"])
	return act, nil
}

func observationObject(obs Observation) *tengo.ImmutableMap {
	enemies := make([]tengo.Object, 0, len(obs.Enemies))
	for _, e := range obs.Enemies {
		enemies = append(enemies, &tengo.ImmutableMap{Value: map[string]tengo.Object{
			"x":     &tengo.Float{Value: e.X},
			"y":     &tengo.Float{Value: e.Y},
			"state": &tengo.String{Value: e.State},
		}})
	}
	return &tengo.ImmutableMap{Value: map[string]tengo.Object{
		"tick":           &tengo.Int{Value: int64(obs.Tick)},
		"time":           &tengo.Float{Value: obs.Time},
		"player_x":       &tengo.Float{Value: obs.PlayerX},
		"player_y":       &tengo.Float{Value: obs.PlayerY},
		"health":         &tengo.Float{Value: obs.Health},
		"small_powerups": &tengo.Int{Value: int64(obs.SmallPowerups)},
		"big_powerups":   &tengo.Int{Value: int64(obs.BigPowerups)},
		"enemies":        &tengo.ImmutableArray{Value: enemies},
	}}
}

func objectToAny(obj tengo.Object) any {
	if obj == nil {
		return nil
	}

	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	case *tengo.Int:
		return v.Value
	case *tengo.Float:
		return v.Value
	case *tengo.Bool:
		return !v.IsFalsy()
	case *tengo.Array:
		out := make([]any, 0, len(v.Value))
		for _, item := range v.Value {
			out = append(out, objectToAny(item))
		}
		return out
	case *tengo.Map:
		out := make(map[string]any, len(v.Value))
		for k, item := range v.Value {
			out[k] = objectToAny(item)
		}
		return out
	case *tengo.ImmutableMap:
		out := make(map[string]any, len(v.Value))
		for k, item := range v.Value {
			out[k] = objectToAny(item)
		}
		return out
	case *tengo.Undefined:
		return nil
	default:
		return v.String()
	}
}

func asFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int64:
		return float64(n)
	case bool:
		if n {
			return 1
		}
	}
	return 0
}

func asBool(v any) bool {
	switch b := v.(type) {
	case bool:
		return b
	case int64:
		return b != 0
	}
	return false
}
