package prefabs

import (
	"errors"
	"fmt"
)

var ErrInvalidTuning = errors.New("prefabs: invalid tuning")

// Tuning bundles every gameplay spec the simulation needs.
type Tuning struct {
	Player PlayerSpec
	Enemy  EnemySpec
	Game   GameSpec
}

// LoadTuning loads player.yaml, enemy.yaml and game.yaml.
func LoadTuning() (*Tuning, error) {
	player, err := LoadPlayerSpec()
	if err != nil {
		return nil, err
	}
	enemy, err := LoadEnemySpec()
	if err != nil {
		return nil, err
	}
	game, err := LoadGameSpec()
	if err != nil {
		return nil, err
	}
	t := &Tuning{Player: *player, Enemy: *enemy, Game: *game}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *Tuning) Validate() error {
	if t.Game.Timescale < 0 {
		return fmt.Errorf("%w: negative timescale %v", ErrInvalidTuning, t.Game.Timescale)
	}
	for name, w := range map[string]WeaponSpec{"player": t.Player.Weapon, "enemy": t.Enemy.Weapon} {
		if w.BulletSpeed <= 0 {
			return fmt.Errorf("%w: %s bullet speed must be positive", ErrInvalidTuning, name)
		}
		if w.Cooldown < 0 || w.Spread < 0 {
			return fmt.Errorf("%w: %s weapon cooldown and spread must not be negative", ErrInvalidTuning, name)
		}
	}
	if t.Player.Health <= 0 || t.Enemy.Health <= 0 {
		return fmt.Errorf("%w: health must be positive", ErrInvalidTuning)
	}
	if t.Enemy.SightRange <= 0 || t.Enemy.HearingRange < 0 {
		return fmt.Errorf("%w: enemy sight range must be positive", ErrInvalidTuning)
	}
	return nil
}
