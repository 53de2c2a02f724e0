package component

// Shooting is a weapon. Cooldown gates consecutive shots; Spread is the full
// width in radians of the random jitter added to each bullet's heading.
type Shooting struct {
	Cooldown    Countdown
	BulletSpeed float64
	Damage      float64
	Spread      float64
	// MeleeRange below which a shot connects directly instead of spawning a bullet.
	MeleeRange float64
	// MaxDistance a bullet may travel before it is discarded. Zero means unlimited.
	MaxDistance float64
}

var ShootingComponent = NewComponent[Shooting]()
