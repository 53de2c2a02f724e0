package component

// Bullet is a projectile moving along its transform's forward vector.
// Owner is the entity that fired it, which it can never hit.
type Bullet struct {
	Speed       float64
	Owner       uint64
	Width       float64
	Height      float64
	Damage      float64
	Traveled    float64
	MaxDistance float64
}

var BulletComponent = NewComponent[Bullet]()
