package component

// Pickup is a collectible lying on the floor. Touching it adds one power-up of
// Kind to the player's inventory.
type Pickup struct {
	Kind            EffectKind
	CollisionWidth  float64
	CollisionHeight float64
}

var PickupComponent = NewComponent[Pickup]()
