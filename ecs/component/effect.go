package component

// EffectKind is a temporary stat modifier granted by a power-up.
type EffectKind int

const (
	EffectNone EffectKind = iota
	// EffectSmallPowerup doubles speed and heals.
	EffectSmallPowerup
	// EffectBigPowerup multiplies speed by five at the cost of nearly all health.
	EffectBigPowerup
)

const (
	smallPowerupSpeed = 2.0
	smallPowerupHeal  = 35.0
	bigPowerupSpeed   = 5.0
	bigPowerupHealth  = 10.0
)

func (k EffectKind) String() string {
	switch k {
	case EffectSmallPowerup:
		return "small_powerup"
	case EffectBigPowerup:
		return "big_powerup"
	default:
		return "none"
	}
}

// Apply modifies movement and health for the start of the effect.
func (k EffectKind) Apply(m *Movement, h *Health) {
	switch k {
	case EffectSmallPowerup:
		if m != nil {
			m.Speed *= smallPowerupSpeed
		}
		if h != nil {
			h.Heal(smallPowerupHeal)
		}
	case EffectBigPowerup:
		if m != nil {
			m.Speed *= bigPowerupSpeed
		}
		if h != nil && h.Current > bigPowerupHealth {
			h.Current = bigPowerupHealth
		}
	}
}

// Revert undoes the speed change of Apply. Health changes are permanent.
func (k EffectKind) Revert(m *Movement, _ *Health) {
	if m == nil {
		return
	}
	switch k {
	case EffectSmallPowerup:
		m.Speed /= smallPowerupSpeed
	case EffectBigPowerup:
		m.Speed /= bigPowerupSpeed
	}
}

// ActiveEffect is the effect currently applied to an entity, if any.
type ActiveEffect struct {
	Kind  EffectKind
	Timer Countdown
}

func (a ActiveEffect) Active() bool {
	return a.Kind != EffectNone
}

var ActiveEffectComponent = NewComponent[ActiveEffect]()

// Inventory counts the power-ups a player carries.
type Inventory struct {
	SmallPowerups int
	BigPowerups   int
}

// Take removes one power-up of the given kind and reports whether one was available.
func (inv *Inventory) Take(kind EffectKind) bool {
	switch kind {
	case EffectSmallPowerup:
		if inv.SmallPowerups > 0 {
			inv.SmallPowerups--
			return true
		}
	case EffectBigPowerup:
		if inv.BigPowerups > 0 {
			inv.BigPowerups--
			return true
		}
	}
	return false
}

var InventoryComponent = NewComponent[Inventory]()
