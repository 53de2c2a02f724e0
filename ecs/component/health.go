package component

import "math"

type Health struct {
	Current float64
	Max     float64
}

func NewHealth(max float64) Health {
	return Health{Current: max, Max: max}
}

// TakeDamage subtracts amount and reports whether health reached zero.
func (h *Health) TakeDamage(amount float64) bool {
	h.Current -= amount
	return h.Current <= 0
}

func (h *Health) Heal(amount float64) {
	h.Current = math.Min(h.Current+amount, h.Max)
}

func (h Health) Dead() bool {
	return h.Current <= 0
}

// Fraction is the remaining health in [0, 1].
func (h Health) Fraction() float64 {
	if h.Max <= 0 {
		return 0
	}
	return math.Max(0, math.Min(1, h.Current/h.Max))
}

var HealthComponent = NewComponent[Health]()
