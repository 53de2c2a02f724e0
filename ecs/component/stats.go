package component

// Stats is the per-level score sheet, held by a single level entity.
type Stats struct {
	Elapsed           float64
	ShotsFired        int
	EnemiesKilled     int
	DamageTaken       float64
	SmallPowerupsUsed int
	BigPowerupsUsed   int
	PowerupsCollected int
	EnemiesRemaining  int
	PlayerDead        bool
}

// Accuracy is kills per shot as a percentage.
func (s Stats) Accuracy() float64 {
	if s.ShotsFired == 0 {
		return 0
	}
	return float64(s.EnemiesKilled) / float64(s.ShotsFired) * 100
}

var StatsComponent = NewComponent[Stats]()
