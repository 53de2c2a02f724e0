package system

import (
	"github.com/milk9111/angeldust/common"
	"github.com/milk9111/angeldust/ecs"
)

// StatsSystem keeps the level score sheet: time, player shots and kills.
// The clock stops once the level is over.
type StatsSystem struct {
	events *Events
	clock  *common.TimeCounter
}

func NewStatsSystem(events *Events, clock *common.TimeCounter) *StatsSystem {
	return &StatsSystem{events: events, clock: clock}
}

func (s *StatsSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	stats := levelStats(w)
	if stats == nil {
		return
	}

	player, _ := playerEntity(w)
	for _, shot := range s.events.Fired.Items() {
		if player.Valid() && shot.Shooter == player {
			stats.ShotsFired++
		}
	}
	for range s.events.Kills.Items() {
		stats.EnemiesKilled++
		if stats.EnemiesRemaining > 0 {
			stats.EnemiesRemaining--
		}
	}

	if !stats.PlayerDead && stats.EnemiesRemaining > 0 {
		stats.Elapsed += s.clock.Delta()
	}
}
