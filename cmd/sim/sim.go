package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/milk9111/angeldust/game"
	"github.com/milk9111/angeldust/prefabs"
	"github.com/milk9111/angeldust/scenario"
)

type sim struct {
	game    *game.Game
	runtime *scenario.Runtime
	opts    options
}

func (s *sim) loop(ctx context.Context, changes <-chan string) error {
	dt := 1 / float64(s.opts.tps)

	var pace <-chan time.Time
	if s.opts.realtime {
		ticker := time.NewTicker(time.Second / time.Duration(s.opts.tps))
		defer ticker.Stop()
		pace = ticker.C
	}

	for tick := 0; tick < s.opts.ticks; tick++ {
		select {
		case <-ctx.Done():
			return nil
		case name := <-changes:
			s.reload(name)
		default:
		}

		if pace != nil {
			select {
			case <-ctx.Done():
				return nil
			case <-pace:
			}
		}

		snap := s.game.Snapshot()
		if snap.Over() {
			slog.Info("level over", "tick", tick, "player_dead", snap.Stats.PlayerDead)
			return nil
		}

		if s.runtime != nil {
			act, err := s.runtime.Step(observe(snap))
			if err != nil {
				return err
			}
			if act.Quit {
				slog.Info("scenario quit", "tick", tick)
				return nil
			}
			s.game.SetInput(act.Input)
		}

		if err := s.game.Update(dt); err != nil {
			return err
		}
	}
	return nil
}

// reload applies a changed file. Bad files are logged and the old values kept.
func (s *sim) reload(name string) {
	switch {
	case prefabs.IsSpecFile(name):
		tuning, err := prefabs.LoadTuning()
		if err != nil {
			slog.Warn("tuning reload failed", "file", name, "error", err)
			return
		}
		if err := s.game.Reload(tuning); err != nil {
			slog.Warn("tuning reload rejected", "file", name, "error", err)
		}
	case prefabs.IsScriptFile(name) && s.runtime != nil:
		rt, err := scenario.Load(s.runtime.Name())
		if err != nil {
			slog.Warn("script reload failed", "file", name, "error", err)
			return
		}
		s.runtime = rt
		slog.Info("script reloaded", "script", rt.Name())
	}
}

func observe(snap game.Snapshot) scenario.Observation {
	obs := scenario.Observation{
		Tick:          snap.Tick,
		Time:          snap.Time,
		PlayerX:       snap.Player.Position.X,
		PlayerY:       snap.Player.Position.Y,
		Health:        snap.Player.Health,
		SmallPowerups: snap.Player.Inventory.SmallPowerups,
		BigPowerups:   snap.Player.Inventory.BigPowerups,
	}
	for _, e := range snap.Enemies {
		obs.Enemies = append(obs.Enemies, scenario.EnemyView{X: e.Position.X, Y: e.Position.Y, State: e.State.String()})
	}
	return obs
}

func report(snap game.Snapshot) {
	result := "won"
	switch {
	case snap.Stats.PlayerDead:
		result = "dead"
	case snap.Stats.EnemiesRemaining > 0:
		result = "unfinished"
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	defer tw.Flush()
	rows := [][2]string{
		{"result", result},
		{"time", fmt.Sprintf("%.2fs", snap.Stats.Elapsed)},
		{"shots fired", fmt.Sprint(snap.Stats.ShotsFired)},
		{"enemies killed", fmt.Sprint(snap.Stats.EnemiesKilled)},
		{"enemies remaining", fmt.Sprint(snap.Stats.EnemiesRemaining)},
		{"accuracy", fmt.Sprintf("%.1f%%", snap.Stats.Accuracy())},
		{"damage taken", fmt.Sprintf("%.0f", snap.Stats.DamageTaken)},
		{"power-ups used", fmt.Sprintf("%d small, %d big", snap.Stats.SmallPowerupsUsed, snap.Stats.BigPowerupsUsed)},
		{"power-ups collected", fmt.Sprint(snap.Stats.PowerupsCollected)},
	}
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%s\n", strings.ToUpper(r[0][:1])+r[0][1:], r[1])
	}
}
