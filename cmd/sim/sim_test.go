package main

import (
	"context"
	"testing"

	"github.com/milk9111/angeldust/game"
	"github.com/milk9111/angeldust/levels"
	"github.com/milk9111/angeldust/prefabs"
	"github.com/milk9111/angeldust/scenario"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSim(t *testing.T, src string, ticks int) *sim {
	t.Helper()
	lvl, err := levels.FromRows("sim", []string{
		"##########",
		"#P......E#",
		"##########",
	})
	require.NoError(t, err)
	tuning, err := prefabs.LoadTuning()
	require.NoError(t, err)
	g, err := game.New(lvl, tuning)
	require.NoError(t, err)
	t.Cleanup(g.Close)

	rt, err := scenario.Compile("test", []byte(src))
	require.NoError(t, err)
	return &sim{game: g, runtime: rt, opts: options{ticks: ticks, tps: 60}}
}

func TestLoopEndsWhenLevelIsWon(t *testing.T) {
	s := newSim(t, `
update := func(obs, memory) {
	if len(obs.enemies) == 0 { return {} }
	e := obs.enemies[0]
	return {aim_x: e.x, aim_y: e.y, fire: true}
}`, 600)

	require.NoError(t, s.loop(context.Background(), nil))

	snap := s.game.Snapshot()
	assert.True(t, snap.Over())
	assert.Equal(t, 1, snap.Stats.EnemiesKilled)
	assert.Less(t, snap.Tick, 600)
}

func TestLoopStopsOnQuit(t *testing.T) {
	s := newSim(t, `
update := func(obs, memory) {
	return {quit: obs.tick >= 3}
}`, 600)

	require.NoError(t, s.loop(context.Background(), nil))
	assert.Equal(t, 3, s.game.Snapshot().Tick)
}

func TestObserve(t *testing.T) {
	s := newSim(t, `update := func(obs, memory) { return {} }`, 1)
	obs := observe(s.game.Snapshot())

	assert.Equal(t, 50.0, obs.PlayerX)
	assert.Equal(t, 50.0, obs.PlayerY)
	assert.Equal(t, 100.0, obs.Health)
	assert.Equal(t, 2, obs.SmallPowerups)
	require.Len(t, obs.Enemies, 1)
	assert.Equal(t, "idle", obs.Enemies[0].State)
}
