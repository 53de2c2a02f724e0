package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/angeldust/game"
	"github.com/milk9111/angeldust/levels"
	"github.com/milk9111/angeldust/prefabs"
)

const (
	baseWidth  = 1280
	baseHeight = 720
)

// Viewer is the ebiten front end: it feeds keyboard and mouse input to the
// simulation and draws its state.
type Viewer struct {
	levelName string
	spec      *prefabs.ViewerSpec
	debug     bool

	game   *game.Game
	camera *Camera
	input  *Input
	pause  *ebitenui.UI

	paused bool
	quit   bool
	frames int

	tuningModTime time.Time
}

// tuningFiles are polled for changes so tuning can be edited while playing.
var tuningFiles = []string{"player.yaml", "enemy.yaml", "game.yaml"}

const reloadPollFrames = 30

func NewViewer(levelName string, spec *prefabs.ViewerSpec, debug bool) (*Viewer, error) {
	v := &Viewer{
		levelName: levelName,
		spec:      spec,
		debug:     debug,
		camera:    NewCamera(baseWidth, baseHeight, spec.Scale),
	}
	v.input = NewInput(v.camera)
	v.pause = NewPauseUI(v)
	if err := v.restart(); err != nil {
		return nil, err
	}
	return v, nil
}

// restart reloads the level and tuning from scratch.
func (v *Viewer) restart() error {
	lvl, err := levels.LoadLevel(v.levelName)
	if err != nil {
		return err
	}
	tuning, err := prefabs.LoadTuning()
	if err != nil {
		return err
	}
	g, err := game.New(lvl, tuning)
	if err != nil {
		return fmt.Errorf("viewer: %w", err)
	}
	if v.game != nil {
		v.game.Close()
	}
	v.game = g
	v.paused = false
	v.tuningModTime = latestTuningModTime()
	return nil
}

func latestTuningModTime() time.Time {
	var latest time.Time
	for _, name := range tuningFiles {
		if t, ok := prefabs.ModTime(name); ok && t.After(latest) {
			latest = t
		}
	}
	return latest
}

// reloadIfChanged hot-reloads tuning edited on disk. Invalid files are
// logged and the running values kept.
func (v *Viewer) reloadIfChanged() {
	latest := latestTuningModTime()
	if !latest.After(v.tuningModTime) {
		return
	}
	v.tuningModTime = latest

	tuning, err := prefabs.LoadTuning()
	if err != nil {
		slog.Warn("tuning reload failed", "error", err)
		return
	}
	if err := v.game.Reload(tuning); err != nil {
		slog.Warn("tuning reload rejected", "error", err)
	}
}

func (v *Viewer) Close() {
	if v.game != nil {
		v.game.Close()
	}
}

func (v *Viewer) Update() error {
	if v.quit {
		return ebiten.Termination
	}
	v.frames++

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		v.paused = !v.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		v.debug = !v.debug
	}
	if v.paused {
		v.pause.Update()
		return nil
	}
	if v.frames%reloadPollFrames == 0 {
		v.reloadIfChanged()
	}

	snap := v.game.Snapshot()
	if snap.Over() {
		if inpututil.IsKeyJustPressed(ebiten.KeyR) {
			return v.restart()
		}
		return nil
	}

	v.camera.Follow(snap.Player.Position)
	v.game.SetInput(v.input.Poll())
	return v.game.Update(1 / float64(ebiten.TPS()))
}

func (v *Viewer) Draw(screen *ebiten.Image) {
	snap := v.game.Snapshot()
	v.camera.Follow(snap.Player.Position)

	v.drawWorld(screen, snap)
	v.drawHUD(screen, snap)

	if v.paused {
		v.pause.Draw(screen)
	}
}

func (v *Viewer) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return baseWidth, baseHeight
}

func (v *Viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
