package main

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/angeldust/common"
	"github.com/milk9111/angeldust/ecs/component"
	"github.com/milk9111/angeldust/game"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/basicfont"
)

var hudFace ebtext.Face = ebtext.NewGoXFace(basicfont.Face7x13)

const (
	actorSize  = 40.0
	bulletSize = 10.0
	pickupSize = 30.0
)

func (v *Viewer) drawWorld(screen *ebiten.Image, snap game.Snapshot) {
	colors := v.spec.Colors
	screen.Fill(colors.Background.Or(colornames.Black))

	wall := colors.Wall.Or(colornames.Slategray)
	for _, b := range v.game.Walls() {
		v.fillRect(screen, common.V(b.MinX, b.MinY), common.V(b.MaxX, b.MaxY), wall)
	}

	if v.debug {
		v.drawNavMesh(screen, colors.NavMesh.Or(colornames.Seagreen))
	}

	pickup := colors.Pickup.Or(colornames.Orchid)
	for _, p := range snap.Pickups {
		v.fillBox(screen, p.Position, pickupSize, pickup)
	}

	path := colors.Path.Or(colornames.Deepskyblue)
	for _, e := range snap.Enemies {
		if v.debug && e.State == component.AIAlert {
			v.drawPath(screen, e, path)
		}
		v.fillBox(screen, e.Position, actorSize, v.enemyColor(e.State))
		v.drawFacing(screen, e.Position, e.Rotation)
	}

	bullet := colors.Bullet.Or(colornames.White)
	for _, b := range snap.Bullets {
		x, y := v.camera.ToScreen(b.Position)
		vector.FillCircle(screen, x, y, float32(bulletSize/2*v.camera.Zoom()), bullet, true)
	}

	if snap.Player.Alive {
		v.fillBox(screen, snap.Player.Position, actorSize, colors.Player.Or(colornames.Gold))
		v.drawFacing(screen, snap.Player.Position, snap.Player.Rotation)
	}
}

func (v *Viewer) enemyColor(state component.AIStateKind) color.Color {
	colors := v.spec.Colors
	switch state {
	case component.AIAlert:
		return colors.EnemyAlert.Or(colornames.Orange)
	case component.AICombat:
		return colors.EnemyCombat.Or(colornames.Crimson)
	default:
		return colors.EnemyIdle.Or(colornames.Gray)
	}
}

func (v *Viewer) drawNavMesh(screen *ebiten.Image, clr color.Color) {
	nav := v.game.NavMesh()
	verts := nav.Vertices()
	for _, tri := range nav.Triangles() {
		pts := [3]common.Vec2{verts[tri.A], verts[tri.B], verts[tri.C]}
		for i := range pts {
			x0, y0 := v.camera.ToScreen(pts[i])
			x1, y1 := v.camera.ToScreen(pts[(i+1)%3])
			vector.StrokeLine(screen, x0, y0, x1, y1, 1, clr, true)
		}
	}
}

func (v *Viewer) drawPath(screen *ebiten.Image, e game.EnemySnapshot, clr color.Color) {
	if e.Current >= len(e.Path) {
		return
	}
	prev := e.Position
	for _, p := range e.Path[e.Current:] {
		x0, y0 := v.camera.ToScreen(prev)
		x1, y1 := v.camera.ToScreen(p)
		vector.StrokeLine(screen, x0, y0, x1, y1, 2, clr, true)
		vector.FillCircle(screen, x1, y1, 3, clr, true)
		prev = p
	}
}

func (v *Viewer) drawFacing(screen *ebiten.Image, pos common.Vec2, rotation float64) {
	tip := pos.Add(common.Up(rotation).Scale(actorSize * 0.75))
	x0, y0 := v.camera.ToScreen(pos)
	x1, y1 := v.camera.ToScreen(tip)
	vector.StrokeLine(screen, x0, y0, x1, y1, 2, colornames.White, true)
}

func (v *Viewer) fillBox(screen *ebiten.Image, center common.Vec2, size float64, clr color.Color) {
	half := common.V(size/2, size/2)
	v.fillRect(screen, center.Sub(half), center.Add(half), clr)
}

// fillRect fills the world rectangle spanned by lo and hi.
func (v *Viewer) fillRect(screen *ebiten.Image, lo, hi common.Vec2, clr color.Color) {
	x0, y1 := v.camera.ToScreen(lo)
	x1, y0 := v.camera.ToScreen(hi)
	vector.FillRect(screen, x0, y0, x1-x0, y1-y0, clr, false)
}

func (v *Viewer) drawHUD(screen *ebiten.Image, snap game.Snapshot) {
	lines := []string{
		fmt.Sprintf("Health %.0f/%.0f", snap.Player.Health, snap.Player.MaxHealth),
		fmt.Sprintf("Power-ups  small %d  big %d", snap.Player.Inventory.SmallPowerups, snap.Player.Inventory.BigPowerups),
		fmt.Sprintf("Enemies %d  Time %.1fs", snap.Stats.EnemiesRemaining, snap.Stats.Elapsed),
	}
	if snap.Player.Effect != component.EffectNone {
		lines = append(lines, "Effect "+snap.Player.Effect.String())
	}
	if v.debug {
		lines = append(lines, fmt.Sprintf("FPS %.1f  bullets %d", ebiten.ActualFPS(), len(snap.Bullets)))
	}
	drawText(screen, strings.Join(lines, "\n"), 12, 12, colornames.White)

	if !snap.Over() {
		return
	}
	title := "LEVEL CLEARED"
	if snap.Stats.PlayerDead {
		title = "YOU DIED"
	}
	summary := fmt.Sprintf("%s\n\nTime %.2fs\nShots %d\nKills %d\nAccuracy %.1f%%\nDamage taken %.0f\n\nPress R to restart",
		title, snap.Stats.Elapsed, snap.Stats.ShotsFired, snap.Stats.EnemiesKilled, snap.Stats.Accuracy(), snap.Stats.DamageTaken)
	drawText(screen, summary, baseWidth/2-80, baseHeight/2-60, colornames.White)
}

func drawText(screen *ebiten.Image, s string, x, y float64, clr color.Color) {
	op := &ebtext.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	op.LineSpacing = 16
	ebtext.Draw(screen, s, hudFace, op)
}
