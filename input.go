package main

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/angeldust/common"
	"github.com/milk9111/angeldust/ecs/component"
)

const stickDeadzone = 0.3

// Input polls keyboard, mouse and the first gamepad.
type Input struct {
	camera *Camera
}

func NewInput(camera *Camera) *Input {
	return &Input{camera: camera}
}

// Poll returns the player input for this frame. Movement uses WASD or the
// arrows, aim follows the mouse, and Q/E use a small/big power-up.
func (i *Input) Poll() component.Input {
	var in component.Input

	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyLeft) {
		in.MoveX--
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyRight) {
		in.MoveX++
	}
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyUp) {
		in.MoveY++
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyDown) {
		in.MoveY--
	}

	mx, my := ebiten.CursorPosition()
	aim := i.camera.ToWorld(mx, my)
	in.AimX, in.AimY, in.HasAim = aim.X, aim.Y, true

	in.Fire = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) || ebiten.IsKeyPressed(ebiten.KeySpace)
	in.UseSmall = inpututil.IsKeyJustPressed(ebiten.KeyQ)
	in.UseBig = inpututil.IsKeyJustPressed(ebiten.KeyE)

	ids := ebiten.AppendGamepadIDs(nil)
	if len(ids) == 0 {
		return in
	}
	gid := ids[0]
	if !ebiten.IsStandardGamepadLayoutAvailable(gid) {
		return in
	}

	lx := ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisLeftStickHorizontal)
	ly := ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisLeftStickVertical)
	if math.Hypot(lx, ly) > stickDeadzone {
		in.MoveX, in.MoveY = lx, -ly
	}

	rx := ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisRightStickHorizontal)
	ry := ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisRightStickVertical)
	if math.Hypot(rx, ry) > stickDeadzone {
		center := common.V(i.camera.PosX, i.camera.PosY)
		target := center.Add(common.V(rx, -ry).NormalizeOrZero().Scale(common.TileSize * 4))
		in.AimX, in.AimY = target.X, target.Y
	}

	if ebiten.IsStandardGamepadButtonPressed(gid, ebiten.StandardGamepadButtonFrontBottomRight) {
		in.Fire = true
	}
	if inpututil.IsStandardGamepadButtonJustPressed(gid, ebiten.StandardGamepadButtonFrontTopLeft) {
		in.UseSmall = true
	}
	if inpututil.IsStandardGamepadButtonJustPressed(gid, ebiten.StandardGamepadButtonFrontTopRight) {
		in.UseBig = true
	}
	return in
}
