package mithril

import (
	"github.com/go-gl/mathgl/mgl32"
)

// FlyingCameraModule moves the shared Camera resource around with
// WASD/Space/Control and mouse look. Tab toggles mouse capture.
type FlyingCameraModule struct{}

func (m FlyingCameraModule) Install(app *App, cmd *Commands) {
	app.UseSystem(
		System(flyingCameraSystem).
			InStage(Update).
			RunAlways(),
	)
}

func flyingCameraSystem(input *Input, camera *Camera, time *Time) {
	if input.JustPressed[KeyTab] {
		input.MouseCaptured = !input.MouseCaptured
	}

	dt := float32(time.Dt.Seconds())
	if dt <= 0 {
		return
	}

	// 1. Rotation
	sensitivity := camera.Sensitivity
	if sensitivity == 0 {
		sensitivity = 0.1
	}

	if input.MouseCaptured {
		camera.Yaw += float32(input.MouseDeltaX) * sensitivity
		camera.Pitch -= float32(input.MouseDeltaY) * sensitivity
	}

	// Clamp pitch
	if camera.Pitch > 89.0 {
		camera.Pitch = 89.0
	}
	if camera.Pitch < -89.0 {
		camera.Pitch = -89.0
	}

	forward := camera.forward()
	right := forward.Cross(mgl32.Vec3{0, 1, 0}).Normalize()
	up := mgl32.Vec3{0, 1, 0}

	// 2. Movement
	speed := camera.Speed
	if speed == 0 {
		speed = 5.0
	}

	move := mgl32.Vec3{0, 0, 0}
	if input.Pressed[KeyW] {
		move[2] += 1
	}
	if input.Pressed[KeyS] {
		move[2] -= 1
	}
	if input.Pressed[KeyA] {
		move[0] -= 1
	}
	if input.Pressed[KeyD] {
		move[0] += 1
	}
	if input.Pressed[KeySpace] {
		move[1] += 1
	}
	if input.Pressed[KeyControl] {
		move[1] -= 1
	}

	moveDir := mgl32.Vec3{0, 0, 0}
	moveDir = moveDir.Add(right.Mul(move[0]))
	moveDir = moveDir.Add(up.Mul(move[1]))
	moveDir = moveDir.Add(forward.Mul(move[2]))

	if moveDir.Len() > 0 {
		camera.Position = camera.Position.Add(moveDir.Normalize().Mul(speed * dt))
	}
}
