package stage_test

import (
	"math"
	"testing"

	"github.com/mokiat/gomath/sprec"
	"github.com/stretchr/testify/assert"

	"github.com/nobonobo/video-stage/stage"
)

func TestCameraDefaults(t *testing.T) {
	camera := stage.NewCamera(stage.DefaultConfig().Camera)
	assert.Equal(t, sprec.NewVec3(0, 50, 50), camera.Position)
	assert.Equal(t, sprec.ZeroVec3(), camera.Target)
	assert.InDelta(t, 75.0, camera.FoV.Degrees(), 1e-4)
}

func TestCameraProjectCenter(t *testing.T) {
	camera := stage.NewCamera(stage.DefaultConfig().Camera)
	camera.SetSize(800, 600)

	x, y, ok := camera.Project(camera.Target, 800, 600)
	assert.True(t, ok)
	assert.InDelta(t, 400.0, x, 1e-3)
	assert.InDelta(t, 300.0, y, 1e-3)
}

func TestCameraProjectSides(t *testing.T) {
	camera := stage.NewCamera(stage.CameraConfig{FoV: 90, Near: 0.1, Far: 100, Position: [3]float32{0, 0, 10}})
	camera.SetSize(100, 100)

	x, y, ok := camera.Project(sprec.NewVec3(5, 5, 0), 100, 100)
	assert.True(t, ok)
	assert.InDelta(t, 75.0, x, 1e-3)
	assert.InDelta(t, 25.0, y, 1e-3)

	_, _, ok = camera.Project(sprec.NewVec3(0, 0, 20), 100, 100)
	assert.False(t, ok)
}

func TestCameraOrientation(t *testing.T) {
	camera := stage.NewCamera(stage.CameraConfig{FoV: 60, Near: 0.1, Far: 100, Position: [3]float32{0, 10, 10}})
	yaw, pitch := camera.Orientation()
	assert.InDelta(t, 0.0, yaw, 1e-6)
	assert.InDelta(t, -math.Pi/4, pitch, 1e-6)
}

func TestOrbitNoInput(t *testing.T) {
	camera := stage.NewCamera(stage.DefaultConfig().Camera)
	before := camera.Position
	stage.NewOrbitControls(camera).Update()
	assert.Equal(t, before, camera.Position)
}

func TestOrbitKeepsDistance(t *testing.T) {
	camera := stage.NewCamera(stage.DefaultConfig().Camera)
	distance := camera.Distance()
	controls := stage.NewOrbitControls(camera)

	controls.Drag(120, -40)
	controls.Update()
	assert.InDelta(t, distance, camera.Distance(), 1e-3)
	assert.NotEqual(t, sprec.NewVec3(0, 50, 50), camera.Position)

	// accumulated input is consumed
	after := camera.Position
	controls.Update()
	assert.Equal(t, after, camera.Position)
}

func TestOrbitClampsPolarAngle(t *testing.T) {
	camera := stage.NewCamera(stage.DefaultConfig().Camera)
	controls := stage.NewOrbitControls(camera)

	controls.Drag(0, 1e6)
	controls.Update()
	assert.Greater(t, camera.Position.Y, float32(0))
	assert.Less(t, camera.Position.Y, camera.Distance())
}

func TestOrbitZoomClamped(t *testing.T) {
	camera := stage.NewCamera(stage.DefaultConfig().Camera)
	controls := stage.NewOrbitControls(camera)
	controls.MaxDistance = 80

	controls.Zoom(100)
	controls.Update()
	assert.InDelta(t, 80.0, camera.Distance(), 1e-3)

	controls.Zoom(-9)
	controls.Update()
	assert.InDelta(t, 8.0, camera.Distance(), 1e-3)
}
