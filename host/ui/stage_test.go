package ui

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/mokiat/gomath/dprec"
	"github.com/mokiat/gomath/sprec"
	"github.com/mokiat/lacking/util/async"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nobonobo/video-stage/stage"
)

type fakeNode struct {
	position dprec.Vec3
	rotation dprec.Quat
}

func (n *fakeNode) Position() dprec.Vec3 {
	return n.position
}

func (n *fakeNode) SetPosition(position dprec.Vec3) {
	n.position = position
}

func (n *fakeNode) SetRotation(rotation dprec.Quat) {
	n.rotation = rotation
}

func TestSceneNodePosition(t *testing.T) {
	raw := &fakeNode{}
	node := sceneNode{node: raw}

	node.SetPosition(sprec.NewVec3(1, 2, 3))
	assert.Equal(t, dprec.NewVec3(1, 2, 3), raw.position)
	assert.Equal(t, sprec.NewVec3(1, 2, 3), node.Position())
}

func TestSceneNodeLookAt(t *testing.T) {
	raw := &fakeNode{position: dprec.NewVec3(0, 0, 10)}
	node := sceneNode{node: raw}

	// already facing -Z towards the origin
	node.LookAt(sprec.ZeroVec3())
	assert.InDelta(t, 1.0, raw.rotation.W, 1e-9)

	node.LookAt(sprec.NewVec3(0, 0, 20))
	assert.InDelta(t, 0.0, raw.rotation.W, 1e-9)
	assert.InDelta(t, 1.0, math.Abs(raw.rotation.Y), 1e-9)
}

func TestOverlayHit(t *testing.T) {
	camera := stage.NewCamera(stage.CameraConfig{
		FoV:      75,
		Near:     0.1,
		Far:      2000,
		Position: [3]float32{0, 10, 50},
		Target:   [3]float32{0, 10, 0},
	})
	overlay := &overlayRenderer{
		camera: camera,
		panel: stage.NewVideoPanel(stage.VideoConfig{
			ID:     "abc",
			Width:  400,
			Height: 400,
			Scale:  [3]float32{0.05, 0.05, 1},
		}),
	}
	overlay.SetSize(800, 800)

	assert.False(t, overlay.hit(400, 400), "nothing drawn yet")

	overlay.project()
	assert.True(t, overlay.visible)
	assert.True(t, overlay.hit(400, 400))
	assert.False(t, overlay.hit(5, 5))
}

func TestOverlayHitBehindCamera(t *testing.T) {
	camera := stage.NewCamera(stage.CameraConfig{
		FoV:      75,
		Near:     0.1,
		Far:      2000,
		Position: [3]float32{0, 10, -50},
		Target:   [3]float32{0, 10, -100},
	})
	overlay := &overlayRenderer{
		camera: camera,
		panel:  stage.NewVideoPanel(stage.DefaultConfig().Video),
	}
	overlay.SetSize(800, 800)

	overlay.project()
	assert.False(t, overlay.visible)
	assert.False(t, overlay.hit(400, 400))
}

func deliverNow(node stage.Node, err error) stage.ModelLoader {
	return stage.ModelLoaderFunc(func(path string) async.Promise[stage.Node] {
		result := async.NewPromise[stage.Node]()
		if err != nil {
			result.Fail(err)
		} else {
			result.Deliver(node)
		}
		return result
	})
}

func TestNewStageLoop(t *testing.T) {
	cfg := stage.DefaultConfig()
	character := stage.NewTransform()
	input := stage.NewInput()

	loop, err := newStageLoop(stageWiring{
		Config: cfg,
		Loader: deliverNow(character, nil),
		Input:  input,
	})
	require.NoError(t, err)
	require.NotNil(t, loop)
	assert.Equal(t, vec(cfg.Character.Spawn), loop.Position())

	input.Press("w")
	loop.Tick()
	assert.InDelta(t, cfg.Character.Spawn[2]-cfg.Speed, character.Position().Z, 1e-6)
	assert.Equal(t, uint64(1), loop.Frames())
}

func TestNewStageLoopChase(t *testing.T) {
	cfg := stage.DefaultConfig()
	cfg.Chase.Enabled = true
	camera := stage.NewCamera(cfg.Camera)

	loop, err := newStageLoop(stageWiring{
		Config: cfg,
		Loader: deliverNow(stage.NewTransform(), nil),
		Input:  stage.NewInput(),
		Camera: camera,
	})
	require.NoError(t, err)

	loop.Tick()
	assert.Equal(t, sprec.NewVec3(0, 20, 30), camera.Position)
	assert.Equal(t, vec(cfg.Character.Spawn), camera.Target)
}

func TestNewStageLoopLoadFailure(t *testing.T) {
	cause := errors.New("model character.dat was not fetched")
	loop, err := newStageLoop(stageWiring{
		Config: stage.DefaultConfig(),
		Loader: deliverNow(nil, cause),
		Input:  stage.NewInput(),
	})
	assert.Nil(t, loop)
	assert.ErrorIs(t, err, cause)

	var loadErr *stage.LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, "character.dat", loadErr.Path)
}

func TestNewStageLoopTimeout(t *testing.T) {
	cfg := stage.DefaultConfig()
	cfg.LoadTimeout = stage.Duration(20 * time.Millisecond)
	never := stage.ModelLoaderFunc(func(path string) async.Promise[stage.Node] {
		return async.NewPromise[stage.Node]()
	})

	_, err := newStageLoop(stageWiring{
		Config: cfg,
		Loader: never,
		Input:  stage.NewInput(),
	})
	assert.ErrorIs(t, err, stage.ErrLoadTimeout)
}
