package stage_test

import (
	"testing"

	"github.com/mokiat/gomath/sprec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nobonobo/video-stage/stage"
)

type countingControls struct {
	calls *[]string
}

func (c countingControls) Update() {
	*c.calls = append(*c.calls, "controls")
}

type recordingLight struct {
	calls  *[]string
	target sprec.Vec3
}

func (l *recordingLight) LookAt(target sprec.Vec3) {
	*l.calls = append(*l.calls, "light")
	l.target = target
}

type manualScheduler struct {
	tick    func()
	stopped bool
}

func (s *manualScheduler) Start(tick func()) func() {
	s.tick = tick
	return func() { s.stopped = true }
}

func TestNewLoopRequiresCharacter(t *testing.T) {
	_, err := stage.NewLoop(stage.LoopConfig{})
	assert.ErrorIs(t, err, stage.ErrNoCharacter)
}

func TestLoopTickOrder(t *testing.T) {
	world, overlay, calls := newRenderers()
	light := &recordingLight{calls: calls}
	character := stage.NewTransform()
	character.SetPosition(sprec.NewVec3(0, 0, 10))
	input := held("w", "d")

	loop, err := stage.NewLoop(stage.LoopConfig{
		Controls:   countingControls{calls: calls},
		Input:      input,
		Mover:      stage.NewMover(stage.DefaultKeyMap(), stage.DefaultSpeed),
		Character:  character,
		Light:      light,
		Compositor: stage.NewCompositor(world, overlay),
	})
	require.NoError(t, err)

	loop.Tick()
	assert.Equal(t, []string{"controls", "light", "world", "overlay"}, *calls)
	assert.Equal(t, character.Position(), light.target)
	assert.InDelta(t, 9.8, character.Position().Z, 1e-5)
	assert.InDelta(t, 0.2, character.Position().X, 1e-6)
	assert.Equal(t, uint64(1), loop.Frames())
}

func TestLoopForwardFrames(t *testing.T) {
	character := stage.NewTransform()
	loop, err := stage.NewLoop(stage.LoopConfig{
		Input:     held("w"),
		Mover:     stage.NewMover(stage.DefaultKeyMap(), stage.DefaultSpeed),
		Character: character,
	})
	require.NoError(t, err)

	for i := 0; i < 25; i++ {
		loop.Tick()
	}
	assert.InDelta(t, -5.0, loop.Position().Z, 1e-4)
}

func TestLoopIdleFrames(t *testing.T) {
	character := stage.NewTransform()
	character.SetPosition(sprec.NewVec3(3, 0, 10))
	loop, err := stage.NewLoop(stage.LoopConfig{
		Mover:     stage.NewMover(stage.DefaultKeyMap(), stage.DefaultSpeed),
		Character: character,
	})
	require.NoError(t, err)

	for i := 0; i < 1000; i++ {
		loop.Tick()
	}
	assert.Equal(t, sprec.NewVec3(3, 0, 10), character.Position())
}

func TestLoopChase(t *testing.T) {
	camera := stage.NewCamera(stage.DefaultConfig().Camera)
	character := stage.NewTransform()
	character.SetPosition(sprec.NewVec3(0, 0, 10))
	loop, err := stage.NewLoop(stage.LoopConfig{
		Input:     held("a"),
		Mover:     stage.NewMover(stage.DefaultKeyMap(), 1),
		Character: character,
		Chase:     &stage.Chase{Offset: sprec.NewVec3(0, 20, 20)},
		View:      camera,
	})
	require.NoError(t, err)

	loop.Tick()
	assert.Equal(t, sprec.NewVec3(-1, 0, 10), camera.Target)
	assert.Equal(t, sprec.NewVec3(-1, 20, 30), camera.Position)
}

func TestLoopRun(t *testing.T) {
	character := stage.NewTransform()
	loop, err := stage.NewLoop(stage.LoopConfig{
		Input:     held("s"),
		Mover:     stage.NewMover(stage.DefaultKeyMap(), 1),
		Character: character,
	})
	require.NoError(t, err)

	scheduler := &manualScheduler{}
	stop := loop.Run(scheduler)
	require.NotNil(t, scheduler.tick)
	scheduler.tick()
	scheduler.tick()
	assert.InDelta(t, 2.0, character.Position().Z, 1e-6)

	stop()
	assert.True(t, scheduler.stopped)
}
