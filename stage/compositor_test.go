package stage_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nobonobo/video-stage/stage"
)

type recordingRenderer struct {
	name   string
	calls  *[]string
	width  int
	height int
}

func (r *recordingRenderer) Render() {
	*r.calls = append(*r.calls, r.name)
}

func (r *recordingRenderer) SetSize(width, height int) {
	r.width, r.height = width, height
}

func newRenderers() (*recordingRenderer, *recordingRenderer, *[]string) {
	var calls []string
	return &recordingRenderer{name: "world", calls: &calls},
		&recordingRenderer{name: "overlay", calls: &calls},
		&calls
}

func TestCompositorRenderOrder(t *testing.T) {
	world, overlay, calls := newRenderers()
	compositor := stage.NewCompositor(world, overlay)

	compositor.Render()
	compositor.Render()
	assert.Equal(t, []string{"world", "overlay", "world", "overlay"}, *calls)
}

func TestCompositorResize(t *testing.T) {
	world, overlay, _ := newRenderers()
	compositor := stage.NewCompositor(world, overlay)
	camera := stage.NewCamera(stage.DefaultConfig().Camera)
	compositor.OnResize(camera.SetSize)

	require.NoError(t, compositor.Resize(1600, 800))
	assert.Equal(t, 1600, world.width)
	assert.Equal(t, 800, overlay.height)
	assert.InDelta(t, 2.0, camera.Aspect, 1e-6)

	w, h := compositor.Size()
	assert.Equal(t, 1600, w)
	assert.Equal(t, 800, h)
}

func TestCompositorRejectsEmptySize(t *testing.T) {
	world, overlay, _ := newRenderers()
	compositor := stage.NewCompositor(world, overlay)
	require.NoError(t, compositor.Resize(640, 480))

	err := compositor.Resize(0, 480)
	assert.ErrorIs(t, err, stage.ErrInvalidSize)
	assert.Equal(t, 640, world.width)
}

func TestLayers(t *testing.T) {
	assert.Greater(t, stage.WorldLayer.ZIndex, stage.OverlayLayer.ZIndex)
	assert.True(t, stage.WorldLayer.PassThrough)
	assert.False(t, stage.OverlayLayer.PassThrough)
}
