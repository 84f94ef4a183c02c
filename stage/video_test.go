package stage_test

import (
	"testing"

	"github.com/mokiat/gomath/sprec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nobonobo/video-stage/stage"
)

func TestVideoPanelDefaults(t *testing.T) {
	panel := stage.NewVideoPanel(stage.DefaultConfig().Video)

	assert.Equal(t, "https://www.youtube.com/embed/dQw4w9WgXcQ?autoplay=1", panel.EmbedURL())
	assert.Equal(t, sprec.NewVec3(800, 450, stage.ColliderDepth), panel.ColliderSize())
	assert.Equal(t, sprec.NewVec3(0.05, 0.05, 1), panel.Root().Scale())
	assert.InDelta(t, 225*0.05, panel.SurfacePosition().Y, 1e-4)
	assert.Equal(t, panel.SurfacePosition(), panel.ColliderPosition())
}

func TestVideoPanelEscapesID(t *testing.T) {
	cfg := stage.DefaultConfig().Video
	cfg.ID = "a/b?c"
	panel := stage.NewVideoPanel(cfg)
	assert.Equal(t, "https://www.youtube.com/embed/a%2Fb%3Fc?autoplay=1", panel.EmbedURL())
}

func TestVideoPanelColocated(t *testing.T) {
	panel := stage.NewVideoPanel(stage.DefaultConfig().Video)
	root, surface, collider := stage.NewTransform(), stage.NewTransform(), stage.NewTransform()
	panel.Bind(root, surface, collider)
	assert.Equal(t, surface.Position(), collider.Position())

	steps := []func(){
		func() { panel.Move(sprec.NewVec3(5, 0, -3)) },
		func() { panel.Scale(sprec.NewVec3(0.1, 0.2, 1)) },
		func() { panel.Place(sprec.NewVec3(10, 20, 0)) },
		func() { panel.Place(sprec.NewVec3(-1, 0, 2)) },
	}
	for _, step := range steps {
		step()
		assert.Equal(t, panel.SurfacePosition(), panel.ColliderPosition())
		assert.Equal(t, surface.Position(), collider.Position())
		assert.Equal(t, panel.Root().Position(), root.Position())
		assert.Equal(t, panel.Root().Scale(), root.Scale())
	}
	assert.Equal(t, sprec.NewVec3(-1, 0, 2), collider.Position())
}

func TestVideoPanelCorners(t *testing.T) {
	cfg := stage.DefaultConfig().Video
	cfg.Scale = [3]float32{1, 1, 1}
	cfg.Width, cfg.Height = 4, 2
	panel := stage.NewVideoPanel(cfg)

	corners := panel.Corners()
	require.Len(t, corners, 4)
	assert.Equal(t, sprec.NewVec3(-2, 0, 0), corners[0])
	assert.Equal(t, sprec.NewVec3(2, 2, 0), corners[2])
}
