package stage

import "fmt"

// Renderer draws the shared scene through the shared camera onto one
// output surface.
type Renderer interface {
	Render()
	SetSize(width, height int)
}

// Layer describes how an output surface is stacked on the page.
type Layer struct {
	ZIndex int
	// PassThrough lets pointer events reach the surfaces below.
	PassThrough bool
}

var (
	// WorldLayer is the 3D surface: in front, transparent to pointer input.
	WorldLayer = Layer{ZIndex: 1, PassThrough: true}
	// OverlayLayer is the page-content surface: behind, receives input.
	OverlayLayer = Layer{ZIndex: -1}
)

// Compositor keeps the world and overlay renderers in step: same size,
// world first, overlay second.
type Compositor struct {
	world   Renderer
	overlay Renderer

	width, height int
	onResize      []func(width, height int)
}

func NewCompositor(world, overlay Renderer) *Compositor {
	return &Compositor{
		world:   world,
		overlay: overlay,
	}
}

// OnResize registers a hook run after both renderers were resized, e.g. to
// update the camera aspect.
func (c *Compositor) OnResize(fn func(width, height int)) {
	c.onResize = append(c.onResize, fn)
}

// Resize sets the size of both surfaces.
func (c *Compositor) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	c.width, c.height = width, height
	c.world.SetSize(width, height)
	c.overlay.SetSize(width, height)
	for _, fn := range c.onResize {
		fn(width, height)
	}
	return nil
}

// Size is the last size applied with Resize.
func (c *Compositor) Size() (width, height int) {
	return c.width, c.height
}

func (c *Compositor) Render() {
	c.world.Render()
	c.overlay.Render()
}
