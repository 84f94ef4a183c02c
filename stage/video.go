package stage

import (
	"fmt"
	"net/url"

	"github.com/mokiat/gomath/sprec"
)

// ColliderDepth is the thickness of the invisible box behind the video
// surface.
const ColliderDepth = float32(0.001)

// VideoPanel is an embedded video shown on an interactive page surface, with
// an invisible collider box of the same size occupying the same spot in the
// 3D scene. Both children hang off one root, and the panel keeps their local
// placement identical.
type VideoPanel struct {
	ID     string
	Width  float32
	Height float32

	root     *Transform
	surface  *Transform
	collider *Transform

	bindings []panelBinding
}

type panelBinding struct {
	root, surface, collider Placeable
}

// NewVideoPanel creates a panel whose children sit half its height above
// the root, so the panel stands on the ground.
func NewVideoPanel(cfg VideoConfig) *VideoPanel {
	p := &VideoPanel{
		ID:       cfg.ID,
		Width:    cfg.Width,
		Height:   cfg.Height,
		root:     NewTransform(),
		surface:  NewTransform(),
		collider: NewTransform(),
	}
	p.root.SetScale(vec3(cfg.Scale))
	p.root.SetPosition(vec3(cfg.Position))
	p.Place(sprec.NewVec3(0, cfg.Height/2, 0))
	return p
}

// EmbedURL is the iframe source for the panel's video.
func (p *VideoPanel) EmbedURL() string {
	return fmt.Sprintf("https://www.youtube.com/embed/%s?autoplay=1", url.PathEscape(p.ID))
}

// ColliderSize is the collider box extent in panel units.
func (p *VideoPanel) ColliderSize() sprec.Vec3 {
	return sprec.NewVec3(p.Width, p.Height, ColliderDepth)
}

// Bind attaches backend nodes for the root, the surface and the collider.
// They receive the current placement immediately and on every change.
func (p *VideoPanel) Bind(root, surface, collider Placeable) {
	b := panelBinding{root: root, surface: surface, collider: collider}
	p.bindings = append(p.bindings, b)
	p.syncRoot(b)
	p.syncChildren(b)
}

// Move sets the root position.
func (p *VideoPanel) Move(position sprec.Vec3) {
	p.root.SetPosition(position)
	for _, b := range p.bindings {
		p.syncRoot(b)
	}
}

// Scale sets the root scale.
func (p *VideoPanel) Scale(scale sprec.Vec3) {
	p.root.SetScale(scale)
	for _, b := range p.bindings {
		p.syncRoot(b)
	}
}

// Place sets the local position of both the surface and the collider.
func (p *VideoPanel) Place(local sprec.Vec3) {
	p.surface.SetPosition(local)
	p.collider.SetPosition(local)
	for _, b := range p.bindings {
		p.syncChildren(b)
	}
}

func (p *VideoPanel) Root() *Transform {
	return p.root
}

// SurfacePosition is the surface position in world space.
func (p *VideoPanel) SurfacePosition() sprec.Vec3 {
	return p.root.Apply(p.surface.Position())
}

// ColliderPosition is the collider position in world space.
func (p *VideoPanel) ColliderPosition() sprec.Vec3 {
	return p.root.Apply(p.collider.Position())
}

// Corners returns the surface corners in world space, counter-clockwise
// from bottom-left.
func (p *VideoPanel) Corners() [4]sprec.Vec3 {
	center := p.surface.Position()
	hw, hh := p.Width/2, p.Height/2
	return [4]sprec.Vec3{
		p.root.Apply(sprec.NewVec3(center.X-hw, center.Y-hh, center.Z)),
		p.root.Apply(sprec.NewVec3(center.X+hw, center.Y-hh, center.Z)),
		p.root.Apply(sprec.NewVec3(center.X+hw, center.Y+hh, center.Z)),
		p.root.Apply(sprec.NewVec3(center.X-hw, center.Y+hh, center.Z)),
	}
}

func (p *VideoPanel) syncRoot(b panelBinding) {
	if b.root == nil {
		return
	}
	b.root.SetPosition(p.root.Position())
	b.root.SetScale(p.root.Scale())
}

func (p *VideoPanel) syncChildren(b panelBinding) {
	if b.surface != nil {
		b.surface.SetPosition(p.surface.Position())
	}
	if b.collider != nil {
		b.collider.SetPosition(p.collider.Position())
	}
}
