package stage

import "github.com/mokiat/gomath/sprec"

// Node is a positioned scene graph node owned by a rendering backend.
type Node interface {
	Position() sprec.Vec3
	SetPosition(position sprec.Vec3)
}

// Aimer is anything that can be turned to face a world point, such as a light.
type Aimer interface {
	LookAt(target sprec.Vec3)
}

// Placeable is a backend node whose local placement is driven from Go.
type Placeable interface {
	SetPosition(position sprec.Vec3)
	SetScale(scale sprec.Vec3)
}

var (
	_ Node      = (*Transform)(nil)
	_ Placeable = (*Transform)(nil)
)

// Transform is an in-memory node with a position and a scale.
type Transform struct {
	position sprec.Vec3
	scale    sprec.Vec3
}

func NewTransform() *Transform {
	return &Transform{
		scale: sprec.NewVec3(1.0, 1.0, 1.0),
	}
}

func (t *Transform) Position() sprec.Vec3 {
	return t.position
}

func (t *Transform) SetPosition(position sprec.Vec3) {
	t.position = position
}

func (t *Transform) Scale() sprec.Vec3 {
	return t.scale
}

func (t *Transform) SetScale(scale sprec.Vec3) {
	t.scale = scale
}

// Apply maps a point from this transform's local space to its parent space.
func (t *Transform) Apply(local sprec.Vec3) sprec.Vec3 {
	return sprec.Vec3Sum(t.position, sprec.NewVec3(
		local.X*t.scale.X,
		local.Y*t.scale.Y,
		local.Z*t.scale.Z,
	))
}

func vec3(v [3]float32) sprec.Vec3 {
	return sprec.NewVec3(v[0], v[1], v[2])
}
