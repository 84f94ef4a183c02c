package stage

import (
	"math"

	"github.com/mokiat/gomath/sprec"
)

// Camera is a perspective camera looking from Position towards Target with
// +Y up. It is shared by both renderers.
type Camera struct {
	Position sprec.Vec3
	Target   sprec.Vec3
	FoV      sprec.Angle
	Near     float32
	Far      float32
	Aspect   float32
}

func NewCamera(cfg CameraConfig) *Camera {
	return &Camera{
		Position: vec3(cfg.Position),
		Target:   vec3(cfg.Target),
		FoV:      sprec.Degrees(cfg.FoV),
		Near:     cfg.Near,
		Far:      cfg.Far,
		Aspect:   1.0,
	}
}

// SetSize updates the aspect ratio for a viewport. Sizes that are not
// positive are ignored.
func (c *Camera) SetSize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.Aspect = float32(width) / float32(height)
}

// LookAt points the camera at target without moving it.
func (c *Camera) LookAt(target sprec.Vec3) {
	c.Target = target
}

// Distance is the distance between the camera and its target.
func (c *Camera) Distance() float32 {
	return sprec.Vec3Diff(c.Position, c.Target).Length()
}

// Orientation returns the yaw around +Y and the pitch around the camera's
// local X axis, both in radians, for a camera whose default view is -Z.
func (c *Camera) Orientation() (yaw, pitch float64) {
	return Orientation(c.Position, c.Target)
}

// Orientation returns the yaw and pitch that turn a -Z facing node at from
// towards to.
func Orientation(from, to sprec.Vec3) (yaw, pitch float64) {
	dir := sprec.Vec3Diff(to, from)
	horizontal := math.Hypot(float64(dir.X), float64(dir.Z))
	yaw = math.Atan2(-float64(dir.X), -float64(dir.Z))
	pitch = math.Atan2(float64(dir.Y), horizontal)
	return yaw, pitch
}

// basis returns the camera's right, up and forward unit vectors.
func (c *Camera) basis() (right, up, forward sprec.Vec3, ok bool) {
	dir := sprec.Vec3Diff(c.Target, c.Position)
	if dir.Length() == 0 {
		return right, up, forward, false
	}
	forward = sprec.UnitVec3(dir)
	right = sprec.Vec3Cross(forward, sprec.BasisYVec3())
	if right.Length() == 0 {
		// looking straight up or down
		right = sprec.BasisXVec3()
	}
	right = sprec.UnitVec3(right)
	up = sprec.Vec3Cross(right, forward)
	return right, up, forward, true
}

// Project maps a world point to viewport pixel coordinates with the origin
// in the top-left corner. ok is false for points behind the near plane.
func (c *Camera) Project(point sprec.Vec3, width, height float32) (x, y float32, ok bool) {
	right, up, forward, ok := c.basis()
	if !ok {
		return 0, 0, false
	}
	rel := sprec.Vec3Diff(point, c.Position)
	depth := sprec.Vec3Dot(rel, forward)
	if depth < c.Near {
		return 0, 0, false
	}
	tanHalf := float32(math.Tan(float64(c.FoV.Radians()) / 2))
	aspect := c.Aspect
	if aspect <= 0 {
		aspect = 1.0
	}
	ndcX := sprec.Vec3Dot(rel, right) / (depth * tanHalf * aspect)
	ndcY := sprec.Vec3Dot(rel, up) / (depth * tanHalf)
	x = (ndcX + 1.0) / 2.0 * width
	y = (1.0 - ndcY) / 2.0 * height
	return x, y, true
}

const (
	minPolar = 0.01
	maxPolar = math.Pi - 0.01
)

// OrbitControls rotates the camera around its target from accumulated
// pointer drags and zooms from scroll input. Nothing changes until Update.
type OrbitControls struct {
	camera *Camera

	RotateSpeed float32 // radians per pixel
	ZoomSpeed   float32 // fraction of distance per scroll unit
	MinDistance float32
	MaxDistance float32

	dx, dy float32
	zoom   float32
}

func NewOrbitControls(camera *Camera) *OrbitControls {
	return &OrbitControls{
		camera:      camera,
		RotateSpeed: 0.005,
		ZoomSpeed:   0.1,
		MinDistance: 1.0,
		MaxDistance: 1000.0,
	}
}

// Drag records pointer movement in pixels.
func (o *OrbitControls) Drag(dx, dy float32) {
	o.dx += dx
	o.dy += dy
}

// Zoom records scroll input; positive values move the camera away.
func (o *OrbitControls) Zoom(delta float32) {
	o.zoom += delta
}

// Update applies and clears the accumulated input.
func (o *OrbitControls) Update() {
	if o.dx == 0 && o.dy == 0 && o.zoom == 0 {
		return
	}
	cam := o.camera
	offset := sprec.Vec3Diff(cam.Position, cam.Target)
	radius := float64(offset.Length())
	if radius == 0 {
		radius = float64(o.MinDistance)
	}
	theta := math.Atan2(float64(offset.X), float64(offset.Z))
	phi := math.Acos(clamp(float64(offset.Y)/radius, -1, 1))

	theta -= float64(o.dx * o.RotateSpeed)
	phi -= float64(o.dy * o.RotateSpeed)
	phi = clamp(phi, minPolar, maxPolar)

	radius *= 1.0 + float64(o.zoom*o.ZoomSpeed)
	radius = clamp(radius, float64(o.MinDistance), float64(o.MaxDistance))

	cam.Position = sprec.Vec3Sum(cam.Target, sprec.NewVec3(
		float32(radius*math.Sin(phi)*math.Sin(theta)),
		float32(radius*math.Cos(phi)),
		float32(radius*math.Sin(phi)*math.Cos(theta)),
	))
	o.dx, o.dy, o.zoom = 0, 0, 0
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// Viewpoint is a camera the chase rig can steer.
type Viewpoint interface {
	SetPosition(position sprec.Vec3)
	LookAt(target sprec.Vec3)
}

// SetPosition moves the camera without changing its target.
func (c *Camera) SetPosition(position sprec.Vec3) {
	c.Position = position
}

var _ Viewpoint = (*Camera)(nil)

// Chase keeps a viewpoint at a fixed offset from a subject, looking at it.
type Chase struct {
	Offset sprec.Vec3
}

func (c Chase) Follow(view Viewpoint, subject sprec.Vec3) {
	view.SetPosition(sprec.Vec3Sum(subject, c.Offset))
	view.LookAt(subject)
}
