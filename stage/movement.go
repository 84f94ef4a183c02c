package stage

import "github.com/mokiat/gomath/sprec"

// DefaultSpeed is the distance the character covers per frame.
const DefaultSpeed = float32(0.2)

// Mover turns held keys into a per-frame displacement. Forward wins over
// backward and left wins over right when both are held.
type Mover struct {
	Keys KeyMap
	Step float32
}

func NewMover(keys KeyMap, step float32) Mover {
	return Mover{
		Keys: keys,
		Step: step,
	}
}

// Delta returns the displacement for one frame. Forward is -Z, left is -X.
func (m Mover) Delta(input KeyQuery) sprec.Vec3 {
	var delta sprec.Vec3
	if input.IsDown(m.Keys.Forward) {
		delta.Z -= m.Step
	} else if input.IsDown(m.Keys.Backward) {
		delta.Z += m.Step
	}

	if input.IsDown(m.Keys.Left) {
		delta.X -= m.Step
	} else if input.IsDown(m.Keys.Right) {
		delta.X += m.Step
	}
	return delta
}

// Apply moves node by one frame's displacement and reports whether it moved.
func (m Mover) Apply(input KeyQuery, node Node) bool {
	delta := m.Delta(input)
	if delta.X == 0 && delta.Z == 0 {
		return false
	}
	node.SetPosition(sprec.Vec3Sum(node.Position(), delta))
	return true
}
