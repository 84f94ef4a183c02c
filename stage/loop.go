package stage

import (
	"log/slog"

	"github.com/mokiat/gomath/sprec"
)

// Controls advances camera controls from pointer input gathered since the
// previous frame.
type Controls interface {
	Update()
}

// Scheduler calls tick once per display frame until stop is called.
type Scheduler interface {
	Start(tick func()) (stop func())
}

// LoopConfig wires the per-frame loop. Character, Input and Compositor are
// required; the rest may be nil.
type LoopConfig struct {
	Controls   Controls
	Input      KeyQuery
	Mover      Mover
	Character  Node
	Light      Aimer
	Compositor *Compositor

	// Chase, when set, trails View behind the character every frame.
	Chase *Chase
	View  Viewpoint
}

// Loop is the per-frame update: controls, movement, light, render.
type Loop struct {
	cfg    LoopConfig
	frames uint64
}

const frameLogInterval = 600

// NewLoop validates the wiring. It fails with ErrNoCharacter until the
// character model has been resolved.
func NewLoop(cfg LoopConfig) (*Loop, error) {
	if cfg.Character == nil {
		return nil, ErrNoCharacter
	}
	if cfg.Input == nil {
		cfg.Input = NewInput()
	}
	return &Loop{cfg: cfg}, nil
}

// Tick runs one frame.
func (l *Loop) Tick() {
	cfg := &l.cfg
	if cfg.Controls != nil {
		cfg.Controls.Update()
	}

	cfg.Mover.Apply(cfg.Input, cfg.Character)
	position := cfg.Character.Position()

	if cfg.Light != nil {
		cfg.Light.LookAt(position)
	}
	if cfg.Chase != nil && cfg.View != nil {
		cfg.Chase.Follow(cfg.View, position)
	}
	if cfg.Compositor != nil {
		cfg.Compositor.Render()
	}

	l.frames++
	if l.frames%frameLogInterval == 0 {
		slog.Debug("Frame",
			slog.Uint64("frames", l.frames),
			slog.Any("position", position),
		)
	}
}

// Frames is the number of ticks executed so far.
func (l *Loop) Frames() uint64 {
	return l.frames
}

// Position is the character's current position.
func (l *Loop) Position() sprec.Vec3 {
	return l.cfg.Character.Position()
}

// Run arms the loop on the scheduler.
func (l *Loop) Run(scheduler Scheduler) (stop func()) {
	slog.Info("Loop started")
	return scheduler.Start(l.Tick)
}
