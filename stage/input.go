package stage

import (
	"fmt"
	"sync"
)

// Key identifies a keyboard key the way browsers report KeyboardEvent.key.
type Key string

const (
	KeyForward  Key = "w"
	KeyBackward Key = "s"
	KeyLeft     Key = "a"
	KeyRight    Key = "d"
)

// KeyMap binds the four movement directions to keys.
type KeyMap struct {
	Forward  Key `toml:"forward"`
	Backward Key `toml:"backward"`
	Left     Key `toml:"left"`
	Right    Key `toml:"right"`
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Forward:  KeyForward,
		Backward: KeyBackward,
		Left:     KeyLeft,
		Right:    KeyRight,
	}
}

// KeyQuery reports whether a key is currently held.
type KeyQuery interface {
	IsDown(key Key) bool
}

// KeySource delivers key transitions until the returned unbind func is called.
type KeySource interface {
	Bind(press, release func(Key)) (unbind func())
}

// KeySourceFunc adapts a function to KeySource.
type KeySourceFunc func(press, release func(Key)) (unbind func())

func (f KeySourceFunc) Bind(press, release func(Key)) func() {
	return f(press, release)
}

var _ KeyQuery = (*Input)(nil)

// Source names one producer of key transitions, such as the local keyboard
// or a remote pad. A key is down while any source holds it.
type Source string

// LocalSource owns the keys pressed through Press and Release.
const LocalSource Source = "local"

// Input tracks the keys held by each source. It is safe for concurrent use:
// remote pads deliver events from network goroutines while the frame loop
// reads.
type Input struct {
	mu       sync.Mutex
	held     map[Source]map[Key]struct{}
	unbinds  []func()
	attached int
}

func NewInput() *Input {
	return &Input{
		held: make(map[Source]map[Key]struct{}),
	}
}

func (i *Input) Press(key Key) {
	i.PressFrom(LocalSource, key)
}

func (i *Input) Release(key Key) {
	i.ReleaseFrom(LocalSource, key)
}

// PressFrom marks key as held by source.
func (i *Input) PressFrom(source Source, key Key) {
	i.mu.Lock()
	defer i.mu.Unlock()
	keys, ok := i.held[source]
	if !ok {
		keys = make(map[Key]struct{})
		i.held[source] = keys
	}
	keys[key] = struct{}{}
}

// ReleaseFrom lets go of key for source only. Other sources holding the
// same key keep it down.
func (i *Input) ReleaseFrom(source Source, key Key) {
	i.mu.Lock()
	defer i.mu.Unlock()
	keys, ok := i.held[source]
	if !ok {
		return
	}
	delete(keys, key)
	if len(keys) == 0 {
		delete(i.held, source)
	}
}

// ReleaseAll lets go of every key source holds.
func (i *Input) ReleaseAll(source Source) {
	i.mu.Lock()
	defer i.mu.Unlock()
	delete(i.held, source)
}

func (i *Input) IsDown(key Key) bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	for _, keys := range i.held {
		if _, ok := keys[key]; ok {
			return true
		}
	}
	return false
}

// Held returns the number of distinct keys currently down.
func (i *Input) Held() int {
	i.mu.Lock()
	defer i.mu.Unlock()
	down := make(map[Key]struct{})
	for _, keys := range i.held {
		for key := range keys {
			down[key] = struct{}{}
		}
	}
	return len(down)
}

// Reset releases every key of every source, e.g. when the window loses
// focus and key-up events will never arrive.
func (i *Input) Reset() {
	i.mu.Lock()
	defer i.mu.Unlock()
	clear(i.held)
}

// Attach starts feeding transitions from source into the set. Each attached
// source holds its keys independently of the others.
func (i *Input) Attach(source KeySource) {
	i.mu.Lock()
	i.attached++
	id := Source(fmt.Sprintf("attached-%d", i.attached))
	i.mu.Unlock()

	unbind := source.Bind(
		func(key Key) { i.PressFrom(id, key) },
		func(key Key) { i.ReleaseFrom(id, key) },
	)
	i.mu.Lock()
	defer i.mu.Unlock()
	i.unbinds = append(i.unbinds, unbind)
}

// Dispose detaches all sources and clears the set.
func (i *Input) Dispose() {
	i.mu.Lock()
	unbinds := i.unbinds
	i.unbinds = nil
	clear(i.held)
	i.mu.Unlock()

	for _, unbind := range unbinds {
		if unbind != nil {
			unbind()
		}
	}
}
