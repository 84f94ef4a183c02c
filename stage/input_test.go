package stage_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nobonobo/video-stage/stage"
)

func TestInputPressRelease(t *testing.T) {
	input := stage.NewInput()
	assert.False(t, input.IsDown(stage.KeyForward))

	input.Press(stage.KeyForward)
	assert.True(t, input.IsDown(stage.KeyForward))
	assert.False(t, input.IsDown(stage.KeyBackward))

	input.Release(stage.KeyForward)
	assert.False(t, input.IsDown(stage.KeyForward))
}

func TestInputIdempotent(t *testing.T) {
	input := stage.NewInput()
	input.Press("w")
	input.Press("w")
	assert.True(t, input.IsDown("w"))
	assert.Equal(t, 1, input.Held())

	input.Release("w")
	assert.False(t, input.IsDown("w"))
	input.Release("w")
	assert.False(t, input.IsDown("w"))
	assert.Equal(t, 0, input.Held())
}

func TestInputNetEffect(t *testing.T) {
	ops := []struct {
		press bool
		key   stage.Key
	}{
		{true, "w"}, {true, "a"}, {false, "w"}, {true, "d"},
		{false, "x"}, {true, "w"}, {false, "a"}, {false, "d"},
	}
	input := stage.NewInput()
	model := map[stage.Key]bool{}
	for _, op := range ops {
		if op.press {
			input.Press(op.key)
			model[op.key] = true
		} else {
			input.Release(op.key)
			delete(model, op.key)
		}
		for _, k := range []stage.Key{"w", "a", "s", "d", "x"} {
			assert.Equal(t, model[k], input.IsDown(k), "key %q", k)
		}
	}
}

func TestInputAttachDispose(t *testing.T) {
	var press, release func(stage.Key)
	unbound := false
	source := stage.KeySourceFunc(func(p, r func(stage.Key)) func() {
		press, release = p, r
		return func() { unbound = true }
	})

	input := stage.NewInput()
	input.Attach(source)
	press("a")
	assert.True(t, input.IsDown("a"))
	release("a")
	assert.False(t, input.IsDown("a"))

	press("d")
	input.Dispose()
	assert.True(t, unbound)
	assert.False(t, input.IsDown("d"))
}

func TestInputReset(t *testing.T) {
	input := stage.NewInput()
	input.Press("w")
	input.Press("d")
	input.Reset()
	assert.Equal(t, 0, input.Held())
}

func TestInputConcurrent(t *testing.T) {
	input := stage.NewInput()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				input.Press("w")
				input.IsDown("w")
				input.Release("w")
			}
		}()
	}
	wg.Wait()
	assert.False(t, input.IsDown("w"))
}

func TestInputSourcesUnion(t *testing.T) {
	input := stage.NewInput()

	input.Press("w")
	input.PressFrom("pad:1", "w")
	input.PressFrom("pad:1", "a")
	assert.Equal(t, 2, input.Held())

	input.ReleaseFrom("pad:1", "w")
	assert.True(t, input.IsDown("w"))

	input.Release("w")
	assert.False(t, input.IsDown("w"))
	assert.True(t, input.IsDown("a"))

	input.ReleaseAll("pad:1")
	assert.False(t, input.IsDown("a"))
	assert.Equal(t, 0, input.Held())

	input.ReleaseFrom("pad:unknown", "a")
	input.ReleaseAll("pad:unknown")
	assert.Equal(t, 0, input.Held())
}

func TestInputAttachedSourcesAreIndependent(t *testing.T) {
	var releases []func(stage.Key)
	var presses []func(stage.Key)
	source := stage.KeySourceFunc(func(p, r func(stage.Key)) func() {
		presses = append(presses, p)
		releases = append(releases, r)
		return nil
	})

	input := stage.NewInput()
	input.Attach(source)
	input.Attach(source)
	require.Len(t, presses, 2)

	presses[0]("s")
	presses[1]("s")
	releases[0]("s")
	assert.True(t, input.IsDown("s"))
	releases[1]("s")
	assert.False(t, input.IsDown("s"))
}
