package stage_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mokiat/gomath/sprec"
	"github.com/mokiat/lacking/util/async"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nobonobo/video-stage/stage"
)

type fakeLoader struct {
	paths   []string
	pending async.Promise[stage.Node]
}

func newFakeLoader() *fakeLoader {
	return &fakeLoader{
		pending: async.NewPromise[stage.Node](),
	}
}

func (l *fakeLoader) Load(path string) async.Promise[stage.Node] {
	l.paths = append(l.paths, path)
	return l.pending
}

func TestLoadCharacterSuccess(t *testing.T) {
	loader := newFakeLoader()
	spawn := sprec.NewVec3(0, 0, 10)
	promise := stage.LoadCharacter(loader, "/gl/char/model.glb", spawn)
	assert.Equal(t, []string{"/gl/char/model.glb"}, loader.paths)

	model := stage.NewTransform()
	time.AfterFunc(10*time.Millisecond, func() {
		loader.pending.Deliver(model)
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	node, err := stage.Await(ctx, promise)
	require.NoError(t, err)
	assert.Same(t, model, node)
	assert.Equal(t, spawn, node.Position())
}

func TestLoadCharacterFailure(t *testing.T) {
	loader := newFakeLoader()
	promise := stage.LoadCharacter(loader, "missing.glb", sprec.ZeroVec3())

	cause := errors.New("404 not found")
	time.AfterFunc(10*time.Millisecond, func() {
		loader.pending.Fail(cause)
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, err := stage.Await(ctx, promise)
	require.Error(t, err)
	assert.ErrorIs(t, err, cause)

	var loadErr *stage.LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, "missing.glb", loadErr.Path)
	assert.Len(t, loader.paths, 1)
}

func TestLoadCharacterNeverSettles(t *testing.T) {
	loader := newFakeLoader()
	promise := stage.LoadCharacter(loader, "slow.glb", sprec.ZeroVec3())

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := stage.Await(ctx, promise)
	assert.ErrorIs(t, err, stage.ErrLoadTimeout)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestLoadCharacterSynchronousLoader(t *testing.T) {
	model := stage.NewTransform()
	loader := stage.ModelLoaderFunc(func(path string) async.Promise[stage.Node] {
		result := async.NewPromise[stage.Node]()
		result.Deliver(model)
		return result
	})

	spawn := sprec.NewVec3(1, 0, 10)
	for range 100 {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		node, err := stage.Await(ctx, stage.LoadCharacter(loader, "character.dat", spawn))
		cancel()
		require.NoError(t, err)
		require.Same(t, model, node)
		assert.Equal(t, spawn, node.Position())
	}
}

func TestLoadCharacterNilNode(t *testing.T) {
	loader := stage.ModelLoaderFunc(func(path string) async.Promise[stage.Node] {
		result := async.NewPromise[stage.Node]()
		result.Deliver(nil)
		return result
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, err := stage.Await(ctx, stage.LoadCharacter(loader, "empty.dat", sprec.ZeroVec3()))
	assert.ErrorIs(t, err, stage.ErrNoCharacter)
}
