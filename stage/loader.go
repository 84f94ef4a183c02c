package stage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mokiat/gomath/sprec"
	"github.com/mokiat/lacking/util/async"
)

// ModelLoader issues one asynchronous model request per call.
type ModelLoader interface {
	Load(path string) async.Promise[Node]
}

// ModelLoaderFunc adapts a function to ModelLoader.
type ModelLoaderFunc func(path string) async.Promise[Node]

func (f ModelLoaderFunc) Load(path string) async.Promise[Node] {
	return f(path)
}

// LoadCharacter loads the character model and moves it to spawn once it
// arrives. Failures are reported as *LoadError. The node is placed before
// the returned promise settles, so a caller blocked in Await never races
// the placement.
func LoadCharacter(loader ModelLoader, path string, spawn sprec.Vec3) async.Promise[Node] {
	result := async.NewPromise[Node]()
	pending := loader.Load(path)
	go func() {
		node, err := pending.Wait()
		switch {
		case err != nil:
			result.Fail(&LoadError{Path: path, Err: err})
		case node == nil:
			result.Fail(&LoadError{Path: path, Err: ErrNoCharacter})
		default:
			node.SetPosition(spawn)
			slog.Info("Character loaded",
				slog.String("path", path),
			)
			result.Deliver(node)
		}
	}()
	return result
}

// Await blocks until the promise settles or ctx is done. When ctx ends
// first, the single goroutine waiting on the promise lingers until the
// promise settles.
func Await[T any](ctx context.Context, promise async.Promise[T]) (T, error) {
	type outcome struct {
		value T
		err   error
	}
	done := make(chan outcome, 1)
	go func() {
		value, err := promise.Wait()
		done <- outcome{value: value, err: err}
	}()

	select {
	case res := <-done:
		return res.value, res.err
	case <-ctx.Done():
		var zero T
		return zero, fmt.Errorf("%w: %w", ErrLoadTimeout, ctx.Err())
	}
}
