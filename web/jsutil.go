//go:build js

package main

import (
	"net/url"
	"syscall/js"

	"github.com/mokiat/lacking/util/async"
)

var (
	document = js.Global().Get("document")
	window   = js.Global().Get("window")
	location = js.Global().Get("location")
	params   url.Values
)

func init() {
	params = url.Values{}
	if !location.Truthy() {
		return
	}
	u, _ := url.Parse(location.Get("href").String())
	params = u.Query()
}

func GetParam(key string) string {
	return params.Get(key)
}

func SetParam(key, value string) {
	params.Set(key, value)
	location.Set("search", params.Encode())
}

type goObject struct {
	jsValue js.Value
}

func (g goObject) ref() js.Value {
	return g.jsValue
}

type Promise[T any] interface {
	// Handle registers both outcomes with a single then call. Exactly one
	// of the callbacks runs.
	Handle(onValue func(value T), onError func(err error))
}

var _ Promise[struct{}] = goPromise[struct{}]{}

type goPromise[T any] struct {
	goObject
	convert func(value js.Value) T
}

func (g goPromise[T]) Handle(onValue func(value T), onError func(err error)) {
	var onFulfilled, onRejected js.Func
	release := func() {
		onFulfilled.Release()
		onRejected.Release()
	}
	onFulfilled = js.FuncOf(func(this js.Value, args []js.Value) any {
		defer release()
		onValue(g.convert(arg(args)))
		return nil
	})
	onRejected = js.FuncOf(func(this js.Value, args []js.Value) any {
		defer release()
		onError(js.Error{
			Value: arg(args),
		})
		return js.Undefined()
	})
	g.jsValue.Call("then", onFulfilled, onRejected)
}

func arg(args []js.Value) js.Value {
	if len(args) == 0 {
		return js.Undefined()
	}
	return args[0]
}

// Import loads an ES module through the page's import shim, so the page's
// import map applies.
func Import(url string) Promise[js.Value] {
	return goPromise[js.Value]{
		goObject: goObject{jsValue: js.Global().Call("import", url)},
		convert: func(value js.Value) js.Value {
			return value
		},
	}
}

// Settle adapts a JS promise to an async.Promise.
func Settle[T any](p Promise[T]) async.Promise[T] {
	result := async.NewPromise[T]()
	p.Handle(
		func(value T) {
			result.Deliver(value)
		},
		func(err error) {
			result.Fail(err)
		},
	)
	return result
}

// funcOf wraps fn and returns the js.Func so callers can release it.
func funcOf(fn func(event js.Value)) js.Func {
	return js.FuncOf(func(this js.Value, args []js.Value) any {
		var event js.Value
		if len(args) > 0 {
			event = args[0]
		}
		fn(event)
		return nil
	})
}

// listen registers fn on target and returns a func removing it again.
func listen(target js.Value, name string, fn func(event js.Value)) func() {
	cb := funcOf(fn)
	target.Call("addEventListener", name, cb)
	return func() {
		target.Call("removeEventListener", name, cb)
		cb.Release()
	}
}
