//go:build js

package main

import (
	"context"
	"fmt"
	"syscall/js"

	"github.com/mokiat/gomath/sprec"
	"github.com/mokiat/lacking/util/async"

	"github.com/nobonobo/video-stage/stage"
)

// Modules holds the three.js ES modules the stage needs.
type Modules struct {
	THREE       js.Value
	CSS3D       js.Value
	Controls    js.Value
	GLTFLoaders js.Value
}

var moduleURLs = []string{
	"three",
	"three/addons/renderers/CSS3DRenderer.js",
	"three/addons/controls/OrbitControls.js",
	"three/addons/loaders/GLTFLoader.js",
}

// ImportModules loads all modules; it blocks, so call it off the event loop.
func ImportModules(ctx context.Context) (Modules, error) {
	values := make([]js.Value, len(moduleURLs))
	for i, u := range moduleURLs {
		v, err := stage.Await(ctx, Settle(Import(u)))
		if err != nil {
			return Modules{}, fmt.Errorf("failed to import %s: %w", u, err)
		}
		values[i] = v
	}
	return Modules{
		THREE:       values[0],
		CSS3D:       values[1],
		Controls:    values[2],
		GLTFLoaders: values[3],
	}, nil
}

func vector(v js.Value) sprec.Vec3 {
	return sprec.NewVec3(
		float32(v.Get("x").Float()),
		float32(v.Get("y").Float()),
		float32(v.Get("z").Float()),
	)
}

var (
	_ stage.Node      = object{}
	_ stage.Placeable = object{}
	_ stage.Aimer     = object{}
	_ stage.Viewpoint = object{}
)

// object is a three.js Object3D.
type object struct {
	goObject
}

func wrap(v js.Value) object {
	return object{goObject{jsValue: v}}
}

func (o object) Position() sprec.Vec3 {
	return vector(o.jsValue.Get("position"))
}

func (o object) SetPosition(p sprec.Vec3) {
	o.jsValue.Get("position").Call("set", p.X, p.Y, p.Z)
}

func (o object) SetScale(s sprec.Vec3) {
	o.jsValue.Get("scale").Call("set", s.X, s.Y, s.Z)
}

func (o object) LookAt(target sprec.Vec3) {
	o.jsValue.Call("lookAt", target.X, target.Y, target.Z)
}

func (o object) Add(children ...object) {
	for _, child := range children {
		o.jsValue.Call("add", child.jsValue)
	}
}

var _ stage.Renderer = renderer{}

// renderer is a WebGLRenderer or a CSS3DRenderer bound to one scene and
// camera.
type renderer struct {
	goObject
	scene  js.Value
	camera js.Value
}

func (r renderer) Render() {
	r.jsValue.Call("render", r.scene, r.camera)
}

func (r renderer) SetSize(width, height int) {
	r.jsValue.Call("setSize", width, height)
}

// layer applies stacking and pointer behaviour to the surface element.
func layer(el js.Value, l stage.Layer) {
	style := el.Get("style")
	style.Set("position", "absolute")
	style.Set("top", "0")
	style.Set("zIndex", l.ZIndex)
	if l.PassThrough {
		style.Set("pointerEvents", "none")
	}
}

// orbit wraps three.js OrbitControls.
type orbit struct {
	goObject
}

func (o orbit) Update() {
	o.jsValue.Call("update")
}

var _ stage.Scheduler = animationLoop{}

// animationLoop schedules ticks with WebGLRenderer.setAnimationLoop.
type animationLoop struct {
	renderer js.Value
}

func (a animationLoop) Start(tick func()) func() {
	cb := js.FuncOf(func(this js.Value, args []js.Value) any {
		tick()
		return nil
	})
	a.renderer.Call("setAnimationLoop", cb)
	return func() {
		a.renderer.Call("setAnimationLoop", js.Null())
		cb.Release()
	}
}

var _ stage.ModelLoader = gltfLoader{}

// gltfLoader resolves with the loaded glTF scene root.
type gltfLoader struct {
	loader js.Value
}

func (g gltfLoader) Load(path string) async.Promise[stage.Node] {
	result := async.NewPromise[stage.Node]()
	var onLoad, onError js.Func
	release := func() {
		onLoad.Release()
		onError.Release()
	}
	onLoad = js.FuncOf(func(this js.Value, args []js.Value) any {
		defer release()
		result.Deliver(wrap(args[0].Get("scene")))
		return nil
	})
	onError = js.FuncOf(func(this js.Value, args []js.Value) any {
		defer release()
		result.Fail(js.Error{Value: args[0]})
		return nil
	})
	g.loader.Call("load", path, onLoad, js.Undefined(), onError)
	return result
}

var _ stage.KeySource = (*keyboard)(nil)

// keyboard reports window key events. Focus loss releases the keys it holds
// since the matching keyup never arrives; keys of other sources stay down.
type keyboard struct {
	target js.Value
	held   map[stage.Key]struct{}
}

func newKeyboard(target js.Value) *keyboard {
	return &keyboard{
		target: target,
		held:   make(map[stage.Key]struct{}),
	}
}

func (k *keyboard) Bind(press, release func(stage.Key)) func() {
	unbinds := []func(){
		listen(k.target, "keydown", func(event js.Value) {
			key := stage.Key(event.Get("key").String())
			k.held[key] = struct{}{}
			press(key)
		}),
		listen(k.target, "keyup", func(event js.Value) {
			key := stage.Key(event.Get("key").String())
			delete(k.held, key)
			release(key)
		}),
		listen(k.target, "blur", func(js.Value) {
			for key := range k.held {
				release(key)
			}
			clear(k.held)
		}),
	}
	return func() {
		for _, unbind := range unbinds {
			unbind()
		}
	}
}

func vec(v [3]float32) sprec.Vec3 {
	return sprec.NewVec3(v[0], v[1], v[2])
}
