//go:build js

package main

import (
	"fmt"
	"syscall/js"

	"github.com/nobonobo/video-stage/stage"
)

// Scene is the three.js side of the stage: graph, camera, both renderers and
// the static content.
type Scene struct {
	mods Modules

	scene    js.Value
	camera   object
	world    renderer
	overlay  renderer
	controls orbit
	light    object
	video    *stage.VideoPanel
}

// NewScene builds everything that does not depend on the character model.
func NewScene(mods Modules, cfg stage.Config, width, height int) *Scene {
	THREE := mods.THREE
	s := &Scene{mods: mods}

	s.scene = THREE.Get("Scene").New()
	s.camera = wrap(THREE.Get("PerspectiveCamera").New(
		cfg.Camera.FoV, float64(width)/float64(height), cfg.Camera.Near, cfg.Camera.Far,
	))

	webgl := THREE.Get("WebGLRenderer").New(map[string]any{
		"antialias": true,
		"alpha":     true,
	})
	webgl.Call("setClearColor", 0xffffff, 0)
	s.world = renderer{goObject: goObject{jsValue: webgl}, scene: s.scene, camera: s.camera.jsValue}

	css := mods.CSS3D.Get("CSS3DRenderer").New()
	s.overlay = renderer{goObject: goObject{jsValue: css}, scene: s.scene, camera: s.camera.jsValue}

	s.controls = orbit{goObject{jsValue: mods.Controls.Get("OrbitControls").New(
		s.camera.jsValue, document.Get("body"),
	)}}

	grid := THREE.Get("GridHelper").New(cfg.Grid.Size, cfg.Grid.Divisions)
	ambient := THREE.Get("AmbientLight").New(0xffffff, cfg.Light.AmbientIntensity)
	point := THREE.Get("PointLight").New(0xffffff, cfg.Light.Intensity)
	s.light = wrap(point)

	s.video = stage.NewVideoPanel(cfg.Video)
	videoRoot := s.createVideo()

	s.scene.Call("add", grid, ambient, point, videoRoot.jsValue)
	s.light.SetPosition(vec(cfg.Light.Position))
	s.camera.SetPosition(vec(cfg.Camera.Position))
	s.camera.LookAt(vec(cfg.Camera.Target))
	return s
}

// createVideo builds the iframe surface and its invisible collider and binds
// both to the panel so they stay together.
func (s *Scene) createVideo() object {
	THREE := s.mods.THREE
	panel := s.video

	root := wrap(THREE.Get("Object3D").New())

	iframe := document.Call("createElement", "iframe")
	style := iframe.Get("style")
	style.Set("width", fmt.Sprintf("%gpx", panel.Width))
	style.Set("height", fmt.Sprintf("%gpx", panel.Height))
	style.Set("border", "0")
	iframe.Set("src", panel.EmbedURL())
	surface := wrap(s.mods.CSS3D.Get("CSS3DObject").New(iframe))

	material := THREE.Get("MeshBasicMaterial").New(map[string]any{
		"opacity":     0,
		"color":       0x000000,
		"blending":    THREE.Get("NoBlending"),
		"transparent": true,
	})
	size := panel.ColliderSize()
	geometry := THREE.Get("BoxGeometry").New(size.X, size.Y, size.Z)
	mesh := THREE.Get("Mesh").New(geometry, material)
	mesh.Set("castShadow", true)
	mesh.Set("receiveShadow", true)
	collider := wrap(mesh)

	root.Add(surface, collider)
	panel.Bind(root, surface, collider)
	return root
}

// AddCharacter puts the loaded model into the scene.
func (s *Scene) AddCharacter(node stage.Node) {
	if o, ok := node.(object); ok {
		s.scene.Call("add", o.jsValue)
	}
}

// Mount attaches both output surfaces to the page, 3D in front and
// transparent to the pointer, page content behind.
func (s *Scene) Mount(parent js.Value) {
	world := s.world.jsValue.Get("domElement")
	overlay := s.overlay.jsValue.Get("domElement").Get("children").Index(0)
	parent.Call("appendChild", world)
	parent.Call("appendChild", overlay)
	layer(world, stage.WorldLayer)
	layer(overlay, stage.OverlayLayer)
}

// Loader returns a glTF loader for the character.
func (s *Scene) Loader() stage.ModelLoader {
	return gltfLoader{loader: s.mods.GLTFLoaders.Get("GLTFLoader").New()}
}

// Resize keeps camera projection in step with the viewport.
func (s *Scene) Resize(width, height int) {
	s.camera.jsValue.Set("aspect", float64(width)/float64(height))
	s.camera.jsValue.Call("updateProjectionMatrix")
}
