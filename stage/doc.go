// Package stage holds the platform independent part of the video stage
// demo: key tracking, character movement, the video panel placement, the
// orbit camera, renderer compositing and the per-frame loop. Rendering
// backends plug in through small interfaces such as Node, Renderer and
// ModelLoader.
package stage
