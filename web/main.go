//go:build js

package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"syscall/js"
	"time"

	"github.com/google/uuid"

	"github.com/nobonobo/video-stage/remote"
	"github.com/nobonobo/video-stage/stage"
)

type Application struct {
	cfg    stage.Config
	id     string
	input  *stage.Input
	scene  *Scene
	loop   *stage.Loop
	stop   func()
	unbind []func()
}

func NewApplication(cfg stage.Config) *Application {
	id := GetParam("id")
	if id == "" {
		uid, _ := uuid.NewV6()
		id = uid.String()
	}
	return &Application{
		cfg:   cfg,
		id:    id,
		input: stage.NewInput(),
	}
}

// Run imports three.js, builds the scene, waits for the character and then
// starts the frame loop. Any failure before the loop starts is returned.
func (app *Application) Run(ctx context.Context) error {
	mods, err := ImportModules(ctx)
	if err != nil {
		return err
	}

	width, height := viewport()
	app.scene = NewScene(mods, app.cfg, width, height)

	compositor := stage.NewCompositor(app.scene.world, app.scene.overlay)
	compositor.OnResize(app.scene.Resize)
	if err := compositor.Resize(width, height); err != nil {
		return err
	}
	app.scene.Mount(document.Get("body"))

	loadCtx, cancel := context.WithTimeout(ctx, time.Duration(app.cfg.LoadTimeout))
	defer cancel()
	character, err := stage.Await(loadCtx, stage.LoadCharacter(
		app.scene.Loader(), app.cfg.Character.Path, vec(app.cfg.Character.Spawn),
	))
	if err != nil {
		return fmt.Errorf("failed to load character: %w", err)
	}
	app.scene.AddCharacter(character)

	app.input.Attach(newKeyboard(window))

	loopCfg := stage.LoopConfig{
		Controls:   app.scene.controls,
		Input:      app.input,
		Mover:      stage.NewMover(app.cfg.Keys, app.cfg.Speed),
		Character:  character,
		Light:      app.scene.light,
		Compositor: compositor,
	}
	if app.cfg.Chase.Enabled {
		loopCfg.Chase = &stage.Chase{Offset: vec(app.cfg.Chase.Offset)}
		loopCfg.View = app.scene.camera
	}
	app.loop, err = stage.NewLoop(loopCfg)
	if err != nil {
		return err
	}

	app.unbind = append(app.unbind, listen(window, "resize", func(js.Value) {
		if err := compositor.Resize(viewport()); err != nil {
			log.Println("resize:", err)
		}
	}))
	app.stop = app.loop.Run(animationLoop{renderer: app.scene.world.jsValue})
	return nil
}

// Pair lets phones act as remote pads: it shows a QR code for the pad page
// and feeds their keys into the same input.
func (app *Application) Pair(ctx context.Context) {
	link := BaseURL() + "pad/?dest=" + app.id
	showQRCode(link)
	router := remote.NewRouter(app.input)
	if err := remote.Listen(ctx, app.id, router); err != nil {
		log.Println("failed to listen", err)
	}
}

func (app *Application) Close() {
	if app.stop != nil {
		app.stop()
	}
	for _, unbind := range app.unbind {
		unbind()
	}
	app.input.Dispose()
}

func viewport() (int, int) {
	return window.Get("innerWidth").Int(), window.Get("innerHeight").Int()
}

func main() {
	slog.Info("Started")
	cfg := stage.DefaultConfig()
	if err := cfg.ApplyParams(params); err != nil {
		showError(err)
		slog.Error("Crashed",
			slog.String("error", err.Error()),
		)
		return
	}

	ctx := context.Background()
	app := NewApplication(cfg)
	defer app.Close()
	go func() {
		if err := app.Run(ctx); err != nil {
			showError(err)
			slog.Error("Crashed",
				slog.String("error", err.Error()),
			)
		}
	}()
	go app.Pair(ctx)
	select {}
}
