//go:build js

package main

import (
	"fmt"
	"net/url"
	"strings"
	"syscall/js"

	jsapp "github.com/mokiat/lacking-js/app"
	jsgame "github.com/mokiat/lacking-js/game"
	jsui "github.com/mokiat/lacking-js/ui"
	"github.com/mokiat/lacking/storage/chunked"

	"github.com/nobonobo/video-stage/stage"
)

// loadConfig takes overrides from the page URL, since the browser has no
// working directory to read stage.toml from.
func loadConfig() (stage.Config, error) {
	cfg := stage.DefaultConfig()
	params, err := url.ParseQuery(strings.TrimPrefix(js.Global().Get("location").Get("search").String(), "?"))
	if err != nil {
		return cfg, fmt.Errorf("failed to parse page query: %w", err)
	}
	return cfg, cfg.ApplyParams(params)
}

func runApplication(stageCfg stage.Config) error {
	storage, err := chunked.NewWebStorage(".")
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}

	controller := createController(stageCfg, storage, jsgame.NewShaderCollection(), jsgame.NewShaderBuilder(), jsui.NewShaderCollection())

	cfg := jsapp.NewConfig("screen")
	cfg.AddGLExtension("EXT_color_buffer_float")
	cfg.SetFullscreen(false)
	cfg.SetAudioEnabled(false)
	return jsapp.Run(cfg, controller)
}
