package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mokiat/gog/opt"
	"github.com/mokiat/lacking/game"
	"github.com/mokiat/lacking/ui"
	co "github.com/mokiat/lacking/ui/component"
	"github.com/mokiat/lacking/ui/layout"
	"github.com/mokiat/lacking/ui/std"
	"github.com/mokiat/lacking/util/async"

	"github.com/nobonobo/video-stage/host/resources"
	"github.com/nobonobo/video-stage/host/ui/widget"
	"github.com/nobonobo/video-stage/stage"
)

// Shared between the home, loading, stage and error views.
var (
	stageLoad  async.Promise[*StageData]
	stageError error
)

// beginStageLoad starts fetching the stage assets and shows the loading view
// until they arrive.
func beginStageLoad(app *applicationComponent, cfg stage.Config, resourceSet *game.ResourceSet) {
	stageLoad = LoadStageData(cfg, resourceSet)
	app.SetActiveView(ViewNameLoading)
}

// failStage shows err on the error view.
func failStage(app *applicationComponent, err error) {
	stageError = err
	app.SetActiveView(ViewNameError)
}

// deadline fails the returned promise with stage.ErrLoadTimeout when p has
// not settled within timeout, so a stuck load ends on the error screen. The
// goroutine waiting on p outlives a timeout until p settles.
func deadline[T any](p async.Promise[T], timeout time.Duration) async.Promise[T] {
	result := async.NewPromise[T]()
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		value, err := stage.Await(ctx, p)
		if err != nil {
			result.Fail(err)
			return
		}
		result.Deliver(value)
	}()
	return result
}

// --- Intro ---

var IntroScreen = co.Define[*introScreenComponent]()

type IntroScreenData struct {
	App *applicationComponent
}

// introScreenComponent shows what the stage is about to play and the id
// pads pair with, then moves on to the menu.
type introScreenComponent struct {
	co.BaseComponent

	titleFont *ui.Font
	textFont  *ui.Font
	lines     []string
}

const introDuration = 1500 * time.Millisecond

func (c *introScreenComponent) OnCreate() {
	globalState := co.TypedValue[GlobalState](c.Scope())
	app := co.GetData[IntroScreenData](c.Properties()).App

	c.titleFont = co.OpenFont(c.Scope(), "ui:///roboto-bold.ttf")
	c.textFont = co.OpenFont(c.Scope(), "ui:///roboto-regular.ttf")
	c.lines = introLines(globalState.Config, globalState.HostID)

	co.After(c.Scope(), introDuration, func() {
		app.SetActiveView(ViewNameHome)
	})
}

func introLines(cfg stage.Config, hostID string) []string {
	lines := []string{
		"video " + cfg.Video.ID,
		"character " + cfg.Character.Asset,
		fmt.Sprintf("speed %.2f per frame", cfg.Speed),
	}
	if cfg.Chase.Enabled {
		lines = append(lines, "chase camera on")
	}
	if hostID != "" {
		lines = append(lines, "pad id "+hostID)
	}
	return lines
}

func (c *introScreenComponent) Render() co.Instance {
	return co.New(std.Container, func() {
		co.WithData(std.ContainerData{
			BackgroundColor: opt.V(ui.Black()),
			Layout: layout.Vertical(layout.VerticalSettings{
				ContentAlignment: layout.HorizontalAlignmentCenter,
				ContentSpacing:   8,
			}),
			Padding: ui.Spacing{Top: 200},
		})

		co.WithChild("title", co.New(std.Label, func() {
			co.WithData(std.LabelData{
				Font:      c.titleFont,
				FontSize:  opt.V(float32(64)),
				FontColor: opt.V(ui.White()),
				Text:      "VIDEO STAGE",
			})
		}))

		for i, line := range c.lines {
			co.WithChild(fmt.Sprintf("line-%d", i), co.New(std.Label, func() {
				co.WithData(std.LabelData{
					Font:      c.textFont,
					FontSize:  opt.V(float32(18)),
					FontColor: opt.V(ui.RGB(0x99, 0x99, 0x99)),
					Text:      line,
				})
			}))
		}
	})
}

// --- Loading ---

var LoadingScreen = co.Define[*loadingScreenComponent]()

type LoadingScreenData struct {
	App *applicationComponent
}

type loadingScreenComponent struct {
	co.BaseComponent

	subject string
	limit   string
	font    *ui.Font
}

func (c *loadingScreenComponent) OnCreate() {
	globalState := co.TypedValue[GlobalState](c.Scope())
	app := co.GetData[LoadingScreenData](c.Properties()).App
	window := co.Window(c.Scope())

	c.subject = "Loading " + globalState.Config.Character.Asset
	c.limit = fmt.Sprintf("gives up after %s", time.Duration(globalState.Config.LoadTimeout))
	c.font = co.OpenFont(c.Scope(), "ui:///roboto-regular.ttf")

	promise := stageLoad
	promise.OnSuccess(func(data *StageData) {
		window.Schedule(func() {
			stageData = data
			app.SetActiveView(ViewNameStage)
		})
	})
	promise.OnError(func(err error) {
		window.Schedule(func() {
			failStage(app, err)
		})
	})
}

func (c *loadingScreenComponent) Render() co.Instance {
	return co.New(std.Container, func() {
		co.WithData(std.ContainerData{
			BackgroundColor: opt.V(ui.Black()),
			Layout:          layout.Anchor(),
		})

		co.WithChild("progress", co.New(widget.Loading, func() {
			co.WithLayoutData(layout.Data{
				HorizontalCenter: opt.V(0),
				VerticalCenter:   opt.V(0),
			})
			co.WithData(widget.LoadingData{
				Subject: c.subject,
			})
		}))

		co.WithChild("limit", co.New(std.Label, func() {
			co.WithLayoutData(layout.Data{
				HorizontalCenter: opt.V(0),
				Bottom:           opt.V(60),
			})
			co.WithData(std.LabelData{
				Font:      c.font,
				FontSize:  opt.V(float32(18)),
				FontColor: opt.V(ui.RGB(0x77, 0x77, 0x77)),
				Text:      c.limit,
			})
		}))
	})
}

// --- Error ---

var ErrorScreen = co.Define[*errorScreenComponent]()

type ErrorScreenData struct {
	App *applicationComponent
}

var _ ui.ElementKeyboardHandler = (*errorScreenComponent)(nil)

type errorScreenComponent struct {
	co.BaseComponent

	app   *applicationComponent
	lines []string

	titleFont *ui.Font
	textFont  *ui.Font
}

func (c *errorScreenComponent) OnCreate() {
	c.app = co.GetData[ErrorScreenData](c.Properties()).App
	c.lines = describeError(stageError)

	c.titleFont = co.OpenFont(c.Scope(), "ui:///roboto-bold.ttf")
	c.textFont = co.OpenFont(c.Scope(), "ui:///roboto-regular.ttf")
}

// describeError turns a stage failure into display lines: what failed
// first, then the wrapped error text.
func describeError(err error) []string {
	if err == nil {
		return []string{"The stage stopped unexpectedly."}
	}

	var lines []string
	var loadErr *stage.LoadError
	switch {
	case errors.As(err, &loadErr):
		lines = append(lines, "Could not load "+loadErr.Path+".")
	case errors.Is(err, stage.ErrNoCharacter):
		lines = append(lines, "The character model is missing.")
	case errors.Is(err, stage.ErrInvalidConfig):
		lines = append(lines, "The configuration is invalid.")
	default:
		lines = append(lines, "The stage could not be opened.")
	}
	if errors.Is(err, stage.ErrLoadTimeout) {
		lines = append(lines, "Loading did not finish in time.")
	}
	lines = append(lines, "")
	return append(lines, wrapWords(err.Error(), 72)...)
}

// wrapWords breaks text at spaces into lines of at most width runes. Words
// longer than width get a line of their own.
func wrapWords(text string, width int) []string {
	var (
		lines []string
		line  strings.Builder
	)
	for _, word := range strings.Fields(text) {
		if line.Len() > 0 && len([]rune(line.String()))+1+len([]rune(word)) > width {
			lines = append(lines, line.String())
			line.Reset()
		}
		if line.Len() > 0 {
			line.WriteByte(' ')
		}
		line.WriteString(word)
	}
	if line.Len() > 0 {
		lines = append(lines, line.String())
	}
	return lines
}

func (c *errorScreenComponent) Render() co.Instance {
	return co.New(std.Element, func() {
		co.WithData(std.ElementData{
			Essence:       c,
			CanAutoFocus:  opt.V(true),
			CreateFocused: true,
			Layout: layout.Vertical(layout.VerticalSettings{
				ContentAlignment: layout.HorizontalAlignmentLeft,
				ContentSpacing:   6,
			}),
			Padding: ui.Spacing{Left: 80, Top: 120},
		})

		co.WithChild("title", co.New(std.Label, func() {
			co.WithData(std.LabelData{
				Font:      c.titleFont,
				FontSize:  opt.V(float32(40)),
				FontColor: opt.V(ui.RGB(0xCC, 0x33, 0x33)),
				Text:      "STAGE UNAVAILABLE",
			})
		}))

		for i, line := range c.lines {
			co.WithChild(fmt.Sprintf("line-%d", i), co.New(std.Label, func() {
				co.WithData(std.LabelData{
					Font:      c.textFont,
					FontSize:  opt.V(float32(20)),
					FontColor: opt.V(ui.White()),
					Text:      line,
				})
			}))
		}

		co.WithChild("back-button", co.New(std.Button, func() {
			co.WithData(std.ButtonData{
				Text: "Back to menu",
			})
			co.WithCallbackData(std.ButtonCallbackData{
				OnClick: func() {
					c.app.SetActiveView(ViewNameHome)
				},
			})
		}))
	})
}

func (c *errorScreenComponent) OnKeyboardEvent(element *ui.Element, event ui.KeyboardEvent) bool {
	if event.Action == ui.KeyboardActionUp && event.Code == ui.KeyCodeEscape {
		co.Window(c.Scope()).Close()
	}
	return true
}

// --- Licenses ---

var LicensesScreen = co.Define[*licensesScreenComponent]()

type LicensesScreenData struct {
	App *applicationComponent
}

type licensesScreenComponent struct {
	co.BaseComponent

	app  *applicationComponent
	font *ui.Font
}

func (c *licensesScreenComponent) OnCreate() {
	c.app = co.GetData[LicensesScreenData](c.Properties()).App
	c.font = co.OpenFont(c.Scope(), "ui:///roboto-regular.ttf")
}

func (c *licensesScreenComponent) Render() co.Instance {
	return co.New(std.Container, func() {
		co.WithData(std.ContainerData{
			BackgroundColor: opt.V(ui.RGB(0x11, 0x11, 0x11)),
			Layout:          layout.Anchor(),
		})

		co.WithChild("back-button", co.New(std.Button, func() {
			co.WithLayoutData(layout.Data{
				Top:  opt.V(20),
				Left: opt.V(20),
			})
			co.WithData(std.ButtonData{
				Text: "Back",
			})
			co.WithCallbackData(std.ButtonCallbackData{
				OnClick: func() {
					c.app.SetActiveView(ViewNameHome)
				},
			})
		}))

		co.WithChild("text-pane", co.New(std.ScrollPane, func() {
			co.WithLayoutData(layout.Data{
				Top:    opt.V(80),
				Bottom: opt.V(20),
				Left:   opt.V(40),
				Right:  opt.V(40),
			})
			co.WithData(std.ScrollPaneData{
				DisableHorizontal: true,
				CreateFocused:     true,
			})

			co.WithChild("text", co.New(std.Label, func() {
				co.WithData(std.LabelData{
					Font:      c.font,
					FontSize:  opt.V(float32(16)),
					FontColor: opt.V(ui.RGB(0xDD, 0xDD, 0xDD)),
					Text:      resources.Licenses,
				})
			}))
		}))
	})
}
