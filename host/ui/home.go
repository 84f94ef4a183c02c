package ui

import (
	"time"

	"github.com/mokiat/gog/opt"
	"github.com/mokiat/lacking/game"
	"github.com/mokiat/lacking/ui"
	co "github.com/mokiat/lacking/ui/component"
	"github.com/mokiat/lacking/ui/layout"
	"github.com/mokiat/lacking/ui/std"
	"github.com/mokiat/lacking/util/async"

	"github.com/nobonobo/video-stage/stage"
)

// StageData holds the model templates the stage is built from.
type StageData struct {
	Stage     *game.ModelTemplate
	Character *game.ModelTemplate
}

// LoadStageData fetches the stage and the character. It fails instead of
// waiting forever when the fetch outlives cfg.LoadTimeout.
func LoadStageData(cfg stage.Config, resourceSet *game.ResourceSet) async.Promise[*StageData] {
	var data StageData
	fetched := async.InjectionPromise(async.JoinOperations(
		resourceSet.FetchResource(stageAsset, &data.Stage),
		resourceSet.FetchResource(cfg.Character.Asset, &data.Character),
	), &data)
	return deadline(fetched, time.Duration(cfg.LoadTimeout))
}

const stageAsset = "stage.dat"

var HomeScreen = co.Define[*homeScreenComponent]()

type HomeScreenData struct {
	App *applicationComponent
}

type homeScreenComponent struct {
	co.BaseComponent

	app *applicationComponent

	config      stage.Config
	resourceSet *game.ResourceSet

	titleFont *ui.Font
}

func (c *homeScreenComponent) OnCreate() {
	globalState := co.TypedValue[GlobalState](c.Scope())
	c.config = globalState.Config
	c.resourceSet = globalState.ResourceSet

	componentData := co.GetData[HomeScreenData](c.Properties())
	c.app = componentData.App

	c.titleFont = co.OpenFont(c.Scope(), "ui:///roboto-bold.ttf")

	initRouter(c)
}

func (c *homeScreenComponent) Render() co.Instance {
	return co.New(std.Container, func() {
		co.WithData(std.ContainerData{
			BackgroundColor: opt.V(ui.RGB(0x11, 0x11, 0x11)),
			Layout:          layout.Anchor(),
		})

		co.WithChild("pane", co.New(std.Container, func() {
			co.WithLayoutData(layout.Data{
				Top:    opt.V(0),
				Bottom: opt.V(0),
				Left:   opt.V(0),
				Width:  opt.V(320),
			})
			co.WithData(std.ContainerData{
				BackgroundColor: opt.V(ui.RGBA(0, 0, 0, 192)),
				Layout:          layout.Anchor(),
			})

			co.WithChild("holder", co.New(std.Element, func() {
				co.WithLayoutData(layout.Data{
					Left:           opt.V(75),
					VerticalCenter: opt.V(0),
				})
				co.WithData(std.ElementData{
					Layout: layout.Vertical(layout.VerticalSettings{
						ContentAlignment: layout.HorizontalAlignmentLeft,
						ContentSpacing:   15,
					}),
				})

				co.WithChild("start-button", co.New(std.Button, func() {
					co.WithData(std.ButtonData{
						Text: "Start",
					})
					co.WithCallbackData(std.ButtonCallbackData{
						OnClick: c.onStartClicked,
					})
				}))

				co.WithChild("pair-button", co.New(std.Button, func() {
					co.WithData(std.ButtonData{
						Text: "Pair pad",
					})
					co.WithCallbackData(std.ButtonCallbackData{
						OnClick: c.onPairClicked,
					})
				}))

				co.WithChild("licenses-button", co.New(std.Button, func() {
					co.WithData(std.ButtonData{
						Text: "Licenses",
					})
					co.WithCallbackData(std.ButtonCallbackData{
						OnClick: c.onLicensesClicked,
					})
				}))

				co.WithChild("exit-button", co.New(std.Button, func() {
					co.WithData(std.ButtonData{
						Text: "Exit",
					})
					co.WithCallbackData(std.ButtonCallbackData{
						OnClick: c.onExitClicked,
					})
				}))
			}))
		}))

		co.WithChild("keys", co.New(std.Label, func() {
			co.WithLayoutData(layout.Data{
				Left:   opt.V(360),
				Bottom: opt.V(40),
			})
			co.WithData(std.LabelData{
				Font:      c.titleFont,
				FontSize:  opt.V(float32(20)),
				FontColor: opt.V(ui.RGB(0xAA, 0xAA, 0xAA)),
				Text:      "W A S D to move, drag to orbit, scroll to zoom, ESC to quit",
			})
		}))
	})
}

func (c *homeScreenComponent) onStartClicked() {
	beginStageLoad(c.app, c.config, c.resourceSet)
}

func (c *homeScreenComponent) onPairClicked() {
	c.app.SetActiveView(ViewNamePair)
}

func (c *homeScreenComponent) onLicensesClicked() {
	c.app.SetActiveView(ViewNameLicenses)
}

func (c *homeScreenComponent) onExitClicked() {
	co.Window(c.Scope()).Close()
}

// Temporary global storage for data across views
var stageData *StageData
