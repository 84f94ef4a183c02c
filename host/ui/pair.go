package ui

import (
	"log"
	"slices"
	"time"

	"github.com/mokiat/gog/opt"
	"github.com/mokiat/lacking/ui"
	co "github.com/mokiat/lacking/ui/component"
	"github.com/mokiat/lacking/ui/layout"
	"github.com/mokiat/lacking/ui/std"

	"github.com/nobonobo/video-stage/host/ui/widget"
	"github.com/nobonobo/video-stage/remote"
)

var PairScreen = co.Define[*pairScreenComponent]()

type PairScreenData struct {
	App *applicationComponent
}

// pairScreenComponent shows the pad link as a QR code and lists the pads
// currently connected.
type pairScreenComponent struct {
	co.BaseComponent

	app *applicationComponent

	titleFont *ui.Font
	textFont  *ui.Font

	pads    *remote.Router
	hostID  string
	members []string
	active  bool
}

func (c *pairScreenComponent) OnCreate() {
	globalState := co.TypedValue[GlobalState](c.Scope())
	c.pads = globalState.Pads
	c.hostID = globalState.HostID

	componentData := co.GetData[PairScreenData](c.Properties())
	c.app = componentData.App

	c.titleFont = co.OpenFont(c.Scope(), "ui:///roboto-bold.ttf")
	c.textFont = co.OpenFont(c.Scope(), "ui:///roboto-regular.ttf")

	c.active = true
	c.refresh()
}

func (c *pairScreenComponent) OnDelete() {
	c.active = false
}

// refresh polls the connected pads once per second while the view is open.
func (c *pairScreenComponent) refresh() {
	if !c.active {
		return
	}
	var members []string
	for id, name := range c.pads.Peers() {
		if name == "" {
			name = id
		}
		members = append(members, name)
	}
	slices.Sort(members)
	if !slices.Equal(members, c.members) {
		c.members = members
		c.Invalidate()
	}
	co.After(c.Scope(), time.Second, c.refresh)
}

func (c *pairScreenComponent) Render() co.Instance {
	return co.New(std.Container, func() {
		co.WithData(std.ContainerData{
			BackgroundColor: opt.V(ui.Black()),
			Layout:          layout.Anchor(),
		})

		co.WithChild("menu-pane", co.New(std.Container, func() {
			co.WithLayoutData(layout.Data{
				Top:    opt.V(0),
				Bottom: opt.V(0),
				Left:   opt.V(0),
				Width:  opt.V(320),
			})
			co.WithData(std.ContainerData{
				BackgroundColor: opt.V(ui.Black()),
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

				co.WithChild("back-button", co.New(std.Button, func() {
					co.WithData(std.ButtonData{
						Text: "Back",
					})
					co.WithCallbackData(std.ButtonCallbackData{
						OnClick: c.onBackClicked,
					})
				}))
			}))
		}))

		co.WithChild("content-pane", co.New(std.Container, func() {
			co.WithLayoutData(layout.Data{
				Top:    opt.V(0),
				Bottom: opt.V(0),
				Left:   opt.V(320),
				Right:  opt.V(0),
			})
			co.WithData(std.ContainerData{
				BackgroundColor: opt.V(ui.RGB(0x11, 0x11, 0x11)),
				Layout:          layout.Anchor(),
			})

			co.WithChild("qr-section", co.New(std.Element, func() {
				co.WithLayoutData(layout.Data{
					Top:              opt.V(20),
					HorizontalCenter: opt.V(-170),
					Width:            opt.V(320),
					Height:           opt.V(320),
				})
				co.WithData(std.ElementData{
					Layout: layout.Anchor(),
				})
				link := PadURL(c.hostID)
				co.WithChild("qr-code", co.New(widget.QRCode, func() {
					co.WithLayoutData(layout.Data{
						HorizontalCenter: opt.V(0),
						VerticalCenter:   opt.V(0),
					})
					co.WithData(widget.QRCodeData{
						Text: link,
						Size: 320,
					})
					co.WithCallbackData(widget.QRCodeCallbackData{
						OnClick: func() {
							log.Println("QR Code clicked:", link)
							URLOpen(link)
						},
					})
				}))
			}))

			co.WithChild("members-section", co.New(std.Container, func() {
				co.WithLayoutData(layout.Data{
					Top:              opt.V(20),
					HorizontalCenter: opt.V(170),
					Width:            opt.V(320),
					Height:           opt.V(320),
				})
				co.WithData(std.ContainerData{
					Layout: layout.Vertical(layout.VerticalSettings{
						ContentAlignment: layout.HorizontalAlignmentCenter,
						ContentSpacing:   10,
					}),
				})

				co.WithChild("members-title", co.New(std.Label, func() {
					co.WithData(std.LabelData{
						Font:      c.titleFont,
						FontSize:  opt.V(float32(24)),
						FontColor: opt.V(ui.White()),
						Text:      "Pads:",
					})
				}))

				for _, name := range c.members {
					co.WithChild("member-"+name, co.New(std.Label, func() {
						co.WithData(std.LabelData{
							Font:      c.textFont,
							FontSize:  opt.V(float32(20)),
							FontColor: opt.V(ui.RGB(0xAA, 0xAA, 0xAA)),
							Text:      name,
						})
					}))
				}
			}))
		}))
	})
}

func (c *pairScreenComponent) onBackClicked() {
	c.app.SetActiveView(ViewNameHome)
}

// PadURL is the pad page for the given host id.
func PadURL(hostID string) string {
	return BaseURL() + "pad/?dest=" + hostID
}
