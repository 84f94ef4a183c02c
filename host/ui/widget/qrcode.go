package widget

import (
	"github.com/mokiat/gog/opt"
	"github.com/mokiat/lacking/ui"
	co "github.com/mokiat/lacking/ui/component"
	std "github.com/mokiat/lacking/ui/std"
	"github.com/skip2/go-qrcode"
)

// QRCode shows Text as a clickable QR code, used to pair remote pads.
var QRCode = co.Define[*qrCodeComponent]()

type QRCodeData struct {
	Text string
	Size float32
}

var defaultQRCodeData = QRCodeData{
	Text: "",
	Size: 128,
}

type QRCodeCallbackData struct {
	OnClick std.OnActionFunc
}

var defaultQRCodeCallbackData = QRCodeCallbackData{
	OnClick: func() {},
}

var (
	_ ui.ElementRenderHandler = (*qrCodeComponent)(nil)
	_ ui.ElementMouseHandler  = (*qrCodeComponent)(nil)
)

type qrCodeComponent struct {
	co.BaseComponent

	data     QRCodeData
	callback QRCodeCallbackData
	qrImage  *ui.Image
	text     string
	size     float32
}

func (c *qrCodeComponent) OnUpsert() {
	c.data = co.GetOptionalData(c.Properties(), defaultQRCodeData)
	c.callback = co.GetOptionalCallbackData(c.Properties(), defaultQRCodeCallbackData)

	// encoding is only redone when the content changes
	if c.data.Text != c.text || c.data.Size != c.size {
		c.text = c.data.Text
		c.size = c.data.Size
		c.updateQRImage()
	}
}

func (c *qrCodeComponent) updateQRImage() {
	c.qrImage = nil
	if c.text == "" {
		return
	}
	qr, err := qrcode.New(c.text, qrcode.Medium)
	if err != nil {
		return
	}
	ctx := c.Scope().Context()
	img, err := ctx.CreateImage(qr.Image(int(c.size)))
	if err != nil {
		return
	}
	c.qrImage = img
}

func (c *qrCodeComponent) Render() co.Instance {
	padding := ui.Spacing{Left: 5, Right: 5, Top: 5, Bottom: 5}

	return co.New(std.Element, func() {
		co.WithLayoutData(c.Properties().LayoutData())
		co.WithData(std.ElementData{
			Essence:   c,
			Padding:   padding,
			IdealSize: opt.V(ui.NewSize(int(c.data.Size), int(c.data.Size))),
		})
		co.WithChildren(c.Properties().Children())
	})
}

func (c *qrCodeComponent) OnMouseEvent(element *ui.Element, event ui.MouseEvent) bool {
	if event.Action == ui.MouseActionUp && event.Button == ui.MouseButtonLeft {
		c.callback.OnClick()
		return true
	}
	return false
}

func (c *qrCodeComponent) OnRender(element *ui.Element, canvas *ui.Canvas) {
	drawBounds := canvas.DrawBounds(element, false)
	canvas.Reset()
	canvas.Rectangle(
		drawBounds.Position,
		drawBounds.Size,
	)
	canvas.Fill(ui.Fill{
		Rule:        ui.FillRuleSimple,
		Color:       ui.White(),
		Image:       c.qrImage,
		ImageOffset: drawBounds.Position,
		ImageSize:   drawBounds.Size,
	})
}
