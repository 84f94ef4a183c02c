package widget

import (
	"time"

	"github.com/mokiat/gog/opt"
	"github.com/mokiat/gomath/sprec"
	"github.com/mokiat/lacking/ui"
	co "github.com/mokiat/lacking/ui/component"
	"github.com/mokiat/lacking/ui/std"
)

var Loading = co.Define[*loadingComponent]()

// LoadingData names what is being loaded.
type LoadingData struct {
	Subject string
}

var defaultLoadingData = LoadingData{
	Subject: "Loading",
}

type loadingComponent struct {
	co.BaseComponent

	elapsedTime time.Duration
	labels      [][]rune

	font     *ui.Font
	fontSize float32

	maxLabelSize sprec.Vec2
}

func (c *loadingComponent) OnCreate() {
	c.font = co.OpenFont(c.Scope(), "ui:///roboto-bold.ttf")
	c.fontSize = 48.0
}

func (c *loadingComponent) OnUpsert() {
	data := co.GetOptionalData(c.Properties(), defaultLoadingData)

	c.labels = c.labels[:0]
	for dots := 0; dots <= 3; dots++ {
		label := []rune(data.Subject)
		for range dots {
			label = append(label, '.')
		}
		c.labels = append(c.labels, label)
	}

	lastLabel := c.labels[len(c.labels)-1]
	c.maxLabelSize = sprec.Vec2{
		X: c.font.LineWidth(lastLabel, c.fontSize),
		Y: c.font.LineHeight(c.fontSize),
	}
}

func (c *loadingComponent) Render() co.Instance {
	return co.New(std.Element, func() {
		co.WithData(std.ElementData{
			Essence:   c,
			IdealSize: opt.V(ui.NewSize(int(c.maxLabelSize.X), int(c.maxLabelSize.Y))),
		})
		co.WithLayoutData(c.Properties().LayoutData())
		co.WithChildren(c.Properties().Children())
	})
}

func (c *loadingComponent) OnRender(element *ui.Element, canvas *ui.Canvas) {
	c.elapsedTime += canvas.ElapsedTime()

	tickEvery := 500 * time.Millisecond
	tickIndex := int(c.elapsedTime / tickEvery)
	text := c.labels[tickIndex%len(c.labels)]

	drawBounds := canvas.DrawBounds(element, false)

	canvas.Push()
	canvas.Translate(drawBounds.Position)
	canvas.Translate(sprec.Vec2{
		X: (drawBounds.Size.X - c.maxLabelSize.X) / 2,
		Y: (drawBounds.Size.Y - c.maxLabelSize.Y) / 2,
	})
	canvas.FillTextLine(text, sprec.ZeroVec2(), ui.Typography{
		Font:  c.font,
		Size:  c.fontSize,
		Color: ui.White(),
	})
	canvas.Pop()

	element.Invalidate() // keeps the dots moving
}
