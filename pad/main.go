//go:build js

package main

import (
	"context"
	"encoding/json"
	"log"
	"net/url"
	"syscall/js"
	"time"

	"github.com/google/uuid"
	"github.com/nobonobo/rtcconnect/node"

	"github.com/nobonobo/video-stage/remote"
	"github.com/nobonobo/video-stage/schema"
	"github.com/nobonobo/video-stage/stage"
)

var (
	document = js.Global().Get("document")
	location = js.Global().Get("location")
)

// Pad is a touch keypad that forwards movement keys to a stage host.
type Pad struct {
	uid  string
	name string
	dest string
	node *node.Node
	keys stage.KeyMap

	outbox *remote.Outbox
}

func NewPad() *Pad {
	uid, _ := uuid.NewV6()
	u, _ := url.Parse(location.Get("href").String())
	p := &Pad{
		uid:  uid.String(),
		name: u.Query().Get("name"),
		dest: u.Query().Get("dest"),
		node: node.New(uid.String()),
		keys: stage.DefaultKeyMap(),
	}
	p.outbox = remote.NewOutbox(64, func(data []byte) {
		p.node.Publish(context.Background(), p.dest, "keys", data)
	})
	return p
}

func (p *Pad) Connect(ctx context.Context) error {
	return p.node.Connect(ctx, p.dest)
}

func (p *Pad) Close() error {
	return p.node.Close()
}

func (p *Pad) send(key stage.Key, down bool) {
	data, err := json.Marshal(schema.KeyEvent{
		ID:   p.uid,
		Name: p.name,
		Key:  string(key),
		Down: down,
	})
	if err != nil {
		log.Println(err)
		return
	}
	p.outbox.Push(data)
}

// Render lays out one button per direction.
func (p *Pad) Render() {
	holder := document.Call("getElementById", "pad")
	for _, b := range []struct {
		label string
		key   stage.Key
	}{
		{"▲", p.keys.Forward},
		{"◀", p.keys.Left},
		{"▼", p.keys.Backward},
		{"▶", p.keys.Right},
	} {
		key := b.key
		button := document.Call("createElement", "button")
		button.Set("innerText", b.label)
		button.Call("addEventListener", "pointerdown", js.FuncOf(func(this js.Value, args []js.Value) any {
			args[0].Call("preventDefault")
			p.send(key, true)
			return nil
		}))
		release := js.FuncOf(func(this js.Value, args []js.Value) any {
			p.send(key, false)
			return nil
		})
		button.Call("addEventListener", "pointerup", release)
		button.Call("addEventListener", "pointerleave", release)
		holder.Call("appendChild", button)
	}
}

func status(text string) {
	document.Call("getElementById", "message").Set("innerText", text)
}

func main() {
	pad := NewPad()
	defer pad.Close()
	if pad.dest == "" {
		status("missing ?dest= host id")
		select {}
	}

	status("connecting...")
	var err error
	for range 3 {
		err = pad.Connect(context.Background())
		if err == nil {
			break
		}
		log.Println(err)
		time.Sleep(5 * time.Second)
	}
	if err != nil {
		status("connection failed: " + err.Error())
		select {}
	}
	status("connected to " + pad.dest)
	go pad.outbox.Run(context.Background())
	pad.Render()
	select {}
}
