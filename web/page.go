//go:build js

package main

import (
	"encoding/base64"
	"log"

	"github.com/skip2/go-qrcode"
)

func BaseURL() string {
	return location.Get("origin").String() + location.Get("pathname").String()
}

// showError replaces the silent stall of a failed load with a visible banner.
func showError(err error) {
	el := document.Call("getElementById", "message")
	if !el.Truthy() {
		el = document.Call("createElement", "div")
		el.Set("id", "message")
		document.Get("body").Call("appendChild", el)
	}
	el.Set("className", "error")
	el.Set("innerText", "Error: "+err.Error())
}

// showQRCode renders a QR code for link into the #pair element, if present.
func showQRCode(link string) {
	holder := document.Call("getElementById", "pair")
	if !holder.Truthy() {
		return
	}
	png, err := qrcode.Encode(link, qrcode.Medium, 160)
	if err != nil {
		log.Println("failed to encode qr code:", err)
		return
	}
	img := document.Call("createElement", "img")
	img.Set("src", "data:image/png;base64,"+base64.StdEncoding.EncodeToString(png))
	img.Set("title", link)
	anchor := document.Call("createElement", "a")
	anchor.Set("href", link)
	anchor.Set("target", "_blank")
	anchor.Call("appendChild", img)
	holder.Call("appendChild", anchor)
}
