//go:build js

package ui

import (
	"log"
	"net/url"
	"strings"
	"syscall/js"

	"github.com/google/uuid"
)

var (
	document    = js.Global().Get("document")
	window      = js.Global().Get("window")
	location    = js.Global().Get("location")
	initialized = false
	params      url.Values
)

func init() {
	u, _ := url.Parse(location.Get("href").String())
	params = u.Query()
	if params.Get("id") == "" {
		uid, _ := uuid.NewV6()
		SetParam("id", uid.String())
	}
}

func BaseURL() string {
	return location.Get("origin").String() + location.Get("pathname").String()
}

func URLOpen(u string) {
	window.Call("open", u)
}

func GetParam(key string) string {
	return params.Get(key)
}

func SetParam(key, value string) {
	params.Set(key, value)
	location.Set("search", params.Encode())
}

func getViewFromHash() ViewName {
	return ViewName(strings.TrimPrefix(location.Get("hash").String(), "#"))
}

// initRouter follows the URL hash so #pair and #licenses can be linked to.
// The stage view needs loaded assets, so it is entered through the loader.
func initRouter(c *homeScreenComponent) {
	if initialized {
		return
	}
	follow := func(view ViewName) {
		switch view {
		case ViewNameStage:
			c.onStartClicked()
		case ViewNamePair, ViewNameLicenses, ViewNameHome:
			c.app.SetActiveView(view)
		}
	}

	if view := getViewFromHash(); view != "" {
		log.Println("initial view", view)
		follow(view)
	}
	initialized = true

	cb := js.FuncOf(func(this js.Value, args []js.Value) any {
		view := getViewFromHash()
		if view != c.app.ActiveView() {
			log.Println("view changed", view)
			follow(view)
		}
		return nil
	})
	window.Call("addEventListener", "hashchange", cb)
}

func updateHash(view ViewName) {
	if !initialized {
		return
	}
	switch view {
	default:
		return
	case ViewNameHome, ViewNameStage, ViewNameLicenses, ViewNamePair:
	}
	targetHash := "#" + string(view)
	if location.Get("hash").String() != targetHash {
		log.Println("update hash", view)
		location.Set("hash", targetHash)
	}
}
