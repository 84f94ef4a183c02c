//go:build !js

package ui

import (
	"log"
	"os/exec"
	"runtime"
)

// BaseURL is where the web build, including the pad page, is published.
func BaseURL() string {
	return "https://nobonobo.github.io/video-stage/"
}

func URLOpen(u string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", u)
	case "darwin":
		cmd = exec.Command("open", u)
	case "linux":
		cmd = exec.Command("xdg-open", u)
	default:
		log.Println("unsupported os:", runtime.GOOS)
		return
	}
	if err := cmd.Start(); err != nil {
		log.Println("failed to open url:", err)
	}
}

func GetParam(key string) string {
	return ""
}

func SetParam(key, value string) {
}

func initRouter(c *homeScreenComponent) {
}

func updateHash(view ViewName) {
}
