package ui

import (
	"github.com/mokiat/lacking/game"

	"github.com/nobonobo/video-stage/remote"
	"github.com/nobonobo/video-stage/stage"
)

type GlobalState struct {
	Engine      *game.Engine
	ResourceSet *game.ResourceSet
	Config      stage.Config
	Input       *stage.Input
	Pads        *remote.Router
	HostID      string
}
