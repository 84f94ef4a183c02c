package main

import (
	"github.com/mokiat/gomath/dprec"
	"github.com/mokiat/lacking/game/asset/dsl"
)

// The stage holds everything except the character: sky, lights, the grid
// ground and the camera node the orbit controls drive.
var _ = func() any {
	sky := dsl.CreateSky(dsl.CreateColorSkyMaterial(
		dsl.RGB(0.0, 0.0, 0.0),
	))

	ambientLight := dsl.CreateAmbientLight()

	keyLight := dsl.CreateDirectionalLight(
		dsl.SetEmitColor(dsl.RGB(1.0, 1.0, 1.0)),
		dsl.SetCastShadow(dsl.Const(true)),
	)

	return dsl.Save("stage.dat", dsl.CreateModel(
		dsl.AppendModel(dsl.OpenGLTFModel("resources/raw/models/grid.glb")),
		dsl.AddNode(dsl.CreateNode("Sky",
			dsl.AddAttachment(sky),
		)),
		dsl.AddNode(dsl.CreateNode("AmbientLight",
			dsl.AddAttachment(ambientLight),
		)),
		dsl.AddNode(dsl.CreateNode("KeyLight",
			dsl.AddAttachment(keyLight),
			dsl.SetTranslation(dsl.Const(dprec.NewVec3(0.0, 50.0, 100.0))),
		)),
		dsl.AddNode(dsl.CreateNode("Camera",
			dsl.SetTranslation(dsl.Const(dprec.NewVec3(0.0, 50.0, 50.0))),
		)),
	))
}()

var _ = dsl.Save("character.dat",
	dsl.OpenGLTFModel("resources/raw/models/SimplePeople2_Barista.glb"),
)
