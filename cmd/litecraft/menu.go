package main

import (
	"github.com/devblok/litecraft/core/resource"
	"github.com/devblok/litecraft/gui"
	"github.com/go-gl/mathgl/mgl32"
)

const guiShader = "gui"

func mainMenu(namespace string) *gui.Scene {
	logo := gui.NewButton(resource.TextureID(namespace, "gui/title/minecraft"), gui.Rect{Y: 30, Width: 274, Height: 44})
	play := gui.NewButton(resource.TextureID(namespace, "gui/widgets"), gui.Rect{Y: -24, Width: 200, Height: 20})
	quit := gui.NewButton(resource.TextureID(namespace, "gui/widgets"), gui.Rect{Y: 24, Width: 200, Height: 20})

	title := gui.NewContainer(gui.UpCenter, mgl32.Vec2{}).Add(logo)
	buttons := gui.NewContainer(gui.MiddleCenter, mgl32.Vec2{}).Add(play, quit)
	return gui.NewScene(title, buttons)
}
