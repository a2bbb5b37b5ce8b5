package gui_test

import (
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/devblok/litecraft/core"
	"github.com/devblok/litecraft/core/resource"
	"github.com/devblok/litecraft/gui"
)

type texture struct{ w, h int }

func (t texture) Width() int  { return t.w }
func (t texture) Height() int { return t.h }
func (t texture) Destroy()    {}

type textures map[resource.ID]core.Texture

func (t textures) Get(id resource.ID) (core.Texture, bool) {
	tex, ok := t[id]
	return tex, ok
}

var screen = resource.Size{Width: 800, Height: 600}

func TestLayoutAnchors(t *testing.T) {
	c := qt.New(t)
	rect := gui.Rect{Width: 100, Height: 50}
	origin := mgl32.Vec2{10, 20}

	for anchor, want := range map[gui.Anchor]gui.Rect{
		gui.UpLeft:       {X: 10, Y: 20, Width: 100, Height: 50},
		gui.UpCenter:     {X: 360, Y: 20, Width: 100, Height: 50},
		gui.UpRight:      {X: 710, Y: 20, Width: 100, Height: 50},
		gui.MiddleLeft:   {X: 10, Y: 295, Width: 100, Height: 50},
		gui.MiddleCenter: {X: 360, Y: 295, Width: 100, Height: 50},
		gui.MiddleRight:  {X: 710, Y: 295, Width: 100, Height: 50},
		gui.BottomLeft:   {X: 10, Y: 570, Width: 100, Height: 50},
		gui.BottomCenter: {X: 360, Y: 570, Width: 100, Height: 50},
		gui.BottomRight:  {X: 710, Y: 570, Width: 100, Height: 50},
	} {
		c.Check(gui.Layout(anchor, screen, origin, rect, 0), qt.Equals, want, qt.Commentf("anchor %s", anchor))
	}
}

func TestLayoutCenterSnapsToPixels(t *testing.T) {
	c := qt.New(t)
	got := gui.Layout(gui.UpCenter, resource.Size{Width: 801, Height: 600}, mgl32.Vec2{}, gui.Rect{Width: 101, Height: 10}, 0)
	c.Assert(got.X, qt.Equals, float32(350))
}

func TestLayoutScale(t *testing.T) {
	c := qt.New(t)
	rect := gui.Rect{Width: 100, Height: 50}

	c.Assert(gui.Layout(gui.UpLeft, screen, mgl32.Vec2{}, rect, 1), qt.Equals,
		gui.Rect{X: 0, Y: 0, Width: 200, Height: 150})
	c.Assert(gui.Layout(gui.BottomRight, screen, mgl32.Vec2{}, rect, 1), qt.Equals,
		gui.Rect{X: 800, Y: 650, Width: 100, Height: 50})
	c.Assert(gui.Layout(gui.UpRight, screen, mgl32.Vec2{}, rect, 2), qt.Equals,
		gui.Rect{X: 900, Y: 0, Width: 100, Height: 250})
}

func TestRect(t *testing.T) {
	c := qt.New(t)
	r := gui.Rect{X: 10, Y: 20, Width: 100, Height: 50}

	c.Assert(r.Contains(mgl32.Vec2{10, 20}), qt.IsTrue)
	c.Assert(r.Contains(mgl32.Vec2{109, 69}), qt.IsTrue)
	c.Assert(r.Contains(mgl32.Vec2{110, 20}), qt.IsFalse)

	corner := r.Model().Mul4x1(mgl32.Vec4{1, 1, 0, 1})
	c.Assert(corner.Vec3().Vec2(), qt.Equals, mgl32.Vec2{110, 70})
}

func TestContainerSkipsAbsentTextures(t *testing.T) {
	c := qt.New(t)
	ready := resource.TextureID(resource.DefaultNamespace, "gui/button")
	loading := resource.TextureID(resource.DefaultNamespace, "gui/slider")

	frame := gui.NewFrameWith(screen, textures{ready: texture{200, 20}})
	container := gui.NewContainer(gui.MiddleCenter, mgl32.Vec2{}).Add(
		gui.NewButton(ready, gui.Rect{Width: 200, Height: 20}),
		gui.NewButton(loading, gui.Rect{Y: 30, Width: 200, Height: 20}),
	)
	container.Draw(frame)

	c.Assert(frame.Skipped(), qt.Equals, 1)
	c.Assert(frame.Quads(), qt.HasLen, 1)
	quad := frame.Quads()[0]
	c.Assert(quad.Texture.Width(), qt.Equals, 200)
	c.Assert(quad.Rect, qt.Equals, gui.Rect{X: 300, Y: 290, Width: 200, Height: 20})
}

func TestAnchorString(t *testing.T) {
	c := qt.New(t)
	c.Assert(gui.MiddleCenter.String(), qt.Equals, "middle-center")
	c.Assert(gui.Anchor(42).String(), qt.Equals, "unknown")
}
