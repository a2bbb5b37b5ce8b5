// Package gui lays out textured 2D elements anchored to the window
// and turns them into quads for the renderer.
package gui

import (
	"github.com/devblok/litecraft/core/resource"
	"github.com/go-gl/mathgl/mgl32"
)

// Anchor is the window position an element is laid out against
type Anchor int

// Anchors, from the upper left corner to the bottom right
const (
	UpLeft Anchor = iota
	UpCenter
	UpRight
	MiddleLeft
	MiddleCenter
	MiddleRight
	BottomLeft
	BottomCenter
	BottomRight
)

var anchorNames = [...]string{
	"up-left", "up-center", "up-right",
	"middle-left", "middle-center", "middle-right",
	"bottom-left", "bottom-center", "bottom-right",
}

func (a Anchor) String() string {
	if a < UpLeft || a > BottomRight {
		return "unknown"
	}
	return anchorNames[a]
}

// ScaleStep is the amount of pixels an element grows per scale unit
const ScaleStep float32 = 100

// Rect is a rectangle in window pixels, origin in the upper left corner
type Rect struct {
	X, Y          float32
	Width, Height float32
}

// Model returns the matrix that maps a unit quad onto the rectangle
func (r Rect) Model() mgl32.Mat4 {
	return mgl32.Translate3D(r.X, r.Y, 0).Mul4(mgl32.Scale3D(r.Width, r.Height, 1))
}

// Contains reports whether the point is inside the rectangle
func (r Rect) Contains(p mgl32.Vec2) bool {
	return p.X() >= r.X && p.X() < r.X+r.Width &&
		p.Y() >= r.Y && p.Y() < r.Y+r.Height
}

// center offsets with integer division, elements snap to whole pixels
func center(screen uint32, size float32) float32 {
	return float32(int(screen)/2 - int(size)/2)
}

// Layout places rect relative to the anchor on a screen of the given size,
// moves it by the container origin and grows it by scale.
func Layout(anchor Anchor, screen resource.Size, origin mgl32.Vec2, rect Rect, scale uint8) Rect {
	x, y, w, h := rect.X, rect.Y, rect.Width, rect.Height
	width, height := float32(screen.Width), float32(screen.Height)

	switch anchor {
	case UpCenter:
		x += center(screen.Width, w)
	case UpRight:
		x += width - w
	case MiddleLeft:
		y += center(screen.Height, h)
	case MiddleCenter:
		x += center(screen.Width, w)
		y += center(screen.Height, h)
	case MiddleRight:
		x += width - w
		y += center(screen.Height, h)
	case BottomLeft:
		y += height - h
	case BottomCenter:
		x += center(screen.Width, w)
		y += height - h
	case BottomRight:
		x += width - w
		y += height - h
	}

	return grow(anchor, Rect{
		X:      origin.X() + x,
		Y:      origin.Y() + y,
		Width:  w,
		Height: h,
	}, scale)
}

func grow(anchor Anchor, r Rect, scale uint8) Rect {
	s := float32(scale) * ScaleStep
	switch anchor {
	case UpLeft:
		return Rect{r.X, r.Y, r.Width + s, r.Height + s}
	case UpCenter:
		return Rect{r.X + s, r.Y, r.Width + s, r.Height + s}
	case UpRight:
		return Rect{r.X + s, r.Y, r.Width, r.Height + s}
	case MiddleLeft, MiddleRight:
		return Rect{r.X, r.Y + s, r.Width + s, r.Height + s}
	case MiddleCenter:
		return Rect{r.X + s, r.Y + s, r.Width + s, r.Height + s}
	case BottomLeft:
		return Rect{r.X, r.Y + s, r.Width + s, r.Height}
	case BottomCenter:
		return Rect{r.X + s, r.Y + s, r.Width + s, r.Height}
	case BottomRight:
		return Rect{r.X + s, r.Y + s, r.Width, r.Height}
	}
	return r
}
