package gui

import (
	"github.com/devblok/litecraft/core"
	"github.com/devblok/litecraft/core/renderer"
	"github.com/devblok/litecraft/core/resource"
	"github.com/go-gl/mathgl/mgl32"
)

// Textures looks up textures that finished uploading
type Textures interface {
	Get(id resource.ID) (core.Texture, bool)
}

// Quad is a single textured rectangle to be drawn
type Quad struct {
	Texture core.Texture
	Rect    Rect
	Model   mgl32.Mat4
}

// Frame collects the quads of one GUI pass
type Frame struct {
	Screen     resource.Size
	Projection mgl32.Mat4
	Parameters renderer.DrawParameters

	textures Textures
	quads    []Quad
	skipped  int
}

// NewFrame starts a GUI pass. Quads are drawn without depth.
func NewFrame(manager *resource.Manager) *Frame {
	return &Frame{
		Screen:     manager.Size(),
		Projection: manager.Projection(),
		Parameters: manager.NoDepth(),
		textures:   manager.Textures(),
	}
}

// NewFrameWith starts a GUI pass over any texture lookup
func NewFrameWith(screen resource.Size, textures Textures) *Frame {
	return &Frame{
		Screen:     screen,
		Projection: mgl32.Ortho2D(0, float32(screen.Width), float32(screen.Height), 0),
		Parameters: renderer.NoDepth(),
		textures:   textures,
	}
}

// DrawTexture queues a quad. Textures that are not ready yet are skipped
// and drawn on a later frame.
func (f *Frame) DrawTexture(id resource.ID, rect Rect) bool {
	texture, ok := f.textures.Get(id)
	if !ok {
		f.skipped++
		return false
	}
	f.quads = append(f.quads, Quad{
		Texture: texture,
		Rect:    rect,
		Model:   rect.Model(),
	})
	return true
}

// Quads returns what was queued so far
func (f *Frame) Quads() []Quad {
	return f.quads
}

// Skipped returns how many draws had no texture available
func (f *Frame) Skipped() int {
	return f.skipped
}

// Element is anything that can be drawn in a container
type Element interface {
	// Draw lays the element out inside its container and queues its quads
	Draw(frame *Frame, anchor Anchor, origin mgl32.Vec2)

	// Textures returns the textures the element needs loaded
	Textures() []resource.ID
}

// Button is a textured rectangle
type Button struct {
	Texture resource.ID
	Rect    Rect
	Scale   uint8
}

// NewButton creates a button drawing texture over rect
func NewButton(texture resource.ID, rect Rect) *Button {
	return &Button{
		Texture: texture,
		Rect:    rect,
	}
}

// Draw implements Element
func (b *Button) Draw(frame *Frame, anchor Anchor, origin mgl32.Vec2) {
	frame.DrawTexture(b.Texture, Layout(anchor, frame.Screen, origin, b.Rect, b.Scale))
}

// Textures implements Element
func (b *Button) Textures() []resource.ID {
	return []resource.ID{b.Texture}
}

// Container groups elements under one anchor and origin
type Container struct {
	Anchor   Anchor
	Origin   mgl32.Vec2
	Elements []Element
}

// NewContainer creates an empty container
func NewContainer(anchor Anchor, origin mgl32.Vec2) *Container {
	return &Container{
		Anchor: anchor,
		Origin: origin,
	}
}

// Add appends elements to the container
func (c *Container) Add(elements ...Element) *Container {
	c.Elements = append(c.Elements, elements...)
	return c
}

// Draw draws every element in order
func (c *Container) Draw(frame *Frame) {
	for _, element := range c.Elements {
		element.Draw(frame, c.Anchor, c.Origin)
	}
}

// Load starts loading every texture the elements need
func (c *Container) Load(manager *resource.Manager) error {
	for _, element := range c.Elements {
		for _, id := range element.Textures() {
			if err := manager.LoadTexture(id); err != nil {
				return err
			}
		}
	}
	return nil
}

// Scene is a set of containers drawn together, first to last
type Scene struct {
	Containers []*Container
}

// NewScene creates a scene out of containers
func NewScene(containers ...*Container) *Scene {
	return &Scene{Containers: containers}
}

// Draw draws every container
func (s *Scene) Draw(frame *Frame) {
	for _, container := range s.Containers {
		container.Draw(frame)
	}
}

// Load starts loading the textures of every container
func (s *Scene) Load(manager *resource.Manager) error {
	for _, container := range s.Containers {
		if err := container.Load(manager); err != nil {
			return err
		}
	}
	return nil
}
