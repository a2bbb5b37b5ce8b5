// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package resource

import (
	"io"
	"time"

	"github.com/devblok/litecraft/core"
	"github.com/devblok/litecraft/core/renderer"
	"github.com/go-gl/mathgl/mgl32"
	log "github.com/sirupsen/logrus"
)

// Size is the window size in pixels
type Size struct {
	Width  uint32
	Height uint32
}

// Option configures a Manager
type Option func(*Manager)

// WithSource replaces the sources built from the assets configuration
func WithSource(source Source) Option {
	return func(m *Manager) {
		m.source = source
	}
}

// WithLogger sets the logger used by the manager and everything it owns
func WithLogger(logger log.FieldLogger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// New creates Litecraft's resource manager. The settings are shared with
// the loader goroutines and must not be modified afterwards.
func New(settings *core.Configuration, opts ...Option) (*Manager, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	m := &Manager{
		settings: settings,
		logger:   log.StandardLogger(),
		size: Size{
			Width:  settings.Window.Width,
			Height: settings.Window.Height,
		},
	}
	for _, opt := range opts {
		opt(m)
	}

	if m.source == nil {
		sources, err := NewSources(settings.Assets)
		if err != nil {
			return nil, err
		}
		m.source = sources
	}

	pool, err := NewPool(settings.Loader.Threads, m.logger)
	if err != nil {
		return nil, err
	}
	m.pool = pool
	m.textures = NewTextureManager(m.source, pool, m.logger)
	m.shaders = NewShaderManager(m.source, settings.Assets.Namespace, m.logger)
	m.started = time.Now()

	m.logger.WithFields(log.Fields{
		"threads": settings.Loader.Threads,
		"width":   m.size.Width,
		"height":  m.size.Height,
	}).Info("resource manager started")
	return m, nil
}

// Manager is the resource manager facade. It composes the texture and
// shader managers, the loader pool and the window session state.
// Like the managers it is owned by the rendering goroutine.
type Manager struct {
	settings *core.Configuration
	logger   log.FieldLogger
	source   Source
	pool     *Pool
	size     Size
	started  time.Time

	textures *TextureManager
	shaders  *ShaderManager
}

// Settings returns the shared read-only configuration
func (m *Manager) Settings() *core.Configuration {
	return m.settings
}

// Tick ticks all resource managers, shaders have nothing to finish
func (m *Manager) Tick(display core.Display) {
	m.textures.Tick(display)
}

// Size gets window size
func (m *Manager) Size() Size {
	return m.size
}

// SetSize sets window size. The window itself is not resized.
func (m *Manager) SetSize(size Size) {
	m.size = size
}

// Width gets window width
func (m *Manager) Width() uint32 {
	return m.size.Width
}

// Height gets window height
func (m *Manager) Height() uint32 {
	return m.size.Height
}

// SetWidth sets window width
func (m *Manager) SetWidth(width uint32) {
	m.size.Width = width
}

// SetHeight sets window height
func (m *Manager) SetHeight(height uint32) {
	m.size.Height = height
}

// Textures gets the texture manager
func (m *Manager) Textures() *TextureManager {
	return m.textures
}

// Shaders gets the shader manager
func (m *Manager) Shaders() *ShaderManager {
	return m.shaders
}

// Pool gets the loader pool
func (m *Manager) Pool() *Pool {
	return m.pool
}

// Time gets seconds since the manager was created
func (m *Manager) Time() float64 {
	return time.Since(m.started).Seconds()
}

// LoadTexture starts loading a texture in the background
func (m *Manager) LoadTexture(id ID) error {
	return m.textures.Load(id)
}

// LoadShader loads a shader, display must be owned by the caller
func (m *Manager) LoadShader(name string, display core.Display) (core.Shader, error) {
	return m.shaders.Load(name, display)
}

// Parameters to draw almost any shape
func (m *Manager) Parameters() renderer.DrawParameters {
	return renderer.Parameters()
}

// NoDepth parameters draw shapes without depth
func (m *Manager) NoDepth() renderer.DrawParameters {
	return renderer.NoDepth()
}

// Projection returns an orthographic projection mapping window
// pixels to clip space, with the origin in the upper left corner.
func (m *Manager) Projection() mgl32.Mat4 {
	return mgl32.Ortho2D(0, float32(m.size.Width), float32(m.size.Height), 0)
}

// Close waits for running loads, then releases every texture, shader
// and source. It must be called from the rendering goroutine.
func (m *Manager) Close() error {
	m.pool.Close()
	m.textures.Destroy()
	m.shaders.Destroy()

	stats := m.pool.Stats()
	m.logger.WithFields(log.Fields{
		"submitted": stats.Submitted,
		"panicked":  stats.Panicked,
	}).Info("resource manager closed")

	if closer, ok := m.source.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
