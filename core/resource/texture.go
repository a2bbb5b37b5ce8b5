// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package resource

import (
	"bytes"
	"fmt"
	"image"

	// Decoders for the texture formats we accept
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/devblok/litecraft/core"
	log "github.com/sirupsen/logrus"
	"go.trai.ch/zerr"
)

// NewTextureManager creates a texture manager decoding on pool
// and reading from source.
func NewTextureManager(source Source, pool *Pool, logger log.FieldLogger) *TextureManager {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &TextureManager{
		source:   source,
		pool:     pool,
		logger:   logger.WithField("component", "textures"),
		cache:    NewCache[ID, core.Texture](),
		failures: make(map[ID]error),
	}
}

// TextureManager owns the texture cache. Reading and decoding happens on
// the loader pool, uploading happens in Tick on the goroutine owning the
// Display. Apart from the handoff of decoded pixels nothing in here is
// safe for concurrent use: Load, Tick, Get and friends must all be called
// from the owning goroutine.
type TextureManager struct {
	source Source
	pool   *Pool
	logger log.FieldLogger

	cache    *Cache[ID, core.Texture]
	failures map[ID]error
	results  handoff
}

// Load requests the texture identified by id. Requests for textures that
// are already loading or loaded are ignored. The only error returned is
// a rejected submission, everything else surfaces through Tick and Failure.
func (m *TextureManager) Load(id ID) error {
	if !m.cache.Insert(id) {
		return nil
	}
	delete(m.failures, id)

	if err := m.pool.Submit(func() { m.decode(id) }); err != nil {
		err = withResource(err, id)
		m.cache.Remove(id)
		m.failures[id] = err
		m.logger.WithError(err).WithField("resource", id.String()).Error("texture load not submitted")
		return err
	}
	return nil
}

// decode runs on the loader pool. Whatever happens, exactly
// one result for id is handed back.
func (m *TextureManager) decode(id ID) {
	var res result
	defer func() {
		if r := recover(); r != nil {
			res = result{
				id:  id,
				err: withResource(zerr.Wrap(ErrDecode, fmt.Sprintf("panic: %v", r)), id),
			}
		}
		m.results.push(res)
	}()

	pixels, err := DecodeTexture(m.source, id)
	res = result{id: id, pixels: pixels, err: err}
}

// DecodeTexture reads the image identified by id from source and
// converts it into tightly packed RGBA pixels.
func DecodeTexture(source Source, id ID) (*core.Pixels, error) {
	data, err := ReadAll(source, id)
	if err != nil {
		return nil, err
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, withResource(zerr.Wrap(ErrDecode, err.Error()), id)
	}

	pixels, err := core.GetPixels(img, 0)
	if err != nil {
		return nil, zerr.With(withResource(zerr.Wrap(ErrDecode, err.Error()), id), "format", format)
	}
	return pixels, nil
}

// Tick finishes every decode that completed since the last call by
// uploading it to display. It never waits for running decodes and
// returns the amount of results processed. It must be called from the
// goroutine owning display, once per frame.
func (m *TextureManager) Tick(display core.Display) int {
	results := m.results.drain()
	for _, res := range results {
		logger := m.logger.WithField("resource", res.id.String())

		if m.cache.Lookup(res.id).State != StatePending {
			logger.Debug("discarding texture result without a pending entry")
			continue
		}

		if res.err != nil {
			m.fail(res.id, res.err)
			continue
		}

		texture, err := upload(display, res)
		if err != nil {
			m.fail(res.id, err)
			continue
		}

		m.cache.Resolve(res.id, texture)
		logger.WithFields(log.Fields{
			"width":  texture.Width(),
			"height": texture.Height(),
		}).Debug("texture ready")
	}
	return len(results)
}

func upload(display core.Display, res result) (texture core.Texture, err error) {
	defer func() {
		if r := recover(); r != nil {
			texture = nil
			err = withResource(zerr.Wrap(ErrDecode, fmt.Sprintf("upload panic: %v", r)), res.id)
		}
	}()

	texture, err = display.UploadTexture(res.id.String(), res.pixels)
	if err != nil {
		return nil, withResource(zerr.Wrap(err, "texture upload failed"), res.id)
	}
	if texture == nil {
		return nil, withResource(zerr.Wrap(ErrDecode, "display returned no texture"), res.id)
	}
	return texture, nil
}

// fail drops the entry so the texture can be requested again.
func (m *TextureManager) fail(id ID, err error) {
	m.cache.Remove(id)
	m.failures[id] = err
	m.logger.WithError(err).WithField("resource", id.String()).Warn("texture failed to load")
}

// Get returns the texture when it is ready. Absent and pending textures
// are reported the same way and callers are expected to skip drawing them.
func (m *TextureManager) Get(id ID) (core.Texture, bool) {
	return m.cache.Get(id)
}

// State returns the loading state of the texture.
func (m *TextureManager) State(id ID) State {
	return m.cache.Lookup(id).State
}

// Failure returns why the last load of id failed, nil if it did not.
func (m *TextureManager) Failure(id ID) error {
	return m.failures[id]
}

// Len returns the amount of cached textures, pending ones included.
func (m *TextureManager) Len() int {
	return m.cache.Len()
}

// Pending returns the amount of textures waiting for Tick.
func (m *TextureManager) Pending() int {
	return m.cache.Count(StatePending)
}

// Wait blocks until the loader pool is idle, results still need a Tick.
func (m *TextureManager) Wait() {
	m.pool.Wait()
}

// Destroy releases every ready texture and empties the cache.
func (m *TextureManager) Destroy() {
	m.cache.Each(func(_ ID, texture core.Texture) {
		texture.Destroy()
	})
	m.cache.Clear()
}
