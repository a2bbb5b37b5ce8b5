package resource_test

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"sync"
	"time"

	qt "github.com/frankban/quicktest"
	log "github.com/sirupsen/logrus"
	"go.trai.ch/zerr"

	"github.com/devblok/litecraft/core"
	"github.com/devblok/litecraft/core/resource"
)

func encodePNG(c *qt.C, width, height int) []byte {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{uint8(x), uint8(y), 0, 255})
		}
	}
	var buf bytes.Buffer
	c.Assert(png.Encode(&buf, img), qt.IsNil)
	return buf.Bytes()
}

func quietLogger() log.FieldLogger {
	logger := log.New()
	logger.SetOutput(io.Discard)
	return logger
}

// memorySource serves fixed contents. An id with a gate blocks in
// Open until the gate is closed.
type memorySource struct {
	files map[resource.ID][]byte
	gates map[resource.ID]chan struct{}
}

func newMemorySource() *memorySource {
	return &memorySource{
		files: make(map[resource.ID][]byte),
		gates: make(map[resource.ID]chan struct{}),
	}
}

func (s *memorySource) add(id resource.ID, data []byte) *memorySource {
	s.files[id] = data
	return s
}

func (s *memorySource) gate(id resource.ID) chan struct{} {
	gate := make(chan struct{})
	s.gates[id] = gate
	return gate
}

func (s *memorySource) Open(id resource.ID) (io.ReadCloser, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if gate, ok := s.gates[id]; ok {
		<-gate
	}
	data, ok := s.files[id]
	if !ok {
		return nil, zerr.Wrap(resource.ErrNotFound, "memory")
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

type fakeTexture struct {
	name          string
	width, height int
	destroyed     *int
}

func (t *fakeTexture) Width() int  { return t.width }
func (t *fakeTexture) Height() int { return t.height }
func (t *fakeTexture) Destroy()    { *t.destroyed++ }

type fakeShader struct {
	name      string
	stages    []core.ShaderType
	destroyed *int
}

func (s *fakeShader) Name() string              { return s.name }
func (s *fakeShader) Stages() []core.ShaderType { return s.stages }
func (s *fakeShader) Destroy()                  { *s.destroyed++ }

var errDisplay = errors.New("display refused")

// fakeDisplay records every call. It must only be used from the test goroutine.
type fakeDisplay struct {
	uploads   []string
	compiles  []string
	destroyed int

	failUpload  map[string]bool
	panicUpload map[string]bool
	nilUpload   map[string]bool
	failCompile bool
}

func newFakeDisplay() *fakeDisplay {
	return &fakeDisplay{
		failUpload:  make(map[string]bool),
		panicUpload: make(map[string]bool),
		nilUpload:   make(map[string]bool),
	}
}

func (d *fakeDisplay) UploadTexture(name string, pixels *core.Pixels) (core.Texture, error) {
	if d.panicUpload[name] {
		panic("upload exploded")
	}
	if d.failUpload[name] {
		return nil, errDisplay
	}
	if d.nilUpload[name] {
		return nil, nil
	}
	d.uploads = append(d.uploads, name)
	return &fakeTexture{name: name, width: pixels.Width, height: pixels.Height, destroyed: &d.destroyed}, nil
}

func (d *fakeDisplay) CompileShader(name string, stages []core.ShaderStage) (core.Shader, error) {
	if d.failCompile {
		return nil, errDisplay
	}
	d.compiles = append(d.compiles, name)
	types := make([]core.ShaderType, 0, len(stages))
	for _, stage := range stages {
		types = append(types, stage.Type)
	}
	return &fakeShader{name: name, stages: types, destroyed: &d.destroyed}, nil
}

// tickUntil ticks until n results were processed or the deadline passes.
func tickUntil(c *qt.C, m *resource.TextureManager, display core.Display, n int) {
	deadline := time.Now().Add(5 * time.Second)
	var processed int
	for processed < n {
		if time.Now().After(deadline) {
			c.Fatalf("only %d of %d results arrived", processed, n)
		}
		processed += m.Tick(display)
		time.Sleep(time.Millisecond)
	}
}

// releaseOnce closes a gate that may already be closed by the test body.
func releaseOnce(gate chan struct{}) func() {
	var once sync.Once
	return func() { once.Do(func() { close(gate) }) }
}

func newTextureManager(c *qt.C, threads int, source resource.Source) (*resource.TextureManager, *resource.Pool) {
	pool, err := resource.NewPool(threads, quietLogger())
	c.Assert(err, qt.IsNil)
	c.Cleanup(pool.Close)
	return resource.NewTextureManager(source, pool, quietLogger()), pool
}
