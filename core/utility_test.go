package core_test

import (
	"image"
	"image/color"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"

	"github.com/devblok/litecraft/core"
)

var testImage = func() image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, 256, 256))
	for y := 0; y < 256; y++ {
		for x := 0; x < 256; x++ {
			img.Set(x, y, color.NRGBA{uint8(x), uint8(y), 0, 255})
		}
	}
	return img
}()

func TestGetPixels(t *testing.T) {
	c := qt.New(t)
	img := image.NewRGBA(image.Rect(10, 10, 13, 12))
	img.Set(12, 11, color.RGBA{1, 2, 3, 4})

	pixels, err := core.GetPixels(img, 0)
	c.Assert(err, qt.IsNil)
	c.Assert(pixels.Width, qt.Equals, 3)
	c.Assert(pixels.Height, qt.Equals, 2)
	c.Assert(pixels.Stride, qt.Equals, 12)
	c.Assert(pixels.Row(1)[8:], qt.DeepEquals, []uint8{1, 2, 3, 4})

	padded, err := core.GetPixels(img, 16)
	c.Assert(err, qt.IsNil)
	c.Assert(padded.Pix, qt.HasLen, 32)
	c.Assert(padded.Row(1), qt.DeepEquals, pixels.Row(1))

	_, err = core.GetPixels(img, 8)
	c.Assert(err, qt.ErrorMatches, "row pitch 8 is smaller than a row of 12 bytes")

	_, err = core.GetPixels(image.NewRGBA(image.Rect(0, 0, 0, 5)), 0)
	c.Assert(err, qt.Not(qt.IsNil))
}

func TestValidateSPIRV(t *testing.T) {
	c := qt.New(t)
	valid := []byte{0x03, 0x02, 0x23, 0x07, 0, 0, 1, 0, 0, 0, 0, 0, 1, 0, 0, 0, 0, 0, 0, 0}
	c.Assert(core.ValidateSPIRV(valid), qt.IsNil)
	c.Assert(core.ValidateSPIRV(valid[:16]), qt.ErrorMatches, "invalid SPIR-V module size 16")
	c.Assert(core.ValidateSPIRV(append(valid, 0)), qt.Not(qt.IsNil))

	wrong := append([]byte{0xde, 0xad, 0xbe, 0xef}, valid[4:]...)
	c.Assert(core.ValidateSPIRV(wrong), qt.ErrorMatches, "invalid SPIR-V magic number .*")
}

func TestShaderFileNames(t *testing.T) {
	c := qt.New(t)
	c.Assert(core.ShaderFileName("gui", core.VertexShaderType), qt.Equals, "gui.vert.spv")

	name, shaderType, ok := core.ParseShaderFileName("gui.frag.spv")
	c.Assert(ok, qt.IsTrue)
	c.Assert(name, qt.Equals, "gui")
	c.Assert(shaderType, qt.Equals, core.FragmentShaderType)

	for _, file := range []string{"gui.frag", "gui.geom.spv", "a.b.vert.spv", ".vert.spv"} {
		_, _, ok := core.ParseShaderFileName(file)
		c.Check(ok, qt.IsFalse, qt.Commentf("%s", file))
	}
}

func TestSliceUint32(t *testing.T) {
	c := qt.New(t)
	c.Assert(core.SliceUint32(nil), qt.IsNil)
	c.Assert(core.SliceUint32([]byte{1, 2, 3}), qt.IsNil)
	c.Assert(core.SliceUint32(make([]byte, 10)), qt.HasLen, 2)
}

func TestSafeStrings(t *testing.T) {
	c := qt.New(t)
	c.Assert(core.SafeStrings([]string{"VK_KHR_surface"}), qt.DeepEquals, []string{"VK_KHR_surface\x00"})
	c.Assert(core.SafeStrings(nil), qt.HasLen, 0)
}

func TestTime(t *testing.T) {
	c := qt.New(t)
	tm := core.NewTime(core.TimeConfiguration{FramesPerSecond: 1000, EventPollDelay: 1})
	defer tm.Stop()
	c.Assert(tm.Fps(), qt.Equals, 1000)

	select {
	case <-tm.FpsTicker().C:
	case <-time.After(time.Second):
		c.Fatal("fps ticker never fired")
	}
	select {
	case <-tm.EventTicker().C:
	case <-time.After(time.Second):
		c.Fatal("event ticker never fired")
	}
}

func BenchmarkGetPixelsNoRowPitch(b *testing.B) {
	for idx := 0; idx < b.N; idx++ {
		core.GetPixels(testImage, 0)
	}
}

func BenchmarkGetPixelsSmallRowPitch(b *testing.B) {
	for idx := 0; idx < b.N; idx++ {
		core.GetPixels(testImage, 1024+4)
	}
}

func BenchmarkGetPixelsBigRowPitch(b *testing.B) {
	for idx := 0; idx < b.N; idx++ {
		core.GetPixels(testImage, 4096)
	}
}

func BenchmarkSliceUint32Small(b *testing.B) {
	data := make([]byte, 100)
	for idx := 0; idx < b.N; idx++ {
		core.SliceUint32(data)
	}
}

func BenchmarkSliceUint32Big(b *testing.B) {
	data := make([]byte, 100000)
	for idx := 0; idx < b.N; idx++ {
		core.SliceUint32(data)
	}
}
