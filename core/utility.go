package core

import (
	"encoding/binary"
	"fmt"
	"image"
	"image/draw"
	"strings"
	"unsafe"
)

const shaderSuffix = ".spv"

// spirvMagic is the first word of every SPIR-V module.
const spirvMagic = 0x07230203

// ShaderFileName returns the file name of a compiled shader stage.
// The first part is always the name of the shader, second is type, and the third one
// ensures that the shader is compiled (only compiled shaders have an .spv extension).
func ShaderFileName(name string, shaderType ShaderType) string {
	return name + "." + shaderType.String() + shaderSuffix
}

// ParseShaderFileName is the reverse of ShaderFileName. It is important that
// the file name does not contain more than two dots.
func ParseShaderFileName(file string) (string, ShaderType, bool) {
	if !strings.HasSuffix(file, shaderSuffix) {
		return "", UnknownShaderType, false
	}

	nodes := strings.Split(strings.TrimSuffix(file, shaderSuffix), ".")
	if len(nodes) != 2 || nodes[0] == "" {
		return "", UnknownShaderType, false
	}

	switch nodes[1] {
	case "frag":
		return nodes[0], FragmentShaderType, true
	case "vert":
		return nodes[0], VertexShaderType, true
	default:
		return "", UnknownShaderType, false
	}
}

// ValidateSPIRV checks that code looks like a SPIR-V module,
// the driver is trusted with everything past the header.
func ValidateSPIRV(code []byte) error {
	if len(code) < 20 || len(code)%4 != 0 {
		return fmt.Errorf("invalid SPIR-V module size %d", len(code))
	}
	if magic := binary.LittleEndian.Uint32(code); magic != spirvMagic {
		return fmt.Errorf("invalid SPIR-V magic number %#x", magic)
	}
	return nil
}

// SliceUint32 reslices bytes into a uint32, that is used
// to sumbit vulkan shaders for processing
func SliceUint32(data []byte) []uint32 {
	if len(data) < 4 {
		return nil
	}
	return unsafe.Slice((*uint32)(unsafe.Pointer(unsafe.SliceData(data))), len(data)/4)
}

// SafeString terminates s for the C side of the vulkan bindings.
func SafeString(s string) string {
	return fmt.Sprintf("%s\x00", s)
}

// SafeStrings terminates every string in sgs.
func SafeStrings(sgs []string) []string {
	safe := []string{}
	for _, s := range sgs {
		safe = append(safe, SafeString(s))
	}
	return safe
}

// GetPixels transforms a given image into right arrangement of pixels
// by drawing the decoded image onto a controlled RGBA canvas.
// A rowPitch of zero packs the rows tightly.
func GetPixels(img image.Image, rowPitch int) (*Pixels, error) {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width == 0 || height == 0 {
		return nil, fmt.Errorf("image has no pixels (%dx%d)", width, height)
	}

	stride := 4 * width
	if rowPitch != 0 {
		if rowPitch < stride {
			return nil, fmt.Errorf("row pitch %d is smaller than a row of %d bytes", rowPitch, stride)
		}
		stride = rowPitch
	}

	newImg := &image.RGBA{
		Pix:    make([]uint8, stride*height),
		Stride: stride,
		Rect:   image.Rect(0, 0, width, height),
	}
	draw.Draw(newImg, newImg.Bounds(), img, bounds.Min, draw.Src)

	return &Pixels{
		Width:  width,
		Height: height,
		Stride: stride,
		Pix:    newImg.Pix,
	}, nil
}
