// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package device

import (
	"fmt"

	vk "github.com/devblok/vulkan"
)

// TextureFormat is the format of every uploaded texture
const TextureFormat = vk.FormatR8g8b8a8Unorm

// NewImage creates a linear, host writable, sampled RGBA image.
// Memory has to be bound before it is used.
func NewImage(dev vk.Device, width, height uint32) (*Image, error) {
	createInfo := vk.ImageCreateInfo{
		SType:     vk.StructureTypeImageCreateInfo,
		ImageType: vk.ImageType2d,
		Extent: vk.Extent3D{
			Width:  width,
			Height: height,
			Depth:  1,
		},
		MipLevels:     1,
		ArrayLayers:   1,
		Format:        TextureFormat,
		Tiling:        vk.ImageTilingLinear,
		InitialLayout: vk.ImageLayoutPreinitialized,
		Usage:         vk.ImageUsageFlags(vk.ImageUsageSampledBit),
		SharingMode:   vk.SharingModeExclusive,
		Samples:       vk.SampleCount1Bit,
	}

	var image vk.Image
	if err := vk.Error(vk.CreateImage(dev, &createInfo, nil, &image)); err != nil {
		return nil, fmt.Errorf("vk.CreateImage(): %s", err.Error())
	}

	return &Image{
		device: dev,
		image:  image,
	}, nil
}

// Image implements and abstracts vulkan image primitive.
type Image struct {
	device vk.Device
	image  vk.Image
	view   vk.ImageView
	memory Memory
}

// Mem returns the underlying memory of the Image.
func (i *Image) Mem() *Memory {
	return &i.memory
}

// Get returns the vulkan image handle
func (i *Image) Get() vk.Image {
	return i.image
}

// View returns the image view, nil until the image is complete
func (i *Image) View() vk.ImageView {
	return i.view
}

func (i *Image) createView() error {
	ivci := vk.ImageViewCreateInfo{
		SType:    vk.StructureTypeImageViewCreateInfo,
		Image:    i.image,
		ViewType: vk.ImageViewType2d,
		Format:   TextureFormat,
		Components: vk.ComponentMapping{
			R: vk.ComponentSwizzleIdentity,
			G: vk.ComponentSwizzleIdentity,
			B: vk.ComponentSwizzleIdentity,
			A: vk.ComponentSwizzleIdentity,
		},
		SubresourceRange: vk.ImageSubresourceRange{
			AspectMask: vk.ImageAspectFlags(vk.ImageAspectColorBit),
			LevelCount: 1,
			LayerCount: 1,
		},
	}

	var view vk.ImageView
	if err := vk.Error(vk.CreateImageView(i.device, &ivci, nil, &view)); err != nil {
		return fmt.Errorf("vk.CreateImageView(): %s", err.Error())
	}
	i.view = view
	return nil
}

// Release destroys the view, the image and frees its memory
func (i *Image) Release() {
	if i.view != nil {
		vk.DestroyImageView(i.device, i.view, nil)
		i.view = nil
	}
	if i.image != nil {
		vk.DestroyImage(i.device, i.image, nil)
		i.image = nil
	}
	i.memory.Release()
}

// Texture is an uploaded image. It implements core.Texture.
type Texture struct {
	name   string
	width  int
	height int
	image  *Image
}

// Name returns the name the texture was uploaded with
func (t *Texture) Name() string {
	return t.name
}

// Width implements core.Texture
func (t *Texture) Width() int {
	return t.width
}

// Height implements core.Texture
func (t *Texture) Height() int {
	return t.height
}

// Image returns the image backing the texture
func (t *Texture) Image() *Image {
	return t.image
}

// Destroy implements core.Texture
func (t *Texture) Destroy() {
	if t.image != nil {
		t.image.Release()
		t.image = nil
	}
}
