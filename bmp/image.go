// Package bmp holds a floating-point RGB raster and writes it
// as an uncompressed 24-bit BMP file.
package bmp

import (
	"image"
	"image/color"
)

// RGB is a color sample. Channels are nominally in [0,1];
// out-of-range values are kept and only clamped on output.
type RGB struct {
	R, G, B float64
}

// Gray returns an RGB with all channels set to v.
func Gray(v float64) RGB {
	return RGB{R: v, G: v, B: v}
}

// RGBA implements color.Color.
func (c RGB) RGBA() (r, g, b, a uint32) {
	r = uint32(ToUint8(c.R))
	g = uint32(ToUint8(c.G))
	b = uint32(ToUint8(c.B))
	return r | r<<8, g | g<<8, b | b<<8, 0xffff
}

// Image is a fixed-size, row-major grid of RGB samples.
type Image struct {
	data   []RGB
	width  int32
	height int32
}

// Image implements image.Image.
var _ image.Image = &Image{}

// NewImage returns a width x height image of zero-valued samples.
func NewImage(width, height int) *Image {
	if width < 0 || height < 0 {
		width, height = 0, 0
	}
	return &Image{
		data:   make([]RGB, width*height),
		width:  int32(width),
		height: int32(height),
	}
}

// Width returns the image width in pixels.
func (m *Image) Width() int32 { return m.width }

// Height returns the image height in pixels.
func (m *Image) Height() int32 { return m.height }

// Set stores c at (x,y). Writes outside the image are ignored.
func (m *Image) Set(x, y int32, c RGB) {
	if !m.inBounds(x, y) {
		return
	}
	m.data[int(y)*int(m.width)+int(x)] = c
}

// RGBAt returns the sample at (x,y), or the zero RGB outside the image.
func (m *Image) RGBAt(x, y int32) RGB {
	if !m.inBounds(x, y) {
		return RGB{}
	}
	return m.data[int(y)*int(m.width)+int(x)]
}

func (m *Image) inBounds(x, y int32) bool {
	return 0 <= y && y < m.height && 0 <= x && x < m.width
}

// ColorModel implements image.Image.
func (m *Image) ColorModel() color.Model { return color.RGBAModel }

// Bounds implements image.Image.
func (m *Image) Bounds() image.Rectangle {
	return image.Rect(0, 0, int(m.width), int(m.height))
}

// At implements image.Image.
func (m *Image) At(x, y int) color.Color {
	c := m.RGBAt(int32(x), int32(y))
	return color.RGBA{R: ToUint8(c.R), G: ToUint8(c.G), B: ToUint8(c.B), A: 0xff}
}
