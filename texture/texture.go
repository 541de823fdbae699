// Package texture fills grayscale images from fractal noise.
package texture

import (
	"fmt"
	"math"
	"strconv"

	"github.com/gmlewis/noisetex/bmp"
	"github.com/gmlewis/noisetex/perlin"
	"github.com/gmlewis/noisetex/simplex"
)

// Accepted parameter ranges. Values outside them are clamped.
const (
	MinFrequency = 0.1
	MaxFrequency = 64.0
	MinOctaves   = 1
	MaxOctaves   = 16
)

// Sampler represents a noise field that can be sampled in the unit range.
type Sampler interface {
	Octave2D01(x, y float64, octaves int) float64
}

// Config holds the parameters of one generated texture.
type Config struct {
	Frequency float64
	Octaves   int
	Seed      uint32
}

// Clamp returns c with Frequency and Octaves limited to their accepted ranges.
// A NaN frequency becomes MinFrequency.
func (c Config) Clamp() Config {
	if math.IsNaN(c.Frequency) {
		c.Frequency = MinFrequency
	}
	c.Frequency = min(max(c.Frequency, MinFrequency), MaxFrequency)
	c.Octaves = min(max(c.Octaves, MinOctaves), MaxOctaves)
	return c
}

// Filename returns the output name for c, e.g. "f8o8_12345.bmp".
func (c Config) Filename() string {
	return fmt.Sprintf("f%vo%v_%v.bmp", strconv.FormatFloat(c.Frequency, 'g', 6, 64), c.Octaves, c.Seed)
}

// Generate returns a width x height image where Frequency noise cycles
// span each axis. cfg is expected to be clamped already.
func Generate(s Sampler, width, height int, cfg Config) *bmp.Image {
	img := bmp.NewImage(width, height)
	if width <= 0 || height <= 0 {
		return img
	}
	fx := cfg.Frequency / float64(width)
	fy := cfg.Frequency / float64(height)

	for y := int32(0); y < img.Height(); y++ {
		for x := int32(0); x < img.Width(); x++ {
			v := s.Octave2D01(float64(x)*fx, float64(y)*fy, cfg.Octaves)
			img.Set(x, y, bmp.Gray(v))
		}
	}
	return img
}

// Basis names a noise algorithm.
type Basis string

const (
	Perlin  Basis = "perlin"
	Simplex Basis = "simplex"
)

// NewSampler returns a sampler of the given basis built from seed.
// An empty basis selects Perlin.
func NewSampler(basis Basis, seed uint32) (Sampler, error) {
	switch basis {
	case Perlin, "":
		return perlin.New(seed), nil
	case Simplex:
		return simplex.New(seed), nil
	}
	return nil, fmt.Errorf("unknown noise basis %q", basis)
}
