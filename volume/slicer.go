// Package volume renders a 3D fractal noise field as a stack of
// grayscale Z slices.
package volume

import (
	"fmt"
	"image"

	"github.com/gmlewis/noisetex/bmp"
	"github.com/gmlewis/noisetex/fractal"
	"github.com/gmlewis/noisetex/texture"
	"github.com/go-gl/mathgl/mgl64"
)

// Field represents a 3D fractal noise field sampled in [-1,1].
type Field interface {
	OctavePersistence3D(x, y, z float64, octaves int, persistence float64) float64
}

// ZSliceProcessor represents a Z slice processor.
type ZSliceProcessor interface {
	ProcessZSlice(sliceNum int, z, voxelRadius float64, img image.Image) error
}

// Order represents the order of slice processing.
type Order byte

const (
	MinToMax Order = iota
	MaxToMin
)

// Slicer samples a field over the unit cube at n voxels per axis.
type Slicer struct {
	field       Field
	cfg         texture.Config
	persistence float64
	n           int
	delta       float64 // voxel edge length
}

// New returns a Slicer for field. cfg.Frequency noise cycles span each
// axis of the cube and each octave's amplitude is persistence times the
// previous one. cfg is expected to be clamped already.
func New(field Field, cfg texture.Config, n int, persistence float64) *Slicer {
	if n < 1 {
		n = 1
	}
	return &Slicer{field: field, cfg: cfg, persistence: persistence, n: n, delta: 1 / float64(n)}
}

// MBB returns the minimum bounding box of the volume.
func (s *Slicer) MBB() (min, max [3]float32) {
	return [3]float32{0, 0, 0}, [3]float32{1, 1, 1}
}

// NumXSlices returns the number of slices in the X direction.
func (s *Slicer) NumXSlices() int { return s.n }

// NumYSlices returns the number of slices in the Y direction.
func (s *Slicer) NumYSlices() int { return s.n }

// NumZSlices returns the number of slices in the Z direction.
func (s *Slicer) NumZSlices() int { return s.n }

// RenderZSlices renders each Z slice to an image,
// calling the ZSliceProcessor for each slice.
func (s *Slicer) RenderZSlices(sp ZSliceProcessor, order Order) error {
	voxelRadius := 0.5 * s.delta

	var zFunc func(n int) int
	switch order {
	case MinToMax:
		zFunc = func(n int) int { return n }
	case MaxToMin:
		zFunc = func(n int) int { return s.n - n - 1 }
	default:
		return fmt.Errorf("unknown slice order %v", order)
	}

	for n := 0; n < s.n; n++ {
		k := zFunc(n)
		z := (float64(k) + 0.5) * s.delta
		img := s.renderSlice(k)
		if err := sp.ProcessZSlice(k, z, voxelRadius, img); err != nil {
			return fmt.Errorf("ProcessSlice(%v,%v,%v): %v", k, z, voxelRadius, err)
		}
	}
	return nil
}

func (s *Slicer) renderSlice(k int) *bmp.Image {
	img := bmp.NewImage(s.n, s.n)
	scale := s.delta * s.cfg.Frequency
	for j := 0; j < s.n; j++ {
		for i := 0; i < s.n; i++ {
			p := mgl64.Vec3{float64(i) + 0.5, float64(j) + 0.5, float64(k) + 0.5}.Mul(scale)
			v := fractal.Remap01(s.field.OctavePersistence3D(p.X(), p.Y(), p.Z(), s.cfg.Octaves, s.persistence))
			img.Set(int32(i), int32(j), bmp.Gray(v))
		}
	}
	return img
}
