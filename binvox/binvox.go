// Package binvox thresholds a sliced noise volume and writes binvox files.
package binvox

import (
	"fmt"
	"image"
	"log"

	"github.com/gmlewis/noisetex/bmp"
	"github.com/gmlewis/noisetex/volume"
	"github.com/gmlewis/stldice/v4/binvox"
)

// Slicer represents a volume that can be rendered one Z slice at a time.
type Slicer interface {
	MBB() (min, max [3]float32)

	RenderZSlices(sp volume.ZSliceProcessor, order volume.Order) error
	NumXSlices() int
	NumYSlices() int
	NumZSlices() int
}

// Filename returns the binvox output name for base, e.g. "f8o8_1.binvox".
func Filename(base string) string {
	return base + ".binvox"
}

// Slice renders every Z slice of slicer and writes the voxels whose gray
// level exceeds threshold (in [0,1]) to filename. Both sides are compared
// at 8-bit resolution, so a gray that rounds to the same byte as threshold
// is not included.
func Slice(filename string, slicer Slicer, threshold float64) error {
	min, max := slicer.MBB()
	scale := float64(max[2] - min[2])
	b := binvox.New(
		slicer.NumXSlices(),
		slicer.NumYSlices(),
		slicer.NumZSlices(),
		float64(min[0]),
		float64(min[1]),
		float64(min[2]),
		scale,
		false,
	)

	c := new(b, threshold)

	log.Printf("Slicing %vx%vx%v volume...", b.NX, b.NY, b.NZ)
	if err := slicer.RenderZSlices(c, volume.MinToMax); err != nil {
		return fmt.Errorf("RenderZSlices: %v", err)
	}

	log.Printf("Writing: %v (%v voxels)", filename, c.count)
	if err := b.Write(filename, 0, 0, 0, b.NX, b.NY, b.NZ); err != nil {
		return fmt.Errorf("Write: %v", err)
	}

	return nil
}

// client converts gray Z slices to voxels.
// It implements the volume.ZSliceProcessor interface.
type client struct {
	b     *binvox.BinVOX
	level uint32 // 8-bit threshold scaled to 16-bit color units
	count int
}

var _ volume.ZSliceProcessor = &client{}

// new returns a new slice-to-binvox client.
func new(b *binvox.BinVOX, threshold float64) *client {
	return &client{b: b, level: uint32(bmp.ToUint8(threshold)) * 0x101}
}

func (c *client) ProcessZSlice(sliceNum int, z, voxelRadius float64, img image.Image) error {
	b := img.Bounds()
	uSize := b.Max.X - b.Min.X
	vSize := b.Max.Y - b.Min.Y
	c.b.NX = uSize
	c.b.NY = vSize

	for v := b.Min.Y; v < b.Max.Y; v++ {
		for u := b.Min.X; u < b.Max.X; u++ {
			if r, _, _, _ := img.At(u, v).RGBA(); r > c.level {
				c.b.Add(u-b.Min.X, v-b.Min.Y, sliceNum)
				c.count++
			}
		}
	}

	return nil
}
