package binvox

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/gmlewis/noisetex/bmp"
	"github.com/gmlewis/noisetex/volume"
	"github.com/gmlewis/stldice/v4/binvox"
)

// mockSlicer emits nz slices where slice k has gray level k/(nz-1).
type mockSlicer struct {
	nx, ny, nz int
}

func (m *mockSlicer) MBB() (min, max [3]float32) {
	return [3]float32{0, 0, 0}, [3]float32{float32(m.nx), float32(m.ny), float32(m.nz)}
}
func (m *mockSlicer) RenderZSlices(sp volume.ZSliceProcessor, order volume.Order) error {
	for i := 0; i < m.nz; i++ {
		img := bmp.NewImage(m.nx, m.ny)
		for y := 0; y < m.ny; y++ {
			for x := 0; x < m.nx; x++ {
				img.Set(int32(x), int32(y), bmp.Gray(float64(i)/float64(m.nz-1)))
			}
		}
		if err := sp.ProcessZSlice(i, float64(i)+0.5, 0.5, img); err != nil {
			return err
		}
	}
	return nil
}
func (m *mockSlicer) NumXSlices() int { return m.nx }
func (m *mockSlicer) NumYSlices() int { return m.ny }
func (m *mockSlicer) NumZSlices() int { return m.nz }

func TestSliceSolid(t *testing.T) {
	slicer := &mockSlicer{nx: 3, ny: 3, nz: 3}

	filename := filepath.Join(t.TempDir(), Filename("test-solid"))
	if err := Slice(filename, slicer, 0); err != nil {
		t.Fatalf("Slice failed: %v", err)
	}

	b, err := binvox.Read(filename, 0, 0, 0, 0, 0, 0)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}

	// Slice 0 is black and never exceeds the threshold.
	count := len(b.WhiteVoxels)
	expected := 18
	if count != expected {
		t.Errorf("Expected %v voxels, got %v", expected, count)
	}

	if b.NX != 3 || b.NY != 3 || b.NZ != 3 {
		t.Errorf("Expected dimensions 3x3x3, got %vx%vx%v", b.NX, b.NY, b.NZ)
	}
}

func TestSliceThreshold(t *testing.T) {
	slicer := &mockSlicer{nx: 2, ny: 2, nz: 5}

	filename := filepath.Join(t.TempDir(), Filename("test-threshold"))
	if err := Slice(filename, slicer, 0.6); err != nil {
		t.Fatalf("Slice failed: %v", err)
	}

	b, err := binvox.Read(filename, 0, 0, 0, 0, 0, 0)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}

	// Gray levels 0, .25, .5, .75, 1: two slices exceed 0.6.
	if got, want := len(b.WhiteVoxels), 8; got != want {
		t.Errorf("Expected %v voxels, got %v", want, got)
	}
}

func TestSliceThresholdEqualGray(t *testing.T) {
	tests := []struct {
		threshold float64
		want      int
	}{
		{0.5, 8},   // the 0.5 slice does not exceed itself
		{0.502, 8}, // rounds to the same byte as the 0.5 slice
		{0.49, 12}, // below the 0.5 slice's byte
		{1, 0},     // nothing exceeds white
		{-1, 16},   // clamped to black
		{math.NaN(), 16},
	}
	for _, tt := range tests {
		slicer := &mockSlicer{nx: 2, ny: 2, nz: 5}
		filename := filepath.Join(t.TempDir(), Filename("test-equal"))
		if err := Slice(filename, slicer, tt.threshold); err != nil {
			t.Fatalf("Slice(%v) failed: %v", tt.threshold, err)
		}
		b, err := binvox.Read(filename, 0, 0, 0, 0, 0, 0)
		if err != nil {
			t.Fatalf("Read failed: %v", err)
		}
		if got := len(b.WhiteVoxels); got != tt.want {
			t.Errorf("threshold %v: got %v voxels, want %v", tt.threshold, got, tt.want)
		}
	}
}

func TestFilename(t *testing.T) {
	if got, want := Filename("f8o8_1"), "f8o8_1.binvox"; got != want {
		t.Errorf("Filename = %q, want %q", got, want)
	}
}
