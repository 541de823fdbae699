package texture

import (
	"bytes"
	"encoding/binary"
	"math"
	"testing"

	"github.com/gmlewis/noisetex/bmp"
	"github.com/gmlewis/noisetex/perlin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		in, want Config
	}{
		{Config{Frequency: 8, Octaves: 8, Seed: 1}, Config{Frequency: 8, Octaves: 8, Seed: 1}},
		{Config{Frequency: 0, Octaves: 0}, Config{Frequency: 0.1, Octaves: 1}},
		{Config{Frequency: -5, Octaves: -3}, Config{Frequency: 0.1, Octaves: 1}},
		{Config{Frequency: 1000, Octaves: 100, Seed: 4294967295}, Config{Frequency: 64, Octaves: 16, Seed: 4294967295}},
		{Config{Frequency: math.NaN(), Octaves: 8, Seed: 1}, Config{Frequency: 0.1, Octaves: 8, Seed: 1}},
		{Config{Frequency: math.Inf(1), Octaves: 8}, Config{Frequency: 64, Octaves: 8}},
		{Config{Frequency: math.Inf(-1), Octaves: 8}, Config{Frequency: 0.1, Octaves: 8}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.in.Clamp())
	}
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "f8o8_12345.bmp", Config{Frequency: 8, Octaves: 8, Seed: 12345}.Filename())
	assert.Equal(t, "f0.1o1_0.bmp", Config{Frequency: 0.1, Octaves: 1}.Filename())
	assert.Equal(t, "f12.5o16_4294967295.bmp", Config{Frequency: 12.5, Octaves: 16, Seed: 4294967295}.Filename())
}

// recorder returns x+y and remembers the octave count.
type recorder struct {
	octaves []int
}

func (r *recorder) Octave2D01(x, y float64, octaves int) float64 {
	r.octaves = append(r.octaves, octaves)
	return x + y
}

func TestGenerateCoordinates(t *testing.T) {
	r := &recorder{}
	img := Generate(r, 4, 2, Config{Frequency: 2, Octaves: 3})
	assert.Equal(t, int32(4), img.Width())
	assert.Equal(t, int32(2), img.Height())
	assert.Len(t, r.octaves, 8)
	assert.Equal(t, 3, r.octaves[0])

	// x*2/4 + y*2/2
	assert.Equal(t, bmp.Gray(0), img.RGBAt(0, 0))
	assert.Equal(t, bmp.Gray(1.5), img.RGBAt(3, 0))
	assert.Equal(t, bmp.Gray(1.5), img.RGBAt(1, 1))
}

func TestGenerateEndToEnd(t *testing.T) {
	img := Generate(perlin.New(42), 4, 4, Config{Frequency: 1, Octaves: 1, Seed: 42})
	var buf bytes.Buffer
	require.NoError(t, bmp.Encode(&buf, img))

	b := buf.Bytes()
	le := binary.LittleEndian
	assert.Equal(t, uint16(0x4d42), le.Uint16(b[0:]))
	assert.Equal(t, uint32(102), le.Uint32(b[2:]))
	assert.Equal(t, uint32(4), le.Uint32(b[18:]))
	assert.Equal(t, uint32(4), le.Uint32(b[22:]))
	assert.Equal(t, uint16(24), le.Uint16(b[28:]))
	assert.Len(t, b, 102)

	again := Generate(perlin.New(42), 4, 4, Config{Frequency: 1, Octaves: 1, Seed: 42})
	var buf2 bytes.Buffer
	require.NoError(t, bmp.Encode(&buf2, again))
	assert.Equal(t, b, buf2.Bytes())
}

func TestGenerateEmpty(t *testing.T) {
	img := Generate(&recorder{}, 0, 5, Config{Frequency: 1, Octaves: 1})
	assert.Equal(t, int32(0), img.Width())
}

func TestNewSampler(t *testing.T) {
	for _, b := range []Basis{"", Perlin, Simplex} {
		s, err := NewSampler(b, 9)
		require.NoError(t, err, "basis %q", b)
		v := s.Octave2D01(0.3, 0.4, 2)
		assert.True(t, v >= 0 && v <= 1)
	}
	_, err := NewSampler("worley", 1)
	assert.Error(t, err)
}
