// Package simplex provides an OpenSimplex noise sampler with the same
// seeding and state-transfer contract as package perlin.
package simplex

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/gmlewis/noisetex/fractal"
	"github.com/ojrac/opensimplex-go"
)

// StateSize is the length of a serialized Simplex state.
const StateSize = 8

// ErrMalformedState is returned by Deserialize for blobs
// that were not produced by Serialize.
var ErrMalformedState = errors.New("simplex: malformed state")

// Simplex is a coherent noise sampler backed by OpenSimplex.
type Simplex struct {
	seed  int64
	noise opensimplex.Noise
}

var _ fractal.Basis = &Simplex{}

// New returns a sampler built from seed.
func New(seed uint32) *Simplex {
	s := &Simplex{}
	s.Reseed(seed)
	return s
}

// NewFromSource returns a sampler whose seed is drawn from src.
func NewFromSource(src rand.Source) *Simplex {
	s := &Simplex{}
	s.ReseedFromSource(src)
	return s
}

// NewRandom returns a sampler seeded from the runtime's entropy source.
func NewRandom() *Simplex {
	return NewFromSource(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// Reseed rebuilds the sampler exactly as New(seed) would.
func (s *Simplex) Reseed(seed uint32) {
	s.setSeed(int64(seed))
}

// ReseedFromSource rebuilds the sampler from a seed drawn from src.
func (s *Simplex) ReseedFromSource(src rand.Source) {
	s.setSeed(int64(src.Uint64()))
}

func (s *Simplex) setSeed(seed int64) {
	s.seed = seed
	s.noise = opensimplex.New(seed)
}

// Serialize returns the sampler state.
func (s *Simplex) Serialize() []byte {
	return binary.LittleEndian.AppendUint64(nil, uint64(s.seed))
}

// Deserialize restores state produced by Serialize on any Simplex.
func (s *Simplex) Deserialize(state []byte) error {
	if len(state) != StateSize {
		return fmt.Errorf("%w: got %v bytes, want %v", ErrMalformedState, len(state), StateSize)
	}
	s.setSeed(int64(binary.LittleEndian.Uint64(state)))
	return nil
}

// Noise2D returns single-octave noise in [-1,1].
func (s *Simplex) Noise2D(x, y float64) float64 {
	return math.Max(-1, math.Min(1, s.noise.Eval2(x, y)))
}

// Noise3D returns single-octave noise in [-1,1].
func (s *Simplex) Noise3D(x, y, z float64) float64 {
	return math.Max(-1, math.Min(1, s.noise.Eval3(x, y, z)))
}

// Octave2D returns the normalized octave sum in [-1,1].
func (s *Simplex) Octave2D(x, y float64, octaves int) float64 {
	return fractal.Octave2D(s, x, y, octaves, fractal.DefaultPersistence)
}

// Octave3D returns the normalized octave sum in [-1,1].
func (s *Simplex) Octave3D(x, y, z float64, octaves int) float64 {
	return fractal.Octave3D(s, x, y, z, octaves, fractal.DefaultPersistence)
}

// OctavePersistence3D is Octave3D with a caller-chosen amplitude falloff.
func (s *Simplex) OctavePersistence3D(x, y, z float64, octaves int, persistence float64) float64 {
	return fractal.Octave3D(s, x, y, z, octaves, persistence)
}

// Octave2D01 is Octave2D remapped to [0,1].
func (s *Simplex) Octave2D01(x, y float64, octaves int) float64 {
	return fractal.Remap01(s.Octave2D(x, y, octaves))
}
