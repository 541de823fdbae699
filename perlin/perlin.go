// Package perlin implements seedable Perlin gradient noise whose
// permutation state can be reseeded, serialized and restored.
package perlin

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/gmlewis/noisetex/fractal"
	"github.com/go-gl/mathgl/mgl64"
)

// StateSize is the length of a serialized Perlin state.
const StateSize = 256

// pcgStream is the fixed PCG stream used to expand a 32-bit seed.
const pcgStream = 0x9e3779b97f4a7c15

// ErrMalformedState is returned by Deserialize for blobs
// that were not produced by Serialize.
var ErrMalformedState = errors.New("perlin: malformed state")

// gradients are the 12 cube edge directions, padded to 16 entries
// so a 4-bit hash selects one without bias.
var gradients = [16]mgl64.Vec3{
	{1, 1, 0}, {-1, 1, 0}, {1, -1, 0}, {-1, -1, 0},
	{1, 0, 1}, {-1, 0, 1}, {1, 0, -1}, {-1, 0, -1},
	{0, 1, 1}, {0, -1, 1}, {0, 1, -1}, {0, -1, -1},
	{1, 1, 0}, {-1, 1, 0}, {0, -1, 1}, {0, -1, -1},
}

// Perlin is a coherent noise sampler.
// The zero value is not usable; construct one with New or NewFromSource.
type Perlin struct {
	perm [StateSize]uint8
}

// Perlin implements fractal.Basis.
var _ fractal.Basis = &Perlin{}

// New returns a sampler whose permutation is derived from seed.
func New(seed uint32) *Perlin {
	p := &Perlin{}
	p.Reseed(seed)
	return p
}

// NewFromSource returns a sampler whose permutation is drawn from src.
func NewFromSource(src rand.Source) *Perlin {
	p := &Perlin{}
	p.ReseedFromSource(src)
	return p
}

// NewRandom returns a sampler seeded from the runtime's entropy source.
// Its output is not reproducible unless its state is serialized.
func NewRandom() *Perlin {
	return NewFromSource(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// Reseed replaces the permutation exactly as New(seed) would build it.
func (p *Perlin) Reseed(seed uint32) {
	p.ReseedFromSource(rand.NewPCG(uint64(seed), pcgStream))
}

// ReseedFromSource replaces the permutation with a shuffle drawn from src.
func (p *Perlin) ReseedFromSource(src rand.Source) {
	for i := range p.perm {
		p.perm[i] = uint8(i)
	}
	rand.New(src).Shuffle(len(p.perm), func(i, j int) {
		p.perm[i], p.perm[j] = p.perm[j], p.perm[i]
	})
}

// Serialize returns a copy of the permutation state.
func (p *Perlin) Serialize() []byte {
	state := make([]byte, StateSize)
	copy(state, p.perm[:])
	return state
}

// Deserialize restores state produced by Serialize on any Perlin.
// On error the receiver is left unchanged.
func (p *Perlin) Deserialize(state []byte) error {
	if len(state) != StateSize {
		return fmt.Errorf("%w: got %v bytes, want %v", ErrMalformedState, len(state), StateSize)
	}
	var seen [StateSize]bool
	for _, v := range state {
		if seen[v] {
			return fmt.Errorf("%w: duplicate entry %v", ErrMalformedState, v)
		}
		seen[v] = true
	}
	copy(p.perm[:], state)
	return nil
}

// Noise2D returns single-octave noise in [-1,1] on the z=0 plane.
func (p *Perlin) Noise2D(x, y float64) float64 {
	return p.Noise3D(x, y, 0)
}

// Noise3D returns single-octave noise in [-1,1].
func (p *Perlin) Noise3D(x, y, z float64) float64 {
	fx, fy, fz := math.Floor(x), math.Floor(y), math.Floor(z)
	xi, yi, zi := int(fx)&255, int(fy)&255, int(fz)&255
	x, y, z = x-fx, y-fy, z-fz
	u, v, w := fade(x), fade(y), fade(z)

	a := p.hash(xi) + yi
	aa := p.hash(a) + zi
	ab := p.hash(a+1) + zi
	b := p.hash(xi+1) + yi
	ba := p.hash(b) + zi
	bb := p.hash(b+1) + zi

	r := lerp(w,
		lerp(v,
			lerp(u, grad(p.hash(aa), x, y, z), grad(p.hash(ba), x-1, y, z)),
			lerp(u, grad(p.hash(ab), x, y-1, z), grad(p.hash(bb), x-1, y-1, z))),
		lerp(v,
			lerp(u, grad(p.hash(aa+1), x, y, z-1), grad(p.hash(ba+1), x-1, y, z-1)),
			lerp(u, grad(p.hash(ab+1), x, y-1, z-1), grad(p.hash(bb+1), x-1, y-1, z-1))))

	return math.Max(-1, math.Min(1, r))
}

// Octave2D returns the normalized octave sum in [-1,1] on the z=0 plane.
func (p *Perlin) Octave2D(x, y float64, octaves int) float64 {
	return fractal.Octave2D(p, x, y, octaves, fractal.DefaultPersistence)
}

// Octave3D returns the normalized octave sum in [-1,1]. Each octave
// doubles the frequency and halves the amplitude of the previous one.
func (p *Perlin) Octave3D(x, y, z float64, octaves int) float64 {
	return fractal.Octave3D(p, x, y, z, octaves, fractal.DefaultPersistence)
}

// OctavePersistence3D is Octave3D with a caller-chosen amplitude falloff.
func (p *Perlin) OctavePersistence3D(x, y, z float64, octaves int, persistence float64) float64 {
	return fractal.Octave3D(p, x, y, z, octaves, persistence)
}

// Octave2D01 is Octave2D remapped to [0,1].
func (p *Perlin) Octave2D01(x, y float64, octaves int) float64 {
	return fractal.Remap01(p.Octave2D(x, y, octaves))
}

func (p *Perlin) hash(i int) int {
	return int(p.perm[i&255])
}

func fade(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

func lerp(t, a, b float64) float64 {
	return a + t*(b-a)
}

func grad(hash int, x, y, z float64) float64 {
	return gradients[hash&15].Dot(mgl64.Vec3{x, y, z})
}
