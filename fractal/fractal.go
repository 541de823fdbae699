// Package fractal composes octaves of a single-frequency coherent noise
// basis into multi-scale noise.
package fractal

// DefaultPersistence halves the amplitude of each successive octave.
const DefaultPersistence = 0.5

// Basis represents a single-octave coherent noise function.
// Values are expected to lie in [-1,1].
type Basis interface {
	Noise2D(x, y float64) float64
	Noise3D(x, y, z float64) float64
}

// Octave3D sums octaves successive evaluations of b at doubling frequency
// and persistence-scaled amplitude, normalized by the total amplitude.
// It returns 0 when octaves < 1.
func Octave3D(b Basis, x, y, z float64, octaves int, persistence float64) float64 {
	total := MaxAmplitude(octaves, persistence)
	if total == 0 {
		return 0
	}
	var sum float64
	amp := 1.0
	for i := 0; i < octaves; i++ {
		sum += amp * b.Noise3D(x, y, z)
		x *= 2
		y *= 2
		z *= 2
		amp *= persistence
	}
	return clamp(sum/total, -1, 1)
}

// Octave2D is the 2D variant of Octave3D.
func Octave2D(b Basis, x, y float64, octaves int, persistence float64) float64 {
	total := MaxAmplitude(octaves, persistence)
	if total == 0 {
		return 0
	}
	var sum float64
	amp := 1.0
	for i := 0; i < octaves; i++ {
		sum += amp * b.Noise2D(x, y)
		x *= 2
		y *= 2
		amp *= persistence
	}
	return clamp(sum/total, -1, 1)
}

// Remap01 maps v from [-1,1] to [0,1], clamping the result.
func Remap01(v float64) float64 {
	return clamp((v+1)/2, 0, 1)
}

// MaxAmplitude returns the sum of the octave amplitudes.
func MaxAmplitude(octaves int, persistence float64) float64 {
	var total float64
	amp := 1.0
	for i := 0; i < octaves; i++ {
		total += amp
		amp *= persistence
	}
	return total
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
