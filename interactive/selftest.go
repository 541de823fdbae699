package interactive

import (
	"fmt"
	"io"
	"math"
	"math/rand/v2"

	"github.com/gmlewis/noisetex/perlin"
)

// SelfTest checks that Perlin state survives serialization and that
// equal reseeds give equal fields, then prints a 20x20 digit preview
// of the field to w.
func SelfTest(w io.Writer) error {
	a := perlin.NewRandom()
	b := perlin.New(0)

	if err := b.Deserialize(a.Serialize()); err != nil {
		return fmt.Errorf("Deserialize: %v", err)
	}
	if err := sameOctave3D(a, b, "after deserialize"); err != nil {
		return err
	}

	a.Reseed(12345)
	b.Reseed(12345)
	if err := sameOctave3D(a, b, "after Reseed(12345)"); err != nil {
		return err
	}

	a.ReseedFromSource(rand.NewPCG(67890, 0))
	b.ReseedFromSource(rand.NewPCG(67890, 0))
	if err := sameOctave3D(a, b, "after ReseedFromSource(67890)"); err != nil {
		return err
	}

	for y := 0; y < 20; y++ {
		row := make([]byte, 20)
		for x := range row {
			n := a.Octave2D01(float64(x)*0.1, float64(y)*0.1, 6)
			row[x] = '0' + byte(int(math.Floor(n*10)-0.5))
		}
		if _, err := fmt.Fprintf(w, "%s\n", row); err != nil {
			return err
		}
	}
	return nil
}

func sameOctave3D(a, b *perlin.Perlin, when string) error {
	va, vb := a.Octave3D(0.1, 0.2, 0.3, 4), b.Octave3D(0.1, 0.2, 0.3, 4)
	if va != vb {
		return fmt.Errorf("samplers diverge %v: %v != %v", when, va, vb)
	}
	return nil
}
