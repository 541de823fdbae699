// noisetex generates grayscale fractal noise textures as BMP files,
// either interactively or from a TOML batch file.
//
// Usage:
//
//	noisetex [-selftest] [-width 512] [-height 512] [-basis perlin] [-dir .]
//	noisetex -batch jobs.toml
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"

	"github.com/gmlewis/noisetex/batch"
	"github.com/gmlewis/noisetex/interactive"
	"github.com/gmlewis/noisetex/texture"
)

var (
	batchFile = flag.String("batch", "", "TOML file of jobs to run instead of prompting")
	selfTest  = flag.Bool("selftest", false, "Run the noise reproducibility self-test first")
	width     = flag.Int("width", interactive.DefaultWidth, "Width of interactive textures in pixels")
	height    = flag.Int("height", interactive.DefaultHeight, "Height of interactive textures in pixels")
	basis     = flag.String("basis", string(texture.Perlin), "Noise basis for interactive textures: perlin or simplex")
	dir       = flag.String("dir", "", "Output directory for interactive textures")
)

func main() {
	log.SetPrefix("noisetex: ")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if *selfTest {
		if err := interactive.SelfTest(os.Stdout); err != nil {
			log.Fatalf("SelfTest: %v", err)
		}
	}

	if *batchFile != "" {
		f, err := batch.Load(*batchFile)
		if err != nil {
			log.Fatal(err)
		}
		paths, err := f.Run(ctx)
		log.Printf("Wrote %v files.", len(paths))
		if err != nil {
			log.Fatal(err)
		}
		return
	}

	if *width <= 0 || *height <= 0 {
		log.Fatalf("invalid size %vx%v", *width, *height)
	}
	if _, err := texture.NewSampler(texture.Basis(*basis), 0); err != nil {
		log.Fatal(err)
	}

	l := interactive.New(os.Stdin, os.Stdout)
	l.Width, l.Height = *width, *height
	l.Basis = texture.Basis(*basis)
	l.Dir = *dir
	if err := l.Run(ctx); err != nil {
		log.Fatal(err)
	}
}
