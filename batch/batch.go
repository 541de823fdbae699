// Package batch runs a list of texture jobs described in a TOML file.
package batch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/gmlewis/noisetex/binvox"
	"github.com/gmlewis/noisetex/bmp"
	"github.com/gmlewis/noisetex/fractal"
	"github.com/gmlewis/noisetex/texture"
	"github.com/gmlewis/noisetex/volume"
	"github.com/pelletier/go-toml/v2"
)

// Default image size, matching the interactive loop.
const (
	DefaultWidth     = 512
	DefaultHeight    = 512
	DefaultThreshold = 0.5
)

// File is a parsed batch file.
type File struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Dir    string `toml:"dir"`
	Jobs   []Job  `toml:"job"`
}

// Job describes one texture and, optionally, one volume.
type Job struct {
	Frequency float64       `toml:"frequency"`
	Octaves   int           `toml:"octaves"`
	Seed      uint32        `toml:"seed"`
	Basis     texture.Basis `toml:"basis"`
	Volume    int           `toml:"volume"`
	Threshold *float64      `toml:"threshold"`

	// Persistence scales each volume octave's amplitude relative to the
	// previous one. It defaults to fractal.DefaultPersistence.
	Persistence *float64 `toml:"persistence"`
}

// Config returns the clamped texture parameters of j.
func (j Job) Config() texture.Config {
	return texture.Config{Frequency: j.Frequency, Octaves: j.Octaves, Seed: j.Seed}.Clamp()
}

// Load reads and parses the batch file at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("Load(%q): %w", path, err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("Load(%q): %w", path, err)
	}
	return f, nil
}

// Parse decodes a batch file and fills in defaults.
// Unknown keys are rejected.
func Parse(data []byte) (*File, error) {
	f := &File{}
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(f); err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}

	if f.Width == 0 {
		f.Width = DefaultWidth
	}
	if f.Height == 0 {
		f.Height = DefaultHeight
	}
	if f.Width < 0 || f.Height < 0 {
		return nil, fmt.Errorf("invalid image size %vx%v", f.Width, f.Height)
	}
	for i, j := range f.Jobs {
		if _, err := texture.NewSampler(j.Basis, 0); err != nil {
			return nil, fmt.Errorf("job %v: %w", i+1, err)
		}
		if j.Volume < 0 {
			return nil, fmt.Errorf("job %v: negative volume size %v", i+1, j.Volume)
		}
		if j.Threshold != nil && math.IsNaN(*j.Threshold) {
			return nil, fmt.Errorf("job %v: threshold is NaN", i+1)
		}
		if p := j.Persistence; p != nil && !(*p >= 0 && *p <= 1) {
			return nil, fmt.Errorf("job %v: persistence %v outside [0,1]", i+1, *p)
		}
	}
	return f, nil
}

// Run executes every job in order and returns the paths it wrote.
// A failing job does not stop later ones; all failures are joined
// into the returned error. Run stops early if ctx is done.
func (f *File) Run(ctx context.Context) ([]string, error) {
	if f.Dir != "" {
		if err := os.MkdirAll(f.Dir, 0o755); err != nil {
			return nil, fmt.Errorf("MkdirAll(%q): %w", f.Dir, err)
		}
	}

	var written []string
	var errs []error
	for i, j := range f.Jobs {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		paths, err := f.runJob(j)
		written = append(written, paths...)
		if err != nil {
			log.Printf("job %v failed: %v", i+1, err)
			errs = append(errs, fmt.Errorf("job %v: %w", i+1, err))
		}
	}
	return written, errors.Join(errs...)
}

func (f *File) runJob(j Job) ([]string, error) {
	cfg := j.Config()
	sampler, err := texture.NewSampler(j.Basis, cfg.Seed)
	if err != nil {
		return nil, err
	}

	name := filepath.Join(f.Dir, cfg.Filename())
	img := texture.Generate(sampler, f.Width, f.Height, cfg)
	log.Printf("Writing: %v", name)
	if err := bmp.Save(name, img); err != nil {
		return nil, err
	}
	written := []string{name}

	if j.Volume == 0 {
		return written, nil
	}

	field, ok := sampler.(volume.Field)
	if !ok {
		return written, fmt.Errorf("basis %q has no 3D field", j.Basis)
	}
	threshold := DefaultThreshold
	if j.Threshold != nil {
		threshold = *j.Threshold
	}
	persistence := fractal.DefaultPersistence
	if j.Persistence != nil {
		persistence = *j.Persistence
	}
	vname := binvox.Filename(strings.TrimSuffix(name, ".bmp"))
	if err := binvox.Slice(vname, volume.New(field, cfg, j.Volume, persistence), threshold); err != nil {
		return written, fmt.Errorf("Slice(%q): %w", vname, err)
	}
	return append(written, vname), nil
}
