// Package interactive prompts an operator for texture parameters and
// writes one BMP per cycle until told to stop.
package interactive

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gmlewis/noisetex/bmp"
	"github.com/gmlewis/noisetex/texture"
	"github.com/mattn/go-shellwords"
	"github.com/muesli/termenv"
)

// Default image size for generated textures.
const (
	DefaultWidth  = 512
	DefaultHeight = 512
)

const banner = `---------------------------------
* frequency [0.1 .. 8.0 .. 64.0]
* octaves   [1 .. 8 .. 16]
* seed      [0 .. 2^32-1]
---------------------------------
`

// Loop is the interactive texture generator.
type Loop struct {
	Width  int
	Height int
	Dir    string
	Basis  texture.Basis

	// Save writes an image; it defaults to bmp.Save.
	Save func(path string, img *bmp.Image) error

	tokens *tokenizer
	out    *termenv.Output
}

// New returns a Loop reading operator input from r and writing to w.
func New(r io.Reader, w io.Writer) *Loop {
	return &Loop{
		Width:  DefaultWidth,
		Height: DefaultHeight,
		Basis:  texture.Perlin,
		Save:   bmp.Save,
		tokens: newTokenizer(r),
		out:    termenv.NewOutput(w),
	}
}

// Run repeats prompt, generate and save cycles. It returns nil when the
// operator declines to continue or input ends, the read error if input
// fails, and ctx.Err() if ctx is done before a cycle starts. Any answer
// starting with "y" continues. Save failures are reported and the loop
// carries on.
func (l *Loop) Run(ctx context.Context) error {
	fmt.Fprint(l.out, banner)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		cfg, ok := l.readConfig()
		if !ok {
			return l.tokens.err()
		}
		l.cycle(cfg)

		c, ok := l.prompt("continue? [y/n] >")
		if !ok {
			return l.tokens.err()
		}
		if !strings.HasPrefix(c, "y") {
			return nil
		}
		fmt.Fprintln(l.out)
	}
}

func (l *Loop) cycle(cfg texture.Config) {
	name := cfg.Filename()
	sampler, err := texture.NewSampler(l.Basis, cfg.Seed)
	if err != nil {
		fmt.Fprintln(l.out, l.out.String("...failed: "+err.Error()).Foreground(l.out.Color("1")))
		return
	}
	img := texture.Generate(sampler, l.Width, l.Height, cfg)

	if err := l.Save(filepath.Join(l.Dir, name), img); err != nil {
		fmt.Fprintln(l.out, l.out.String("...failed").Foreground(l.out.Color("1")))
		return
	}
	fmt.Fprintln(l.out, l.out.String(fmt.Sprintf("...saved %q", name)).Foreground(l.out.Color("2")))
}

// readConfig prompts for the three parameters, clamping the results.
// It returns false if input ends.
func (l *Loop) readConfig() (texture.Config, bool) {
	var cfg texture.Config

	ok := l.promptValue("double frequency = ", func(s string) error {
		v, err := strconv.ParseFloat(s, 64)
		cfg.Frequency = v
		return err
	})
	if !ok {
		return cfg, false
	}

	ok = l.promptValue("int32 octaves    = ", func(s string) error {
		v, err := strconv.ParseInt(s, 10, 32)
		if err != nil && !isRange(err) {
			return err
		}
		cfg.Octaves = int(v)
		return nil
	})
	if !ok {
		return cfg, false
	}

	ok = l.promptValue("uint32 seed      = ", func(s string) error {
		v, err := strconv.ParseUint(s, 10, 32)
		cfg.Seed = uint32(v)
		return err
	})
	if !ok {
		return cfg, false
	}

	return cfg.Clamp(), true
}

// promptValue prompts until parse accepts a token or input ends.
func (l *Loop) promptValue(label string, parse func(string) error) bool {
	for {
		tok, ok := l.prompt(label)
		if !ok {
			return false
		}
		if err := parse(tok); err != nil {
			fmt.Fprintln(l.out, l.out.String(fmt.Sprintf("invalid value %q", tok)).Foreground(l.out.Color("3")))
			continue
		}
		return true
	}
}

func (l *Loop) prompt(label string) (string, bool) {
	fmt.Fprint(l.out, l.out.String(label).Bold())
	return l.tokens.next()
}

func isRange(err error) bool {
	ne, ok := err.(*strconv.NumError)
	return ok && ne.Err == strconv.ErrRange
}

// tokenizer splits input lines into shell-style words, so several values
// may be typed on one line or quoted.
type tokenizer struct {
	sc      *bufio.Scanner
	pending []string
}

func newTokenizer(r io.Reader) *tokenizer {
	return &tokenizer{sc: bufio.NewScanner(r)}
}

func (t *tokenizer) next() (string, bool) {
	for len(t.pending) == 0 {
		if !t.sc.Scan() {
			return "", false
		}
		words, err := shellwords.Parse(t.sc.Text())
		if err != nil {
			// Unbalanced quotes: treat the line as a single word.
			words = []string{t.sc.Text()}
		}
		t.pending = words
	}
	tok := t.pending[0]
	t.pending = t.pending[1:]
	return tok, true
}

// err returns the error that stopped the scanner, or nil at a clean EOF.
func (t *tokenizer) err() error {
	if err := t.sc.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	return nil
}
