// Package recolor composes a matching strategy, a dithering method and the
// distinctness policy into a single pass over a buffer.
package recolor

import (
	"github.com/makeworld-the-better-one/paletteshift/dithering"
	"github.com/makeworld-the-better-one/paletteshift/mapping"
	"github.com/makeworld-the-better-one/paletteshift/match"
	"github.com/makeworld-the-better-one/paletteshift/palette"
	"github.com/makeworld-the-better-one/paletteshift/pixbuf"
)

// Options configures Apply. The zero value is Standard matching with no
// dithering and no distinctness preservation, but note that a zero
// Dithering.Intensity turns any dithering method into plain matching, so
// start from DefaultOptions when dithering.
type Options struct {
	Strategy match.Strategy
	Dither   dithering.Method

	// PreserveDistinctness keeps distinct source colors on distinct palette
	// colors while the palette has room. It is ignored when dithering, which
	// always matches pixel by pixel.
	PreserveDistinctness bool

	Dithering dithering.Options
}

func DefaultOptions() Options {
	return Options{Dithering: dithering.DefaultOptions()}
}

// Apply returns a copy of buf recolored to p. p must not be empty.
func Apply(buf *pixbuf.Buffer, p palette.Palette, opts Options) *pixbuf.Buffer {
	if opts.Dither != dithering.None {
		return dithering.Apply(buf, p, opts.Strategy, opts.Dither, opts.Dithering)
	}
	if opts.PreserveDistinctness {
		return mapping.PreserveDistinctness(buf, p, opts.Strategy)
	}
	return dithering.Quantize(buf, p, opts.Strategy)
}

// Variation is buf recolored with one of the matching strategies.
type Variation struct {
	Name        string
	Description string
	Strategy    match.Strategy
	Buffer      *pixbuf.Buffer
}

// Variations recolors buf once per strategy in match.Strategies, and returns
// the results in that order. opts.Strategy is ignored.
func Variations(buf *pixbuf.Buffer, p palette.Palette, opts Options) []Variation {
	vs := make([]Variation, 0, len(match.Strategies))
	for _, s := range match.Strategies {
		vs = append(vs, Variation{
			Name:        s.Title(),
			Description: s.Description(),
			Strategy:    s,
			Buffer:      Variant(buf, p, s, opts),
		})
	}
	return vs
}

// Variant is a single entry of Variations.
func Variant(buf *pixbuf.Buffer, p palette.Palette, s match.Strategy, opts Options) *pixbuf.Buffer {
	opts.Strategy = s
	return Apply(buf, p, opts)
}

// Similar is buf recolored to one palette derived from the input palette.
type Similar struct {
	Palette palette.Palette
	Buffer  *pixbuf.Buffer
}

// ApplySimilar derives count palettes from p with palette.Similar and
// recolors buf to each of them, matching by luminosity so the light and
// dark structure of the image survives the hue shift. opts.Strategy is
// ignored.
func ApplySimilar(buf *pixbuf.Buffer, p palette.Palette, count int, opts Options) []Similar {
	palettes := palette.Similar(p, count)
	out := make([]Similar, len(palettes))
	for i, sp := range palettes {
		out[i] = Similar{
			Palette: sp,
			Buffer:  Variant(buf, sp, match.Luminosity, opts),
		}
	}
	return out
}
