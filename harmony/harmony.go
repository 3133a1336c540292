// Package harmony generates palettes from color-wheel relationships
// around a base color.
package harmony

import (
	"fmt"
	"math"
	"strings"

	"github.com/makeworld-the-better-one/paletteshift/extract"
	"github.com/makeworld-the-better-one/paletteshift/palette"
	"github.com/makeworld-the-better-one/paletteshift/pixbuf"
)

// Scheme is a harmony type.
type Scheme int

const (
	SchemeComplementary Scheme = iota
	SchemeAnalogous
	SchemeTriadic
	SchemeSplitComplementary
	SchemeTetradic
	SchemeMonochromatic
	SchemeCompound
)

var schemeNames = []string{
	SchemeComplementary:      "complementary",
	SchemeAnalogous:          "analogous",
	SchemeTriadic:            "triadic",
	SchemeSplitComplementary: "split-complementary",
	SchemeTetradic:           "tetradic",
	SchemeMonochromatic:      "monochromatic",
	SchemeCompound:           "compound",
}

// Schemes lists every scheme.
var Schemes = []Scheme{
	SchemeComplementary,
	SchemeAnalogous,
	SchemeTriadic,
	SchemeSplitComplementary,
	SchemeTetradic,
	SchemeMonochromatic,
	SchemeCompound,
}

func (s Scheme) String() string {
	if int(s) >= 0 && int(s) < len(schemeNames) {
		return schemeNames[s]
	}
	return fmt.Sprintf("Scheme(%d)", int(s))
}

// ParseScheme parses a scheme name as returned by String.
func ParseScheme(name string) (Scheme, error) {
	name = strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "_", "-")
	if name == "splitcomplementary" || name == "split" {
		return SchemeSplitComplementary, nil
	}
	for i, n := range schemeNames {
		if n == name {
			return Scheme(i), nil
		}
	}
	return SchemeComplementary, fmt.Errorf("unknown harmony scheme '%s'", name)
}

// lightness limits for generated colors, so that nothing is pure black or white
const (
	minLightness = 10
	maxLightness = 90
)

func clampLightness(l float64) float64 {
	return math.Max(minLightness, math.Min(maxLightness, l))
}

func wrapHue(h float64) float64 {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	return h
}

// Complementary returns shades of base followed by shades of its
// complement, variations colors in total. Base gets the extra color when
// variations is odd.
func Complementary(base palette.Color, variations int) palette.Palette {
	hsl := base.HSL()
	p := make(palette.Palette, 0, variations)
	comp := wrapHue(hsl.H + 180)

	for i := 0; i < (variations+1)/2; i++ {
		p = append(p, palette.FromHSL(hsl.H, hsl.S, clampLightness(hsl.L+float64(i-1)*15)))
	}
	for i := 0; i < variations/2; i++ {
		p = append(p, palette.FromHSL(comp, hsl.S, clampLightness(hsl.L+float64(i-1)*15)))
	}
	return p
}

// Analogous returns count colors spread degrees apart, centered on the base
// hue, with a gentle lightness swell in the middle.
func Analogous(base palette.Color, count int, spread float64) palette.Palette {
	hsl := base.HSL()
	p := make(palette.Palette, 0, count)
	start := -float64(count/2) * spread

	for i := 0; i < count; i++ {
		hue := wrapHue(hsl.H + start + float64(i)*spread)
		l := clampLightness(hsl.L + math.Sin(float64(i)/float64(count)*math.Pi)*15)
		p = append(p, palette.FromHSL(hue, hsl.S, l))
	}
	return p
}

// shades returns a darker, the same and a lighter color for each hue.
func shades(hsl palette.HSL, step float64, hues ...float64) palette.Palette {
	p := make(palette.Palette, 0, len(hues)*3)
	for _, h := range hues {
		p = append(p,
			palette.FromHSL(h, hsl.S, math.Max(minLightness, hsl.L-step)),
			palette.FromHSL(h, hsl.S, hsl.L),
			palette.FromHSL(h, hsl.S, math.Min(maxLightness, hsl.L+step)),
		)
	}
	return p
}

func flat(hsl palette.HSL, hues ...float64) palette.Palette {
	p := make(palette.Palette, len(hues))
	for i, h := range hues {
		p[i] = palette.FromHSL(h, hsl.S, hsl.L)
	}
	return p
}

// Triadic returns the three hues 120° apart. With variations, each hue gets
// a darker and a lighter shade too.
func Triadic(base palette.Color, variations bool) palette.Palette {
	hsl := base.HSL()
	hues := []float64{hsl.H, wrapHue(hsl.H + 120), wrapHue(hsl.H + 240)}
	if variations {
		return shades(hsl, 20, hues...)
	}
	return flat(hsl, hues...)
}

// SplitComplementary returns the base hue and the two hues split degrees
// either side of its complement.
func SplitComplementary(base palette.Color, split float64, variations bool) palette.Palette {
	hsl := base.HSL()
	comp := wrapHue(hsl.H + 180)
	sides := []float64{wrapHue(comp - split), wrapHue(comp + split)}
	if !variations {
		return flat(hsl, hsl.H, sides[0], sides[1])
	}

	p := shades(hsl, 20, hsl.H)
	for _, h := range sides {
		p = append(p,
			palette.FromHSL(h, hsl.S, math.Max(minLightness, hsl.L-15)),
			palette.FromHSL(h, hsl.S, math.Min(maxLightness, hsl.L+15)),
		)
	}
	return p
}

// Tetradic returns four hues 90° apart.
func Tetradic(base palette.Color, variations bool) palette.Palette {
	hsl := base.HSL()
	hues := []float64{hsl.H, wrapHue(hsl.H + 90), wrapHue(hsl.H + 180), wrapHue(hsl.H + 270)}
	if variations {
		return shades(hsl, 15, hues...)
	}
	return flat(hsl, hues...)
}

// Monochromatic returns count colors of the base hue, from dark to light,
// most saturated in the middle.
func Monochromatic(base palette.Color, count int) palette.Palette {
	hsl := base.HSL()
	p := make(palette.Palette, 0, count)
	for i := 0; i < count; i++ {
		t := 0.0
		if count > 1 {
			t = float64(i) / float64(count-1)
		}
		s := math.Max(0, math.Min(100, hsl.S+math.Sin(t*math.Pi)*20))
		p = append(p, palette.FromHSL(hsl.H, s, 15+t*70))
	}
	return p
}

// Compound returns two complementary pairs, the second pair rotated by
// offset degrees, each with three shades.
func Compound(base palette.Color, offset float64) palette.Palette {
	hsl := base.HSL()
	return shades(hsl, 15,
		hsl.H,
		wrapHue(hsl.H+offset),
		wrapHue(hsl.H+180),
		wrapHue(hsl.H+180+offset),
	)
}

// Generate returns the scheme's palette for base with default parameters.
func Generate(base palette.Color, s Scheme) (palette.Palette, error) {
	switch s {
	case SchemeComplementary:
		return Complementary(base, 5), nil
	case SchemeAnalogous:
		return Analogous(base, 5, 30), nil
	case SchemeTriadic:
		return Triadic(base, true), nil
	case SchemeSplitComplementary:
		return SplitComplementary(base, 30, true), nil
	case SchemeTetradic:
		return Tetradic(base, true), nil
	case SchemeMonochromatic:
		return Monochromatic(base, 5), nil
	case SchemeCompound:
		return Compound(base, 60), nil
	}
	return nil, fmt.Errorf("unknown harmony scheme %d", int(s))
}

// Harmony is one scheme's palette.
type Harmony struct {
	Scheme  Scheme
	Palette palette.Palette
}

// All returns every scheme for base, in Schemes order. The counted schemes
// get six colors.
func All(base palette.Color) []Harmony {
	return []Harmony{
		{SchemeComplementary, Complementary(base, 6)},
		{SchemeAnalogous, Analogous(base, 6, 30)},
		{SchemeTriadic, Triadic(base, true)},
		{SchemeSplitComplementary, SplitComplementary(base, 30, true)},
		{SchemeTetradic, Tetradic(base, true)},
		{SchemeMonochromatic, Monochromatic(base, 6)},
		{SchemeCompound, Compound(base, 60)},
	}
}

// FromHex parses hex and generates the scheme from it.
func FromHex(hex string, s Scheme) (palette.Palette, error) {
	base, err := palette.ParseHex(hex)
	if err != nil {
		return nil, err
	}
	return Generate(base, s)
}

// ExtractAndHarmonize finds the most dominant color of buf with k-means and
// generates the scheme from it.
func ExtractAndHarmonize(buf *pixbuf.Buffer, s Scheme, opts extract.Options) (palette.Palette, error) {
	colors, err := extract.Extract(buf, 3, extract.KMeans, opts)
	if err != nil {
		return nil, err
	}
	if len(colors) == 0 {
		return nil, fmt.Errorf("no opaque pixels to harmonize: %w", palette.ErrEmptyPalette)
	}
	return Generate(colors[0], s)
}
