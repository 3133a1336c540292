// Package match maps a color onto the closest entry of a palette, where
// "closest" depends on which perceptual attribute a Strategy cares about.
package match

import (
	"fmt"
	"math"
	"strings"

	"github.com/makeworld-the-better-one/paletteshift/palette"
)

// Strategy selects the distance used to pick a palette color.
type Strategy int

const (
	// Standard uses Euclidean RGB distance.
	Standard Strategy = iota
	// Luminosity matches perceived brightness only.
	Luminosity
	// Hue matches the color family, with luminance as a tiebreaker.
	Hue
	// Saturation matches vividness, with luminance as a tiebreaker.
	Saturation
	// InvertedLuminosity maps bright colors to dark ones and vice versa.
	InvertedLuminosity
	// ComplementaryHue maps each color to the opposite side of the color wheel.
	ComplementaryHue
)

// Strategies lists every strategy, in the order variations are generated.
var Strategies = []Strategy{
	Standard,
	Luminosity,
	Hue,
	Saturation,
	InvertedLuminosity,
	ComplementaryHue,
}

var strategyNames = map[Strategy]string{
	Standard:           "perceptual",
	Luminosity:         "luminosity",
	Hue:                "hue",
	Saturation:         "saturation",
	InvertedLuminosity: "inverted",
	ComplementaryHue:   "complementary",
}

var strategyTitles = map[Strategy]string{
	Standard:           "Perceptual Match",
	Luminosity:         "Luminosity Match",
	Hue:                "Hue Match",
	Saturation:         "Saturation Match",
	InvertedLuminosity: "Inverted Luminosity",
	ComplementaryHue:   "Complementary Hue",
}

var strategyDescriptions = map[Strategy]string{
	Standard:           "Standard RGB distance matching",
	Luminosity:         "Matches by brightness, preserving light/dark contrast",
	Hue:                "Matches by color family, preserving the mood",
	Saturation:         "Matches by color vividness (vibrant vs muted)",
	InvertedLuminosity: "Inverts brightness (dark becomes light, light becomes dark)",
	ComplementaryHue:   "Maps to opposite colors on the color wheel",
}

// String returns the short name used on the command line.
func (s Strategy) String() string {
	if n, ok := strategyNames[s]; ok {
		return n
	}
	return fmt.Sprintf("Strategy(%d)", int(s))
}

// Title is the human-readable name of the strategy.
func (s Strategy) Title() string {
	return strategyTitles[s]
}

// Description is a one-line explanation of the strategy.
func (s Strategy) Description() string {
	return strategyDescriptions[s]
}

// ParseStrategy parses a short name, as returned by String.
// "standard" is accepted as an alias for "perceptual".
func ParseStrategy(name string) (Strategy, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "standard" || name == "" {
		return Standard, nil
	}
	for _, s := range Strategies {
		if strategyNames[s] == name {
			return s, nil
		}
	}
	return Standard, fmt.Errorf("unknown matching strategy '%s'", name)
}

// Closest returns the entry of p that s considers closest to c.
// On a tie the earliest entry wins. p must not be empty.
func (s Strategy) Closest(c palette.Color, p palette.Palette) palette.Color {
	return p[s.ClosestIndex(c, p)]
}

// ClosestIndex is like Closest but returns the index into p.
func (s Strategy) ClosestIndex(c palette.Color, p palette.Palette) int {
	dist := s.distanceFunc(c)
	best := 0
	bestDist := math.Inf(1)
	for i, pc := range p {
		d := dist(pc)
		if d < bestDist {
			bestDist = d
			best = i
		}
	}
	return best
}

// distanceFunc precomputes whatever depends only on c, and returns the
// distance from c to a candidate palette color.
func (s Strategy) distanceFunc(c palette.Color) func(palette.Color) float64 {
	switch s {
	case Standard:
		return func(p palette.Color) float64 {
			return palette.Distance(c, p)
		}
	case Luminosity:
		lum := palette.Luminance(c)
		return func(p palette.Color) float64 {
			return math.Abs(palette.Luminance(p) - lum)
		}
	case Hue:
		return hueDistance(palette.Hue(c), palette.Luminance(c))
	case Saturation:
		sat := palette.Saturation(c)
		lum := palette.Luminance(c)
		return func(p palette.Color) float64 {
			satDist := math.Abs(palette.Saturation(p) - sat)
			lumDist := math.Abs(palette.Luminance(p)-lum) / 255
			return satDist + lumDist*0.5
		}
	case InvertedLuminosity:
		lum := 255 - palette.Luminance(c)
		return func(p palette.Color) float64 {
			return math.Abs(palette.Luminance(p) - lum)
		}
	case ComplementaryHue:
		return hueDistance(math.Mod(palette.Hue(c)+180, 360), palette.Luminance(c))
	}
	panic(fmt.Sprintf("match: unknown strategy %d", int(s)))
}

// hueDistance weights hue heavily and uses luminance as a tiebreaker.
func hueDistance(hue, lum float64) func(palette.Color) float64 {
	return func(p palette.Color) float64 {
		hueDist := palette.HueDistance(hue, palette.Hue(p))
		lumDist := math.Abs(lum-palette.Luminance(p)) / 255
		return hueDist + lumDist*10
	}
}
