// Package dithering quantizes a buffer to a palette while spreading the
// quantization error around, so that colors missing from the palette are
// approximated by patterns of colors that are in it.
//
// Every function here returns a new buffer and leaves its input untouched.
// Pixels with alpha below pixbuf.AlphaThreshold are copied as they are, and
// never give or receive diffused error.
package dithering

import (
	"fmt"
	"math"
	"strings"

	"github.com/makeworld-the-better-one/paletteshift/match"
	"github.com/makeworld-the-better-one/paletteshift/palette"
	"github.com/makeworld-the-better-one/paletteshift/pixbuf"
)

// Method is a dithering algorithm.
type Method int

const (
	// None matches each pixel on its own, with no dithering.
	None Method = iota
	// FloydSteinberg diffuses the whole error to four neighbors.
	FloydSteinberg
	// Ordered is Bayer matrix ordered dithering.
	Ordered
	// Atkinson diffuses three quarters of the error to six neighbors.
	Atkinson
	// BlueNoise thresholds against a tiled noise pattern.
	BlueNoise
)

var methodNames = []string{
	None:           "none",
	FloydSteinberg: "floyd-steinberg",
	Ordered:        "ordered",
	Atkinson:       "atkinson",
	BlueNoise:      "blue-noise",
}

// Methods lists every method.
var Methods = []Method{None, FloydSteinberg, Ordered, Atkinson, BlueNoise}

func (m Method) String() string {
	if int(m) >= 0 && int(m) < len(methodNames) {
		return methodNames[m]
	}
	return fmt.Sprintf("Method(%d)", int(m))
}

// ParseMethod parses a method name as returned by String.
// "bayer" is accepted for Ordered and "fs" for FloydSteinberg.
func ParseMethod(name string) (Method, error) {
	name = strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "_", "-")
	switch name {
	case "", "none":
		return None, nil
	case "bayer":
		return Ordered, nil
	case "fs", "floydsteinberg":
		return FloydSteinberg, nil
	case "bluenoise":
		return BlueNoise, nil
	}
	for i, n := range methodNames {
		if n == name {
			return Method(i), nil
		}
	}
	return None, fmt.Errorf("unknown dithering method '%s'", name)
}

// Options holds the settings shared by the dithering methods.
type Options struct {
	// Intensity scales the diffused error or threshold offset.
	// 0 is plain nearest-color matching, 1 is the normal strength, and
	// values above 1 exaggerate the pattern.
	Intensity float64

	// BayerSize is the ordered dithering matrix size: 2, 4 or 8.
	// Any other value uses 4.
	BayerSize int
}

// DefaultOptions returns full intensity with a 4x4 Bayer matrix.
func DefaultOptions() Options {
	return Options{Intensity: 1, BayerSize: 4}
}

// Apply runs method over buf. It is the single entry point the orchestration
// layer dispatches through.
func Apply(buf *pixbuf.Buffer, p palette.Palette, s match.Strategy, method Method, opts Options) *pixbuf.Buffer {
	switch method {
	case FloydSteinberg:
		return FloydSteinbergDither(buf, p, s, opts.Intensity)
	case Ordered:
		return OrderedDither(buf, p, s, opts.BayerSize, opts.Intensity)
	case Atkinson:
		return AtkinsonDither(buf, p, s, opts.Intensity)
	case BlueNoise:
		return BlueNoiseDither(buf, p, s, opts.Intensity)
	}
	return Quantize(buf, p, s)
}

// Quantize replaces every opaque pixel with its match in p. No error is
// diffused, and distinct colors may collapse onto the same palette entry.
func Quantize(buf *pixbuf.Buffer, p palette.Palette, s match.Strategy) *pixbuf.Buffer {
	out := buf.Clone()
	for i := 0; i < len(out.Pix); i += 4 {
		if !out.OpaqueAt(i) {
			continue
		}
		out.SetColorAt(i, s.Closest(out.ColorAt(i), p))
	}
	return out
}

// offset adds off to every channel of c, clamping to [0,255].
func offset(c palette.Color, off float64) palette.Color {
	return palette.Color{
		R: clampRound(float64(c.R) + off),
		G: clampRound(float64(c.G) + off),
		B: clampRound(float64(c.B) + off),
	}
}

// clampRound clamps v to a byte, rounding halves to even the way a
// clamped byte array does on assignment.
func clampRound(v float64) uint8 {
	if v <= 0 || math.IsNaN(v) {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(math.RoundToEven(v))
}
