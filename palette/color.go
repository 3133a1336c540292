// Package palette holds the color types shared by the rest of paletteshift,
// along with the color-space math the matching strategies are built on.
package palette

import (
	"image/color"
	"math"
)

// Color is an opaque 8-bit RGB triple. Alpha is handled at the buffer level.
type Color struct {
	R, G, B uint8
}

// RGBA implements color.Color. The color is always fully opaque.
func (c Color) RGBA() (r, g, b, a uint32) {
	return color.NRGBA{c.R, c.G, c.B, 255}.RGBA()
}

// NRGBA returns c as an opaque color.NRGBA.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{c.R, c.G, c.B, 255}
}

// FromColor drops the alpha of any color.Color and returns its RGB triple.
func FromColor(c color.Color) Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Color{n.R, n.G, n.B}
}

// Key packs the channels into a single integer, for use as a map key.
func (c Color) Key() uint32 {
	return uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

// ColorCount is a color annotated with how often it occurs.
type ColorCount struct {
	Color
	Count int
}

// HSL is a color in hue/saturation/lightness space.
// H is in [0,360), S and L are in [0,100].
type HSL struct {
	H, S, L float64
}

// ToHSL converts r, g, b to HSL. Achromatic colors get a hue and saturation of 0.
func ToHSL(r, g, b uint8) HSL {
	rf := float64(r) / 255
	gf := float64(g) / 255
	bf := float64(b) / 255

	maxC := math.Max(rf, math.Max(gf, bf))
	minC := math.Min(rf, math.Min(gf, bf))
	l := (maxC + minC) / 2

	if maxC == minC {
		return HSL{0, 0, l * 100}
	}

	d := maxC - minC
	var s float64
	if l > 0.5 {
		s = d / (2 - maxC - minC)
	} else {
		s = d / (maxC + minC)
	}

	var h float64
	switch maxC {
	case rf:
		h = (gf - bf) / d
		if gf < bf {
			h += 6
		}
	case gf:
		h = (bf-rf)/d + 2
	default:
		h = (rf-gf)/d + 4
	}
	h /= 6

	return HSL{h * 360, s * 100, l * 100}
}

// HSL returns c in HSL space.
func (c Color) HSL() HSL {
	return ToHSL(c.R, c.G, c.B)
}

// hue2rgb wraps t into [0,1] before interpolating between p and q.
func hue2rgb(p, q, t float64) float64 {
	if t < 0 {
		t++
	}
	if t > 1 {
		t--
	}
	switch {
	case t < 1.0/6:
		return p + (q-p)*6*t
	case t < 1.0/2:
		return q
	case t < 2.0/3:
		return p + (q-p)*(2.0/3-t)*6
	}
	return p
}

// FromHSL converts an HSL triple back to RGB, rounding each channel.
func FromHSL(h, s, l float64) Color {
	h /= 360
	s /= 100
	l /= 100

	var r, g, b float64
	if s == 0 {
		r, g, b = l, l, l
	} else {
		var q float64
		if l < 0.5 {
			q = l * (1 + s)
		} else {
			q = l + s - l*s
		}
		p := 2*l - q
		r = hue2rgb(p, q, h+1.0/3)
		g = hue2rgb(p, q, h)
		b = hue2rgb(p, q, h-1.0/3)
	}
	return Color{round8(r * 255), round8(g * 255), round8(b * 255)}
}

// Color converts h back to RGB.
func (h HSL) Color() Color {
	return FromHSL(h.H, h.S, h.L)
}

// round8 rounds half up, like the rest of the package, and clamps to a byte.
func round8(v float64) uint8 {
	v = math.Floor(v + 0.5)
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// Distance is the Euclidean distance between a and b in RGB space.
func Distance(a, b Color) float64 {
	dr := float64(a.R) - float64(b.R)
	dg := float64(a.G) - float64(b.G)
	db := float64(a.B) - float64(b.B)
	return math.Sqrt(dr*dr + dg*dg + db*db)
}

// Luminance is the perceptual (Rec. 601) brightness of c, in [0,255].
// It is computed on gamma-encoded values, not linear light.
func Luminance(c Color) float64 {
	return 0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)
}

// Saturation is (max-min)/max over the normalized channels. Black has 0 saturation.
func Saturation(c Color) float64 {
	maxC := math.Max(float64(c.R), math.Max(float64(c.G), float64(c.B))) / 255
	minC := math.Min(float64(c.R), math.Min(float64(c.G), float64(c.B))) / 255
	if maxC == 0 {
		return 0
	}
	return (maxC - minC) / maxC
}

// Hue returns the HSL hue of c, in degrees.
func Hue(c Color) float64 {
	return c.HSL().H
}

// HueDistance is the circular distance between two hues, always in [0,180].
func HueDistance(h1, h2 float64) float64 {
	diff := math.Abs(h1 - h2)
	return math.Min(diff, 360-diff)
}
