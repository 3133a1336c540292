package palette

import (
	"bufio"
	"errors"
	"fmt"
	"image/color"
	"io"
	"math"
	"regexp"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ErrEmptyPalette is returned by Validate for a palette with no colors.
// Matching against an empty palette is undefined, so callers check first.
var ErrEmptyPalette = errors.New("palette has no colors")

// Palette is an ordered list of colors. Duplicates are allowed and kept.
type Palette []Color

// Validate returns ErrEmptyPalette if p has no colors.
func (p Palette) Validate() error {
	if len(p) == 0 {
		return ErrEmptyPalette
	}
	return nil
}

// Colors returns p as a slice of color.Color, for the image/* packages.
func (p Palette) Colors() []color.Color {
	cs := make([]color.Color, len(p))
	for i, c := range p {
		cs[i] = c.NRGBA()
	}
	return cs
}

// FromColors converts a slice of color.Color into a Palette, dropping alpha.
func FromColors(cs []color.Color) Palette {
	p := make(Palette, len(cs))
	for i, c := range cs {
		p[i] = FromColor(c)
	}
	return p
}

// Contains reports whether c is in p.
func (p Palette) Contains(c Color) bool {
	for _, pc := range p {
		if pc == c {
			return true
		}
	}
	return false
}

// String formats p as space-separated hex codes.
func (p Palette) String() string {
	hexes := make([]string, len(p))
	for i, c := range p {
		hexes[i] = c.Hex()
	}
	return strings.Join(hexes, " ")
}

var hexPattern = regexp.MustCompile(`^#?[0-9a-fA-F]{6}$`)

// ParseHex parses a 6-digit hex color, with or without the leading '#'.
// It is case-insensitive.
func ParseHex(hex string) (Color, error) {
	if !hexPattern.MatchString(hex) {
		return Color{}, fmt.Errorf("%s is not a hex color", hex)
	}
	c, err := colorful.Hex("#" + strings.ToLower(strings.TrimPrefix(hex, "#")))
	if err != nil {
		return Color{}, fmt.Errorf("%s is not a hex color: %w", hex, err)
	}
	r, g, b := c.RGB255()
	return Color{r, g, b}, nil
}

// Hex formats c as a lowercase "#rrggbb" string.
func (c Color) Hex() string {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}.Hex()
}

// String implements fmt.Stringer.
func (c Color) String() string {
	return c.Hex()
}

// ParseHexColors reads one color per line. Lines are trimmed, and only lines
// starting with '#' that hold a valid 6-digit hex code are kept. Everything
// else is skipped silently, so a file with no valid lines gives an empty palette.
func ParseHexColors(text string) Palette {
	p := make(Palette, 0)
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "#") {
			continue
		}
		c, err := ParseHex(line)
		if err != nil {
			continue
		}
		p = append(p, c)
	}
	return p
}

// ReadHexColors is like ParseHexColors but reads from r.
// Only I/O errors are returned.
func ReadHexColors(r io.Reader) (Palette, error) {
	var sb strings.Builder
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		sb.WriteString(sc.Text())
		sb.WriteByte('\n')
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading palette: %w", err)
	}
	return ParseHexColors(sb.String()), nil
}

// Similar derives count palettes from p by rotating every hue in 30° steps.
// The first three also nudge saturation by ±10; later ones nudge saturation
// by ±15 and lightness by ±5 for a more dramatic shift.
func Similar(p Palette, count int) []Palette {
	palettes := make([]Palette, 0, count)
	for i := 0; i < count; i++ {
		shift := float64(i+1) * 30
		np := make(Palette, len(p))
		for j, c := range p {
			hsl := c.HSL()
			hsl.H = math.Mod(hsl.H+shift, 360)
			if i < 3 {
				if i%2 == 0 {
					hsl.S = clamp100(hsl.S + 10)
				} else {
					hsl.S = clamp100(hsl.S - 10)
				}
			} else {
				if i%2 == 0 {
					hsl.S = clamp100(hsl.S + 15)
				} else {
					hsl.S = clamp100(hsl.S - 15)
				}
				if i%3 == 0 {
					hsl.L = clamp100(hsl.L + 5)
				} else {
					hsl.L = clamp100(hsl.L - 5)
				}
			}
			np[j] = hsl.Color()
		}
		palettes = append(palettes, np)
	}
	return palettes
}

func clamp100(v float64) float64 {
	return math.Max(0, math.Min(100, v))
}
