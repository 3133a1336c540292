package dithering

import (
	"github.com/makeworld-the-better-one/dither/v2"

	"github.com/makeworld-the-better-one/paletteshift/match"
	"github.com/makeworld-the-better-one/paletteshift/palette"
	"github.com/makeworld-the-better-one/paletteshift/pixbuf"
)

// FloydSteinbergDither diffuses 7/16, 3/16, 5/16 and 1/16 of each pixel's
// error to the right, bottom-left, bottom and bottom-right neighbors.
func FloydSteinbergDither(buf *pixbuf.Buffer, p palette.Palette, s match.Strategy, intensity float64) *pixbuf.Buffer {
	return ErrorDiffusion(buf, p, s, dither.FloydSteinberg, intensity)
}

// AtkinsonDither gives 1/8 of the error to each of six neighbors and drops
// the remaining quarter, which lightens the result and keeps highlights.
func AtkinsonDither(buf *pixbuf.Buffer, p palette.Palette, s match.Strategy, intensity float64) *pixbuf.Buffer {
	return ErrorDiffusion(buf, p, s, dither.Atkinson, intensity)
}

// ErrorDiffusion dithers buf with any error diffusion matrix, scanning left
// to right and top to bottom. Each opaque pixel is replaced by its match,
// and the difference is spread to the not yet visited neighbors given by
// edm, scaled by intensity. Error that would land outside the image or on a
// transparent pixel is dropped.
func ErrorDiffusion(buf *pixbuf.Buffer, p palette.Palette, s match.Strategy, edm dither.ErrorDiffusionMatrix, intensity float64) *pixbuf.Buffer {
	// The current pixel has to be found before scaling, since a zero
	// intensity would blank out the whole matrix
	cur := edm.CurrentPixel()
	edm = dither.ErrorDiffusionStrength(edm, float32(intensity))

	out := buf.Clone()
	for y := 0; y < out.Height; y++ {
		for x := 0; x < out.Width; x++ {
			i := out.Offset(x, y)
			if !out.OpaqueAt(i) {
				continue
			}

			old := out.ColorAt(i)
			c := s.Closest(old, p)
			er := float64(old.R) - float64(c.R)
			eg := float64(old.G) - float64(c.G)
			eb := float64(old.B) - float64(c.B)
			out.SetColorAt(i, c)

			for dy, row := range edm {
				for dx, w := range row {
					if w == 0 {
						continue
					}
					nx, ny := x+dx-cur, y+dy
					if !out.In(nx, ny) {
						continue
					}
					j := out.Offset(nx, ny)
					if !out.OpaqueAt(j) {
						continue
					}
					f := float64(w)
					out.Pix[j] = clampRound(float64(out.Pix[j]) + er*f)
					out.Pix[j+1] = clampRound(float64(out.Pix[j+1]) + eg*f)
					out.Pix[j+2] = clampRound(float64(out.Pix[j+2]) + eb*f)
				}
			}
		}
	}
	return out
}
