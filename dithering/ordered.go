package dithering

import (
	"github.com/makeworld-the-better-one/paletteshift/match"
	"github.com/makeworld-the-better-one/paletteshift/palette"
	"github.com/makeworld-the-better-one/paletteshift/pixbuf"
)

var (
	bayer2x2 = [][]int{
		{0, 2},
		{3, 1},
	}

	bayer4x4 = [][]int{
		{0, 8, 2, 10},
		{12, 4, 14, 6},
		{3, 11, 1, 9},
		{15, 7, 13, 5},
	}

	bayer8x8 = [][]int{
		{0, 32, 8, 40, 2, 34, 10, 42},
		{48, 16, 56, 24, 50, 18, 58, 26},
		{12, 44, 4, 36, 14, 46, 6, 38},
		{60, 28, 52, 20, 62, 30, 54, 22},
		{3, 35, 11, 43, 1, 33, 9, 41},
		{51, 19, 59, 27, 49, 17, 57, 25},
		{15, 47, 7, 39, 13, 45, 5, 37},
		{63, 31, 55, 23, 61, 29, 53, 21},
	}
)

// bayerMatrix returns the threshold matrix for size and its divisor.
func bayerMatrix(size int) ([][]int, float64) {
	switch size {
	case 2:
		return bayer2x2, 4
	case 8:
		return bayer8x8, 64
	}
	return bayer4x4, 16
}

// OrderedDither offsets each opaque pixel by a threshold taken from a Bayer
// matrix tiled over the image, then matches the offset color. Nothing is
// carried between pixels, so the output for a pixel depends only on its
// position and value.
//
// The offset channels are rounded half to even into a color before
// matching, since the strategies work on byte colors. At intensity 1 every
// Bayer offset is a whole number, so only other intensities are affected.
func OrderedDither(buf *pixbuf.Buffer, p palette.Palette, s match.Strategy, size int, intensity float64) *pixbuf.Buffer {
	matrix, div := bayerMatrix(size)
	n := len(matrix)

	out := buf.Clone()
	for y := 0; y < out.Height; y++ {
		row := matrix[y%n]
		for x := 0; x < out.Width; x++ {
			i := out.Offset(x, y)
			if !out.OpaqueAt(i) {
				continue
			}
			threshold := (float64(row[x%n])/div - 0.5) * 64 * intensity
			out.SetColorAt(i, s.Closest(offset(out.ColorAt(i), threshold), p))
		}
	}
	return out
}
