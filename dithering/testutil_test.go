package dithering

import (
	"testing"

	"github.com/makeworld-the-better-one/paletteshift/palette"
	"github.com/makeworld-the-better-one/paletteshift/pixbuf"
)

var (
	black     = palette.Color{}
	white     = palette.Color{R: 255, G: 255, B: 255}
	bwPalette = palette.Palette{black, white}
)

// gradientBuffer is an opaque grayscale ramp running through every pixel
// in raster order.
func gradientBuffer(width, height int) *pixbuf.Buffer {
	b := pixbuf.New(width, height)
	n := width * height
	for i := 0; i < n; i++ {
		v := uint8(i * 255 / n)
		b.Pix[i*4] = v
		b.Pix[i*4+1] = v
		b.Pix[i*4+2] = v
		b.Pix[i*4+3] = 255
	}
	return b
}

// grayBuffer is an opaque buffer of a single gray.
func grayBuffer(width, height int, v uint8) *pixbuf.Buffer {
	b := pixbuf.New(width, height)
	for i := 0; i < len(b.Pix); i += 4 {
		b.Pix[i], b.Pix[i+1], b.Pix[i+2], b.Pix[i+3] = v, v, v, 255
	}
	return b
}

// checkRows compares b pixel by pixel against rows of colors.
func checkRows(t *testing.T, b *pixbuf.Buffer, rows [][]palette.Color) {
	t.Helper()
	for y, row := range rows {
		for x, want := range row {
			if got := b.ColorAt(b.Offset(x, y)); got != want {
				t.Errorf("(%d,%d): expected %v, got %v", x, y, want, got)
			}
		}
	}
}

// patternBuffer is an opaque buffer with colors that vary on every channel.
func patternBuffer(width, height int) *pixbuf.Buffer {
	b := pixbuf.New(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			i := b.Offset(x, y)
			b.Pix[i] = uint8((x*37 + y*11) % 256)
			b.Pix[i+1] = uint8((x*5 + y*53) % 256)
			b.Pix[i+2] = uint8((x*x + y*29) % 256)
			b.Pix[i+3] = 255
		}
	}
	return b
}

func colorSet(b *pixbuf.Buffer) map[palette.Color]bool {
	set := make(map[palette.Color]bool)
	for i := 0; i < len(b.Pix); i += 4 {
		if b.OpaqueAt(i) {
			set[b.ColorAt(i)] = true
		}
	}
	return set
}

func equalPix(a, b *pixbuf.Buffer) bool {
	if len(a.Pix) != len(b.Pix) {
		return false
	}
	for i := range a.Pix {
		if a.Pix[i] != b.Pix[i] {
			return false
		}
	}
	return true
}
