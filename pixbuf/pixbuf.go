// Package pixbuf defines the plain pixel buffer every transform operates on:
// a flat, row-major RGBA byte slice plus its dimensions. It is deliberately
// plain data so it can be handed between goroutines or serialized as-is.
package pixbuf

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"sort"

	"github.com/makeworld-the-better-one/paletteshift/palette"
)

// AlphaThreshold is the alpha below which a pixel is treated as transparent.
// Transparent pixels are never rewritten and never take part in error diffusion.
const AlphaThreshold = 128

// ErrBadDimensions is returned by Validate when the pixel slice doesn't match
// the width and height.
var ErrBadDimensions = errors.New("pixel data length doesn't match dimensions")

// Buffer is a width x height grid of non-premultiplied RGBA pixels,
// 4 bytes per pixel, in row-major order.
type Buffer struct {
	Pix    []uint8
	Width  int
	Height int
}

// New returns a zeroed (fully transparent) buffer.
func New(width, height int) *Buffer {
	return &Buffer{
		Pix:    make([]uint8, width*height*4),
		Width:  width,
		Height: height,
	}
}

// Validate checks the length invariant. The transforms themselves don't,
// so this should be called on any buffer built from outside data.
func (b *Buffer) Validate() error {
	if b.Width < 0 || b.Height < 0 || len(b.Pix) != b.Width*b.Height*4 {
		return fmt.Errorf("%w: %d bytes for %dx%d", ErrBadDimensions, len(b.Pix), b.Width, b.Height)
	}
	return nil
}

// Clone returns a deep copy of b.
func (b *Buffer) Clone() *Buffer {
	pix := make([]uint8, len(b.Pix))
	copy(pix, b.Pix)
	return &Buffer{Pix: pix, Width: b.Width, Height: b.Height}
}

// Offset returns the index of the first byte of the pixel at x, y.
func (b *Buffer) Offset(x, y int) int {
	return (y*b.Width + x) * 4
}

// In reports whether x, y is inside the buffer.
func (b *Buffer) In(x, y int) bool {
	return x >= 0 && y >= 0 && x < b.Width && y < b.Height
}

// OpaqueAt reports whether the pixel starting at byte offset i is opaque
// enough to be processed.
func (b *Buffer) OpaqueAt(i int) bool {
	return b.Pix[i+3] >= AlphaThreshold
}

// ColorAt returns the RGB of the pixel starting at byte offset i.
func (b *Buffer) ColorAt(i int) palette.Color {
	return palette.Color{R: b.Pix[i], G: b.Pix[i+1], B: b.Pix[i+2]}
}

// SetColorAt overwrites the RGB of the pixel at byte offset i, leaving alpha alone.
func (b *Buffer) SetColorAt(i int, c palette.Color) {
	b.Pix[i] = c.R
	b.Pix[i+1] = c.G
	b.Pix[i+2] = c.B
}

// UniqueColors returns every distinct RGB among the opaque pixels, with how
// many times each occurs. Most frequent colors come first; ties keep the
// order in which the colors first appear.
func (b *Buffer) UniqueColors() []palette.ColorCount {
	index := make(map[uint32]int)
	counts := make([]palette.ColorCount, 0)
	for i := 0; i < len(b.Pix); i += 4 {
		if !b.OpaqueAt(i) {
			continue
		}
		c := b.ColorAt(i)
		if j, ok := index[c.Key()]; ok {
			counts[j].Count++
			continue
		}
		index[c.Key()] = len(counts)
		counts = append(counts, palette.ColorCount{Color: c, Count: 1})
	}
	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})
	return counts
}

// FromImage copies any image into a new buffer.
func FromImage(img image.Image) *Buffer {
	bounds := img.Bounds()
	nrgba := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(nrgba, nrgba.Bounds(), img, bounds.Min, draw.Src)
	return fromNRGBA(nrgba)
}

func fromNRGBA(img *image.NRGBA) *Buffer {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	if img.Stride == w*4 {
		return &Buffer{Pix: img.Pix[:w*h*4], Width: w, Height: h}
	}
	b := New(w, h)
	for y := 0; y < h; y++ {
		copy(b.Pix[y*w*4:(y+1)*w*4], img.Pix[y*img.Stride:y*img.Stride+w*4])
	}
	return b
}

// Image returns an *image.NRGBA view sharing b's pixels.
func (b *Buffer) Image() *image.NRGBA {
	return &image.NRGBA{
		Pix:    b.Pix,
		Stride: b.Width * 4,
		Rect:   image.Rect(0, 0, b.Width, b.Height),
	}
}
