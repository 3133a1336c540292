package pixbuf

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/makeworld-the-better-one/paletteshift/palette"
)

func TestValidate(t *testing.T) {
	if err := New(3, 2).Validate(); err != nil {
		t.Errorf("Expected valid buffer, got %v", err)
	}
	bad := &Buffer{Pix: make([]uint8, 10), Width: 2, Height: 2}
	if err := bad.Validate(); !errors.Is(err, ErrBadDimensions) {
		t.Errorf("Expected ErrBadDimensions, got %v", err)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	b := New(2, 2)
	b.Pix[0] = 200
	c := b.Clone()
	c.Pix[0] = 1
	if b.Pix[0] != 200 {
		t.Error("Modifying clone should not affect original")
	}
}

func TestImageRoundTrip(t *testing.T) {
	src := image.NewRGBA(image.Rect(5, 5, 8, 7))
	src.Set(5, 5, color.RGBA{255, 0, 0, 255})
	src.Set(7, 6, color.RGBA{0, 0, 0, 0})
	src.Set(6, 6, color.RGBA{10, 20, 30, 255})

	b := FromImage(src)
	if b.Width != 3 || b.Height != 2 {
		t.Fatalf("Expected 3x2, got %dx%d", b.Width, b.Height)
	}
	if err := b.Validate(); err != nil {
		t.Fatal(err)
	}
	if got := b.ColorAt(b.Offset(0, 0)); got != (palette.Color{R: 255}) {
		t.Errorf("Expected red, got %v", got)
	}
	if b.OpaqueAt(b.Offset(2, 1)) {
		t.Error("Expected transparent pixel")
	}

	img := b.Image()
	if got := img.NRGBAAt(1, 1); got != (color.NRGBA{10, 20, 30, 255}) {
		t.Errorf("Expected {10 20 30 255}, got %v", got)
	}
}

func TestUniqueColors(t *testing.T) {
	b := New(5, 1)
	set := func(x int, c palette.Color, a uint8) {
		i := b.Offset(x, 0)
		b.SetColorAt(i, c)
		b.Pix[i+3] = a
	}
	red := palette.Color{R: 255}
	green := palette.Color{G: 255}
	set(0, green, 255)
	set(1, red, 255)
	set(2, red, 255)
	set(3, palette.Color{B: 255}, 100) // transparent, ignored
	set(4, green, 255)

	got := b.UniqueColors()
	if len(got) != 2 {
		t.Fatalf("Expected 2 colors, got %v", got)
	}
	// Equal counts keep first-appearance order.
	if got[0].Color != green || got[0].Count != 2 || got[1].Color != red || got[1].Count != 2 {
		t.Errorf("Unexpected counts %v", got)
	}
}
