package palette

import (
	"math"
	"testing"
)

func TestHexRoundTrip(t *testing.T) {
	for r := 0; r < 256; r += 17 {
		for g := 0; g < 256; g += 51 {
			for b := 0; b < 256; b += 5 {
				c := Color{uint8(r), uint8(g), uint8(b)}
				got, err := ParseHex(c.Hex())
				if err != nil {
					t.Fatalf("ParseHex(%q): %v", c.Hex(), err)
				}
				if got != c {
					t.Errorf("Expected %v, got %v", c, got)
				}
			}
		}
	}
}

func TestParseHex(t *testing.T) {
	tests := []struct {
		in   string
		want Color
		ok   bool
	}{
		{"#ff0000", Color{255, 0, 0}, true},
		{"00ff00", Color{0, 255, 0}, true},
		{"#0A0B0C", Color{10, 11, 12}, true},
		{"#fff", Color{}, false},
		{"#ff00000", Color{}, false},
		{"#gg0000", Color{}, false},
		{"", Color{}, false},
	}
	for _, tt := range tests {
		got, err := ParseHex(tt.in)
		if tt.ok && err != nil {
			t.Errorf("%q: unexpected error %v", tt.in, err)
			continue
		}
		if !tt.ok {
			if err == nil {
				t.Errorf("%q: expected an error", tt.in)
			}
			continue
		}
		if got != tt.want {
			t.Errorf("%q: expected %v, got %v", tt.in, tt.want, got)
		}
	}
}

func TestHexPadsSingleDigits(t *testing.T) {
	if got := (Color{1, 2, 3}).Hex(); got != "#010203" {
		t.Errorf("Expected #010203, got %s", got)
	}
}

func TestHSLRoundTrip(t *testing.T) {
	for r := 0; r < 256; r += 15 {
		for g := 0; g < 256; g += 15 {
			for b := 0; b < 256; b += 15 {
				c := Color{uint8(r), uint8(g), uint8(b)}
				back := c.HSL().Color()
				if absDiff(c.R, back.R) > 1 || absDiff(c.G, back.G) > 1 || absDiff(c.B, back.B) > 1 {
					t.Errorf("Round trip of %v gave %v", c, back)
				}
			}
		}
	}
}

func TestToHSLPrimaries(t *testing.T) {
	tests := []struct {
		c Color
		h float64
	}{
		{Color{255, 0, 0}, 0},
		{Color{0, 255, 0}, 120},
		{Color{0, 0, 255}, 240},
	}
	for _, tt := range tests {
		hsl := tt.c.HSL()
		if math.Abs(hsl.H-tt.h) > 1e-9 {
			t.Errorf("%v: expected hue %v, got %v", tt.c, tt.h, hsl.H)
		}
		if math.Abs(hsl.S-100) > 1e-9 || math.Abs(hsl.L-50) > 1e-9 {
			t.Errorf("%v: expected s=100 l=50, got %+v", tt.c, hsl)
		}
	}

	gray := ToHSL(128, 128, 128)
	if gray.H != 0 || gray.S != 0 {
		t.Errorf("Expected achromatic gray, got %+v", gray)
	}
}

func TestDistance(t *testing.T) {
	a := Color{10, 20, 30}
	b := Color{13, 24, 30}
	if d := Distance(a, a); d != 0 {
		t.Errorf("Expected 0, got %v", d)
	}
	if Distance(a, b) != Distance(b, a) {
		t.Error("Distance should be symmetric")
	}
	if d := Distance(a, b); d != 5 {
		t.Errorf("Expected 5, got %v", d)
	}
	maxD := Distance(Color{}, Color{255, 255, 255})
	if math.Abs(maxD-math.Sqrt(255*255*3)) > 1e-9 {
		t.Errorf("Unexpected max distance %v", maxD)
	}
}

func TestLuminanceAndSaturation(t *testing.T) {
	if l := Luminance(Color{}); l != 0 {
		t.Errorf("Expected 0 for black, got %v", l)
	}
	if l := Luminance(Color{255, 255, 255}); math.Abs(l-255) > 1e-9 {
		t.Errorf("Expected 255 for white, got %v", l)
	}
	if Luminance(Color{0, 255, 0}) <= Luminance(Color{255, 0, 0}) {
		t.Error("Green should be brighter than red")
	}
	if s := Saturation(Color{}); s != 0 {
		t.Errorf("Expected 0 for black, got %v", s)
	}
	if s := Saturation(Color{90, 90, 90}); s != 0 {
		t.Errorf("Expected 0 for gray, got %v", s)
	}
	if s := Saturation(Color{0, 0, 200}); s != 1 {
		t.Errorf("Expected 1 for a pure color, got %v", s)
	}
}

func TestHueDistance(t *testing.T) {
	tests := []struct{ a, b, want float64 }{
		{42, 42, 0},
		{0, 180, 180},
		{10, 350, 20},
		{350, 10, 20},
		{90, 300, 150},
	}
	for _, tt := range tests {
		if got := HueDistance(tt.a, tt.b); got != tt.want {
			t.Errorf("HueDistance(%v, %v): expected %v, got %v", tt.a, tt.b, tt.want, got)
		}
	}
}

func absDiff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}
