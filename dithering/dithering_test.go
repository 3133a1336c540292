package dithering

import (
	"testing"

	"github.com/makeworld-the-better-one/paletteshift/match"
	"github.com/makeworld-the-better-one/paletteshift/palette"
	"github.com/makeworld-the-better-one/paletteshift/pixbuf"
)

func TestOutputOnlyUsesPalette(t *testing.T) {
	p := palette.Palette{black, white, {R: 200, G: 30, B: 30}, {R: 20, G: 90, B: 200}, {R: 240, G: 220, B: 0}}
	buf := patternBuffer(20, 15)
	for _, method := range Methods {
		for _, s := range match.Strategies {
			out := Apply(buf, p, s, method, DefaultOptions())
			for c := range colorSet(out) {
				if !p.Contains(c) {
					t.Errorf("%v/%v: color %v not in palette", method, s, c)
				}
			}
		}
	}
}

func TestTransparentPixelsUntouched(t *testing.T) {
	buf := gradientBuffer(6, 6)
	transparent := []int{0, 7, 14, 20, 35}
	for _, px := range transparent {
		buf.Pix[px*4] = 77
		buf.Pix[px*4+3] = uint8(px * 3) // all below the threshold
	}
	buf.Pix[7*4+3] = 127

	for _, method := range Methods {
		out := Apply(buf, bwPalette, match.Standard, method, Options{Intensity: 2, BayerSize: 2})
		for _, px := range transparent {
			for k := 0; k < 4; k++ {
				if out.Pix[px*4+k] != buf.Pix[px*4+k] {
					t.Errorf("%v: transparent pixel %d byte %d changed", method, px, k)
				}
			}
		}
	}
}

func TestInputNotModified(t *testing.T) {
	buf := patternBuffer(9, 9)
	before := buf.Clone()
	for _, method := range Methods {
		out := Apply(buf, bwPalette, match.Hue, method, DefaultOptions())
		if out.Width != buf.Width || out.Height != buf.Height || len(out.Pix) != len(buf.Pix) {
			t.Errorf("%v: dimensions changed", method)
		}
		if !equalPix(buf, before) {
			t.Fatalf("%v: input buffer was modified", method)
		}
	}
}

func TestFloydSteinbergMixesGradient(t *testing.T) {
	out := FloydSteinbergDither(gradientBuffer(4, 4), bwPalette, match.Standard, 1)
	set := colorSet(out)
	if !set[black] || !set[white] {
		t.Errorf("Expected both black and white, got %v", set)
	}
}

func TestFloydSteinbergDiffersFromQuantize(t *testing.T) {
	buf := gradientBuffer(32, 32)
	dithered := FloydSteinbergDither(buf, bwPalette, match.Standard, 1)
	plain := Quantize(buf, bwPalette, match.Standard)
	if equalPix(dithered, plain) {
		t.Error("Expected dithered output to differ from plain quantization")
	}
}

func TestFloydSteinbergWeights(t *testing.T) {
	// Row 0 carries 100 -> 144 -> 51, row 1 gets 110, 129 and 54
	out := FloydSteinbergDither(grayBuffer(3, 2, 100), bwPalette, match.Standard, 1)
	checkRows(t, out, [][]palette.Color{
		{black, white, black},
		{black, white, black},
	})
}

func TestFloydSteinbergSkipsTransparentNeighbor(t *testing.T) {
	buf := grayBuffer(3, 2, 100)
	hole := buf.Offset(0, 1)
	buf.Pix[hole+3] = 0

	// The hole is the bottom neighbor of (0,0) and the bottom-left of (1,0).
	// Without its error, (1,1) only reaches 81 and (2,1) picks up the rest.
	out := FloydSteinbergDither(buf, bwPalette, match.Standard, 1)
	checkRows(t, out, [][]palette.Color{
		{black, white, black},
	})
	for k := 0; k < 4; k++ {
		if out.Pix[hole+k] != buf.Pix[hole+k] {
			t.Errorf("Transparent pixel byte %d changed from %d to %d", k, buf.Pix[hole+k], out.Pix[hole+k])
		}
	}
	if got := out.ColorAt(out.Offset(1, 1)); got != black {
		t.Errorf("(1,1): expected black, got %v", got)
	}
	if got := out.ColorAt(out.Offset(2, 1)); got != white {
		t.Errorf("(2,1): expected white, got %v", got)
	}
}

func TestZeroIntensityIsQuantize(t *testing.T) {
	buf := patternBuffer(16, 16)
	p := palette.Palette{black, white, {R: 255}, {G: 255}, {B: 255}}
	plain := Quantize(buf, p, match.Standard)
	for _, method := range []Method{FloydSteinberg, Ordered, Atkinson, BlueNoise} {
		out := Apply(buf, p, match.Standard, method, Options{Intensity: 0, BayerSize: 4})
		if !equalPix(out, plain) {
			t.Errorf("%v: expected zero intensity to match plain quantization", method)
		}
	}
}

func TestAtkinsonReachesTwoAhead(t *testing.T) {
	// 120 quantizes to black, leaving an error of 120. Atkinson hands 15 to
	// the pixel two to the right, lifting 120 to 135 which is closer to white.
	buf := pixbuf.New(3, 1)
	for x, v := range []uint8{120, 0, 120} {
		i := buf.Offset(x, 0)
		buf.SetColorAt(i, palette.Color{R: v, G: v, B: v})
		buf.Pix[i+3] = 255
	}
	buf.Pix[buf.Offset(1, 0)+3] = 0
	out := AtkinsonDither(buf, bwPalette, match.Standard, 1)
	if got := out.ColorAt(out.Offset(2, 0)); got != white {
		t.Errorf("Expected white, got %v", got)
	}

	// Floyd-Steinberg only reaches the direct neighbor, which is transparent.
	out = FloydSteinbergDither(buf, bwPalette, match.Standard, 1)
	if got := out.ColorAt(out.Offset(2, 0)); got != black {
		t.Errorf("Expected black, got %v", got)
	}
}

func TestParseMethod(t *testing.T) {
	for _, m := range Methods {
		got, err := ParseMethod(m.String())
		if err != nil || got != m {
			t.Errorf("%v: got %v, %v", m, got, err)
		}
	}
	if m, _ := ParseMethod("bayer"); m != Ordered {
		t.Errorf("Expected bayer to parse as ordered, got %v", m)
	}
	if _, err := ParseMethod("riemersma"); err == nil {
		t.Error("Expected an error for an unknown method")
	}
}
