package palette

import (
	"reflect"
	"strings"
	"testing"
)

func TestParseHexColors(t *testing.T) {
	got := ParseHexColors("#ff0000\n\ninvalid\n#00ff00")
	want := Palette{{255, 0, 0}, {0, 255, 0}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestParseHexColorsWhitespaceAndJunk(t *testing.T) {
	text := "  #ff0000  \r\nnot-a-color\n#00FF00\nff00ff\n#12345\n  #0000ff"
	got := ParseHexColors(text)
	want := Palette{{255, 0, 0}, {0, 255, 0}, {0, 0, 255}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestParseHexColorsEmpty(t *testing.T) {
	for _, text := range []string{"", "no colors here", "\n\n"} {
		p := ParseHexColors(text)
		if len(p) != 0 {
			t.Errorf("%q: expected an empty palette, got %v", text, p)
		}
		if p.Validate() != ErrEmptyPalette {
			t.Errorf("%q: expected ErrEmptyPalette", text)
		}
	}
}

func TestReadHexColors(t *testing.T) {
	p, err := ReadHexColors(strings.NewReader("#000000\n#ffffff\n"))
	if err != nil {
		t.Fatal(err)
	}
	if len(p) != 2 || p[1] != (Color{255, 255, 255}) {
		t.Errorf("Unexpected palette %v", p)
	}
}

func TestPaletteKeepsDuplicates(t *testing.T) {
	p := ParseHexColors("#ffffff\n#ffffff")
	if len(p) != 2 {
		t.Errorf("Expected duplicates to be kept, got %v", p)
	}
}

func TestSimilar(t *testing.T) {
	p := Palette{{255, 0, 0}, {0, 0, 255}, {128, 128, 128}}
	sims := Similar(p, 6)
	if len(sims) != 6 {
		t.Fatalf("Expected 6 palettes, got %d", len(sims))
	}
	for i, sp := range sims {
		if len(sp) != len(p) {
			t.Errorf("Palette %d: expected %d colors, got %d", i, len(p), len(sp))
		}
	}

	if h := sims[0][0].HSL().H; h < 29 || h > 31 {
		t.Errorf("Expected red shifted to hue 30, got %v", h)
	}
	if h := sims[5][0].HSL().H; h < 179 || h > 181 {
		t.Errorf("Expected red shifted to hue 180, got %v", h)
	}
	// A gray has no hue, so only the saturation nudge applies.
	if hsl := sims[0][2].HSL(); hsl.S < 9 || hsl.S > 11 {
		t.Errorf("Expected saturation near 10, got %v", hsl.S)
	}
}

func TestColorsRoundTrip(t *testing.T) {
	p := Palette{{1, 2, 3}, {250, 251, 252}}
	if got := FromColors(p.Colors()); !reflect.DeepEqual(got, p) {
		t.Errorf("Expected %v, got %v", p, got)
	}
}
