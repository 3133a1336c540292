package match

import (
	"testing"

	"github.com/makeworld-the-better-one/paletteshift/palette"
)

var (
	black = palette.Color{}
	white = palette.Color{R: 255, G: 255, B: 255}
	red   = palette.Color{R: 255}
	green = palette.Color{G: 255}
	blue  = palette.Color{B: 255}
	gray  = palette.Color{R: 128, G: 128, B: 128}
)

func TestExactColorMatchesItself(t *testing.T) {
	p := palette.Palette{black, white, red, green, blue, gray}
	for _, c := range p {
		if got := Standard.Closest(c, p); got != c {
			t.Errorf("Expected %v, got %v", c, got)
		}
	}
}

func TestStandard(t *testing.T) {
	p := palette.Palette{black, white, red}
	if got := Standard.Closest(palette.Color{R: 200, G: 30, B: 20}, p); got != red {
		t.Errorf("Expected red, got %v", got)
	}
	if got := Standard.Closest(palette.Color{R: 20, G: 20, B: 20}, palette.Palette{gray}); got != gray {
		t.Errorf("Single entry palette should always match, got %v", got)
	}
}

func TestTieKeepsFirst(t *testing.T) {
	a := palette.Color{R: 10}
	b := palette.Color{B: 10}
	p := palette.Palette{a, b}
	if i := Standard.ClosestIndex(palette.Color{}, p); i != 0 {
		t.Errorf("Expected index 0, got %d", i)
	}
	// Same color twice: the first copy is picked.
	if i := Luminosity.ClosestIndex(red, palette.Palette{green, red, red}); i != 1 {
		t.Errorf("Expected index 1, got %d", i)
	}
}

func TestLuminosity(t *testing.T) {
	p := palette.Palette{black, gray, white}
	if got := Luminosity.Closest(palette.Color{R: 250, G: 250, B: 240}, p); got != white {
		t.Errorf("Expected white, got %v", got)
	}
	// Pure green has luminance ~150, closest to mid gray.
	if got := Luminosity.Closest(green, p); got != gray {
		t.Errorf("Expected gray, got %v", got)
	}
}

func TestInvertedLuminosity(t *testing.T) {
	p := palette.Palette{black, white}
	if got := InvertedLuminosity.Closest(palette.Color{R: 10, G: 10, B: 10}, p); got != white {
		t.Errorf("Expected dark to map to white, got %v", got)
	}
	if got := InvertedLuminosity.Closest(palette.Color{R: 240, G: 240, B: 240}, p); got != black {
		t.Errorf("Expected bright to map to black, got %v", got)
	}
}

func TestHue(t *testing.T) {
	p := palette.Palette{red, green, blue}
	if got := Hue.Closest(palette.Color{R: 100, G: 200, B: 90}, p); got != green {
		t.Errorf("Expected green, got %v", got)
	}
	if got := Hue.Closest(palette.Color{R: 180, G: 20, B: 60}, p); got != red {
		t.Errorf("Expected red, got %v", got)
	}
}

func TestComplementaryHue(t *testing.T) {
	cyan := palette.Color{G: 255, B: 255}
	p := palette.Palette{red, cyan}
	if got := ComplementaryHue.Closest(red, p); got != cyan {
		t.Errorf("Expected red to map to cyan, got %v", got)
	}
	if got := ComplementaryHue.Closest(cyan, p); got != red {
		t.Errorf("Expected cyan to map to red, got %v", got)
	}
}

func TestSaturation(t *testing.T) {
	muted := palette.Color{R: 140, G: 120, B: 120}
	p := palette.Palette{red, muted}
	if got := Saturation.Closest(palette.Color{R: 130, G: 128, B: 125}, p); got != muted {
		t.Errorf("Expected muted, got %v", got)
	}
	if got := Saturation.Closest(palette.Color{R: 10, G: 200, B: 10}, p); got != red {
		t.Errorf("Expected vivid red, got %v", got)
	}
}

func TestParseStrategy(t *testing.T) {
	for _, s := range Strategies {
		got, err := ParseStrategy(s.String())
		if err != nil || got != s {
			t.Errorf("%v: got %v, %v", s, got, err)
		}
		if s.Title() == "" || s.Description() == "" {
			t.Errorf("%v: missing title or description", s)
		}
	}
	if _, err := ParseStrategy("nope"); err == nil {
		t.Error("Expected an error for an unknown strategy")
	}
	if s, _ := ParseStrategy("Standard"); s != Standard {
		t.Errorf("Expected Standard, got %v", s)
	}
}

func TestStrategiesOrder(t *testing.T) {
	want := []Strategy{Standard, Luminosity, Hue, Saturation, InvertedLuminosity, ComplementaryHue}
	if len(Strategies) != len(want) {
		t.Fatalf("Expected %d strategies, got %d", len(want), len(Strategies))
	}
	for i := range want {
		if Strategies[i] != want[i] {
			t.Errorf("Position %d: expected %v, got %v", i, want[i], Strategies[i])
		}
	}
}
