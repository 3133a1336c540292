package dithering

import (
	"github.com/makeworld-the-better-one/paletteshift/match"
	"github.com/makeworld-the-better-one/paletteshift/palette"
	"github.com/makeworld-the-better-one/paletteshift/pixbuf"
)

// BlueNoiseSize is the width and height of the noise tile.
const BlueNoiseSize = 64

// blueNoise is not true blue noise, only a fixed integer hash of the
// position that is decorrelated enough to dither with. It's built once and
// only read afterwards, so it's safe for concurrent use.
var blueNoise = newBlueNoiseTile()

func newBlueNoiseTile() []float64 {
	tile := make([]float64, BlueNoiseSize*BlueNoiseSize)
	for i := range tile {
		x := uint32(i % BlueNoiseSize)
		y := uint32(i / BlueNoiseSize)
		// uint32 arithmetic wraps, keeping the low 32 bits of the hash
		v := x*2654435761 + y*2246822519 + uint32(i)*3266489917
		tile[i] = float64(v) / 4294967296
	}
	return tile
}

// BlueNoiseAt returns the tile value in [0,1) at x, y. Coordinates outside
// the tile wrap around. x and y must not be negative.
func BlueNoiseAt(x, y int) float64 {
	return blueNoise[(y%BlueNoiseSize)*BlueNoiseSize+x%BlueNoiseSize]
}

// BlueNoiseThreshold offsets value by the threshold, centered on 0.5,
// and clamps the result to [0,255].
func BlueNoiseThreshold(value, threshold, intensity float64) float64 {
	v := value + (threshold-0.5)*64*intensity
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}

// BlueNoiseDither works like OrderedDither, but takes its thresholds from
// the noise tile, which shows less of a regular pattern.
//
// As with OrderedDither, the thresholded channels are rounded half to even
// before matching. A channel landing exactly between two palette colors
// can therefore go either way, where an unrounded match would take the
// earlier palette entry.
func BlueNoiseDither(buf *pixbuf.Buffer, p palette.Palette, s match.Strategy, intensity float64) *pixbuf.Buffer {
	out := buf.Clone()
	for y := 0; y < out.Height; y++ {
		for x := 0; x < out.Width; x++ {
			i := out.Offset(x, y)
			if !out.OpaqueAt(i) {
				continue
			}
			t := BlueNoiseAt(x, y)
			c := out.ColorAt(i)
			dithered := palette.Color{
				R: clampRound(BlueNoiseThreshold(float64(c.R), t, intensity)),
				G: clampRound(BlueNoiseThreshold(float64(c.G), t, intensity)),
				B: clampRound(BlueNoiseThreshold(float64(c.B), t, intensity)),
			}
			out.SetColorAt(i, s.Closest(dithered, p))
		}
	}
	return out
}
