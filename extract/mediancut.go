package extract

import (
	"sort"

	"github.com/makeworld-the-better-one/paletteshift/palette"
	"github.com/makeworld-the-better-one/paletteshift/pixbuf"
)

// MedianCutPalette splits the opaque pixels of buf into k boxes and returns
// the average color of each box.
//
// Boxes keep splitting until there are k of them or a box holds one pixel,
// so colors may repeat. An image of a single color yields just that color.
func MedianCutPalette(buf *pixbuf.Buffer, k int) palette.Palette {
	pixels := opaquePixels(buf, 1)
	if len(pixels) == 0 || k <= 0 {
		return palette.Palette{}
	}
	if _, spread := widestChannel(pixels); spread == 0 {
		return palette.Palette{pixels[0]}
	}
	return medianCut(pixels, k)
}

func medianCut(pixels []palette.Color, k int) palette.Palette {
	if k == 1 || len(pixels) == 1 {
		return palette.Palette{meanColor(pixels)}
	}

	ch, _ := widestChannel(pixels)

	sort.SliceStable(pixels, func(i, j int) bool {
		return channel(pixels[i], ch) < channel(pixels[j], ch)
	})

	mid := len(pixels) / 2
	half := k / 2
	left := medianCut(pixels[:mid], half)
	right := medianCut(pixels[mid:], k-half)
	return append(left, right...)
}

// widestChannel returns which of R, G or B (0, 1, 2) has the largest range,
// and that range. Ties go to the earlier channel.
func widestChannel(pixels []palette.Color) (int, int) {
	var lo, hi [3]int
	for i := range lo {
		lo[i] = 255
	}
	for _, p := range pixels {
		for ch := 0; ch < 3; ch++ {
			v := channel(p, ch)
			if v < lo[ch] {
				lo[ch] = v
			}
			if v > hi[ch] {
				hi[ch] = v
			}
		}
	}
	best := 0
	for ch := 1; ch < 3; ch++ {
		if hi[ch]-lo[ch] > hi[best]-lo[best] {
			best = ch
		}
	}
	return best, hi[best] - lo[best]
}

func channel(c palette.Color, ch int) int {
	switch ch {
	case 0:
		return int(c.R)
	case 1:
		return int(c.G)
	}
	return int(c.B)
}
