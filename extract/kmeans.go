package extract

import (
	"math"
	"math/rand"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/makeworld-the-better-one/paletteshift/palette"
	"github.com/makeworld-the-better-one/paletteshift/pixbuf"
)

const (
	kMeansMaxIterations = 20
	// A centroid moving by no more than this counts as converged.
	kMeansTolerance = 1
)

// KMeansPalette samples every quality-th pixel of buf (skipping transparent
// ones) and clusters the sample into k colors, largest cluster first.
//
// If the sample holds k colors or fewer it is returned as-is.
// Initial centroids are k distinct sample positions drawn from rng.
func KMeansPalette(buf *pixbuf.Buffer, k, quality int, rng *rand.Rand) palette.Palette {
	if quality <= 0 {
		quality = 1
	}
	return kMeans(opaquePixels(buf, quality), k, rng)
}

func kMeans(pixels []palette.Color, k int, rng *rand.Rand) palette.Palette {
	if len(pixels) == 0 || k <= 0 {
		return palette.Palette{}
	}
	if len(pixels) <= k {
		return append(palette.Palette{}, pixels...)
	}

	centroids := make(palette.Palette, 0, k)
	used := make(map[int]bool, k)
	for len(centroids) < k {
		idx := rng.Intn(len(pixels))
		if used[idx] {
			continue
		}
		used[idx] = true
		centroids = append(centroids, pixels[idx])
	}

	clusters := make([][]palette.Color, k)
	for iter := 0; iter < kMeansMaxIterations; iter++ {
		for i := range clusters {
			clusters[i] = clusters[i][:0]
		}

		for _, px := range pixels {
			closest := 0
			minDist := math.Inf(1)
			for i, c := range centroids {
				if d := palette.Distance(px, c); d < minDist {
					minDist = d
					closest = i
				}
			}
			clusters[closest] = append(clusters[closest], px)
		}

		changed := false
		for i, members := range clusters {
			if len(members) == 0 {
				// Empty clusters keep their old centroid
				continue
			}
			c := meanColor(members)
			if palette.Distance(c, centroids[i]) > kMeansTolerance {
				changed = true
			}
			centroids[i] = c
		}
		if !changed {
			break
		}
	}

	order := make([]int, k)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return len(clusters[order[a]]) > len(clusters[order[b]])
	})

	out := make(palette.Palette, k)
	for i, idx := range order {
		out[i] = centroids[idx]
	}
	return out
}

// meanColor is the channel-wise mean of colors, each channel rounded half up.
// colors must not be empty.
func meanColor(colors []palette.Color) palette.Color {
	r := make([]float64, len(colors))
	g := make([]float64, len(colors))
	b := make([]float64, len(colors))
	for i, c := range colors {
		r[i] = float64(c.R)
		g[i] = float64(c.G)
		b[i] = float64(c.B)
	}
	return palette.Color{
		R: roundChannel(stat.Mean(r, nil)),
		G: roundChannel(stat.Mean(g, nil)),
		B: roundChannel(stat.Mean(b, nil)),
	}
}

func roundChannel(v float64) uint8 {
	return uint8(math.Max(0, math.Min(255, math.Floor(v+0.5))))
}
