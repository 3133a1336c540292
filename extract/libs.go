package extract

import (
	"fmt"
	"sort"

	"github.com/cenkalti/dominantcolor"
	"github.com/mccutchen/palettor"
	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"

	"github.com/makeworld-the-better-one/paletteshift/palette"
	"github.com/makeworld-the-better-one/paletteshift/pixbuf"
)

const defaultMaxIterations = 500

// PalettorPalette extracts k colors with palettor, heaviest cluster first.
// Large images should be downscaled first to keep this fast.
func PalettorPalette(buf *pixbuf.Buffer, k, maxIterations int) (palette.Palette, error) {
	if k <= 0 {
		return palette.Palette{}, nil
	}
	if maxIterations <= 0 {
		maxIterations = defaultMaxIterations
	}
	// palettor requires at least k distinct colors
	if distinct := buf.UniqueColors(); len(distinct) <= k {
		return Frequent(buf, k), nil
	}

	pal, err := palettor.Extract(k, maxIterations, buf.Image())
	if err != nil {
		return nil, fmt.Errorf("error extracting image palette: %w", err)
	}

	cs := pal.Colors()
	sort.SliceStable(cs, func(i, j int) bool {
		wi, wj := pal.Weight(cs[i]), pal.Weight(cs[j])
		if wi != wj {
			return wi > wj
		}
		// Colors come out of a map, so break ties on the value itself
		return palette.FromColor(cs[i]).Key() < palette.FromColor(cs[j]).Key()
	})
	return palette.FromColors(cs), nil
}

// DominantPalette uses dominantcolor to find up to k colors, heaviest first.
func DominantPalette(buf *pixbuf.Buffer, k int) palette.Palette {
	if k <= 0 {
		return palette.Palette{}
	}
	found := dominantcolor.FindWeight(buf.Image(), k)
	sort.SliceStable(found, func(i, j int) bool {
		return found[i].Weight > found[j].Weight
	})
	p := make(palette.Palette, 0, len(found))
	for _, c := range found {
		p = append(p, palette.FromColor(c.RGBA))
	}
	return p
}

// KMeansLibPalette clusters every opaque pixel with muesli/kmeans and
// returns the cluster centers, most populated first. The library seeds
// itself, so results are not reproducible.
func KMeansLibPalette(buf *pixbuf.Buffer, k int) (palette.Palette, error) {
	pixels := opaquePixels(buf, 1)
	if len(pixels) == 0 || k <= 0 {
		return palette.Palette{}, nil
	}
	if len(pixels) <= k {
		return append(palette.Palette{}, pixels...), nil
	}

	dataset := make(clusters.Observations, len(pixels))
	for i, p := range pixels {
		dataset[i] = clusters.Coordinates{float64(p.R), float64(p.G), float64(p.B)}
	}

	cc, err := kmeans.New().Partition(dataset, k)
	if err != nil {
		return nil, fmt.Errorf("error clustering image colors: %w", err)
	}

	sort.SliceStable(cc, func(i, j int) bool {
		return len(cc[i].Observations) > len(cc[j].Observations)
	})

	p := make(palette.Palette, 0, len(cc))
	for _, c := range cc {
		if len(c.Observations) == 0 || len(c.Center) < 3 {
			continue
		}
		p = append(p, palette.Color{
			R: roundChannel(c.Center[0]),
			G: roundChannel(c.Center[1]),
			B: roundChannel(c.Center[2]),
		})
	}
	return p, nil
}
