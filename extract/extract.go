// Package extract reduces the colors of an image to a small palette of
// representative, dominant colors.
package extract

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/makeworld-the-better-one/paletteshift/palette"
	"github.com/makeworld-the-better-one/paletteshift/pixbuf"
)

// Method is a palette extraction algorithm.
type Method int

const (
	// KMeans clusters a sample of the pixels. Seeding is random.
	KMeans Method = iota
	// MedianCut recursively splits the pixels along their widest channel.
	MedianCut
	// Frequency keeps the most common exact colors.
	Frequency
	// Palettor uses github.com/mccutchen/palettor's k-means.
	Palettor
	// Dominant uses github.com/cenkalti/dominantcolor.
	Dominant
	// KMeansLib uses github.com/muesli/kmeans.
	KMeansLib
)

var methodNames = []string{
	KMeans:    "kmeans",
	MedianCut: "median-cut",
	Frequency: "frequency",
	Palettor:  "palettor",
	Dominant:  "dominant",
	KMeansLib: "kmeans-lib",
}

func (m Method) String() string {
	if int(m) >= 0 && int(m) < len(methodNames) {
		return methodNames[m]
	}
	return fmt.Sprintf("Method(%d)", int(m))
}

// ParseMethod parses a method name as returned by String.
func ParseMethod(name string) (Method, error) {
	name = strings.ReplaceAll(strings.ToLower(name), "_", "-")
	for i, n := range methodNames {
		if n == name {
			return Method(i), nil
		}
	}
	if name == "mediancut" {
		return MedianCut, nil
	}
	return KMeans, fmt.Errorf("unknown extraction method '%s'", name)
}

// Options configures extraction. The zero value is usable.
type Options struct {
	// Quality makes k-means sample every Quality-th pixel. Zero means 10.
	Quality int

	// Rand is the source k-means seeds its centroids from. When nil, a source
	// seeded from the clock is used, and results differ between runs.
	Rand *rand.Rand

	// MaxIterations bounds the library-backed k-means methods. Zero means 500.
	MaxIterations int
}

const defaultQuality = 10

func (o Options) rng() *rand.Rand {
	if o.Rand != nil {
		return o.Rand
	}
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// Extract runs method over the opaque pixels of buf and returns up to k
// colors, most dominant first where the method has a notion of dominance.
func Extract(buf *pixbuf.Buffer, k int, method Method, opts Options) (palette.Palette, error) {
	switch method {
	case KMeans:
		q := opts.Quality
		if q <= 0 {
			q = defaultQuality
		}
		return KMeansPalette(buf, k, q, opts.rng()), nil
	case MedianCut:
		return MedianCutPalette(buf, k), nil
	case Frequency:
		return Frequent(buf, k), nil
	case Palettor:
		return PalettorPalette(buf, k, opts.MaxIterations)
	case Dominant:
		return DominantPalette(buf, k), nil
	case KMeansLib:
		return KMeansLibPalette(buf, k)
	}
	return nil, fmt.Errorf("unknown extraction method %d", int(method))
}

// Frequent returns the max most common opaque colors of buf, most common first.
func Frequent(buf *pixbuf.Buffer, max int) palette.Palette {
	counts := buf.UniqueColors()
	if max >= 0 && len(counts) > max {
		counts = counts[:max]
	}
	p := make(palette.Palette, len(counts))
	for i, cc := range counts {
		p[i] = cc.Color
	}
	return p
}

// opaquePixels collects the colors of every step-th pixel, skipping
// transparent ones.
func opaquePixels(buf *pixbuf.Buffer, step int) []palette.Color {
	pixels := make([]palette.Color, 0, len(buf.Pix)/4/step+1)
	for i := 0; i < len(buf.Pix); i += 4 * step {
		if !buf.OpaqueAt(i) {
			continue
		}
		pixels = append(pixels, buf.ColorAt(i))
	}
	return pixels
}
