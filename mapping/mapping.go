// Package mapping assigns every distinct color of an image to a palette
// color so that distinct colors stay distinct for as long as the palette
// has unused entries left.
package mapping

import (
	"sort"

	"github.com/makeworld-the-better-one/paletteshift/match"
	"github.com/makeworld-the-better-one/paletteshift/palette"
	"github.com/makeworld-the-better-one/paletteshift/pixbuf"
)

// Mapping maps a source color, by exact RGB, to its target palette color.
type Mapping map[palette.Color]palette.Color

// Build assigns each source color a target from p, most frequent sources
// first. Each source only considers palette colors no earlier source has
// taken; once every palette color is taken, the whole palette is searched
// again and targets may repeat. p must not be empty.
func Build(sources []palette.ColorCount, p palette.Palette, strategy match.Strategy) Mapping {
	sorted := make([]palette.ColorCount, len(sources))
	copy(sorted, sources)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Count > sorted[j].Count
	})

	m := make(Mapping, len(sorted))
	used := make(map[palette.Color]bool, len(p))
	available := make(palette.Palette, 0, len(p))

	for _, src := range sorted {
		available = available[:0]
		for _, c := range p {
			if !used[c] {
				available = append(available, c)
			}
		}

		var target palette.Color
		if len(available) > 0 {
			target = strategy.Closest(src.Color, available)
		} else {
			target = strategy.Closest(src.Color, p)
		}
		used[target] = true
		m[src.Color] = target
	}
	return m
}

// Apply returns a copy of buf with every opaque pixel replaced by its mapped
// color. Pixels whose color isn't in m are left alone.
func (m Mapping) Apply(buf *pixbuf.Buffer) *pixbuf.Buffer {
	out := buf.Clone()
	for i := 0; i < len(out.Pix); i += 4 {
		if !out.OpaqueAt(i) {
			continue
		}
		if target, ok := m[out.ColorAt(i)]; ok {
			out.SetColorAt(i, target)
		}
	}
	return out
}

// PreserveDistinctness maps the unique colors of buf onto p with Build and
// applies the result.
func PreserveDistinctness(buf *pixbuf.Buffer, p palette.Palette, strategy match.Strategy) *pixbuf.Buffer {
	return Build(buf.UniqueColors(), p, strategy).Apply(buf)
}
