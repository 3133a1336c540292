package main

import (
	"image"
	"image/color"
	"image/draw"
	"image/gif"
)

// Like in the dither library, see
// https://github.com/makeworld-the-better-one/dither/blob/3714c39500bc23a87a4fa14053344f201cc5beff/draw.go#L128-L156
// Use for specifying the palette for GIF encoding

// fakeQuantizer implements draw.Quantizer. It ignores the provided image
// and just returns the provided palette each time. This is useful for places that
// only allow you to set the palette through a draw.Quantizer, like the image/gif
// package.
type fakeQuantizer struct {
	p []color.Color
}

func (fq *fakeQuantizer) Quantize(p color.Palette, m image.Image) color.Palette {
	return fq.p
}

// gifOptions encodes img with exactly the given colors, plus a transparent
// entry if img isn't opaque. The image has already been recolored, so the
// colors are copied over as they are instead of being dithered again.
func gifOptions(img image.Image, colors []color.Color) *gif.Options {
	p := make([]color.Color, 0, len(colors)+1)
	p = append(p, colors...)
	if o, ok := img.(interface{ Opaque() bool }); !ok || !o.Opaque() {
		p = append(p, color.NRGBA{})
	}
	if len(p) > 256 {
		// The format's limit. Only the transparent entry can be over it,
		// preProcess checks the palette size.
		p = p[:256]
	}
	return &gif.Options{
		NumColors: len(p),
		Quantizer: &fakeQuantizer{p},
		Drawer:    draw.Src,
	}
}
