package main

import (
	"fmt"
	"image"
	"image/color"
	"sync"

	"github.com/disintegration/imaging"
	"github.com/golang/freetype/truetype"
	"github.com/makeworld-the-better-one/paletteshift/palette"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"
)

const (
	swatchSize = 32

	sheetGap      = 8
	labelSize     = 12 // points at 72 DPI, so pixels
	labelHeight   = 18
	labelBaseline = 13
)

var (
	labelFaceOnce sync.Once
	labelFace     font.Face
	labelFaceErr  error
)

// getLabelFace returns the Go Regular face used for sheet labels, parsing
// the font the first time.
func getLabelFace() (font.Face, error) {
	labelFaceOnce.Do(func() {
		ttf, err := truetype.Parse(goregular.TTF)
		if err != nil {
			labelFaceErr = fmt.Errorf("parsing label font: %w", err)
			return
		}
		labelFace = truetype.NewFace(ttf, &truetype.Options{
			Size:    labelSize,
			DPI:     72,
			Hinting: font.HintingFull,
		})
	})
	return labelFace, labelFaceErr
}

// contactSheet lays tiles out left to right on a white background, each
// with its label underneath. A column is as wide as the wider of its tile
// and its label.
func contactSheet(tiles []image.Image, labels []string, face font.Face) *image.NRGBA {
	colWidths := make([]int, len(tiles))
	sheetWidth := sheetGap
	maxHeight := 0
	for i, tile := range tiles {
		b := tile.Bounds()
		colWidths[i] = b.Dx()
		if w := font.MeasureString(face, labels[i]).Ceil(); w > colWidths[i] {
			colWidths[i] = w
		}
		sheetWidth += colWidths[i] + sheetGap
		if b.Dy() > maxHeight {
			maxHeight = b.Dy()
		}
	}

	sheet := imaging.New(sheetWidth, sheetGap+maxHeight+labelHeight+sheetGap, color.White)
	d := &font.Drawer{
		Dst:  sheet,
		Src:  image.Black,
		Face: face,
	}

	x := sheetGap
	for i, tile := range tiles {
		tileX := x + (colWidths[i]-tile.Bounds().Dx())/2
		sheet = imaging.Paste(sheet, tile, image.Pt(tileX, sheetGap))

		// Paste returns a new image, so the drawer has to follow it
		d.Dst = sheet
		d.Dot = fixed.P(x+(colWidths[i]-d.MeasureString(labels[i]).Ceil())/2, sheetGap+maxHeight+labelBaseline)
		d.DrawString(labels[i])

		x += colWidths[i] + sheetGap
	}
	return sheet
}

// writeSheet writes a contact sheet of tiles. p is every palette color used
// in the tiles, for GIF output.
func writeSheet(path string, tiles []image.Image, labels []string, p palette.Palette) error {
	face, err := getLabelFace()
	if err != nil {
		return err
	}
	colors := append(p.Colors(), color.White, color.Black)
	return writeImage(path, contactSheet(tiles, labels, face), colors)
}

// swatch draws p as a row of size x size squares.
func swatch(p palette.Palette, size int) *image.NRGBA {
	img := imaging.New(size*len(p), size, color.Transparent)
	for i, c := range p {
		img = imaging.Paste(img, imaging.New(size, size, c.NRGBA()), image.Pt(i*size, 0))
	}
	return img
}
