package main

import (
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/deepteams/webp"
	"github.com/disintegration/imaging"
	"github.com/makeworld-the-better-one/paletteshift/extract"
	"github.com/makeworld-the-better-one/paletteshift/harmony"
	"github.com/makeworld-the-better-one/paletteshift/palette"
	"github.com/makeworld-the-better-one/paletteshift/pixbuf"
	"github.com/urfave/cli/v2"
	"golang.org/x/image/colornames"
)

// parsePercentArg takes a string like "0.5" or "50%" and will return a float
// like 50 or 0.5, depending on the second argument. An empty string returns 0.
//
// If `maxOne` is true, then "50%" will return 0.5. Otherwise it will return 50.
func parsePercentArg(arg string, maxOne bool) (float64, error) {
	if arg == "" {
		return 0, nil
	}
	if strings.HasSuffix(arg, "%") {
		arg = arg[:len(arg)-1]
		f64, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return 0, err
		}
		if maxOne {
			f64 /= 100.0
		}
		return f64, nil
	}
	f64, err := strconv.ParseFloat(arg, 64)
	if !maxOne {
		f64 *= 100.0
	}
	return f64, err
}

// globalFlag returns the value of flag at the top level of the command.
// For example, with the command:
//
//	paletteshift --threads 1 extract --method median-cut
//
// "threads" is a global flag, and "method" is a flag local to the extract subcommand.
func globalFlag(flag string, c *cli.Context) interface{} {
	ancestor := c.Lineage()[len(c.Lineage())-1]
	if len(ancestor.Args().Slice()) == 0 {
		// When the global context calls this func, the last in the lineage
		// has no args for some reason. So return the second-last instead.
		return c.Lineage()[len(c.Lineage())-2].Value(flag)
	}
	return ancestor.Value(flag)
}

// parseArgs takes arguments and splits them using the provided split characters.
func parseArgs(args []string, splitRunes string) []string {
	finalArgs := make([]string, 0)
	for _, arg := range args {
		finalArgs = append(finalArgs, strings.FieldsFunc(arg, func(c rune) bool {
			for _, c2 := range splitRunes {
				if c == c2 {
					return true
				}
			}
			return false
		})...)
	}
	return finalArgs
}

func rgbToColor(s string) (palette.Color, error) {
	format := "%d,%d,%d"
	var r, g, b uint8
	n, err := fmt.Sscanf(s, format, &r, &g, &b)
	if err != nil {
		return palette.Color{}, err
	}
	if n != 3 {
		return palette.Color{}, fmt.Errorf("%s is not an RGB tuple", s)
	}
	return palette.Color{R: r, G: g, B: b}, nil
}

// extractInputPalette extracts a 5-color palette from the first input image
// using palettor.
func extractInputPalette() (palette.Palette, error) {
	img, err := getInputImage(inputImages[0])
	if err != nil {
		return nil, fmt.Errorf("error loading image for palette extraction '%v': %w", inputImages, err)
	}

	// Resize: keep palettor.Extract fast. See the palettor CLI source:
	// https://github.com/mccutchen/palettor/blob/3eaed180/cmd/palettor/palettor.go#L57
	thumbnail := imaging.Resize(img, 200, 200, imaging.NearestNeighbor)

	p, err := extract.Extract(pixbuf.FromImage(thumbnail), 5, extract.Palettor, extract.Options{MaxIterations: 500})
	if err != nil {
		return nil, fmt.Errorf("error extracting image palette: %w", err)
	}

	log.Printf("Extracted palette: %v", p)
	return p, nil
}

// readPaletteFile reads a hex palette file, one "#rrggbb" per line.
func readPaletteFile(path string) (palette.Palette, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	p, err := palette.ReadHexColors(f)
	if err != nil {
		return nil, fmt.Errorf("'%s': %w", path, err)
	}
	if len(p) == 0 {
		return nil, fmt.Errorf("'%s': %w", path, palette.ErrEmptyPalette)
	}
	return p, nil
}

// parseColors reads the colors of flag. Besides the color formats
// parseColorArgs takes, the value can be "sample" to extract the palette from
// the first input image, or "@path" to read a hex palette file.
func parseColors(flag string, c *cli.Context) (palette.Palette, error) {
	args := parseArgs([]string{globalFlag(flag, c).(string)}, " ")

	if len(args) == 1 && args[0] == "sample" {
		return extractInputPalette()
	}
	if len(args) == 1 && strings.HasPrefix(args[0], "@") {
		p, err := readPaletteFile(args[0][1:])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", flag, err)
		}
		return p, nil
	}

	return parseColorArgs(flag, args)
}

// parseColorArgs turns args into colors.
func parseColorArgs(flag string, args []string) (palette.Palette, error) {
	colors := make(palette.Palette, len(args))

	for i, arg := range args {
		// Try to parse as RGB numbers, then hex, then grayscale, then SVG colors, then fail

		if strings.Count(arg, ",") == 2 {
			rgbColor, err := rgbToColor(arg)
			if err != nil {
				return nil, fmt.Errorf("%s: %s is not a valid RGB tuple. Example: 25,200,150", flag, arg)
			}
			colors[i] = rgbColor
			continue
		}

		hexColor, err := palette.ParseHex(arg)
		if err == nil {
			colors[i] = hexColor
			continue
		}

		n, err := strconv.Atoi(arg)
		if err == nil {
			if n > 255 || n < 0 {
				return nil, fmt.Errorf("%s: single numbers like %d must be in the range 0-255", flag, n)
			}
			colors[i] = palette.Color{R: uint8(n), G: uint8(n), B: uint8(n)}
			continue
		}

		htmlColor, ok := colornames.Map[strings.ToLower(arg)]
		if ok {
			colors[i] = palette.FromColor(htmlColor)
			continue
		}

		return nil, fmt.Errorf("%s: %s not recognized as an RGB tuple, hex code, number 0-255, or SVG color name", flag, arg)
	}

	return colors, nil
}

// getInputImage takes an input image arg and returns the decoded image,
// resized if requested. WebP input is decoded through the webp package's
// registered format.
func getInputImage(arg string) (image.Image, error) {
	var img image.Image
	var err error

	if arg == "-" {
		img, err = imaging.Decode(os.Stdin, autoOrientation)
	} else {
		img, err = imaging.Open(arg, autoOrientation)
	}
	if err != nil {
		return nil, err
	}

	if width != 0 || height != 0 {
		// Box sampling is quick, and better then others at downscaling
		// https://pkg.go.dev/github.com/disintegration/imaging#ResampleFilter
		img = imaging.Resize(img, width, height, imaging.Box)
	}

	return img, nil
}

func getInputBuffer(arg string) (*pixbuf.Buffer, error) {
	img, err := getInputImage(arg)
	if err != nil {
		return nil, fmt.Errorf("error loading '%s': %w", arg, err)
	}
	return pixbuf.FromImage(img), nil
}

// postProcImage upscales the image if needed. Nearest neighbor keeps every
// pixel a palette color.
func postProcImage(img image.Image) image.Image {
	if upscale == 1 {
		return img
	}
	return imaging.Resize(
		img,
		img.Bounds().Dx()*upscale,
		0,
		imaging.NearestNeighbor,
	)
}

// outputFile returns where the output for inputPath goes. Inside an output
// directory it's named after the input; otherwise it's outPath itself. A
// non-empty suffix is added to the name before the extension, so that one
// input can produce several outputs.
func outputFile(outPath, inputPath, suffix, ext string) string {
	if outPath == "-" {
		return "-"
	}
	if outIsDir {
		name := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
		if suffix != "" {
			name += "_" + suffix
		}
		return filepath.Join(outPath, name+"."+ext)
	}
	if suffix == "" {
		return outPath
	}
	e := filepath.Ext(outPath)
	return strings.TrimSuffix(outPath, e) + "_" + suffix + e
}

func outputPath(c *cli.Context, inputPath, suffix string) string {
	return outputFile(globalFlag("out", c).(string), inputPath, suffix, outFormat)
}

// textOutputFile is like outputFile for hex text output. An output file
// named like an image is refused, since the text would end up behind an
// image extension.
func textOutputFile(outPath, inputPath string) (string, error) {
	path := outputFile(outPath, inputPath, "", "txt")
	if path == "-" || outIsDir {
		return path, nil
	}
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if ext == "png" || ext == "gif" || ext == "webp" {
		return "", fmt.Errorf("'%s' is named like an image, but text is written without --swatch", path)
	}
	return path, nil
}

func openOutput(path string) (io.WriteCloser, error) {
	if path == "-" {
		return os.Stdout, nil
	}
	file, err := os.OpenFile(path, outFileFlags, 0644)
	if err != nil {
		return nil, fmt.Errorf("'%s': %w", path, err)
	}
	return file, nil
}

// writeImage encodes img in the output format. colors is the palette the
// image was recolored to, which GIF output is restricted to.
func writeImage(path string, img image.Image, colors []color.Color) error {
	file, err := openOutput(path)
	if err != nil {
		return err
	}

	switch outFormat {
	case "gif":
		err = gif.Encode(file, img, gifOptions(img, colors))
	case "webp":
		opts := webp.DefaultOptions()
		opts.Lossless = true
		// Keep the colors under transparent pixels, they're left as they were
		opts.Exact = true
		err = webp.Encode(file, img, opts)
	default:
		err = (&png.Encoder{CompressionLevel: compLevel}).Encode(file, img)
	}
	if err != nil {
		defer file.Close() // Keep (possibly stdout) open to write error messages then close
		return fmt.Errorf("error writing %s to '%s': %w", strings.ToUpper(outFormat), path, err)
	}
	return file.Close()
}

// writePaletteOutput writes p as a swatch image if --swatch is set, or as a
// hex palette file otherwise. The file can be read back with --palette @path.
func writePaletteOutput(c *cli.Context, inputPath string, p palette.Palette) error {
	if c.Bool("swatch") {
		return writeImage(outputPath(c, inputPath, ""), swatch(p, swatchSize), p.Colors())
	}

	path, err := textOutputFile(globalFlag("out", c).(string), inputPath)
	if err != nil {
		return err
	}
	file, err := openOutput(path)
	if err != nil {
		return err
	}
	for _, col := range p {
		fmt.Fprintln(file, col.Hex())
	}
	return file.Close()
}

// writeHarmonies writes every harmony, as a contact sheet of labeled swatches
// with --swatch, or as one "scheme: colors" line per scheme otherwise.
func writeHarmonies(c *cli.Context, inputPath string, hs []harmony.Harmony) error {
	if c.Bool("swatch") {
		tiles := make([]image.Image, len(hs))
		labels := make([]string, len(hs))
		var all palette.Palette
		for i, h := range hs {
			tiles[i] = swatch(h.Palette, swatchSize/2)
			labels[i] = h.Scheme.String()
			all = append(all, h.Palette...)
		}
		return writeSheet(outputPath(c, inputPath, ""), tiles, labels, all)
	}

	path, err := textOutputFile(globalFlag("out", c).(string), inputPath)
	if err != nil {
		return err
	}
	file, err := openOutput(path)
	if err != nil {
		return err
	}
	for _, h := range hs {
		fmt.Fprintf(file, "%s: %v\n", h.Scheme, h.Palette)
	}
	return file.Close()
}
