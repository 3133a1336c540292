package main

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/makeworld-the-better-one/paletteshift/dithering"
	"github.com/makeworld-the-better-one/paletteshift/extract"
	"github.com/makeworld-the-better-one/paletteshift/harmony"
	"github.com/makeworld-the-better-one/paletteshift/match"
	"github.com/makeworld-the-better-one/paletteshift/palette"
	"github.com/makeworld-the-better-one/paletteshift/recolor"
	"github.com/makeworld-the-better-one/paletteshift/worker"
	"github.com/urfave/cli/v2"
)

const (
	unsupportedFormat string = "'%s' is an unsupported format, only 'png', 'gif' or 'webp' are accepted"
)

var (
	// targetPalette stores the palette colors. It's set after pre-processing,
	// and is empty if no palette was given.
	targetPalette palette.Palette

	autoOrientation imaging.DecodeOption

	inputImages []string
	outFormat   string // "png", "gif" or "webp"
	outIsDir    bool

	compLevel png.CompressionLevel

	outFileFlags int // For os.OpenFile

	width  int
	height int
	// upscale will always be 1 or above
	upscale int

	threads int

	recolorOpts recolor.Options

	seed      int64
	seedIsSet bool
)

// preProcess is automatically called by the app before anything else.
// It's run in the global context.
func preProcess(c *cli.Context) error {
	threads = int(c.Uint("threads"))
	runtime.GOMAXPROCS(threads)

	var err error

	autoOrientation = imaging.AutoOrientation(!c.Bool("no-exif-rotation"))

	inputImages = make([]string, 0)
	for _, path := range c.StringSlice("in") {
		if strings.Contains(path, "*") {
			// Parse as glob
			paths, err := filepath.Glob(path)
			if err != nil {
				return fmt.Errorf("bad glob pattern '%s': %w", path, err)
			}
			inputImages = append(inputImages, paths...)
		} else {
			inputImages = append(inputImages, path)
		}
	}
	if len(inputImages) == 0 {
		return errors.New("no input images")
	}

	// Set here for convenience, and before "--palette sample" loads an image
	width = int(c.Uint("width"))
	height = int(c.Uint("height"))
	upscale = int(c.Uint("upscale"))
	if upscale == 0 {
		// Invalid
		upscale = 1
	}

	recolorOpts = recolor.DefaultOptions()

	recolorOpts.Strategy, err = match.ParseStrategy(c.String("strategy"))
	if err != nil {
		return fmt.Errorf("strategy: %w", err)
	}
	recolorOpts.Dither, err = dithering.ParseMethod(c.String("dither"))
	if err != nil {
		return fmt.Errorf("dither: %w", err)
	}
	recolorOpts.PreserveDistinctness = c.Bool("distinct")
	if recolorOpts.PreserveDistinctness && recolorOpts.Dither != dithering.None {
		log.Printf("Ignoring --distinct, dithering always matches pixel by pixel")
	}

	if c.IsSet("intensity") {
		recolorOpts.Dithering.Intensity, err = parsePercentArg(c.String("intensity"), true)
		if err != nil {
			return fmt.Errorf("intensity: %w", err)
		}
		if recolorOpts.Dithering.Intensity < 0 {
			return errors.New("intensity can't be negative")
		}
	}

	bayerSize := c.Uint("bayer")
	if bayerSize != 2 && bayerSize != 4 && bayerSize != 8 {
		return fmt.Errorf("bayer matrix size must be 2, 4 or 8, not %d", bayerSize)
	}
	recolorOpts.Dithering.BayerSize = int(bayerSize)

	seedIsSet = c.IsSet("seed")
	seed = c.Int64("seed")

	if c.String("palette") != "" {
		targetPalette, err = parseColors("palette", c)
		if err != nil {
			return err
		}
		if err := targetPalette.Validate(); err != nil {
			return fmt.Errorf("palette: %w", err)
		}
	}

	formatVal := c.String("format")
	if formatVal != "png" && formatVal != "gif" && formatVal != "webp" {
		return fmt.Errorf(unsupportedFormat, formatVal)
	}

	// Figure out output format

	outVal := c.String("out")

	if outVal == "-" {
		// Outputting to stdout, so just use whatever the flag is
		outFormat = formatVal
	} else {
		// Outputting to dir or file

		outFI, err := os.Stat(outVal)

		if err == nil && outFI.IsDir() {
			// Exists and is a directory
			// Just use what the flag is
			outFormat = formatVal
			outIsDir = true

		} else {
			// Outputting to file, that already exists
			// Or something that doesn't exist - assumed to be a file

			if !c.IsSet("format") {
				// Format wasn't set, so ignore default value of "png"
				// Try to figure out format from output filename
				ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(outVal), "."))
				if ext == "png" || ext == "gif" || ext == "webp" {
					outFormat = ext
				} else if ext == "" || ext == "txt" {
					// No image extension, use default format
					outFormat = "png"
				} else {
					// Unsupported extension and no format flag override
					return fmt.Errorf(unsupportedFormat, ext)
				}
			} else {
				// Format flag was set, so ignore what the file looks like
				outFormat = formatVal
			}
		}
	}

	// Multiple input images are only valid if the output points to a directory.
	if len(inputImages) > 1 && !outIsDir {
		return errors.New("multiple input images are only allowed if the output is an existing directory")
	}

	if outFormat == "gif" && len(targetPalette) > 256 {
		return errors.New("the GIF format only supports 256 colors or less in the palette")
	}

	// Set PNG compression type

	switch c.String("compression") {
	case "default":
		compLevel = png.DefaultCompression
	case "no":
		compLevel = png.NoCompression
	case "speed":
		compLevel = png.BestSpeed
	case "size":
		compLevel = png.BestCompression
	default:
		return fmt.Errorf("invalid compression type '%s'", c.String("compression"))
	}

	if c.Bool("no-overwrite") {
		outFileFlags = os.O_WRONLY | os.O_CREATE | os.O_EXCL
	} else {
		outFileFlags = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	}

	return nil
}

func requirePalette() error {
	if len(targetPalette) == 0 {
		return errors.New("this command needs a palette, set one with --palette")
	}
	return nil
}

// newRand returns the source k-means seeds from, or nil for a random one.
func newRand() *rand.Rand {
	if !seedIsSet {
		return nil
	}
	return rand.New(rand.NewSource(seed))
}

func newPool() *worker.Pool {
	return worker.New(worker.Config{Workers: threads})
}

func apply(c *cli.Context) error {
	if err := requirePalette(); err != nil {
		return err
	}

	pool := newPool()
	defer pool.Close()

	// Queue every image first so they're recolored in parallel
	pending := make([]<-chan worker.Result, len(inputImages))
	for i, inputPath := range inputImages {
		buf, err := getInputBuffer(inputPath)
		if err != nil {
			return err
		}
		pending[i] = pool.Submit(context.Background(), worker.ApplyJob{
			Buffer:  buf,
			Palette: targetPalette,
			Options: recolorOpts,
		})
	}

	for i, inputPath := range inputImages {
		r := <-pending[i]
		if !r.OK() {
			return fmt.Errorf("processing '%s' %s: %w", inputPath, r.Status, r.Err)
		}
		err := writeImage(outputPath(c, inputPath, ""), postProcImage(r.Buffer.Image()), targetPalette.Colors())
		if err != nil {
			return err
		}
	}
	return nil
}

func variations(c *cli.Context) error {
	if err := requirePalette(); err != nil {
		return err
	}

	pool := newPool()
	defer pool.Close()

	for _, inputPath := range inputImages {
		buf, err := getInputBuffer(inputPath)
		if err != nil {
			return err
		}
		vs, err := pool.Variations(context.Background(), buf, targetPalette, recolorOpts)
		if err != nil {
			return fmt.Errorf("processing '%s' failed: %w", inputPath, err)
		}

		if c.Bool("sheet") {
			tiles := make([]image.Image, len(vs))
			labels := make([]string, len(vs))
			for i, v := range vs {
				tiles[i] = postProcImage(v.Buffer.Image())
				labels[i] = v.Name
			}
			err = writeSheet(outputPath(c, inputPath, ""), tiles, labels, targetPalette)
			if err != nil {
				return err
			}
			continue
		}

		if globalFlag("out", c).(string) == "-" {
			return errors.New("can't write six variations to stdout, use --sheet or an output file or directory")
		}
		for _, v := range vs {
			err = writeImage(outputPath(c, inputPath, v.Strategy.String()), postProcImage(v.Buffer.Image()), targetPalette.Colors())
			if err != nil {
				return err
			}
		}
	}
	return nil
}

func similar(c *cli.Context) error {
	if err := requirePalette(); err != nil {
		return err
	}
	count := int(c.Uint("count"))
	if count == 0 {
		return errors.New("count must be at least 1")
	}

	pool := newPool()
	defer pool.Close()

	for _, inputPath := range inputImages {
		buf, err := getInputBuffer(inputPath)
		if err != nil {
			return err
		}
		r := pool.Do(context.Background(), worker.SimilarJob{
			Buffer:  buf,
			Palette: targetPalette,
			Count:   count,
			Options: recolorOpts,
		})
		if !r.OK() {
			return fmt.Errorf("processing '%s' %s: %w", inputPath, r.Status, r.Err)
		}

		if c.Bool("sheet") {
			tiles := make([]image.Image, len(r.Similar))
			labels := make([]string, len(r.Similar))
			var all palette.Palette
			for i, s := range r.Similar {
				tiles[i] = postProcImage(s.Buffer.Image())
				labels[i] = fmt.Sprintf("Hue +%d°", (i+1)*30)
				all = append(all, s.Palette...)
			}
			err = writeSheet(outputPath(c, inputPath, ""), tiles, labels, all)
			if err != nil {
				return err
			}
			continue
		}

		if globalFlag("out", c).(string) == "-" && len(r.Similar) > 1 {
			return errors.New("can't write several images to stdout, use --sheet or an output file or directory")
		}
		for i, s := range r.Similar {
			log.Printf("Similar palette %d: %v", i+1, s.Palette)
			suffix := fmt.Sprintf("similar%d", i+1)
			if len(r.Similar) == 1 {
				suffix = ""
			}
			err = writeImage(outputPath(c, inputPath, suffix), postProcImage(s.Buffer.Image()), s.Palette.Colors())
			if err != nil {
				return err
			}
		}
	}
	return nil
}

func extractCmd(c *cli.Context) error {
	method, err := extract.ParseMethod(c.String("method"))
	if err != nil {
		return err
	}
	count := int(c.Uint("count"))
	if count == 0 {
		return errors.New("count must be at least 1")
	}
	opts := extract.Options{
		Quality: int(c.Uint("quality")),
		Rand:    newRand(),
	}

	pool := newPool()
	defer pool.Close()

	for _, inputPath := range inputImages {
		buf, err := getInputBuffer(inputPath)
		if err != nil {
			return err
		}
		r := pool.Do(context.Background(), worker.ExtractJob{
			Buffer:  buf,
			Count:   count,
			Method:  method,
			Options: opts,
		})
		if !r.OK() {
			return fmt.Errorf("processing '%s' %s: %w", inputPath, r.Status, r.Err)
		}
		log.Printf("Extracted palette: %v", r.Palette)

		if err := writePaletteOutput(c, inputPath, r.Palette); err != nil {
			return err
		}
	}
	return nil
}

func harmonyCmd(c *cli.Context) error {
	scheme := harmony.SchemeComplementary
	if c.Args().Len() > 1 {
		return errors.New("harmony only accepts one argument")
	}
	if c.Args().Len() == 1 {
		var err error
		scheme, err = harmony.ParseScheme(c.Args().First())
		if err != nil {
			return err
		}
	}

	// The base color is the flag, or else the dominant color of each input
	var base *palette.Color
	if c.String("base") != "" {
		colors, err := parseColorArgs("base", []string{c.String("base")})
		if err != nil {
			return err
		}
		if len(colors) != 1 {
			return errors.New("base: exactly one color is needed")
		}
		base = &colors[0]
	}

	opts := extract.Options{Rand: newRand()}

	for _, inputPath := range inputImages {
		var bc palette.Color
		if base != nil {
			bc = *base
		} else {
			buf, err := getInputBuffer(inputPath)
			if err != nil {
				return err
			}
			if !c.Bool("all") {
				p, err := harmony.ExtractAndHarmonize(buf, scheme, opts)
				if err != nil {
					return fmt.Errorf("'%s': %w", inputPath, err)
				}
				if err := writePaletteOutput(c, inputPath, p); err != nil {
					return err
				}
				continue
			}
			dominant, err := extract.Extract(buf, 3, extract.KMeans, opts)
			if err != nil {
				return err
			}
			if len(dominant) == 0 {
				return fmt.Errorf("'%s': %w", inputPath, palette.ErrEmptyPalette)
			}
			bc = dominant[0]
		}
		log.Printf("Base color: %v", bc)

		if c.Bool("all") {
			if err := writeHarmonies(c, inputPath, harmony.All(bc)); err != nil {
				return err
			}
			continue
		}
		p, err := harmony.Generate(bc, scheme)
		if err != nil {
			return err
		}
		if err := writePaletteOutput(c, inputPath, p); err != nil {
			return err
		}
	}
	return nil
}
