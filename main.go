package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

// Set by compiler, see Makefile
var (
	version = "v0.1.0"
	commit  = "unknown"
	builtBy = "unknown"
)

func main() {

	app := &cli.App{
		Name:                   "paletteshift",
		Usage:                  "recolor images to a palette, with matching strategies and dithering.",
		Description:            "paletteshift maps every pixel of an image onto a fixed palette.\n\nIt can match colors by perceptual distance, luminosity, hue, saturation,\ninverted luminosity or complementary hue, dither the result, generate all six\nvariations or similar palettes at once, and extract or harmonize palettes.",
		UseShortOptionHandling: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "palette",
				Aliases: []string{"p"},
				Usage:   "hex codes, RGB tuples, gray numbers, SVG color names, @file, or 'sample'",
			},
			&cli.StringSliceFlag{
				Name:     "in",
				Aliases:  []string{"i"},
				Required: true,
			},
			&cli.StringFlag{
				Name:     "out",
				Aliases:  []string{"o"},
				Required: true,
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Value:   "png",
			},
			&cli.StringFlag{
				Name:    "strategy",
				Aliases: []string{"m"},
				Value:   "perceptual",
			},
			&cli.StringFlag{
				Name:    "dither",
				Aliases: []string{"d"},
				Value:   "none",
			},
			&cli.StringFlag{
				Name:    "intensity",
				Aliases: []string{"s"},
			},
			&cli.UintFlag{
				Name:  "bayer",
				Value: 4,
			},
			&cli.BoolFlag{
				Name: "distinct",
			},
			&cli.UintFlag{
				Name:    "threads",
				Aliases: []string{"j"},
			},
			&cli.BoolFlag{
				Name: "no-exif-rotation",
			},
			&cli.BoolFlag{
				Name: "no-overwrite",
			},
			&cli.StringFlag{
				Name:    "compression",
				Aliases: []string{"c"},
				Value:   "default",
			},
			&cli.UintFlag{
				Name:    "width",
				Aliases: []string{"x"},
			},
			&cli.UintFlag{
				Name:    "height",
				Aliases: []string{"y"},
			},
			&cli.UintFlag{
				Name:    "upscale",
				Aliases: []string{"u"},
				Value:   1,
			},
			&cli.Int64Flag{
				Name: "seed",
			},
			&cli.BoolFlag{
				Name:    "version",
				Aliases: []string{"v"},
			},
		},
		Commands: []*cli.Command{
			{
				Name:                   "apply",
				Usage:                  "recolor images to the palette",
				UseShortOptionHandling: true,
				Action:                 apply,
			},
			{
				Name:  "variations",
				Usage: "recolor with each of the six matching strategies",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "sheet",
						Usage: "write a single labeled contact sheet instead of one file per variation",
					},
				},
				UseShortOptionHandling: true,
				Action:                 variations,
			},
			{
				Name:  "similar",
				Usage: "recolor with palettes whose hues are rotated from the given one",
				Flags: []cli.Flag{
					&cli.UintFlag{
						Name:    "count",
						Aliases: []string{"n"},
						Value:   5,
					},
					&cli.BoolFlag{
						Name: "sheet",
					},
				},
				UseShortOptionHandling: true,
				Action:                 similar,
			},
			{
				Name:  "extract",
				Usage: "print the dominant colors of an image",
				Flags: []cli.Flag{
					&cli.UintFlag{
						Name:    "count",
						Aliases: []string{"n"},
						Value:   8,
					},
					&cli.StringFlag{
						Name:  "method",
						Value: "kmeans",
						Usage: "kmeans, median-cut, frequency, palettor, dominant or kmeans-lib",
					},
					&cli.UintFlag{
						Name:  "quality",
						Value: 10,
					},
					&cli.BoolFlag{
						Name:  "swatch",
						Usage: "write the palette as a row of swatches to the output path",
					},
				},
				UseShortOptionHandling: true,
				Action:                 extractCmd,
			},
			{
				Name:      "harmony",
				Usage:     "generate a color harmony from a base color or the image's dominant color",
				ArgsUsage: "[scheme]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "base",
						Aliases: []string{"b"},
					},
					&cli.BoolFlag{
						Name: "all",
					},
					&cli.BoolFlag{
						Name: "swatch",
					},
				},
				UseShortOptionHandling: true,
				Action:                 harmonyCmd,
			},
		},
		Before: preProcess,
		Action: func(c *cli.Context) error {
			return errors.New("no command specified")
		},
	}

	// Handle version flag
	if len(os.Args) == 2 && (os.Args[1] == "-v" || os.Args[1] == "--version") {
		fmt.Println("paletteshift", version)
		fmt.Println("Commit:", commit)
		fmt.Println("Built by:", builtBy)
		return
	}

	// Required flags are still required for help
	// https://github.com/urfave/cli/issues/1247
	if len(os.Args) == 3 {
		if os.Args[1] == "h" || os.Args[1] == "help" {
			for _, c := range app.Commands {
				if c.Name == os.Args[2] {
					cli.HelpPrinter(os.Stdout, cli.CommandHelpTemplate, c)
					return
				}
			}
			fmt.Println("no command with that name")
			os.Exit(1)
		} else if os.Args[len(os.Args)-1] == "-h" || os.Args[len(os.Args)-1] == "--help" {
			for _, c := range app.Commands {
				if c.Name == os.Args[1] {
					cli.HelpPrinter(os.Stdout, cli.CommandHelpTemplate, c)
					return
				}
			}
			fmt.Println("no command with that name")
			os.Exit(1)
		}
	}

	err := app.Run(os.Args)
	if err != nil {
		if len(os.Args) == 1 {
			// Just ran the command with no flags
			return
		}
		fmt.Println(err)
		os.Exit(1)
	}
}
