package main

import (
	"context"
	"fmt"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"text/tabwriter"

	"github.com/bodgit/colorful"
	"github.com/bodgit/colorful/preview"
	"github.com/urfave/cli/v2"
)

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func newLogger(c *cli.Context) *log.Logger {
	logger := log.New(ioutil.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}
	return logger
}

// openCatalog returns nil if no database was requested.
func openCatalog(c *cli.Context) (*colorful.Catalog, error) {
	if c.String("db") == "" {
		return nil, nil
	}
	return colorful.NewCatalog(c.String("db"))
}

func withConverter(c *cli.Context, fn func(*colorful.Converter) error) error {
	catalog, err := openCatalog(c)
	if err != nil {
		return err
	}
	if catalog != nil {
		defer catalog.Close()
	}
	return fn(colorful.New(catalog, newLogger(c)))
}

func main() {
	app := cli.NewApp()

	app.Name = "colorful"
	app.Usage = "Split 16-bit images into 8-bit main and residual pairs"
	app.Version = "1.0.0"

	modeFlag := &cli.StringFlag{
		Name:    "mode",
		Aliases: []string{"m"},
		EnvVars: []string{"COLORFUL_MODE"},
		Value:   "10",
		Usage:   "\"9\" for 9-bit, anything else for 10-bit",
	}

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			EnvVars: []string{"COLORFUL_DB"},
			Usage:   "path to conversion catalog, disabled if empty",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	// With no command, behave like the original interactive converter
	app.Action = func(c *cli.Context) error {
		cwd, err := os.Getwd()
		if err != nil {
			return cli.NewExitError(err, 1)
		}
		return withConverter(c, func(conv *colorful.Converter) error {
			return interactive(os.Stdin, os.Stdout, conv, cwd)
		})
	}

	app.Commands = []*cli.Command{
		{
			Name:        "convert",
			Usage:       "Convert a single image",
			Description: "",
			ArgsUsage:   "FILE",
			Flags: []cli.Flag{
				modeFlag,
				&cli.StringFlag{
					Name:  "name",
					Value: "cr",
					Usage: "write the pair as NAME.png and NAME_.png",
				},
				&cli.IntFlag{
					Name:  "workers",
					Value: 1,
					Usage: "split rows across this many goroutines",
				},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				mode := colorful.ParseMode(c.String("mode"))
				mainFile, residualFile := colorful.PairNames(filepath.Dir(c.String("name")), filepath.Base(c.String("name")))

				if err := withConverter(c, func(conv *colorful.Converter) error {
					return conv.Convert(context.Background(), c.Args().First(), mainFile, residualFile, colorful.Options{
						Mode:    mode,
						Workers: c.Int("workers"),
					})
				}); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "batch",
			Usage:       "Convert every 16-bit image in a directory tree",
			Description: "",
			ArgsUsage:   "DIRECTORY",
			Flags: []cli.Flag{
				modeFlag,
				&cli.StringFlag{
					Name:  "output",
					Value: "colorful",
					Usage: "directory to write pairs to",
				},
				&cli.IntFlag{
					Name:  "workers",
					Value: runtime.NumCPU(),
					Usage: "number of images to convert at once",
				},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				mode := colorful.ParseMode(c.String("mode"))

				if err := withConverter(c, func(conv *colorful.Converter) error {
					return conv.Batch(c.Args().First(), c.String("output"), mode, c.Int("workers"))
				}); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "preview",
			Usage:       "Render a pair as an animated GIF of its dithering frames",
			Description: "Loads NAME.png and NAME_.png and writes NAME.gif",
			ArgsUsage:   "NAME",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:  "delay",
					Value: 2,
					Usage: "frame delay in hundredths of a second",
				},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				if err := writePreview(c.Args().First(), c.Int("delay")); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "history",
			Usage:       "List recorded conversions",
			Description: "",
			Action: func(c *cli.Context) error {
				catalog, err := openCatalog(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				if catalog == nil {
					return cli.NewExitError("no catalog, use --db", 1)
				}
				defer catalog.Close()

				records, err := catalog.List()
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				w := tabwriter.NewWriter(os.Stdout, 0, 8, 1, ' ', 0)
				fmt.Fprintln(w, "SOURCE\tMODE\tSIZE\tMAIN\tRESIDUAL\tCREATED")
				for _, r := range records {
					fmt.Fprintf(w, "%s\t%s\t%dx%d\t%s\t%s\t%s\n", r.Source, r.Mode, r.Width, r.Height, r.Main, r.Residual, r.Created.Format("2006-01-02 15:04:05"))
				}
				return w.Flush()
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func writePreview(name string, delay int) error {
	main, residual, err := preview.LoadPair(name)
	if err != nil {
		return err
	}

	frames, err := preview.Frames(main, residual)
	if err != nil {
		return err
	}

	f, err := os.Create(name + ".gif")
	if err != nil {
		return err
	}

	if err := preview.EncodeGIF(f, frames, delay); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}
