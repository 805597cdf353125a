package main

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/anthonynsimon/bild/transform"
	"github.com/urfave/cli/v2"

	"radiolcd/app"
	"radiolcd/hal"
	"radiolcd/internal/buildinfo"
	"radiolcd/internal/config"
	"radiolcd/lcd"
	"radiolcd/lcd/bitmap"
	"radiolcd/lcd/fonts"
)

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	tool := cli.NewApp()

	tool.Name = "lcdtool"
	tool.Usage = "Radio LCD bitmap and screen utility"
	tool.Version = buildinfo.String()

	tool.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "profile",
			EnvVars: []string{config.EnvProfile},
			Usage:   "path to display profile (TOML)",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}
	tool.Before = func(c *cli.Context) error {
		if c.Bool("verbose") {
			lcd.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
		}
		return nil
	}

	tool.Commands = []*cli.Command{
		{
			Name:      "info",
			Usage:     "Decode an image and print what the display would get",
			ArgsUsage: "FILE",
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}
				p, err := config.Load(c.String("profile"))
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				surf, strategy, err := load(c.Args().First(), p.Limits())
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				fmt.Printf("%s: %dx%d via %s decoder, %d samples, fit %.3f on %dx%d\n",
					c.Args().First(), surf.Width(), surf.Height(), strategy,
					len(surf.Samples()), lcd.FitScale(surf, p.Display.Width, p.Display.Height),
					p.Display.Width, p.Display.Height)
				return nil
			},
		},
		{
			Name:      "decode",
			Usage:     "Decode an image as the display would and save it as PNG",
			ArgsUsage: "FILE OUTPUT",
			Action: func(c *cli.Context) error {
				if c.NArg() < 2 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}
				p, err := config.Load(c.String("profile"))
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				surf, _, err := load(c.Args().Get(0), p.Limits())
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				if err := writePNG(c.Args().Get(1), surf); err != nil {
					return cli.NewExitError(err, 1)
				}
				return nil
			},
		},
		{
			Name:      "mkbmp",
			Usage:     "Convert an image to a display BMP",
			ArgsUsage: "FILE OUTPUT",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:  "depth",
					Value: 32,
					Usage: "bits per pixel: 32 (color) or 4 (16 grays)",
				},
				&cli.BoolFlag{
					Name:  "fit",
					Usage: "shrink the image to fit the display",
				},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() < 2 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}
				p, err := config.Load(c.String("profile"))
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				if err := mkbmp(c.Args().Get(0), c.Args().Get(1), c.Int("depth"), c.Bool("fit"), p); err != nil {
					return cli.NewExitError(err, 1)
				}
				return nil
			},
		},
		{
			Name:  "preview",
			Usage: "Render the telemetry screen with simulated values",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "logo",
					Usage: "image drawn on the screen",
				},
				&cli.BoolFlag{
					Name:  "headless",
					Usage: "render without a window",
				},
				&cli.IntFlag{
					Name:  "frames",
					Value: 120,
					Usage: "frames to render in headless mode",
				},
				&cli.IntFlag{
					Name:  "scale",
					Value: 2,
					Usage: "window scale factor",
				},
				&cli.StringFlag{
					Name:  "out",
					Usage: "save the last headless frame as PNG",
				},
			},
			Action: func(c *cli.Context) error {
				if err := preview(c); err != nil {
					return cli.NewExitError(err, 1)
				}
				return nil
			},
		},
	}

	return tool
}

// load decodes path from the storage rooted at its directory.
func load(path string, lim bitmap.Limits) (*lcd.Surface, bitmap.Strategy, error) {
	st, err := hal.NewHostStorage(filepath.Dir(path))
	if err != nil {
		return nil, bitmap.StrategyUnknown, err
	}
	name := filepath.Base(path)

	f, err := st.Open(name)
	if err != nil {
		return nil, bitmap.StrategyUnknown, err
	}
	head := make([]byte, 32)
	n, _ := f.Read(head)
	_ = f.Close()
	strategy := bitmap.Sniff(head[:n], name)

	surf, err := bitmap.Load(st, name, lim)
	return surf, strategy, err
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func mkbmp(in, out string, depth int, fit bool, p config.Profile) error {
	r, err := os.Open(in)
	if err != nil {
		return err
	}
	img, format, err := image.Decode(r)
	_ = r.Close()
	if err != nil {
		return fmt.Errorf("%s: %w", in, err)
	}
	lcd.Logger().Debug("mkbmp: decoded", "path", in, "format", format, "size", img.Bounds().Size())

	if fit {
		surf := bitmap.FromImage(img)
		if scale := lcd.FitScale(surf, p.Display.Width, p.Display.Height); scale < 1 {
			w := max(1, int(float32(surf.Width())*scale))
			h := max(1, int(float32(surf.Height())*scale))
			img = transform.Resize(img, w, h, transform.Lanczos)
		}
	}

	if !strings.EqualFold(filepath.Ext(out), ".bmp") {
		return errors.New("output must have a .bmp extension")
	}
	f, err := os.Create(out)
	if err != nil {
		return err
	}
	if err := bitmap.Encode(f, img, depth); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func preview(c *cli.Context) error {
	p, err := config.Load(c.String("profile"))
	if err != nil {
		return err
	}
	res, err := fonts.NewResources()
	if err != nil {
		return err
	}
	defer res.Release()
	if err := p.Apply(res); err != nil {
		return err
	}

	var logo *lcd.Surface
	if path := c.String("logo"); path != "" {
		if logo, _, err = load(path, p.Limits()); err != nil {
			return err
		}
	}

	surf := lcd.NewSurface(p.Display.Width, p.Display.Height)
	screen := app.NewScreen(lcd.NewCanvas(surf, res), logo)
	next := screen.Frame(app.Simulate)

	if !c.Bool("headless") {
		return hal.RunWindow(hal.WindowConfig{
			Title:  "lcdtool preview",
			Width:  p.Display.Width,
			Height: p.Display.Height,
			Scale:  c.Int("scale"),
		}, next)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	last, err := hal.RunHeadless(ctx, hal.HeadlessConfig{
		Width:  p.Display.Width,
		Height: p.Display.Height,
		Hz:     60,
		Frames: uint64(max(1, c.Int("frames"))),
	}, next)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	if out := c.String("out"); out != "" {
		return writePNG(out, last)
	}
	return nil
}
