// Package app ties generation and rendering together for one run: it
// validates the configuration, builds the tiling once, picks the viewport and
// palette, and draws onto whichever surface the output calls for.
package app

import (
	"fmt"
	"image/color"
	"log"
	"os"
	"time"

	"github.com/irfansharif/spectre/internal/gen"
	"github.com/irfansharif/spectre/internal/geom"
	"github.com/irfansharif/spectre/internal/render"
)

// fitMargin is the fraction of the canvas left blank on each side when the
// tiling is fitted.
const fitMargin = 0.05

var background = color.RGBA{R: 255, G: 255, B: 255, A: 255}

// App encapsulates the main application state and logic.
type App struct {
	Config  Config
	Tiling  *gen.Tiling
	Palette gen.Palette
	logger  *log.Logger
}

// Result summarizes one draw.
type Result struct {
	Tiles   int           // polygons emitted
	Bounds  geom.Box      // drawn area in canvas coordinates
	Elapsed time.Duration // generation and drawing time
}

// NewApp validates cfg and builds the tiling.
func NewApp(cfg Config, logger *log.Logger) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	var opts []gen.Option
	if logger != nil {
		opts = append(opts, gen.WithLogger(logger))
	}
	generator, err := gen.NewGenerator(opts...)
	if err != nil {
		return nil, err
	}
	tiling, err := generator.Generate(cfg.Iterations)
	if err != nil {
		return nil, fmt.Errorf("app: generating %d iterations: %w", cfg.Iterations, err)
	}
	if _, err := tiling.Root(cfg.Label); err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}

	pal := gen.DefaultPalette()
	if cfg.Palette == PaletteRandom {
		pal = gen.RandomPalette(cfg.Seed, cfg.Shimmer)
	}
	return &App{Config: cfg, Tiling: tiling, Palette: pal, logger: logger}, nil
}

// Viewport returns the transform from tile coordinates to canvas pixels.
// With a positive scale the origin goes to the canvas center; otherwise the
// root's bounds are fitted into the canvas, less a margin.
func (app *App) Viewport() (geom.Affine, error) {
	w, h := float64(app.Config.Width), float64(app.Config.Height)
	if app.Config.Scale > 0 {
		s := app.Config.Scale
		return geom.Translate(w/2, h/2).Mul(geom.Scale(s, s)), nil
	}

	root, err := app.Tiling.Root(app.Config.Label)
	if err != nil {
		return geom.Affine{}, err
	}
	bounds := gen.Bounds(root, geom.Identity())
	dst := geom.MakeBox(fitMargin*w, fitMargin*h, (1-2*fitMargin)*w, (1-2*fitMargin)*h)
	viewport, err := geom.FillBox(bounds, dst, false)
	if err != nil {
		return geom.Affine{}, fmt.Errorf("app: fitting %v: %w", app.Config.Label, err)
	}
	return viewport, nil
}

// TilePoint maps a canvas point back to tile coordinates.
func (app *App) TilePoint(canvas geom.Point) (geom.Point, error) {
	viewport, err := app.Viewport()
	if err != nil {
		return geom.Point{}, err
	}
	inv, err := viewport.Inv()
	if err != nil {
		return geom.Point{}, fmt.Errorf("app: %w", err)
	}
	return inv.MulPoint(canvas), nil
}

// Render draws the configured root onto s.
func (app *App) Render(s gen.Surface) (Result, error) {
	start := time.Now()
	viewport, err := app.Viewport()
	if err != nil {
		return Result{}, err
	}
	dc := gen.NewDrawContext(s, app.Palette)
	dc.OutlineWidth = app.Config.StrokeWidth

	n, err := app.Tiling.Draw(dc, app.Config.Label, viewport)
	if err != nil {
		return Result{}, err
	}
	root, _ := app.Tiling.Root(app.Config.Label)
	return Result{
		Tiles:   n,
		Bounds:  gen.Bounds(root, viewport),
		Elapsed: time.Since(start),
	}, nil
}

// RenderFile draws into the configured output file, choosing the writer by
// extension.
func (app *App) RenderFile() (Result, error) {
	format, err := FormatOf(app.Config.Output)
	if err != nil {
		return Result{}, err
	}

	f, err := os.Create(app.Config.Output)
	if err != nil {
		return Result{}, fmt.Errorf("app: %w", err)
	}
	res, err := app.writeTo(f, format)
	if cerr := f.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("app: %w", cerr)
	}
	if err != nil {
		return Result{}, err
	}
	if app.logger != nil {
		app.logger.Printf("wrote %d tiles to %s in %s", res.Tiles, app.Config.Output, res.Elapsed)
	}
	return res, nil
}

func (app *App) writeTo(f *os.File, format string) (Result, error) {
	switch format {
	case FormatSVG:
		s := render.NewSVG(app.Config.Width, app.Config.Height)
		res, err := app.Render(s)
		if err != nil {
			return Result{}, err
		}
		if _, err := s.WriteTo(f); err != nil {
			return Result{}, fmt.Errorf("app: writing svg: %w", err)
		}
		return res, nil

	case FormatPNG:
		r := render.NewRaster(app.Config.Width, app.Config.Height, background)
		defer func() { _ = r.Close() }()
		res, err := app.Render(r)
		if err != nil {
			return Result{}, err
		}
		if err := r.EncodePNG(f); err != nil {
			return Result{}, fmt.Errorf("app: writing png: %w", err)
		}
		return res, nil

	case FormatPDF:
		p := render.NewPDF(app.Config.Width, app.Config.Height)
		res, err := app.Render(p)
		if err != nil {
			return Result{}, err
		}
		if err := p.Output(f); err != nil {
			return Result{}, fmt.Errorf("app: writing pdf: %w", err)
		}
		return res, nil

	default:
		return Result{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// BuildMesh draws the configured root into a GL mesh in canvas coordinates.
func (app *App) BuildMesh() (*render.Mesh, Result, error) {
	m := render.NewMesh()
	res, err := app.Render(m)
	if err != nil {
		return nil, Result{}, err
	}
	if err := m.Err(); err != nil {
		return nil, Result{}, fmt.Errorf("app: %w", err)
	}
	return m, res, nil
}
