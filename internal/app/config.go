package app

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/irfansharif/spectre/internal/gen"
)

// MaxIterations bounds the substitution depth. Six steps already produce
// about 35k polygons for Delta.
const MaxIterations = 6

var (
	// ErrUnsupportedFormat is returned for output paths whose extension has no
	// writer.
	ErrUnsupportedFormat = errors.New("app: unsupported output format")

	// ErrTooManyIterations is returned when N exceeds MaxIterations.
	ErrTooManyIterations = errors.New("app: too many iterations")
)

// Output formats.
const (
	FormatSVG = "svg"
	FormatPNG = "png"
	FormatPDF = "pdf"
)

// Palette schemes.
const (
	PaletteDefault = "default"
	PaletteRandom  = "random"
)

// Config holds everything needed for one run.
type Config struct {
	Iterations  int       // substitution steps
	Label       gen.Label // root label drawn
	Output      string    // .svg, .png or .pdf path; may be empty in window mode
	Width       int       // canvas width in pixels
	Height      int       // canvas height in pixels
	Scale       float64   // pixels per tile unit; 0 fits the tiling into the canvas
	Palette     string    // PaletteDefault or PaletteRandom
	Seed        int64     // seed for PaletteRandom
	Shimmer     int       // brightness jitter for PaletteRandom; < 0 disables it
	StrokeWidth float64   // outline width in tile units; 0 disables outlines
	Window      bool      // show an OpenGL preview window
}

// DefaultConfig returns the configuration used when no flags are given.
func DefaultConfig() Config {
	return Config{
		Iterations:  3,
		Label:       gen.Delta,
		Width:       800,
		Height:      800,
		Palette:     PaletteDefault,
		Shimmer:     -1,
		StrokeWidth: gen.DefaultOutlineWidth,
	}
}

// Validate checks the configuration before any generation work is done.
func (c Config) Validate() error {
	if c.Iterations < 0 {
		return fmt.Errorf("app: %w", &gen.InvalidIterationCountError{N: c.Iterations})
	}
	if c.Iterations > MaxIterations {
		return fmt.Errorf("%w: %d (max %d)", ErrTooManyIterations, c.Iterations, MaxIterations)
	}
	if !c.Label.Valid() {
		return fmt.Errorf("app: %w", &gen.UnknownLabelError{Label: c.Label, Context: "config"})
	}
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("app: canvas must be positive, got %dx%d", c.Width, c.Height)
	}
	if c.Scale < 0 {
		return fmt.Errorf("app: scale must be >= 0, got %v", c.Scale)
	}
	if c.StrokeWidth < 0 {
		return fmt.Errorf("app: stroke width must be >= 0, got %v", c.StrokeWidth)
	}
	switch c.Palette {
	case PaletteDefault, PaletteRandom:
	default:
		return fmt.Errorf("app: unknown palette %q (want %q or %q)", c.Palette, PaletteDefault, PaletteRandom)
	}
	if c.Output == "" {
		if !c.Window {
			return errors.New("app: an output path is required unless a window is requested")
		}
		return nil
	}
	_, err := FormatOf(c.Output)
	return err
}

// FormatOf returns the output format implied by path's extension.
func FormatOf(path string) (string, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".svg":
		return FormatSVG, nil
	case ".png":
		return FormatPNG, nil
	case ".pdf":
		return FormatPDF, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}
