package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"runtime"
	"strconv"
	"time"

	"github.com/gogpu/gg"

	"github.com/irfansharif/spectre/internal/app"
	"github.com/irfansharif/spectre/internal/gen"
)

const logFlags = log.Ltime | log.Lshortfile

var (
	runtimeLogger *log.Logger = log.New(io.Discard, "", 0)
	genLogger     *log.Logger = log.New(io.Discard, "", 0)
)

func init() {
	// OpenGL contexts are tied to specific OS threads - let's pin to just one.
	runtime.LockOSThread()
	log.SetFlags(logFlags)

	if os.Getenv("SPECTRE_DEBUG_RUNTIME") == "1" {
		runtimeLogger = log.New(os.Stdout, "[runtime] ", log.Ltime|log.Lmsgprefix)
	}
	if os.Getenv("SPECTRE_DEBUG_GEN") == "1" {
		genLogger = log.New(os.Stdout, "[gen] ", log.Ltime|log.Lmsgprefix)
	}
	if os.Getenv("SPECTRE_DEBUG_RENDER") == "1" {
		gg.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}
}

func main() {
	cfg := app.DefaultConfig()
	label := flag.String("label", cfg.Label.String(), "root label to draw (Gamma, Delta, Theta, Lambda, Xi, Pi, Sigma, Phi, Psi)")
	flag.IntVar(&cfg.Iterations, "n", cfg.Iterations, fmt.Sprintf("substitution steps (0-%d)", app.MaxIterations))
	flag.StringVar(&cfg.Output, "out", "", "output file (.svg, .png or .pdf)")
	flag.IntVar(&cfg.Width, "width", cfg.Width, "canvas width in pixels")
	flag.IntVar(&cfg.Height, "height", cfg.Height, "canvas height in pixels")
	flag.Float64Var(&cfg.Scale, "scale", cfg.Scale, "pixels per tile unit about the canvas center; 0 fits the tiling")
	flag.StringVar(&cfg.Palette, "palette", cfg.Palette, "color scheme: default or random")
	seedFlag := flag.Int64("seed", 0, "seed for the random palette; 0 uses SPECTRE_SEED or the clock")
	flag.IntVar(&cfg.Shimmer, "shimmer", cfg.Shimmer, "brightness jitter for the random palette; negative disables it")
	flag.Float64Var(&cfg.StrokeWidth, "stroke", cfg.StrokeWidth, "outline width in tile units; 0 disables outlines")
	flag.BoolVar(&cfg.Window, "window", false, "show the tiling in an OpenGL window")
	flag.Parse()

	l, err := gen.ParseLabel(*label)
	if err != nil {
		log.Fatalf("Invalid -label: %v", err)
	}
	cfg.Label = l
	cfg.Seed = *seedFlag
	if cfg.Seed == 0 {
		cfg.Seed = seed()
	}

	application, err := app.NewApp(cfg, genLogger)
	if err != nil {
		log.Fatalf("Failed to set up: %v", err)
	}

	if cfg.Output != "" {
		res, err := application.RenderFile()
		if err != nil {
			log.Fatalf("Failed to render %s: %v", cfg.Output, err)
		}
		fmt.Printf("Spectre tiling generated successfully: %s (%d tiles, %d iterations, %s)\n",
			cfg.Output, res.Tiles, cfg.Iterations, res.Elapsed.Round(time.Millisecond))
	}

	if cfg.Window {
		if err := runWindow(application); err != nil {
			log.Fatalf("Window failed: %v", err)
		}
	}
}

func seed() int64 {
	seedStr := os.Getenv("SPECTRE_SEED")
	now := time.Now().Unix()
	if seedStr == "" {
		return now
	}
	seed, err := strconv.ParseInt(seedStr, 10, 64)
	if err != nil {
		log.Fatalf("Invalid SPECTRE_SEED value '%s': %v", seedStr, err)
	}
	return seed
}
