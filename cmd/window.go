package main

import (
	"fmt"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/irfansharif/spectre/internal/app"
	"github.com/irfansharif/spectre/internal/geom"
	"github.com/irfansharif/spectre/internal/render"
)

func makeTitle(fps float64, avgFrameTime float64, res app.Result, stats render.Stats, cursor geom.Point) string {
	return fmt.Sprintf("Spectre (%.1f FPS, %.2fms/frame, %d tiles, %d triangles, %d segments, %.2fµs/draw, %.1fKiB GPU, cursor %.2f,%.2f)",
		fps,
		avgFrameTime,
		res.Tiles,
		stats.Triangles,
		stats.LineSegments,
		stats.LastDrawTimeUs,
		float64(stats.GPUBytes)/1024.0,
		cursor.X, cursor.Y,
	)
}

// runWindow shows the tiling in an OpenGL window until it is closed. The
// mesh is built once at the configured canvas size and fitted to the
// framebuffer, which follows window resizes.
func runWindow(application *app.App) error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("initializing GLFW: %w", err)
	}
	defer glfw.Terminate()

	// Configure GLFW window hints - use OpenGL 4.1.
	glfw.DefaultWindowHints()
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)

	cfg := application.Config
	window, err := glfw.CreateWindow(cfg.Width, cfg.Height, "Spectre", nil, nil)
	if err != nil {
		return fmt.Errorf("creating window: %w", err)
	}
	window.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		return fmt.Errorf("initializing OpenGL: %w", err)
	}

	renderer, err := render.NewRenderer()
	if err != nil {
		return err
	}
	defer renderer.Cleanup()

	mesh, res, err := application.BuildMesh()
	if err != nil {
		return err
	}
	if err := renderer.Upload(mesh); err != nil {
		return err
	}
	runtimeLogger.Printf("Uploaded %d tiles (%d triangles) in %.2f ms",
		res.Tiles, renderer.Stats().Triangles, renderer.Stats().LastUploadTimeMs)

	fbW, fbH := window.GetFramebufferSize()
	view := app.NewView(fbW, fbH)
	fit := func(w, h int) {
		view.SetViewport(w, h)
		view.FitCanvas(cfg.Width, cfg.Height)
		renderer.SetView(w, h, view.Zoom, view.PanX, view.PanY)
	}
	fit(fbW, fbH)

	window.SetFramebufferSizeCallback(func(_ *glfw.Window, newW, newH int) {
		if newW > 0 && newH > 0 {
			fit(newW, newH)
		}
	})
	// Cursor position in tile coordinates, shown in the title.
	var cursor geom.Point
	window.SetCursorPosCallback(func(wnd *glfw.Window, xpos, ypos float64) {
		scaleX, scaleY := wnd.GetContentScale()
		fb := geom.MakePoint(xpos*float64(scaleX), ypos*float64(scaleY))
		canvas, err := renderer.ScreenToCanvas(fb)
		if err != nil {
			return
		}
		if p, err := application.TilePoint(canvas); err == nil {
			cursor = p
		}
	})
	window.SetKeyCallback(func(wnd *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if key == glfw.KeyEscape && action == glfw.Press {
			wnd.SetShouldClose(true)
		}
	})

	frameCount, frameTimeSum := 0, 0.0
	lastFPSUpdate := time.Now()

	for !window.ShouldClose() {
		frameStart := time.Now()

		w, h := window.GetFramebufferSize()
		gl.Viewport(0, 0, int32(w), int32(h))
		gl.ClearColor(1, 1, 1, 1)
		gl.Clear(gl.COLOR_BUFFER_BIT)

		if err := renderer.Draw(); err != nil {
			return err
		}
		window.SwapBuffers()
		glfw.WaitEventsTimeout(0.1)

		frameTime := time.Since(frameStart).Seconds() * 1000.0 // ms
		frameTimeSum += frameTime

		frameCount++
		now := time.Now()
		if now.Sub(lastFPSUpdate) >= time.Second {
			fps := float64(frameCount) / now.Sub(lastFPSUpdate).Seconds()
			avgFrameTime := frameTimeSum / float64(frameCount)
			frameCount, frameTimeSum = 0, 0.0
			lastFPSUpdate = now

			stats := renderer.Stats()
			window.SetTitle(makeTitle(fps, avgFrameTime, res, stats, cursor))

			runtimeLogger.Println("=== Performance statistics ===")
			runtimeLogger.Printf("Frame rate:     %.1f FPS (%.2f ms/frame)", fps, avgFrameTime)
			runtimeLogger.Printf("Shapes:         %d tiles, %d triangles, %d segments", stats.Polygons, stats.Triangles, stats.LineSegments)
			runtimeLogger.Printf("GPU memory:     %.2f KiB", float64(stats.GPUBytes)/1024.0)
			runtimeLogger.Printf("Render time:    %.2f µs (last draw)", stats.LastDrawTimeUs)
			runtimeLogger.Printf("View:           zoom %.3f, pan (%.1f, %.1f)", view.Zoom, view.PanX, view.PanY)
			runtimeLogger.Println("==============================")
		}
	}
	return nil
}
