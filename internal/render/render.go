// Package render draws generated spectre tilings. Every target implements
// gen.Surface:
//   - SVG serializes each tile as a <path> carrying its transform.
//   - Raster rasterizes into an image and encodes PNG.
//   - Mesh triangulates tiles into interleaved vertex data, which Renderer
//     uploads to a single OpenGL buffer and draws under a zoom/pan view.
package render

import (
	"fmt"
	"time"

	"github.com/irfansharif/spectre/internal/geom"
)

// Renderer draws an uploaded Mesh with OpenGL. Geometry is uploaded once in
// canvas coordinates; zoom and pan are applied through the shader transform.
type Renderer struct {
	w, h             int
	zoom, panX, panY float64

	shaderManager *ShaderManager
	buffer        *vertexBuffer
	stats         Stats
}

// Stats tracks rendering performance metrics.
type Stats struct {
	Polygons         int     // filled polygons in the uploaded mesh
	Triangles        int     // triangles in the uploaded mesh
	LineSegments     int     // outline segments in the uploaded mesh
	GPUBytes         int     // size of the vertex buffer
	LastUploadTimeMs float64 // time spent in last Upload() call in milliseconds
	LastDrawTimeUs   float64 // time spent in last Draw() call in microseconds
}

// NewRenderer compiles shaders and allocates the vertex buffer. A GL context
// must be current.
func NewRenderer() (*Renderer, error) {
	sm, err := NewShaderManager()
	if err != nil {
		return nil, err
	}
	return &Renderer{
		zoom:          1.0,
		shaderManager: sm,
		buffer:        newVertexBuffer(),
	}, nil
}

func (r *Renderer) SetView(w, h int, zoom, panX, panY float64) {
	r.w, r.h = w, h
	r.zoom = zoom
	r.panX, r.panY = panX, panY
}

// Upload replaces the drawn geometry with the mesh contents.
func (r *Renderer) Upload(m *Mesh) error {
	if err := m.Err(); err != nil {
		return fmt.Errorf("render: cannot upload mesh: %w", err)
	}
	start := time.Now()
	r.buffer.upload(m.Triangles(), m.Lines())
	r.stats.Polygons = m.Polygons()
	r.stats.Triangles = len(m.Triangles()) / FloatsPerVertex / 3
	r.stats.LineSegments = len(m.Lines()) / FloatsPerVertex / 2
	r.stats.GPUBytes = r.buffer.bytes
	r.stats.LastUploadTimeMs = float64(time.Since(start).Microseconds()) / 1000.0
	return nil
}

// Draw issues the draw calls for the uploaded mesh.
func (r *Renderer) Draw() error {
	if r.w <= 0 || r.h <= 0 {
		return fmt.Errorf("render: invalid viewport dimensions %dx%d", r.w, r.h)
	}
	start := time.Now()
	r.shaderManager.SetTransform(r.computeTransformMatrix())
	r.buffer.draw()
	r.stats.LastDrawTimeUs = float64(time.Since(start).Microseconds())
	return nil
}

// Stats returns the current performance statistics
func (r *Renderer) Stats() Stats {
	return r.stats
}

// Cleanup releases GL resources.
func (r *Renderer) Cleanup() {
	r.buffer.cleanup()
	r.shaderManager.Cleanup()
}

// computeTransformMatrix computes the complete transformation matrix from
// canvas coordinates to OpenGL NDC.
func (r *Renderer) computeTransformMatrix() [16]float32 {
	return affineToMatrix4(r.applyScreenToNDCTransform(r.canvasToScreen()))
}

// canvasToScreen maps canvas coordinates to framebuffer pixels.
func (r *Renderer) canvasToScreen() geom.Affine {
	transform := geom.Identity()
	transform = r.applyZoomTransform(transform)
	return r.applyPanTransform(transform)
}

// ScreenToCanvas maps a framebuffer pixel back to canvas coordinates under
// the current view.
func (r *Renderer) ScreenToCanvas(p geom.Point) (geom.Point, error) {
	inv, err := r.canvasToScreen().Inv()
	if err != nil {
		return geom.Point{}, fmt.Errorf("render: view at zoom %v: %w", r.zoom, err)
	}
	return inv.MulPoint(p), nil
}

// applyZoomTransform applies zoom scaling around the viewport center.
func (r *Renderer) applyZoomTransform(baseTransform geom.Affine) geom.Affine {
	viewportCenterX := float64(r.w) / 2.0
	viewportCenterY := float64(r.h) / 2.0

	translateToOrigin := geom.Translate(-viewportCenterX, -viewportCenterY)
	uniformScale := geom.Scale(r.zoom, r.zoom)
	translateBack := geom.Translate(viewportCenterX, viewportCenterY)

	return translateBack.Mul(uniformScale.Mul(translateToOrigin.Mul(baseTransform)))
}

// applyPanTransform applies pan translation in screen space.
func (r *Renderer) applyPanTransform(baseTransform geom.Affine) geom.Affine {
	return geom.Translate(r.panX, r.panY).Mul(baseTransform)
}

// applyScreenToNDCTransform converts screen coordinates (y down) to OpenGL
// NDC (y up).
func (r *Renderer) applyScreenToNDCTransform(baseTransform geom.Affine) geom.Affine {
	screenToNDC := geom.MakeAffine(
		2.0/float64(r.w), 0, -1,
		0, -2.0/float64(r.h), 1,
	)
	return screenToNDC.Mul(baseTransform)
}

// affineToMatrix4 converts an affine transform to a column-major 4x4 matrix.
func affineToMatrix4(transform geom.Affine) [16]float32 {
	return [16]float32{
		float32(transform.A), float32(transform.D), 0, 0,
		float32(transform.B), float32(transform.E), 0, 0,
		0, 0, 1, 0,
		float32(transform.C), float32(transform.F), 0, 1,
	}
}
