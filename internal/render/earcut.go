package render

import (
	"fmt"

	"github.com/rclancey/earcut"

	"github.com/irfansharif/spectre/internal/geom"
)

// earClip triangulates a polygon using the earcut algorithm. It takes in a list
// of polygon vertices (either winding) and returns a slice of triangles, each
// represented as a [3]geom.Point.
func earClip(polygonPoints []geom.Point) ([][3]geom.Point, error) {
	if len(polygonPoints) < 3 {
		return nil, fmt.Errorf("degenerate polygon (%d vertices < 3)", len(polygonPoints))
	}

	// Convert polygon points to flat coordinate array required by earcut.
	// Format: [x0, y0, x1, y1, ..., xn, yn]
	vertexCoords := make([]float64, len(polygonPoints)*2)
	for i, point := range polygonPoints {
		vertexCoords[i*2] = point.X
		vertexCoords[i*2+1] = point.Y
	}

	triangleIndices, err := earcut.Earcut(vertexCoords, nil /* holeIndices */, 2 /* dim */)
	if err != nil {
		return nil, fmt.Errorf("triangulation failed for %d-vertex polygon: %w", len(polygonPoints), err)
	}
	if len(triangleIndices)%3 != 0 {
		return nil, fmt.Errorf("invalid triangle count (indices: %d, not divisible by 3)", len(triangleIndices))
	}

	triangles := make([][3]geom.Point, len(triangleIndices)/3)
	for i := range triangles {
		for v := 0; v < 3; v++ {
			idx := triangleIndices[i*3+v]
			triangles[i][v] = geom.MakePoint(vertexCoords[idx*2], vertexCoords[idx*2+1])
		}
	}
	return triangles, nil
}
