package render

import (
	"github.com/go-gl/gl/v4.1-core/gl"
)

// vertexStride is the byte size of one interleaved vertex.
const vertexStride = FloatsPerVertex * 4

// vertexBuffer is one VAO/VBO pair holding interleaved position and color
// data. Triangles occupy the front of the buffer and outline segments
// follow, so a frame is two draw calls against the same VAO.
type vertexBuffer struct {
	vao, vbo uint32

	triangleVertices int32
	lineVertices     int32
	bytes            int
}

func newVertexBuffer() *vertexBuffer {
	var vao, vbo uint32
	gl.GenVertexArrays(1, &vao)
	gl.GenBuffers(1, &vbo)

	gl.BindVertexArray(vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)

	// Position attribute (location = 0): 2 floats.
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, vertexStride, gl.PtrOffset(0))
	// Color attribute (location = 1): 4 floats.
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 4, gl.FLOAT, false, vertexStride, gl.PtrOffset(8))

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
	return &vertexBuffer{vao: vao, vbo: vbo}
}

// upload replaces the buffer contents with the given triangles and lines.
func (b *vertexBuffer) upload(triangles, lines []float32) {
	data := make([]float32, 0, len(triangles)+len(lines))
	data = append(data, triangles...)
	data = append(data, lines...)

	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	if len(data) == 0 {
		gl.BufferData(gl.ARRAY_BUFFER, 0, nil, gl.STATIC_DRAW)
	} else {
		gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	b.triangleVertices = int32(len(triangles) / FloatsPerVertex)
	b.lineVertices = int32(len(lines) / FloatsPerVertex)
	b.bytes = len(data) * 4
}

func (b *vertexBuffer) draw() {
	gl.BindVertexArray(b.vao)
	if b.triangleVertices > 0 {
		gl.DrawArrays(gl.TRIANGLES, 0, b.triangleVertices)
	}
	if b.lineVertices > 0 {
		gl.DrawArrays(gl.LINES, b.triangleVertices, b.lineVertices)
	}
	gl.BindVertexArray(0)
}

func (b *vertexBuffer) cleanup() {
	if b.vao != 0 {
		gl.DeleteVertexArrays(1, &b.vao)
		b.vao = 0
	}
	if b.vbo != 0 {
		gl.DeleteBuffers(1, &b.vbo)
		b.vbo = 0
	}
}
