package mesh

import (
	"encoding/binary"
	"math"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/glyphmesh/geom"
)

// VertexStride is the byte stride per vertex in the vertex stream.
// Layout per vertex:
//
//	position (vec2<f32>) = 8 bytes  (location 0)
//	klm      (vec3<f32>) = 12 bytes (location 1)
//
// Total = 20 bytes per vertex.
const VertexStride = 20

// floatsPerVertex is the number of float32 values per vertex.
const floatsPerVertex = 5

// Vertex is a control point decorated with implicit-curve coefficients.
type Vertex struct {
	X, Y    float64
	K, L, M float64
}

// Point returns the position of v.
func (v Vertex) Point() geom.Point { return geom.Pt(v.X, v.Y) }

// solidVertex marks p as always inside: k = -1 makes k³ − l·m negative.
func solidVertex(p geom.Point) Vertex {
	return Vertex{X: p.X, Y: p.Y, K: -1}
}

// Triangle is a curved triangle, three decorated vertices.
type Triangle [3]Vertex

// SolidTriangle is a straight-edged triangle from polygon triangulation.
type SolidTriangle [3]geom.Point

// Area returns the signed area of t.
func (t SolidTriangle) Area() float64 {
	return geom.TriangleArea(t[0], t[1], t[2])
}

// Stream is the render-ready vertex stream: (x, y, k, l, m) per vertex, three
// vertices per triangle, solid triangles first. The zero value is empty and
// ready to use.
type Stream struct {
	data []float32
}

// AppendSolid appends straight-fill triangles with the sentinel
// coefficients (k=-1, l=0, m=0).
func (s *Stream) AppendSolid(tris ...SolidTriangle) {
	for _, t := range tris {
		for _, p := range t {
			s.push(solidVertex(p))
		}
	}
}

// AppendCurve appends curved triangles with their coefficients.
func (s *Stream) AppendCurve(tris ...Triangle) {
	for _, t := range tris {
		for _, v := range t {
			s.push(v)
		}
	}
}

func (s *Stream) push(v Vertex) {
	s.data = append(s.data,
		float32(v.X), float32(v.Y),
		float32(v.K), float32(v.L), float32(v.M))
}

// Vertices returns the flat float data. The slice aliases the stream.
func (s *Stream) Vertices() []float32 { return s.data }

// VertexCount returns the number of vertices. It is always a multiple of 3.
func (s *Stream) VertexCount() int { return len(s.data) / floatsPerVertex }

// Len returns the number of triangles.
func (s *Stream) Len() int { return s.VertexCount() / 3 }

// Reset empties the stream, keeping its capacity.
func (s *Stream) Reset() { s.data = s.data[:0] }

// Vertex returns vertex i.
func (s *Stream) Vertex(i int) Vertex {
	d := s.data[i*floatsPerVertex : (i+1)*floatsPerVertex]
	return Vertex{
		X: float64(d[0]), Y: float64(d[1]),
		K: float64(d[2]), L: float64(d[3]), M: float64(d[4]),
	}
}

// Bytes encodes the stream as little-endian float32 values, ready for
// upload to a vertex buffer described by VertexBufferLayout.
func (s *Stream) Bytes() []byte {
	buf := make([]byte, len(s.data)*4)
	for i, f := range s.data {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

// VertexBufferLayout describes the stream to a render pipeline.
func VertexBufferLayout() gputypes.VertexBufferLayout {
	return gputypes.VertexBufferLayout{
		ArrayStride: VertexStride,
		StepMode:    gputypes.VertexStepModeVertex,
		Attributes: []gputypes.VertexAttribute{
			{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0}, // position
			{Format: gputypes.VertexFormatFloat32x3, Offset: 8, ShaderLocation: 1}, // klm
		},
	}
}
