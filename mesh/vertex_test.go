package mesh

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/glyphmesh/geom"
)

func TestStream(t *testing.T) {
	var s Stream
	s.AppendSolid(SolidTriangle{geom.Pt(0, 0), geom.Pt(1, 0), geom.Pt(0, 1)})
	s.AppendCurve(Triangle{
		{X: 2, Y: 2, K: 0.5, L: 0.25, M: 0.125},
		{X: 3, Y: 2},
		{X: 2, Y: 3},
	})

	if got := s.VertexCount(); got != 6 {
		t.Fatalf("VertexCount: got %d, want 6", got)
	}
	if got := s.Len(); got != 2 {
		t.Errorf("Len: got %d, want 2", got)
	}
	if got := len(s.Vertices()); got != 30 {
		t.Errorf("len(Vertices): got %d, want 30", got)
	}
	if got, want := s.Vertex(1), (Vertex{X: 1, Y: 0, K: -1}); got != want {
		t.Errorf("Vertex(1): got %+v, want %+v", got, want)
	}
	if got, want := s.Vertex(3), (Vertex{X: 2, Y: 2, K: 0.5, L: 0.25, M: 0.125}); got != want {
		t.Errorf("Vertex(3): got %+v, want %+v", got, want)
	}

	b := s.Bytes()
	if len(b) != 6*VertexStride {
		t.Fatalf("len(Bytes): got %d, want %d", len(b), 6*VertexStride)
	}
	// Vertex 3, k component.
	if got := math.Float32frombits(binary.LittleEndian.Uint32(b[3*VertexStride+8:])); got != 0.5 {
		t.Errorf("encoded k: got %v, want 0.5", got)
	}

	s.Reset()
	if s.VertexCount() != 0 {
		t.Errorf("VertexCount after Reset: got %d, want 0", s.VertexCount())
	}
}

func TestVertexBufferLayout(t *testing.T) {
	l := VertexBufferLayout()
	if l.ArrayStride != VertexStride {
		t.Errorf("ArrayStride: got %d, want %d", l.ArrayStride, VertexStride)
	}
	if len(l.Attributes) != 2 {
		t.Fatalf("attributes: got %d, want 2", len(l.Attributes))
	}
	if l.Attributes[1].Format != gputypes.VertexFormatFloat32x3 || l.Attributes[1].Offset != 8 {
		t.Errorf("klm attribute: got %+v", l.Attributes[1])
	}
}
