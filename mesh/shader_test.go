package mesh

import (
	"strings"
	"testing"
)

func TestShaderSource(t *testing.T) {
	src := ShaderSource()
	for _, want := range []string{VertexEntryPoint, FragmentEntryPoint, "discard", "@location(1) klm"} {
		if !strings.Contains(src, want) {
			t.Errorf("shader source lacks %q", want)
		}
	}
}

func TestCompileShader(t *testing.T) {
	words, err := CompileShader()
	if err != nil {
		t.Fatalf("CompileShader: %v", err)
	}
	const spirvMagic = 0x07230203
	if len(words) == 0 {
		t.Fatal("CompileShader: empty module")
	}
	if words[0] != spirvMagic {
		t.Errorf("SPIR-V header: got %#x, want %#x", words[0], spirvMagic)
	}
}

func TestViewportUniforms(t *testing.T) {
	u := ViewportUniforms(200, 100, [4]float32{1, 0, 0, 1})
	// (0,0) maps to the top-left corner, (200,100) to the bottom-right.
	x0, y0 := 0*u.Scale[0]+u.Offset[0], 0*u.Scale[1]+u.Offset[1]
	x1, y1 := 200*u.Scale[0]+u.Offset[0], 100*u.Scale[1]+u.Offset[1]
	near := func(a, b float32) bool { return a-b < 1e-6 && b-a < 1e-6 }
	if !near(x0, -1) || !near(y0, 1) || !near(x1, 1) || !near(y1, -1) {
		t.Errorf("corners: got (%v,%v) (%v,%v), want (-1,1) (1,-1)", x0, y0, x1, y1)
	}
	if got := len(u.Bytes()); got != UniformSize {
		t.Errorf("len(Bytes): got %d, want %d", got, UniformSize)
	}
}
