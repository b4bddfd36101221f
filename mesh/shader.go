package mesh

import (
	_ "embed"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/gogpu/naga"
)

//go:embed shaders/loop_blinn.wgsl
var loopBlinnShaderSource string

// Shader entry points.
const (
	VertexEntryPoint   = "vs_main"
	FragmentEntryPoint = "fs_main"
)

// UniformSize is the byte size of the shader uniform block.
// Layout:
//
//	scale  (vec2<f32>) = 8 bytes
//	offset (vec2<f32>) = 8 bytes
//	color  (vec4<f32>) = 16 bytes
const UniformSize = 32

// ShaderSource returns the WGSL source of the Loop–Blinn fill shader. It
// consumes the layout returned by VertexBufferLayout and one uniform block
// at group 0, binding 0.
func ShaderSource() string { return loopBlinnShaderSource }

// CompileShader compiles the fill shader to SPIR-V words.
func CompileShader() ([]uint32, error) {
	spirvBytes, err := naga.Compile(loopBlinnShaderSource)
	if err != nil {
		return nil, fmt.Errorf("mesh: failed to compile shader: %w", err)
	}
	if len(spirvBytes)%4 != 0 {
		return nil, fmt.Errorf("mesh: SPIR-V size %d is not a multiple of 4", len(spirvBytes))
	}

	// SPIR-V is little-endian 32-bit words.
	words := make([]uint32, len(spirvBytes)/4)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(spirvBytes[i*4:])
	}
	return words, nil
}

// Uniforms is the shader uniform block.
type Uniforms struct {
	Scale  [2]float32
	Offset [2]float32
	Color  [4]float32 // premultiplied RGBA
}

// ViewportUniforms maps a width×height layout space with Y down onto clip
// space and fills with color.
func ViewportUniforms(width, height float64, color [4]float32) Uniforms {
	return Uniforms{
		Scale:  [2]float32{float32(2 / width), float32(-2 / height)},
		Offset: [2]float32{-1, 1},
		Color:  color,
	}
}

// Bytes encodes the uniforms in little-endian order.
func (u Uniforms) Bytes() []byte {
	buf := make([]byte, UniformSize)
	vals := [8]float32{
		u.Scale[0], u.Scale[1], u.Offset[0], u.Offset[1],
		u.Color[0], u.Color[1], u.Color[2], u.Color[3],
	}
	for i, v := range vals {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	return buf
}
