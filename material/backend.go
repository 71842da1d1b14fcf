package material

import "github.com/kismeter/filament/math"

// ParamType identifies the GLSL type of a declared shader parameter.
type ParamType uint8

const (
	ParamInt ParamType = iota
	ParamBool
	ParamFloat
	ParamFloat3
	ParamFloat4
	ParamMat3
	ParamSampler2D
)

func (t ParamType) String() string {
	switch t {
	case ParamInt:
		return "int"
	case ParamBool:
		return "bool"
	case ParamFloat:
		return "float"
	case ParamFloat3:
		return "vec3"
	case ParamFloat4:
		return "vec4"
	case ParamMat3:
		return "mat3"
	case ParamSampler2D:
		return "sampler2D"
	}
	return "unknown"
}

// Param declares one named shader parameter.
type Param struct {
	Name string
	Type ParamType
}

// ShadingModel selects the surface model a variant is compiled with.
type ShadingModel uint8

const (
	ShadingLit ShadingModel = iota
	ShadingUnlit
)

// BlendingMode selects how a variant's output is combined with the
// framebuffer.
type BlendingMode uint8

const (
	BlendingOpaque BlendingMode = iota
	BlendingMasked
	BlendingTransparent
)

// RenderStates carries the fixed-function state a variant must be drawn
// with. Transparent variants keep DepthWrite enabled so they composite
// correctly with the deferred passes.
type RenderStates struct {
	Shading       ShadingModel
	Blending      BlendingMode
	MaskThreshold float32 // only meaningful when Blending == BlendingMasked
	DoubleSided   bool
	DepthWrite    bool
}

// Program is an opaque handle to one compiled shader variant. Concrete
// types come from the Backend that compiled it; the Provider owns every
// Program it creates until DestroyMaterials.
type Program interface {
	Label() string
}

// Instance is a per-object parameter block bound to one shared Program.
// Instances are owned by the caller and may outlive or predecease each
// other freely; they never own the Program they reference.
type Instance interface {
	SetInt(name string, v int32)
	SetBool(name string, v bool)
	SetFloat(name string, v float32)
	SetFloat3(name string, v [3]float32)
	SetFloat4(name string, v [4]float32)
	SetMat3(name string, v math.Mat3)
}

// Backend is the shader compiler and GPU resource service the Provider
// builds on. opengl.Backend is the production implementation; tests and
// dry runs use the in-memory one.
type Backend interface {
	// Compile builds one shader variant from the synthesized fragment
	// source, the ordered parameter declarations, and the render states.
	Compile(label, source string, params []Param, states RenderStates) (Program, error)
	// Instantiate allocates a fresh parameter block for the program.
	Instantiate(p Program) (Instance, error)
	// Release frees a program previously returned by Compile.
	Release(p Program)
}
