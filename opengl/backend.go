// Package opengl implements the material shader backend on an OpenGL 4.1
// core context. A context must be current on the calling thread before
// NewBackend and stay current for every Compile/Instantiate/Release call.
package opengl

import (
	"fmt"
	"strings"

	gl "github.com/go-gl/gl/v4.1-core/gl"

	"github.com/kismeter/filament/material"
	"github.com/kismeter/filament/math"
)

// Backend compiles synthesized variants into linked GL programs.
type Backend struct{}

// NewBackend initialises OpenGL.
// Must be called after the GLFW window context is made current.
func NewBackend() (*Backend, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	version := gl.GoStr(gl.GetString(gl.VERSION))
	fmt.Printf("OpenGL version: %s\n", version)
	return &Backend{}, nil
}

// Program wraps one linked GL program together with the render states and
// parameter declarations it was compiled with.
type Program struct {
	id     uint32
	label  string
	params []material.Param
	states material.RenderStates
}

func (p *Program) Label() string { return p.label }

// ID returns the GL program object, for callers issuing their own draws.
func (p *Program) ID() uint32 { return p.id }

// Compile links the shared vertex stage with the synthesized fragment
// source into one program per variant.
func (b *Backend) Compile(label, source string, params []material.Param, states material.RenderStates) (material.Program, error) {
	id, err := newProgram(material.VertexSource+"\x00", source+"\x00")
	if err != nil {
		return nil, fmt.Errorf("shader compile: %w", err)
	}
	return &Program{id: id, label: label, params: params, states: states}, nil
}

// Instantiate resolves the uniform locations for every declared parameter.
// Parameters the GL compiler optimised away resolve to -1 and later writes
// to them are dropped silently.
func (b *Backend) Instantiate(p material.Program) (material.Instance, error) {
	prog, ok := p.(*Program)
	if !ok {
		return nil, fmt.Errorf("opengl: foreign program %T", p)
	}
	inst := &Instance{
		program:   prog,
		locations: make(map[string]int32, len(prog.params)),
		ints:      make(map[string]int32),
		bools:     make(map[string]bool),
		floats:    make(map[string]float32),
		float3s:   make(map[string][3]float32),
		float4s:   make(map[string][4]float32),
		mat3s:     make(map[string]math.Mat3),
	}
	for _, param := range prog.params {
		inst.locations[param.Name] = gl.GetUniformLocation(prog.id, gl.Str(param.Name+"\x00"))
	}
	return inst, nil
}

// Release frees the GL program.
func (b *Backend) Release(p material.Program) {
	if prog, ok := p.(*Program); ok {
		gl.DeleteProgram(prog.id)
	}
}

// Instance stores parameter values CPU-side. Apply binds the program,
// sets the variant's render state, and uploads every stored uniform;
// uniforms are program state in GL, so Apply must run before each draw
// that uses this instance.
type Instance struct {
	program   *Program
	locations map[string]int32
	ints      map[string]int32
	bools     map[string]bool
	floats    map[string]float32
	float3s   map[string][3]float32
	float4s   map[string][4]float32
	mat3s     map[string]math.Mat3
}

func (in *Instance) SetInt(name string, v int32)         { in.ints[name] = v }
func (in *Instance) SetBool(name string, v bool)         { in.bools[name] = v }
func (in *Instance) SetFloat(name string, v float32)     { in.floats[name] = v }
func (in *Instance) SetFloat3(name string, v [3]float32) { in.float3s[name] = v }
func (in *Instance) SetFloat4(name string, v [4]float32) { in.float4s[name] = v }
func (in *Instance) SetMat3(name string, v math.Mat3)    { in.mat3s[name] = v }

// Apply makes the instance's program current, applies its render states,
// and uploads the stored parameters. The program stays bound so the
// caller can issue a draw call directly afterwards.
func (in *Instance) Apply() {
	prog := in.program
	gl.UseProgram(prog.id)

	switch prog.states.Blending {
	case material.BlendingTransparent:
		gl.Enable(gl.BLEND)
		// baseColor.rgb is premultiplied in the shader body
		gl.BlendFunc(gl.ONE, gl.ONE_MINUS_SRC_ALPHA)
	default:
		gl.Disable(gl.BLEND)
	}
	gl.DepthMask(prog.states.DepthWrite)
	if prog.states.DoubleSided {
		gl.Disable(gl.CULL_FACE)
	} else {
		gl.Enable(gl.CULL_FACE)
		gl.CullFace(gl.BACK)
	}

	for name, v := range in.ints {
		if loc := in.locations[name]; loc >= 0 {
			gl.Uniform1i(loc, v)
		}
	}
	for name, v := range in.bools {
		if loc := in.locations[name]; loc >= 0 {
			var i int32
			if v {
				i = 1
			}
			gl.Uniform1i(loc, i)
		}
	}
	for name, v := range in.floats {
		if loc := in.locations[name]; loc >= 0 {
			gl.Uniform1f(loc, v)
		}
	}
	for name, v := range in.float3s {
		if loc := in.locations[name]; loc >= 0 {
			gl.Uniform3f(loc, v[0], v[1], v[2])
		}
	}
	for name, v := range in.float4s {
		if loc := in.locations[name]; loc >= 0 {
			gl.Uniform4f(loc, v[0], v[1], v[2], v[3])
		}
	}
	for name, v := range in.mat3s {
		if loc := in.locations[name]; loc >= 0 {
			// Mat3 is row-major for row-vector transforms; transpose on upload.
			gl.UniformMatrix3fv(loc, 1, true, &v[0][0])
		}
	}
}

// ── shader helpers ────────────────────────────────────────────────────────────

func newProgram(vertSrc, fragSrc string) (uint32, error) {
	vert, err := compileShader(vertSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, fmt.Errorf("vertex: %w", err)
	}
	frag, err := compileShader(fragSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		return 0, fmt.Errorf("fragment: %w", err)
	}

	prog := gl.CreateProgram()
	gl.AttachShader(prog, vert)
	gl.AttachShader(prog, frag)
	gl.LinkProgram(prog)

	var status int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetProgramInfoLog(prog, logLen, nil, gl.Str(log))
		return 0, fmt.Errorf("link failed: %v", log)
	}

	gl.DeleteShader(vert)
	gl.DeleteShader(frag)
	return prog, nil
}

func compileShader(src string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csrc, free := gl.Strs(src)
	gl.ShaderSource(shader, 1, csrc, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetShaderInfoLog(shader, logLen, nil, gl.Str(log))
		return 0, fmt.Errorf("compile failed: %v", log)
	}
	return shader, nil
}
