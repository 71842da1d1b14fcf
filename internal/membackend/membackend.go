// Package membackend is an in-memory material.Backend for tests and dry
// runs. It records every compile, instantiation, release, and parameter
// write without touching a GPU.
package membackend

import (
	"github.com/kismeter/filament/material"
	"github.com/kismeter/filament/math"
)

// Backend counts backend traffic and keeps the programs it handed out.
type Backend struct {
	Compiles int
	Released []*Program

	// CompileErr, when set, is returned by every Compile call.
	CompileErr error
}

// Program is one "compiled" variant: the synthesized inputs, verbatim.
type Program struct {
	name      string
	Source    string
	Params    []material.Param
	States    material.RenderStates
	Instances int
}

func (p *Program) Label() string { return p.name }

// Instance records every parameter write by type.
type Instance struct {
	Program *Program
	Ints    map[string]int32
	Bools   map[string]bool
	Floats  map[string]float32
	Float3s map[string][3]float32
	Float4s map[string][4]float32
	Mat3s   map[string]math.Mat3
}

func New() *Backend {
	return &Backend{}
}

func (b *Backend) Compile(label, source string, params []material.Param, states material.RenderStates) (material.Program, error) {
	if b.CompileErr != nil {
		return nil, b.CompileErr
	}
	b.Compiles++
	return &Program{
		name:   label,
		Source: source,
		Params: params,
		States: states,
	}, nil
}

func (b *Backend) Instantiate(p material.Program) (material.Instance, error) {
	prog := p.(*Program)
	prog.Instances++
	return &Instance{
		Program: prog,
		Ints:    make(map[string]int32),
		Bools:   make(map[string]bool),
		Floats:  make(map[string]float32),
		Float3s: make(map[string][3]float32),
		Float4s: make(map[string][4]float32),
		Mat3s:   make(map[string]math.Mat3),
	}, nil
}

func (b *Backend) Release(p material.Program) {
	b.Released = append(b.Released, p.(*Program))
}

func (in *Instance) SetInt(name string, v int32)         { in.Ints[name] = v }
func (in *Instance) SetBool(name string, v bool)         { in.Bools[name] = v }
func (in *Instance) SetFloat(name string, v float32)     { in.Floats[name] = v }
func (in *Instance) SetFloat3(name string, v [3]float32) { in.Float3s[name] = v }
func (in *Instance) SetFloat4(name string, v [4]float32) { in.Float4s[name] = v }
func (in *Instance) SetMat3(name string, v math.Mat3)    { in.Mat3s[name] = v }
