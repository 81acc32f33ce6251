//go:build !tinygo && cgo

// Package gldriver implements [glprog.Driver] with OpenGL 4.1 core calls.
// All methods must be called from the OS thread holding the current GL context.
package gldriver

import (
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/soypat/glgl/v4.1-core/glgl"
	"github.com/soypat/glsect/glprog"
)

var _ glprog.Driver = (*Driver)(nil)

// Init loads the OpenGL function pointers. A GL context must be current.
func Init() error {
	return gl.Init()
}

// Driver issues GL calls for a [glprog.Context].
type Driver struct{}

// New returns a Driver. [Init] must have been called.
func New() (*Driver, error) {
	return &Driver{}, nil
}

func (*Driver) CreateProgram() uint32 { return gl.CreateProgram() }

func (*Driver) DeleteProgram(program uint32) { gl.DeleteProgram(program) }

func (*Driver) CreateShader(stage glprog.Stage) uint32 {
	switch stage {
	case glprog.StageVertex:
		return gl.CreateShader(gl.VERTEX_SHADER)
	case glprog.StageFragment:
		return gl.CreateShader(gl.FRAGMENT_SHADER)
	}
	return 0
}

func (*Driver) DeleteShader(shader uint32) { gl.DeleteShader(shader) }

func (*Driver) CompileShader(shader uint32, source string) (bool, string) {
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status != gl.FALSE {
		return true, ""
	}
	var logLength int32
	gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
	log := strings.Repeat("\x00", int(logLength+1))
	gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
	return false, strings.TrimRight(log, "\x00")
}

func (*Driver) AttachShader(program, shader uint32) { gl.AttachShader(program, shader) }

func (*Driver) DetachShader(program, shader uint32) { gl.DetachShader(program, shader) }

func (*Driver) LinkProgram(program uint32) (bool, string) {
	gl.LinkProgram(program)
	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status != gl.FALSE {
		return true, ""
	}
	var logLength int32
	gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
	log := strings.Repeat("\x00", int(logLength+1))
	gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
	return false, strings.TrimRight(log, "\x00")
}

func (*Driver) UseProgram(program uint32) { gl.UseProgram(program) }

func (*Driver) UniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

func (*Driver) Uniformi(loc int32, v []int32) {
	switch len(v) {
	case 1:
		gl.Uniform1i(loc, v[0])
	case 2:
		gl.Uniform2i(loc, v[0], v[1])
	case 3:
		gl.Uniform3i(loc, v[0], v[1], v[2])
	case 4:
		gl.Uniform4i(loc, v[0], v[1], v[2], v[3])
	}
}

func (*Driver) Uniformf(loc int32, v []float32) {
	switch len(v) {
	case 1:
		gl.Uniform1f(loc, v[0])
	case 2:
		gl.Uniform2f(loc, v[0], v[1])
	case 3:
		gl.Uniform3f(loc, v[0], v[1], v[2])
	case 4:
		gl.Uniform4f(loc, v[0], v[1], v[2], v[3])
	}
}

func (*Driver) UniformMatrix4f(loc int32, m *[16]float32) {
	gl.UniformMatrix4fv(loc, 1, false, &m[0])
}

// Err returns the queued GL errors, if any.
func (*Driver) Err() error { return glgl.Err() }
