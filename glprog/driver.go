package glprog

// Stage is a programmable pipeline stage a shader object is compiled for.
type Stage uint8

const (
	StageVertex Stage = iota
	StageFragment
	numStages
)

// Ext returns the filename extension of shader files for the stage.
func (s Stage) Ext() string {
	switch s {
	case StageVertex:
		return ".vert"
	case StageFragment:
		return ".frag"
	}
	return ""
}

func (s Stage) String() string {
	switch s {
	case StageVertex:
		return "vertex"
	case StageFragment:
		return "fragment"
	}
	return "Stage(?)"
}

// Driver issues GL calls on behalf of a [Context]. All calls are made from the
// goroutine that owns the Context. Handles are GL object names, 0 is never a
// valid handle.
type Driver interface {
	CreateProgram() uint32
	DeleteProgram(program uint32)
	CreateShader(stage Stage) uint32
	DeleteShader(shader uint32)
	// CompileShader sets shader's source and compiles it. On failure ok is
	// false and infoLog holds the compiler diagnostics.
	CompileShader(shader uint32, source string) (ok bool, infoLog string)
	AttachShader(program, shader uint32)
	DetachShader(program, shader uint32)
	// LinkProgram links program. On failure ok is false and infoLog holds the
	// linker diagnostics.
	LinkProgram(program uint32) (ok bool, infoLog string)
	// UseProgram makes program active. Program 0 deactivates all programs.
	UseProgram(program uint32)
	// UniformLocation returns the location of the named uniform or -1.
	UniformLocation(program uint32, name string) int32
	// Uniformi uploads 1 to 4 integer components to location.
	Uniformi(location int32, v []int32)
	// Uniformf uploads 1 to 4 float components to location.
	Uniformf(location int32, v []float32)
	// UniformMatrix4f uploads a column-major 4x4 matrix to location.
	UniformMatrix4f(location int32, m *[16]float32)
}

// errDriver is implemented by drivers that can report queued GL errors.
type errDriver interface {
	Err() error
}
