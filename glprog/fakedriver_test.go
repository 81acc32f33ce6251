package glprog

import (
	"fmt"
	"strings"
)

// fakeDriver records GL calls and keeps enough state to check program handling.
type fakeDriver struct {
	next     uint32
	current  uint32
	calls    []string
	useCalls []uint32
	// programs maps program handle to attached shader handles.
	programs map[uint32]map[uint32]bool
	shaders  map[uint32]Stage
	sources  map[uint32]string
	// failCompile is matched against shader sources to simulate syntax errors.
	failCompile string
	failLink    bool
	locQueries  int
	// uploads records uniform uploads as "loc:kind:values".
	uploads []string
}

func newFakeDriver() *fakeDriver {
	return &fakeDriver{
		programs: make(map[uint32]map[uint32]bool),
		shaders:  make(map[uint32]Stage),
		sources:  make(map[uint32]string),
	}
}

func (d *fakeDriver) record(format string, args ...any) {
	d.calls = append(d.calls, fmt.Sprintf(format, args...))
}

func (d *fakeDriver) CreateProgram() uint32 {
	d.next++
	d.programs[d.next] = make(map[uint32]bool)
	d.record("CreateProgram %d", d.next)
	return d.next
}

func (d *fakeDriver) DeleteProgram(program uint32) {
	delete(d.programs, program)
	d.record("DeleteProgram %d", program)
}

func (d *fakeDriver) CreateShader(stage Stage) uint32 {
	d.next++
	d.shaders[d.next] = stage
	d.record("CreateShader %d %s", d.next, stage)
	return d.next
}

func (d *fakeDriver) DeleteShader(shader uint32) {
	delete(d.shaders, shader)
	delete(d.sources, shader)
	d.record("DeleteShader %d", shader)
}

func (d *fakeDriver) CompileShader(shader uint32, source string) (bool, string) {
	d.sources[shader] = source
	d.record("CompileShader %d", shader)
	if d.failCompile != "" && strings.Contains(source, d.failCompile) {
		return false, "0:1(1): error: syntax error"
	}
	return true, ""
}

func (d *fakeDriver) AttachShader(program, shader uint32) {
	d.programs[program][shader] = true
	d.record("AttachShader %d %d", program, shader)
}

func (d *fakeDriver) DetachShader(program, shader uint32) {
	delete(d.programs[program], shader)
	d.record("DetachShader %d %d", program, shader)
}

func (d *fakeDriver) LinkProgram(program uint32) (bool, string) {
	d.record("LinkProgram %d", program)
	if d.failLink {
		return false, "error: linking failed"
	}
	return true, ""
}

func (d *fakeDriver) UseProgram(program uint32) {
	d.current = program
	d.useCalls = append(d.useCalls, program)
}

func (d *fakeDriver) UniformLocation(program uint32, name string) int32 {
	d.locQueries++
	// Locations change with every query so stale cache entries are detectable.
	return int32(d.locQueries)
}

func (d *fakeDriver) Uniformi(location int32, v []int32) {
	d.uploads = append(d.uploads, fmt.Sprintf("%d:int:%v", location, v))
}

func (d *fakeDriver) Uniformf(location int32, v []float32) {
	d.uploads = append(d.uploads, fmt.Sprintf("%d:float:%v", location, v))
}

func (d *fakeDriver) UniformMatrix4f(location int32, m *[16]float32) {
	d.uploads = append(d.uploads, fmt.Sprintf("%d:mat4:%v", location, *m))
}

// attachedStages returns the stages of the shaders attached to program.
func (d *fakeDriver) attachedStages(program uint32) []Stage {
	var stages []Stage
	for shader := range d.programs[program] {
		stages = append(stages, d.shaders[shader])
	}
	return stages
}

// source returns the compiled source of the attached shader of stage.
func (d *fakeDriver) source(program uint32, stage Stage) string {
	for shader := range d.programs[program] {
		if d.shaders[shader] == stage {
			return d.sources[shader]
		}
	}
	return ""
}
