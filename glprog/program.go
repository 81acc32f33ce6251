package glprog

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/soypat/geometry/ms3"
	"github.com/soypat/glsect"
)

// Program is a GL program linked from the combined sources of one or more
// shader names. Its GL handle is allocated once and reused across rebuilds.
type Program struct {
	ctx       *Context
	handle    uint32
	names     []string
	shaders   []attachedShader
	locations map[string]int32
	rebuild   bool
	linked    bool
	deleted   bool
}

type attachedShader struct {
	handle uint32
	stage  Stage
}

// NewProgram creates a program from the shader names and builds it. Each
// name refers to a pair of files "<name>.vert" and "<name>.frag", either of
// which may be missing. Sources of all names are combined in order.
// Build failures are logged, never returned: a program whose sources are all
// missing is a valid program that does nothing.
func (c *Context) NewProgram(names ...string) *Program {
	p := &Program{
		ctx:       c,
		handle:    c.drv.CreateProgram(),
		names:     slices.Clone(names),
		locations: make(map[string]int32),
	}
	c.programs[p] = struct{}{}
	p.Build()
	return p
}

// ID returns the GL program handle.
func (p *Program) ID() uint32 { return p.handle }

// Names returns a copy of the shader names the program is built from.
func (p *Program) Names() []string { return slices.Clone(p.names) }

// Linked reports whether the last build linked successfully.
func (p *Program) Linked() bool { return p.linked }

// NeedsRebuild reports whether the program will be rebuilt on its next [Program.Bind].
func (p *Program) NeedsRebuild() bool { return p.rebuild }

// MarkRebuild schedules a rebuild for the next [Program.Bind].
func (p *Program) MarkRebuild() { p.rebuild = true }

// Stages returns the stages attached to the program in the last build.
func (p *Program) Stages() []Stage {
	stages := make([]Stage, len(p.shaders))
	for i := range p.shaders {
		stages[i] = p.shaders[i].stage
	}
	return stages
}

// Sources returns the combined vertex and fragment sources of the program's
// names as they are currently cached by the Context.
func (p *Program) Sources() (vertex, fragment glsect.Source) {
	for _, name := range p.names {
		src := p.ctx.sourcesOf(name)
		vertex = vertex.Add(src[StageVertex])
		fragment = fragment.Add(src[StageFragment])
	}
	return vertex, fragment
}

// Build compiles and links the program from its sources. Previously attached
// shaders are released and cached uniform locations are discarded. A stage
// that fails to compile is left out of the program and its diagnostics are
// logged, as are link failures.
func (p *Program) Build() {
	p.releaseShaders()
	clear(p.locations)
	drv := p.ctx.drv
	log := p.ctx.log
	var srcs [numStages]glsect.Source
	srcs[StageVertex], srcs[StageFragment] = p.Sources()
	for stage := Stage(0); stage < numStages; stage++ {
		source := srcs[stage].String()
		if strings.TrimSpace(source) == "" {
			continue
		}
		shader := drv.CreateShader(stage)
		log.Debug("creating shader", slog.String("stage", stage.String()), slog.Uint64("program", uint64(p.handle)))
		ok, infoLog := drv.CompileShader(shader, source)
		if !ok {
			log.Error("compiling shader", slog.String("stage", stage.String()),
				slog.Uint64("program", uint64(p.handle)), slog.String("names", strings.Join(p.names, ",")), slog.String("log", infoLog))
			drv.DeleteShader(shader)
			continue
		}
		log.Debug("attaching shader", slog.String("stage", stage.String()), slog.Uint64("program", uint64(p.handle)))
		drv.AttachShader(p.handle, shader)
		p.shaders = append(p.shaders, attachedShader{handle: shader, stage: stage})
	}
	log.Debug("linking program", slog.Uint64("program", uint64(p.handle)))
	ok, infoLog := drv.LinkProgram(p.handle)
	p.linked = ok
	if !ok {
		log.Error("linking program", slog.Uint64("program", uint64(p.handle)),
			slog.String("names", strings.Join(p.names, ",")), slog.String("log", infoLog))
	}
	if ed, ok := drv.(errDriver); ok {
		if err := ed.Err(); err != nil {
			log.Error("GL error after build", slog.Uint64("program", uint64(p.handle)), slog.Any("err", err))
		}
	}
	p.rebuild = false
}

func (p *Program) releaseShaders() {
	drv := p.ctx.drv
	for _, s := range p.shaders {
		drv.DetachShader(p.handle, s.handle)
		drv.DeleteShader(s.handle)
	}
	p.shaders = p.shaders[:0]
}

// Bind makes the program active, rebuilding it first if it was marked for
// rebuild. Binds nest: every Bind must be matched by an [Program.Unbind], and
// binding the already active program only records the nesting.
//
//	A.Bind()
//	B.Bind()
//	B.Unbind() // A is active again.
func (p *Program) Bind() {
	if p.rebuild {
		p.Build()
	}
	if p.ctx.active.push(p) {
		p.ctx.drv.UseProgram(p.handle)
	}
}

// Unbind undoes the most recent [Program.Bind] and activates the program
// that was active before it. It returns a [*ProtocolError] and changes nothing
// if p is not the most recently bound program.
func (p *Program) Unbind() error {
	next, use, ok := p.ctx.active.pop(p)
	if !ok {
		return p.protocolError("unbind")
	}
	if !use {
		return nil
	}
	if next == nil {
		p.ctx.drv.UseProgram(0)
	} else {
		p.ctx.drv.UseProgram(next.handle)
	}
	return nil
}

// Location returns the location of the named uniform, -1 if the program has
// no such active uniform. Locations are cached until the next build.
func (p *Program) Location(name string) int32 {
	if loc, ok := p.locations[name]; ok {
		return loc
	}
	loc := p.ctx.drv.UniformLocation(p.handle, name)
	p.locations[name] = loc
	return loc
}

// SetUniform uploads u to the named uniform. If p is not the active program
// it is bound for the duration of the call; batch many SetUniform calls
// between an explicit Bind and Unbind to avoid rebinding on every call.
func (p *Program) SetUniform(name string, u Uniform) (err error) {
	if err = u.Validate(); err != nil {
		return fmt.Errorf("uniform %q: %w", name, err)
	}
	if p.ctx.active.top() != p {
		p.Bind()
		defer func() {
			if unbindErr := p.Unbind(); err == nil {
				err = unbindErr
			}
		}()
	}
	u.upload(p.ctx.drv, p.Location(name))
	return nil
}

// SetUniformf uploads 1 to 4 float components to the named uniform.
func (p *Program) SetUniformf(name string, v ...float32) error {
	return p.SetUniform(name, Floats(v...))
}

// SetUniformi uploads 1 to 4 integer components to the named uniform.
func (p *Program) SetUniformi(name string, v ...int32) error {
	return p.SetUniform(name, Ints(v...))
}

// SetUniformMat4 uploads a 4x4 matrix to the named uniform.
func (p *Program) SetUniformMat4(name string, m ms3.Mat4) error {
	return p.SetUniform(name, Mat4(m))
}

// Add returns a new program built from the names of p followed by the names of other.
func (p *Program) Add(other *Program) *Program {
	names := make([]string, 0, len(p.names)+len(other.names))
	names = append(names, p.names...)
	names = append(names, other.names...)
	return p.ctx.NewProgram(names...)
}

// Delete releases the program's shaders and GL program. A program must be
// fully unbound before deletion, else a [*ProtocolError] is returned and
// nothing is released. Calling Delete again has no effect.
func (p *Program) Delete() error {
	if p.deleted {
		return nil
	}
	if p.ctx.active.contains(p) {
		return p.protocolError("delete")
	}
	p.releaseShaders()
	p.ctx.drv.DeleteProgram(p.handle)
	clear(p.locations)
	delete(p.ctx.programs, p)
	p.deleted = true
	return nil
}

// uses reports whether name, already lowercased, is one of the program's shader names.
func (p *Program) uses(name string) bool {
	for _, n := range p.names {
		if strings.EqualFold(baseName(n), name) {
			return true
		}
	}
	return false
}

func (p *Program) protocolError(op string) *ProtocolError {
	err := &ProtocolError{Op: op, Program: p.handle}
	if top := p.ctx.active.top(); top != nil {
		err.Active = top.handle
	}
	return err
}
