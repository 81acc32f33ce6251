// Package glprog compiles section-annotated shaders into GL programs and
// manages their binding.
//
// A [Context] holds all state shared between programs of a single GL context:
// the cache of parsed shader files, the stack of bound programs and the set of
// live programs. Context and Program are not safe for concurrent use, all
// calls must happen on the goroutine that owns the GL context.
package glprog

import (
	"errors"
	"log/slog"
	"path"
	"strings"

	"github.com/soypat/glsect"
)

// Config configures a [Context].
type Config struct {
	// Driver issues GL calls. Required.
	Driver Driver
	// Loader reads shader files. If nil every shader file is treated as missing.
	Loader Loader
	// Logger receives build diagnostics. Defaults to slog.Default().
	Logger *slog.Logger
}

// Context is the rendering-context state programs are created from.
type Context struct {
	drv      Driver
	loader   Loader
	log      *slog.Logger
	sources  map[string]*stageSources
	active   activeStack
	programs map[*Program]struct{}
}

// stageSources are the parsed shader files of a shader name, indexed by [Stage].
type stageSources [numStages]glsect.Source

// NewContext returns a Context ready to create programs.
func NewContext(cfg Config) (*Context, error) {
	if cfg.Driver == nil {
		return nil, errors.New("glprog: nil Driver in Config")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Context{
		drv:      cfg.Driver,
		loader:   cfg.Loader,
		log:      logger,
		sources:  make(map[string]*stageSources),
		programs: make(map[*Program]struct{}),
	}, nil
}

// Active returns the currently bound program or nil if none is bound.
func (c *Context) Active() *Program { return c.active.top() }

// Depth returns the number of outstanding binds.
func (c *Context) Depth() int { return c.active.depth() }

// UnbindAll deactivates all programs and discards all outstanding binds.
func (c *Context) UnbindAll() {
	c.drv.UseProgram(0)
	c.active.clear()
}

// Reload invalidates the shader file filename, e.g. "shaders/tint.frag".
// The cached sources of its shader name are discarded and every live program
// built from that name is marked to be rebuilt on its next bind. Names are
// compared case-insensitively. Reload returns the number of programs marked.
func (c *Context) Reload(filename string) int {
	name := shaderName(filename)
	if name == "" {
		return 0
	}
	for cached := range c.sources {
		if strings.EqualFold(baseName(cached), name) {
			delete(c.sources, cached)
		}
	}
	marked := 0
	for p := range c.programs {
		if p.uses(name) {
			p.rebuild = true
			marked++
		}
	}
	if marked > 0 {
		c.log.Debug("shader reload", slog.String("name", name), slog.Int("programs", marked))
	}
	return marked
}

// sourcesOf returns the parsed shader files of name, loading them on first use.
func (c *Context) sourcesOf(name string) *stageSources {
	if src, ok := c.sources[name]; ok {
		return src
	}
	src := new(stageSources)
	for stage := Stage(0); stage < numStages; stage++ {
		src[stage] = c.open(name + stage.Ext())
	}
	c.sources[name] = src
	return src
}

// open reads and parses filename. Missing and unreadable files yield an
// empty source so that programs degrade to doing nothing.
func (c *Context) open(filename string) glsect.Source {
	if c.loader == nil {
		return glsect.Source{}
	}
	b, err := c.loader.LoadSource(filename)
	if err != nil {
		if !isNotFound(err) {
			c.log.Error("loading shader", slog.String("file", filename), slog.Any("err", err))
		}
		return glsect.Source{}
	}
	return glsect.Parse(string(b))
}

// shaderName maps a changed file path to the shader name it belongs to:
// the lowercased base name without extension.
func shaderName(filename string) string {
	name := strings.ToLower(baseName(filename))
	if ext := path.Ext(name); ext != "" {
		name = strings.TrimSuffix(name, ext)
	}
	return name
}

// baseName returns the last element of a slash or backslash separated path.
func baseName(p string) string {
	if i := strings.LastIndexAny(p, `/\`); i >= 0 {
		p = p[i+1:]
	}
	return p
}
