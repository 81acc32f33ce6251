// Package glsllib is a library of section-annotated GLSL 4.10 shaders that
// compose with each other. Every file is a valid shader on its own.
//
// Vertex shaders write vUV in [0,1] from the aPos quad coordinate in [-1,1].
// Fragment shaders read vUV, multiply into a vec4 color initialized to white
// and write it to fragColor.
package glsllib

import (
	"embed"
	"io/fs"
	"slices"
	"strings"
)

// Shader names in the library.
const (
	// Quad is a passthrough full-screen quad (vertex and fragment).
	Quad = "quad"
	// Turntable transforms the quad by the mat4 uniform uModel (vertex).
	Turntable = "turntable"
	// Mandelbrot colors by escape time of the mandelbrot set (fragment).
	// Uniforms: MaxIterations, Zoom, Xcenter, Ycenter, InnerColor, OuterColor1, OuterColor2.
	Mandelbrot = "mandelbrot"
	// Tint multiplies the color by the vec4 uniform uTint (fragment).
	Tint = "tint"
	// Tiling darkens alternate cells of a checkerboard with uTiles cells per side,
	// scrolled by uTime (fragment).
	Tiling = "tiling"
)

//go:embed *.vert *.frag
var files embed.FS

// FS returns the library's shader files, named "<name>.vert" and "<name>.frag".
func FS() fs.FS { return files }

// Names returns the sorted names of the shaders in the library.
func Names() []string {
	entries, _ := fs.ReadDir(files, ".")
	var names []string
	for _, e := range entries {
		name := strings.TrimSuffix(e.Name(), ".vert")
		name = strings.TrimSuffix(name, ".frag")
		if !slices.Contains(names, name) {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names
}
