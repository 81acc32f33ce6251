// Package glsect composes GLSL shaders from section-annotated sources.
//
// A section-annotated source is a valid GLSL shader whose parts are marked
// with comment lines so that several shaders can be concatenated into one
// program while keeping correct syntax:
//
//	//= preamble
//	#version 410 core
//	uniform sampler2D tex0;
//
//	//= body
//	uniform vec4 tint;
//
//	//= main
//	void main(void) {
//		//= main-preamble
//		vec4 color = texture(tex0, vUV);
//
//		//= main-body
//		color *= tint;
//
//		//= main-postscript
//		fragColor = color;
//
//		//= main-end
//	}
//
// Preamble, main-preamble and main-postscript lines are deduplicated when
// combining. Body and main-body sections are concatenated.
package glsect

import (
	"strings"
)

// Marker names in the order they must appear in a source.
const (
	SectionPreamble       = "preamble"
	SectionBody           = "body"
	SectionMain           = "main"
	SectionMainPreamble   = "main-preamble"
	SectionMainBody       = "main-body"
	SectionMainPostscript = "main-postscript"
	SectionMainEnd        = "main-end"
)

// MarkerPrefix starts every section marker line.
const MarkerPrefix = "//= "

var markerOrder = [...]string{
	SectionPreamble,
	SectionBody,
	SectionMain,
	SectionMainPreamble,
	SectionMainBody,
	SectionMainPostscript,
	SectionMainEnd,
}

// Source is a single vertex or fragment shader split into sections.
// The zero value is a valid empty source that renders to the empty string.
type Source struct {
	Preamble       string
	Body           string
	MainPreamble   string
	MainBody       string
	MainPostscript string
}

// Parse splits text into sections using its marker lines. Markers are
// searched in their fixed order and only forward of the last marker found, so
// a marker out of order is ignored. Text with no markers yields a zero Source.
func Parse(text string) Source {
	var s Source
	if strings.TrimSpace(text) == "" {
		return s
	}
	open := -1 // Index into markerOrder of section being read.
	contentStart := 0
	pos := 0
	for i, name := range markerOrder {
		lineStart, lineEnd, ok := findMarker(text, pos, name)
		if !ok {
			continue
		}
		if open >= 0 {
			s.setSection(markerOrder[open], text[contentStart:lineStart])
		}
		open = i
		contentStart = lineEnd
		pos = lineEnd
	}
	if open >= 0 {
		s.setSection(markerOrder[open], text[contentStart:])
	}
	return s
}

// findMarker looks for the first line at or after from that consists solely
// of the marker for name, optionally indented. It returns the offset of the
// start of that line and the offset just past its newline.
func findMarker(text string, from int, name string) (lineStart, lineEnd int, ok bool) {
	for lineStart = from; lineStart < len(text); lineStart = lineEnd {
		nl := strings.IndexByte(text[lineStart:], '\n')
		if nl < 0 {
			lineEnd = len(text)
		} else {
			lineEnd = lineStart + nl + 1
		}
		line := strings.TrimRight(text[lineStart:lineEnd], "\r\n")
		line = strings.TrimLeft(line, " \t")
		if strings.HasPrefix(line, MarkerPrefix) && strings.TrimRight(line[len(MarkerPrefix):], " \t") == name {
			return lineStart, lineEnd, true
		}
	}
	return 0, 0, false
}

func (s *Source) setSection(name, content string) {
	switch name {
	case SectionPreamble:
		s.Preamble = content
	case SectionBody:
		s.Body = content
	case SectionMainPreamble:
		s.MainPreamble = content
	case SectionMainBody:
		s.MainBody = content
	case SectionMainPostscript:
		s.MainPostscript = content
	}
	// main and main-end are delimiters: their content is regenerated on render.
}

// Add combines s and other into a new Source. Content of s precedes content of other.
//   - Preamble: lines of other whose trimmed text is already in s are dropped. A blank line is appended.
//   - Body: concatenated with a newline between.
//   - MainPreamble and MainPostscript: deduplicated like Preamble without the blank line.
//   - MainBody: concatenated like Body.
func (s Source) Add(other Source) Source {
	preamble := dedupLines(s.Preamble, other.Preamble)
	if len(preamble) > 0 {
		preamble = append(preamble, "")
	}
	return Source{
		Preamble:       strings.Join(preamble, "\n"),
		Body:           concatSections(s.Body, other.Body),
		MainPreamble:   strings.Join(dedupLines(s.MainPreamble, other.MainPreamble), "\n"),
		MainBody:       concatSections(s.MainBody, other.MainBody),
		MainPostscript: strings.Join(dedupLines(s.MainPostscript, other.MainPostscript), "\n"),
	}
}

// Sum folds srcs left to right with [Source.Add] starting from the zero Source.
func Sum(srcs ...Source) Source {
	var sum Source
	for _, src := range srcs {
		sum = sum.Add(src)
	}
	return sum
}

// IsZero reports whether all sections of s are empty.
func (s Source) IsZero() bool { return s == Source{} }

// HasMain reports whether rendering s emits a main function.
func (s Source) HasMain() bool {
	return s.MainPreamble != "" || s.MainBody != "" || s.MainPostscript != ""
}

// String renders s as compilable, section-annotated GLSL.
func (s Source) String() string {
	return string(s.AppendSource(nil))
}

// AppendSource appends the rendered GLSL of s to b and returns the result.
// Empty sections are omitted, and no main function is written when all
// main sections are empty.
func (s Source) AppendSource(b []byte) []byte {
	b = appendSection(b, SectionPreamble, s.Preamble)
	b = appendSection(b, SectionBody, s.Body)
	if !s.HasMain() {
		return b
	}
	b = append(b, MarkerPrefix+SectionMain+"\nvoid main(void) {\n\t"...)
	b = appendSection(b, SectionMainPreamble, s.MainPreamble)
	b = appendSection(b, SectionMainBody, s.MainBody)
	b = appendSection(b, SectionMainPostscript, s.MainPostscript)
	b = append(b, MarkerPrefix+SectionMainEnd+"\n}\n"...)
	return b
}

func appendSection(b []byte, name, content string) []byte {
	if content == "" {
		return b
	}
	b = append(b, MarkerPrefix...)
	b = append(b, name...)
	b = append(b, '\n')
	b = append(b, content...)
	if content[len(content)-1] != '\n' {
		b = append(b, '\n') // Keep next marker on its own line.
	}
	return b
}

// dedupLines returns the lines of a followed by the lines of b whose trimmed
// text does not match any trimmed line of a.
func dedupLines(a, b string) []string {
	lines := splitLines(a)
	seen := make(map[string]struct{}, len(lines))
	for _, line := range lines {
		seen[strings.TrimSpace(line)] = struct{}{}
	}
	for _, line := range splitLines(b) {
		if _, dup := seen[strings.TrimSpace(line)]; !dup {
			lines = append(lines, line)
		}
	}
	return lines
}

func concatSections(a, b string) string {
	switch {
	case a != "" && b != "":
		return a + "\n" + b
	case a != "":
		return a
	}
	return b
}

// splitLines splits s on line breaks. A final line break does not produce a
// trailing empty line and the empty string has no lines.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	s = strings.TrimSuffix(s, "\n")
	lines := strings.Split(s, "\n")
	for i := range lines {
		lines[i] = strings.TrimSuffix(lines[i], "\r")
	}
	return lines
}
