package glsect_test

import (
	"strings"
	"testing"

	"github.com/soypat/glsect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tintFrag = `//= preamble
#version 410 core
uniform sampler2D tex0;

//= body
uniform vec4 tint;

//= main
void main(void) {
	//= main-preamble
	vec4 color = texture(tex0, vUV);

	//= main-body
	color *= tint;

	//= main-postscript
	fragColor = color;

	//= main-end
}
`

func TestParseNoMarkers(t *testing.T) {
	for _, text := range []string{"", "   \n\t", "void main(void) { gl_FragColor = vec4(1); }\n"} {
		src := glsect.Parse(text)
		assert.True(t, src.IsZero(), "text %q", text)
		assert.Empty(t, src.String())
	}
}

func TestParseSections(t *testing.T) {
	src := glsect.Parse(tintFrag)
	assert.Equal(t, "#version 410 core\nuniform sampler2D tex0;\n\n", src.Preamble)
	assert.Equal(t, "uniform vec4 tint;\n\n", src.Body)
	assert.Equal(t, "\tvec4 color = texture(tex0, vUV);\n\n", src.MainPreamble)
	assert.Equal(t, "\tcolor *= tint;\n\n", src.MainBody)
	assert.Equal(t, "\tfragColor = color;\n\n", src.MainPostscript)
}

func TestParseMissingAndOutOfOrder(t *testing.T) {
	// body marker appears before preamble marker and is ignored.
	text := "//= body\nfloat ignored;\n//= preamble\nuniform float a;\n//= main\nvoid main(void) {\n//= main-body\na;\n//= main-end\n}\n"
	src := glsect.Parse(text)
	assert.Equal(t, "uniform float a;\n", src.Preamble)
	assert.Empty(t, src.Body)
	assert.Empty(t, src.MainPreamble)
	assert.Equal(t, "a;\n", src.MainBody)
	assert.Empty(t, src.MainPostscript)
}

func TestParseTrailingSection(t *testing.T) {
	src := glsect.Parse("//= preamble\n#version 410 core\n")
	assert.Equal(t, "#version 410 core\n", src.Preamble)

	// Marker text embedded in a line is not a marker.
	src = glsect.Parse("float a; //= body\n")
	assert.True(t, src.IsZero())
}

func TestRoundTrip(t *testing.T) {
	want := glsect.Parse(tintFrag)
	got := glsect.Parse(want.String())
	assert.Equal(t, want, got)

	partial := glsect.Source{Body: "float f(float x) { return x; }\n", MainPostscript: "fragColor = vec4(f(1.0));\n"}
	assert.Equal(t, partial, glsect.Parse(partial.String()))
}

func TestRenderOmitsEmpty(t *testing.T) {
	src := glsect.Source{Preamble: "#version 410 core\n", Body: "float g;\n"}
	out := src.String()
	assert.Equal(t, "//= preamble\n#version 410 core\n//= body\nfloat g;\n", out)
	assert.NotContains(t, out, "main")

	src = glsect.Source{MainBody: "g = 1.0;"}
	out = src.String()
	assert.Equal(t, "//= main\nvoid main(void) {\n\t//= main-body\ng = 1.0;\n//= main-end\n}\n", out)
}

func TestAddPreambleDedup(t *testing.T) {
	a := glsect.Source{Preamble: "uniform sampler2D tex0;"}
	b := glsect.Source{Preamble: "uniform sampler2D tex0;\nuniform vec4 tint;"}
	got := a.Add(b)
	assert.Equal(t, "uniform sampler2D tex0;\nuniform vec4 tint;\n", got.Preamble)

	// Trimmed comparison, left operand text is kept verbatim.
	a = glsect.Source{Preamble: "  uniform float x;\n"}
	b = glsect.Source{Preamble: "uniform float x;\t\nuniform float y;\n"}
	assert.Equal(t, "  uniform float x;\nuniform float y;\n", a.Add(b).Preamble)

	// Operands are unmodified.
	assert.Equal(t, "  uniform float x;\n", a.Preamble)
}

func TestAddIdempotentDedup(t *testing.T) {
	a := glsect.Parse(tintFrag)
	aa := a.Add(a)
	for _, section := range []string{aa.Preamble, aa.MainPreamble, aa.MainPostscript} {
		seen := map[string]int{}
		for _, line := range strings.Split(strings.TrimSpace(section), "\n") {
			seen[line]++
		}
		for line, n := range seen {
			assert.Equal(t, 1, n, "line %q", line)
		}
	}
	assert.Equal(t, a.MainBody+"\n"+a.MainBody, aa.MainBody)
	assert.Equal(t, a.Body+"\n"+a.Body, aa.Body)
}

func TestAddConcat(t *testing.T) {
	a := glsect.Source{Body: "float a;", MainBody: "x += a;"}
	b := glsect.Source{Body: "float b;"}
	got := a.Add(b)
	assert.Equal(t, "float a;\nfloat b;", got.Body)
	assert.Equal(t, "x += a;", got.MainBody)
	got = b.Add(a)
	assert.Equal(t, "float b;\nfloat a;", got.Body)
	assert.Equal(t, "x += a;", got.MainBody)
	assert.Empty(t, got.Preamble, "empty preambles must not gain a blank line")
}

func TestAddMainDedupNoBlankLine(t *testing.T) {
	a := glsect.Source{MainPreamble: "vec4 color = vec4(1.0);", MainPostscript: "fragColor = color;"}
	b := glsect.Source{MainPreamble: "vec4 color = vec4(1.0);\nfloat k = 2.0;", MainPostscript: "  fragColor = color;"}
	got := a.Add(b)
	assert.Equal(t, "vec4 color = vec4(1.0);\nfloat k = 2.0;", got.MainPreamble)
	assert.Equal(t, "fragColor = color;", got.MainPostscript)
}

func TestSumPairwiseFold(t *testing.T) {
	a := glsect.Source{Preamble: "#version 410 core\n"}
	b := glsect.Source{Preamble: "#version 410 core\nuniform float t;\n", MainBody: "b();"}
	c := glsect.Source{Preamble: "uniform float t;\n", MainBody: "c();"}
	sum := glsect.Sum(a, b, c)
	want := glsect.Source{}.Add(a).Add(b).Add(c)
	assert.Equal(t, want, sum)
	assert.Equal(t, "#version 410 core\nuniform float t;\n", sum.Preamble)
	assert.Equal(t, "b();\nc();", sum.MainBody)
}

func TestSumNoMain(t *testing.T) {
	sum := glsect.Sum(glsect.Source{Preamble: "#version 410 core\n"}, glsect.Source{Body: "float f;\n"})
	require.False(t, sum.HasMain())
	assert.NotContains(t, sum.String(), "void main")
	assert.True(t, glsect.Sum().IsZero())
}

func TestCombinedRendersParseable(t *testing.T) {
	a := glsect.Parse(tintFrag)
	b := glsect.Source{MainPreamble: "float k = 0.5;", MainBody: "color *= k;"}
	sum := a.Add(b)
	reparsed := glsect.Parse(sum.String())
	assert.Equal(t, strings.TrimSpace(sum.MainPreamble), strings.TrimSpace(reparsed.MainPreamble))
	assert.Equal(t, strings.TrimSpace(sum.MainBody), strings.TrimSpace(reparsed.MainBody))
	assert.Equal(t, strings.TrimSpace(sum.MainPostscript), strings.TrimSpace(reparsed.MainPostscript))
	assert.Equal(t, 1, strings.Count(sum.String(), "void main(void)"))
}
