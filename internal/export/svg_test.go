package export

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/regenesis/regenesis/backend-go/internal/document"
)

func TestRenderSVG(t *testing.T) {
	doc := document.NewSampleDocument("proj_1")
	svg := RenderSVG(doc, DefaultSVGOptions())

	assert.True(t, strings.HasPrefix(svg, "<svg "))
	assert.True(t, strings.HasSuffix(svg, "</svg>\n"))
	assert.Contains(t, svg, `width="800" height="600"`)
	assert.Contains(t, svg, "<polygon points=")
	assert.Contains(t, svg, "Sunny Border")

	// Two starter placements, each with a marker circle.
	assert.Equal(t, 2, strings.Count(svg, "<circle"))
}

func TestRenderSVGWithoutLabels(t *testing.T) {
	doc := document.NewSampleDocument("proj_1")
	opts := DefaultSVGOptions()
	opts.ShowLabels = false

	svg := RenderSVG(doc, opts)
	assert.NotContains(t, svg, "<text")
	assert.NotContains(t, svg, "Sunny Border")
}

func TestRenderSVGCustomSize(t *testing.T) {
	doc := document.NewSampleDocument("proj_1")
	opts := DefaultSVGOptions()
	opts.Width = 400
	opts.Height = 300

	svg := RenderSVG(doc, opts)
	assert.Contains(t, svg, `width="400" height="300"`)
}

func TestRenderSVGEscapesNames(t *testing.T) {
	doc := document.NewSampleDocument("proj_1")
	doc.Project.Name = `Front <Yard> & Back`

	svg := RenderSVG(doc, DefaultSVGOptions())
	require.Contains(t, svg, "Front &lt;Yard&gt; &amp; Back")
	assert.NotContains(t, svg, "<Yard>")
}

func TestRenderSVGLeavesInputUntouched(t *testing.T) {
	doc := document.NewSampleDocument("proj_1")
	before := doc.Project.Version

	RenderSVG(doc, DefaultSVGOptions())
	assert.Equal(t, before, doc.Project.Version)
}
