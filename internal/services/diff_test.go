package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/resume-tailor/internal/models"
)

func TestNormalizeLines(t *testing.T) {
	text := "  Engineer  \n\n\tWorked at Acme\t\n\n"

	lines := NormalizeLines(text)

	assert.Equal(t, []string{"Engineer", "Worked at Acme"}, lines)
}

func TestNormalizeLines_Empty(t *testing.T) {
	assert.Empty(t, NormalizeLines(""))
	assert.Empty(t, NormalizeLines("\n\n  \n"))
}

func TestCompare_IdenticalInputs(t *testing.T) {
	svc := NewDiffService()
	text := "Engineer with Python skills.\n\nWorked at Acme."

	diff := svc.Compare(text, text)

	require.Len(t, diff, 2)
	var lines []string
	for _, line := range diff {
		assert.Equal(t, models.DiffEqual, line.Tag)
		lines = append(lines, line.Text)
	}
	assert.Equal(t, NormalizeLines(text), lines)
}

func TestCompare_Symmetry(t *testing.T) {
	a := "alpha\nbeta\ngamma"
	b := "alpha\ndelta\ngamma\nepsilon"
	svc := NewDiffService()

	forward := svc.Compare(a, b)
	backward := svc.Compare(b, a)

	count := func(diff []models.DiffLine, tag models.DiffTag) int {
		n := 0
		for _, line := range diff {
			if line.Tag == tag {
				n++
			}
		}
		return n
	}

	// Swapping the inputs swaps insertions and deletions, equal lines stay
	assert.Equal(t, count(forward, models.DiffInsert), count(backward, models.DiffDelete))
	assert.Equal(t, count(forward, models.DiffDelete), count(backward, models.DiffInsert))
	assert.Equal(t, count(forward, models.DiffEqual), count(backward, models.DiffEqual))
}

func TestCompare_EmptyAgainstNonEmpty(t *testing.T) {
	svc := NewDiffService()
	text := "First line\n\nSecond line\n"

	diff := svc.Compare("", text)

	require.Len(t, diff, 2)
	for _, line := range diff {
		assert.Equal(t, models.DiffInsert, line.Tag)
	}
	assert.Equal(t, "First line", diff[0].Text)
	assert.Equal(t, "Second line", diff[1].Text)
}

func TestCompare_NonEmptyAgainstEmpty(t *testing.T) {
	svc := NewDiffService()

	diff := svc.Compare("Only line", "")

	require.Len(t, diff, 1)
	assert.Equal(t, models.DiffDelete, diff[0].Tag)
	assert.Equal(t, "Only line", diff[0].Text)
}

func TestCompare_BothEmpty(t *testing.T) {
	svc := NewDiffService()

	assert.Empty(t, svc.Compare("", ""))
}

func TestCompare_TailoredResumeExample(t *testing.T) {
	svc := NewDiffService()
	original := "Engineer with Python skills.\n\nWorked at Acme."
	tailored := "Senior Engineer with Python and cloud skills.\nWorked at Acme."

	diff := svc.Compare(original, tailored)

	// The blank line is dropped from both before comparison
	require.Len(t, diff, 3)
	assert.Equal(t, models.DiffLine{Tag: models.DiffDelete, Text: "Engineer with Python skills."}, diff[0])
	assert.Equal(t, models.DiffLine{Tag: models.DiffInsert, Text: "Senior Engineer with Python and cloud skills."}, diff[1])
	assert.Equal(t, models.DiffLine{Tag: models.DiffEqual, Text: "Worked at Acme."}, diff[2])
}

func TestCompare_InterleavesAroundAnchors(t *testing.T) {
	svc := NewDiffService()
	original := "Summary\nOld bullet\nEducation"
	tailored := "Summary\nNew bullet\nExtra bullet\nEducation"

	diff := svc.Compare(original, tailored)

	require.Len(t, diff, 5)
	assert.Equal(t, models.DiffEqual, diff[0].Tag)
	assert.Equal(t, models.DiffDelete, diff[1].Tag)
	assert.Equal(t, models.DiffInsert, diff[2].Tag)
	assert.Equal(t, models.DiffInsert, diff[3].Tag)
	assert.Equal(t, models.DiffEqual, diff[4].Tag)
}

func TestCompare_Deterministic(t *testing.T) {
	svc := NewDiffService()
	a := "one\ntwo\nthree"
	b := "one\ntwo changed\nthree"

	first := svc.Compare(a, b)
	second := svc.Compare(a, b)

	assert.Equal(t, first, second)
}

func TestRenderHTML(t *testing.T) {
	svc := NewDiffService()
	lines := []models.DiffLine{
		{Tag: models.DiffEqual, Text: "Worked at Acme."},
		{Tag: models.DiffDelete, Text: "Engineer"},
		{Tag: models.DiffInsert, Text: "Senior Engineer"},
	}

	html := svc.RenderHTML(lines)

	assert.True(t, strings.HasPrefix(html, "<div"))
	assert.True(t, strings.HasSuffix(html, "</div>"))
	assert.Contains(t, html, "#e6ffe6") // insert background
	assert.Contains(t, html, "#ffe6e6") // delete background
	assert.Contains(t, html, "+ Senior Engineer")
	assert.Contains(t, html, "- Engineer")
}

func TestRenderHTML_EscapesText(t *testing.T) {
	svc := NewDiffService()
	lines := []models.DiffLine{
		{Tag: models.DiffInsert, Text: `<script>alert("x")</script>`},
	}

	html := svc.RenderHTML(lines)

	assert.NotContains(t, html, "<script>")
	assert.Contains(t, html, "&lt;script&gt;")
}
