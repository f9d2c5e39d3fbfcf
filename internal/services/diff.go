package services

import (
	"html"
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"alfredoptarigan/resume-tailor/internal/models"
)

type DiffService interface {
	Compare(original, tailored string) []models.DiffLine
	RenderHTML(lines []models.DiffLine) string
}

type diffService struct{}

func NewDiffService() DiffService {
	return &diffService{}
}

// NormalizeLines splits text into trimmed, non-blank lines. Blank lines are
// dropped before comparison, so blank-line-only changes are invisible to
// the diff.
func NormalizeLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// Compare implements DiffService. It aligns the normalized lines of both
// texts and emits one tagged line per input line: equal lines anchor the
// alignment, with deletions and insertions interleaved in document order.
func (d *diffService) Compare(original, tailored string) []models.DiffLine {
	a := NormalizeLines(original)
	b := NormalizeLines(tailored)

	result := []models.DiffLine{}

	matcher := difflib.NewMatcher(a, b)
	for _, op := range matcher.GetOpCodes() {
		switch op.Tag {
		case 'e':
			for _, line := range a[op.I1:op.I2] {
				result = append(result, models.DiffLine{Tag: models.DiffEqual, Text: line})
			}
		case 'd':
			for _, line := range a[op.I1:op.I2] {
				result = append(result, models.DiffLine{Tag: models.DiffDelete, Text: line})
			}
		case 'i':
			for _, line := range b[op.J1:op.J2] {
				result = append(result, models.DiffLine{Tag: models.DiffInsert, Text: line})
			}
		case 'r':
			// A replace block is the deleted lines followed by their
			// replacements.
			for _, line := range a[op.I1:op.I2] {
				result = append(result, models.DiffLine{Tag: models.DiffDelete, Text: line})
			}
			for _, line := range b[op.J1:op.J2] {
				result = append(result, models.DiffLine{Tag: models.DiffInsert, Text: line})
			}
		}
	}

	return result
}

// RenderHTML implements DiffService. Insertions render green, deletions
// red, unchanged lines neutral.
func (d *diffService) RenderHTML(lines []models.DiffLine) string {
	var sb strings.Builder
	sb.WriteString(`<div style="font-family: 'Inter', sans-serif; white-space: pre-wrap; background-color: #f8f8f8; padding: 10px; border-radius: 8px; overflow-x: auto; border: 1px solid #ddd;">`)

	for _, line := range lines {
		text := html.EscapeString(line.Text)
		switch line.Tag {
		case models.DiffInsert:
			sb.WriteString(`<span style="background-color: #e6ffe6; color: #008000;">+ ` + text + "\n</span>")
		case models.DiffDelete:
			sb.WriteString(`<span style="background-color: #ffe6e6; color: #ff0000;">- ` + text + "\n</span>")
		default:
			sb.WriteString("<span>  " + text + "\n</span>")
		}
	}

	sb.WriteString("</div>")
	return sb.String()
}
