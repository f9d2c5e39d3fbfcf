package models

// DiffTag classifies a line in a diff rendering.
type DiffTag string

const (
	DiffEqual  DiffTag = "equal"
	DiffInsert DiffTag = "insert"
	DiffDelete DiffTag = "delete"
)

// DiffLine is one tagged line of a diff rendering, in document order.
type DiffLine struct {
	Tag  DiffTag `json:"tag"`
	Text string  `json:"text"`
}
