package layout

import (
	"fmt"
	"strings"
)

// GridShape is the rows×columns arrangement used to pack source documents
// onto one output page. The 1x2/1x3 labels mean vertical stacking (one
// column), matching the original layout names; capacity is rows*cols.
type GridShape struct {
	Label string
	Rows  int
	Cols  int
}

var gridShapes = []GridShape{
	{Label: "1x1", Rows: 1, Cols: 1},
	{Label: "1x2", Rows: 2, Cols: 1},
	{Label: "1x3", Rows: 3, Cols: 1},
	{Label: "2x2", Rows: 2, Cols: 2},
	{Label: "2x3", Rows: 2, Cols: 3},
	{Label: "2x4", Rows: 2, Cols: 4},
}

// ParseGridShape resolves a layout label like "1x2" or "2×4".
func ParseGridShape(label string) (GridShape, error) {
	normalized := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(label), "×", "x"))
	for _, g := range gridShapes {
		if g.Label == normalized {
			return g, nil
		}
	}
	return GridShape{}, fmt.Errorf("unknown grid shape %q", label)
}

// GridShapes lists the supported layouts in display order.
func GridShapes() []GridShape {
	out := make([]GridShape, len(gridShapes))
	copy(out, gridShapes)
	return out
}

// Capacity is the number of cells per page.
func (g GridShape) Capacity() int {
	return g.Rows * g.Cols
}

func (g GridShape) String() string {
	return g.Label
}
