// Package grid implements the geometry of a widget board: rectangles on a
// 1-indexed integer grid with a fixed column count and unbounded rows.
//
// Every function in this package is pure. Callers own the slices they pass
// in; results are always freshly allocated.
package grid

import "sort"

// Rect is a widget footprint. It occupies columns [X, X+W) and rows [Y, Y+H).
type Rect struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
	W int `json:"w" yaml:"w"`
	H int `json:"h" yaml:"h"`
}

// Right returns the first column past the rectangle.
func (r Rect) Right() int { return r.X + r.W }

// Bottom returns the first row past the rectangle.
func (r Rect) Bottom() int { return r.Y + r.H }

// Widget is one item on the board. Type and Props are carried through
// untouched; only Layout is interpreted.
type Widget[P any] struct {
	ID     string `json:"id" yaml:"id"`
	Type   string `json:"type" yaml:"type"`
	Props  P      `json:"props,omitempty" yaml:"props,omitempty"`
	Layout Rect   `json:"layout" yaml:"layout"`
}

// Size is the board's column and row count.
type Size struct {
	Cols int `json:"cols" yaml:"cols"`
	Rows int `json:"rows" yaml:"rows"`
}

// Overlaps reports whether a and b share any cell. Touching edges do not count.
func Overlaps(a, b Rect) bool {
	return a.X < b.X+b.W && a.X+a.W > b.X && a.Y < b.Y+b.H && a.Y+a.H > b.Y
}

// Clamp forces r inside [1, cols] horizontally. Y and H pass through.
func Clamp(r Rect, cols int) Rect {
	if r.W > cols {
		r.W = cols
	}
	if r.X+r.W > cols+1 {
		r.X = cols - r.W + 1
	}
	if r.X < 1 {
		r.X = 1
	}
	return r
}

// RequiredRows returns max(minRows, y+h over set). minRows below 1 counts as 1.
func RequiredRows[P any](set []Widget[P], minRows int) int {
	rows := max(minRows, 1)
	for _, w := range set {
		rows = max(rows, w.Layout.Bottom())
	}
	return rows
}

// Clone copies set. Layouts are values, so the copy is independent of the
// original as far as geometry goes; Props are copied by assignment.
func Clone[P any](set []Widget[P]) []Widget[P] {
	if set == nil {
		return nil
	}
	out := make([]Widget[P], len(set))
	copy(out, set)
	return out
}

// Index returns the position of the widget with the given id, or -1.
func Index[P any](set []Widget[P], id string) int {
	for i := range set {
		if set[i].ID == id {
			return i
		}
	}
	return -1
}

// SortByPosition returns a copy of set ordered by (y, x). Ties keep input order.
func SortByPosition[P any](set []Widget[P]) []Widget[P] {
	out := Clone(set)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].Layout, out[j].Layout
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		return a.X < b.X
	})
	return out
}
