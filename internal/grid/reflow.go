package grid

// NarrowCols is the column count of the narrow-viewport view.
const NarrowCols = 2

type cell struct{ x, y int }

// ReflowNarrow maps a layout of any width onto NarrowCols columns for
// display. Widgets are visited in (y, x) order; each is narrowed, then slid
// forward cell by cell from its own position (wrapping to the next row) until
// its footprint is free. The input is never modified and the result must not
// be persisted.
func ReflowNarrow[P any](set []Widget[P]) []Widget[P] {
	return Reflow(set, NarrowCols)
}

// Reflow is ReflowNarrow for an arbitrary column count.
func Reflow[P any](set []Widget[P], cols int) []Widget[P] {
	out := SortByPosition(set)
	occupied := make(map[cell]bool)

	for i := range out {
		r := out[i].Layout
		r.W = min(r.W, cols)
		r.X = max(min(r.X, cols-r.W+1), 1)
		r.Y = max(r.Y, 1)

		for !free(occupied, r) {
			r.X++
			if r.X+r.W-1 > cols {
				r.X = 1
				r.Y++
			}
		}
		for y := r.Y; y < r.Bottom(); y++ {
			for x := r.X; x < r.Right(); x++ {
				occupied[cell{x, y}] = true
			}
		}
		out[i].Layout = r
	}
	return out
}

func free(occupied map[cell]bool, r Rect) bool {
	for y := r.Y; y < r.Bottom(); y++ {
		for x := r.X; x < r.Right(); x++ {
			if occupied[cell{x, y}] {
				return false
			}
		}
	}
	return true
}
