package grid

// MaxScanRows bounds the FirstFit scan. Reaching it means the input set was
// not a valid board.
const MaxScanRows = 1000

// FirstFit returns the first position, scanning rows top to bottom and
// columns left to right, where a w×h rectangle overlaps nothing in set.
// w must already be capped to cols. ok is false only when the scan bound was
// exhausted, in which case (1, 1) is returned.
func FirstFit[P any](set []Widget[P], cols, w, h int) (x, y int, ok bool) {
	for y = 1; y <= MaxScanRows; y++ {
		for x = 1; x <= cols-w+1; x++ {
			if fits(set, Rect{X: x, Y: y, W: w, H: h}) {
				return x, y, true
			}
		}
	}
	return 1, 1, false
}

func fits[P any](set []Widget[P], r Rect) bool {
	for _, other := range set {
		if Overlaps(r, other.Layout) {
			return false
		}
	}
	return true
}

// Flow places rectangles in reading order: left to right, wrapping to a new
// row below the tallest item of the current row when the next one would not
// fit. It builds default boards.
type Flow struct {
	Cols      int
	cursorX   int
	cursorY   int
	rowHeight int
}

// NewFlow creates a flow placer for a grid with cols columns.
func NewFlow(cols int) *Flow {
	f := &Flow{Cols: cols}
	f.Reset()
	return f
}

// Reset moves the cursor back to the top-left cell.
func (f *Flow) Reset() {
	f.cursorX = 1
	f.cursorY = 1
	f.rowHeight = 0
}

// Place positions a w×h item and returns its clamped rectangle.
func (f *Flow) Place(w, h int) Rect {
	if w > f.Cols {
		w = f.Cols
	}
	if f.cursorX+w > f.Cols+1 {
		f.Break()
	}
	r := Rect{X: f.cursorX, Y: f.cursorY, W: w, H: h}
	f.cursorX += w
	if h > f.rowHeight {
		f.rowHeight = h
	}
	return r
}

// Break advances past the tallest item in the current row.
func (f *Flow) Break() {
	if f.cursorX > 1 {
		f.cursorY += f.rowHeight
		f.cursorX = 1
		f.rowHeight = 0
	}
}
