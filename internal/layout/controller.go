// Package layout holds the stateful board controller: the committed widget
// set, the drag preview, and the edit session around them.
//
// A Controller is not safe for concurrent use. Callers that receive events
// from several goroutines must serialize them.
package layout

import (
	"github.com/wcatz/gridboard/internal/grid"
)

// Patch holds the layout fields to change. Zero fields keep their current value.
type Patch struct {
	X, Y, W, H int
}

func (p Patch) apply(r grid.Rect) grid.Rect {
	if p.X != 0 {
		r.X = p.X
	}
	if p.Y != 0 {
		r.Y = p.Y
	}
	if p.W > 0 {
		r.W = p.W
	}
	if p.H > 0 {
		r.H = p.H
	}
	return r
}

// Controller owns a board. Every mutation is clamped and resolved before it
// is committed, so the committed set never contains overlapping widgets.
type Controller[P any] struct {
	opts Options[P]

	widgets []grid.Widget[P]
	size    grid.Size

	preview []grid.Widget[P]
	drag    *dragState

	editing  bool
	snapshot []grid.Widget[P]
}

// New creates a controller around initial. An initial board that is not a
// valid board for opts.Cols is replaced wholesale by opts.Fallback (or by an
// empty board if the fallback is invalid too). Creation does not persist.
func New[P any](initial []grid.Widget[P], opts Options[P]) *Controller[P] {
	opts.applyDefaults()
	c := &Controller[P]{opts: opts}

	switch {
	case grid.Validate(initial, opts.Cols) == nil:
		c.widgets = grid.Clone(initial)
	case grid.Validate(opts.Fallback, opts.Cols) == nil:
		c.widgets = grid.Clone(opts.Fallback)
	}
	c.size = grid.Size{Cols: opts.Cols, Rows: grid.RequiredRows(c.widgets, opts.MinRows)}
	return c
}

// Widgets returns a copy of the committed set.
func (c *Controller[P]) Widgets() []grid.Widget[P] {
	return grid.Clone(c.widgets)
}

// Widget returns the committed widget with the given id.
func (c *Controller[P]) Widget(id string) (grid.Widget[P], bool) {
	i := grid.Index(c.widgets, id)
	if i < 0 {
		return grid.Widget[P]{}, false
	}
	return c.widgets[i], true
}

// Preview returns a copy of the drag preview, or nil when there is none.
func (c *Controller[P]) Preview() []grid.Widget[P] {
	return grid.Clone(c.preview)
}

// Narrow returns the two-column view of the committed set. It is for display
// only and is never committed.
func (c *Controller[P]) Narrow() []grid.Widget[P] {
	return grid.ReflowNarrow(c.widgets)
}

// Size returns the grid size to render. While a drag is active the row count
// covers the preview and is inflated by the drag margin.
func (c *Controller[P]) Size() grid.Size {
	size := c.size
	if c.drag != nil {
		size.Rows = max(size.Rows, grid.RequiredRows(c.preview, c.opts.MinRows)) + max(c.opts.DragMargin, 0)
	}
	return size
}

// CommittedSize returns the grid size of the committed set alone.
func (c *Controller[P]) CommittedSize() grid.Size {
	return c.size
}

// Add appends a widget of type typ at the first free slot and returns its
// id. Unknown types are ignored.
func (c *Controller[P]) Add(typ string) (string, bool) {
	if c.opts.Registry == nil {
		return "", false
	}
	def, ok := c.opts.Registry.ResolveDefault(typ)
	if !ok {
		return "", false
	}
	w := min(max(def.W, 1), c.opts.Cols)
	h := max(def.H, 1)

	nw := grid.Widget[P]{ID: c.newID(), Type: typ, Props: def.Props}
	x, y, found := grid.FirstFit(c.widgets, c.opts.Cols, w, h)
	nw.Layout = grid.Rect{X: x, Y: y, W: w, H: h}

	next := append(grid.Clone(c.widgets), nw)
	if !found {
		// FirstFit fell back to the origin; push everything else clear of it.
		next = grid.Resolve(next, nw)
	}
	c.commit(next)
	return nw.ID, true
}

func (c *Controller[P]) newID() string {
	id := c.opts.IDs.Next()
	for grid.Index(c.widgets, id) >= 0 {
		id = c.opts.IDs.Next()
	}
	return id
}

// Remove deletes the widget with the given id. Other widgets stay where they are.
func (c *Controller[P]) Remove(id string) bool {
	i := grid.Index(c.widgets, id)
	if i < 0 {
		return false
	}
	if c.drag != nil && c.drag.id == id {
		c.endDrag()
	}
	next := make([]grid.Widget[P], 0, len(c.widgets)-1)
	next = append(next, c.widgets[:i]...)
	next = append(next, c.widgets[i+1:]...)
	c.commit(next)
	return true
}

// Move places the widget at (x, y), clamped to the grid, and pushes anything
// it lands on downward. Move never compacts.
func (c *Controller[P]) Move(id string, x, y int) bool {
	i := grid.Index(c.widgets, id)
	if i < 0 {
		return false
	}
	c.preview = nil
	active := c.widgets[i]
	active.Layout = c.clamp(grid.Rect{X: x, Y: y, W: active.Layout.W, H: active.Layout.H})
	c.commit(grid.Resolve(c.widgets, active))
	return true
}

// UpdateLayout merges p into the widget's layout, clamps and resolves it, and
// then compacts the whole board.
func (c *Controller[P]) UpdateLayout(id string, p Patch) bool {
	i := grid.Index(c.widgets, id)
	if i < 0 {
		return false
	}
	c.preview = nil
	active := c.widgets[i]
	active.Layout = c.clamp(p.apply(active.Layout))
	c.commit(grid.Compact(grid.Resolve(c.widgets, active)))
	return true
}

// Resize changes the widget's size. See UpdateLayout.
func (c *Controller[P]) Resize(id string, w, h int) bool {
	return c.UpdateLayout(id, Patch{W: w, H: h})
}

// Arrange compacts the board in (y, x) order.
func (c *Controller[P]) Arrange() {
	c.commit(grid.Compact(c.widgets))
}

// Reset empties the board and restores the default grid size.
func (c *Controller[P]) Reset() {
	c.endDrag()
	c.commit(nil)
}

// Replace swaps in a whole new board. It is rejected unless it validates.
func (c *Controller[P]) Replace(widgets []grid.Widget[P]) error {
	if err := grid.Validate(widgets, c.opts.Cols); err != nil {
		return err
	}
	c.endDrag()
	c.commit(grid.Clone(widgets))
	return nil
}

// clamp keeps r inside the columns and below the first row.
func (c *Controller[P]) clamp(r grid.Rect) grid.Rect {
	r.Y = max(r.Y, 1)
	return grid.Clamp(r, c.opts.Cols)
}

func (c *Controller[P]) commit(next []grid.Widget[P]) {
	c.widgets = next
	c.size = grid.Size{Cols: c.opts.Cols, Rows: grid.RequiredRows(next, c.opts.MinRows)}
	c.persist()
}

func (c *Controller[P]) persist() {
	if c.opts.Persist != nil {
		c.opts.Persist(grid.Clone(c.widgets), c.size)
	}
}
