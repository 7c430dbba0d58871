package layout

import "github.com/wcatz/gridboard/internal/grid"

// Editing reports whether an edit session is open.
func (c *Controller[P]) Editing() bool {
	return c.editing
}

// EnterEdit opens an edit session, snapshotting the committed set.
func (c *Controller[P]) EnterEdit() bool {
	if c.editing {
		return false
	}
	c.snapshot = c.cloneDeep(c.widgets)
	c.editing = true
	return true
}

// CancelEdit restores the snapshot taken by EnterEdit, discarding every
// change made during the session.
func (c *Controller[P]) CancelEdit() bool {
	if !c.editing {
		return false
	}
	c.endDrag()
	restored := c.snapshot
	c.snapshot = nil
	c.editing = false
	c.commit(restored)
	return true
}

// SaveEdit closes the edit session, keeping its changes, and persists the board.
func (c *Controller[P]) SaveEdit() bool {
	if !c.editing {
		return false
	}
	c.endDrag()
	c.snapshot = nil
	c.editing = false
	c.persist()
	return true
}

func (c *Controller[P]) cloneDeep(set []grid.Widget[P]) []grid.Widget[P] {
	out := grid.Clone(set)
	if c.opts.CloneProps != nil {
		for i := range out {
			out[i].Props = c.opts.CloneProps(out[i].Props)
		}
	}
	return out
}
