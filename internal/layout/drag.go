package layout

import (
	"time"

	"github.com/wcatz/gridboard/internal/grid"
)

// Device is the input class of a drag gesture. It selects the hover throttle
// interval.
type Device int

const (
	Pointer Device = iota
	Touch
)

func (d Device) String() string {
	if d == Touch {
		return "touch"
	}
	return "pointer"
}

// ParseDevice maps "touch" to Touch and anything else to Pointer.
func ParseDevice(s string) Device {
	if s == "touch" {
		return Touch
	}
	return Pointer
}

type dragState struct {
	id        string
	device    Device
	lastHover time.Time
}

// Dragging returns the id of the widget being dragged.
func (c *Controller[P]) Dragging() (string, bool) {
	if c.drag == nil {
		return "", false
	}
	return c.drag.id, true
}

// DragStart begins dragging the widget. Drags are only accepted while editing.
func (c *Controller[P]) DragStart(id string, device Device) bool {
	if !c.editing || grid.Index(c.widgets, id) < 0 {
		return false
	}
	c.preview = nil
	c.drag = &dragState{id: id, device: device}
	return true
}

// Hover updates the preview for the dragged widget hovering over (x, y).
// Events closer together than the device's interval are dropped. The
// preview is resolved against the committed set, never the previous preview.
// It reports whether the preview changed.
func (c *Controller[P]) Hover(id string, x, y int) bool {
	d := c.drag
	if d == nil || d.id != id {
		return false
	}
	now := c.opts.Now()
	if !d.lastHover.IsZero() && now.Sub(d.lastHover) < c.interval(d.device) {
		return false
	}
	d.lastHover = now

	i := grid.Index(c.widgets, id)
	if i < 0 {
		return false
	}
	active := c.widgets[i]
	active.Layout = c.clamp(grid.Rect{X: x, Y: y, W: active.Layout.W, H: active.Layout.H})

	if j := grid.Index(c.preview, id); j >= 0 && c.preview[j].Layout == active.Layout {
		return false
	}
	c.preview = grid.Resolve(c.widgets, active)
	return true
}

// Drop ends the drag and commits the widget at (x, y).
func (c *Controller[P]) Drop(id string, x, y int) bool {
	if c.drag == nil || c.drag.id != id {
		return false
	}
	c.endDrag()
	return c.Move(id, x, y)
}

// DragEnd abandons the drag without committing anything.
func (c *Controller[P]) DragEnd() {
	c.endDrag()
}

func (c *Controller[P]) endDrag() {
	c.drag = nil
	c.preview = nil
}

func (c *Controller[P]) interval(d Device) time.Duration {
	if d == Touch {
		return c.opts.TouchInterval
	}
	return c.opts.PointerInterval
}
