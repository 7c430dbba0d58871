package layout

import (
	"time"

	"github.com/wcatz/gridboard/internal/grid"
	"github.com/wcatz/gridboard/internal/registry"
)

// Defaults applied by New when an Options field is left zero.
const (
	DefaultCols            = 4
	DefaultMinRows         = 1
	DefaultDragMargin      = 4
	DefaultPointerInterval = 16 * time.Millisecond
	DefaultTouchInterval   = 60 * time.Millisecond
)

// PersistFunc receives the full committed board after every change. It must
// not block; the controller does not wait for or retry it.
type PersistFunc[P any] func(widgets []grid.Widget[P], size grid.Size)

// Options configures a Controller.
type Options[P any] struct {
	Cols    int
	MinRows int
	// DragMargin is the number of extra rows shown while dragging. Zero
	// selects DefaultDragMargin; a negative value disables the margin.
	DragMargin int

	// Minimum time between processed hover events, per device class.
	PointerInterval time.Duration
	TouchInterval   time.Duration

	Registry registry.Registry[P]
	IDs      grid.IDGenerator
	Persist  PersistFunc[P]

	// Fallback replaces an initial board that fails validation.
	Fallback []grid.Widget[P]

	// CloneProps deep-copies props for edit snapshots. Nil copies by assignment.
	CloneProps func(P) P

	// Now is injectable for tests.
	Now func() time.Time
}

func (o *Options[P]) applyDefaults() {
	if o.Cols <= 0 {
		o.Cols = DefaultCols
	}
	if o.MinRows <= 0 {
		o.MinRows = DefaultMinRows
	}
	if o.DragMargin < 0 {
		o.DragMargin = 0
	} else if o.DragMargin == 0 {
		o.DragMargin = DefaultDragMargin
	}
	if o.PointerInterval <= 0 {
		o.PointerInterval = DefaultPointerInterval
	}
	if o.TouchInterval <= 0 {
		o.TouchInterval = DefaultTouchInterval
	}
	if o.IDs == nil {
		o.IDs = grid.UUIDGenerator{}
	}
	if o.Now == nil {
		o.Now = time.Now
	}
}
