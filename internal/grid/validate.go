package grid

import (
	"errors"
	"fmt"
)

// Validation errors. Validate wraps them with the offending widget ids.
var (
	ErrInvalidRect = errors.New("invalid rectangle")
	ErrOutOfBounds = errors.New("rectangle outside grid columns")
	ErrDuplicateID = errors.New("duplicate widget id")
	ErrOverlap     = errors.New("widgets overlap")
	ErrInvalidGrid = errors.New("invalid grid size")
	ErrEmptyID     = errors.New("empty widget id")
)

// Validate checks that set is a legal board for cols columns: positive
// rectangles inside the columns, unique non-empty ids, and no overlaps.
func Validate[P any](set []Widget[P], cols int) error {
	if cols < 1 {
		return fmt.Errorf("%w: cols=%d", ErrInvalidGrid, cols)
	}
	seen := make(map[string]bool, len(set))
	for i, w := range set {
		r := w.Layout
		switch {
		case w.ID == "":
			return fmt.Errorf("widget %d: %w", i, ErrEmptyID)
		case seen[w.ID]:
			return fmt.Errorf("widget '%s': %w", w.ID, ErrDuplicateID)
		case r.X < 1 || r.Y < 1 || r.W < 1 || r.H < 1:
			return fmt.Errorf("widget '%s' %+v: %w", w.ID, r, ErrInvalidRect)
		case r.Right()-1 > cols:
			return fmt.Errorf("widget '%s' %+v: %w", w.ID, r, ErrOutOfBounds)
		}
		seen[w.ID] = true
		for _, prev := range set[:i] {
			if Overlaps(prev.Layout, r) {
				return fmt.Errorf("widgets '%s' and '%s': %w", prev.ID, w.ID, ErrOverlap)
			}
		}
	}
	return nil
}
