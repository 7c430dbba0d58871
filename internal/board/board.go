// Package board defines the concrete board types shared by storage, the
// HTTP API and the terminal UI. Widget props are free-form JSON/YAML maps.
package board

import "github.com/wcatz/gridboard/internal/grid"

// Props is the opaque per-widget payload.
type Props = map[string]any

// Widget is a board widget with free-form props.
type Widget = grid.Widget[Props]

// Board is the persisted form of a board.
type Board struct {
	Widgets []Widget  `json:"widgets" yaml:"widgets"`
	Grid    grid.Size `json:"grid" yaml:"grid"`
}

// Validate checks the widgets against the board's column count.
func (b Board) Validate() error {
	return grid.Validate(b.Widgets, b.Grid.Cols)
}

// CloneProps deep-copies nested maps and slices.
func CloneProps(p Props) Props {
	if p == nil {
		return nil
	}
	out := make(Props, len(p))
	for k, v := range p {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return CloneProps(t)
	case []any:
		s := make([]any, len(t))
		for i, item := range t {
			s[i] = cloneValue(item)
		}
		return s
	default:
		return v
	}
}

// String returns the string prop under key, or def when it is missing or
// not a string.
func String(p Props, key, def string) string {
	if v, ok := p[key]; ok {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	return def
}
