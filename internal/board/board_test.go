package board

import (
	"errors"
	"testing"

	"github.com/wcatz/gridboard/internal/grid"
)

func TestCloneProps(t *testing.T) {
	in := Props{
		"title": "todo",
		"items": []any{"a", map[string]any{"done": false}},
		"style": map[string]any{"color": "red"},
	}
	out := CloneProps(in)

	out["title"] = "changed"
	out["style"].(map[string]any)["color"] = "blue"
	out["items"].([]any)[1].(map[string]any)["done"] = true

	if in["title"] != "todo" {
		t.Error("top-level value shared")
	}
	if in["style"].(map[string]any)["color"] != "red" {
		t.Error("nested map shared")
	}
	if in["items"].([]any)[1].(map[string]any)["done"] != false {
		t.Error("map inside slice shared")
	}
	if CloneProps(nil) != nil {
		t.Error("CloneProps(nil) != nil")
	}
}

func TestBoardValidate(t *testing.T) {
	b := Board{
		Widgets: []Widget{{ID: "a", Layout: grid.Rect{X: 1, Y: 1, W: 3, H: 1}}},
		Grid:    grid.Size{Cols: 2, Rows: 1},
	}
	if err := b.Validate(); !errors.Is(err, grid.ErrOutOfBounds) {
		t.Errorf("Validate() = %v, want ErrOutOfBounds", err)
	}
	b.Grid.Cols = 4
	if err := b.Validate(); err != nil {
		t.Errorf("Validate() error: %v", err)
	}
}

func TestString(t *testing.T) {
	p := Props{"title": "groceries", "count": 3, "empty": ""}
	if got := String(p, "title", "x"); got != "groceries" {
		t.Errorf("title = %q", got)
	}
	if got := String(p, "count", "x"); got != "x" {
		t.Errorf("non-string prop should use default, got %q", got)
	}
	if got := String(p, "empty", "x"); got != "x" {
		t.Errorf("empty string should use default, got %q", got)
	}
	if got := String(nil, "title", "x"); got != "x" {
		t.Errorf("nil props should use default, got %q", got)
	}
}
