package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/wcatz/gridboard/internal/board"
	"github.com/wcatz/gridboard/internal/grid"
)

func testBoard() board.Board {
	return board.Board{
		Widgets: []board.Widget{
			{ID: "a", Type: "clock", Layout: grid.Rect{X: 1, Y: 1, W: 2, H: 1}},
			{ID: "b", Type: "notes", Props: board.Props{"text": "hi", "tags": []any{"x"}},
				Layout: grid.Rect{X: 3, Y: 1, W: 2, H: 2}},
		},
		Grid: grid.Size{Cols: 4, Rows: 3},
	}
}

func fallbackBoard() []board.Widget {
	return []board.Widget{{ID: "d", Type: "clock", Layout: grid.Rect{X: 1, Y: 1, W: 4, H: 3}}}
}

type failingStore struct {
	*MemoryStore
	err error
}

func (s *failingStore) Load(ctx context.Context, name string) (board.Board, error) {
	return board.Board{}, s.err
}

func (s *failingStore) Save(ctx context.Context, name string, b board.Board) error {
	return s.err
}

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		wantErr bool
	}{
		{"main", false},
		{"team-board_2", false},
		{"", true},
		{"a/b", true},
		{`a\b`, true},
		{"..", true},
		{"../etc", true},
		{"a\x00b", true},
	}
	for _, tt := range tests {
		err := ValidateName(tt.name)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateName(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
		}
	}
}

func TestEncodeDecode(t *testing.T) {
	data, err := Encode(testBoard())
	if err != nil {
		t.Fatal(err)
	}
	got, err := Decode(data)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, testBoard()) {
		t.Errorf("decoded board = %+v, want %+v", got, testBoard())
	}

	empty, err := Encode(board.Board{Grid: grid.Size{Cols: 4, Rows: 1}})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(empty), `"widgets": []`) {
		t.Errorf("empty board should encode widgets as [], got %s", empty)
	}

	if _, err := Decode([]byte("{not json")); !errors.Is(err, ErrMalformed) {
		t.Errorf("Decode(garbage) error = %v, want ErrMalformed", err)
	}
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	if _, err := s.Load(ctx, "main"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Load(missing) error = %v, want ErrNotFound", err)
	}

	b := testBoard()
	if err := s.Save(ctx, "main", b); err != nil {
		t.Fatal(err)
	}
	b.Widgets[1].Props["text"] = "changed"

	got, err := s.Load(ctx, "main")
	if err != nil {
		t.Fatal(err)
	}
	if got.Widgets[1].Props["text"] != "hi" {
		t.Error("stored board should not alias the caller's props")
	}
	got.Widgets[0].Layout.X = 3
	again, _ := s.Load(ctx, "main")
	if again.Widgets[0].Layout.X != 1 {
		t.Error("loaded board should not alias the stored board")
	}

	s.Save(ctx, "alpha", b)
	names, _ := s.List(ctx)
	if !reflect.DeepEqual(names, []string{"alpha", "main"}) {
		t.Errorf("List = %v", names)
	}

	if err := s.Delete(ctx, "main"); err != nil {
		t.Fatal(err)
	}
	if err := s.Delete(ctx, "main"); err != nil {
		t.Errorf("deleting a missing board should not fail: %v", err)
	}
	if err := s.Save(ctx, "../x", b); err == nil {
		t.Error("expected invalid name error")
	}
}

func TestFileStore(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "boards")
	s, err := NewFileStore(dir)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := s.Load(ctx, "main"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Load(missing) error = %v, want ErrNotFound", err)
	}

	n, err := s.Write("main", testBoard())
	if err != nil {
		t.Fatal(err)
	}
	info, err := os.Stat(s.Path("main"))
	if err != nil {
		t.Fatal(err)
	}
	if int64(n) != info.Size() {
		t.Errorf("Write returned %d bytes, file has %d", n, info.Size())
	}
	if _, err := os.Stat(s.Path("main") + ".tmp"); !os.IsNotExist(err) {
		t.Error("temp file should not remain after write")
	}

	got, err := s.Load(ctx, "main")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, testBoard()) {
		t.Errorf("loaded board = %+v", got)
	}

	if err := os.WriteFile(filepath.Join(dir, "broken.json"), []byte("{"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Load(ctx, "broken"); !errors.Is(err, ErrMalformed) {
		t.Errorf("Load(broken) error = %v, want ErrMalformed", err)
	}

	os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644)
	os.Mkdir(filepath.Join(dir, "sub.json"), 0755)
	names, err := s.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(names, []string{"broken", "main"}) {
		t.Errorf("List = %v, want [broken main]", names)
	}

	if err := s.Delete(ctx, "main"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Load(ctx, "main"); !errors.Is(err, ErrNotFound) {
		t.Errorf("board should be gone after delete, got %v", err)
	}
	if err := s.Delete(ctx, "main"); err != nil {
		t.Errorf("deleting a missing board should not fail: %v", err)
	}
	if _, err := s.Load(ctx, "../main"); err == nil {
		t.Error("expected invalid name error")
	}
}

func TestLoadOrDefault(t *testing.T) {
	ctx := context.Background()

	t.Run("stored board is used", func(t *testing.T) {
		s := NewMemoryStore()
		s.Save(ctx, "main", testBoard())
		b, used, err := LoadOrDefault(ctx, s, "main", 4, fallbackBoard)
		if err != nil {
			t.Fatal(err)
		}
		if !used {
			t.Error("expected stored board to be used")
		}
		if len(b.Widgets) != 2 || b.Grid.Cols != 4 {
			t.Errorf("board = %+v", b)
		}
	})

	t.Run("missing board uses fallback", func(t *testing.T) {
		b, used, err := LoadOrDefault(ctx, NewMemoryStore(), "main", 4, fallbackBoard)
		if err != nil {
			t.Fatal(err)
		}
		if used {
			t.Error("expected fallback")
		}
		if len(b.Widgets) != 1 || b.Widgets[0].ID != "d" {
			t.Errorf("widgets = %+v", b.Widgets)
		}
		if b.Grid != (grid.Size{Cols: 4, Rows: 4}) {
			t.Errorf("grid = %+v, want 4x4", b.Grid)
		}
	})

	t.Run("malformed board uses fallback", func(t *testing.T) {
		dir := t.TempDir()
		s, _ := NewFileStore(dir)
		os.WriteFile(s.Path("main"), []byte("[[["), 0644)
		b, used, err := LoadOrDefault(ctx, s, "main", 4, fallbackBoard)
		if err != nil {
			t.Fatal(err)
		}
		if used || b.Widgets[0].ID != "d" {
			t.Errorf("expected fallback, got used=%v %+v", used, b)
		}
	})

	t.Run("invalid board is replaced wholesale", func(t *testing.T) {
		s := NewMemoryStore()
		bad := testBoard()
		bad.Widgets[1].Layout = grid.Rect{X: 2, Y: 1, W: 2, H: 1}
		s.Save(ctx, "main", bad)
		b, used, err := LoadOrDefault(ctx, s, "main", 4, fallbackBoard)
		if err != nil {
			t.Fatal(err)
		}
		if used || len(b.Widgets) != 1 || b.Widgets[0].ID != "d" {
			t.Errorf("expected fallback, got used=%v %+v", used, b.Widgets)
		}
	})

	t.Run("board wider than the grid is rejected", func(t *testing.T) {
		s := NewMemoryStore()
		s.Save(ctx, "main", testBoard())
		_, used, err := LoadOrDefault(ctx, s, "main", 2, nil)
		if err != nil {
			t.Fatal(err)
		}
		if used {
			t.Error("board with x+w > cols+1 should not be used")
		}
	})

	t.Run("backend error is returned", func(t *testing.T) {
		boom := errors.New("connection refused")
		_, _, err := LoadOrDefault(ctx, &failingStore{MemoryStore: NewMemoryStore(), err: boom}, "main", 4, fallbackBoard)
		if !errors.Is(err, boom) {
			t.Errorf("error = %v, want %v", err, boom)
		}
	})
}

func TestFormatSize(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{1234567, "1,234,567"},
	}
	for _, tt := range tests {
		if got := FormatSize(tt.n); got != tt.want {
			t.Errorf("FormatSize(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}
