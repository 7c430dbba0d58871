package store

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/wcatz/gridboard/internal/board"
	"github.com/wcatz/gridboard/internal/grid"
)

type countingStore struct {
	*MemoryStore
	mu    sync.Mutex
	saves int
}

func (s *countingStore) Save(ctx context.Context, name string, b board.Board) error {
	s.mu.Lock()
	s.saves++
	s.mu.Unlock()
	return s.MemoryStore.Save(ctx, name, b)
}

func TestSaverWritesNewestBoard(t *testing.T) {
	cs := &countingStore{MemoryStore: NewMemoryStore()}
	sv := NewSaver(cs, "main", nil)

	for i := 1; i <= 50; i++ {
		sv.Enqueue(board.Board{
			Widgets: []board.Widget{{ID: "a", Type: "clock", Layout: grid.Rect{X: 1, Y: i, W: 1, H: 1}}},
			Grid:    grid.Size{Cols: 4, Rows: i},
		})
	}
	sv.Close()

	got, err := cs.Load(context.Background(), "main")
	if err != nil {
		t.Fatal(err)
	}
	if got.Widgets[0].Layout.Y != 50 || got.Grid.Rows != 50 {
		t.Errorf("stored board = %+v, want the last enqueued one", got)
	}
	if cs.saves < 1 || cs.saves > 50 {
		t.Errorf("saves = %d", cs.saves)
	}
}

func TestSaverHook(t *testing.T) {
	s := NewMemoryStore()
	sv := NewSaver(s, "main", nil)

	widgets := []board.Widget{{ID: "a", Type: "notes", Props: board.Props{"text": "x"},
		Layout: grid.Rect{X: 1, Y: 1, W: 2, H: 2}}}
	sv.Hook()(widgets, grid.Size{Cols: 4, Rows: 2})
	widgets[0].Props["text"] = "mutated"
	sv.Close()

	got, err := s.Load(context.Background(), "main")
	if err != nil {
		t.Fatal(err)
	}
	if got.Widgets[0].Props["text"] != "x" {
		t.Errorf("saver should snapshot props at enqueue time, got %v", got.Widgets[0].Props["text"])
	}
}

func TestSaverLogsFailures(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf)
	fs := &failingStore{MemoryStore: NewMemoryStore(), err: errors.New("disk full")}
	sv := NewSaver(fs, "main", logger)

	sv.Enqueue(board.Board{Grid: grid.Size{Cols: 4, Rows: 1}})
	sv.Close()

	if !strings.Contains(buf.String(), "disk full") {
		t.Errorf("expected failure to be logged, got %q", buf.String())
	}
}

func TestSaverCloseTwiceAndEnqueueAfterClose(t *testing.T) {
	s := NewMemoryStore()
	sv := NewSaver(s, "main", nil)
	sv.Close()
	sv.Close()

	sv.Enqueue(board.Board{Grid: grid.Size{Cols: 4, Rows: 1}})
	if _, err := s.Load(context.Background(), "main"); !errors.Is(err, ErrNotFound) {
		t.Errorf("enqueue after close should be dropped, got %v", err)
	}
}
