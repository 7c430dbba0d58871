// Package store persists boards.
//
// Backends:
//   - file: one JSON document per board in a directory
//   - redis: one JSON string per board under a key prefix
//   - mongo: one document per board in a collection
//   - memory: in-process map for tests and throwaway sessions
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/wcatz/gridboard/internal/board"
	"github.com/wcatz/gridboard/internal/grid"
)

// Sentinel errors for store operations.
var (
	// ErrNotFound is returned when no board is stored under a name.
	ErrNotFound = errors.New("board not found")

	// ErrMalformed is returned when a stored board cannot be decoded.
	ErrMalformed = errors.New("malformed board")
)

// Store is the interface for board storage backends.
type Store interface {
	// Load returns the named board, ErrNotFound, or an error wrapping ErrMalformed.
	Load(ctx context.Context, name string) (board.Board, error)

	// Save replaces the named board.
	Save(ctx context.Context, name string, b board.Board) error

	// Delete removes the named board. Deleting a missing board is not an error.
	Delete(ctx context.Context, name string) error

	// List returns stored board names in sorted order.
	List(ctx context.Context) ([]string, error)

	// Close releases backend resources.
	Close() error
}

// ValidateName rejects board names that cannot be used as file names or keys.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("board name cannot be empty")
	}
	if strings.Contains(name, "/") || strings.Contains(name, "\\") {
		return fmt.Errorf("board name cannot contain path separators")
	}
	if name == "." || name == ".." || strings.HasPrefix(name, "..") {
		return fmt.Errorf("invalid board name")
	}
	if strings.Contains(name, "\x00") {
		return fmt.Errorf("board name cannot contain null bytes")
	}
	return nil
}

// LoadOrDefault loads the named board. A missing or malformed board, or one
// that is not valid for cols columns, is replaced wholesale by
// fallback(); it is never partially repaired. The returned flag reports
// whether the stored board was used. Backend failures are returned as errors.
func LoadOrDefault(ctx context.Context, s Store, name string, cols int, fallback func() []board.Widget) (board.Board, bool, error) {
	b, err := s.Load(ctx, name)
	switch {
	case err == nil:
		if grid.Validate(b.Widgets, cols) == nil {
			b.Grid.Cols = cols
			return b, true, nil
		}
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrMalformed):
	default:
		return board.Board{}, false, err
	}

	var widgets []board.Widget
	if fallback != nil {
		widgets = fallback()
	}
	return board.Board{
		Widgets: widgets,
		Grid:    grid.Size{Cols: cols, Rows: grid.RequiredRows(widgets, 1)},
	}, false, nil
}

// Encode serializes a board to indented JSON.
func Encode(b board.Board) ([]byte, error) {
	if b.Widgets == nil {
		b.Widgets = []board.Widget{}
	}
	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling board: %w", err)
	}
	return append(data, '\n'), nil
}

// Decode parses a board, wrapping any failure in ErrMalformed.
func Decode(data []byte) (board.Board, error) {
	var b board.Board
	if err := json.Unmarshal(data, &b); err != nil {
		return board.Board{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return b, nil
}

func cloneBoard(b board.Board) board.Board {
	out := board.Board{Grid: b.Grid, Widgets: grid.Clone(b.Widgets)}
	for i := range out.Widgets {
		out.Widgets[i].Props = board.CloneProps(out.Widgets[i].Props)
	}
	return out
}
