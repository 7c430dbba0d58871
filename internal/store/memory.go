package store

import (
	"context"
	"sort"
	"sync"

	"github.com/wcatz/gridboard/internal/board"
)

// MemoryStore keeps boards in process memory.
type MemoryStore struct {
	mu     sync.RWMutex
	boards map[string]board.Board
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{boards: make(map[string]board.Board)}
}

func (s *MemoryStore) Load(ctx context.Context, name string) (board.Board, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.boards[name]
	if !ok {
		return board.Board{}, ErrNotFound
	}
	return cloneBoard(b), nil
}

func (s *MemoryStore) Save(ctx context.Context, name string, b board.Board) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.boards[name] = cloneBoard(b)
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.boards, name)
	return nil
}

func (s *MemoryStore) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.boards))
	for name := range s.boards {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (s *MemoryStore) Close() error { return nil }
