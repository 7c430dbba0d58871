package store

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/wcatz/gridboard/internal/board"
	"github.com/wcatz/gridboard/internal/grid"
	"github.com/wcatz/gridboard/internal/layout"
)

// DefaultSaveTimeout bounds a single background save.
const DefaultSaveTimeout = 10 * time.Second

// Saver writes boards to a Store from a single background goroutine.
//
// Only the newest enqueued board is kept: a snapshot that has not been
// written yet is replaced by the next one. Failed saves are logged and
// dropped.
type Saver struct {
	store   Store
	name    string
	logger  *log.Logger
	timeout time.Duration

	mu      sync.Mutex
	pending *board.Board
	closed  bool

	wake chan struct{}
	quit chan struct{}
	done chan struct{}
}

// NewSaver starts a saver for the named board. A nil logger discards output.
func NewSaver(s Store, name string, logger *log.Logger) *Saver {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	sv := &Saver{
		store:   s,
		name:    name,
		logger:  logger,
		timeout: DefaultSaveTimeout,
		wake:    make(chan struct{}, 1),
		quit:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	go sv.run()
	return sv
}

// Enqueue schedules b to be written. It never blocks on the store.
func (s *Saver) Enqueue(b board.Board) {
	b = cloneBoard(b)
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		s.logger.Warn("board save after close dropped", "board", s.name)
		return
	}
	s.pending = &b
	s.mu.Unlock()

	select {
	case s.wake <- struct{}{}:
	default:
	}
}

// Hook adapts the saver to a controller persistence hook.
func (s *Saver) Hook() layout.PersistFunc[board.Props] {
	return func(widgets []grid.Widget[board.Props], size grid.Size) {
		s.Enqueue(board.Board{Widgets: widgets, Grid: size})
	}
}

// Close writes any pending board and stops the worker. It is safe to call
// more than once.
func (s *Saver) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		<-s.done
		return
	}
	s.closed = true
	s.mu.Unlock()

	close(s.quit)
	<-s.done
}

func (s *Saver) run() {
	defer close(s.done)
	for {
		select {
		case <-s.wake:
			s.flush()
		case <-s.quit:
			s.flush()
			return
		}
	}
}

func (s *Saver) flush() {
	s.mu.Lock()
	b := s.pending
	s.pending = nil
	s.mu.Unlock()
	if b == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	start := time.Now()
	if err := s.store.Save(ctx, s.name, *b); err != nil {
		s.logger.Error("saving board", "board", s.name, "err", err)
		return
	}
	s.logger.Debug("saved board", "board", s.name, "widgets", len(b.Widgets),
		"took", time.Since(start).Round(time.Millisecond))
}
