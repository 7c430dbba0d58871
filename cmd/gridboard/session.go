package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/wcatz/gridboard/internal/board"
	"github.com/wcatz/gridboard/internal/config"
	"github.com/wcatz/gridboard/internal/grid"
	"github.com/wcatz/gridboard/internal/layout"
	"github.com/wcatz/gridboard/internal/store"
)

// session is a board opened from the store for one command. Changes are
// written back through the saver; close flushes them.
type session struct {
	cfg    *config.Config
	store  store.Store
	saver  *store.Saver
	ctrl   *layout.Controller[board.Props]
	stored bool
}

func loadConfig() (*config.Config, error) {
	overrides := make(map[string]string)
	if boardName != "" {
		overrides["board"] = boardName
	}
	if storeKind != "" {
		overrides["store"] = storeKind
	}
	if storeDir != "" {
		overrides["dir"] = storeDir
	}
	if serveAddr != "" {
		overrides["addr"] = serveAddr
	}
	return config.Load(cfgFile, overrides)
}

// loadBoard reads the configured board, falling back to the default layout.
func loadBoard(ctx context.Context, cfg *config.Config, st store.Store, ids grid.IDGenerator) (board.Board, bool, error) {
	b, stored, err := store.LoadOrDefault(ctx, st, cfg.Board.Name, cfg.Board.Cols, func() []board.Widget {
		return cfg.DefaultBoard(ids)
	})
	if err != nil {
		return board.Board{}, false, fmt.Errorf("loading board '%s': %w", cfg.Board.Name, err)
	}
	if !stored {
		loggerFromContext(ctx).Debug("no usable stored board, using default layout", "board", cfg.Board.Name)
	}
	return b, stored, nil
}

func openSession(ctx context.Context) (*session, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	st, err := store.Open(ctx, cfg.Store)
	if err != nil {
		return nil, err
	}

	ids := grid.UUIDGenerator{}
	b, stored, err := loadBoard(ctx, cfg, st, ids)
	if err != nil {
		st.Close()
		return nil, err
	}

	saver := store.NewSaver(st, cfg.Board.Name, loggerFromContext(ctx))
	opts := cfg.ControllerOptions()
	opts.IDs = ids
	opts.Persist = saver.Hook()

	return &session{
		cfg:    cfg,
		store:  st,
		saver:  saver,
		ctrl:   layout.New(b.Widgets, opts),
		stored: stored,
	}, nil
}

func (s *session) close() error {
	s.saver.Close()
	return s.store.Close()
}

// parseInts converts positional arguments, naming the offending one on error.
func parseInts(args []string, names ...string) ([]int, error) {
	out := make([]int, len(args))
	for i, a := range args {
		n, err := strconv.Atoi(a)
		if err != nil {
			name := fmt.Sprintf("argument %d", i+1)
			if i < len(names) {
				name = names[i]
			}
			return nil, fmt.Errorf("%s must be an integer, got '%s'", name, a)
		}
		out[i] = n
	}
	return out, nil
}
