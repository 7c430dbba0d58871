// Package server exposes a board controller over a JSON HTTP API.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/wcatz/gridboard/internal/board"
	"github.com/wcatz/gridboard/internal/config"
	"github.com/wcatz/gridboard/internal/grid"
	"github.com/wcatz/gridboard/internal/layout"
	"github.com/wcatz/gridboard/internal/registry"
)

var errNoConfigFile = errors.New("server has no config file")

// Options configures New.
type Options struct {
	// ConfigPath is read when Config is nil and on every reload.
	ConfigPath string
	Config     *config.Config

	// Initial is the board to start from. An invalid board is replaced by
	// the configured default layout.
	Initial []board.Widget

	Persist layout.PersistFunc[board.Props]
	IDs     grid.IDGenerator
	Logger  *log.Logger
	Now     func() time.Time
}

// Server holds the controller and serializes every request against it.
type Server struct {
	cfgPath string
	persist layout.PersistFunc[board.Props]
	ids     grid.IDGenerator
	now     func() time.Time
	logger  *log.Logger
	router  chi.Router

	mu   sync.Mutex
	cfg  *config.Config
	reg  *registry.Static[board.Props]
	ctrl *layout.Controller[board.Props]
}

// New creates a server around a fresh controller.
func New(opts Options) (*Server, error) {
	cfg := opts.Config
	if cfg == nil {
		var err error
		cfg, err = config.Load(opts.ConfigPath, nil)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
	}
	if opts.IDs == nil {
		opts.IDs = grid.UUIDGenerator{}
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	s := &Server{
		cfgPath: opts.ConfigPath,
		persist: opts.Persist,
		ids:     opts.IDs,
		now:     opts.Now,
		logger:  opts.Logger,
	}
	s.install(cfg, opts.Initial)
	s.registerRoutes()
	return s, nil
}

// install swaps in cfg and rebuilds the controller around widgets.
// Callers hold s.mu or have exclusive access.
func (s *Server) install(cfg *config.Config, widgets []board.Widget) {
	reg := cfg.Registry()
	opts := cfg.ControllerOptions()
	opts.Registry = reg
	opts.Persist = s.persist
	opts.IDs = s.ids
	opts.Now = s.now
	opts.Fallback = cfg.DefaultBoard(s.ids)

	s.cfg = cfg
	s.reg = reg
	s.ctrl = layout.New(widgets, opts)
}

// ReloadConfig re-reads the config file. The current board is kept when it
// still fits the new grid; any open edit session or drag is dropped.
func (s *Server) ReloadConfig() error {
	if s.cfgPath == "" {
		return errNoConfigFile
	}
	cfg, err := config.Load(s.cfgPath, nil)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.install(cfg, s.ctrl.Widgets())
	return nil
}

// Config returns the current config.
func (s *Server) Config() *config.Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg
}

// ConfigPath returns the absolute path to the config file.
func (s *Server) ConfigPath() string {
	abs, err := filepath.Abs(s.cfgPath)
	if err != nil {
		return s.cfgPath
	}
	return abs
}

// Board returns the committed board.
func (s *Server) Board() board.Board {
	s.mu.Lock()
	defer s.mu.Unlock()
	return board.Board{Widgets: s.ctrl.Widgets(), Grid: s.ctrl.CommittedSize()}
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("gridboard API listening", "addr", addr, "config", s.ConfigPath())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info("shutting down")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return nil
	}
}
