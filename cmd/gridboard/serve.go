package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/wcatz/gridboard/internal/grid"
	"github.com/wcatz/gridboard/internal/server"
	"github.com/wcatz/gridboard/internal/store"
)

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	logger := loggerFromContext(ctx)

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	st, err := store.Open(ctx, cfg.Store)
	if err != nil {
		return err
	}
	defer st.Close()

	ids := grid.UUIDGenerator{}
	b, stored, err := loadBoard(ctx, cfg, st, ids)
	if err != nil {
		return err
	}
	saver := store.NewSaver(st, cfg.Board.Name, logger)
	defer saver.Close()

	srv, err := server.New(server.Options{
		ConfigPath: cfgFile,
		Config:     cfg,
		Initial:    b.Widgets,
		Persist:    saver.Hook(),
		IDs:        ids,
		Logger:     logger,
	})
	if err != nil {
		return err
	}
	logger.Info("board loaded",
		"board", cfg.Board.Name,
		"widgets", len(b.Widgets),
		"stored", stored,
		"store", cfg.Store.Backend)

	return srv.ListenAndServe(ctx, cfg.Server.Addr)
}
