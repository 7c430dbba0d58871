package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/wcatz/gridboard/internal/tui"
)

func runEdit(cmd *cobra.Command, args []string) error {
	sess, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer sess.close()

	model := tui.NewModel(sess.ctrl, sess.cfg.Board.Name, 2*sess.cfg.Throttle.Pointer)
	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("running editor: %w", err)
	}

	// Quitting with an open session discards it.
	if sess.ctrl.Editing() {
		sess.ctrl.CancelEdit()
		printWarning("unsaved edit session discarded")
	}
	printSuccess("board %s: %d widgets", sess.cfg.Board.Name, len(sess.ctrl.Widgets()))
	return nil
}
