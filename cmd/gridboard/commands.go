package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wcatz/gridboard/internal/board"
	"github.com/wcatz/gridboard/internal/grid"
	"github.com/wcatz/gridboard/internal/tui"
)

func runShow(cmd *cobra.Command, args []string) error {
	sess, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer sess.close()

	widgets := sess.ctrl.Widgets()
	size := sess.ctrl.Size()
	if narrow {
		widgets = sess.ctrl.Narrow()
		size = grid.Size{Cols: grid.NarrowCols, Rows: grid.RequiredRows(widgets, sess.cfg.Board.MinRows)}
	}

	source := "stored"
	if !sess.stored {
		source = "default layout"
	}
	printKeyValue("board", sess.cfg.Board.Name)
	printKeyValue("grid", fmt.Sprintf("%d cols × %d rows", size.Cols, size.Rows))
	printKeyValue("source", source)
	fmt.Println()
	fmt.Println(tui.Render(tui.Frame{Widgets: widgets, Size: size}))
	if len(widgets) > 0 {
		fmt.Println()
		fmt.Println(widgetTable(widgets))
	}
	return nil
}

func runArrange(cmd *cobra.Command, args []string) error {
	sess, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer sess.close()

	before := sess.ctrl.CommittedSize().Rows
	sess.ctrl.Arrange()
	printSuccess("arranged %d widgets", len(sess.ctrl.Widgets()))
	printDetail("rows %d → %d", before, sess.ctrl.CommittedSize().Rows)
	return nil
}

func runAdd(cmd *cobra.Command, args []string) error {
	sess, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer sess.close()

	typ := args[0]
	id, ok := sess.ctrl.Add(typ)
	if !ok {
		if hint := sess.cfg.Registry().Suggest(typ); hint != "" {
			return fmt.Errorf("unknown widget type '%s' (did you mean '%s'?)", typ, hint)
		}
		return fmt.Errorf("unknown widget type '%s'", typ)
	}
	w, _ := sess.ctrl.Widget(id)
	printSuccess("added %s %s", typ, id)
	printDetail("at x=%d y=%d, %d×%d", w.Layout.X, w.Layout.Y, w.Layout.W, w.Layout.H)
	return nil
}

func runRemove(cmd *cobra.Command, args []string) error {
	sess, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer sess.close()

	if !sess.ctrl.Remove(args[0]) {
		return fmt.Errorf("widget '%s' not found", args[0])
	}
	printSuccess("removed %s", args[0])
	return nil
}

func runMove(cmd *cobra.Command, args []string) error {
	pos, err := parseInts(args[1:], "x", "y")
	if err != nil {
		return err
	}
	sess, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer sess.close()

	id := args[0]
	before := sess.ctrl.Widgets()
	if !sess.ctrl.Move(id, pos[0], pos[1]) {
		return fmt.Errorf("widget '%s' not found", id)
	}
	w, _ := sess.ctrl.Widget(id)
	printSuccess("moved %s to x=%d y=%d", id, w.Layout.X, w.Layout.Y)
	printPushed(before, sess.ctrl.Widgets(), id)
	return nil
}

func runResize(cmd *cobra.Command, args []string) error {
	size, err := parseInts(args[1:], "w", "h")
	if err != nil {
		return err
	}
	sess, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer sess.close()

	id := args[0]
	if !sess.ctrl.Resize(id, size[0], size[1]) {
		return fmt.Errorf("widget '%s' not found", id)
	}
	w, _ := sess.ctrl.Widget(id)
	printSuccess("resized %s to %d×%d", id, w.Layout.W, w.Layout.H)
	return nil
}

// printPushed lists widgets other than id whose position changed.
func printPushed(before, after []board.Widget, id string) {
	for _, w := range after {
		if w.ID == id {
			continue
		}
		if i := grid.Index(before, w.ID); i >= 0 && before[i].Layout != w.Layout {
			printDetail("%s pushed to y=%d", w.ID, w.Layout.Y)
		}
	}
}
