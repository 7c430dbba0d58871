// Package tui draws boards in the terminal and hosts the interactive editor.
package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/wcatz/gridboard/internal/board"
	"github.com/wcatz/gridboard/internal/grid"
)

// Terminal characters per grid cell.
const (
	CellWidth  = 10
	CellHeight = 2
)

// Frame is one picture of a board.
type Frame struct {
	Widgets  []board.Widget
	Size     grid.Size
	Selected string
	Dragging string
}

// Render draws the frame as CellHeight lines per row. Widgets are filled
// blocks labelled with their type and id; free cells show a dot.
func Render(f Frame) string {
	occ := occupancy(f.Widgets, f.Size)
	lines := make([]string, 0, f.Size.Rows*CellHeight)

	for y := 1; y <= f.Size.Rows; y++ {
		for k := 0; k < CellHeight; k++ {
			var line strings.Builder
			for x := 1; x <= f.Size.Cols; {
				i := occ[y-1][x-1]
				if i < 0 {
					line.WriteString(styleEmpty.Render(emptyCell(k)))
					x++
					continue
				}
				// Draw the widget's run of columns on this line in one piece.
				w := f.Widgets[i]
				start := x
				for x <= f.Size.Cols && occ[y-1][x-1] == i {
					x++
				}
				text := blockLine(w, (y-w.Layout.Y)*CellHeight+k)
				seg := sliceCols(text, (start-w.Layout.X)*CellWidth, (x-start)*CellWidth)
				line.WriteString(styleFor(f, w).Render(seg))
			}
			lines = append(lines, line.String())
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func styleFor(f Frame, w board.Widget) lipgloss.Style {
	if w.ID == f.Dragging {
		return styleDragged
	}
	return widgetStyle(w.Type, w.ID == f.Selected)
}

// occupancy maps every cell to the index of the widget covering it, or -1.
func occupancy(widgets []board.Widget, size grid.Size) [][]int {
	occ := make([][]int, size.Rows)
	for y := range occ {
		occ[y] = make([]int, size.Cols)
		for x := range occ[y] {
			occ[y][x] = -1
		}
	}
	for i, w := range widgets {
		for y := max(w.Layout.Y, 1); y < w.Layout.Bottom() && y <= size.Rows; y++ {
			for x := max(w.Layout.X, 1); x < w.Layout.Right() && x <= size.Cols; x++ {
				occ[y-1][x-1] = i
			}
		}
	}
	return occ
}

// blockLine is the full-width text of line n of a widget block. The first
// line is the widget's title prop, falling back to its type.
func blockLine(w board.Widget, n int) string {
	width := w.Layout.W * CellWidth
	var s string
	switch n {
	case 0:
		s = " " + board.String(w.Props, "title", w.Type)
	case 1:
		s = " " + w.ID
	}
	return padRight(truncate(s, width), width)
}

func emptyCell(line int) string {
	if line == 0 {
		return "·" + strings.Repeat(" ", CellWidth-1)
	}
	return strings.Repeat(" ", CellWidth)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}

func padRight(s string, n int) string {
	if l := len([]rune(s)); l < n {
		return s + strings.Repeat(" ", n-l)
	}
	return s
}

func sliceCols(s string, from, n int) string {
	r := []rune(s)
	from = min(max(from, 0), len(r))
	end := min(from+n, len(r))
	return string(r[from:end])
}
