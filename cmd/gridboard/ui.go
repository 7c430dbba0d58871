package main

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/wcatz/gridboard/internal/board"
	"github.com/wcatz/gridboard/internal/config"
	"github.com/wcatz/gridboard/internal/grid"
	"github.com/wcatz/gridboard/internal/tui"
)

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(lipgloss.Color("35"))
	styleIconWarning = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	styleIconInfo    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	styleKey         = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(10)
)

const (
	iconSuccess = "✓"
	iconWarning = "!"
	iconInfo    = "›"
)

func printSuccess(format string, args ...any) {
	fmt.Println(styleIconSuccess.Render(iconSuccess) + " " + fmt.Sprintf(format, args...))
}

func printWarning(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconWarning.Render(iconWarning) + " " + tui.StyleWarning.Render(msg))
}

func printInfo(format string, args ...any) {
	fmt.Println(styleIconInfo.Render(iconInfo) + " " + fmt.Sprintf(format, args...))
}

func printDetail(format string, args ...any) {
	fmt.Println("  " + tui.StyleDim.Render(fmt.Sprintf(format, args...)))
}

func printKeyValue(key, value string) {
	fmt.Println(styleKey.Render(key) + " " + value)
}

func widgetTable(widgets []board.Widget) string {
	rows := make([][]string, 0, len(widgets))
	for _, w := range grid.SortByPosition(widgets) {
		rows = append(rows, []string{
			w.ID, w.Type,
			strconv.Itoa(w.Layout.X), strconv.Itoa(w.Layout.Y),
			strconv.Itoa(w.Layout.W), strconv.Itoa(w.Layout.H),
		})
	}
	return newTable().Headers("ID", "TYPE", "X", "Y", "W", "H").Rows(rows...).Render()
}

func typesTable(cfg *config.Config, order []string) string {
	rows := make([][]string, 0, len(order))
	for _, name := range order {
		def := cfg.Widgets[name]
		keys := make([]string, 0, len(def.Props))
		for k := range def.Props {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		rows = append(rows, []string{name, strconv.Itoa(def.W), strconv.Itoa(def.H), strings.Join(keys, ", ")})
	}
	return newTable().Headers("TYPE", "W", "H", "PROPS").Rows(rows...).Render()
}

func newTable() *table.Table {
	headerStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			return cellStyle
		})
}
