package tui

import (
	"hash/fnv"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorCyan   = lipgloss.Color("36")
	colorGreen  = lipgloss.Color("35")
	colorYellow = lipgloss.Color("220")
	colorRed    = lipgloss.Color("167")
	colorGray   = lipgloss.Color("245")
	colorDim    = lipgloss.Color("240")
	colorInk    = lipgloss.Color("235")
)

// widgetColors are the block backgrounds. A type always gets the same color.
var widgetColors = []lipgloss.Color{
	lipgloss.Color("67"),
	lipgloss.Color("72"),
	lipgloss.Color("139"),
	lipgloss.Color("173"),
	lipgloss.Color("109"),
	lipgloss.Color("143"),
}

var (
	// StyleTitle for headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim for secondary text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleSuccess for confirmations.
	StyleSuccess = lipgloss.NewStyle().Foreground(colorGreen)

	// StyleWarning for rejected actions.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)

	// StyleError for failures.
	StyleError = lipgloss.NewStyle().Foreground(colorRed)

	styleEmpty    = lipgloss.NewStyle().Foreground(colorDim)
	styleMode     = lipgloss.NewStyle().Bold(true).Foreground(colorInk).Background(colorGray).Padding(0, 1)
	styleEditMode = styleMode.Background(colorYellow)
	styleDragged  = lipgloss.NewStyle().Foreground(colorInk).Background(colorYellow).Bold(true)
)

func widgetStyle(typ string, selected bool) lipgloss.Style {
	h := fnv.New32a()
	h.Write([]byte(typ))
	st := lipgloss.NewStyle().
		Foreground(colorInk).
		Background(widgetColors[h.Sum32()%uint32(len(widgetColors))])
	if selected {
		st = st.Bold(true).Underline(true)
	}
	return st
}
