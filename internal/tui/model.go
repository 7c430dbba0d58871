package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/wcatz/gridboard/internal/board"
	"github.com/wcatz/gridboard/internal/grid"
	"github.com/wcatz/gridboard/internal/layout"
)

const helpText = "tab select · e edit · space drag · ←↑↓→ move · enter drop · esc end/cancel · s save · a arrange · q quit"

// hoverRetryMsg re-sends the last hover after the throttle window has passed.
type hoverRetryMsg struct{}

// Model is the bubbletea model for the board editor. Every change goes
// through the controller; the model only tracks selection and the drag
// cursor.
type Model struct {
	ctrl     *layout.Controller[board.Props]
	title    string
	selected string
	cursorX  int
	cursorY  int
	retry    time.Duration
	status   string
	warn     bool
}

// NewModel creates an editor for ctrl. retry is how long to wait before
// re-sending a throttled hover; it should exceed the pointer interval.
func NewModel(ctrl *layout.Controller[board.Props], title string, retry time.Duration) Model {
	m := Model{ctrl: ctrl, title: title, retry: retry}
	if m.retry <= 0 {
		m.retry = 2 * layout.DefaultPointerInterval
	}
	m.cycle(1)
	return m
}

// Selected returns the id of the selected widget.
func (m Model) Selected() string {
	return m.selected
}

// Status returns the last status message.
func (m Model) Status() string {
	return m.status
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case hoverRetryMsg:
		if id, ok := m.ctrl.Dragging(); ok {
			m.ctrl.Hover(id, m.cursorX, m.cursorY)
		}
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "tab":
		if _, dragging := m.ctrl.Dragging(); !dragging {
			m.cycle(1)
		}
	case "shift+tab":
		if _, dragging := m.ctrl.Dragging(); !dragging {
			m.cycle(-1)
		}
	case "e":
		if m.ctrl.EnterEdit() {
			m.setStatus("editing", false)
		} else {
			m.setStatus("already editing", true)
		}
	case " ", "space":
		m.startDrag()
	case "up":
		return m.moveCursor(0, -1)
	case "down":
		return m.moveCursor(0, 1)
	case "left":
		return m.moveCursor(-1, 0)
	case "right":
		return m.moveCursor(1, 0)
	case "enter":
		if id, ok := m.ctrl.Dragging(); ok {
			m.ctrl.Drop(id, m.cursorX, m.cursorY)
			m.setStatus(fmt.Sprintf("dropped %s at %d,%d", id, m.cursorX, m.cursorY), false)
		}
	case "esc":
		if _, ok := m.ctrl.Dragging(); ok {
			m.ctrl.DragEnd()
			m.setStatus("drag abandoned", false)
		} else if m.ctrl.CancelEdit() {
			m.setStatus("edit cancelled", false)
		}
	case "s":
		if m.ctrl.SaveEdit() {
			m.setStatus("saved", false)
		} else {
			m.setStatus("not editing", true)
		}
	case "a":
		m.ctrl.Arrange()
		m.setStatus("arranged", false)
	}
	return m, nil
}

func (m *Model) setStatus(s string, warn bool) {
	m.status = s
	m.warn = warn
}

// cycle moves the selection through the widgets in reading order.
func (m *Model) cycle(delta int) {
	widgets := grid.SortByPosition(m.ctrl.Widgets())
	if len(widgets) == 0 {
		m.selected = ""
		return
	}
	i := grid.Index(widgets, m.selected)
	switch {
	case i < 0 && delta > 0:
		i = 0
	case i < 0:
		i = len(widgets) - 1
	default:
		i = (i + delta + len(widgets)) % len(widgets)
	}
	m.selected = widgets[i].ID
}

func (m *Model) startDrag() {
	w, ok := m.ctrl.Widget(m.selected)
	if !ok {
		m.setStatus("nothing selected", true)
		return
	}
	if !m.ctrl.DragStart(w.ID, layout.Pointer) {
		m.setStatus("press e to edit before dragging", true)
		return
	}
	m.cursorX, m.cursorY = w.Layout.X, w.Layout.Y
	m.setStatus("dragging "+w.ID, false)
}

func (m Model) moveCursor(dx, dy int) (tea.Model, tea.Cmd) {
	id, ok := m.ctrl.Dragging()
	if !ok {
		return m, nil
	}
	w, _ := m.ctrl.Widget(id)
	cols := m.ctrl.Size().Cols
	m.cursorX = min(max(m.cursorX+dx, 1), max(cols-w.Layout.W+1, 1))
	m.cursorY = max(m.cursorY+dy, 1)

	if !m.ctrl.Hover(id, m.cursorX, m.cursorY) {
		return m, tea.Tick(m.retry, func(time.Time) tea.Msg { return hoverRetryMsg{} })
	}
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder

	mode := styleMode.Render("VIEW")
	if m.ctrl.Editing() {
		mode = styleEditMode.Render("EDIT")
	}
	b.WriteString(StyleTitle.Render(m.title) + "  " + mode)
	b.WriteString("\n\n")

	frame := Frame{
		Widgets:  m.ctrl.Widgets(),
		Size:     m.ctrl.Size(),
		Selected: m.selected,
	}
	if id, ok := m.ctrl.Dragging(); ok {
		frame.Dragging = id
		if preview := m.ctrl.Preview(); preview != nil {
			frame.Widgets = preview
		}
	}
	b.WriteString(Render(frame))
	b.WriteString("\n\n")

	if m.status != "" {
		if m.warn {
			b.WriteString(StyleWarning.Render(m.status))
		} else {
			b.WriteString(StyleSuccess.Render(m.status))
		}
		b.WriteString("\n")
	}
	b.WriteString(StyleDim.Render(helpText))
	return b.String()
}
