// Package tui provides the terminal simulator for the gadget using the
// Bubbletea framework.
package tui

import (
	"fmt"
	"image/color"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/term"
	"github.com/xvierd/focusdial/internal/adapters/sim"
	"github.com/xvierd/focusdial/internal/domain"
	"github.com/xvierd/focusdial/internal/services"
)

const (
	colorTitle = lipgloss.Color("#6B7280")
	colorHelp  = lipgloss.Color("#95A5A6")
	colorFocus = lipgloss.Color("#7C6FE0")
	colorPause = lipgloss.Color("#FFA500")

	barGradientStart = "#FEF5C1"
	barGradientEnd   = "#FFCC4A"
)

// Input is the side of the board the keyboard drives.
type Input interface {
	Rotate(delta int)
	Press()
}

// boardMsg carries a board snapshot into the update loop.
type boardMsg sim.Snapshot

// statusMsg carries a controller status into the update loop.
type statusMsg services.Status

// doneMsg reports that the controller loop ended.
type doneMsg struct {
	err error
}

// Model renders the simulated board and turns keys into encoder input.
type Model struct {
	input    Input
	board    sim.Snapshot
	status   services.Status
	strip    progress.Model
	actuator progress.Model
	width    int
	height   int
	err      error
}

// getTerminalWidth returns the current terminal width, defaulting to 80.
func getTerminalWidth() int {
	w, _, err := term.GetSize(os.Stdout.Fd())
	if err != nil || w < 40 {
		return 80
	}
	return w
}

// NewModel creates a model showing the given board state.
func NewModel(input Input, board sim.Snapshot) Model {
	m := Model{
		input:    input,
		board:    board,
		strip:    progress.New(progress.WithGradient(barGradientStart, barGradientEnd)),
		actuator: progress.New(progress.WithDefaultGradient()),
	}
	m.resizeBars(getTerminalWidth())
	return m
}

func (m *Model) resizeBars(width int) {
	w := width - 20
	if w < 10 {
		w = 10
	}
	if w > 60 {
		w = 60
	}
	m.strip.Width = w
	m.actuator.Width = w
}

// Init initializes the TUI.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "left", "h":
			m.input.Rotate(-1)
		case "right", "l":
			m.input.Rotate(1)
		case "[":
			m.input.Rotate(-10)
		case "]":
			m.input.Rotate(10)
		case " ", "enter":
			m.input.Press()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeBars(msg.Width)

	case boardMsg:
		m.board = sim.Snapshot(msg)

	case statusMsg:
		m.status = services.Status(msg)

	case doneMsg:
		m.err = msg.err
		return m, tea.Quit
	}

	return m, nil
}

// View renders the TUI.
func (m Model) View() string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(colorTitle).MarginBottom(1)
	labelStyle := lipgloss.NewStyle().Foreground(colorHelp).Width(10)
	helpStyle := lipgloss.NewStyle().Foreground(colorHelp).MarginTop(1)

	sections := []string{
		titleStyle.Render("focusdial"),
		m.viewMode(),
		m.viewRing(),
		m.viewLamps(labelStyle),
		labelStyle.Render("strip") + m.strip.ViewAs(float64(m.board.Strip)/100),
		labelStyle.Render("actuator") + m.actuator.ViewAs(float64(m.board.Actuator)/100),
	}

	if m.status.Active {
		sections = append(sections, "", m.viewSession())
	}
	if m.board.Tone != nil {
		sections = append(sections, labelStyle.Render("tone")+fmt.Sprintf("%.0f Hz for %s", m.board.Tone.Freq, m.board.Tone.Duration))
	}
	if m.err != nil {
		sections = append(sections, lipgloss.NewStyle().Foreground(lipgloss.Color("#FF0000")).Render("Error: "+m.err.Error()))
	}

	sections = append(sections, helpStyle.Render("←/→ rotate  [/] rotate ×10  space press  q quit"))

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)
	if m.width == 0 || m.height == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m Model) viewMode() string {
	style := lipgloss.NewStyle().Bold(true).Foreground(colorFocus)
	return style.Render(m.status.Mode.String()) + fmt.Sprintf("  position %d", m.status.Mapped)
}

func (m Model) viewRing() string {
	cells := make([]string, len(m.board.Ring))
	for i, c := range m.board.Ring {
		cells[i] = swatch(c).Render("●")
	}
	return strings.Join(cells, " ")
}

func (m Model) viewLamps(labelStyle lipgloss.Style) string {
	parts := make([]string, 0, len(domain.Zones))
	for _, z := range domain.Zones {
		parts = append(parts, swatch(m.board.Lamp(z)).Render("■")+" "+z.String())
	}
	return labelStyle.Render("lamps") + strings.Join(parts, "   ")
}

func (m Model) viewSession() string {
	clr := colorFocus
	if m.status.Paused {
		clr = colorPause
	}
	big := renderBigTime(formatDuration(m.status.Remaining), clr, m.width)
	if !m.status.Paused {
		return big
	}
	badge := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(colorPause).
		Padding(0, 1).
		Render("PAUSED")
	return lipgloss.JoinVertical(lipgloss.Left, big, badge)
}

// swatch returns a style painting text in c. Dark pixels render dim grey so
// the ring stays visible.
func swatch(c color.RGBA) lipgloss.Style {
	if c.R == 0 && c.G == 0 && c.B == 0 {
		return lipgloss.NewStyle().Foreground(lipgloss.Color("#303030"))
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hexColor(c)))
}

func hexColor(c color.RGBA) string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// formatDuration formats a duration as MM:SS.
func formatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	minutes := int(d.Minutes())
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}
