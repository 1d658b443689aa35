package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"gmr/canvas"
)

var (
	statusStyle = lipgloss.NewStyle().Reverse(true)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff5f5f")).Bold(true)
)

var helpLines = []string{
	"Preview Help",
	"============",
	"",
	"  h/←  l/→       Pan left and right (Shift for 2x)",
	"  j/↓  k/↑       Scroll down and up",
	"  PgDn/PgUp      Scroll a page",
	"  0              Back to the left edge",
	"  p / s / t      Export PNG / SVG / TXT",
	"  ?              Toggle this help",
	"  q / Esc        Quit",
}

func newPreviewModel(title string, cells [][]canvas.Cell, save saveFunc) model {
	return model{title: title, cells: cells, save: save}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		viewHeight := m.height - 1 // Leave room for status line
		if viewHeight < 1 {
			viewHeight = 1
		}
		if !m.ready {
			m.viewport = viewport.New(m.width, viewHeight)
			m.ready = true
		} else {
			m.viewport.Width = m.width
			m.viewport.Height = viewHeight
		}
		m.ensurePanInBounds()
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		key := msg.String()
		if m.help {
			switch key {
			case "esc", "q", "?":
				m.help = false
			}
			return m, nil
		}
		m.errorMessage, m.successMessage = "", ""
		switch key {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "?":
			m.help = true
			return m, nil
		case "h", "left", "H", "shift+left", "l", "right", "L", "shift+right", "0", "home":
			m.handleNavigation(key)
			return m, nil
		case "p", "s", "t":
			m.export(key)
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *model) export(key string) {
	if m.save == nil {
		return
	}
	format := FormatPNG
	switch key {
	case "s":
		format = FormatSVG
	case "t":
		format = FormatTXT
	}
	path, err := m.save(format)
	if err != nil {
		m.errorMessage = err.Error()
		return
	}
	m.successMessage = "Saved " + path
}

// refresh re-renders the visible columns into the viewport.
func (m *model) refresh() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(strings.Join(renderCells(m.cells, m.panX, m.width), "\n"))
}

func (m model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.help {
		return strings.Join(helpLines, "\n")
	}

	status := fmt.Sprintf("%s | Pan: %d | %3.f%%", m.title, m.panX, m.viewport.ScrollPercent()*100)
	switch {
	case m.errorMessage != "":
		status += " | " + errorStyle.Render("ERROR: "+m.errorMessage)
	case m.successMessage != "":
		status += " | " + m.successMessage
	default:
		status += " | ?=help, q=quit"
	}
	return m.viewport.View() + "\n" + statusStyle.Render(status)
}

// renderCells styles width columns of every row starting at panX, one
// lipgloss style per run of cells sharing fill and ink.
func renderCells(cells [][]canvas.Cell, panX, width int) []string {
	lines := make([]string, len(cells))
	for i, row := range cells {
		if panX >= len(row) {
			continue
		}
		end := len(row)
		if width > 0 && panX+width < end {
			end = panX + width
		}
		var sb strings.Builder
		var run strings.Builder
		var cur canvas.Cell
		flush := func() {
			if run.Len() > 0 {
				sb.WriteString(cellStyle(cur).Render(run.String()))
				run.Reset()
			}
		}
		for j, c := range row[panX:end] {
			if j > 0 && (c.Fill != cur.Fill || c.Ink != cur.Ink) {
				flush()
			}
			cur = c
			run.WriteRune(c.Rune)
		}
		flush()
		lines[i] = sb.String()
	}
	return lines
}

func cellStyle(c canvas.Cell) lipgloss.Style {
	style := lipgloss.NewStyle()
	if c.Fill != "" {
		style = style.Background(lipgloss.Color(c.Fill))
	}
	if c.Ink != "" {
		style = style.Foreground(lipgloss.Color(c.Ink))
	}
	return style
}
