// Package tui is the terminal frontend: a bubbletea screen bound to the search widget.
package tui

import (
	"strings"

	"flipradar/widget"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rohanthewiz/logger"
)

// Focus identifies the control that receives keys
type Focus int

const (
	FocusGame Focus = iota
	FocusQuery
	FocusButton
	focusCount
)

// Model is the search screen
type Model struct {
	keys  KeyMap
	focus Focus

	games   []string
	gameIdx int
	input   textinput.Model

	form   *Form
	widget *widget.Widget

	linkBase string
	lastSeq  uint64
	results  Fragment
	width    int
}

// NewModel builds the screen around a widget that reads the screen's controls
// and writes into region. linkBase prefixes the relative result links.
func NewModel(searcher widget.Searcher, region *ProgramRegion, games []string, linkBase string, opts ...widget.Option) Model {
	ti := textinput.New()
	ti.Placeholder = "Card name, e.g. Charizard"
	ti.CharLimit = 100
	ti.Width = 40
	ti.Prompt = ""
	ti.Focus()

	form := &Form{}
	m := Model{
		keys:     DefaultKeyMap(),
		focus:    FocusQuery,
		games:    games,
		input:    ti,
		form:     form,
		widget:   widget.New(form, region, searcher, opts...),
		linkBase: strings.TrimRight(linkBase, "/"),
	}
	m.syncForm()
	return m
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Game returns the selected game filter
func (m Model) Game() string {
	if len(m.games) == 0 {
		return ""
	}
	return m.games[m.gameIdx]
}

// Focused returns the control that receives keys
func (m Model) Focused() Focus { return m.focus }

// Results returns the last fragment shown in the output region
func (m Model) Results() Fragment { return m.results }

// Widget exposes the underlying search widget
func (m Model) Widget() *widget.Widget { return m.widget }

func (m *Model) syncForm() {
	m.form.Set(m.Game(), m.input.Value())
}

func (m *Model) setFocus(f Focus) {
	m.focus = (f + focusCount) % focusCount
	if m.focus == FocusQuery {
		m.input.Focus()
	} else {
		m.input.Blur()
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case ResultsHTMLMsg:
		if msg.Seq < m.lastSeq {
			return m, nil
		}
		m.lastSeq = msg.Seq
		frag, err := ParseFragment(msg.HTML)
		if err != nil {
			logger.LogErr(err, "failed to read results fragment")
			return m, nil
		}
		m.results = frag
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Next):
		m.setFocus(m.focus + 1)
		return m, nil
	case key.Matches(msg, m.keys.Prev):
		m.setFocus(m.focus - 1)
		return m, nil
	}

	switch m.focus {
	case FocusGame:
		if n := len(m.games); n > 0 {
			switch {
			case key.Matches(msg, m.keys.PrevGame):
				m.gameIdx = (m.gameIdx - 1 + n) % n
			case key.Matches(msg, m.keys.NextGame):
				m.gameIdx = (m.gameIdx + 1) % n
			}
		}
		m.syncForm()
		return m, nil

	case FocusButton:
		if key.Matches(msg, m.keys.Enter, m.keys.Space) {
			m.syncForm()
			m.widget.Activate()
		}
		return m, nil
	}

	// Query field
	if key.Matches(msg, m.keys.Enter) {
		m.syncForm()
		m.widget.KeyPress(widget.EnterKey)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.syncForm()
	return m, cmd
}

func (m Model) View() string {
	var sb strings.Builder

	sb.WriteString(headerStyle.Render("Flip Radar"))
	sb.WriteString("\n\n")

	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Center,
		m.viewGame(),
		" ",
		m.viewQuery(),
		" ",
		m.viewButton(),
	))
	sb.WriteString("\n\n")

	sb.WriteString(m.viewResults())
	sb.WriteString("\n\n")
	sb.WriteString(dimStyle.Render("tab/shift+tab focus • ←/→ game • enter search • esc quit"))
	sb.WriteString("\n")

	return sb.String()
}

func (m Model) viewGame() string {
	style := fieldStyle
	if m.focus == FocusGame {
		style = focusedFieldStyle
	}
	return style.Render("‹ " + m.Game() + " ›")
}

func (m Model) viewQuery() string {
	style := fieldStyle
	if m.focus == FocusQuery {
		style = focusedFieldStyle
	}
	return style.Render(m.input.View())
}

func (m Model) viewButton() string {
	if m.focus == FocusButton {
		return focusedButtonStyle.Render("Search")
	}
	return buttonStyle.Render("Search")
}

func (m Model) viewResults() string {
	if len(m.results.Rows) == 0 {
		switch {
		case m.results.Failed:
			return errorStyle.Render(m.results.Placeholder)
		case m.results.Placeholder != "":
			return dimStyle.Render(m.results.Placeholder)
		}
		return ""
	}

	lines := make([]string, 0, len(m.results.Rows))
	for _, row := range m.results.Rows {
		entry := titleStyle.Render(row.Title)
		if row.Subtitle != "" {
			entry += "  " + subtitleStyle.Render(row.Subtitle)
		}
		entry += "\n  " + linkStyle.Render(m.linkBase+row.Link)
		lines = append(lines, entry)
	}
	return strings.Join(lines, "\n")
}
