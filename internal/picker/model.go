package picker

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/sahilm/fuzzy"
)

const (
	// defaultListHeight is used until the first WindowSizeMsg arrives.
	defaultListHeight = 10
	// chromeRows covers the counter line and the prompt line.
	chromeRows = 2
	cursorMark = "> "
	blankMark  = "  "
)

var (
	cursorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B9D")).Bold(true)
	counterStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	promptStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6BCB77")).Bold(true)
)

// model is the bubbletea model behind TUI. matches holds indexes into
// candidates in display order; cursor indexes into matches.
type model struct {
	candidates []Candidate
	texts      []string
	matches    []int
	cursor     int
	offset     int

	input     textinput.Model
	promptTop bool
	width     int
	height    int

	outcome Outcome
	done    bool
}

func newModel(candidates []Candidate, promptTop bool) *model {
	input := textinput.New()
	input.Prompt = promptStyle.Render("> ")
	input.Placeholder = "type to filter"
	input.Focus()

	texts := make([]string, len(candidates))
	for i, c := range candidates {
		texts[i] = c.Text
	}
	m := &model{
		candidates: candidates,
		texts:      texts,
		input:      input,
		promptTop:  promptTop,
		outcome:    Aborted,
	}
	m.filter()
	return m
}

func (m *model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if w := msg.Width - lipgloss.Width(m.input.Prompt) - 1; w > 0 {
			m.input.Width = w
		}
		m.clampScroll()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.outcome = Aborted
			m.done = true
			return m, tea.Quit
		case "enter":
			if len(m.matches) == 0 {
				return m, nil
			}
			m.outcome = Chosen(m.matches[m.cursor])
			m.done = true
			return m, tea.Quit
		case "up", "ctrl+p", "ctrl+k":
			m.moveVisual(-1)
			return m, nil
		case "down", "ctrl+n", "ctrl+j":
			m.moveVisual(1)
			return m, nil
		}
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m.filter()
	}
	return m, cmd
}

// moveVisual moves the cursor by delta screen rows. With the prompt at the
// bottom the best match is the lowest row, so moving up means moving further
// down the match list.
func (m *model) moveVisual(delta int) {
	if !m.promptTop {
		delta = -delta
	}
	next := m.cursor + delta
	if next < 0 || next >= len(m.matches) {
		return
	}
	m.cursor = next
	m.clampScroll()
}

// filter recomputes matches for the current query. An empty query keeps the
// original candidate order; otherwise matches are ranked by fuzzy score.
func (m *model) filter() {
	query := m.input.Value()
	m.matches = m.matches[:0]
	if query == "" {
		for i := range m.candidates {
			m.matches = append(m.matches, i)
		}
	} else {
		for _, match := range fuzzy.Find(query, m.texts) {
			m.matches = append(m.matches, match.Index)
		}
	}
	m.cursor = 0
	m.offset = 0
}

// listHeight is the number of candidate rows, sized so the whole picker takes
// at most half the terminal. It is 0 when half the terminal cannot fit a row
// plus the counter and prompt; only the prompt is drawn then, so a terminal
// of one or two rows still gets a single prompt row.
func (m *model) listHeight() int {
	if m.height == 0 {
		return defaultListHeight
	}
	rows := m.height/2 - chromeRows
	if rows < 0 {
		rows = 0
	}
	return rows
}

func (m *model) clampScroll() {
	rows := m.listHeight()
	if rows == 0 {
		return
	}
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+rows {
		m.offset = m.cursor - rows + 1
	}
}

func (m *model) View() string {
	if m.done {
		return ""
	}
	rows := m.listHeight()
	if rows == 0 {
		return m.input.View()
	}
	lines := make([]string, 0, rows)
	for i := m.offset; i < len(m.matches) && i < m.offset+rows; i++ {
		lines = append(lines, m.renderRow(i))
	}
	for len(lines) < rows {
		lines = append(lines, "")
	}
	counter := counterStyle.Render(fmt.Sprintf("  %d/%d", len(m.matches), len(m.candidates)))
	prompt := m.input.View()

	if m.promptTop {
		return strings.Join(append([]string{prompt, counter}, lines...), "\n")
	}
	reversed := make([]string, 0, len(lines)+chromeRows)
	for i := len(lines) - 1; i >= 0; i-- {
		reversed = append(reversed, lines[i])
	}
	reversed = append(reversed, counter, prompt)
	return strings.Join(reversed, "\n")
}

func (m *model) renderRow(i int) string {
	mark := blankMark
	if i == m.cursor {
		mark = cursorStyle.Render(cursorMark)
	}
	line := m.candidates[m.matches[i]].display()
	if m.width > 0 {
		line = ansi.Truncate(line, m.width-len(cursorMark), "…")
	}
	return mark + line
}
