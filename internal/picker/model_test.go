package picker

import (
	"bytes"
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	apperrors "github.com/kingrea/planpick/internal/errors"
)

func testCandidates() []Candidate {
	return []Candidate{
		{Text: "2025-03-02 10:00 alpha plan alpha.md"},
		{Text: "2025-03-01 09:00 beta notes beta.md"},
		{Text: "2025-02-28 08:00 gamma gamma.md"},
	}
}

func send(t *testing.T, m *model, msgs ...tea.Msg) tea.Cmd {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		next, c := m.Update(msg)
		if next != m {
			t.Fatalf("update returned a different model %T", next)
		}
		cmd = c
	}
	return cmd
}

func typeText(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func expectQuit(t *testing.T, cmd tea.Cmd) {
	t.Helper()
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
}

func TestEnterChoosesMostRecentByDefault(t *testing.T) {
	m := newModel(testCandidates(), false)
	cmd := send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	expectQuit(t, cmd)
	if m.outcome != Chosen(0) {
		t.Fatalf("expected Chosen(0), got %+v", m.outcome)
	}
}

func TestFilterReturnsOriginalIndex(t *testing.T) {
	m := newModel(testCandidates(), false)
	send(t, m, typeText("beta"))
	if len(m.matches) != 1 || m.matches[0] != 1 {
		t.Fatalf("expected only candidate 1 to match, got %v", m.matches)
	}
	cmd := send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	expectQuit(t, cmd)
	if m.outcome != Chosen(1) {
		t.Fatalf("expected Chosen(1), got %+v", m.outcome)
	}
}

func TestEnterWithNoMatchesDoesNothing(t *testing.T) {
	m := newModel(testCandidates(), false)
	send(t, m, typeText("zzzz"))
	if len(m.matches) != 0 {
		t.Fatalf("expected no matches, got %v", m.matches)
	}
	if cmd := send(t, m, tea.KeyMsg{Type: tea.KeyEnter}); cmd != nil {
		t.Fatalf("enter without matches should not quit")
	}
	if !m.outcome.Aborted {
		t.Fatalf("outcome should still be aborted, got %+v", m.outcome)
	}
}

func TestAbortKeys(t *testing.T) {
	for _, key := range []tea.KeyMsg{{Type: tea.KeyEsc}, {Type: tea.KeyCtrlC}} {
		m := newModel(testCandidates(), false)
		cmd := send(t, m, key)
		expectQuit(t, cmd)
		if m.outcome != Aborted {
			t.Fatalf("%s: expected Aborted, got %+v", key.String(), m.outcome)
		}
		if m.View() != "" {
			t.Fatalf("%s: view should clear after the session ends", key.String())
		}
	}
}

func TestNavigationFollowsLayout(t *testing.T) {
	bottom := newModel(testCandidates(), false)
	send(t, bottom, tea.KeyMsg{Type: tea.KeyUp}, tea.KeyMsg{Type: tea.KeyUp})
	if bottom.cursor != 2 {
		t.Fatalf("prompt-bottom: up twice should reach match 2, got %d", bottom.cursor)
	}
	send(t, bottom, tea.KeyMsg{Type: tea.KeyUp})
	if bottom.cursor != 2 {
		t.Fatalf("cursor should stop at the last match, got %d", bottom.cursor)
	}
	send(t, bottom, tea.KeyMsg{Type: tea.KeyDown})
	if bottom.cursor != 1 {
		t.Fatalf("prompt-bottom: down should move toward the prompt, got %d", bottom.cursor)
	}

	top := newModel(testCandidates(), true)
	send(t, top, tea.KeyMsg{Type: tea.KeyDown})
	if top.cursor != 1 {
		t.Fatalf("prompt-top: down should move to match 1, got %d", top.cursor)
	}
	send(t, top, tea.KeyMsg{Type: tea.KeyEnter})
	if top.outcome != Chosen(1) {
		t.Fatalf("expected Chosen(1), got %+v", top.outcome)
	}
}

func TestViewUsesAtMostHalfTheTerminal(t *testing.T) {
	var candidates []Candidate
	for i := 0; i < 30; i++ {
		candidates = append(candidates, Candidate{Text: strings.Repeat("x", i+1) + ".md"})
	}
	m := newModel(candidates, false)
	send(t, m, tea.WindowSizeMsg{Width: 80, Height: 20})
	lines := strings.Split(m.View(), "\n")
	if len(lines) > 10 {
		t.Fatalf("view uses %d rows, want at most 10", len(lines))
	}
	if !strings.Contains(lines[len(lines)-2], "30/30") {
		t.Fatalf("expected match counter above the prompt, got %q", lines[len(lines)-2])
	}
	if !strings.Contains(lines[len(lines)-1], ">") {
		t.Fatalf("expected prompt on the bottom row, got %q", lines[len(lines)-1])
	}
}

func TestCursorScrollsIntoView(t *testing.T) {
	var candidates []Candidate
	for i := 0; i < 12; i++ {
		candidates = append(candidates, Candidate{Text: strings.Repeat("y", i+1)})
	}
	m := newModel(candidates, true)
	send(t, m, tea.WindowSizeMsg{Width: 40, Height: 10})
	rows := m.listHeight()
	for i := 0; i < rows+2; i++ {
		send(t, m, tea.KeyMsg{Type: tea.KeyDown})
	}
	if m.cursor < m.offset || m.cursor >= m.offset+rows {
		t.Fatalf("cursor %d outside window [%d,%d)", m.cursor, m.offset, m.offset+rows)
	}
}

func TestSelectRejectsEmptyCandidates(t *testing.T) {
	outcome, err := NewTUI(Options{}).Select(context.Background(), nil)
	if err == nil {
		t.Fatalf("expected error for empty candidates")
	}
	if !apperrors.Is(err, apperrors.ErrSelector) {
		t.Fatalf("expected selector error, got %v", err)
	}
	if !outcome.Aborted {
		t.Fatalf("expected aborted outcome, got %+v", outcome)
	}
}

func TestViewOnShortTerminalShowsOnlyPrompt(t *testing.T) {
	for _, height := range []int{4, 5} {
		m := newModel(testCandidates(), false)
		send(t, m, tea.WindowSizeMsg{Width: 80, Height: height})
		lines := strings.Split(m.View(), "\n")
		if len(lines) > height/2 {
			t.Fatalf("height %d: view uses %d rows, want at most %d", height, len(lines), height/2)
		}
		if !strings.Contains(lines[0], ">") {
			t.Fatalf("height %d: expected the prompt row, got %q", height, lines[0])
		}
		send(t, m, tea.KeyMsg{Type: tea.KeyUp})
		send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
		if m.outcome != Chosen(1) {
			t.Fatalf("height %d: selection should still work, got %+v", height, m.outcome)
		}
	}

	m := newModel(testCandidates(), false)
	send(t, m, tea.WindowSizeMsg{Width: 80, Height: 6})
	if got := len(strings.Split(m.View(), "\n")); got != 3 {
		t.Fatalf("height 6: expected one row plus counter and prompt, got %d rows", got)
	}
}

func TestSelectRunsProgram(t *testing.T) {
	cases := map[string]struct {
		input string
		want  Outcome
	}{
		"enter": {input: "\r", want: Chosen(0)},
		"esc":   {input: "\x1b", want: Aborted},
	}
	for name, tc := range cases {
		var out bytes.Buffer
		tui := NewTUI(Options{Input: strings.NewReader(tc.input), Output: &out})
		outcome, err := tui.Select(context.Background(), testCandidates())
		if err != nil {
			t.Fatalf("%s: select: %v", name, err)
		}
		if outcome != tc.want {
			t.Fatalf("%s: outcome = %+v, want %+v", name, outcome, tc.want)
		}
	}
}
