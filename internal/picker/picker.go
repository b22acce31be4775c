// Package picker presents candidates in a terminal fuzzy-filter list and
// reports which one the user chose.
package picker

import (
	"context"
	"errors"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	apperrors "github.com/kingrea/planpick/internal/errors"
)

// Candidate is one selectable line. Text is what the filter matches against;
// Styled is what gets drawn and may carry ANSI styling. An empty Styled falls
// back to Text.
type Candidate struct {
	Text   string
	Styled string
}

func (c Candidate) display() string {
	if c.Styled == "" {
		return c.Text
	}
	return c.Styled
}

// Outcome is the result of a selection session.
type Outcome struct {
	// Index points into the candidate slice passed to Select. It is -1 when
	// the session was aborted.
	Index   int
	Aborted bool
}

// Chosen builds an outcome for the candidate at index i.
func Chosen(i int) Outcome {
	return Outcome{Index: i}
}

// Aborted is the outcome of a session the user cancelled.
var Aborted = Outcome{Index: -1, Aborted: true}

// Selector lets the user choose one of candidates. Implementations block until
// a choice is made or the session is cancelled.
type Selector interface {
	Select(ctx context.Context, candidates []Candidate) (Outcome, error)
}

// Options configures the terminal selector.
type Options struct {
	// PromptTop draws the prompt on the first row with the list below it.
	// By default the prompt sits on the bottom row and the list grows upward.
	PromptTop bool
	// Input and Output override the terminal streams; nil keeps bubbletea's
	// defaults.
	Input  io.Reader
	Output io.Writer
}

// TUI is the bubbletea-backed Selector.
type TUI struct {
	opts Options
}

// NewTUI returns a Selector that runs an inline bubbletea program.
func NewTUI(opts Options) *TUI {
	return &TUI{opts: opts}
}

// Select runs the picker until the user chooses an entry or aborts. It owns
// the terminal until it returns.
func (t *TUI) Select(ctx context.Context, candidates []Candidate) (Outcome, error) {
	if len(candidates) == 0 {
		return Aborted, apperrors.Selector(nil, "picker: no candidates to select from")
	}
	programOpts := []tea.ProgramOption{tea.WithContext(ctx)}
	if t.opts.Input != nil {
		programOpts = append(programOpts, tea.WithInput(t.opts.Input))
	}
	if t.opts.Output != nil {
		programOpts = append(programOpts, tea.WithOutput(t.opts.Output))
	}

	p := tea.NewProgram(newModel(candidates, t.opts.PromptTop), programOpts...)
	final, err := p.Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return Aborted, apperrors.Selector(ctx.Err(), "picker: session cancelled")
		}
		return Aborted, apperrors.Selector(err, "picker: run")
	}
	m, ok := final.(*model)
	if !ok {
		return Aborted, apperrors.Selector(nil, "picker: unexpected model %T", final)
	}
	return m.outcome, nil
}
