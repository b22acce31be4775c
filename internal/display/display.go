// Package display turns scanned plan files into the lines shown by the picker.
// Nothing here returns an error: unreadable content or timestamps degrade to
// an empty excerpt or "unknown".
package display

import (
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"github.com/kingrea/planpick/internal/picker"
	"github.com/kingrea/planpick/internal/scanner"
)

const (
	// TimeLayout renders as YYYY-MM-DD HH:MM.
	TimeLayout  = "2006-01-02 15:04"
	UnknownTime = "unknown"
)

var (
	timestampStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	excerptStyle   = lipgloss.NewStyle().Bold(true)
	nameStyle      = lipgloss.NewStyle().Faint(true)
)

// Line is the display form of one plan file.
type Line struct {
	Timestamp string
	Excerpt   string
	Name      string
}

// Text joins the fields with single spaces.
func (l Line) Text() string {
	return l.Timestamp + " " + l.Excerpt + " " + l.Name
}

// Styled is Text with each field styled separately.
func (l Line) Styled() string {
	return timestampStyle.Render(l.Timestamp) + " " +
		excerptStyle.Render(l.Excerpt) + " " +
		nameStyle.Render(l.Name)
}

// FirstLine returns the first line of the file at path, without its line
// terminator. Any read failure, or content that is not valid UTF-8 anywhere in
// the file, yields "".
func FirstLine(path string) string {
	data, err := os.ReadFile(path)
	if err != nil || !utf8.Valid(data) {
		return ""
	}
	line, _, _ := strings.Cut(string(data), "\n")
	return strings.TrimSuffix(line, "\r")
}

// FormatTime renders the entry's modification time in loc, or "unknown" when
// the time is not available. A nil loc means time.Local.
func FormatTime(entry scanner.Entry, loc *time.Location) string {
	if !entry.HasModTime() {
		return UnknownTime
	}
	if loc == nil {
		loc = time.Local
	}
	return entry.ModTime.In(loc).Format(TimeLayout)
}

// Formatter builds picker candidates from scanned entries.
type Formatter struct {
	// Location is the zone timestamps are shown in; nil means time.Local.
	Location *time.Location
}

// Line derives the display fields for entry.
func (f Formatter) Line(entry scanner.Entry) Line {
	return Line{
		Timestamp: FormatTime(entry, f.Location),
		Excerpt:   FirstLine(entry.Path),
		Name:      entry.Name(),
	}
}

// Candidates formats every entry, preserving order so a picker index maps
// straight back onto entries.
func (f Formatter) Candidates(entries []scanner.Entry) []picker.Candidate {
	out := make([]picker.Candidate, len(entries))
	for i, entry := range entries {
		line := f.Line(entry)
		out[i] = picker.Candidate{Text: line.Text(), Styled: line.Styled()}
	}
	return out
}
