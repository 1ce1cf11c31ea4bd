package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/bassamadnan/mailbrief/orchestrator"
	"github.com/bassamadnan/mailbrief/summarize"
)

var _ orchestrator.Reporter = (*StyledReporter)(nil)

// StyledReporter prints the same lines as orchestrator.PlainReporter with
// colors when w is a terminal.
type StyledReporter struct {
	w io.Writer
	r *lipgloss.Renderer
}

func NewStyledReporter(w io.Writer) *StyledReporter {
	return &StyledReporter{w: w, r: lipgloss.NewRenderer(w)}
}

func (s *StyledReporter) NoMessages() error {
	_, err := fmt.Fprintln(s.w, NoMailStyle.Renderer(s.r).Render("No unread emails from today found."))
	return err
}

func (s *StyledReporter) Summary(sender string, summary summarize.Summary) error {
	_, err := fmt.Fprintf(s.w, "%s %s\n\n",
		SenderStyle.Renderer(s.r).Render("Summary of email from "+sender+":"),
		summaryStyle(summary.Kind).Renderer(s.r).Render(summary.String()))
	return err
}

func summaryStyle(kind summarize.Kind) lipgloss.Style {
	switch kind {
	case summarize.KindKeyword:
		return KeywordStyle
	case summarize.KindEmpty:
		return NoContentStyle
	case summarize.KindFailed:
		return FailedStyle
	}
	return SummaryStyle
}
