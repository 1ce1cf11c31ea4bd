package orchestrator

import (
	"fmt"
	"io"

	"github.com/bassamadnan/mailbrief/summarize"
)

const noUnreadEmails = "No unread emails from today found."

// Reporter prints run results for the user.
type Reporter interface {
	NoMessages() error
	Summary(sender string, summary summarize.Summary) error
}

// PlainReporter writes unstyled lines.
type PlainReporter struct {
	W io.Writer
}

func (r PlainReporter) NoMessages() error {
	_, err := fmt.Fprintln(r.W, noUnreadEmails)
	return err
}

func (r PlainReporter) Summary(sender string, summary summarize.Summary) error {
	_, err := fmt.Fprintf(r.W, "Summary of email from %s: %s\n\n", sender, summary)
	return err
}
