// Package orchestrator drives one digest run: fetch today's unread mail,
// then extract, normalize and summarize each message in turn.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/bassamadnan/mailbrief/message"
	"github.com/bassamadnan/mailbrief/normalize"
	"github.com/bassamadnan/mailbrief/summarize"
)

const (
	UnknownSender  = "Unknown sender"
	NoSubject      = "(no subject)"
	subjectPrefix  = "(Fallback to subject): "
	fetchPrompt    = "Press Enter to fetch today's unread emails..."
	summaryPromptf = "Press Enter to summarize the email from %s..."
)

// ErrAborted is returned by a Prompter when the user declines to go on.
var ErrAborted = errors.New("aborted by user")

type State int

const (
	AwaitFetch State = iota
	Fetched
	AwaitSummarize
	Summarized
	Done
)

func (s State) String() string {
	switch s {
	case AwaitFetch:
		return "await_fetch"
	case Fetched:
		return "fetched"
	case AwaitSummarize:
		return "await_summarize"
	case Summarized:
		return "summarized"
	case Done:
		return "done"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

type Mailbox interface {
	FetchUnreadToday(ctx context.Context, day time.Time) ([]*message.Raw, error)
}

type Summarizer interface {
	Summarize(ctx context.Context, text string) (summarize.Summary, error)
}

type Prompter interface {
	Confirm(ctx context.Context, prompt string) error
}

type Runner struct {
	mailbox    Mailbox
	summarizer Summarizer
	prompter   Prompter
	reporter   Reporter
	logger     *log.Logger
	now        func() time.Time
	state      State
}

type Option func(*Runner)

func WithPrompter(p Prompter) Option { return func(r *Runner) { r.prompter = p } }

func WithLogger(l *log.Logger) Option { return func(r *Runner) { r.logger = l } }

func WithClock(now func() time.Time) Option { return func(r *Runner) { r.now = now } }

func NewRunner(mailbox Mailbox, summarizer Summarizer, reporter Reporter, opts ...Option) *Runner {
	r := &Runner{
		mailbox:    mailbox,
		summarizer: summarizer,
		reporter:   reporter,
		prompter:   noPrompt{},
		logger:     log.Default(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Runner) State() State { return r.state }

func (r *Runner) setState(s State) {
	r.logger.Debug("State transition", "from", r.state, "to", s)
	r.state = s
}

// Run processes today's unread messages one at a time and returns the
// snapshot it built. A message that cannot be summarized still gets an
// entry; only fetch, prompt and report failures end the run early. When
// the user aborts at a prompt the partial snapshot is returned with a nil
// error.
func (r *Runner) Run(ctx context.Context) (*Snapshot, error) {
	snap := NewSnapshot()
	r.state = AwaitFetch

	if err := r.prompter.Confirm(ctx, fetchPrompt); err != nil {
		return snap, r.stopped(err)
	}
	msgs, err := r.mailbox.FetchUnreadToday(ctx, startOfDay(r.now()))
	if err != nil {
		return snap, fmt.Errorf("fetching unread emails: %w", err)
	}
	r.setState(Fetched)
	r.logger.Info("Fetched unread emails", "count", len(msgs))

	if len(msgs) == 0 {
		r.setState(Done)
		return snap, r.reporter.NoMessages()
	}

	for _, msg := range msgs {
		if err := ctx.Err(); err != nil {
			return snap, err
		}
		r.setState(AwaitSummarize)

		sender := r.sender(msg)
		if err := r.prompter.Confirm(ctx, fmt.Sprintf(summaryPromptf, sender)); err != nil {
			return snap, r.stopped(err)
		}

		summary := r.process(ctx, msg)
		if snap.Put(sender, summary) {
			r.logger.Warn("Replacing earlier summary from the same sender", "sender", sender, "id", msg.ID)
		}
		if err := r.reporter.Summary(sender, summary); err != nil {
			return snap, fmt.Errorf("reporting summary: %w", err)
		}
		r.setState(Summarized)
	}

	r.setState(Done)
	return snap, nil
}

func (r *Runner) stopped(err error) error {
	if errors.Is(err, ErrAborted) {
		r.logger.Info("Run aborted at prompt", "state", r.state)
		r.setState(Done)
		return nil
	}
	return fmt.Errorf("prompt: %w", err)
}

func (r *Runner) sender(msg *message.Raw) string {
	from, err := msg.RequireHeader("From")
	if err != nil {
		r.logger.Warn("Message has no sender", "id", msg.ID, "err", err)
		return UnknownSender
	}
	return from
}

// Body returns the text to summarize for msg: its extracted body, or a
// line naming the subject when nothing readable was found.
func Body(msg *message.Raw) string {
	if body := message.Extract(msg.Payload); body != "" {
		return body
	}
	return subjectPrefix + msg.HeaderOr("Subject", NoSubject)
}

// process never fails; a broken message becomes a Failed summary.
func (r *Runner) process(ctx context.Context, msg *message.Raw) (summary summarize.Summary) {
	defer func() {
		if p := recover(); p != nil {
			r.logger.Error("Panic while summarizing message", "id", msg.ID, "panic", p)
			summary = summarize.Failed()
		}
	}()

	if _, ok := msg.Header("Subject"); !ok {
		r.logger.Warn("Message has no subject", "id", msg.ID)
	}
	body := Body(msg)
	clean := normalize.Text(body)
	r.logger.Debug("Normalized body", "id", msg.ID, "rawLen", len(body), "tokens", normalize.Tokens(clean))

	summary, err := r.summarizer.Summarize(ctx, clean)
	if err != nil {
		r.logger.Error("Failed to summarize message", "id", msg.ID, "err", err)
		return summarize.Failed()
	}
	r.logger.Info("Summarized message", "id", msg.ID, "kind", summary.Kind)
	return summary
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

type noPrompt struct{}

func (noPrompt) Confirm(context.Context, string) error { return nil }
