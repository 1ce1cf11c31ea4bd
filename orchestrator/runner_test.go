package orchestrator

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bassamadnan/mailbrief/keyphrase"
	"github.com/bassamadnan/mailbrief/message"
	"github.com/bassamadnan/mailbrief/summarize"
)

type fakeMailbox struct {
	msgs []*message.Raw
	err  error
	day  time.Time
}

func (m *fakeMailbox) FetchUnreadToday(_ context.Context, day time.Time) ([]*message.Raw, error) {
	m.day = day
	return m.msgs, m.err
}

// echoSummarizer records its inputs and summarizes by echoing them back.
type echoSummarizer struct {
	inputs []string
	fail   map[string]error
}

func (s *echoSummarizer) Summarize(_ context.Context, text string) (summarize.Summary, error) {
	s.inputs = append(s.inputs, text)
	if err := s.fail[text]; err != nil {
		return summarize.Summary{}, err
	}
	return summarize.Abstractive("summary of " + text), nil
}

type scriptedPrompter struct {
	prompts []string
	abortAt int // 1-based prompt number, 0 never
}

func (p *scriptedPrompter) Confirm(_ context.Context, prompt string) error {
	p.prompts = append(p.prompts, prompt)
	if p.abortAt == len(p.prompts) {
		return ErrAborted
	}
	return nil
}

func plain(text string) *message.Part {
	return &message.Part{
		MimeType: "text/plain",
		Body:     &message.Body{Data: base64.URLEncoding.EncodeToString([]byte(text))},
	}
}

func msg(id, from, subject string, payload *message.Part) *message.Raw {
	m := &message.Raw{ID: id, Payload: payload}
	if from != "" {
		m.Headers = append(m.Headers, message.Header{Name: "From", Value: from})
	}
	if subject != "" {
		m.Headers = append(m.Headers, message.Header{Name: "Subject", Value: subject})
	}
	return m
}

func TestRunNoMessages(t *testing.T) {
	var out bytes.Buffer
	sum := &echoSummarizer{}
	r := NewRunner(&fakeMailbox{}, sum, PlainReporter{W: &out})

	snap, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "No unread emails from today found.\n", out.String())
	assert.Empty(t, sum.inputs)
	assert.Zero(t, snap.Len())
	assert.Equal(t, Done, r.State())
}

func TestRunExtractsNormalizesAndReports(t *testing.T) {
	var out bytes.Buffer
	sum := &echoSummarizer{}
	payload := &message.Part{MimeType: "multipart/alternative", Parts: []*message.Part{
		plain("Hello   world\n\nSee http://x.co"),
	}}
	mb := &fakeMailbox{msgs: []*message.Raw{msg("1", "Ann <ann@x.com>", "Hi", payload)}}
	now := time.Date(2026, 10, 16, 15, 4, 5, 0, time.Local)
	r := NewRunner(mb, sum, PlainReporter{W: &out}, WithClock(func() time.Time { return now }))

	snap, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Hello world See"}, sum.inputs)
	assert.Equal(t, "Summary of email from Ann <ann@x.com>: summary of Hello world See\n\n", out.String())
	assert.Equal(t, time.Date(2026, 10, 16, 0, 0, 0, 0, time.Local), mb.day)
	assert.Equal(t, 1, snap.Len())
}

func TestRunSameSenderLastWins(t *testing.T) {
	var out bytes.Buffer
	mb := &fakeMailbox{msgs: []*message.Raw{
		msg("1", "a@x.com", "first", plain("first message body")),
		msg("2", "b@x.com", "other", plain("other message body")),
		msg("3", "a@x.com", "second", plain("second message body")),
	}}
	r := NewRunner(mb, &echoSummarizer{}, PlainReporter{W: &out})

	snap, err := r.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, snap.Len())
	got, ok := snap.Get("a@x.com")
	require.True(t, ok)
	assert.Equal(t, "summary of second message body", got.Text)
	assert.Equal(t, 1, snap.Overwrites())
	assert.Equal(t, "a@x.com", snap.Entries()[0].Sender)
	assert.Equal(t, "b@x.com", snap.Entries()[1].Sender)
}

func TestRunFallsBackToSubject(t *testing.T) {
	sum := &echoSummarizer{}
	mb := &fakeMailbox{msgs: []*message.Raw{
		msg("1", "a@x.com", "Reminder", &message.Part{MimeType: "multipart/mixed"}),
		msg("2", "b@x.com", "", nil),
	}}
	r := NewRunner(mb, sum, PlainReporter{W: &bytes.Buffer{}})

	_, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{
		"(Fallback to subject): Reminder",
		"(Fallback to subject): (no subject)",
	}, sum.inputs)
}

func TestRunMissingSender(t *testing.T) {
	var out bytes.Buffer
	mb := &fakeMailbox{msgs: []*message.Raw{msg("1", "", "Hello", plain("body text here"))}}
	r := NewRunner(mb, &echoSummarizer{}, PlainReporter{W: &out})

	snap, err := r.Run(context.Background())
	require.NoError(t, err)
	_, ok := snap.Get(UnknownSender)
	assert.True(t, ok)
	assert.Contains(t, out.String(), "Summary of email from Unknown sender: ")
}

func TestRunIsolatesSummaryFailures(t *testing.T) {
	var out bytes.Buffer
	sum := &echoSummarizer{fail: map[string]error{"broken body": errors.New("model down")}}
	mb := &fakeMailbox{msgs: []*message.Raw{
		msg("1", "a@x.com", "s", plain("broken body")),
		msg("2", "b@x.com", "s", plain("fine body")),
	}}
	r := NewRunner(mb, sum, PlainReporter{W: &out})

	snap, err := r.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, snap.Len())
	a, _ := snap.Get("a@x.com")
	assert.Equal(t, summarize.KindFailed, a.Kind)
	b, _ := snap.Get("b@x.com")
	assert.Equal(t, "summary of fine body", b.Text)
	assert.Contains(t, out.String(), "Summary of email from a@x.com: Failed to generate summary.\n\n")
}

func TestRunFetchError(t *testing.T) {
	outage := errors.New("network unreachable")
	sum := &echoSummarizer{}
	r := NewRunner(&fakeMailbox{err: outage}, sum, PlainReporter{W: &bytes.Buffer{}})

	_, err := r.Run(context.Background())
	assert.ErrorIs(t, err, outage)
	assert.Empty(t, sum.inputs)
}

func TestRunPromptsAndAbort(t *testing.T) {
	mb := &fakeMailbox{msgs: []*message.Raw{
		msg("1", "a@x.com", "s", plain("one body")),
		msg("2", "b@x.com", "s", plain("two body")),
	}}
	sum := &echoSummarizer{}
	p := &scriptedPrompter{abortAt: 3}
	r := NewRunner(mb, sum, PlainReporter{W: &bytes.Buffer{}}, WithPrompter(p))

	snap, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Press Enter to fetch today's unread emails...",
		"Press Enter to summarize the email from a@x.com...",
		"Press Enter to summarize the email from b@x.com...",
	}, p.prompts)
	assert.Equal(t, 1, snap.Len())
	assert.Equal(t, []string{"one body"}, sum.inputs)
	assert.Equal(t, Done, r.State())
}

func TestRunAbortBeforeFetch(t *testing.T) {
	mb := &fakeMailbox{}
	r := NewRunner(mb, &echoSummarizer{}, PlainReporter{W: &bytes.Buffer{}}, WithPrompter(&scriptedPrompter{abortAt: 1}))

	snap, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.Zero(t, snap.Len())
	assert.True(t, mb.day.IsZero())
}

func TestRunWithStrategy(t *testing.T) {
	var out bytes.Buffer
	mb := &fakeMailbox{msgs: []*message.Raw{
		msg("1", "a@x.com", "Hey", plain("Hi there friend")),
		msg("2", "b@x.com", "Budget", plain("Budget review moved. Budget review needs the new forecast numbers.")),
	}}
	strategy := summarize.NewStrategy(cannotSummarize{}, keyphrase.FrequencyRanker{}, nil)
	r := NewRunner(mb, strategy, PlainReporter{W: &out})

	_, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t,
		"Summary of email from a@x.com: No content to summarize.\n\n"+
			"Summary of email from b@x.com: Key highlights: budget review, budget, review, review moved, moved budget\n\n",
		out.String())
}

type cannotSummarize struct{}

func (cannotSummarize) Summarize(context.Context, string, summarize.Options) (string, error) {
	return "", summarize.ErrCannotSummarize
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "await_summarize", AwaitSummarize.String())
	assert.Equal(t, "state(9)", State(9).String())
}
