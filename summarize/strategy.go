// Package summarize turns normalized email text into a Summary using an
// abstractive model first and keyword extraction when the model cannot
// produce anything for the input.
package summarize

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/bassamadnan/mailbrief/keyphrase"
	"github.com/bassamadnan/mailbrief/normalize"
)

// ErrCannotSummarize is returned by an Abstractive model that has no output
// for the given input. It selects the keyword tier; any other model error
// is a collaborator failure.
var ErrCannotSummarize = errors.New("model cannot summarize input")

// MinTokens is the smallest input worth sending to a model.
const MinTokens = 5

// Options bound the abstractive output length, in model tokens.
type Options struct {
	MaxLength     int
	MinLength     int
	Deterministic bool
}

var DefaultOptions = Options{MaxLength: 130, MinLength: 30, Deterministic: true}

// DefaultRequest asks for up to five one- or two-word phrases, English
// stop-words excluded.
var DefaultRequest = keyphrase.Request{
	MinNgram:  1,
	MaxNgram:  2,
	StopWords: keyphrase.English,
	TopN:      5,
}

type Model interface {
	Summarize(ctx context.Context, text string, opts Options) (string, error)
}

type Keyphrases interface {
	Extract(ctx context.Context, text string, req keyphrase.Request) ([]keyphrase.Phrase, error)
}

type Strategy struct {
	model    Model
	keywords Keyphrases
	opts     Options
	request  keyphrase.Request
	logger   *log.Logger
}

func NewStrategy(model Model, keywords Keyphrases, logger *log.Logger) *Strategy {
	if logger == nil {
		logger = log.Default()
	}
	return &Strategy{
		model:    model,
		keywords: keywords,
		opts:     DefaultOptions,
		request:  DefaultRequest,
		logger:   logger,
	}
}

// Summarizable reports whether text has enough tokens to be worth a model
// call.
func Summarizable(text string) bool {
	return normalize.Tokens(text) >= MinTokens
}

type tier int

const (
	tierAbstractive tier = iota
	tierKeyword
	tierError
)

// decide picks the tier for a model outcome.
func decide(output string, err error) tier {
	switch {
	case err == nil && strings.TrimSpace(output) != "":
		return tierAbstractive
	case err == nil, errors.Is(err, ErrCannotSummarize):
		return tierKeyword
	default:
		return tierError
	}
}

// Summarize produces the Summary for normalized text. Errors are returned
// only for collaborator failures; a model that cannot summarize degrades
// to the keyword digest.
func (s *Strategy) Summarize(ctx context.Context, text string) (Summary, error) {
	if !Summarizable(text) {
		return Empty(), nil
	}

	output, err := s.model.Summarize(ctx, text, s.opts)
	switch decide(output, err) {
	case tierAbstractive:
		return Abstractive(output), nil
	case tierError:
		return Summary{}, fmt.Errorf("summarization model: %w", err)
	}

	s.logger.Warn("Summarization failed, falling back to key phrase extraction.", "reason", err)
	return s.KeyPhrases(ctx, text)
}

// KeyPhrases builds the keyword digest for text directly.
func (s *Strategy) KeyPhrases(ctx context.Context, text string) (Summary, error) {
	phrases, err := s.keywords.Extract(ctx, text, s.request)
	if err != nil {
		return Summary{}, fmt.Errorf("key phrase extraction: %w", err)
	}
	return Keyword(phrases), nil
}
