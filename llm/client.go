// Package llm talks to an OpenAI-compatible endpoint for the two model
// collaborators: abstractive summarization and text embeddings.
package llm

import (
	"github.com/charmbracelet/log"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

type Params struct {
	APIKey         string
	BaseURL        string
	Model          string
	EmbeddingModel string
	// MinInputTokens rejects inputs shorter than this many tokens with
	// summarize.ErrCannotSummarize. Zero disables the check.
	MinInputTokens int
	MaxRetries     int
}

type Client struct {
	client openai.Client
	params Params
	logger *log.Logger
}

func New(params Params, logger *log.Logger, opts ...option.RequestOption) *Client {
	if logger == nil {
		logger = log.Default()
	}
	base := []option.RequestOption{
		option.WithAPIKey(params.APIKey),
		option.WithMaxRetries(params.MaxRetries),
	}
	if params.BaseURL != "" {
		base = append(base, option.WithBaseURL(params.BaseURL))
	}
	return &Client{
		client: openai.NewClient(append(base, opts...)...),
		params: params,
		logger: logger,
	}
}
