package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go"

	"github.com/bassamadnan/mailbrief/normalize"
	"github.com/bassamadnan/mailbrief/summarize"
)

const summaryPrompt = `Task:
Summarize the email the user sends you for someone skimming their inbox.
Write plain prose between %d and %d tokens long, with no preamble, headings, lists or quotes.
Keep names, dates, amounts and requested actions. Do not invent details that are not in the email.`

const finishContentFilter = "content_filter"

var _ summarize.Model = (*Client)(nil)

// Summarize asks the chat model for an abstractive summary of text.
// summarize.ErrCannotSummarize is returned when the model has nothing
// usable to say about this input.
func (c *Client) Summarize(ctx context.Context, text string, opts summarize.Options) (string, error) {
	if n := normalize.Tokens(text); c.params.MinInputTokens > 0 && n < c.params.MinInputTokens {
		return "", fmt.Errorf("input has %d tokens, need %d: %w", n, c.params.MinInputTokens, summarize.ErrCannotSummarize)
	}

	params := openai.ChatCompletionNewParams{
		Model: c.params.Model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(fmt.Sprintf(summaryPrompt, opts.MinLength, opts.MaxLength)),
			openai.UserMessage(text),
		},
	}
	if opts.MaxLength > 0 {
		params.MaxTokens = openai.Int(int64(opts.MaxLength))
	}
	if opts.Deterministic {
		params.Temperature = openai.Float(0)
		params.Seed = openai.Int(0)
	}

	completion, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	c.logger.Debug("Chat completion finished",
		"model", completion.Model,
		"promptTokens", completion.Usage.PromptTokens,
		"completionTokens", completion.Usage.CompletionTokens)

	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("no completion choices: %w", summarize.ErrCannotSummarize)
	}
	choice := completion.Choices[0]
	if choice.FinishReason == finishContentFilter {
		return "", fmt.Errorf("output filtered: %w", summarize.ErrCannotSummarize)
	}
	out := strings.TrimSpace(choice.Message.Content)
	if out == "" {
		return "", fmt.Errorf("empty completion: %w", summarize.ErrCannotSummarize)
	}
	return out, nil
}
