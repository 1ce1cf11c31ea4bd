package llm

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"

	"github.com/bassamadnan/mailbrief/keyphrase"
)

var _ keyphrase.Embedder = (*Client)(nil)

// Embed returns one embedding per input, in input order.
func (c *Client) Embed(ctx context.Context, inputs []string) ([][]float64, error) {
	if len(inputs) == 0 {
		return nil, nil
	}
	resp, err := c.client.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Model: c.params.EmbeddingModel,
		Input: openai.EmbeddingNewParamsInputUnion{
			OfArrayOfStrings: inputs,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("embeddings: %w", err)
	}
	if len(resp.Data) != len(inputs) {
		return nil, fmt.Errorf("embeddings: got %d vectors for %d inputs", len(resp.Data), len(inputs))
	}

	out := make([][]float64, len(inputs))
	for _, d := range resp.Data {
		if d.Index < 0 || int(d.Index) >= len(out) {
			return nil, fmt.Errorf("embeddings: index %d out of range", d.Index)
		}
		out[d.Index] = d.Embedding
	}
	return out, nil
}
