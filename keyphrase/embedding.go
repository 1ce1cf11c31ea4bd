package keyphrase

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/charmbracelet/log"
)

// MaxCandidates caps how many candidates are embedded per document. The
// most frequent ones are kept.
const MaxCandidates = 256

// Embedder turns texts into vectors, one per input, in input order.
type Embedder interface {
	Embed(ctx context.Context, inputs []string) ([][]float64, error)
}

// Extractor is anything that ranks key phrases for a text.
type Extractor interface {
	Extract(ctx context.Context, text string, req Request) ([]Phrase, error)
}

// EmbeddingRanker ranks candidates by cosine similarity between their
// embedding and the embedding of the whole document. When embedding fails
// and Fallback is set, Fallback ranks the text instead.
type EmbeddingRanker struct {
	Embedder Embedder
	Fallback Extractor
}

func (r EmbeddingRanker) Extract(ctx context.Context, text string, req Request) ([]Phrase, error) {
	cands := collect(text, req)
	if len(cands) == 0 {
		return nil, nil
	}
	if len(cands) > MaxCandidates {
		sort.SliceStable(cands, func(i, j int) bool {
			return frequencyScore(cands[i]) > frequencyScore(cands[j])
		})
		cands = cands[:MaxCandidates]
	}

	inputs := make([]string, 0, len(cands)+1)
	inputs = append(inputs, text)
	for _, c := range cands {
		inputs = append(inputs, c.text)
	}
	vectors, err := r.Embedder.Embed(ctx, inputs)
	if err != nil {
		if r.Fallback == nil || ctx.Err() != nil {
			return nil, fmt.Errorf("embedding candidates: %w", err)
		}
		log.Warn("Embedding failed, ranking key phrases offline", "err", err)
		return r.Fallback.Extract(ctx, text, req)
	}
	if len(vectors) != len(inputs) {
		return nil, fmt.Errorf("embedder returned %d vectors for %d inputs", len(vectors), len(inputs))
	}

	doc := vectors[0]
	phrases := make([]Phrase, len(cands))
	for i, c := range cands {
		phrases[i] = Phrase{Text: c.text, Score: cosine(doc, vectors[i+1])}
	}
	sort.SliceStable(phrases, func(i, j int) bool {
		return phrases[i].Score > phrases[j].Score
	})
	return topN(phrases, req.TopN), nil
}

func cosine(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
