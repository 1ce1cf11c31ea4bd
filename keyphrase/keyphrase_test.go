package keyphrase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var defaultReq = Request{MinNgram: 1, MaxNgram: 2, StopWords: English, TopN: 5}

func TestCandidates(t *testing.T) {
	got := Candidates("The quarterly report is due. The report, again!", defaultReq)
	assert.Equal(t, []string{
		"quarterly", "report", "due",
		"quarterly report", "report due", "due report",
	}, got)
}

func TestCandidatesDropsShortTokensAndStopWords(t *testing.T) {
	got := Candidates("I am a b c to be", Request{MinNgram: 1, MaxNgram: 1, StopWords: English})
	assert.Empty(t, got)

	got = Candidates("x y zz", Request{MinNgram: 1, MaxNgram: 1})
	assert.Equal(t, []string{"zz"}, got)
}

func TestFrequencyRanker(t *testing.T) {
	text := "Budget review meeting moved. The budget review needs slides. Budget review on Monday."
	phrases, err := FrequencyRanker{}.Extract(context.Background(), text, defaultReq)
	require.NoError(t, err)
	require.Len(t, phrases, 5)
	assert.Equal(t, "budget review", phrases[0].Text)
	assert.Equal(t, 6.0, phrases[0].Score)
	assert.Equal(t, "budget", phrases[1].Text)
	assert.Equal(t, "review", phrases[2].Text)
}

func TestFrequencyRankerNoCandidates(t *testing.T) {
	phrases, err := FrequencyRanker{}.Extract(context.Background(), "to be or not to be", defaultReq)
	require.NoError(t, err)
	assert.Empty(t, phrases)
}

// letterEmbedder embeds a text as counts of its letters a..z, enough to
// give cosine similarity a meaningful shape in tests.
type letterEmbedder struct {
	calls int
	err   error
}

func (e *letterEmbedder) Embed(_ context.Context, inputs []string) ([][]float64, error) {
	e.calls++
	if e.err != nil {
		return nil, e.err
	}
	out := make([][]float64, len(inputs))
	for i, in := range inputs {
		v := make([]float64, 26)
		for _, r := range strings.ToLower(in) {
			if r >= 'a' && r <= 'z' {
				v[r-'a']++
			}
		}
		out[i] = v
	}
	return out, nil
}

func TestEmbeddingRanker(t *testing.T) {
	emb := &letterEmbedder{}
	ranker := EmbeddingRanker{Embedder: emb}

	phrases, err := ranker.Extract(context.Background(), "zzz zzz zzz quiz", Request{MinNgram: 1, MaxNgram: 1, TopN: 1})
	require.NoError(t, err)
	require.Len(t, phrases, 1)
	assert.Equal(t, "zzz", phrases[0].Text)
	assert.Equal(t, 1, emb.calls)
}

func TestEmbeddingRankerError(t *testing.T) {
	boom := errors.New("boom")
	ranker := EmbeddingRanker{Embedder: &letterEmbedder{err: boom}}

	_, err := ranker.Extract(context.Background(), "quarterly report numbers", defaultReq)
	assert.ErrorIs(t, err, boom)
}

func TestEmbeddingRankerFallsBackToFrequency(t *testing.T) {
	emb := &letterEmbedder{err: errors.New("embeddings endpoint unreachable")}
	ranker := EmbeddingRanker{Embedder: emb, Fallback: FrequencyRanker{}}
	text := "budget review budget review moved to friday"

	phrases, err := ranker.Extract(context.Background(), text, defaultReq)
	require.NoError(t, err)
	want, err := FrequencyRanker{}.Extract(context.Background(), text, defaultReq)
	require.NoError(t, err)
	assert.Equal(t, want, phrases)
	assert.NotEmpty(t, phrases)
	assert.Equal(t, 1, emb.calls)
}

func TestEmbeddingRankerNoFallbackWhenCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	ranker := EmbeddingRanker{Embedder: &letterEmbedder{err: context.Canceled}, Fallback: FrequencyRanker{}}

	_, err := ranker.Extract(ctx, "quarterly report numbers", defaultReq)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEmbeddingRankerNoCandidates(t *testing.T) {
	emb := &letterEmbedder{}
	phrases, err := EmbeddingRanker{Embedder: emb}.Extract(context.Background(), "the and of", defaultReq)
	require.NoError(t, err)
	assert.Empty(t, phrases)
	assert.Zero(t, emb.calls)
}

func TestCosine(t *testing.T) {
	assert.InDelta(t, 1.0, cosine([]float64{1, 2}, []float64{2, 4}), 1e-9)
	assert.InDelta(t, 0.0, cosine([]float64{1, 0}, []float64{0, 1}), 1e-9)
	assert.Zero(t, cosine([]float64{1}, []float64{1, 2}))
	assert.Zero(t, cosine([]float64{0, 0}, []float64{1, 2}))
}
