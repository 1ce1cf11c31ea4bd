package keyphrase

import (
	"context"
	"sort"
)

// FrequencyRanker scores candidates by how often they occur, weighted by
// their length so a repeated bigram outranks its own words. It needs no
// model and never fails.
type FrequencyRanker struct{}

func (FrequencyRanker) Extract(_ context.Context, text string, req Request) ([]Phrase, error) {
	cands := collect(text, req)
	sort.SliceStable(cands, func(i, j int) bool {
		si, sj := frequencyScore(cands[i]), frequencyScore(cands[j])
		if si != sj {
			return si > sj
		}
		return cands[i].first < cands[j].first
	})

	phrases := make([]Phrase, 0, len(cands))
	for _, c := range cands {
		phrases = append(phrases, Phrase{Text: c.text, Score: frequencyScore(c)})
	}
	return topN(phrases, req.TopN), nil
}

func frequencyScore(c *candidate) float64 {
	return float64(c.count * c.words)
}
