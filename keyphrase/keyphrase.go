// Package keyphrase ranks short n-gram phrases that represent a document.
// Candidates are built the way a bag-of-words vectorizer builds its
// vocabulary: lowercase word tokens, stop-words removed, then n-grams over
// what remains.
package keyphrase

import (
	"regexp"
	"strings"
)

// Request configures one extraction.
type Request struct {
	MinNgram  int
	MaxNgram  int
	StopWords StopWords
	TopN      int
}

// Phrase is a ranked candidate. Higher scores rank first.
type Phrase struct {
	Text  string
	Score float64
}

// Tokens shorter than two word characters are dropped.
var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)

type candidate struct {
	text  string
	words int
	count int
	first int
}

// Candidates returns every distinct n-gram of text within the request's
// range, in first-seen order.
func Candidates(text string, req Request) []string {
	cands := collect(text, req)
	out := make([]string, len(cands))
	for i, c := range cands {
		out[i] = c.text
	}
	return out
}

func collect(text string, req Request) []*candidate {
	minN, maxN := req.MinNgram, req.MaxNgram
	if minN < 1 {
		minN = 1
	}
	if maxN < minN {
		maxN = minN
	}

	var tokens []string
	for _, tok := range tokenPattern.FindAllString(strings.ToLower(text), -1) {
		if !req.StopWords.Contains(tok) {
			tokens = append(tokens, tok)
		}
	}

	index := make(map[string]*candidate)
	var ordered []*candidate
	for n := minN; n <= maxN; n++ {
		for i := 0; i+n <= len(tokens); i++ {
			gram := strings.Join(tokens[i:i+n], " ")
			if c, ok := index[gram]; ok {
				c.count++
				continue
			}
			c := &candidate{text: gram, words: n, count: 1, first: i}
			index[gram] = c
			ordered = append(ordered, c)
		}
	}
	return ordered
}

func topN(phrases []Phrase, n int) []Phrase {
	if n > 0 && len(phrases) > n {
		return phrases[:n]
	}
	return phrases
}
