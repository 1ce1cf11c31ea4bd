package summarize

import (
	"strings"

	"github.com/bassamadnan/mailbrief/keyphrase"
)

// Kind tags which tier produced a Summary.
type Kind int

const (
	KindEmpty Kind = iota
	KindAbstractive
	KindKeyword
	KindFailed
)

func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindAbstractive:
		return "abstractive"
	case KindKeyword:
		return "keyword"
	case KindFailed:
		return "failed"
	}
	return "unknown"
}

const (
	NoContent        = "No content to summarize."
	NoKeyPhrases     = "No key phrases found."
	KeywordPrefix    = "Key highlights: "
	FailedToGenerate = "Failed to generate summary."
)

// Summary is the printable result for one message.
type Summary struct {
	Kind Kind
	Text string
}

func (s Summary) String() string { return s.Text }

func Empty() Summary { return Summary{Kind: KindEmpty, Text: NoContent} }

func Failed() Summary { return Summary{Kind: KindFailed, Text: FailedToGenerate} }

func Abstractive(text string) Summary {
	return Summary{Kind: KindAbstractive, Text: strings.TrimSpace(text)}
}

// Keyword renders ranked phrases as a "Key highlights" digest. It never
// yields an empty digest.
func Keyword(phrases []keyphrase.Phrase) Summary {
	texts := make([]string, 0, len(phrases))
	for _, p := range phrases {
		if t := strings.TrimSpace(p.Text); t != "" {
			texts = append(texts, t)
		}
	}
	body := NoKeyPhrases
	if len(texts) > 0 {
		body = strings.Join(texts, ", ")
	}
	return Summary{Kind: KindKeyword, Text: KeywordPrefix + body}
}
