package message

import (
	"encoding/base64"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/log"
)

// MaxDepth bounds how far Extract descends into nested parts. Anything
// below it is treated as unreadable.
const MaxDepth = 32

// Extract returns the best-effort readable text of a part tree. Containers
// concatenate their children's text in order with no separator, text/plain
// leaves are decoded as-is and text/html leaves are converted to plain
// text. Undecodable payloads contribute nothing.
func Extract(part *Part) string {
	var b strings.Builder
	extract(&b, part, 0)
	return b.String()
}

func extract(b *strings.Builder, part *Part, depth int) {
	if part == nil {
		return
	}
	if depth > MaxDepth {
		log.Warn("Part tree too deep, skipping subtree", "depth", depth, "mimeType", part.MimeType)
		return
	}

	if part.IsContainer() {
		for _, sub := range part.Parts {
			extract(b, sub, depth+1)
		}
		return
	}
	if !part.hasData() {
		return
	}

	mimeType := strings.ToLower(part.MimeType)
	switch {
	case mimeType == "text/plain":
		text, err := decodeData(part.Body.Data)
		if err != nil {
			log.Debug("Dropping text/plain part", "err", err)
			return
		}
		b.WriteString(text)
	case strings.HasPrefix(mimeType, "text/html"):
		html, err := decodeData(part.Body.Data)
		if err != nil {
			log.Debug("Dropping text/html part", "err", err)
			return
		}
		b.WriteString(HTMLToText(html))
	}
}

// decodeData decodes a URL-safe base64 payload, padded or not, and checks
// that the result is UTF-8.
func decodeData(data string) (string, error) {
	raw, err := base64.URLEncoding.DecodeString(data)
	if err != nil {
		raw, err = base64.RawURLEncoding.DecodeString(strings.TrimRight(data, "="))
		if err != nil {
			return "", fmt.Errorf("decoding base64 body: %w", err)
		}
	}
	if !utf8.Valid(raw) {
		return "", fmt.Errorf("body is not valid UTF-8")
	}
	return string(raw), nil
}
