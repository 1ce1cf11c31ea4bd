package message

import (
	"github.com/charmbracelet/log"
	"github.com/jaytaylor/html2text"
)

var htmlOptions = html2text.Options{
	OmitLinks: true,
	TextOnly:  true,
}

// HTMLToText renders the visible text of an HTML fragment. Link targets
// are dropped and link text kept; script and style contents never appear.
func HTMLToText(html string) string {
	text, err := html2text.FromString(html, htmlOptions)
	if err != nil {
		log.Debug("Could not convert HTML body", "err", err)
		return ""
	}
	return text
}
