package message

import (
	"errors"
	"fmt"
	"strings"
)

// ErrHeaderNotFound is returned by RequireHeader when a message carries no
// header with the requested name.
var ErrHeaderNotFound = errors.New("header not found")

// Body is the encoded payload of a leaf part. Data is URL-safe base64 as
// delivered by the Gmail API.
type Body struct {
	Data string
	Size int64
}

// Part is a node in a message's MIME tree. Leaves carry a Body, containers
// carry Parts. Malformed multipart containers may carry neither.
type Part struct {
	MimeType string
	Filename string
	Body     *Body
	Parts    []*Part
}

// IsContainer reports whether the part has children to descend into.
func (p *Part) IsContainer() bool {
	return p != nil && len(p.Parts) > 0
}

func (p *Part) hasData() bool {
	return p.Body != nil && p.Body.Data != ""
}

type Header struct {
	Name  string
	Value string
}

// Raw is one fetched email: its id, headers in wire order and the root of
// its part tree.
type Raw struct {
	ID           string
	ThreadID     string
	Headers      []Header
	Payload      *Part
	Snippet      string
	InternalDate int64 // milliseconds since epoch, for sorting
}

// Header returns the value of the first header named name. Names compare
// case-insensitively.
func (m *Raw) Header(name string) (string, bool) {
	for _, h := range m.Headers {
		if strings.EqualFold(h.Name, name) {
			return h.Value, true
		}
	}
	return "", false
}

// RequireHeader is Header with a NotFound error instead of a flag.
func (m *Raw) RequireHeader(name string) (string, error) {
	v, ok := m.Header(name)
	if !ok {
		return "", fmt.Errorf("%s: %w", name, ErrHeaderNotFound)
	}
	return v, nil
}

// HeaderOr returns the named header, or fallback when it is absent.
func (m *Raw) HeaderOr(name, fallback string) string {
	if v, ok := m.Header(name); ok {
		return v
	}
	return fallback
}
