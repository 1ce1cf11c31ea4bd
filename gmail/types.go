package gmail

import (
	"google.golang.org/api/gmail/v1"

	"github.com/bassamadnan/mailbrief/message"
)

// toRaw copies the parts of a Gmail API message the pipeline reads.
func toRaw(msg *gmail.Message) *message.Raw {
	raw := &message.Raw{
		ID:           msg.Id,
		ThreadID:     msg.ThreadId,
		Snippet:      msg.Snippet,
		InternalDate: msg.InternalDate,
	}
	if msg.Payload == nil {
		return raw
	}
	for _, h := range msg.Payload.Headers {
		raw.Headers = append(raw.Headers, message.Header{Name: h.Name, Value: h.Value})
	}
	raw.Payload = toPart(msg.Payload)
	return raw
}

func toPart(p *gmail.MessagePart) *message.Part {
	if p == nil {
		return nil
	}
	part := &message.Part{MimeType: p.MimeType, Filename: p.Filename}
	if p.Body != nil {
		part.Body = &message.Body{Data: p.Body.Data, Size: p.Body.Size}
	}
	for _, sub := range p.Parts {
		part.Parts = append(part.Parts, toPart(sub))
	}
	return part
}
