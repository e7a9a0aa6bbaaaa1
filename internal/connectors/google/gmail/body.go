package gmail

import (
	"encoding/base64"
	"fmt"
	"strings"

	"google.golang.org/api/gmail/v1"

	"github.com/custodia-labs/wsbridge/internal/core/domain"
)

// Part MIME types the body decoder looks for.
const (
	mimeTextPlain = "text/plain"
	mimeTextHTML  = "text/html"
)

// Body is the decoded content of a message payload.
type Body struct {
	Text        string
	Attachments []domain.Attachment
}

// DecodeBody walks a payload and its parts tree depth-first. The text is
// the first text/plain part with data, else the first text/html part, else
// the payload's own body. Parts with a filename, the payload included, are
// reported as attachments; their bytes are never fetched.
func DecodeBody(payload *gmail.MessagePart) (Body, error) {
	if payload == nil {
		return Body{}, nil
	}

	var out Body
	var plain, html *gmail.MessagePart
	walkParts([]*gmail.MessagePart{payload}, func(p *gmail.MessagePart) {
		if p.Filename != "" {
			var size int64
			if p.Body != nil {
				size = p.Body.Size
			}
			out.Attachments = append(out.Attachments, domain.Attachment{
				Filename: p.Filename,
				MimeType: p.MimeType,
				Size:     size,
			})
			return
		}
		if !hasData(p) {
			return
		}
		switch {
		case plain == nil && strings.EqualFold(p.MimeType, mimeTextPlain):
			plain = p
		case html == nil && strings.EqualFold(p.MimeType, mimeTextHTML):
			html = p
		}
	})

	source := payload
	switch {
	case plain != nil:
		source = plain
	case html != nil:
		source = html
	}
	if !hasData(source) || source.Filename != "" {
		return out, nil
	}

	text, err := DecodeData(source.Body.Data)
	if err != nil {
		return Body{}, err
	}
	out.Text = text
	return out, nil
}

// HasAttachments reports whether any part in the tree carries a filename.
func HasAttachments(payload *gmail.MessagePart) bool {
	if payload == nil {
		return false
	}
	found := false
	walkParts([]*gmail.MessagePart{payload}, func(p *gmail.MessagePart) {
		if p.Filename != "" {
			found = true
		}
	})
	return found
}

// DecodeData decodes URL-safe base64 with or without padding.
func DecodeData(data string) (string, error) {
	raw := strings.TrimRight(strings.TrimSpace(data), "=")
	b, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil {
		// Some payloads use the standard alphabet.
		b, err = base64.RawStdEncoding.DecodeString(raw)
		if err != nil {
			return "", fmt.Errorf("decode body: %w", err)
		}
	}
	return string(b), nil
}

func walkParts(parts []*gmail.MessagePart, fn func(*gmail.MessagePart)) {
	for _, p := range parts {
		if p == nil {
			continue
		}
		fn(p)
		walkParts(p.Parts, fn)
	}
}

func hasData(p *gmail.MessagePart) bool {
	return p != nil && p.Body != nil && p.Body.Data != ""
}
