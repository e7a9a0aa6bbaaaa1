package gmail

import (
	"slices"
	"strings"

	"google.golang.org/api/gmail/v1"

	"github.com/custodia-labs/wsbridge/internal/connectors/google"
	"github.com/custodia-labs/wsbridge/internal/core/domain"
)

// Message formats.
const (
	formatMetadata = "metadata"
	formatFull     = "full"
)

// metadataHeaders are the headers requested with every message.
var metadataHeaders = []string{"From", "To", "Subject", "Date"}

// toMessage converts an API message to the domain record. With
// includeBody the payload is decoded into text and attachments.
func toMessage(op string, msg *gmail.Message, includeBody bool) (domain.MailMessage, error) {
	if msg == nil || msg.Id == "" {
		return domain.MailMessage{}, google.MalformedResponse(op, "message without id")
	}

	out := domain.MailMessage{
		ID:             msg.Id,
		ThreadID:       msg.ThreadId,
		Snippet:        msg.Snippet,
		LabelIDs:       msg.LabelIds,
		Unread:         slices.Contains(msg.LabelIds, domain.LabelUnread),
		HasAttachments: HasAttachments(msg.Payload),
	}
	if msg.Payload != nil {
		out.From = header(msg.Payload.Headers, "From")
		out.To = header(msg.Payload.Headers, "To")
		out.Subject = header(msg.Payload.Headers, "Subject")
		out.Date = header(msg.Payload.Headers, "Date")
	}

	if includeBody {
		body, err := DecodeBody(msg.Payload)
		if err != nil {
			return domain.MailMessage{}, google.MalformedResponse(op, err.Error())
		}
		out.HasBody = true
		out.Body = body.Text
		out.Attachments = body.Attachments
	}
	return out, nil
}

// header returns the first header value named name, case-insensitively.
func header(headers []*gmail.MessagePartHeader, name string) string {
	for _, h := range headers {
		if h != nil && strings.EqualFold(h.Name, name) {
			return h.Value
		}
	}
	return ""
}

func toLabel(l *gmail.Label) domain.MailLabel {
	return domain.MailLabel{
		ID:             l.Id,
		Name:           l.Name,
		Type:           l.Type,
		MessagesTotal:  l.MessagesTotal,
		MessagesUnread: l.MessagesUnread,
	}
}
