// Package gmail adapts the Gmail API to the mail port.
package gmail

import (
	"context"
	"fmt"

	"google.golang.org/api/gmail/v1"

	"github.com/custodia-labs/wsbridge/internal/connectors/google"
	"github.com/custodia-labs/wsbridge/internal/core/domain"
	"github.com/custodia-labs/wsbridge/internal/core/ports/driven"
)

// Verify interface compliance.
var _ driven.MailProvider = (*Provider)(nil)

// userID addresses the signed-in mailbox.
const userID = "me"

// Provider reads messages through the Gmail API.
type Provider struct {
	client *google.Client
	svc    *gmail.Service
}

// New creates a Gmail provider on client.
func New(ctx context.Context, client *google.Client) (*Provider, error) {
	svc, err := google.NewGmailService(ctx, client)
	if err != nil {
		return nil, fmt.Errorf("create gmail service: %w", err)
	}
	return &Provider{client: client, svc: svc}, nil
}

// ListMessages fetches one page of message ids and snippets.
// The caller resolves details with GetMessage.
func (p *Provider) ListMessages(
	ctx context.Context, filter domain.MailFilter, pageSize int, cursor string,
) (domain.Page[domain.MailSummary], error) {
	const op = "gmail.messages.list"

	resp, err := google.Call(ctx, p.client, op, func(ctx context.Context) (*gmail.ListMessagesResponse, error) {
		call := p.svc.Users.Messages.List(userID).
			MaxResults(int64(domain.PageSizeOr(pageSize, domain.DefaultMailPageSize))).
			Context(ctx)
		if filter.Query != "" {
			call = call.Q(filter.Query)
		}
		if len(filter.LabelIDs) > 0 {
			call = call.LabelIds(filter.LabelIDs...)
		}
		if cursor != "" {
			call = call.PageToken(cursor)
		}
		return call.Do()
	})
	if err != nil {
		return domain.Page[domain.MailSummary]{}, err
	}

	items := make([]domain.MailSummary, 0, len(resp.Messages))
	for _, m := range resp.Messages {
		if m == nil || m.Id == "" {
			return domain.Page[domain.MailSummary]{}, google.MalformedResponse(op, "message without id")
		}
		items = append(items, domain.MailSummary{ID: m.Id, ThreadID: m.ThreadId, Snippet: m.Snippet})
	}
	return domain.Page[domain.MailSummary]{Items: items, NextCursor: resp.NextPageToken}, nil
}

// GetMessage fetches one message. Without includeBody only the
// metadata headers are requested.
func (p *Provider) GetMessage(ctx context.Context, id string, includeBody bool) (domain.MailMessage, error) {
	const op = "gmail.messages.get"
	format := formatMetadata
	if includeBody {
		format = formatFull
	}

	msg, err := google.Call(ctx, p.client, op, func(ctx context.Context) (*gmail.Message, error) {
		return p.svc.Users.Messages.Get(userID, id).
			Format(format).
			MetadataHeaders(metadataHeaders...).
			Context(ctx).
			Do()
	})
	if err != nil {
		return domain.MailMessage{}, err
	}
	return toMessage(op, msg, includeBody)
}

// ListLabels returns the mailbox labels.
func (p *Provider) ListLabels(ctx context.Context) ([]domain.MailLabel, error) {
	const op = "gmail.labels.list"

	resp, err := google.Call(ctx, p.client, op, func(ctx context.Context) (*gmail.ListLabelsResponse, error) {
		return p.svc.Users.Labels.List(userID).Context(ctx).Do()
	})
	if err != nil {
		return nil, err
	}

	out := make([]domain.MailLabel, 0, len(resp.Labels))
	for _, l := range resp.Labels {
		if l == nil || l.Id == "" {
			return nil, google.MalformedResponse(op, "label without id")
		}
		out = append(out, toLabel(l))
	}
	return out, nil
}
