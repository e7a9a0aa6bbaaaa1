package services

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/wsbridge/internal/core/domain"
	"github.com/custodia-labs/wsbridge/internal/core/ports/driven"
	"github.com/custodia-labs/wsbridge/internal/core/ports/driving"
)

// Ensure MailService implements the interface.
var _ driving.MailService = (*MailService)(nil)

// MailService serves mail messages through the message cache.
type MailService struct {
	provider driven.MailProvider
	messages recordCache[domain.MailMessage]
	opts     ServiceOptions
}

// NewMailService creates a new mail service.
func NewMailService(provider driven.MailProvider, cache driven.Cache[domain.MailMessage], opts ServiceOptions) *MailService {
	opts = opts.withDefaults()
	return &MailService{
		provider: provider,
		messages: recordCache[domain.MailMessage]{kind: domain.KindMailMessages, store: cache, metrics: opts.Metrics},
		opts:     opts,
	}
}

// List fetches one page of message ids, then resolves each id through Get.
// Detail fetches run concurrently up to the configured bound; the throttle
// still spaces them on the wire. Items keep listing order, and the first
// failed detail fetch fails the page.
func (s *MailService) List(
	ctx context.Context, filter domain.MailFilter, pageSize int, cursor string,
) (domain.Page[domain.MailMessage], error) {
	if err := s.opts.Ready(); err != nil {
		return domain.Page[domain.MailMessage]{}, err
	}
	if filter.Query == "" && len(filter.LabelIDs) == 0 {
		filter.Query = domain.DefaultMailQuery
	}

	summaries, err := s.provider.ListMessages(ctx, filter, domain.PageSizeOr(pageSize, domain.DefaultMailPageSize), cursor)
	if err != nil {
		return domain.Page[domain.MailMessage]{}, err
	}

	messages, err := s.resolve(ctx, summaries.Items, domain.MailGetOptions{IncludeBody: filter.IncludeBody})
	if err != nil {
		return domain.Page[domain.MailMessage]{}, err
	}
	return domain.Page[domain.MailMessage]{Items: messages, NextCursor: summaries.NextCursor}, nil
}

// ListAll follows cursors until the listing is exhausted. An empty query
// lists the inbox.
func (s *MailService) ListAll(ctx context.Context, filter domain.MailFilter) ([]domain.MailMessage, error) {
	if filter.Query == "" && len(filter.LabelIDs) == 0 {
		filter.Query = domain.DefaultMailAllQuery
	}
	return CollectPages(ctx, "gmail.messages.list", func(ctx context.Context, cursor string) (domain.Page[domain.MailMessage], error) {
		return s.List(ctx, filter, domain.DefaultMailBulkPageSize, cursor)
	}, messageKey)
}

// Get returns one message. Requesting the body always goes to the provider;
// the fetched message replaces the cached one either way.
func (s *MailService) Get(ctx context.Context, id string, opts domain.MailGetOptions) (domain.MailMessage, error) {
	if err := s.opts.Ready(); err != nil {
		return domain.MailMessage{}, err
	}
	if strings.TrimSpace(id) == "" {
		return domain.MailMessage{}, fmt.Errorf("%w: message id is required", domain.ErrInvalidInput)
	}

	force := opts.ForceRefresh || opts.IncludeBody
	return s.messages.readThrough(ctx, id, force, func(ctx context.Context) (domain.MailMessage, error) {
		return s.provider.GetMessage(ctx, id, opts.IncludeBody)
	})
}

// Search runs a provider query and returns the first page of matches.
func (s *MailService) Search(ctx context.Context, query string) ([]domain.MailMessage, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("%w: search query is required", domain.ErrInvalidInput)
	}
	page, err := s.List(ctx, domain.MailFilter{Query: query}, domain.DefaultMailSearchSize, "")
	if err != nil {
		return nil, err
	}
	return page.Items, nil
}

// Labels returns the mailbox labels.
func (s *MailService) Labels(ctx context.Context) ([]domain.MailLabel, error) {
	if err := s.opts.Ready(); err != nil {
		return nil, err
	}
	return s.provider.ListLabels(ctx)
}

func (s *MailService) resolve(
	ctx context.Context, summaries []domain.MailSummary, opts domain.MailGetOptions,
) ([]domain.MailMessage, error) {
	messages := make([]domain.MailMessage, len(summaries))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.MailDetailConcurrency)
	for i, summary := range summaries {
		g.Go(func() error {
			msg, err := s.Get(gctx, summary.ID, opts)
			if err != nil {
				return err
			}
			messages[i] = msg
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return messages, nil
}

func messageKey(m domain.MailMessage) string { return m.ID }
