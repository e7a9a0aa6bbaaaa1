package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/wsbridge/internal/core/domain"
	"github.com/custodia-labs/wsbridge/internal/core/ports/driven"
	"github.com/custodia-labs/wsbridge/internal/core/ports/driving"
	"github.com/custodia-labs/wsbridge/internal/logger"
)

// Ensure DriveService implements the interface.
var _ driving.DriveService = (*DriveService)(nil)

// DriveService serves document-storage records through the file cache.
type DriveService struct {
	provider driven.DriveProvider
	files    recordCache[domain.DriveFile]
	opts     ServiceOptions
}

// NewDriveService creates a new drive service.
func NewDriveService(provider driven.DriveProvider, cache driven.Cache[domain.DriveFile], opts ServiceOptions) *DriveService {
	opts = opts.withDefaults()
	return &DriveService{
		provider: provider,
		files:    recordCache[domain.DriveFile]{kind: domain.KindDocuments, store: cache, metrics: opts.Metrics},
		opts:     opts,
	}
}

// List fetches one page of files and caches them.
func (s *DriveService) List(
	ctx context.Context, filter domain.DriveFilter, pageSize int, cursor string,
) (domain.Page[domain.DriveFile], error) {
	if err := s.opts.Ready(); err != nil {
		return domain.Page[domain.DriveFile]{}, err
	}

	gen := s.files.store.Generation()
	page, err := s.provider.ListFiles(ctx, filter, domain.PageSizeOr(pageSize, domain.DefaultDrivePageSize), cursor)
	if err != nil {
		return domain.Page[domain.DriveFile]{}, err
	}
	s.files.putAll(gen, page.Items, fileKey)
	return page, nil
}

// ListAll follows cursors until every matching file is listed.
func (s *DriveService) ListAll(ctx context.Context, filter domain.DriveFilter) ([]domain.DriveFile, error) {
	return CollectPages(ctx, "drive.files.list", func(ctx context.Context, cursor string) (domain.Page[domain.DriveFile], error) {
		return s.List(ctx, filter, domain.DefaultDriveBulkPageSize, cursor)
	}, fileKey)
}

// Get returns a file's metadata.
func (s *DriveService) Get(ctx context.Context, id string, forceRefresh bool) (domain.DriveFile, error) {
	if err := s.opts.Ready(); err != nil {
		return domain.DriveFile{}, err
	}
	if strings.TrimSpace(id) == "" {
		return domain.DriveFile{}, fmt.Errorf("%w: file id is required", domain.ErrInvalidInput)
	}
	return s.files.readThrough(ctx, id, forceRefresh, func(ctx context.Context) (domain.DriveFile, error) {
		return s.provider.GetFile(ctx, id)
	})
}

// Search finds files whose name contains text. Results are not cached.
func (s *DriveService) Search(ctx context.Context, text string) ([]domain.DriveFile, error) {
	if err := s.opts.Ready(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: search text is required", domain.ErrInvalidInput)
	}
	return s.provider.SearchFiles(ctx, text)
}

// BatchGet resolves many file ids. Cached ids cost nothing; the rest are
// fetched with one multiplexed request. Ids that fail individually are
// logged and omitted.
func (s *DriveService) BatchGet(ctx context.Context, ids []string) ([]domain.DriveFile, error) {
	if err := s.opts.Ready(); err != nil {
		return nil, err
	}

	result, err := ResolveMany(ctx, s.files.store, ids, s.provider.BatchGetFiles)
	if err != nil {
		return nil, err
	}

	for i := 0; i < result.Hits; i++ {
		s.opts.Metrics.RecordCacheHit(domain.KindDocuments.String())
	}
	if n := len(result.Skipped); n > 0 {
		logger.Debug("drive batch: skipped %d failed ids: %s", n, strings.Join(result.Skipped, ", "))
		s.opts.Metrics.RecordBatchSkipped(domain.KindDocuments.String(), n)
	}
	return result.Values, nil
}

// Content downloads a file's bytes.
func (s *DriveService) Content(ctx context.Context, id string) ([]byte, error) {
	if err := s.opts.Ready(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%w: file id is required", domain.ErrInvalidInput)
	}
	return s.provider.FileContent(ctx, id)
}

func fileKey(f domain.DriveFile) string { return f.ID }
