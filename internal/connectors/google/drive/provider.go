// Package drive adapts the Google Drive API to the document-storage port.
package drive

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"google.golang.org/api/drive/v3"

	"github.com/custodia-labs/wsbridge/internal/connectors/google"
	"github.com/custodia-labs/wsbridge/internal/core/domain"
	"github.com/custodia-labs/wsbridge/internal/core/ports/driven"
	"github.com/custodia-labs/wsbridge/internal/logger"
)

// Verify interface compliance.
var _ driven.DriveProvider = (*Provider)(nil)

// Provider reads files through the Drive API.
type Provider struct {
	client *google.Client
	svc    *drive.Service
}

// New creates a Drive provider on client.
func New(ctx context.Context, client *google.Client) (*Provider, error) {
	svc, err := google.NewDriveService(ctx, client)
	if err != nil {
		return nil, fmt.Errorf("create drive service: %w", err)
	}
	return &Provider{client: client, svc: svc}, nil
}

// ListFiles fetches one page of files.
func (p *Provider) ListFiles(
	ctx context.Context, filter domain.DriveFilter, pageSize int, cursor string,
) (domain.Page[domain.DriveFile], error) {
	const op = "drive.files.list"
	q, orderBy := queryFor(filter)

	resp, err := google.Call(ctx, p.client, op, func(ctx context.Context) (*drive.FileList, error) {
		call := p.svc.Files.List().
			Q(q).
			OrderBy(orderBy).
			PageSize(int64(domain.PageSizeOr(pageSize, domain.DefaultDrivePageSize))).
			Fields(listFields).
			Context(ctx)
		if cursor != "" {
			call = call.PageToken(cursor)
		}
		return call.Do()
	})
	if err != nil {
		return domain.Page[domain.DriveFile]{}, err
	}

	files, err := toDriveFiles(op, resp.Files)
	if err != nil {
		return domain.Page[domain.DriveFile]{}, err
	}
	return domain.Page[domain.DriveFile]{Items: files, NextCursor: resp.NextPageToken}, nil
}

// GetFile fetches one file's metadata.
func (p *Provider) GetFile(ctx context.Context, id string) (domain.DriveFile, error) {
	const op = "drive.files.get"
	f, err := google.Call(ctx, p.client, op, func(ctx context.Context) (*drive.File, error) {
		return p.svc.Files.Get(id).Fields(fileFields).Context(ctx).Do()
	})
	if err != nil {
		return domain.DriveFile{}, err
	}
	return toDriveFile(op, f)
}

// SearchFiles finds non-trashed files whose name contains text.
func (p *Provider) SearchFiles(ctx context.Context, text string) ([]domain.DriveFile, error) {
	page, err := p.ListFiles(ctx, domain.DriveFilter{Query: nameContains(text)}, domain.DefaultDriveSearchSize, "")
	if err != nil {
		return nil, err
	}
	return page.Items, nil
}

// BatchGetFiles resolves ids through the batch endpoint. Sub-requests
// that fail or return an unreadable body are left out of the result.
func (p *Provider) BatchGetFiles(ctx context.Context, ids []string) (map[string]domain.DriveFile, error) {
	const op = "drive.files.batchGet"
	if len(ids) == 0 {
		return map[string]domain.DriveFile{}, nil
	}

	reqs := make([]google.BatchRequest, 0, len(ids))
	for _, id := range ids {
		reqs = append(reqs, google.BatchRequest{
			Key:  id,
			Path: "/drive/v3/files/" + url.PathEscape(id) + "?fields=" + url.QueryEscape(fileFields),
		})
	}

	parts, err := p.client.Batch(ctx, op, "drive/v3", reqs)
	if err != nil {
		return nil, err
	}

	out := make(map[string]domain.DriveFile, len(parts))
	for id, part := range parts {
		if part.StatusCode != 200 {
			logger.Debug("drive batch: %s returned %d", id, part.StatusCode)
			continue
		}
		var f drive.File
		if err := json.Unmarshal(part.Body, &f); err != nil {
			logger.Debug("drive batch: %s: decode: %v", id, err)
			continue
		}
		df, err := toDriveFile(op, &f)
		if err != nil {
			logger.Debug("drive batch: %s: %v", id, err)
			continue
		}
		out[id] = df
	}
	return out, nil
}
