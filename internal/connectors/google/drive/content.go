package drive

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/custodia-labs/wsbridge/internal/connectors/google"
	"github.com/custodia-labs/wsbridge/internal/core/domain"
)

// FileContent downloads a file's bytes, truncated at MaxContentSize.
// Google Workspace documents are exported: Docs and Slides as plain text,
// Sheets as CSV. Folders have no content.
func (p *Provider) FileContent(ctx context.Context, id string) ([]byte, error) {
	const op = "drive.files.content"

	f, err := p.GetFile(ctx, id)
	if err != nil {
		return nil, err
	}
	if f.IsFolder() {
		return nil, fmt.Errorf("%w: %s is a folder", domain.ErrInvalidInput, id)
	}

	return google.Call(ctx, p.client, op, func(ctx context.Context) ([]byte, error) {
		var resp *http.Response
		var err error
		if export := exportMimeFor(f.MimeType); export != "" {
			resp, err = p.svc.Files.Export(id, export).Context(ctx).Download()
		} else {
			resp, err = p.svc.Files.Get(id).Context(ctx).Download()
		}
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		data, err := io.ReadAll(io.LimitReader(resp.Body, MaxContentSize))
		if err != nil {
			return nil, fmt.Errorf("read content: %w", err)
		}
		return data, nil
	})
}
