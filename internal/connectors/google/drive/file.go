package drive

import (
	"time"

	"google.golang.org/api/drive/v3"

	"github.com/custodia-labs/wsbridge/internal/connectors/google"
	"github.com/custodia-labs/wsbridge/internal/core/domain"
)

// toDriveFile converts an API file to the domain record. A file without
// an id is a malformed payload.
func toDriveFile(op string, f *drive.File) (domain.DriveFile, error) {
	if f == nil || f.Id == "" {
		return domain.DriveFile{}, google.MalformedResponse(op, "file without id")
	}

	out := domain.DriveFile{
		ID:            f.Id,
		Name:          f.Name,
		MimeType:      f.MimeType,
		Size:          f.Size,
		WebViewLink:   f.WebViewLink,
		ThumbnailLink: f.ThumbnailLink,
		IconLink:      f.IconLink,
		Parents:       f.Parents,
		Starred:       f.Starred,
		Shared:        f.Shared,
	}
	if f.ModifiedTime != "" {
		if t, err := time.Parse(time.RFC3339, f.ModifiedTime); err == nil {
			out.ModifiedTime = t
		}
	}
	for _, p := range f.Permissions {
		if p == nil {
			continue
		}
		out.Permissions = append(out.Permissions, domain.Permission{
			ID:           p.Id,
			Type:         p.Type,
			Role:         p.Role,
			EmailAddress: p.EmailAddress,
		})
	}
	return out, nil
}

// toDriveFiles converts a page of API files.
func toDriveFiles(op string, files []*drive.File) ([]domain.DriveFile, error) {
	out := make([]domain.DriveFile, 0, len(files))
	for _, f := range files {
		df, err := toDriveFile(op, f)
		if err != nil {
			return nil, err
		}
		out = append(out, df)
	}
	return out, nil
}
