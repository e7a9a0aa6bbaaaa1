package drive

import (
	"strings"

	"google.golang.org/api/googleapi"

	"github.com/custodia-labs/wsbridge/internal/core/domain"
)

// Field masks. The list mask wraps the file mask.
const (
	fileFields = "id, name, mimeType, size, modifiedTime, webViewLink, thumbnailLink, iconLink, " +
		"parents, starred, shared, permissions"
	listFields = googleapi.Field("nextPageToken, files(" + fileFields + ")")
)

// Listing defaults.
const (
	DefaultQuery   = "trashed = false"
	DefaultOrderBy = "modifiedTime desc"
)

// Export formats for Google Workspace files.
const (
	ExportMimeText = "text/plain"
	ExportMimeCSV  = "text/csv"
)

// MaxContentSize caps downloaded and exported content (5MB).
const MaxContentSize = 5 * 1024 * 1024

// queryFor returns the Drive query and ordering for a filter.
func queryFor(filter domain.DriveFilter) (q, orderBy string) {
	q = strings.TrimSpace(filter.Query)
	if q == "" {
		q = DefaultQuery
	}
	orderBy = strings.TrimSpace(filter.OrderBy)
	if orderBy == "" {
		orderBy = DefaultOrderBy
	}
	return q, orderBy
}

// nameContains builds a name search query that excludes trashed files.
func nameContains(text string) string {
	return "name contains '" + escapeQuery(text) + "' and " + DefaultQuery
}

// escapeQuery escapes a string literal for the Drive query language.
func escapeQuery(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `'`, `\'`)
}

// exportMimeFor returns the export format for Google Workspace files, or
// "" for files that are downloaded as-is.
func exportMimeFor(mimeType string) string {
	switch mimeType {
	case domain.MimeTypeGoogleDoc, domain.MimeTypeGoogleSlides:
		return ExportMimeText
	case domain.MimeTypeGoogleSheet:
		return ExportMimeCSV
	default:
		return ""
	}
}
