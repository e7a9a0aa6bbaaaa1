package domain

import "time"

// Drive MIME types with special handling.
const (
	MimeTypeFolder       = "application/vnd.google-apps.folder"
	MimeTypeGoogleDoc    = "application/vnd.google-apps.document"
	MimeTypeGoogleSheet  = "application/vnd.google-apps.spreadsheet"
	MimeTypeGoogleSlides = "application/vnd.google-apps.presentation"
)

// DriveFile is a normalised document-storage record.
type DriveFile struct {
	ID            string
	Name          string
	MimeType      string
	Size          int64
	ModifiedTime  time.Time
	WebViewLink   string
	ThumbnailLink string
	IconLink      string
	Parents       []string
	Starred       bool
	Shared        bool
	Permissions   []Permission
}

// Permission is one sharing grant on a file.
type Permission struct {
	ID           string
	Type         string
	Role         string
	EmailAddress string
}

// IsFolder returns true if the file is a Drive folder.
func (f DriveFile) IsFolder() bool {
	return f.MimeType == MimeTypeFolder
}

// DriveFilter narrows a file listing.
type DriveFilter struct {
	// Query is a Drive query expression. Defaults to "trashed = false".
	Query string
	// OrderBy is a sort key list. Defaults to "modifiedTime desc".
	OrderBy string
}
