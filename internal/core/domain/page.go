package domain

// Page is one page of a provider listing.
// An empty NextCursor marks the last page.
type Page[T any] struct {
	Items      []T
	NextCursor string
}

// HasMore returns true if another page can be requested.
func (p Page[T]) HasMore() bool {
	return p.NextCursor != ""
}

// Default page sizes, matching what each provider listing asks for when the
// caller does not choose.
const (
	DefaultDrivePageSize      = 20
	DefaultDriveBulkPageSize  = 100
	DefaultDriveSearchSize    = 50
	DefaultEventPageSize      = 250
	DefaultEventBulkPageSize  = 2500
	DefaultCalendarPageSize   = 250
	DefaultMailPageSize       = 20
	DefaultMailBulkPageSize   = 100
	DefaultMailSearchSize     = 50
	DefaultContactPageSize    = 100
	DefaultTaskPageSize       = 100
	DefaultCalendarWindowDays = 30
	DefaultHistoryWindowDays  = 90
)

// PageSizeOr returns size when positive, otherwise def.
func PageSizeOr(size, def int) int {
	if size > 0 {
		return size
	}
	return def
}
