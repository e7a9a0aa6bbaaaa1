package drive

import "github.com/custodia-labs/wsbridge/internal/core/domain"

// ResolveWebURL returns the browser URL of a file.
// The stored webViewLink wins; otherwise the URL is built from the id.
func ResolveWebURL(f domain.DriveFile) string {
	if f.WebViewLink != "" {
		return f.WebViewLink
	}
	if f.ID == "" {
		return ""
	}
	if f.IsFolder() {
		return "https://drive.google.com/drive/folders/" + f.ID
	}
	return "https://drive.google.com/file/d/" + f.ID + "/view"
}
