package domain

import (
	"fmt"
	"math"
)

var sizeUnits = []string{"B", "KB", "MB", "GB", "TB"}

// FormatFileSize renders a byte count with two decimals in binary units,
// e.g. 1536 -> "1.50 KB". Non-positive sizes render as "0 B".
func FormatFileSize(bytes int64) string {
	if bytes <= 0 {
		return "0 B"
	}
	size := float64(bytes)
	i := int(math.Floor(math.Log(size) / math.Log(1024)))
	if i >= len(sizeUnits) {
		i = len(sizeUnits) - 1
	}
	return fmt.Sprintf("%.2f %s", size/math.Pow(1024, float64(i)), sizeUnits[i])
}

const defaultMimeIcon = "📎"

var mimeIcons = map[string]string{
	MimeTypeFolder:       "📁",
	MimeTypeGoogleDoc:    "📄",
	MimeTypeGoogleSheet:  "📊",
	MimeTypeGoogleSlides: "📊",
	"application/pdf":    "📑",
	"image/jpeg":         "🖼️",
	"image/png":          "🖼️",
	"image/gif":          "🖼️",
	"video/mp4":          "🎬",
	"audio/mpeg":         "🎵",
	"text/plain":         "📝",
	"application/zip":    "🗜️",
	"application/msword": "📝",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": "📝",
	"application/vnd.ms-excel": "📊",
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet":         "📊",
	"application/vnd.ms-powerpoint":                                             "📊",
	"application/vnd.openxmlformats-officedocument.presentationml.presentation": "📊",
}

// MimeTypeIcon returns a display glyph for a MIME type.
func MimeTypeIcon(mimeType string) string {
	if icon, ok := mimeIcons[mimeType]; ok {
		return icon
	}
	return defaultMimeIcon
}
