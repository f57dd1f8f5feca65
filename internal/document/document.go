// Package document defines the handle and storage types for uploaded files.
// A handle is an opaque reference resolved to file bytes by the store; the
// extraction core never performs its own file discovery and never deletes.
package document

import (
	"fmt"
	"strings"
)

// Format identifies the declared format of an uploaded document.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
	FormatDOC  Format = "doc"
	FormatTXT  Format = "txt"
)

// ErrUnsupportedFormat is returned when a format tag is outside the closed set.
var ErrUnsupportedFormat = fmt.Errorf("unsupported document format")

// ParseFormat maps a file extension (with or without a leading dot) onto the
// closed format set.
func ParseFormat(ext string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "pdf":
		return FormatPDF, nil
	case "docx":
		return FormatDOCX, nil
	case "doc":
		return FormatDOC, nil
	case "txt":
		return FormatTXT, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// Extension returns the canonical file extension for the format, with dot.
func (f Format) Extension() string {
	return "." + string(f)
}

// Handle is an opaque reference to an uploaded document. It is created on
// upload, immutable, and read-only to the extraction core.
type Handle struct {
	ID       string `json:"id"`
	Format   Format `json:"format"`
	Filename string `json:"filename"` // original upload filename, used for name hints
	Size     int64  `json:"size"`
}
