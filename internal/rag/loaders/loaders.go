// Package loaders provides file-format-specific document extractors and the
// extension dispatch that selects between them.
package loaders

import (
	"path/filepath"
	"strings"

	"tradebot/internal/rag/interfaces"
)

// ForFile selects the loader for the given path by file extension
// (case-insensitive). The second return value is false for unrecognized
// extensions, which callers skip rather than treat as errors.
func ForFile(path string) (interfaces.Loader, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return NewPdfLoader(), true
	case ".docx":
		return NewDocxLoader(), true
	default:
		return nil, false
	}
}
