package loaders

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"baliance.com/gooxml/document"
	"github.com/google/uuid"

	"tradebot/internal/rag/interfaces"
	"tradebot/internal/rag/schema"
)

// DocxLoader reads Word (.docx) files and yields a single Document holding
// the concatenated paragraph text.
type DocxLoader struct{}

// NewDocxLoader creates a new DocxLoader.
func NewDocxLoader() *DocxLoader {
	return &DocxLoader{}
}

// Load extracts the paragraph text of the .docx file at path.
func (l *DocxLoader) Load(ctx context.Context, path string) ([]*schema.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc, err := document.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open docx %s: %w", filepath.Base(path), err)
	}

	var text strings.Builder
	for _, para := range doc.Paragraphs() {
		for _, run := range para.Runs() {
			text.WriteString(run.Text())
		}
		text.WriteString("\n")
	}

	return []*schema.Document{{
		ID:   uuid.New().String(),
		Text: text.String(),
		Metadata: map[string]interface{}{
			schema.MetadataKeyFileName: filepath.Base(path),
		},
	}}, nil
}

var _ interfaces.Loader = (*DocxLoader)(nil)
