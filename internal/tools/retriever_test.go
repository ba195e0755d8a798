package tools

import (
	"context"
	"strings"
	"testing"

	"tradebot/internal/rag/pipeline"
	"tradebot/internal/rag/schema"
	"tradebot/pkg/logger"
)

type stubEmbedder struct{}

func (stubEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	return []float32{0.1, 0.2}, nil
}

func (stubEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = []float32{0.1, 0.2}
	}
	return out, nil
}

type stubStore struct {
	results []*schema.Document
}

func (s *stubStore) Upsert(ctx context.Context, docs []*schema.Document) error {
	return nil
}

func (s *stubStore) Query(ctx context.Context, embedding []float32, topK int) ([]*schema.Document, error) {
	return s.results, nil
}

func retrieverOver(docs []*schema.Document) *Tool {
	p := pipeline.NewRetrievalPipeline(stubEmbedder{}, &stubStore{results: docs}, 5, 0, logger.New("test", ""))
	return NewRetrieverTool(p)
}

func TestRetrieverToolFormatsSourceHeaders(t *testing.T) {
	tool := retrieverOver([]*schema.Document{
		{
			ID:    "a",
			Text:  "Quarterly revenue grew 12%.",
			Score: 0.9,
			Metadata: map[string]interface{}{
				"file_name":  "report.pdf",
				"page_label": "3",
			},
		},
		{
			ID:       "b",
			Text:     "Investment notes on the NIFTY 50 index.",
			Score:    0.8,
			Metadata: map[string]interface{}{"file_name": "notes.docx"},
		},
	})

	out, err := tool.Fn(context.Background(), "revenue growth")
	if err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(out, "[report.pdf, page 3]") {
		t.Errorf("output missing paged header: %q", out)
	}
	// A chunk without a page label must not render a dangling page
	// segment.
	if !strings.Contains(out, "[notes.docx]\n") {
		t.Errorf("output missing pageless header: %q", out)
	}
	if strings.Contains(out, "notes.docx, page") {
		t.Errorf("output renders an empty page label: %q", out)
	}
	for _, text := range []string{"Quarterly revenue grew 12%.", "Investment notes on the NIFTY 50 index."} {
		if !strings.Contains(out, text) {
			t.Errorf("output missing chunk text %q", text)
		}
	}
}

func TestRetrieverToolNoResults(t *testing.T) {
	tool := retrieverOver(nil)

	out, err := tool.Fn(context.Background(), "anything at all")
	if err != nil {
		t.Fatal(err)
	}
	if out != noResultsMessage {
		t.Errorf("output = %q", out)
	}
}
