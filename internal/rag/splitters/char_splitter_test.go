package splitters

import (
	"context"
	"strings"
	"testing"

	"tradebot/internal/rag/schema"
)

func TestNewCharacterSplitterRejectsBadParams(t *testing.T) {
	cases := []struct {
		name    string
		size    int
		overlap int
	}{
		{"zero size", 0, 0},
		{"negative size", -1, 0},
		{"negative overlap", 100, -1},
		{"overlap equals size", 100, 100},
		{"overlap exceeds size", 100, 150},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewCharacterSplitter(tc.size, tc.overlap); err == nil {
				t.Fatalf("expected error for size=%d overlap=%d", tc.size, tc.overlap)
			}
		})
	}
}

func TestSplitChunkBoundaries(t *testing.T) {
	s, err := NewCharacterSplitter(1000, 200)
	if err != nil {
		t.Fatal(err)
	}

	text := strings.Repeat("a", 3000)
	doc := &schema.Document{ID: "doc-1", Text: text, Metadata: map[string]interface{}{"file_name": "report.pdf"}}

	chunks, err := s.Split(context.Background(), []*schema.Document{doc})
	if err != nil {
		t.Fatal(err)
	}

	// step = 800: starts at 0, 800, 1600, 2400
	if len(chunks) != 4 {
		t.Fatalf("got %d chunks, want 4", len(chunks))
	}
	for i, c := range chunks[:3] {
		if len(c.Text) != 1000 {
			t.Errorf("chunk %d length = %d, want 1000", i, len(c.Text))
		}
	}
	if len(chunks[3].Text) != 600 {
		t.Errorf("last chunk length = %d, want 600", len(chunks[3].Text))
	}
}

func TestSplitOverlapPreservesText(t *testing.T) {
	s, err := NewCharacterSplitter(10, 4)
	if err != nil {
		t.Fatal(err)
	}

	text := "abcdefghijklmnopqrstuvwxyz"
	chunks, err := s.Split(context.Background(), []*schema.Document{{ID: "d", Text: text}})
	if err != nil {
		t.Fatal(err)
	}

	// Each chunk after the first must start with the last 4 characters of
	// its predecessor.
	for i := 1; i < len(chunks); i++ {
		prev := chunks[i-1].Text
		tail := prev[len(prev)-4:]
		if !strings.HasPrefix(chunks[i].Text, tail) {
			t.Errorf("chunk %d %q does not start with overlap %q", i, chunks[i].Text, tail)
		}
	}

	// Dropping the overlap from every chunk but the first reconstructs the
	// original text.
	var rebuilt strings.Builder
	rebuilt.WriteString(chunks[0].Text)
	for _, c := range chunks[1:] {
		rebuilt.WriteString(c.Text[4:])
	}
	if rebuilt.String() != text {
		t.Errorf("reconstructed %q, want %q", rebuilt.String(), text)
	}
}

func TestSplitChunkIdentityAndMetadata(t *testing.T) {
	s, err := NewCharacterSplitter(5, 0)
	if err != nil {
		t.Fatal(err)
	}

	doc := &schema.Document{
		ID:       "source-doc",
		Text:     "0123456789abc",
		Metadata: map[string]interface{}{"file_name": "notes.docx", "page_label": "2"},
	}
	chunks, err := s.Split(context.Background(), []*schema.Document{doc})
	if err != nil {
		t.Fatal(err)
	}
	if len(chunks) != 3 {
		t.Fatalf("got %d chunks, want 3", len(chunks))
	}

	seen := map[string]bool{}
	for i, c := range chunks {
		if c.ID == "" || seen[c.ID] {
			t.Errorf("chunk %d has missing or duplicate id %q", i, c.ID)
		}
		seen[c.ID] = true

		if c.Metadata["original_doc_id"] != "source-doc" {
			t.Errorf("chunk %d original_doc_id = %v", i, c.Metadata["original_doc_id"])
		}
		if c.Metadata["chunk_number"] != i+1 {
			t.Errorf("chunk %d chunk_number = %v, want %d", i, c.Metadata["chunk_number"], i+1)
		}
		if c.Metadata["file_name"] != "notes.docx" {
			t.Errorf("chunk %d lost file_name metadata", i)
		}
	}

	// Chunk metadata maps must be independent of the source document's.
	chunks[0].Metadata["file_name"] = "changed"
	if doc.Metadata["file_name"] != "notes.docx" {
		t.Error("mutating chunk metadata leaked into the source document")
	}
}

func TestSplitSkipsEmptyDocuments(t *testing.T) {
	s, err := NewCharacterSplitter(100, 10)
	if err != nil {
		t.Fatal(err)
	}

	chunks, err := s.Split(context.Background(), []*schema.Document{
		{ID: "empty", Text: ""},
		{ID: "short", Text: "hello"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(chunks) != 1 {
		t.Fatalf("got %d chunks, want 1", len(chunks))
	}
	if chunks[0].Text != "hello" {
		t.Errorf("chunk text = %q", chunks[0].Text)
	}
}
