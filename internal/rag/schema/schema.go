package schema

const (
	// MetadataKeyFileName is the key for the source file name.
	MetadataKeyFileName = "file_name"
	// MetadataKeyPageLabel is the key for the page number within the
	// source document, where the format provides one.
	MetadataKeyPageLabel = "page_label"
	// MetadataKeyText is the key under which the chunk text is stored in
	// the vector index payload.
	MetadataKeyText = "text"
)

// Document is the unit of content flowing through the ingestion and
// retrieval pipelines: a full extracted page or file before splitting, a
// chunk after it.
type Document struct {
	// ID is the unique identifier of this document or chunk. Chunk IDs
	// are generated fresh on every ingestion run.
	ID string

	// Text is the string content.
	Text string

	// Embedding is the vector representation of Text, populated by the
	// indexing pipeline before persisting.
	Embedding []float32

	// Score is the similarity score assigned by the vector index on
	// retrieval. It is zero for documents on the ingestion path.
	Score float32

	// Metadata holds source information such as file name and page label.
	Metadata map[string]interface{}
}

// CopyMetadata returns a copy of md so chunks never share maps with their
// source document.
func CopyMetadata(md map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(md))
	for k, v := range md {
		out[k] = v
	}
	return out
}
