package tools

import (
	"context"
	"fmt"
	"strings"

	"tradebot/internal/rag/pipeline"
)

const noResultsMessage = "No relevant documents found in the knowledge base for this query."

// NewRetrieverTool exposes the document retrieval pipeline as an agent
// tool. The model supplies a free-text query; the tool answers with the
// best-matching chunks from the uploaded documents, each labelled with
// its source file and page.
func NewRetrieverTool(retriever *pipeline.RetrievalPipeline) *Tool {
	return &Tool{
		Name: "retrieve_documents",
		Description: "Search the uploaded financial documents (annual reports, filings, " +
			"research notes) for passages relevant to the query. Use this first for any " +
			"question that may be answered by the user's own documents.",
		ParamName:        "query",
		ParamDescription: "The search query to run against the document knowledge base.",
		Fn: func(ctx context.Context, input string) (string, error) {
			docs, err := retriever.Run(ctx, input)
			if err != nil {
				return "", fmt.Errorf("document retrieval failed: %w", err)
			}
			if len(docs) == 0 {
				return noResultsMessage, nil
			}

			var sb strings.Builder
			for i, doc := range docs {
				if i > 0 {
					sb.WriteString("\n\n")
				}
				file, _ := doc.Metadata["file_name"].(string)
				page, _ := doc.Metadata["page_label"].(string)
				switch {
				case file != "" && page != "":
					fmt.Fprintf(&sb, "[%s, page %s]\n", file, page)
				case file != "":
					fmt.Fprintf(&sb, "[%s]\n", file)
				}
				sb.WriteString(doc.Text)
			}
			return sb.String(), nil
		},
	}
}
