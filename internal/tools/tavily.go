package tools

import (
	"context"
	"fmt"
	"strings"

	"tradebot/pkg/httpclient"
)

const tavilySearchURL = "https://api.tavily.com/search"

// DefaultTavilyMaxResults bounds the search when the config leaves
// max_results unset.
const DefaultTavilyMaxResults = 5

type tavilyRequest struct {
	APIKey        string `json:"api_key"`
	Query         string `json:"query"`
	SearchDepth   string `json:"search_depth"`
	IncludeAnswer bool   `json:"include_answer"`
	MaxResults    int    `json:"max_results"`
}

type tavilyResult struct {
	Title   string  `json:"title"`
	URL     string  `json:"url"`
	Content string  `json:"content"`
	Score   float64 `json:"score"`
}

type tavilyResponse struct {
	Answer  string         `json:"answer"`
	Results []tavilyResult `json:"results"`
}

// TavilyClient calls the Tavily REST search API.
type TavilyClient struct {
	client     *httpclient.Client
	apiKey     string
	maxResults int
	url        string
}

// NewTavilyClient creates a TavilyClient. The apiKey may be empty, in
// which case every search reports a configuration error to the caller.
func NewTavilyClient(client *httpclient.Client, apiKey string, maxResults int) *TavilyClient {
	if maxResults <= 0 {
		maxResults = DefaultTavilyMaxResults
	}
	return &TavilyClient{client: client, apiKey: apiKey, maxResults: maxResults, url: tavilySearchURL}
}

// Search runs a web search and renders the answer and results as text for
// the model.
func (c *TavilyClient) Search(ctx context.Context, query string) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("web search is not configured: TAVILY_API_KEY is not set")
	}

	req := tavilyRequest{
		APIKey:        c.apiKey,
		Query:         query,
		SearchDepth:   "advanced",
		IncludeAnswer: true,
		MaxResults:    c.maxResults,
	}
	var resp tavilyResponse
	if err := c.client.PostJSON(ctx, c.url, req, &resp); err != nil {
		return "", fmt.Errorf("web search failed: %w", err)
	}

	var sb strings.Builder
	if resp.Answer != "" {
		sb.WriteString("Answer: ")
		sb.WriteString(resp.Answer)
	}
	for _, r := range resp.Results {
		if sb.Len() > 0 {
			sb.WriteString("\n\n")
		}
		fmt.Fprintf(&sb, "%s (%s)\n%s", r.Title, r.URL, r.Content)
	}
	if sb.Len() == 0 {
		return "No web results found for this query.", nil
	}
	return sb.String(), nil
}

// NewWebSearchTool exposes Tavily search as an agent tool.
func NewWebSearchTool(client *TavilyClient) *Tool {
	return &Tool{
		Name: "web_search",
		Description: "Search the web for up-to-date information such as recent news, " +
			"market commentary or facts not present in the uploaded documents.",
		ParamName:        "query",
		ParamDescription: "The web search query.",
		Fn:               client.Search,
	}
}
