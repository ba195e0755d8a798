package tools

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"tradebot/pkg/httpclient"
)

func TestTavilySearchRendersAnswerAndResults(t *testing.T) {
	var got tavilyRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}
		json.NewEncoder(w).Encode(tavilyResponse{
			Answer: "Rates were held steady.",
			Results: []tavilyResult{
				{Title: "Fed decision", URL: "https://example.com/fed", Content: "The Fed held rates."},
			},
		})
	}))
	defer srv.Close()

	c := NewTavilyClient(httpclient.New(), "test-key", 3)
	c.url = srv.URL

	out, err := c.Search(context.Background(), "fed rate decision")
	if err != nil {
		t.Fatal(err)
	}

	if got.Query != "fed rate decision" || got.APIKey != "test-key" || got.MaxResults != 3 {
		t.Errorf("request = %+v", got)
	}
	if got.SearchDepth != "advanced" || !got.IncludeAnswer {
		t.Errorf("request depth/answer = %q/%v", got.SearchDepth, got.IncludeAnswer)
	}
	for _, want := range []string{"Rates were held steady.", "Fed decision", "https://example.com/fed"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}
}

func TestTavilySearchEmptyResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(tavilyResponse{})
	}))
	defer srv.Close()

	c := NewTavilyClient(httpclient.New(), "test-key", 0)
	c.url = srv.URL

	out, err := c.Search(context.Background(), "obscure query")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "No web results") {
		t.Errorf("output = %q", out)
	}
}

func TestTavilySearchUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad key", http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewTavilyClient(httpclient.New(), "bad-key", 5)
	c.url = srv.URL

	if _, err := c.Search(context.Background(), "anything"); err == nil {
		t.Fatal("expected error from failing upstream")
	}
}
