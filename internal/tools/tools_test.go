package tools

import (
	"context"
	"strings"
	"testing"

	"tradebot/internal/models"
)

func upperTool() *Tool {
	return &Tool{
		Name:             "upper",
		Description:      "uppercases its input",
		ParamName:        "text",
		ParamDescription: "the text to transform",
		Fn: func(ctx context.Context, input string) (string, error) {
			return strings.ToUpper(input), nil
		},
	}
}

func TestRegistrySchemasPreserveOrder(t *testing.T) {
	r := NewRegistry(
		&Tool{Name: "first", ParamName: "q"},
		&Tool{Name: "second", ParamName: "q"},
		&Tool{Name: "third", ParamName: "q"},
	)

	schemas := r.Schemas()
	if len(schemas) != 3 {
		t.Fatalf("got %d schemas, want 3", len(schemas))
	}
	for i, want := range []string{"first", "second", "third"} {
		if schemas[i].Name != want {
			t.Errorf("schema %d = %q, want %q", i, schemas[i].Name, want)
		}
	}
}

func TestRegistryCall(t *testing.T) {
	r := NewRegistry(upperTool())

	out, err := r.Call(context.Background(), &models.FunctionCall{
		Name: "upper",
		Args: map[string]any{"text": "hello"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if out != "HELLO" {
		t.Errorf("output = %q", out)
	}
}

func TestRegistryCallUnknownTool(t *testing.T) {
	r := NewRegistry(upperTool())

	_, err := r.Call(context.Background(), &models.FunctionCall{Name: "lower", Args: map[string]any{"text": "x"}})
	if err == nil || !strings.Contains(err.Error(), "unknown tool") {
		t.Fatalf("err = %v, want unknown tool", err)
	}
}

func TestRegistryCallMissingArgument(t *testing.T) {
	r := NewRegistry(upperTool())

	cases := []map[string]any{
		nil,
		{"text": ""},
		{"text": 42},
		{"wrong": "hello"},
	}
	for _, args := range cases {
		if _, err := r.Call(context.Background(), &models.FunctionCall{Name: "upper", Args: args}); err == nil {
			t.Errorf("args %v: expected error", args)
		}
	}
}

func TestFinancialsClientWithoutKey(t *testing.T) {
	c := NewFinancialsClient("")
	_, err := c.Fetch(context.Background(), "AAPL")
	if err == nil || !strings.Contains(err.Error(), "POLYGON_API_KEY") {
		t.Fatalf("err = %v, want missing key error", err)
	}
}

func TestTavilyClientWithoutKey(t *testing.T) {
	c := NewTavilyClient(nil, "", 5)
	_, err := c.Search(context.Background(), "latest fed rate decision")
	if err == nil || !strings.Contains(err.Error(), "TAVILY_API_KEY") {
		t.Fatalf("err = %v, want missing key error", err)
	}
}
