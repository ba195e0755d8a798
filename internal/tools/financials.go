package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	polygon "github.com/polygon-io/client-go/rest"
	polygonmodels "github.com/polygon-io/client-go/rest/models"
)

const financialsLimit = 4

// FinancialsClient fetches fundamental financial data for a stock ticker
// from the Polygon API.
type FinancialsClient struct {
	client *polygon.Client
}

// NewFinancialsClient creates a FinancialsClient. The apiKey may be empty,
// in which case every lookup reports a configuration error to the caller.
func NewFinancialsClient(apiKey string) *FinancialsClient {
	if apiKey == "" {
		return &FinancialsClient{}
	}
	return &FinancialsClient{client: polygon.New(apiKey)}
}

// Fetch returns the most recent financial statements for ticker as JSON
// text the model can read.
func (c *FinancialsClient) Fetch(ctx context.Context, ticker string) (string, error) {
	if c.client == nil {
		return "", fmt.Errorf("financial data is not configured: POLYGON_API_KEY is not set")
	}

	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	if ticker == "" {
		return "", fmt.Errorf("ticker symbol must not be empty")
	}

	params := polygonmodels.ListStockFinancialsParams{}.
		WithTicker(ticker).
		WithLimit(financialsLimit)

	iter := c.client.VX.ListStockFinancials(ctx, params)

	var reports []json.RawMessage
	for iter.Next() {
		item := iter.Item()
		data, err := json.Marshal(item)
		if err != nil {
			return "", fmt.Errorf("failed to encode financials for %s: %w", ticker, err)
		}
		reports = append(reports, data)
		if len(reports) >= financialsLimit {
			break
		}
	}
	if err := iter.Err(); err != nil {
		return "", fmt.Errorf("financials lookup for %s failed: %w", ticker, err)
	}
	if len(reports) == 0 {
		return fmt.Sprintf("No financial reports found for ticker %s.", ticker), nil
	}

	out, err := json.Marshal(reports)
	if err != nil {
		return "", fmt.Errorf("failed to encode financials for %s: %w", ticker, err)
	}
	return string(out), nil
}

// NewFinancialsTool exposes Polygon fundamentals as an agent tool.
func NewFinancialsTool(client *FinancialsClient) *Tool {
	return &Tool{
		Name: "stock_financials",
		Description: "Fetch the most recent financial statements (income statement, " +
			"balance sheet, cash flow) for a stock ticker symbol, e.g. AAPL or MSFT.",
		ParamName:        "ticker",
		ParamDescription: "The stock ticker symbol to look up.",
		Fn:               client.Fetch,
	}
}
