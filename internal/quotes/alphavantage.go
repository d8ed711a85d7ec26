package quotes

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"
)

const defaultBaseURL = "https://www.alphavantage.co"

// AlphaVantage fetches quotes from the Alpha Vantage GLOBAL_QUOTE endpoint.
type AlphaVantage struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewAlphaVantage(apiKey string, timeout time.Duration) *AlphaVantage {
	return &AlphaVantage{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

type globalQuoteResponse struct {
	GlobalQuote struct {
		Symbol string `json:"01. symbol"`
		Price  string `json:"05. price"`
	} `json:"Global Quote"`
}

func (a *AlphaVantage) Lookup(ctx context.Context, symbol string) (Quote, error) {
	endpoint := fmt.Sprintf("%s/query?function=GLOBAL_QUOTE&symbol=%s&apikey=%s",
		a.baseURL, url.QueryEscape(symbol), a.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Quote{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return Quote{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Quote{}, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	var result globalQuoteResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return Quote{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	// Alpha Vantage answers unknown symbols with an empty Global Quote.
	if result.GlobalQuote.Price == "" {
		return Quote{}, ErrNotFound
	}

	price, err := decimal.NewFromString(result.GlobalQuote.Price)
	if err != nil {
		return Quote{}, fmt.Errorf("%w: bad price %q", ErrUnavailable, result.GlobalQuote.Price)
	}

	name := result.GlobalQuote.Symbol
	if name == "" {
		name = symbol
	}

	return Quote{Symbol: symbol, Name: name, Price: price}, nil
}
