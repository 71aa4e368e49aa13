package coingecko

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"coinscope/internal/domain"
	"go.uber.org/zap"
)

const DefaultBaseURL = "https://api.coingecko.com/api/v3"

// Client is the adapter for the CoinGecko REST API. The demo API accepts an
// optional key header; without one the public rate limits apply.
//
// mockFallback substitutes a synthetic series when a market-chart fetch
// fails. It exists so the presentation layer stays exercisable without
// network access and must stay off outside development.
type Client struct {
	apiKey       string
	baseURL      string
	mockFallback bool
	client       *http.Client
	logger       *zap.Logger
}

func NewClient(apiKey, baseURL string, mockFallback bool, logger *zap.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		apiKey:       apiKey,
		baseURL:      baseURL,
		mockFallback: mockFallback,
		client:       &http.Client{Timeout: 10 * time.Second},
		logger:       logger,
	}
}

// get performs one upstream request and normalizes the failure modes.
// Prices are time-sensitive, so every request asks intermediaries not to
// serve a cached response.
func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-store")
	if c.apiKey != "" {
		req.Header.Set("x-cg-demo-api-key", c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &domain.NetworkError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.NetworkError{Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &domain.RequestError{Status: resp.StatusCode}
	}

	return body, nil
}

// ListCoins fetches one market-cap-ranked page of coin summaries, 24h
// change included, sparkline excluded.
func (c *Client) ListCoins(ctx context.Context, page, perPage int) ([]domain.Coin, error) {
	if page < 1 {
		return nil, fmt.Errorf("page must be >= 1, got %d", page)
	}
	if perPage < 1 {
		return nil, fmt.Errorf("perPage must be > 0, got %d", perPage)
	}

	path := fmt.Sprintf(
		"/coins/markets?vs_currency=usd&order=market_cap_desc&per_page=%d&page=%d&sparkline=false&price_change_percentage=24h",
		perPage, page,
	)
	body, err := c.get(ctx, path)
	if err != nil {
		return nil, err
	}

	var coins []domain.Coin
	if err := json.Unmarshal(body, &coins); err != nil {
		return nil, &domain.ParseError{Reason: "coins markets payload", Err: err}
	}
	return coins, nil
}

// GetCoinDetail fetches the expanded record for one coin. Localization,
// tickers, community and developer blocks are excluded to keep the payload
// small.
func (c *Client) GetCoinDetail(ctx context.Context, coinID string) (*domain.CoinDetail, error) {
	if coinID == "" {
		return nil, fmt.Errorf("coinID must not be empty")
	}

	path := "/coins/" + url.PathEscape(coinID) +
		"?localization=false&tickers=false&market_data=true&community_data=false&developer_data=false&sparkline=false"
	body, err := c.get(ctx, path)
	if err != nil {
		var reqErr *domain.RequestError
		if errors.As(err, &reqErr) && reqErr.Status == http.StatusNotFound {
			return nil, &domain.NotFoundError{ID: coinID, Status: reqErr.Status}
		}
		return nil, err
	}

	var detail domain.CoinDetail
	if err := json.Unmarshal(body, &detail); err != nil {
		return nil, &domain.ParseError{Reason: "coin detail payload", Err: err}
	}
	return &detail, nil
}

// GetMarketChart fetches the trailing price/cap/volume series for a coin.
// When the mock fallback is enabled any failure is replaced with a
// synthetic chart instead of propagating.
func (c *Client) GetMarketChart(ctx context.Context, coinID string, days int) (*domain.MarketChart, error) {
	if coinID == "" {
		return nil, fmt.Errorf("coinID must not be empty")
	}
	if days < 1 {
		return nil, fmt.Errorf("days must be positive, got %d", days)
	}

	chart, err := c.fetchMarketChart(ctx, coinID, days)
	if err != nil && c.mockFallback {
		c.logger.Warn("market chart fetch failed, using mock data",
			zap.String("coin", coinID),
			zap.Int("days", days),
			zap.Error(err))
		return GenerateMockChart(days), nil
	}
	return chart, err
}

func (c *Client) fetchMarketChart(ctx context.Context, coinID string, days int) (*domain.MarketChart, error) {
	path := fmt.Sprintf("/coins/%s/market_chart?vs_currency=usd&days=%d", url.PathEscape(coinID), days)
	body, err := c.get(ctx, path)
	if err != nil {
		return nil, err
	}

	var raw struct {
		Prices       [][]float64 `json:"prices"`
		MarketCaps   [][]float64 `json:"market_caps"`
		TotalVolumes [][]float64 `json:"total_volumes"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, &domain.ParseError{Reason: "market chart payload", Err: err}
	}
	if len(raw.Prices) == 0 {
		return nil, &domain.ParseError{Reason: "empty price series"}
	}

	chart := &domain.MarketChart{
		Prices:       toSeries(raw.Prices),
		MarketCaps:   toSeries(raw.MarketCaps),
		TotalVolumes: toSeries(raw.TotalVolumes),
	}
	return chart, nil
}

func toSeries(pairs [][]float64) domain.PriceSeries {
	series := make(domain.PriceSeries, 0, len(pairs))
	for _, p := range pairs {
		if len(p) < 2 {
			continue
		}
		series = append(series, domain.PricePoint{
			Timestamp: int64(p[0]),
			Price:     p[1],
		})
	}
	return series
}

// SearchCoins runs a free-text search and returns the upstream records
// verbatim.
func (c *Client) SearchCoins(ctx context.Context, query string) (*domain.SearchResponse, error) {
	body, err := c.get(ctx, "/search?query="+url.QueryEscape(query))
	if err != nil {
		return nil, err
	}

	var result domain.SearchResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, &domain.ParseError{Reason: "search payload", Err: err}
	}
	return &result, nil
}
