package coingecko

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"coinscope/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const listingPayload = `[
	{"id":"bitcoin","symbol":"btc","name":"Bitcoin","current_price":45000,"market_cap":850000000000,"market_cap_rank":1,"total_volume":25000000000,"price_change_percentage_24h":2.27},
	{"id":"ethereum","symbol":"eth","name":"Ethereum","current_price":3000,"market_cap":360000000000,"market_cap_rank":2,"total_volume":12000000000,"price_change_percentage_24h":null}
]`

func TestListCoins(t *testing.T) {
	var gotReq *http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotReq = r.Clone(context.Background())
		w.Write([]byte(listingPayload))
	}))
	defer srv.Close()

	client := NewClient("test-key", srv.URL, false, zap.NewNop())
	coins, err := client.ListCoins(context.Background(), 2, 50)
	require.NoError(t, err)
	require.Len(t, coins, 2)

	assert.Equal(t, "bitcoin", coins[0].ID)
	assert.Equal(t, 1, coins[0].MarketCapRank)
	require.NotNil(t, coins[0].PriceChangePct24h)
	assert.InDelta(t, 2.27, *coins[0].PriceChangePct24h, 1e-9)
	assert.Nil(t, coins[1].PriceChangePct24h)

	// Exact upstream query contract.
	q := gotReq.URL.Query()
	assert.Equal(t, "/coins/markets", gotReq.URL.Path)
	assert.Equal(t, "usd", q.Get("vs_currency"))
	assert.Equal(t, "market_cap_desc", q.Get("order"))
	assert.Equal(t, "50", q.Get("per_page"))
	assert.Equal(t, "2", q.Get("page"))
	assert.Equal(t, "false", q.Get("sparkline"))
	assert.Equal(t, "24h", q.Get("price_change_percentage"))

	assert.Equal(t, "test-key", gotReq.Header.Get("x-cg-demo-api-key"))
	assert.Equal(t, "no-store", gotReq.Header.Get("Cache-Control"))
}

func TestListCoins_NoKeyHeaderWhenUnset(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, present := r.Header["X-Cg-Demo-Api-Key"]
		assert.False(t, present, "key header must be omitted when no key is configured")
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	client := NewClient("", srv.URL, false, zap.NewNop())
	_, err := client.ListCoins(context.Background(), 1, 10)
	require.NoError(t, err)
}

func TestListCoins_InvalidArgs(t *testing.T) {
	client := NewClient("", "http://unused", false, zap.NewNop())

	_, err := client.ListCoins(context.Background(), 0, 50)
	assert.Error(t, err)
	_, err = client.ListCoins(context.Background(), 1, 0)
	assert.Error(t, err)
}

func TestListCoins_RequestError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "throttled", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := NewClient("", srv.URL, false, zap.NewNop())
	_, err := client.ListCoins(context.Background(), 1, 50)

	var reqErr *domain.RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, http.StatusTooManyRequests, reqErr.Status)
}

func TestListCoins_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	client := NewClient("", srv.URL, false, zap.NewNop())
	_, err := client.ListCoins(context.Background(), 1, 50)

	var netErr *domain.NetworkError
	require.ErrorAs(t, err, &netErr)
}

func TestListCoins_ParseError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"unexpected":"shape"`))
	}))
	defer srv.Close()

	client := NewClient("", srv.URL, false, zap.NewNop())
	_, err := client.ListCoins(context.Background(), 1, 50)

	var parseErr *domain.ParseError
	require.ErrorAs(t, err, &parseErr)
}

func TestGetCoinDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/coins/bitcoin", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "false", q.Get("localization"))
		assert.Equal(t, "false", q.Get("tickers"))
		assert.Equal(t, "true", q.Get("market_data"))
		assert.Equal(t, "false", q.Get("community_data"))
		assert.Equal(t, "false", q.Get("developer_data"))
		assert.Equal(t, "false", q.Get("sparkline"))

		w.Write([]byte(`{
			"id":"bitcoin","symbol":"btc","name":"Bitcoin","market_cap_rank":1,
			"categories":["Cryptocurrency","Layer 1"],
			"description":{"en":"Digital gold."},
			"market_data":{
				"current_price":{"usd":45000,"eur":41000},
				"market_cap":{"usd":850000000000},
				"total_supply":21000000,
				"max_supply":21000000,
				"price_change_percentage_24h":2.27
			}
		}`))
	}))
	defer srv.Close()

	client := NewClient("", srv.URL, false, zap.NewNop())
	detail, err := client.GetCoinDetail(context.Background(), "bitcoin")
	require.NoError(t, err)

	assert.Equal(t, "Bitcoin", detail.Name)
	assert.Equal(t, []string{"Cryptocurrency", "Layer 1"}, detail.Categories)
	assert.Equal(t, "Digital gold.", detail.Description.En)
	assert.Equal(t, 45000.0, detail.MarketData.CurrentPrice["usd"])
	require.NotNil(t, detail.MarketData.MaxSupply)
	assert.Equal(t, 21000000.0, *detail.MarketData.MaxSupply)
}

func TestGetCoinDetail_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "coin not found", http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewClient("", srv.URL, false, zap.NewNop())
	_, err := client.GetCoinDetail(context.Background(), "no-such-coin")

	var notFound *domain.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "no-such-coin", notFound.ID)
	assert.Equal(t, http.StatusNotFound, notFound.Status)
}

func TestGetCoinDetail_EmptyID(t *testing.T) {
	client := NewClient("", "http://unused", false, zap.NewNop())
	_, err := client.GetCoinDetail(context.Background(), "")
	assert.Error(t, err)
}

func TestGetMarketChart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/coins/bitcoin/market_chart", r.URL.Path)
		assert.Equal(t, "usd", r.URL.Query().Get("vs_currency"))
		assert.Equal(t, "7", r.URL.Query().Get("days"))

		w.Write([]byte(`{
			"prices":[[1700000000000,45000],[1700086400000,45500]],
			"market_caps":[[1700000000000,850000000000],[1700086400000,860000000000]],
			"total_volumes":[[1700000000000,25000000000],[1700086400000,26000000000]]
		}`))
	}))
	defer srv.Close()

	client := NewClient("", srv.URL, false, zap.NewNop())
	chart, err := client.GetMarketChart(context.Background(), "bitcoin", 7)
	require.NoError(t, err)

	require.Len(t, chart.Prices, 2)
	assert.Equal(t, int64(1700000000000), chart.Prices[0].Timestamp)
	assert.Equal(t, 45000.0, chart.Prices[0].Price)
	assert.Equal(t, 45500.0, chart.Prices[1].Price)
	require.Len(t, chart.MarketCaps, 2)
	require.Len(t, chart.TotalVolumes, 2)
}

func TestGetMarketChart_EmptySeriesIsParseError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"prices":[],"market_caps":[],"total_volumes":[]}`))
	}))
	defer srv.Close()

	client := NewClient("", srv.URL, false, zap.NewNop())
	_, err := client.GetMarketChart(context.Background(), "bitcoin", 7)

	var parseErr *domain.ParseError
	require.ErrorAs(t, err, &parseErr)
}

func TestGetMarketChart_FailurePropagatesWithoutFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient("", srv.URL, false, zap.NewNop())
	_, err := client.GetMarketChart(context.Background(), "bitcoin", 7)

	var reqErr *domain.RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, http.StatusInternalServerError, reqErr.Status)
}

func TestGetMarketChart_FallbackSubstitutesMockData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient("", srv.URL, true, zap.NewNop())
	chart, err := client.GetMarketChart(context.Background(), "bitcoin", 30)
	require.NoError(t, err)
	require.NotNil(t, chart)
	assert.Len(t, chart.Prices, 30)
}

func TestSearchCoins(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "lite coin", r.URL.Query().Get("query"))
		w.Write([]byte(`{"coins":[{"id":"litecoin","name":"Litecoin","symbol":"LTC","market_cap_rank":20}]}`))
	}))
	defer srv.Close()

	client := NewClient("", srv.URL, false, zap.NewNop())
	result, err := client.SearchCoins(context.Background(), "lite coin")
	require.NoError(t, err)
	require.Len(t, result.Coins, 1)
	assert.Equal(t, "litecoin", result.Coins[0].ID)
}

func TestGenerateMockChart_Shape(t *testing.T) {
	// 1-day window: 24 hourly points.
	day := GenerateMockChart(1)
	require.Len(t, day.Prices, 24)
	for i := 1; i < len(day.Prices); i++ {
		gap := day.Prices[i].Timestamp - day.Prices[i-1].Timestamp
		assert.Equal(t, time.Hour.Milliseconds(), gap)
	}

	// Multi-day window: one daily point per day.
	week := GenerateMockChart(7)
	require.Len(t, week.Prices, 7)
	for i := 1; i < len(week.Prices); i++ {
		gap := week.Prices[i].Timestamp - week.Prices[i-1].Timestamp
		assert.Equal(t, (24 * time.Hour).Milliseconds(), gap)
	}

	// Base in [1000, 50000) with ±5% variation bounds every point.
	for _, p := range week.Prices {
		assert.GreaterOrEqual(t, p.Price, 950.0)
		assert.Less(t, p.Price, 52500.0)
	}

	require.Len(t, week.MarketCaps, 7)
	require.Len(t, week.TotalVolumes, 7)
}
