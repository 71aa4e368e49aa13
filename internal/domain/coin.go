package domain

// Coin is a single row of the paginated market listing.
// Field names mirror the upstream JSON keys so the listing endpoint
// decodes straight into it.
type Coin struct {
	ID                string   `json:"id"`
	Symbol            string   `json:"symbol"`
	Name              string   `json:"name"`
	Image             string   `json:"image"`
	CurrentPrice      float64  `json:"current_price"`
	MarketCap         float64  `json:"market_cap"`
	MarketCapRank     int      `json:"market_cap_rank"` // 0 when upstream omits it
	TotalVolume       float64  `json:"total_volume"`
	High24h           float64  `json:"high_24h"`
	Low24h            float64  `json:"low_24h"`
	PriceChange24h    float64  `json:"price_change_24h"`
	PriceChangePct24h *float64 `json:"price_change_percentage_24h"`
	CirculatingSupply float64  `json:"circulating_supply"`
	AllTimeHigh       float64  `json:"ath"`
	AllTimeLow        float64  `json:"atl"`
	LastUpdated       string   `json:"last_updated"`
}

// CoinDetail is the expanded single-coin record. The market data block is
// keyed by currency code upstream; only "usd" is consumed here.
type CoinDetail struct {
	ID            string      `json:"id"`
	Symbol        string      `json:"symbol"`
	Name          string      `json:"name"`
	Categories    []string    `json:"categories"`
	Description   Description `json:"description"`
	Image         DetailImage `json:"image"`
	MarketCapRank int         `json:"market_cap_rank"`
	MarketData    MarketData  `json:"market_data"`
}

type Description struct {
	En string `json:"en"`
}

type DetailImage struct {
	Thumb string `json:"thumb"`
	Small string `json:"small"`
	Large string `json:"large"`
}

type MarketData struct {
	CurrentPrice         map[string]float64 `json:"current_price"`
	MarketCap            map[string]float64 `json:"market_cap"`
	TotalVolume          map[string]float64 `json:"total_volume"`
	High24h              map[string]float64 `json:"high_24h"`
	Low24h               map[string]float64 `json:"low_24h"`
	PriceChangePct24h    *float64           `json:"price_change_percentage_24h"`
	PriceChangePct7d     *float64           `json:"price_change_percentage_7d"`
	PriceChangePct30d    *float64           `json:"price_change_percentage_30d"`
	CirculatingSupply    float64            `json:"circulating_supply"`
	TotalSupply          *float64           `json:"total_supply"`
	MaxSupply            *float64           `json:"max_supply"`
	AllTimeHigh          map[string]float64 `json:"ath"`
	AllTimeLow           map[string]float64 `json:"atl"`
	AllTimeHighChangePct map[string]float64 `json:"ath_change_percentage"`
	AllTimeLowChangePct  map[string]float64 `json:"atl_change_percentage"`
}

// PricePoint is one sample of a historical series.
type PricePoint struct {
	Timestamp int64   `json:"timestamp"` // epoch milliseconds
	Price     float64 `json:"price"`
}

// PriceSeries is ordered by timestamp ascending.
type PriceSeries []PricePoint

// MarketChart is the full historical payload for one coin over a trailing
// window. All three series share timestamps.
type MarketChart struct {
	Prices       PriceSeries `json:"prices"`
	MarketCaps   PriceSeries `json:"market_caps"`
	TotalVolumes PriceSeries `json:"total_volumes"`
}

// SearchResult is returned verbatim from the upstream search resource.
type SearchResult struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Symbol        string `json:"symbol"`
	MarketCapRank int    `json:"market_cap_rank"`
	Thumb         string `json:"thumb"`
	Large         string `json:"large"`
}

type SearchResponse struct {
	Coins []SearchResult `json:"coins"`
}
