package domain

import "context"

// MarketClient defines the interface for fetching market data from the
// upstream API.
type MarketClient interface {
	ListCoins(ctx context.Context, page, perPage int) ([]Coin, error)
	GetCoinDetail(ctx context.Context, coinID string) (*CoinDetail, error)
	GetMarketChart(ctx context.Context, coinID string, days int) (*MarketChart, error)
	SearchCoins(ctx context.Context, query string) (*SearchResponse, error)
}

// Storage is a durable string key-value store. Read reports whether the key
// existed so an absent key is distinguishable from an empty value.
type Storage interface {
	Read(key string) (string, bool, error)
	Write(key, value string) error
}

// WatchlistRepository defines operations on the user's favorited coin set.
// List preserves insertion order.
type WatchlistRepository interface {
	List() []string
	IsWatched(coinID string) bool
	Add(coinID string)
	Remove(coinID string)
	Toggle(coinID string)
}
