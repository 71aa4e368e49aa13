package usecase

import (
	"sort"
	"strings"

	"coinscope/internal/domain"
)

// Project derives the rendered listing from a raw page: case-insensitive
// substring filter over name and symbol, then a deterministic sort.
//
// The sort is a total order: records missing the sort key (absent rank,
// null 24h change) always order last regardless of direction, and equal
// keys fall back to the coin ID ascending. The input slice is never
// mutated.
func Project(coins []domain.Coin, query string, sortBy domain.SortKey, order domain.SortOrder) []domain.Coin {
	out := FilterCoins(coins, query)
	sort.SliceStable(out, func(i, j int) bool {
		return coinLess(out[i], out[j], sortBy, order)
	})
	return out
}

// FilterCoins keeps coins whose name or symbol contains query,
// case-insensitively. An empty query keeps everything. The result is
// always a fresh slice.
func FilterCoins(coins []domain.Coin, query string) []domain.Coin {
	out := make([]domain.Coin, 0, len(coins))
	if query == "" {
		return append(out, coins...)
	}

	q := strings.ToLower(query)
	for _, coin := range coins {
		if strings.Contains(strings.ToLower(coin.Name), q) ||
			strings.Contains(strings.ToLower(coin.Symbol), q) {
			out = append(out, coin)
		}
	}
	return out
}

func coinLess(a, b domain.Coin, key domain.SortKey, order domain.SortOrder) bool {
	aMissing := missingKey(a, key)
	bMissing := missingKey(b, key)
	if aMissing != bMissing {
		return bMissing
	}

	cmp := 0
	if !aMissing {
		cmp = compareKey(a, b, key)
	}
	if order == domain.SortDesc {
		cmp = -cmp
	}
	if cmp != 0 {
		return cmp < 0
	}
	return a.ID < b.ID
}

func missingKey(c domain.Coin, key domain.SortKey) bool {
	switch key {
	case domain.SortByRank:
		return c.MarketCapRank == 0
	case domain.SortByChange24h:
		return c.PriceChangePct24h == nil
	}
	return false
}

func compareKey(a, b domain.Coin, key domain.SortKey) int {
	switch key {
	case domain.SortByName:
		return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	case domain.SortBySymbol:
		return strings.Compare(strings.ToLower(a.Symbol), strings.ToLower(b.Symbol))
	case domain.SortByRank:
		return compareInt(a.MarketCapRank, b.MarketCapRank)
	case domain.SortByPrice:
		return compareFloat(a.CurrentPrice, b.CurrentPrice)
	case domain.SortByChange24h:
		return compareFloat(*a.PriceChangePct24h, *b.PriceChangePct24h)
	case domain.SortByVolume:
		return compareFloat(a.TotalVolume, b.TotalVolume)
	}
	// market_cap is also the fallback for unrecognized keys
	return compareFloat(a.MarketCap, b.MarketCap)
}

func compareInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
