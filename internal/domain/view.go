package domain

// SortKey names a Coin field the listing view can be ordered by. Values
// match the upstream JSON keys so they can be passed through from query
// parameters unchanged.
type SortKey string

const (
	SortByRank      SortKey = "market_cap_rank"
	SortByPrice     SortKey = "current_price"
	SortByChange24h SortKey = "price_change_percentage_24h"
	SortByMarketCap SortKey = "market_cap"
	SortByVolume    SortKey = "total_volume"
	SortByName      SortKey = "name"
	SortBySymbol    SortKey = "symbol"
)

type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// Valid reports whether k is one of the supported sort keys.
func (k SortKey) Valid() bool {
	switch k {
	case SortByRank, SortByPrice, SortByChange24h, SortByMarketCap, SortByVolume, SortByName, SortBySymbol:
		return true
	}
	return false
}

func (o SortOrder) Valid() bool {
	return o == SortAsc || o == SortDesc
}
