package coingecko

import (
	"math/rand"
	"time"

	"coinscope/internal/domain"
)

// GenerateMockChart builds a synthetic market chart with the same shape the
// upstream returns: hourly points for a 1-day window, daily points
// otherwise, ending now. Prices are a random base in [1000, 50000) with an
// independent ±5% wobble per point.
func GenerateMockChart(days int) *domain.MarketChart {
	points := days
	interval := 24 * time.Hour
	if days == 1 {
		points = 24
		interval = time.Hour
	}

	now := time.Now()
	base := rand.Float64()*49000 + 1000

	chart := &domain.MarketChart{
		Prices:       make(domain.PriceSeries, 0, points),
		MarketCaps:   make(domain.PriceSeries, 0, points),
		TotalVolumes: make(domain.PriceSeries, 0, points),
	}

	for i := 0; i < points; i++ {
		ts := now.Add(-time.Duration(points-i) * interval).UnixMilli()
		variation := (rand.Float64() - 0.5) * 0.1
		price := base * (1 + variation)

		chart.Prices = append(chart.Prices, domain.PricePoint{Timestamp: ts, Price: price})
		chart.MarketCaps = append(chart.MarketCaps, domain.PricePoint{Timestamp: ts, Price: price * 19_000_000})
		chart.TotalVolumes = append(chart.TotalVolumes, domain.PricePoint{Timestamp: ts, Price: price * 1_000_000})
	}

	return chart
}
