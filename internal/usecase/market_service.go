package usecase

import (
	"context"
	"fmt"
	"sync"

	"coinscope/internal/domain"
	"go.uber.org/zap"
)

// WatchedCoins caps its page walk the way the original UI did: ten pages of
// 250 rows covers the whole ranked universe the dashboard cares about.
const (
	aggregatePageSize = 250
	aggregateMaxPages = 10
)

// MarketService fronts the upstream market client for the presentation
// layer. It validates parameters, aggregates the multi-page watchlist view,
// and hands out fetch generations so superseded responses can be dropped.
type MarketService struct {
	client domain.MarketClient
	logger *zap.Logger

	mu          sync.Mutex
	generations map[string]uint64
}

func NewMarketService(client domain.MarketClient, logger *zap.Logger) *MarketService {
	return &MarketService{
		client:      client,
		logger:      logger,
		generations: make(map[string]uint64),
	}
}

func (s *MarketService) Coins(ctx context.Context, page, perPage int) ([]domain.Coin, error) {
	if page < 1 {
		return nil, fmt.Errorf("page must be >= 1, got %d", page)
	}
	if perPage < 1 {
		return nil, fmt.Errorf("perPage must be > 0, got %d", perPage)
	}
	return s.client.ListCoins(ctx, page, perPage)
}

func (s *MarketService) CoinDetail(ctx context.Context, coinID string) (*domain.CoinDetail, error) {
	if coinID == "" {
		return nil, fmt.Errorf("coinID must not be empty")
	}
	return s.client.GetCoinDetail(ctx, coinID)
}

func (s *MarketService) Chart(ctx context.Context, coinID string, days int) (*domain.MarketChart, error) {
	if coinID == "" {
		return nil, fmt.Errorf("coinID must not be empty")
	}
	if days < 1 {
		return nil, fmt.Errorf("days must be positive, got %d", days)
	}
	return s.client.GetMarketChart(ctx, coinID, days)
}

func (s *MarketService) Search(ctx context.Context, query string) (*domain.SearchResponse, error) {
	return s.client.SearchCoins(ctx, query)
}

// WatchedCoins resolves current market rows for the given identifiers by
// walking the ranked listing until every id is found or the listing runs
// out. The result preserves the order of ids; identifiers the upstream no
// longer lists are skipped.
func (s *MarketService) WatchedCoins(ctx context.Context, ids []string) ([]domain.Coin, error) {
	if len(ids) == 0 {
		return []domain.Coin{}, nil
	}

	wanted := make(map[string]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}

	found := make(map[string]domain.Coin, len(ids))
	for page := 1; page <= aggregateMaxPages; page++ {
		coins, err := s.client.ListCoins(ctx, page, aggregatePageSize)
		if err != nil {
			return nil, err
		}
		for _, coin := range coins {
			if wanted[coin.ID] {
				found[coin.ID] = coin
			}
		}
		if len(found) == len(wanted) || len(coins) < aggregatePageSize {
			break
		}
	}

	out := make([]domain.Coin, 0, len(found))
	for _, id := range ids {
		if coin, ok := found[id]; ok {
			out = append(out, coin)
		}
	}
	return out, nil
}

// BeginFetch issues a new generation token for a logical view slot
// ("listing", "detail:bitcoin", ...). A caller about to fetch takes a token
// and checks Accept once the response lands; stale responses are discarded
// rather than aborted in flight.
func (s *MarketService) BeginFetch(slot string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generations[slot]++
	return s.generations[slot]
}

// Accept reports whether token is still the latest generation for slot.
func (s *MarketService) Accept(slot string, token uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generations[slot] == token
}
