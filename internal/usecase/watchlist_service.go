package usecase

import (
	"encoding/json"
	"sync"

	"coinscope/internal/domain"
	"go.uber.org/zap"
)

// WatchlistKey is the storage key holding the JSON-encoded identifier list.
const WatchlistKey = "coinscope_watchlist"

// WatchlistService keeps the user's favorited coin identifiers as an
// insertion-ordered set and writes the full set through to storage on every
// mutation. Storage failures never propagate: a broken store degrades the
// watchlist to memory-only with a log line.
type WatchlistService struct {
	storage domain.Storage
	logger  *zap.Logger

	mu   sync.Mutex
	ids  []string
	seen map[string]bool
}

func NewWatchlistService(storage domain.Storage, logger *zap.Logger) *WatchlistService {
	s := &WatchlistService{
		storage: storage,
		logger:  logger,
		seen:    make(map[string]bool),
	}
	s.load()
	return s
}

func (s *WatchlistService) load() {
	raw, ok, err := s.storage.Read(WatchlistKey)
	if err != nil {
		s.logger.Warn("Failed to load watchlist, starting empty", zap.Error(err))
		return
	}
	if !ok || raw == "" {
		return
	}

	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		s.logger.Warn("Malformed watchlist in storage, starting empty", zap.Error(err))
		return
	}

	for _, id := range ids {
		if id == "" || s.seen[id] {
			continue
		}
		s.seen[id] = true
		s.ids = append(s.ids, id)
	}
}

// persist writes the full set. Callers hold the lock.
func (s *WatchlistService) persist() {
	data, err := json.Marshal(s.ids)
	if err != nil {
		s.logger.Error("Failed to encode watchlist", zap.Error(err))
		return
	}
	if err := s.storage.Write(WatchlistKey, string(data)); err != nil {
		s.logger.Error("Failed to persist watchlist", zap.Error(err))
	}
}

func (s *WatchlistService) List() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.ids))
	copy(out, s.ids)
	return out
}

func (s *WatchlistService) IsWatched(coinID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seen[coinID]
}

func (s *WatchlistService) Add(coinID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if coinID == "" || s.seen[coinID] {
		return
	}
	s.seen[coinID] = true
	s.ids = append(s.ids, coinID)
	s.persist()
}

func (s *WatchlistService) Remove(coinID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.seen[coinID] {
		return
	}
	delete(s.seen, coinID)
	for i, id := range s.ids {
		if id == coinID {
			s.ids = append(s.ids[:i], s.ids[i+1:]...)
			break
		}
	}
	s.persist()
}

func (s *WatchlistService) Toggle(coinID string) {
	if s.IsWatched(coinID) {
		s.Remove(coinID)
	} else {
		s.Add(coinID)
	}
}
