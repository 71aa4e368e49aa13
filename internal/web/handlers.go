package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"coinscope/internal/domain"
	"coinscope/internal/usecase"
	"go.uber.org/zap"
)

func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("Failed to encode response", zap.Error(err))
	}
}

// writeFetchError maps the client error taxonomy onto HTTP statuses:
// unknown coin passes the 404 through, upstream failures surface as 502.
func (s *Server) writeFetchError(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.Error("Upstream fetch failed", zap.String("path", r.URL.Path), zap.Error(err))

	var notFound *domain.NotFoundError
	if errors.As(err, &notFound) {
		http.Error(w, notFound.Error(), http.StatusNotFound)
		return
	}

	var reqErr *domain.RequestError
	var netErr *domain.NetworkError
	var parseErr *domain.ParseError
	if errors.As(err, &reqErr) || errors.As(err, &netErr) || errors.As(err, &parseErr) {
		http.Error(w, "Upstream market data unavailable", http.StatusBadGateway)
		return
	}

	http.Error(w, err.Error(), http.StatusBadRequest)
}

func (s *Server) handleCoins(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	page := intParam(q.Get("page"), 1)
	perPage := intParam(q.Get("per_page"), 50)

	sortBy := domain.SortKey(q.Get("sort"))
	if !sortBy.Valid() {
		sortBy = domain.SortByRank
	}
	order := domain.SortOrder(q.Get("order"))
	if !order.Valid() {
		order = domain.SortAsc
	}

	coins, err := s.market.Coins(r.Context(), page, perPage)
	if err != nil {
		s.writeFetchError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, usecase.Project(coins, q.Get("q"), sortBy, order))
}

func (s *Server) handleCoinDetail(w http.ResponseWriter, r *http.Request) {
	detail, err := s.market.CoinDetail(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeFetchError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, detail)
}

func (s *Server) handleCoinChart(w http.ResponseWriter, r *http.Request) {
	days := intParam(r.URL.Query().Get("days"), 7)

	chart, err := s.market.Chart(r.Context(), r.PathValue("id"), days)
	if err != nil {
		s.writeFetchError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, chart)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		http.Error(w, "q parameter is required", http.StatusBadRequest)
		return
	}

	result, err := s.market.Search(r.Context(), query)
	if err != nil {
		s.writeFetchError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, result)
}

// watchlistView is the watchlist page payload: the ordered id list plus the
// current market rows for those ids.
type watchlistView struct {
	IDs   []string      `json:"ids"`
	Coins []domain.Coin `json:"coins"`
}

func (s *Server) handleWatchlist(w http.ResponseWriter, r *http.Request) {
	ids := s.watchlist.List()

	coins, err := s.market.WatchedCoins(r.Context(), ids)
	if err != nil {
		s.writeFetchError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, watchlistView{IDs: ids, Coins: coins})
}

func (s *Server) handleWatchlistAdd(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		http.Error(w, "coin id is required", http.StatusBadRequest)
		return
	}
	s.watchlist.Add(id)
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"id":      id,
		"watched": true,
	})
}

func (s *Server) handleWatchlistRemove(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		http.Error(w, "coin id is required", http.StatusBadRequest)
		return
	}
	s.watchlist.Remove(id)
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"id":      id,
		"watched": false,
	})
}

func intParam(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}
