package web

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"coinscope/internal/domain"
	"coinscope/internal/usecase"
	"go.uber.org/zap"
)

type Server struct {
	router         *http.ServeMux
	server         *http.Server
	market         *usecase.MarketService
	watchlist      domain.WatchlistRepository
	streamInterval time.Duration
	logger         *zap.Logger
}

func NewServer(
	port int,
	market *usecase.MarketService,
	watchlist domain.WatchlistRepository,
	streamInterval time.Duration,
	logger *zap.Logger,
) *Server {
	if streamInterval <= 0 {
		streamInterval = 10 * time.Second
	}
	s := &Server{
		router:         http.NewServeMux(),
		market:         market,
		watchlist:      watchlist,
		streamInterval: streamInterval,
		logger:         logger,
	}
	s.routes()
	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: s.router,
	}
	return s
}

func (s *Server) routes() {
	// Markets
	s.router.HandleFunc("GET /api/coins", s.handleCoins)
	s.router.HandleFunc("GET /api/coins/{id}", s.handleCoinDetail)
	s.router.HandleFunc("GET /api/coins/{id}/chart", s.handleCoinChart)

	// Search
	s.router.HandleFunc("GET /api/search", s.handleSearch)

	// Watchlist
	s.router.HandleFunc("GET /api/watchlist", s.handleWatchlist)
	s.router.HandleFunc("POST /api/watchlist/{id}", s.handleWatchlistAdd)
	s.router.HandleFunc("DELETE /api/watchlist/{id}", s.handleWatchlistRemove)

	// Live price stream for the watchlist view
	s.router.HandleFunc("GET /ws/prices", s.handlePriceStream)
}

func (s *Server) Start() error {
	s.logger.Info("Starting server", zap.String("addr", s.server.Addr))
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}
