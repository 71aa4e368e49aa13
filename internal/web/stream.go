package web

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
}

// handlePriceStream pushes a fresh snapshot of the watchlist's market rows
// over a websocket at the configured interval. One snapshot is sent
// immediately on connect.
func (s *Server) handlePriceStream(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("WS upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	// Read loop only exists to notice the peer going away.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(s.streamInterval)
	defer ticker.Stop()

	for {
		ids := s.watchlist.List()
		coins, err := s.market.WatchedCoins(r.Context(), ids)
		if err != nil {
			s.logger.Warn("Price stream fetch failed", zap.Error(err))
		} else {
			if err := conn.WriteJSON(watchlistView{IDs: ids, Coins: coins}); err != nil {
				return
			}
		}

		select {
		case <-ticker.C:
		case <-done:
			return
		case <-r.Context().Done():
			return
		}
	}
}
