package http

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"quizbox/internal/app"
)

// snapshotInterval matches the front end's polling cadence.
const snapshotInterval = 500 * time.Millisecond

// WSHandler streams host snapshots over a websocket so the host screen
// can skip HTTP polling. The engine stays pull-only: this handler polls
// it on a ticker and pushes what it reads.
type WSHandler struct {
	service  *app.GameService
	log      zerolog.Logger
	upgrader websocket.Upgrader
}

func NewWSHandler(service *app.GameService, log zerolog.Logger) *WSHandler {
	return &WSHandler{
		service: service,
		log:     log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// ServeHostFeed upgrades the connection and pushes the host view twice
// per second until the client goes away.
func (h *WSHandler) ServeHostFeed(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn().Err(err).Msg("ws upgrade failed")
		return
	}
	defer conn.Close()

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(snapshotInterval)
	defer ticker.Stop()

	// Push an initial snapshot so the host screen renders immediately.
	if err := conn.WriteJSON(h.service.HostSnapshot(r.Context())); err != nil {
		return
	}
	for {
		select {
		case <-ticker.C:
			if err := conn.WriteJSON(h.service.HostSnapshot(r.Context())); err != nil {
				return
			}
		case <-closed:
			return
		case <-r.Context().Done():
			return
		}
	}
}
