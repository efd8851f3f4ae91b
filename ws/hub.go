package ws

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/websocket"

	"card-crawl-server/config"
	"card-crawl-server/lobby"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Allow all origins for development; restrict in production.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// RunStarter defines what the Hub needs from the lobby.
type RunStarter interface {
	NewRun(p *lobby.Player) *lobby.Table
}

// TokenValidator checks auth tokens sent by clients.
type TokenValidator interface {
	Validate(token string) (jwt.MapClaims, error)
}

// Hub maintains the set of active clients.
type Hub struct {
	Clients    map[*Client]bool
	Register   chan *Client
	Unregister chan *Client
	Lobby      RunStarter
	Auth       TokenValidator
	Config     *config.Config
}

// NewHub creates a new Hub. auth may be nil, in which case auth messages are rejected.
func NewHub(cfg *config.Config, l RunStarter, auth TokenValidator) *Hub {
	return &Hub{
		Clients:    make(map[*Client]bool),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		Lobby:      l,
		Auth:       auth,
		Config:     cfg,
	}
}

// Run starts the hub's main loop. Should be run as a goroutine.
// When ctx is cancelled (e.g. on server shutdown), Run returns and no longer accepts new registrations.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			slog.Info("shutdown signal received, stopping", "tag", "hub")
			return
		case client := <-h.Register:
			h.Clients[client] = true
			slog.Info("client connected", "tag", "hub", "clients", len(h.Clients))

		case client := <-h.Unregister:
			if _, ok := h.Clients[client]; ok {
				delete(h.Clients, client)
				close(client.Send)
				slog.Info("client disconnected", "tag", "hub", "clients", len(h.Clients))

				// A run without its player is abandoned.
				if t := client.Table; t != nil {
					select {
					case t.Actions <- lobby.Action{Type: lobby.ActionDisconnect}:
					case <-t.Done:
					default:
					}
				}
			}
		}
	}
}

// ServeWS handles WebSocket upgrade requests and creates a new Client.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("websocket upgrade failed", "tag", "hub", "err", err)
		return
	}

	client := &Client{
		Hub:  h,
		Conn: conn,
		Send: make(chan []byte, 256),
		Name: defaultName,
	}

	h.Register <- client

	go client.WritePump()
	go client.ReadPump()
}
