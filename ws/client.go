package ws

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gorilla/websocket"

	"card-crawl-server/auth"
	"card-crawl-server/lobby"
	"card-crawl-server/runerrors"
	"card-crawl-server/wsutil"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 4096

	defaultName = "Adventurer"
)

// Client is a middleman between the websocket connection and the hub.
// Name, UserID and Table are only touched by the ReadPump goroutine until it unregisters.
type Client struct {
	Hub    *Hub
	Conn   *websocket.Conn
	Send   chan []byte
	Name   string
	UserID string
	Table  *lobby.Table
}

// ReadPump pumps messages from the websocket connection to the hub.
// It runs in its own goroutine per connection.
func (c *Client) ReadPump() {
	defer func() {
		c.Hub.Unregister <- c
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				slog.Warn("websocket read error", "tag", "ws", "err", err)
			}
			break
		}

		c.handleMessage(message)
	}
}

// WritePump pumps messages from the send channel to the websocket connection.
// It runs in its own goroutine per connection.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel.
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.Conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) handleMessage(data []byte) {
	var envelope InboundEnvelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		c.sendError("Invalid message format.")
		return
	}

	switch envelope.Type {
	case MsgAuth:
		c.handleAuth(envelope.Raw)
	case MsgSetName:
		c.handleSetName(envelope.Raw)
	case MsgNewRun:
		c.handleNewRun()
	case MsgMove:
		c.handleMove(envelope.Raw)
	case MsgDiscard:
		c.handleDiscard(envelope.Raw)
	case MsgHint:
		c.submit(lobby.Action{Type: lobby.ActionHint})
	case MsgState:
		c.submit(lobby.Action{Type: lobby.ActionState})
	case MsgAbandon:
		c.submit(lobby.Action{Type: lobby.ActionAbandon})
	default:
		c.sendError("Unknown message type: " + envelope.Type)
	}
}

func (c *Client) handleAuth(raw json.RawMessage) {
	var msg AuthMsg
	if err := json.Unmarshal(raw, &msg); err != nil || msg.Token == "" {
		c.sendError("Invalid auth message.")
		return
	}
	if c.inRun() {
		c.sendError("Cannot authenticate during a run.")
		return
	}
	if c.Hub.Auth == nil {
		c.sendError("Server auth not configured.")
		return
	}
	claims, err := c.Hub.Auth.Validate(msg.Token)
	if err != nil {
		if errors.Is(err, runerrors.ErrAuthNotConfigured) {
			c.sendError("Server auth not configured.")
		} else {
			slog.Debug("token rejected", "tag", "ws", "err", err)
			c.sendError("Invalid or expired token.")
		}
		return
	}
	c.UserID = auth.UserIDFromClaims(claims)
	if c.Name == defaultName {
		c.Name = auth.NameFromClaims(claims)
	}
	c.sendJSON(AuthenticatedMsg{Type: "authenticated", UserID: c.UserID, Name: c.Name})
}

func (c *Client) handleSetName(raw json.RawMessage) {
	var msg SetNameMsg
	if err := json.Unmarshal(raw, &msg); err != nil {
		c.sendError("Invalid set_name message.")
		return
	}

	name := strings.TrimSpace(msg.Name)
	if n := utf8.RuneCountInString(name); n < 1 || n > c.Hub.Config.MaxNameLength {
		c.sendError(fmt.Sprintf("Name must be between 1 and %d characters.", c.Hub.Config.MaxNameLength))
		return
	}
	if c.inRun() {
		c.sendError("Cannot change name during a run.")
		return
	}

	c.Name = name
	c.sendJSON(NameSetMsg{Type: "name_set", Name: name})
}

func (c *Client) handleNewRun() {
	if c.inRun() {
		c.sendError("A run is already in progress.")
		return
	}
	c.Table = c.Hub.Lobby.NewRun(&lobby.Player{UserID: c.UserID, Name: c.Name, Send: c.Send})
}

func (c *Client) handleMove(raw json.RawMessage) {
	var msg MoveMsg
	if err := json.Unmarshal(raw, &msg); err != nil {
		c.sendError("Invalid move message.")
		return
	}
	c.submit(lobby.Action{Type: lobby.ActionMove, From: msg.From, To: msg.To})
}

func (c *Client) handleDiscard(raw json.RawMessage) {
	var msg DiscardMsg
	if err := json.Unmarshal(raw, &msg); err != nil {
		c.sendError("Invalid discard message.")
		return
	}
	c.submit(lobby.Action{Type: lobby.ActionDiscard, From: msg.Slot})
}

// inRun reports whether the client's current run is still going.
func (c *Client) inRun() bool {
	return c.Table != nil && !c.Table.Over()
}

func (c *Client) submit(a lobby.Action) {
	if c.Table == nil {
		c.sendError("You are not in a run.")
		return
	}
	if err := c.Table.Submit(a); err != nil {
		if errors.Is(err, runerrors.ErrRunFinished) {
			c.sendError("The run is over.")
			return
		}
		c.sendError(err.Error())
	}
}

func (c *Client) sendJSON(msg any) {
	data, err := json.Marshal(msg)
	if err != nil {
		slog.Error("marshal message", "tag", "ws", "err", err)
		return
	}
	wsutil.SafeSend(c.Send, data)
}

func (c *Client) sendError(message string) {
	c.sendJSON(ErrorMsg{Type: "error", Message: message})
}
