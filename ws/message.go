package ws

import (
	"encoding/json"

	"card-crawl-server/game"
)

// Client-to-server message types.
const (
	MsgAuth    = "auth"
	MsgSetName = "set_name"
	MsgNewRun  = "new_run"
	MsgMove    = "move"
	MsgDiscard = "discard"
	MsgHint    = "hint"
	MsgState   = "state"
	MsgAbandon = "abandon"
)

// InboundEnvelope is the generic envelope for all client-to-server messages.
// The Type field is used for routing; Raw holds the full JSON payload.
type InboundEnvelope struct {
	Type string          `json:"type"`
	Raw  json.RawMessage `json:"-"`
}

// UnmarshalJSON implements custom unmarshaling to capture the raw payload.
func (e *InboundEnvelope) UnmarshalJSON(data []byte) error {
	type typeOnly struct {
		Type string `json:"type"`
	}
	var t typeOnly
	if err := json.Unmarshal(data, &t); err != nil {
		return err
	}
	e.Type = t.Type
	e.Raw = json.RawMessage(data)
	return nil
}

// --- Client-to-Server message payloads ---

// AuthMsg carries a JWT from the auth provider.
type AuthMsg struct {
	Type  string `json:"type"`
	Token string `json:"token"`
}

// SetNameMsg is sent by the client to declare a display name.
type SetNameMsg struct {
	Type string `json:"type"`
	Name string `json:"name"`
}

// MoveMsg drops the card at From on To. Slots use protocol names ("top0", "hero", ...).
type MoveMsg struct {
	Type string    `json:"type"`
	From game.Slot `json:"from"`
	To   game.Slot `json:"to"`
}

// DiscardMsg throws away the card at Slot.
type DiscardMsg struct {
	Type string    `json:"type"`
	Slot game.Slot `json:"slot"`
}

// --- Server-to-Client messages ---

// ErrorMsg is sent when a client request is invalid.
type ErrorMsg struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// AuthenticatedMsg confirms a valid token.
type AuthenticatedMsg struct {
	Type   string `json:"type"`
	UserID string `json:"userId"`
	Name   string `json:"name"`
}

// NameSetMsg confirms a display name.
type NameSetMsg struct {
	Type string `json:"type"`
	Name string `json:"name"`
}
