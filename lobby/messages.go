package lobby

import "card-crawl-server/game"

// Server-to-client message types sent by a table.
const (
	MsgRunStarted = "run_started"
	MsgRunState   = "run_state"
	MsgEffects    = "effects"
	MsgHint       = "hint"
	MsgRunOver    = "run_over"
	MsgError      = "error"
)

// RunStartedMsg announces a new run.
type RunStartedMsg struct {
	Type  string `json:"type"`
	RunID string `json:"runId"`
	Seed  int64  `json:"seed"`
}

// RunStateMsg carries the full board after every action.
type RunStateMsg struct {
	Type  string        `json:"type"`
	RunID string        `json:"runId"`
	State game.Snapshot `json:"state"`
}

// EffectsMsg carries the ordered effects of one action for animation.
type EffectsMsg struct {
	Type    string            `json:"type"`
	RunID   string            `json:"runId"`
	Effects []game.EffectView `json:"effects"`
}

// HintMsg suggests the next action. To is empty for a discard.
type HintMsg struct {
	Type    string `json:"type"`
	From    string `json:"from,omitempty"`
	To      string `json:"to,omitempty"`
	Discard bool   `json:"discard,omitempty"`
	Reason  string `json:"reason,omitempty"`
	None    bool   `json:"none,omitempty"`
}

// RunOverMsg is sent once when the run ends.
type RunOverMsg struct {
	Type       string `json:"type"`
	RunID      string `json:"runId"`
	Won        bool   `json:"won"`
	Reason     string `json:"reason"`
	Score      int    `json:"score"`
	Coins      int    `json:"coins"`
	HeroHealth int    `json:"heroHealth"`
	Moves      int    `json:"moves"`
}

// ErrorMsg reports a rejected action.
type ErrorMsg struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}
