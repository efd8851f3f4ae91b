package game

// CardView is the client-facing representation of a card.
type CardView struct {
	Kind         string `json:"kind"`
	Name         string `json:"name"`
	Value        int    `json:"value"`
	InitialValue int    `json:"initialValue"`
	Ability      string `json:"ability,omitempty"`
	Wounded      bool   `json:"wounded,omitempty"`
}

// SlotView is one board position. Card is nil for an empty slot.
type SlotView struct {
	Slot   string    `json:"slot"`
	Status string    `json:"status"`
	Active bool      `json:"active"`
	Card   *CardView `json:"card,omitempty"`
}

// Snapshot is a read-only copy of a session for re-rendering.
type Snapshot struct {
	Slots                  []SlotView `json:"slots"`
	Coins                  int        `json:"coins"`
	HeroHealth             int        `json:"heroHealth"`
	MaxHealth              int        `json:"maxHealth"`
	BonusMaxHealth         int        `json:"bonusMaxHealth"`
	DamageTakenThisTurn    int        `json:"damageTakenThisTurn"`
	BountyTargetsDelivered int        `json:"bountyTargetsDelivered"`
	PendingRevive          bool       `json:"pendingRevive"`
	PendingReflect         bool       `json:"pendingReflect"`
	DeckSize               int        `json:"deckSize"`
	GraveyardSize          int        `json:"graveyardSize"`
	Phase                  string     `json:"phase"`
	Moves                  int        `json:"moves"`
}

// EffectView is the client-facing representation of an Effect.
type EffectView struct {
	Type  string    `json:"type"`
	Slot  string    `json:"slot,omitempty"`
	From  string    `json:"from,omitempty"`
	Value int       `json:"value,omitempty"`
	Card  *CardView `json:"card,omitempty"`
	Won   *bool     `json:"won,omitempty"`
	Flag  string    `json:"flag,omitempty"`
}

// BuildCardView constructs the client-facing view of c, or nil.
func BuildCardView(c *Card) *CardView {
	if c == nil {
		return nil
	}
	return &CardView{
		Kind:         c.Kind.String(),
		Name:         c.Name(),
		Value:        c.Value,
		InitialValue: c.InitialValue,
		Ability:      c.Ability.String(),
		Wounded:      c.Wounded(),
	}
}

// Snapshot returns the current state of the session.
func (s *Session) Snapshot() Snapshot {
	slots := make([]SlotView, NumSlots)
	for i := range slots {
		slot := Slot(i)
		st := s.board.status(slot)
		slots[i] = SlotView{
			Slot:   slot.String(),
			Status: st.String(),
			Active: st == Active,
			Card:   BuildCardView(s.board.card(slot)),
		}
	}
	return Snapshot{
		Slots:                  slots,
		Coins:                  s.coins,
		HeroHealth:             s.HeroHealth(),
		MaxHealth:              s.MaxHealth(),
		BonusMaxHealth:         s.bonusMaxHealth,
		DamageTakenThisTurn:    s.damageTakenThisTurn,
		BountyTargetsDelivered: s.bountyTargetsDelivered,
		PendingRevive:          s.pendingRevive,
		PendingReflect:         s.pendingReflect,
		DeckSize:               s.deck.Size(),
		GraveyardSize:          len(s.graveyard),
		Phase:                  s.phase.String(),
		Moves:                  s.moves,
	}
}

// BuildEffectViews converts an EffectLog for the client.
func BuildEffectViews(log EffectLog) []EffectView {
	views := make([]EffectView, 0, len(log))
	for _, e := range log {
		v := EffectView{
			Type:  string(e.Type),
			Value: e.Value,
			Card:  BuildCardView(e.Card),
			Flag:  e.Flag,
		}
		if e.Slot.Valid() {
			v.Slot = e.Slot.String()
		}
		if e.Type == EffectCardMoved {
			v.From = e.From.String()
		}
		if e.Type == EffectGameOver {
			won := e.Won
			v.Won = &won
		}
		views = append(views, v)
	}
	return views
}
