package game

// EffectType names one observable consequence of a move.
type EffectType string

const (
	EffectCardDestroyed   EffectType = "card_destroyed"
	EffectCardSuffered    EffectType = "card_suffered"
	EffectCardImproved    EffectType = "card_improved"
	EffectCardTransformed EffectType = "card_transformed"
	EffectCoinsChanged    EffectType = "coins_changed"
	EffectHeroDamaged     EffectType = "hero_damaged"
	EffectHeroHealed      EffectType = "hero_healed"
	EffectDealt           EffectType = "dealt"
	EffectGameOver        EffectType = "game_over"

	EffectCardMoved     EffectType = "card_moved"
	EffectCardSpent     EffectType = "card_spent"
	EffectCardRecalled  EffectType = "card_recalled"
	EffectCardDiscarded EffectType = "card_discarded"
	EffectCardDropped   EffectType = "card_dropped"
	EffectCardSummoned  EffectType = "card_summoned"
	EffectCardTagged    EffectType = "card_tagged"
	EffectHeroRevived   EffectType = "hero_revived"
	EffectFlagSet       EffectType = "flag_set"
)

// Flag names carried by EffectFlagSet.
const (
	FlagRevive  = "revive"
	FlagReflect = "reflect"
)

// Effect is one entry of an EffectLog. Which fields are meaningful depends on Type:
// Slot for card effects, From for moves, Value for new values and amounts,
// Card for dealt or transformed cards, Won for game over.
type Effect struct {
	Type  EffectType
	Slot  Slot
	From  Slot
	Value int
	Card  *Card
	Won   bool
	Flag  string
}

// EffectLog is the ordered list of effects produced by one move.
type EffectLog []Effect

// Has reports whether the log contains an effect of type t.
func (l EffectLog) Has(t EffectType) bool {
	for _, e := range l {
		if e.Type == t {
			return true
		}
	}
	return false
}

// Count returns how many effects of type t the log contains.
func (l EffectLog) Count(t EffectType) int {
	n := 0
	for _, e := range l {
		if e.Type == t {
			n++
		}
	}
	return n
}

// GameOver returns the game-over effect, if any.
func (l EffectLog) GameOver() (Effect, bool) {
	for _, e := range l {
		if e.Type == EffectGameOver {
			return e, true
		}
	}
	return Effect{}, false
}
