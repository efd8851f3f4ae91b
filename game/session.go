package game

import (
	"math/rand"
	"time"

	"card-crawl-server/config"
)

// Phase is the turn controller state.
type Phase int

const (
	Dealing Phase = iota
	AwaitingMove
	Resolving
	Won
	Lost
)

// String returns the protocol string for a Phase.
func (p Phase) String() string {
	switch p {
	case Dealing:
		return "dealing"
	case AwaitingMove:
		return "awaiting_move"
	case Resolving:
		return "resolving"
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return "unknown"
	}
}

// Move is a proposed or resolving ability use. Card is the ability card being
// played; during resolution it has already left the board.
type Move struct {
	Source Slot
	Target Slot
	Card   *Card
}

// Value is the value of the ability card being played.
func (m Move) Value() int {
	if m.Card == nil {
		return 0
	}
	return m.Card.Value
}

// AbilityDef holds the definition of an ability as seen by the game package.
// CanTarget decides whether the ability may be played from m.Source onto the
// occupied slot m.Target; Apply resolves it.
type AbilityDef struct {
	Ability     Ability
	Name        string
	Description string
	CanTarget   func(s *Session, m Move) bool
	Apply       func(r *Resolver, m Move)
}

// AbilityProvider abstracts the ability registry so the game package
// does not import the ability package directly.
type AbilityProvider interface {
	GetAbility(a Ability) (AbilityDef, bool)
	AllAbilities() []AbilityDef
}

// Session is one run: the board, the deck, the graveyard and the counters.
// A Session is not safe for concurrent use.
type Session struct {
	cfg       *config.Config
	abilities AbilityProvider
	rng       *rand.Rand

	board     Board
	deck      *Deck
	graveyard []*Card

	coins                  int
	bonusMaxHealth         int
	damageTakenThisTurn    int
	damagedThisCycle       bool
	bountyTargetsDelivered int
	pendingRevive          bool
	pendingReflect         bool

	phase Phase
	moves int

	// total is the number of non-hero cards the run started with; minted
	// counts cards created later by abilities.
	total  int
	minted int
}

// NewSession generates a deck, places the hero and deals the first dungeon row.
func NewSession(cfg *config.Config, abilities AbilityProvider, rng *rand.Rand) *Session {
	s := newSession(cfg, abilities, rng)
	s.deck = GenerateDeck(s.rng, s.abilityPool(), s.cfg.ShuffleAttempts)
	s.total = s.deck.Size()
	s.board.put(Hero, NewHero(), Active)
	s.dealTopRow(&Resolver{s: s})
	s.phase = AwaitingMove
	return s
}

// Layout describes an arbitrary position to start a session from.
type Layout struct {
	// Slots holds the cards on the board; a nil Hero entry gets a fresh hero.
	Slots map[Slot]*Card
	// Spent lists occupied slots whose cards are already spent.
	Spent []Slot
	// Deck is dealt in order, Deck[0] first.
	Deck      []*Card
	Graveyard []*Card

	Coins                  int
	BonusMaxHealth         int
	DamageTakenThisTurn    int
	BountyTargetsDelivered int
	PendingRevive          bool
	PendingReflect         bool
}

// NewSessionFromLayout starts a session from a given position without dealing.
func NewSessionFromLayout(cfg *config.Config, abilities AbilityProvider, rng *rand.Rand, l Layout) *Session {
	s := newSession(cfg, abilities, rng)
	s.deck = NewDeck(l.Deck)
	for slot, c := range l.Slots {
		if slot.Valid() && c != nil {
			s.board.put(slot, c, Active)
		}
	}
	if s.board.hero() == nil {
		s.board.put(Hero, NewHero(), Active)
	}
	for _, slot := range l.Spent {
		s.board.setStatus(slot, Spent)
	}
	s.graveyard = append(s.graveyard, l.Graveyard...)
	s.coins = l.Coins
	s.bonusMaxHealth = l.BonusMaxHealth
	s.damageTakenThisTurn = l.DamageTakenThisTurn
	s.bountyTargetsDelivered = l.BountyTargetsDelivered
	s.pendingRevive = l.PendingRevive
	s.pendingReflect = l.PendingReflect
	s.total = s.deck.Size() + s.board.occupied() + len(s.graveyard)
	s.phase = AwaitingMove
	return s
}

func newSession(cfg *config.Config, abilities AbilityProvider, rng *rand.Rand) *Session {
	if cfg == nil {
		cfg = config.Defaults()
	}
	if rng == nil {
		rng = NewRand(cfg.Seed)
	}
	return &Session{cfg: cfg, abilities: abilities, rng: rng, phase: Dealing}
}

// NewRand returns a random source for a session; seed 0 seeds from the clock.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// abilityPool returns the tags that may appear in this session's deck.
func (s *Session) abilityPool() []Ability {
	if s.abilities == nil {
		return nil
	}
	defs := s.abilities.AllAbilities()
	pool := make([]Ability, 0, len(defs))
	for _, d := range defs {
		pool = append(pool, d.Ability)
	}
	return pool
}

// Card returns a copy of the card at slot, or nil.
func (s *Session) Card(slot Slot) *Card { return s.board.card(slot).Clone() }

// Status returns the status of slot.
func (s *Session) Status(slot Slot) SlotStatus { return s.board.status(slot) }

// Kind returns the kind of the card at slot and whether the slot is occupied.
func (s *Session) Kind(slot Slot) (Kind, bool) {
	c := s.board.card(slot)
	if c == nil {
		return 0, false
	}
	return c.Kind, true
}

// HeroHealth returns the hero's current value.
func (s *Session) HeroHealth() int { return s.board.hero().Value }

// MaxHealth returns the hero's current maximum health.
func (s *Session) MaxHealth() int { return HeroMax + s.bonusMaxHealth }

func (s *Session) Coins() int                  { return s.coins }
func (s *Session) BonusMaxHealth() int         { return s.bonusMaxHealth }
func (s *Session) DamageTakenThisTurn() int    { return s.damageTakenThisTurn }
func (s *Session) BountyTargetsDelivered() int { return s.bountyTargetsDelivered }
func (s *Session) PendingRevive() bool         { return s.pendingRevive }
func (s *Session) PendingReflect() bool        { return s.pendingReflect }
func (s *Session) DeckSize() int               { return s.deck.Size() }
func (s *Session) GraveyardSize() int          { return len(s.graveyard) }
func (s *Session) Phase() Phase                { return s.phase }
func (s *Session) Moves() int                  { return s.moves }

// Over reports whether the run has been won or lost.
func (s *Session) Over() bool { return s.phase == Won || s.phase == Lost }

// Accounted returns the number of non-hero cards in the deck, on the board and
// in the graveyard, and the number there should be.
func (s *Session) Accounted() (have, want int) {
	return s.deck.Size() + s.board.occupied() + len(s.graveyard), s.total + s.minted
}

// bury puts c in the graveyard, counting delivered bounty targets.
func (s *Session) bury(c *Card) {
	s.graveyard = append(s.graveyard, c)
	if c.Kind == KindMonster && c.Has(Bounty) {
		s.bountyTargetsDelivered++
	}
}
