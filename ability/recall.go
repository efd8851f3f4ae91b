package ability

import "card-crawl-server/game"

// ExchangeAbility swaps a dungeon card for the nearest ability card in the deck.
type ExchangeAbility struct{}

func (a *ExchangeAbility) Tag() game.Ability   { return game.Exchange }
func (a *ExchangeAbility) Name() string        { return "Exchange" }
func (a *ExchangeAbility) Description() string { return "Return a dungeon card to the deck and draw an ability in its place." }

func (a *ExchangeAbility) CanTarget(s *game.Session, m game.Move) bool { return onDungeonCard(s, m) }

func (a *ExchangeAbility) Apply(r *game.Resolver, m game.Move) {
	r.Recall(m.Target)
	r.DealKind(m.Target, game.KindAbility)
}

// StealAbility draws the next deck card straight into the backpack.
type StealAbility struct{}

func (a *StealAbility) Tag() game.Ability   { return game.Steal }
func (a *StealAbility) Name() string        { return "Steal" }
func (a *StealAbility) Description() string { return "Put the next card of the deck into your backpack." }

func (a *StealAbility) CanTarget(s *game.Session, m game.Move) bool {
	return onHero(s, m) && s.DeckSize() > 0 && s.Status(game.Backpack) == game.Empty
}

func (a *StealAbility) Apply(r *game.Resolver, m game.Move) {
	r.Deal(game.Backpack)
}

// DiggerAbility brings cards back from the graveyard.
type DiggerAbility struct {
	MaxCards int
}

func (a *DiggerAbility) Tag() game.Ability   { return game.Digger }
func (a *DiggerAbility) Name() string        { return "Digger" }
func (a *DiggerAbility) Description() string { return "Restore a few random cards from the graveyard." }

func (a *DiggerAbility) CanTarget(s *game.Session, m game.Move) bool { return onHero(s, m) }

func (a *DiggerAbility) Apply(r *game.Resolver, m game.Move) {
	for n := 0; n < a.MaxCards && r.GraveyardSize() > 0; n++ {
		c := r.Exhume(r.Rand().Intn(r.GraveyardSize()))
		r.Summon(firstEmptyDungeon(r), c, false)
	}
}

// MirrorAbility adds a fresh copy of a card to the dungeon.
type MirrorAbility struct{}

func (a *MirrorAbility) Tag() game.Ability   { return game.Mirror }
func (a *MirrorAbility) Name() string        { return "Mirror" }
func (a *MirrorAbility) Description() string { return "Summon an unwounded copy of a card." }

func (a *MirrorAbility) CanTarget(s *game.Session, m game.Move) bool { return onNonHero(s, m) }

func (a *MirrorAbility) Apply(r *game.Resolver, m game.Move) {
	c := r.Card(m.Target).Clone()
	if c.Wounded() {
		c.InitialValue = c.Value
	}
	r.Summon(firstEmptyDungeon(r), c, true)
}
