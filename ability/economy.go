package ability

import "card-crawl-server/game"

// TradeAbility sells any item, coin or ability card for a fixed price.
type TradeAbility struct {
	Price int
}

func (a *TradeAbility) Tag() game.Ability   { return game.Trade }
func (a *TradeAbility) Name() string        { return "Trade" }
func (a *TradeAbility) Description() string { return "Sell a card that is not a monster for a fixed price." }

func (a *TradeAbility) CanTarget(s *game.Session, m game.Move) bool {
	k, ok := s.Kind(m.Target)
	return ok && k != game.KindHero && k != game.KindMonster
}

func (a *TradeAbility) Apply(r *game.Resolver, m game.Move) {
	r.AddCoins(a.Price)
	r.Destroy(m.Target)
}

// BribeAbility pays a monster's value in coins to get rid of it.
type BribeAbility struct{}

func (a *BribeAbility) Tag() game.Ability   { return game.Bribe }
func (a *BribeAbility) Name() string        { return "Bribe" }
func (a *BribeAbility) Description() string { return "Pay a monster its value in coins to make it leave." }

func (a *BribeAbility) CanTarget(s *game.Session, m game.Move) bool {
	return onDungeonMonster(s, m) && s.Coins() >= valueAt(s, m.Target)
}

func (a *BribeAbility) Apply(r *game.Resolver, m game.Move) {
	r.AddCoins(-r.Card(m.Target).Value)
	r.Destroy(m.Target)
}

// BleedAbility turns the damage taken since the last refill into coins.
type BleedAbility struct{}

func (a *BleedAbility) Tag() game.Ability   { return game.Bleed }
func (a *BleedAbility) Name() string        { return "Bleed" }
func (a *BleedAbility) Description() string { return "Gain a coin for every point of damage taken this turn." }

func (a *BleedAbility) CanTarget(s *game.Session, m game.Move) bool { return onHero(s, m) }

func (a *BleedAbility) Apply(r *game.Resolver, m game.Move) {
	r.AddCoins(r.Session().DamageTakenThisTurn())
}

// BountyAbility pays out for every bounty target destroyed so far.
type BountyAbility struct{}

func (a *BountyAbility) Tag() game.Ability   { return game.Bounty }
func (a *BountyAbility) Name() string        { return "Bounty" }
func (a *BountyAbility) Description() string { return "Gain coins for every bounty target defeated." }

func (a *BountyAbility) CanTarget(s *game.Session, m game.Move) bool { return onHero(s, m) }

func (a *BountyAbility) Apply(r *game.Resolver, m game.Move) {
	r.AddCoins(r.Session().BountyTargetsDelivered() * m.Value())
}

// MidasAbility turns a card into coins.
type MidasAbility struct{}

func (a *MidasAbility) Tag() game.Ability   { return game.Midas }
func (a *MidasAbility) Name() string        { return "Midas" }
func (a *MidasAbility) Description() string { return "Turn a card into a coin. Monsters are worth half, abilities double." }

func (a *MidasAbility) CanTarget(s *game.Session, m game.Move) bool {
	return onNonHero(s, m) && valueAt(s, m.Target) > 0
}

func (a *MidasAbility) Apply(r *game.Resolver, m game.Move) {
	c := r.Card(m.Target)
	v := c.Value
	switch c.Kind {
	case game.KindMonster:
		v /= 2
	case game.KindAbility:
		v *= 2
	}
	r.Transform(m.Target, game.NewItem(game.KindCoin, v))
}
