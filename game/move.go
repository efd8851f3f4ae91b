package game

import "math/rand"

// Resolver applies the consequences of one move to a session and records
// them in an EffectLog. Ability definitions receive a Resolver in Apply.
type Resolver struct {
	s   *Session
	log EffectLog
}

func (r *Resolver) emit(e Effect) {
	if e.Card != nil {
		e.Card = e.Card.Clone()
	}
	r.log = append(r.log, e)
}

// Log returns the effects recorded so far.
func (r *Resolver) Log() EffectLog { return r.log }

// Session returns the session being resolved, for read access.
func (r *Resolver) Session() *Session { return r.s }

// Rand returns the session's random source.
func (r *Resolver) Rand() *rand.Rand { return r.s.rng }

// Card returns the live card at slot, or nil.
func (r *Resolver) Card(slot Slot) *Card { return r.s.board.card(slot) }

// Status returns the status of slot.
func (r *Resolver) Status(slot Slot) SlotStatus { return r.s.board.status(slot) }

// Hero returns the live hero card.
func (r *Resolver) Hero() *Card { return r.s.board.hero() }

// Strike hits the card at slot for amount: it keeps the difference when
// stronger, otherwise it is destroyed.
func (r *Resolver) Strike(slot Slot, amount int) {
	c := r.s.board.card(slot)
	if c == nil {
		panic("game: strike on empty slot " + slot.String())
	}
	if c.Value > amount {
		c.Value -= amount
		r.emit(Effect{Type: EffectCardSuffered, Slot: slot, Value: c.Value})
		return
	}
	r.Destroy(slot)
}

// Destroy moves the card at slot to the graveyard.
func (r *Resolver) Destroy(slot Slot) {
	c, _ := r.s.board.take(slot)
	if c == nil {
		return
	}
	r.s.bury(c)
	r.emit(Effect{Type: EffectCardDestroyed, Slot: slot, Card: c})
}

// Recall returns the card at slot to the bottom of the deck.
func (r *Resolver) Recall(slot Slot) {
	c, _ := r.s.board.take(slot)
	if c == nil {
		return
	}
	r.s.deck.Receive(c)
	r.emit(Effect{Type: EffectCardRecalled, Slot: slot, Card: c})
}

// Spend marks the card at slot as spent.
func (r *Resolver) Spend(slot Slot) {
	if r.s.board.card(slot) == nil {
		return
	}
	r.s.board.setStatus(slot, Spent)
	r.emit(Effect{Type: EffectCardSpent, Slot: slot})
}

// SetValue changes the value of the card at slot, reporting it as improved
// or suffered.
func (r *Resolver) SetValue(slot Slot, v int) {
	c := r.s.board.card(slot)
	if c == nil {
		return
	}
	if v < 0 {
		v = 0
	}
	t := EffectCardImproved
	if v < c.Value {
		t = EffectCardSuffered
	}
	c.Value = v
	tagBounty(c)
	r.emit(Effect{Type: t, Slot: slot, Value: v})
}

// Tag sets the tag carried by the card at slot.
func (r *Resolver) Tag(slot Slot, a Ability) {
	c := r.s.board.card(slot)
	if c == nil {
		return
	}
	c.Ability = a
	r.emit(Effect{Type: EffectCardTagged, Slot: slot, Card: c})
}

// Transform replaces the card at slot with c. Dungeon cards keep their
// status; in the hero row the new card is active and potions in a hand or
// coins in the hero row are used on arrival.
func (r *Resolver) Transform(slot Slot, c *Card) {
	st := Active
	if slot.IsDungeon() {
		st = r.s.board.status(slot)
	}
	r.s.board.put(slot, c, st)
	r.emit(Effect{Type: EffectCardTransformed, Slot: slot, Card: c})
	r.consume(slot)
}

// consume uses a potion or coin that has just arrived in the hero row.
func (r *Resolver) consume(slot Slot) {
	c := r.s.board.card(slot)
	if c == nil || r.s.board.status(slot) != Active {
		return
	}
	switch {
	case c.Kind == KindPotion && slot.IsHand():
		r.Spend(slot)
		r.HealHero(c.Value)
	case c.Kind == KindCoin && slot.IsHeroRow():
		r.Spend(slot)
		r.AddCoins(c.Value)
	}
}

// Summon places c in the empty slot, or at the bottom of the deck when slot
// is SlotNone or taken. Minted cards extend the conservation count.
func (r *Resolver) Summon(slot Slot, c *Card, minted bool) {
	if minted {
		r.s.minted++
	}
	if !slot.Valid() || r.s.board.card(slot) != nil {
		r.s.deck.Receive(c)
		r.emit(Effect{Type: EffectCardSummoned, Slot: SlotNone, Card: c})
		return
	}
	r.s.board.put(slot, c, Active)
	r.emit(Effect{Type: EffectCardSummoned, Slot: slot, Card: c})
}

// Deal moves the next deck card into the empty slot. Coins dealt into the
// hero row are collected at once. It reports whether a card was dealt.
func (r *Resolver) Deal(slot Slot) bool {
	return r.place(slot, r.s.deck.Deal())
}

// DealKind moves the nearest deck card of the given kind into the empty slot.
func (r *Resolver) DealKind(slot Slot, kind Kind) bool {
	return r.place(slot, r.s.deck.DealKind(kind))
}

func (r *Resolver) place(slot Slot, c *Card) bool {
	if c == nil {
		return false
	}
	r.s.board.put(slot, c, Active)
	r.emit(Effect{Type: EffectDealt, Slot: slot, Card: c})
	r.consume(slot)
	return true
}

// DamageHero takes amount off the hero, never below zero.
func (r *Resolver) DamageHero(amount int) {
	if amount <= 0 {
		return
	}
	s := r.s
	if !s.damagedThisCycle {
		s.damageTakenThisTurn = 0
		s.damagedThisCycle = true
	}
	s.damageTakenThisTurn += amount
	hero := s.board.hero()
	hero.Value -= amount
	if hero.Value < 0 {
		hero.Value = 0
	}
	r.emit(Effect{Type: EffectHeroDamaged, Slot: Hero, Value: amount})
}

// HealHero adds up to amount to the hero, capped at its maximum health.
func (r *Resolver) HealHero(amount int) {
	hero := r.s.board.hero()
	gain := amount
	if room := r.s.MaxHealth() - hero.Value; gain > room {
		gain = room
	}
	if gain <= 0 {
		return
	}
	hero.Value += gain
	r.emit(Effect{Type: EffectHeroHealed, Slot: Hero, Value: gain})
}

// RaiseHero adds amount to the hero, lifting its maximum health when needed.
func (r *Resolver) RaiseHero(amount int) {
	if amount <= 0 {
		return
	}
	hero := r.s.board.hero()
	hero.Value += amount
	if over := hero.Value - HeroMax; over > r.s.bonusMaxHealth {
		r.s.bonusMaxHealth = over
	}
	r.emit(Effect{Type: EffectHeroHealed, Slot: Hero, Value: amount})
}

// AddCoins changes the purse by delta, never below zero.
func (r *Resolver) AddCoins(delta int) {
	if r.s.coins+delta < 0 {
		delta = -r.s.coins
	}
	if delta == 0 {
		return
	}
	r.s.coins += delta
	r.emit(Effect{Type: EffectCoinsChanged, Slot: SlotNone, Value: delta})
}

// SetRevive arms the one-shot revive.
func (r *Resolver) SetRevive() {
	r.s.pendingRevive = true
	r.emit(Effect{Type: EffectFlagSet, Slot: Hero, Flag: FlagRevive})
}

// SetReflect arms the one-shot damage reflection.
func (r *Resolver) SetReflect() {
	r.s.pendingReflect = true
	r.emit(Effect{Type: EffectFlagSet, Slot: Hero, Flag: FlagReflect})
}

// GraveyardSize returns the number of destroyed cards.
func (r *Resolver) GraveyardSize() int { return len(r.s.graveyard) }

// Exhume removes and returns the graveyard card at index i, restored to the
// state it was created in.
func (r *Resolver) Exhume(i int) *Card {
	g := r.s.graveyard
	c := g[i]
	r.s.graveyard = append(g[:i], g[i+1:]...)
	c.restore()
	return c
}

// DeckSize returns the number of cards left in the deck.
func (r *Resolver) DeckSize() int { return r.s.deck.Size() }

// BuryDeck moves every deck card to the graveyard.
func (r *Resolver) BuryDeck() {
	for _, c := range r.s.deck.drain() {
		r.s.bury(c)
		r.emit(Effect{Type: EffectCardDestroyed, Slot: SlotNone, Card: c})
	}
}

// RandomAbility returns a new ability card drawn from the session's abilities.
func (r *Resolver) RandomAbility() *Card {
	pool := r.s.abilityPool()
	if len(pool) == 0 {
		return NewAbilityCard(Sap)
	}
	return NewAbilityCard(pool[r.s.rng.Intn(len(pool))])
}

// RandomCard returns a new random card of any kind other than exclude and
// the hero: a monster, a weapon or shield valued 2..7, a potion or coin
// valued 2..10, or an ability from the session's pool. Monsters are left
// out when noMonster is set.
func (r *Resolver) RandomCard(exclude Kind, noMonster bool) *Card {
	kinds := make([]Kind, 0, 6)
	for _, k := range []Kind{KindMonster, KindWeapon, KindShield, KindPotion, KindCoin, KindAbility} {
		if k == exclude || (k == KindMonster && noMonster) {
			continue
		}
		kinds = append(kinds, k)
	}
	rng := r.s.rng
	switch k := kinds[rng.Intn(len(kinds))]; k {
	case KindMonster:
		return NewMonster(2 + rng.Intn(9))
	case KindWeapon, KindShield:
		return NewItem(k, 2+rng.Intn(6))
	case KindAbility:
		return r.RandomAbility()
	default:
		return NewItem(k, 2+rng.Intn(9))
	}
}
