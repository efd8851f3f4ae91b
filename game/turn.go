package game

// processMove runs after every resolved move: it revives or buries the
// hero, detects victory, and refills the dungeon row once three of its
// four slots are empty or spent.
func (s *Session) processMove(r *Resolver) {
	s.moves++
	hero := s.board.hero()
	if hero.Value <= 0 {
		if !s.pendingRevive {
			s.phase = Lost
			r.emit(Effect{Type: EffectGameOver, Slot: SlotNone, Won: false})
			return
		}
		s.pendingRevive = false
		hero.Value = 1
		r.emit(Effect{Type: EffectHeroRevived, Slot: Hero, Value: 1})
	}

	if s.deck.Size() == 0 && !s.dungeonActive() {
		s.phase = Won
		r.emit(Effect{Type: EffectGameOver, Slot: SlotNone, Won: true})
		return
	}

	cleared := 0
	for _, slot := range DungeonSlots {
		if s.board.cleared(slot) {
			cleared++
		}
	}
	if cleared >= 3 {
		s.dealTopRow(r)
	}
	s.phase = AwaitingMove
}

func (s *Session) dungeonActive() bool {
	for _, slot := range DungeonSlots {
		if s.board.status(slot) == Active {
			return true
		}
	}
	return false
}

// dealTopRow drops spent hero-row cards to the graveyard and deals into
// every empty dungeon slot while the deck lasts. Spent dungeon cards stay. The per-turn damage counter is reset
// unless damage was taken since the previous refill.
func (s *Session) dealTopRow(r *Resolver) {
	s.phase = Dealing
	for _, slot := range HeroRow {
		s.drop(r, slot)
	}
	for _, slot := range DungeonSlots {
		if s.board.card(slot) == nil {
			r.Deal(slot)
		}
	}
	if !s.damagedThisCycle {
		s.damageTakenThisTurn = 0
	}
	s.damagedThisCycle = false
}

func (s *Session) drop(r *Resolver, slot Slot) {
	if slot == Hero || s.board.status(slot) != Spent {
		return
	}
	c, _ := s.board.take(slot)
	s.bury(c)
	r.emit(Effect{Type: EffectCardDropped, Slot: slot, Card: c})
}
