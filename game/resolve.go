package game

import "fmt"

// ApplyMove drops the card at src on dst and runs the turn controller.
// Rejected moves return ErrIllegalMove and leave the session unchanged.
func (s *Session) ApplyMove(src, dst Slot) (EffectLog, error) {
	if s.Over() {
		return nil, ErrGameOver
	}
	if !s.CanReceive(src, dst) {
		return nil, fmt.Errorf("%w: %s to %s", ErrIllegalMove, src, dst)
	}
	s.phase = Resolving
	r := &Resolver{s: s}
	r.resolveMove(src, dst)
	s.processMove(r)
	return r.log, nil
}

// ApplyDiscard throws away the card at slot. Weapons, shields and potions
// are sold for their value.
func (s *Session) ApplyDiscard(slot Slot) (EffectLog, error) {
	if s.Over() {
		return nil, ErrGameOver
	}
	if !s.CanDiscard(slot) {
		return nil, fmt.Errorf("%w: discard %s", ErrIllegalMove, slot)
	}
	s.phase = Resolving
	r := &Resolver{s: s}
	c, _ := s.board.take(slot)
	s.bury(c)
	r.emit(Effect{Type: EffectCardDiscarded, Slot: slot, Card: c})
	switch c.Kind {
	case KindWeapon, KindShield, KindPotion:
		r.AddCoins(c.Value)
	}
	s.processMove(r)
	return r.log, nil
}

func (r *Resolver) resolveMove(src, dst Slot) {
	s := r.s
	c := s.board.card(src)
	target := s.board.card(dst)

	switch c.Kind {
	case KindMonster:
		if target.Kind == KindHero {
			r.monsterAttack(src, c)
		} else {
			r.block(src, dst, c, target)
		}
	case KindWeapon:
		if target == nil {
			r.stow(src, dst)
			return
		}
		r.Strike(dst, c.Value)
		if c.Has(Frenzy) {
			r.Tag(src, NoAbility)
		} else {
			r.Destroy(src)
		}
	case KindShield:
		if target == nil {
			r.stow(src, dst)
			return
		}
		r.Strike(dst, c.Value)
		if wear := s.cfg.BashWear; c.Value > wear {
			r.SetValue(src, c.Value-wear)
		} else {
			r.Destroy(src)
		}
	case KindPotion:
		if target == nil {
			r.stow(src, dst)
			return
		}
		r.Strike(dst, c.Value)
		r.Destroy(src)
	case KindCoin:
		r.stow(src, dst)
	case KindAbility:
		if target == nil {
			r.stow(src, dst)
			return
		}
		r.useAbility(src, dst, c)
	}
}

// monsterAttack resolves a monster dropped on the hero. A pending reflection
// turns the blow onto a random active dungeon monster instead.
func (r *Resolver) monsterAttack(src Slot, c *Card) {
	s := r.s
	if s.pendingReflect {
		s.pendingReflect = false
		var targets []Slot
		for _, slot := range DungeonSlots {
			if t := s.board.card(slot); t != nil && t.Kind == KindMonster && s.board.status(slot) == Active {
				targets = append(targets, slot)
			}
		}
		if len(targets) == 0 {
			// No active monster in the row: the attacker takes its own blow.
			targets = append(targets, src)
		}
		r.Strike(targets[s.rng.Intn(len(targets))], c.Value)
		return
	}
	r.DamageHero(c.Value)
	r.Destroy(src)
}

// block resolves a monster dropped on an equipped shield.
func (r *Resolver) block(src, dst Slot, c, shield *Card) {
	switch {
	case shield.Value > c.Value:
		r.SetValue(dst, shield.Value-c.Value)
	case shield.Value == c.Value:
		r.Destroy(dst)
	default:
		over := c.Value - shield.Value
		r.Destroy(dst)
		r.DamageHero(over)
	}
	r.Destroy(src)
}

// stow moves a card onto an empty slot and uses it if it is a potion in a
// hand or a coin.
func (r *Resolver) stow(src, dst Slot) {
	c := r.s.board.card(src)
	r.s.board.move(src, dst)
	r.emit(Effect{Type: EffectCardMoved, From: src, Slot: dst, Card: c})
	r.consume(dst)
}

// useAbility consumes the ability card, then resolves its effect.
func (r *Resolver) useAbility(src, dst Slot, c *Card) {
	def, ok := r.s.abilities.GetAbility(c.Ability)
	if !ok {
		panic("game: no definition for ability " + c.Ability.String())
	}
	r.Destroy(src)
	def.Apply(r, Move{Source: src, Target: dst, Card: c})
}
