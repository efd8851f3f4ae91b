package game

// CanTouch reports whether the card at slot can be picked up.
func (s *Session) CanTouch(slot Slot) bool {
	if s.Over() || !slot.Valid() || slot == Hero {
		return false
	}
	c := s.board.card(slot)
	if c == nil || s.board.status(slot) == Spent {
		return false
	}
	switch c.Kind {
	case KindMonster, KindWeapon, KindAbility:
		return true
	case KindShield:
		return !slot.IsHand() || c.Has(Bash)
	case KindPotion, KindCoin:
		return true
	}
	return false
}

// CanReceive reports whether the card at src can be dropped on dst.
func (s *Session) CanReceive(src, dst Slot) bool {
	if src == dst || !dst.Valid() || !s.CanTouch(src) {
		return false
	}
	c := s.board.card(src)
	target := s.board.card(dst)

	switch c.Kind {
	case KindMonster:
		if target == nil {
			return false
		}
		return target.Kind == KindHero || (target.Kind == KindShield && dst.IsHand())
	case KindWeapon:
		if target != nil {
			return target.Kind == KindMonster && dst.IsDungeon() && src.IsHand()
		}
		return stowable(src, dst)
	case KindShield:
		if target != nil {
			return c.Has(Bash) && target.Kind == KindMonster && dst.IsDungeon() && src.IsHand()
		}
		return stowable(src, dst)
	case KindPotion:
		if target != nil {
			return c.Has(Poison) && !src.IsHand() && target.Kind == KindMonster && dst.IsDungeon()
		}
		return stowable(src, dst)
	case KindCoin:
		return target == nil && (dst.IsHand() || dst == Backpack)
	case KindAbility:
		if target == nil {
			return !src.IsHand() && stowable(src, dst)
		}
		if !src.IsHand() || s.board.status(dst) == Spent || s.abilities == nil {
			return false
		}
		def, ok := s.abilities.GetAbility(c.Ability)
		if !ok || def.CanTarget == nil || def.Apply == nil {
			return false
		}
		return def.CanTarget(s, Move{Source: src, Target: dst, Card: c.Clone()})
	}
	return false
}

// stowable reports whether an item may be packed or equipped from src into the empty dst.
func stowable(src, dst Slot) bool {
	if src.IsDungeon() && dst == Backpack {
		return true
	}
	return (src.IsDungeon() || src == Backpack) && dst.IsHand()
}

// CanDiscard reports whether the card at slot can be thrown away. Items and
// abilities go from a hand or the backpack; coins only from the dungeon row;
// monsters never.
func (s *Session) CanDiscard(slot Slot) bool {
	if !s.CanTouch(slot) {
		return false
	}
	switch s.board.card(slot).Kind {
	case KindWeapon, KindShield, KindPotion, KindAbility:
		return slot.IsHand() || slot == Backpack
	case KindCoin:
		return slot.IsDungeon()
	}
	return false
}
