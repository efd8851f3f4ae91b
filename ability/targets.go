package ability

import "card-crawl-server/game"

func onHero(s *game.Session, m game.Move) bool {
	k, ok := s.Kind(m.Target)
	return ok && k == game.KindHero
}

func onDungeonCard(s *game.Session, m game.Move) bool {
	_, ok := s.Kind(m.Target)
	return ok && m.Target.IsDungeon()
}

func onDungeonMonster(s *game.Session, m game.Move) bool {
	k, ok := s.Kind(m.Target)
	return ok && k == game.KindMonster && m.Target.IsDungeon()
}

func onNonHero(s *game.Session, m game.Move) bool {
	k, ok := s.Kind(m.Target)
	return ok && k != game.KindHero
}

// valueAt returns the value of the card at slot, or 0 for an empty slot.
func valueAt(s *game.Session, slot game.Slot) int {
	if c := s.Card(slot); c != nil {
		return c.Value
	}
	return 0
}

// firstEmptyDungeon returns the leftmost empty dungeon slot, or SlotNone.
func firstEmptyDungeon(r *game.Resolver) game.Slot {
	for _, slot := range game.DungeonSlots {
		if r.Card(slot) == nil {
			return slot
		}
	}
	return game.SlotNone
}

// occupiedDungeon returns the dungeon slots holding a card.
func occupiedDungeon(r *game.Resolver) []game.Slot {
	var slots []game.Slot
	for _, slot := range game.DungeonSlots {
		if r.Card(slot) != nil {
			slots = append(slots, slot)
		}
	}
	return slots
}
