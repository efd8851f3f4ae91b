package ability

import "card-crawl-server/game"

// PotionizeAbility turns an item or coin into a random potion.
type PotionizeAbility struct{}

func (a *PotionizeAbility) Tag() game.Ability   { return game.Potionize }
func (a *PotionizeAbility) Name() string        { return "Potionize" }
func (a *PotionizeAbility) Description() string { return "Turn an item or coin into a random potion." }

func (a *PotionizeAbility) CanTarget(s *game.Session, m game.Move) bool {
	k, ok := s.Kind(m.Target)
	return ok && k.IsItem()
}

func (a *PotionizeAbility) Apply(r *game.Resolver, m game.Move) {
	r.Transform(m.Target, game.NewItem(game.KindPotion, 2+r.Rand().Intn(9)))
}

// MorphAbility turns a card into a random card of another kind.
type MorphAbility struct{}

func (a *MorphAbility) Tag() game.Ability   { return game.Morph }
func (a *MorphAbility) Name() string        { return "Morph" }
func (a *MorphAbility) Description() string { return "Turn a card into a random card of another kind." }

func (a *MorphAbility) CanTarget(s *game.Session, m game.Move) bool { return onNonHero(s, m) }

func (a *MorphAbility) Apply(r *game.Resolver, m game.Move) {
	c := r.RandomCard(r.Card(m.Target).Kind, m.Target.IsHeroRow())
	r.Transform(m.Target, c)
}

// DevourAbility turns a card into a random ability card.
type DevourAbility struct{}

func (a *DevourAbility) Tag() game.Ability   { return game.Devour }
func (a *DevourAbility) Name() string        { return "Devour" }
func (a *DevourAbility) Description() string { return "Turn a card into a random ability." }

func (a *DevourAbility) CanTarget(s *game.Session, m game.Move) bool { return onNonHero(s, m) }

func (a *DevourAbility) Apply(r *game.Resolver, m game.Move) {
	r.Transform(m.Target, r.RandomAbility())
}

// FortifyAbility raises a card's value by the ability's value.
type FortifyAbility struct{}

func (a *FortifyAbility) Tag() game.Ability   { return game.Fortify }
func (a *FortifyAbility) Name() string        { return "Fortify" }
func (a *FortifyAbility) Description() string { return "Raise the value of a card." }

func (a *FortifyAbility) CanTarget(s *game.Session, m game.Move) bool {
	return onNonHero(s, m) && valueAt(s, m.Target) > 0
}

func (a *FortifyAbility) Apply(r *game.Resolver, m game.Move) {
	r.SetValue(m.Target, r.Card(m.Target).Value+m.Value())
}

// SwapAbility trades values between a dungeon card and a random neighbour.
type SwapAbility struct{}

func (a *SwapAbility) Tag() game.Ability   { return game.Swap }
func (a *SwapAbility) Name() string        { return "Swap" }
func (a *SwapAbility) Description() string { return "Swap values with a neighbouring card." }

func (a *SwapAbility) CanTarget(s *game.Session, m game.Move) bool {
	return onDungeonCard(s, m) && valueAt(s, m.Target) > 0
}

func (a *SwapAbility) Apply(r *game.Resolver, m game.Move) {
	n := m.Target.Neighbours()
	if len(n) == 2 && r.Rand().Intn(2) == 0 {
		n[0], n[1] = n[1], n[0]
	}
	for _, slot := range n {
		c := r.Card(slot)
		if c == nil || c.Value <= 0 {
			continue
		}
		mine, theirs := r.Card(m.Target).Value, c.Value
		r.SetValue(m.Target, theirs)
		r.SetValue(slot, mine)
		return
	}
}

// EqualizeAbility makes neighbouring cards copy a card's value.
type EqualizeAbility struct{}

func (a *EqualizeAbility) Tag() game.Ability   { return game.Equalize }
func (a *EqualizeAbility) Name() string        { return "Equalize" }
func (a *EqualizeAbility) Description() string { return "Neighbouring cards take on the value of this card." }

func (a *EqualizeAbility) CanTarget(s *game.Session, m game.Move) bool {
	return onDungeonCard(s, m) && valueAt(s, m.Target) > 0
}

func (a *EqualizeAbility) Apply(r *game.Resolver, m game.Move) {
	v := r.Card(m.Target).Value
	for _, slot := range m.Target.Neighbours() {
		if c := r.Card(slot); c != nil && c.Value > 0 {
			r.SetValue(slot, v)
		}
	}
}

// ChaosAbility shuffles values across the dungeon row.
type ChaosAbility struct{}

func (a *ChaosAbility) Tag() game.Ability   { return game.Chaos }
func (a *ChaosAbility) Name() string        { return "Chaos" }
func (a *ChaosAbility) Description() string { return "Shuffle the values of all dungeon cards." }

func (a *ChaosAbility) CanTarget(s *game.Session, m game.Move) bool {
	return onDungeonCard(s, m) && valueAt(s, m.Target) > 0
}

func (a *ChaosAbility) Apply(r *game.Resolver, m game.Move) {
	var slots []game.Slot
	var values []int
	for _, slot := range occupiedDungeon(r) {
		if v := r.Card(slot).Value; v > 0 {
			slots = append(slots, slot)
			values = append(values, v)
		}
	}
	for i, j := range r.Rand().Perm(len(slots)) {
		if values[j] != r.Card(slots[i]).Value {
			r.SetValue(slots[i], values[j])
		}
	}
}
