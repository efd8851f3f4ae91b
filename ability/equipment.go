package ability

import "card-crawl-server/game"

// tagOtherHand tags the card of the given kind held in the hand opposite src.
func tagOtherHand(r *game.Resolver, src game.Slot, kind game.Kind, tag game.Ability) {
	other := src.OtherHand()
	if c := r.Card(other); c != nil && c.Kind == kind {
		r.Tag(other, tag)
	}
}

// BashAbility lets the shield in the other hand attack.
type BashAbility struct{}

func (a *BashAbility) Tag() game.Ability   { return game.Bash }
func (a *BashAbility) Name() string        { return "Bash" }
func (a *BashAbility) Description() string { return "The shield in your other hand can strike monsters." }

func (a *BashAbility) CanTarget(s *game.Session, m game.Move) bool { return onHero(s, m) }

func (a *BashAbility) Apply(r *game.Resolver, m game.Move) {
	tagOtherHand(r, m.Source, game.KindShield, game.Bash)
}

// FrenzyAbility lets the weapon in the other hand survive its next attack.
type FrenzyAbility struct{}

func (a *FrenzyAbility) Tag() game.Ability   { return game.Frenzy }
func (a *FrenzyAbility) Name() string        { return "Frenzy" }
func (a *FrenzyAbility) Description() string { return "The weapon in your other hand strikes twice." }

func (a *FrenzyAbility) CanTarget(s *game.Session, m game.Move) bool { return onHero(s, m) }

func (a *FrenzyAbility) Apply(r *game.Resolver, m game.Move) {
	tagOtherHand(r, m.Source, game.KindWeapon, game.Frenzy)
}

// PoisonAbility turns a potion into a thrown weapon.
type PoisonAbility struct{}

func (a *PoisonAbility) Tag() game.Ability   { return game.Poison }
func (a *PoisonAbility) Name() string        { return "Poison" }
func (a *PoisonAbility) Description() string { return "A potion can be thrown at a monster." }

func (a *PoisonAbility) CanTarget(s *game.Session, m game.Move) bool {
	k, ok := s.Kind(m.Target)
	return ok && k == game.KindPotion
}

func (a *PoisonAbility) Apply(r *game.Resolver, m game.Move) {
	r.Tag(m.Target, game.Poison)
}
