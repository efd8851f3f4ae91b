package ability

import "card-crawl-server/game"

// ReflectAbility turns the next monster attack on the hero back onto the dungeon.
type ReflectAbility struct{}

func (a *ReflectAbility) Tag() game.Ability   { return game.Reflect }
func (a *ReflectAbility) Name() string        { return "Reflect" }
func (a *ReflectAbility) Description() string { return "The next attack on the hero hits a random monster instead." }

func (a *ReflectAbility) CanTarget(s *game.Session, m game.Move) bool { return onHero(s, m) }

func (a *ReflectAbility) Apply(r *game.Resolver, m game.Move) {
	r.SetReflect()
}

// ReviveAbility brings the hero back once at 1 health.
type ReviveAbility struct{}

func (a *ReviveAbility) Tag() game.Ability   { return game.Revive }
func (a *ReviveAbility) Name() string        { return "Revive" }
func (a *ReviveAbility) Description() string { return "The hero survives a killing blow with 1 health." }

func (a *ReviveAbility) CanTarget(s *game.Session, m game.Move) bool { return onHero(s, m) }

func (a *ReviveAbility) Apply(r *game.Resolver, m game.Move) {
	r.SetRevive()
}

// LifeAbility heals past the maximum, raising it.
type LifeAbility struct{}

func (a *LifeAbility) Tag() game.Ability   { return game.Life }
func (a *LifeAbility) Name() string        { return "Life" }
func (a *LifeAbility) Description() string { return "Heal the hero, even past full health." }

func (a *LifeAbility) CanTarget(s *game.Session, m game.Move) bool { return onHero(s, m) }

func (a *LifeAbility) Apply(r *game.Resolver, m game.Move) {
	r.RaiseHero(m.Value())
}
