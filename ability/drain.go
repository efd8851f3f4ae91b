package ability

import "card-crawl-server/game"

// LeechAbility drains a monster and heals the hero by the same amount.
type LeechAbility struct{}

func (a *LeechAbility) Tag() game.Ability   { return game.Leech }
func (a *LeechAbility) Name() string        { return "Leech" }
func (a *LeechAbility) Description() string { return "Drain a monster and heal by the amount drained." }

func (a *LeechAbility) CanTarget(s *game.Session, m game.Move) bool { return onDungeonMonster(s, m) }

func (a *LeechAbility) Apply(r *game.Resolver, m game.Move) {
	n := min(m.Value(), r.Card(m.Target).Value)
	r.Strike(m.Target, n)
	r.HealHero(n)
}

// SacrificeAbility strikes a monster with the hero's missing health.
type SacrificeAbility struct{}

func (a *SacrificeAbility) Tag() game.Ability   { return game.Sacrifice }
func (a *SacrificeAbility) Name() string        { return "Sacrifice" }
func (a *SacrificeAbility) Description() string { return "Strike a monster for every point of health the hero is missing." }

func (a *SacrificeAbility) CanTarget(s *game.Session, m game.Move) bool { return onDungeonMonster(s, m) }

func (a *SacrificeAbility) Apply(r *game.Resolver, m game.Move) {
	s := r.Session()
	if missing := s.MaxHealth() - s.HeroHealth(); missing > 0 {
		r.Strike(m.Target, missing)
	}
}

// BloodpactAbility makes the hero and a monster trade values.
type BloodpactAbility struct{}

func (a *BloodpactAbility) Tag() game.Ability   { return game.Bloodpact }
func (a *BloodpactAbility) Name() string        { return "Bloodpact" }
func (a *BloodpactAbility) Description() string { return "Exchange health with a monster." }

func (a *BloodpactAbility) CanTarget(s *game.Session, m game.Move) bool { return onDungeonMonster(s, m) }

func (a *BloodpactAbility) Apply(r *game.Resolver, m game.Move) {
	hero := r.Hero().Value
	mob := r.Card(m.Target).Value
	r.SetValue(m.Target, hero)
	if mob >= hero {
		r.HealHero(mob - hero)
	} else {
		r.DamageHero(hero - mob)
	}
}

// LashAbility whips up to MaxTargets monsters from one end of the row.
type LashAbility struct {
	MaxTargets int
}

func (a *LashAbility) Tag() game.Ability   { return game.Lash }
func (a *LashAbility) Name() string        { return "Lash" }
func (a *LashAbility) Description() string { return "Strike a few monsters starting from one end of the dungeon row." }

func (a *LashAbility) CanTarget(s *game.Session, m game.Move) bool { return onHero(s, m) }

func (a *LashAbility) Apply(r *game.Resolver, m game.Move) {
	limit := 1
	if a.MaxTargets > 1 {
		limit += r.Rand().Intn(a.MaxTargets)
	}
	slots := game.DungeonSlots
	if r.Rand().Intn(2) == 0 {
		slots[0], slots[1], slots[2], slots[3] = slots[3], slots[2], slots[1], slots[0]
	}
	for _, slot := range slots {
		if limit == 0 {
			return
		}
		if c := r.Card(slot); c != nil && c.Kind == game.KindMonster && r.Status(slot) == game.Active {
			r.Strike(slot, m.Value())
			limit--
		}
	}
}

// BetrayalAbility turns a monster against its neighbours.
type BetrayalAbility struct{}

func (a *BetrayalAbility) Tag() game.Ability   { return game.Betrayal }
func (a *BetrayalAbility) Name() string        { return "Betrayal" }
func (a *BetrayalAbility) Description() string { return "A monster strikes the cards next to it." }

func (a *BetrayalAbility) CanTarget(s *game.Session, m game.Move) bool { return onDungeonMonster(s, m) }

func (a *BetrayalAbility) Apply(r *game.Resolver, m game.Move) {
	v := r.Card(m.Target).Value
	if v == 0 {
		return
	}
	for _, slot := range m.Target.Neighbours() {
		if c := r.Card(slot); c != nil && c.Kind != game.KindAbility && r.Status(slot) == game.Active {
			r.Strike(slot, v)
		}
	}
}

// FeastAbility lets a monster devour the monsters next to it.
type FeastAbility struct{}

func (a *FeastAbility) Tag() game.Ability   { return game.Feast }
func (a *FeastAbility) Name() string        { return "Feast" }
func (a *FeastAbility) Description() string { return "A monster eats its neighbouring monsters and grows by their value." }

func (a *FeastAbility) CanTarget(s *game.Session, m game.Move) bool { return onDungeonMonster(s, m) }

func (a *FeastAbility) Apply(r *game.Resolver, m game.Move) {
	gained := 0
	for _, slot := range m.Target.Neighbours() {
		if c := r.Card(slot); c != nil && c.Kind == game.KindMonster && r.Status(slot) == game.Active {
			gained += c.Value
			r.Destroy(slot)
		}
	}
	if gained > 0 {
		r.SetValue(m.Target, r.Card(m.Target).Value+gained)
	}
}

// StabAbility clears the dungeon row and fills it with fresh monsters.
type StabAbility struct{}

func (a *StabAbility) Tag() game.Ability   { return game.Stab }
func (a *StabAbility) Name() string        { return "Stab" }
func (a *StabAbility) Description() string { return "Destroy the dungeon row and summon a new monster in every slot." }

func (a *StabAbility) CanTarget(s *game.Session, m game.Move) bool { return onHero(s, m) }

func (a *StabAbility) Apply(r *game.Resolver, m game.Move) {
	for _, slot := range game.DungeonSlots {
		r.Destroy(slot)
		r.Summon(slot, game.NewMonster(2+r.Rand().Intn(9)), true)
	}
}
