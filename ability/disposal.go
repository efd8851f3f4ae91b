package ability

import "card-crawl-server/game"

// SapAbility sends a dungeon card back to the bottom of the deck.
type SapAbility struct{}

func (a *SapAbility) Tag() game.Ability   { return game.Sap }
func (a *SapAbility) Name() string        { return "Sap" }
func (a *SapAbility) Description() string { return "Return a dungeon card to the bottom of the deck." }

func (a *SapAbility) CanTarget(s *game.Session, m game.Move) bool { return onDungeonCard(s, m) }

func (a *SapAbility) Apply(r *game.Resolver, m game.Move) {
	r.Recall(m.Target)
}

// VanishAbility sends the whole dungeon row back to the bottom of the deck.
type VanishAbility struct{}

func (a *VanishAbility) Tag() game.Ability   { return game.Vanish }
func (a *VanishAbility) Name() string        { return "Vanish" }
func (a *VanishAbility) Description() string { return "Return every dungeon card to the bottom of the deck." }

func (a *VanishAbility) CanTarget(s *game.Session, m game.Move) bool { return onHero(s, m) }

func (a *VanishAbility) Apply(r *game.Resolver, m game.Move) {
	for _, slot := range occupiedDungeon(r) {
		r.Recall(slot)
	}
}

// KillerAbility finishes off a wounded monster.
type KillerAbility struct{}

func (a *KillerAbility) Tag() game.Ability   { return game.Killer }
func (a *KillerAbility) Name() string        { return "Killer" }
func (a *KillerAbility) Description() string { return "Destroy a wounded monster." }

func (a *KillerAbility) CanTarget(s *game.Session, m game.Move) bool {
	return onDungeonMonster(s, m) && s.Card(m.Target).Wounded()
}

func (a *KillerAbility) Apply(r *game.Resolver, m game.Move) {
	r.Destroy(m.Target)
}

// TrapAbility disables a dungeon card until the next refill.
type TrapAbility struct{}

func (a *TrapAbility) Tag() game.Ability   { return game.Trap }
func (a *TrapAbility) Name() string        { return "Trap" }
func (a *TrapAbility) Description() string { return "Disable a dungeon card." }

func (a *TrapAbility) CanTarget(s *game.Session, m game.Move) bool { return onDungeonCard(s, m) }

func (a *TrapAbility) Apply(r *game.Resolver, m game.Move) {
	r.Spend(m.Target)
}

// LuckyAbility destroys one or two random dungeon cards.
type LuckyAbility struct{}

func (a *LuckyAbility) Tag() game.Ability   { return game.Lucky }
func (a *LuckyAbility) Name() string        { return "Lucky" }
func (a *LuckyAbility) Description() string { return "Destroy two random dungeon cards, or one if unlucky." }

func (a *LuckyAbility) CanTarget(s *game.Session, m game.Move) bool { return onHero(s, m) }

func (a *LuckyAbility) Apply(r *game.Resolver, m game.Move) {
	n := 2
	if r.Rand().Intn(3) == 0 {
		n = 1
	}
	slots := occupiedDungeon(r)
	for _, i := range r.Rand().Perm(len(slots)) {
		if n == 0 {
			break
		}
		r.Destroy(slots[i])
		n--
	}
}

// DoomAbility wipes out the dungeon row at the cost of all but one health.
type DoomAbility struct{}

func (a *DoomAbility) Tag() game.Ability   { return game.Doom }
func (a *DoomAbility) Name() string        { return "Doom" }
func (a *DoomAbility) Description() string { return "Destroy every dungeon card. The hero drops to 1 health." }

func (a *DoomAbility) CanTarget(s *game.Session, m game.Move) bool { return onHero(s, m) }

func (a *DoomAbility) Apply(r *game.Resolver, m game.Move) {
	for _, slot := range occupiedDungeon(r) {
		r.Destroy(slot)
	}
	if h := r.Hero().Value; h > 1 {
		r.DamageHero(h - 1)
	}
}

// ChampionAbility ends the run: the deck and the dungeon row go to the graveyard.
type ChampionAbility struct{}

func (a *ChampionAbility) Tag() game.Ability   { return game.Champion }
func (a *ChampionAbility) Name() string        { return "Champion" }
func (a *ChampionAbility) Description() string { return "Send the deck and the dungeon row to the graveyard." }

func (a *ChampionAbility) CanTarget(s *game.Session, m game.Move) bool { return onHero(s, m) }

func (a *ChampionAbility) Apply(r *game.Resolver, m game.Move) {
	r.BuryDeck()
	for _, slot := range occupiedDungeon(r) {
		r.Destroy(slot)
	}
}
