package ability

import (
	"math/rand"
	"testing"

	"card-crawl-server/config"
	"card-crawl-server/game"
)

func newTestRegistry() *Registry {
	r := NewRegistry()
	RegisterAll(r, &config.Defaults().Abilities)
	return r
}

func newTestSession(l game.Layout) *game.Session {
	return newSeededSession(l, 1)
}

func newSeededSession(l game.Layout, seed int64) *game.Session {
	cfg := config.Defaults()
	cfg.Seed = seed
	return game.NewSessionFromLayout(cfg, newTestRegistry(), rand.New(rand.NewSource(seed)), l)
}

// full fills the dungeon slots not given in slots with weak monsters.
func full(slots map[game.Slot]*game.Card) map[game.Slot]*game.Card {
	for _, s := range game.DungeonSlots {
		if _, ok := slots[s]; !ok {
			slots[s] = game.NewMonster(2)
		}
	}
	return slots
}

func potions(n int) []*game.Card {
	cards := make([]*game.Card, n)
	for i := range cards {
		cards[i] = game.NewItem(game.KindPotion, 2)
	}
	return cards
}

func hero(v int) *game.Card {
	h := game.NewHero()
	h.Value = v
	return h
}

func play(t *testing.T, s *game.Session, src, dst game.Slot) game.EffectLog {
	t.Helper()
	log, err := s.ApplyMove(src, dst)
	if err != nil {
		t.Fatalf("play %s to %s: %v", src, dst, err)
	}
	return log
}

func checkConservation(t *testing.T, s *game.Session) {
	t.Helper()
	if have, want := s.Accounted(); have != want {
		t.Fatalf("card conservation broken: have %d, want %d", have, want)
	}
}

func TestRegistryRegisterAndGet(t *testing.T) {
	r := NewRegistry()
	r.Register(&TradeAbility{Price: 7})

	def, ok := r.GetAbility(game.Trade)
	if !ok {
		t.Fatal("expected to find TRADE in registry")
	}
	if def.Ability != game.Trade || def.Name != "Trade" {
		t.Errorf("unexpected definition %+v", def)
	}
	if def.CanTarget == nil || def.Apply == nil {
		t.Error("expected predicate and resolution to be set")
	}
}

func TestRegistryGetNonExistent(t *testing.T) {
	r := NewRegistry()
	if _, ok := r.GetAbility(game.Sap); ok {
		t.Error("expected GetAbility to return false for an unregistered tag")
	}
}

func TestRegistryRegisterTwiceKeepsOrder(t *testing.T) {
	r := NewRegistry()
	r.Register(&SapAbility{})
	r.Register(&TrapAbility{})
	r.Register(&SapAbility{})
	if r.Len() != 2 {
		t.Fatalf("expected 2 abilities, got %d", r.Len())
	}
	all := r.AllAbilities()
	if all[0].Ability != game.Sap || all[1].Ability != game.Trap {
		t.Errorf("unexpected order %s, %s", all[0].Ability, all[1].Ability)
	}
}

func TestRegisterAllCoversEveryTag(t *testing.T) {
	r := newTestRegistry()
	tags := game.AllAbilities()
	if r.Len() != len(tags) {
		t.Fatalf("expected %d abilities, got %d", len(tags), r.Len())
	}
	for _, a := range tags {
		def, ok := r.GetAbility(a)
		if !ok {
			t.Errorf("missing definition for %s", a)
			continue
		}
		if def.Description == "" {
			t.Errorf("%s has no description", a)
		}
	}
	if all := r.AllAbilities(); all[0].Ability != game.Sap {
		t.Errorf("expected SAP registered first, got %s", all[0].Ability)
	}
}

func TestRegisterAllSkipsDisabled(t *testing.T) {
	cfg := config.Defaults().Abilities
	cfg.Disabled = []string{"CHAMPION", "SUICIDE", "NOPE"}
	r := NewRegistry()
	RegisterAll(r, &cfg)

	if r.Len() != len(game.AllAbilities())-2 {
		t.Errorf("expected two abilities disabled, got %d registered", r.Len())
	}
	if _, ok := r.GetAbility(game.Champion); ok {
		t.Error("expected CHAMPION disabled")
	}
	if _, ok := r.GetAbility(game.Stab); ok {
		t.Error("expected STAB disabled by its old name")
	}
}

func TestRegisterAllNilConfig(t *testing.T) {
	r := NewRegistry()
	RegisterAll(r, nil)
	if r.Len() != len(game.AllAbilities()) {
		t.Errorf("expected every ability registered, got %d", r.Len())
	}
}

func TestAbilityNeedsHand(t *testing.T) {
	s := newTestSession(game.Layout{
		Slots: full(map[game.Slot]*game.Card{
			game.Backpack: game.NewAbilityCard(game.Sap),
		}),
	})
	if s.CanReceive(game.Backpack, game.Top0) {
		t.Error("expected a packed ability to be unplayable until equipped")
	}
}
