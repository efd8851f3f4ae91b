package game

import (
	"math/rand"
	"reflect"
	"testing"

	"card-crawl-server/config"
)

// mockAbilityProvider is a test double for AbilityProvider.
// Register abilities with Register() so AllAbilities() returns them in deterministic order.
type mockAbilityProvider struct {
	defs  map[Ability]AbilityDef
	order []Ability
}

func newMockAbilityProvider() *mockAbilityProvider {
	return &mockAbilityProvider{defs: make(map[Ability]AbilityDef)}
}

func (m *mockAbilityProvider) Register(def AbilityDef) {
	if _, ok := m.defs[def.Ability]; !ok {
		m.order = append(m.order, def.Ability)
	}
	m.defs[def.Ability] = def
}

func (m *mockAbilityProvider) GetAbility(a Ability) (AbilityDef, bool) {
	d, ok := m.defs[a]
	return d, ok
}

func (m *mockAbilityProvider) AllAbilities() []AbilityDef {
	defs := make([]AbilityDef, 0, len(m.order))
	for _, a := range m.order {
		defs = append(defs, m.defs[a])
	}
	return defs
}

func onDungeon(s *Session, mv Move) bool { return mv.Target.IsDungeon() }
func onHero(s *Session, mv Move) bool    { return mv.Target == Hero }
func onDungeonMonster(s *Session, mv Move) bool {
	k, ok := s.Kind(mv.Target)
	return ok && k == KindMonster && mv.Target.IsDungeon()
}

// testAbilities registers a small set of simple abilities for engine tests.
func testAbilities() *mockAbilityProvider {
	m := newMockAbilityProvider()
	m.Register(AbilityDef{Ability: Leech, Name: "Leech", CanTarget: onDungeonMonster, Apply: func(r *Resolver, mv Move) {
		n := min(mv.Value(), r.Card(mv.Target).Value)
		r.Strike(mv.Target, n)
		r.HealHero(n)
	}})
	m.Register(AbilityDef{Ability: Trap, Name: "Trap", CanTarget: onDungeon, Apply: func(r *Resolver, mv Move) { r.Spend(mv.Target) }})
	m.Register(AbilityDef{Ability: Sap, Name: "Sap", CanTarget: onDungeon, Apply: func(r *Resolver, mv Move) { r.Recall(mv.Target) }})
	m.Register(AbilityDef{Ability: Revive, Name: "Revive", CanTarget: onHero, Apply: func(r *Resolver, mv Move) { r.SetRevive() }})
	m.Register(AbilityDef{Ability: Reflect, Name: "Reflect", CanTarget: onHero, Apply: func(r *Resolver, mv Move) { r.SetReflect() }})
	m.Register(AbilityDef{Ability: Life, Name: "Life", CanTarget: onHero, Apply: func(r *Resolver, mv Move) { r.RaiseHero(mv.Value()) }})
	return m
}

func testConfig() *config.Config {
	cfg := config.Defaults()
	cfg.Seed = 1
	return cfg
}

func newTestSession(l Layout) *Session {
	return NewSessionFromLayout(testConfig(), testAbilities(), rand.New(rand.NewSource(1)), l)
}

func potions(n int) []*Card {
	cards := make([]*Card, n)
	for i := range cards {
		cards[i] = NewItem(KindPotion, 2)
	}
	return cards
}

func checkConservation(t *testing.T, s *Session) {
	t.Helper()
	if have, want := s.Accounted(); have != want {
		t.Fatalf("card conservation broken: have %d, want %d", have, want)
	}
}

type action struct {
	src, dst Slot
	discard  bool
}

func legalActions(s *Session) []action {
	var acts []action
	for src := Top0; src <= Backpack; src++ {
		if !s.CanTouch(src) {
			continue
		}
		if s.CanDiscard(src) {
			acts = append(acts, action{src: src, discard: true})
		}
		for dst := Top0; dst <= Backpack; dst++ {
			if s.CanReceive(src, dst) {
				acts = append(acts, action{src: src, dst: dst})
			}
		}
	}
	return acts
}

func TestNewSession(t *testing.T) {
	s := NewSession(testConfig(), testAbilities(), rand.New(rand.NewSource(7)))

	if s.Phase() != AwaitingMove {
		t.Errorf("expected phase awaiting_move, got %s", s.Phase())
	}
	if s.HeroHealth() != HeroMax {
		t.Errorf("expected hero at %d, got %d", HeroMax, s.HeroHealth())
	}
	if s.DeckSize() != DeckSize-4 {
		t.Errorf("expected %d cards left after first deal, got %d", DeckSize-4, s.DeckSize())
	}
	for _, slot := range DungeonSlots {
		if s.Status(slot) != Active {
			t.Errorf("expected %s to be dealt, got %s", slot, s.Status(slot))
		}
		if c := s.Card(slot); c != nil && c.Kind == KindAbility {
			t.Errorf("ability card dealt into first row at %s", slot)
		}
	}
	for _, slot := range []Slot{LeftHand, RightHand, Backpack} {
		if s.Status(slot) != Empty {
			t.Errorf("expected %s to start empty", slot)
		}
	}
	checkConservation(t, s)
}

func TestNewSessionDeterministic(t *testing.T) {
	a := NewSession(testConfig(), testAbilities(), rand.New(rand.NewSource(99)))
	b := NewSession(testConfig(), testAbilities(), rand.New(rand.NewSource(99)))
	if !reflect.DeepEqual(a.Snapshot(), b.Snapshot()) {
		t.Error("expected identical sessions from identical seeds")
	}
	da, db := a.deck.Cards(), b.deck.Cards()
	for i := range da {
		if *da[i] != *db[i] {
			t.Fatalf("decks differ at position %d: %+v vs %+v", i, da[i], db[i])
		}
	}
}

func TestCardReturnsCopy(t *testing.T) {
	s := newTestSession(Layout{Slots: map[Slot]*Card{Top0: NewMonster(4)}})
	c := s.Card(Top0)
	c.Value = 1
	if s.Card(Top0).Value != 4 {
		t.Error("mutating a returned card must not change the session")
	}
}

func TestRandomPlayKeepsInvariants(t *testing.T) {
	for seed := int64(1); seed <= 40; seed++ {
		rng := rand.New(rand.NewSource(seed))
		s := NewSession(testConfig(), testAbilities(), rng)
		pick := rand.New(rand.NewSource(seed * 31))
		for step := 0; step < 400 && !s.Over(); step++ {
			acts := legalActions(s)
			if len(acts) == 0 {
				break
			}
			a := acts[pick.Intn(len(acts))]
			var err error
			if a.discard {
				_, err = s.ApplyDiscard(a.src)
			} else {
				_, err = s.ApplyMove(a.src, a.dst)
			}
			if err != nil {
				t.Fatalf("seed %d step %d: legal action rejected: %v", seed, step, err)
			}
			if h := s.HeroHealth(); h < 0 || h > s.MaxHealth() {
				t.Fatalf("seed %d step %d: hero %d outside [0, %d]", seed, step, h, s.MaxHealth())
			}
			if s.Coins() < 0 {
				t.Fatalf("seed %d step %d: negative coins", seed, step)
			}
			if !s.Over() {
				checkConservation(t, s)
			}
		}
	}
}
