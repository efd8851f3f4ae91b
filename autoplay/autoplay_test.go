package autoplay

import (
	"errors"
	"math/rand"
	"reflect"
	"testing"

	"card-crawl-server/ability"
	"card-crawl-server/config"
	"card-crawl-server/game"
)

func newRegistry() *ability.Registry {
	r := ability.NewRegistry()
	ability.RegisterAll(r, &config.Defaults().Abilities)
	return r
}

func newLayoutSession(l game.Layout) *game.Session {
	return game.NewSessionFromLayout(config.Defaults(), newRegistry(), rand.New(rand.NewSource(1)), l)
}

// row fills the dungeon slots not given with weak monsters.
func row(slots map[game.Slot]*game.Card) map[game.Slot]*game.Card {
	for _, s := range game.DungeonSlots {
		if _, ok := slots[s]; !ok {
			slots[s] = game.NewMonster(2)
		}
	}
	return slots
}

func contains(actions []Action, want Action) bool {
	for _, a := range actions {
		if a == want {
			return true
		}
	}
	return false
}

func TestLegalActions(t *testing.T) {
	s := newLayoutSession(game.Layout{
		Slots: row(map[game.Slot]*game.Card{
			game.Top0:     game.NewMonster(3),
			game.LeftHand: game.NewItem(game.KindWeapon, 5),
		}),
	})
	actions := LegalActions(s)

	for _, want := range []Action{
		{Source: game.LeftHand, Target: game.Top0},
		{Source: game.Top0, Target: game.Hero},
	} {
		if !contains(actions, want) {
			t.Errorf("expected %s among legal actions", want)
		}
	}
	for _, a := range actions {
		if a.Source == game.Hero {
			t.Errorf("the hero is never a source, got %s", a)
		}
		if a.Discard && !s.CanDiscard(a.Source) {
			t.Errorf("%s is not a legal discard", a)
		}
		if !a.Discard && !s.CanReceive(a.Source, a.Target) {
			t.Errorf("%s is not a legal move", a)
		}
	}
}

func TestSuggestCollectsCoin(t *testing.T) {
	s := newLayoutSession(game.Layout{
		Slots: row(map[game.Slot]*game.Card{
			game.Top0: game.NewItem(game.KindCoin, 5),
		}),
	})
	a, reason, ok := Suggest(s, rand.New(rand.NewSource(1)))
	if !ok {
		t.Fatal("expected a suggestion")
	}
	if a.Source != game.Top0 || a.Discard {
		t.Errorf("expected the coin picked up, got %s", a)
	}
	if reason != reasonCollect {
		t.Errorf("expected reason %q, got %q", reasonCollect, reason)
	}
}

func TestSuggestKillsStrongestMonster(t *testing.T) {
	s := newLayoutSession(game.Layout{
		Slots: row(map[game.Slot]*game.Card{
			game.Top0:     game.NewMonster(6),
			game.LeftHand: game.NewItem(game.KindWeapon, 7),
		}),
	})
	a, reason, _ := Suggest(s, rand.New(rand.NewSource(1)))
	want := Action{Source: game.LeftHand, Target: game.Top0}
	if a != want {
		t.Errorf("expected %s, got %s", want, a)
	}
	if reason != reasonKill {
		t.Errorf("expected reason %q, got %q", reasonKill, reason)
	}
}

func TestSuggestAvoidsLethalHit(t *testing.T) {
	h := game.NewHero()
	h.Value = 3
	s := newLayoutSession(game.Layout{
		Slots: map[game.Slot]*game.Card{
			game.Hero:     h,
			game.Top0:     game.NewMonster(9),
			game.Top1:     game.NewMonster(9),
			game.Top2:     game.NewMonster(9),
			game.Top3:     game.NewMonster(9),
			game.Backpack: game.NewItem(game.KindPotion, 2),
		},
	})
	for seed := int64(1); seed <= 10; seed++ {
		a, _, _ := Suggest(s, rand.New(rand.NewSource(seed)))
		if a.Target == game.Hero {
			t.Fatalf("seed %d: suggested a lethal %s", seed, a)
		}
	}
}

func TestSuggestPrefersChampion(t *testing.T) {
	s := newLayoutSession(game.Layout{
		Slots: row(map[game.Slot]*game.Card{
			game.LeftHand: game.NewAbilityCard(game.Champion),
		}),
		Deck: []*game.Card{game.NewMonster(10)},
	})
	a, reason, _ := Suggest(s, rand.New(rand.NewSource(1)))
	if a.Source != game.LeftHand || a.Discard || reason != reasonAbility {
		t.Errorf("expected CHAMPION used, got %s (%s)", a, reason)
	}
}

func TestSuggestDoesNotMutate(t *testing.T) {
	s := game.NewSession(config.Defaults(), newRegistry(), rand.New(rand.NewSource(3)))
	before := s.Snapshot()
	Suggest(s, rand.New(rand.NewSource(1)))
	LegalActions(s)
	if !reflect.DeepEqual(before, s.Snapshot()) {
		t.Error("expected suggesting to leave the session untouched")
	}
}

func TestApplyDiscard(t *testing.T) {
	s := newLayoutSession(game.Layout{
		Slots: row(map[game.Slot]*game.Card{
			game.Backpack: game.NewItem(game.KindShield, 4),
		}),
	})
	if _, err := Apply(s, Action{Source: game.Backpack, Discard: true}); err != nil {
		t.Fatalf("discard: %v", err)
	}
	if s.Coins() != 4 {
		t.Errorf("expected the shield sold for 4, got %d", s.Coins())
	}
}

func TestApplyRejectsIllegalAction(t *testing.T) {
	s := newLayoutSession(game.Layout{Slots: row(map[game.Slot]*game.Card{})})
	_, err := Apply(s, Action{Source: game.Top0, Target: game.Top1})
	if !errors.Is(err, game.ErrIllegalMove) {
		t.Errorf("expected ErrIllegalMove, got %v", err)
	}
}

// TestPlayKeepsInvariants drives whole runs with every ability enabled and
// checks the session after each action.
func TestPlayKeepsInvariants(t *testing.T) {
	reg := newRegistry()
	finished := 0
	for seed := int64(1); seed <= 150; seed++ {
		s := game.NewSession(config.Defaults(), reg, rand.New(rand.NewSource(seed)))
		rng := rand.New(rand.NewSource(seed * 7))
		for step := 0; step < 2000 && !s.Over(); step++ {
			a, _, ok := Suggest(s, rng)
			if !ok {
				// Locked boards end the run in the lobby.
				break
			}
			if _, err := Apply(s, a); err != nil {
				t.Fatalf("seed %d step %d: %s rejected: %v", seed, step, a, err)
			}
			if h := s.HeroHealth(); h < 0 || h > s.MaxHealth() {
				t.Fatalf("seed %d step %d: hero health %d outside 0..%d", seed, step, h, s.MaxHealth())
			}
			if s.Coins() < 0 {
				t.Fatalf("seed %d step %d: negative purse %d", seed, step, s.Coins())
			}
			if have, want := s.Accounted(); have != want {
				t.Fatalf("seed %d step %d after %s: have %d cards, want %d", seed, step, a, have, want)
			}
		}
		if s.Over() {
			finished++
		}
	}
	if finished == 0 {
		t.Error("expected at least one run to finish")
	}
}

func TestPlayStopsWhenOver(t *testing.T) {
	s := game.NewSession(config.Defaults(), newRegistry(), rand.New(rand.NewSource(11)))
	steps, err := Play(s, rand.New(rand.NewSource(11)), 5000)
	if err != nil && !errors.Is(err, ErrStuck) {
		t.Fatalf("play: %v", err)
	}
	if steps == 0 {
		t.Error("expected at least one action")
	}
	if s.Over() && s.Moves() < steps {
		t.Errorf("expected %d actions counted as moves, got %d", steps, s.Moves())
	}
}

func TestPlayReportsLockedBoard(t *testing.T) {
	s := newLayoutSession(game.Layout{
		Slots: map[game.Slot]*game.Card{
			game.Top0:      game.NewItem(game.KindWeapon, 3),
			game.Top1:      game.NewItem(game.KindPotion, 2),
			game.LeftHand:  game.NewItem(game.KindShield, 5),
			game.RightHand: game.NewItem(game.KindPotion, 3),
			game.Backpack:  game.NewItem(game.KindCoin, 1),
		},
		Spent: []game.Slot{game.RightHand, game.Backpack},
		Deck:  []*game.Card{game.NewMonster(4)},
	})
	if acts := LegalActions(s); len(acts) != 0 {
		t.Fatalf("expected no legal action, got %v", acts)
	}
	if _, err := Play(s, rand.New(rand.NewSource(1)), 10); !errors.Is(err, ErrStuck) {
		t.Errorf("expected ErrStuck, got %v", err)
	}
}
