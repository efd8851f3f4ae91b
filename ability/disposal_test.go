package ability

import (
	"testing"

	"card-crawl-server/game"
)

func TestSap(t *testing.T) {
	s := newTestSession(game.Layout{
		Slots: full(map[game.Slot]*game.Card{
			game.Top0:     game.NewMonster(9),
			game.LeftHand: game.NewAbilityCard(game.Sap),
		}),
		Deck: potions(2),
	})
	log := play(t, s, game.LeftHand, game.Top0)

	if s.Status(game.Top0) != game.Empty {
		t.Error("expected the monster to leave the row")
	}
	if s.DeckSize() != 3 || s.GraveyardSize() != 1 {
		t.Errorf("expected deck 3 and graveyard 1, got %d and %d", s.DeckSize(), s.GraveyardSize())
	}
	if !log.Has(game.EffectCardRecalled) {
		t.Error("expected card_recalled effect")
	}
	checkConservation(t, s)
}

func TestVanish(t *testing.T) {
	s := newTestSession(game.Layout{
		Slots: full(map[game.Slot]*game.Card{
			game.LeftHand: game.NewAbilityCard(game.Vanish),
		}),
		Deck: potions(4),
	})
	log := play(t, s, game.LeftHand, game.Hero)

	if got := log.Count(game.EffectCardRecalled); got != 4 {
		t.Errorf("expected 4 recalled cards, got %d", got)
	}
	for _, slot := range game.DungeonSlots {
		if k, _ := s.Kind(slot); k != game.KindPotion {
			t.Errorf("expected %s refilled from the top of the deck, got %s", slot, k)
		}
	}
	if s.DeckSize() != 4 {
		t.Errorf("expected the vanished monsters at the bottom, deck %d", s.DeckSize())
	}
	checkConservation(t, s)
}

func TestKiller(t *testing.T) {
	wounded := game.NewMonster(9)
	wounded.Value = 4
	s := newTestSession(game.Layout{
		Slots: full(map[game.Slot]*game.Card{
			game.Top0:      wounded,
			game.Top1:      game.NewMonster(9),
			game.LeftHand:  game.NewAbilityCard(game.Killer),
			game.RightHand: game.NewAbilityCard(game.Killer),
		}),
	})
	if s.CanReceive(game.LeftHand, game.Top1) {
		t.Error("expected KILLER to refuse an unwounded monster")
	}
	play(t, s, game.LeftHand, game.Top0)
	if s.Status(game.Top0) != game.Empty {
		t.Error("expected the wounded monster destroyed")
	}
}

func TestTrap(t *testing.T) {
	s := newTestSession(game.Layout{
		Slots: full(map[game.Slot]*game.Card{
			game.Top0:     game.NewMonster(9),
			game.LeftHand: game.NewAbilityCard(game.Trap),
		}),
	})
	play(t, s, game.LeftHand, game.Top0)
	if s.Status(game.Top0) != game.Spent {
		t.Fatalf("expected trapped monster spent, got %s", s.Status(game.Top0))
	}
	if s.CanTouch(game.Top0) {
		t.Error("expected a trapped monster to be untouchable")
	}
}

func TestLucky(t *testing.T) {
	counts := map[int]int{}
	for seed := int64(1); seed <= 60; seed++ {
		s := newSeededSession(game.Layout{
			Slots: full(map[game.Slot]*game.Card{
				game.LeftHand: game.NewAbilityCard(game.Lucky),
			}),
			Deck: potions(4),
		}, seed)
		log := play(t, s, game.LeftHand, game.Hero)

		n := 0
		for _, e := range log {
			if e.Type == game.EffectCardDestroyed && e.Slot.IsDungeon() {
				n++
			}
		}
		if n < 1 || n > 2 {
			t.Fatalf("seed %d: expected 1 or 2 cards destroyed, got %d", seed, n)
		}
		counts[n]++
		checkConservation(t, s)
	}
	if counts[1] == 0 || counts[2] == 0 {
		t.Errorf("expected both outcomes over many seeds, got %v", counts)
	}
}

func TestLuckyOnSparseRow(t *testing.T) {
	s := newTestSession(game.Layout{
		Slots: map[game.Slot]*game.Card{
			game.Top2:     game.NewMonster(5),
			game.LeftHand: game.NewAbilityCard(game.Lucky),
		},
		Deck: potions(4),
	})
	log := play(t, s, game.LeftHand, game.Hero)
	if log.Count(game.EffectCardDestroyed) != 2 {
		t.Errorf("expected the ability and the lone monster destroyed, got %+v", log)
	}
}

func TestDoom(t *testing.T) {
	s := newTestSession(game.Layout{
		Slots: full(map[game.Slot]*game.Card{
			game.LeftHand: game.NewAbilityCard(game.Doom),
		}),
		Deck: potions(4),
	})
	log := play(t, s, game.LeftHand, game.Hero)

	if s.HeroHealth() != 1 {
		t.Errorf("expected hero at 1, got %d", s.HeroHealth())
	}
	if s.Over() {
		t.Error("DOOM must not kill the hero")
	}
	if got := log.Count(game.EffectDealt); got != 4 {
		t.Errorf("expected a full refill, got %d dealt", got)
	}
	if s.GraveyardSize() != 5 {
		t.Errorf("expected 4 monsters and the ability buried, got %d", s.GraveyardSize())
	}
}

func TestChampionWins(t *testing.T) {
	s := newTestSession(game.Layout{
		Slots: full(map[game.Slot]*game.Card{
			game.LeftHand: game.NewAbilityCard(game.Champion),
		}),
		Deck: potions(5),
	})
	log := play(t, s, game.LeftHand, game.Hero)

	if over, ok := log.GameOver(); !ok || !over.Won {
		t.Fatalf("expected a win, got %+v", log)
	}
	if s.DeckSize() != 0 || s.GraveyardSize() != 10 {
		t.Errorf("expected everything in the graveyard, deck %d graveyard %d", s.DeckSize(), s.GraveyardSize())
	}
}
