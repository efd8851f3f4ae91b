package ability

import (
	"testing"

	"card-crawl-server/game"
)

func TestBash(t *testing.T) {
	s := newTestSession(game.Layout{
		Slots: full(map[game.Slot]*game.Card{
			game.LeftHand:  game.NewAbilityCard(game.Bash),
			game.RightHand: game.NewItem(game.KindShield, 7),
		}),
	})
	if s.CanTouch(game.RightHand) {
		t.Fatal("an equipped shield starts untouchable")
	}
	log := play(t, s, game.LeftHand, game.Hero)

	if c := s.Card(game.RightHand); c == nil || !c.Has(game.Bash) {
		t.Fatalf("expected the shield tagged BASH, got %+v", c)
	}
	if !log.Has(game.EffectCardTagged) {
		t.Error("expected card_tagged effect")
	}
	if !s.CanReceive(game.RightHand, game.Top0) {
		t.Error("expected the bashing shield to attack")
	}
}

func TestBashWithoutShield(t *testing.T) {
	s := newTestSession(game.Layout{
		Slots: full(map[game.Slot]*game.Card{
			game.RightHand: game.NewAbilityCard(game.Bash),
			game.LeftHand:  game.NewItem(game.KindWeapon, 7),
		}),
	})
	log := play(t, s, game.RightHand, game.Hero)
	if log.Has(game.EffectCardTagged) {
		t.Error("expected nothing tagged without a shield in the other hand")
	}
}

func TestFrenzy(t *testing.T) {
	s := newTestSession(game.Layout{
		Slots: full(map[game.Slot]*game.Card{
			game.RightHand: game.NewAbilityCard(game.Frenzy),
			game.LeftHand:  game.NewItem(game.KindWeapon, 7),
		}),
	})
	play(t, s, game.RightHand, game.Hero)
	if c := s.Card(game.LeftHand); c == nil || !c.Has(game.Frenzy) {
		t.Fatalf("expected the weapon tagged FRENZY, got %+v", c)
	}
	play(t, s, game.LeftHand, game.Top0)
	if s.Status(game.LeftHand) != game.Active {
		t.Error("expected the frenzied weapon to survive its first attack")
	}
}

func TestPoison(t *testing.T) {
	s := newTestSession(game.Layout{
		Slots: full(map[game.Slot]*game.Card{
			game.Top0:     game.NewMonster(5),
			game.LeftHand: game.NewAbilityCard(game.Poison),
			game.Backpack: game.NewItem(game.KindPotion, 6),
		}),
	})
	if s.CanReceive(game.LeftHand, game.Top0) {
		t.Error("expected POISON to refuse a monster")
	}
	play(t, s, game.LeftHand, game.Backpack)
	if !s.CanReceive(game.Backpack, game.Top0) {
		t.Fatal("expected the poisoned potion to be throwable")
	}
	play(t, s, game.Backpack, game.Top0)
	if s.Status(game.Top0) != game.Empty || s.Status(game.Backpack) != game.Empty {
		t.Error("expected the monster and the potion destroyed")
	}
}

func TestReflect(t *testing.T) {
	s := newTestSession(game.Layout{
		Slots: full(map[game.Slot]*game.Card{
			game.LeftHand: game.NewAbilityCard(game.Reflect),
		}),
	})
	log := play(t, s, game.LeftHand, game.Hero)
	if !s.PendingReflect() {
		t.Error("expected reflect armed")
	}
	if len(log) == 0 || log[len(log)-1].Flag != game.FlagReflect {
		t.Errorf("expected flag_set reflect, got %+v", log)
	}

	play(t, s, game.Top0, game.Hero)
	if s.HeroHealth() != game.HeroMax || s.PendingReflect() {
		t.Error("expected the next attack reflected and the flag consumed")
	}
}

func TestRevive(t *testing.T) {
	s := newTestSession(game.Layout{
		Slots: full(map[game.Slot]*game.Card{
			game.Hero:     hero(2),
			game.Top0:     game.NewMonster(9),
			game.LeftHand: game.NewAbilityCard(game.Revive),
		}),
	})
	play(t, s, game.LeftHand, game.Hero)
	if !s.PendingRevive() {
		t.Fatal("expected revive armed")
	}
	play(t, s, game.Top0, game.Hero)
	if s.Over() || s.HeroHealth() != 1 {
		t.Errorf("expected the hero revived at 1, got %d", s.HeroHealth())
	}
}

func TestLife(t *testing.T) {
	s := newTestSession(game.Layout{
		Slots: full(map[game.Slot]*game.Card{
			game.LeftHand: game.NewAbilityCard(game.Life),
		}),
	})
	play(t, s, game.LeftHand, game.Hero)
	if s.HeroHealth() != game.HeroMax+5 || s.BonusMaxHealth() != 5 {
		t.Errorf("expected hero at %d with bonus 5, got %d / %d", game.HeroMax+5, s.HeroHealth(), s.BonusMaxHealth())
	}
}

func TestLifeBelowMax(t *testing.T) {
	s := newTestSession(game.Layout{
		Slots: full(map[game.Slot]*game.Card{
			game.Hero:     hero(4),
			game.LeftHand: game.NewAbilityCard(game.Life),
		}),
	})
	play(t, s, game.LeftHand, game.Hero)
	if s.HeroHealth() != 9 || s.BonusMaxHealth() != 0 {
		t.Errorf("expected hero at 9 with no bonus, got %d / %d", s.HeroHealth(), s.BonusMaxHealth())
	}
}
