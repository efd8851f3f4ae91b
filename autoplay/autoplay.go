package autoplay

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"

	"card-crawl-server/game"
)

// ErrStuck is returned by Play when a live session offers no legal action.
var ErrStuck = errors.New("no legal action")

// Action is one thing the player can do: drop the card at Source on Target,
// or throw it away when Discard is set.
type Action struct {
	Source  game.Slot
	Target  game.Slot
	Discard bool
}

func (a Action) String() string {
	if a.Discard {
		return "discard " + a.Source.String()
	}
	return a.Source.String() + " to " + a.Target.String()
}

// Reasons attached to a suggestion (for logging and hints).
const (
	reasonCollect = "collect_coin"
	reasonKill    = "kill"
	reasonWound   = "wound"
	reasonHeal    = "heal"
	reasonBlock   = "block"
	reasonAbility = "ability"
	reasonEquip   = "equip"
	reasonPack    = "pack"
	reasonEndure  = "endure"
	reasonSell    = "sell"
	reasonFiller  = "filler"
)

// LegalActions lists every action the validator accepts, sources in slot order.
func LegalActions(s *game.Session) []Action {
	var out []Action
	for src := game.Top0; src <= game.Backpack; src++ {
		if !s.CanTouch(src) {
			continue
		}
		for dst := game.Top0; dst <= game.Backpack; dst++ {
			if s.CanReceive(src, dst) {
				out = append(out, Action{Source: src, Target: dst})
			}
		}
		if s.CanDiscard(src) {
			out = append(out, Action{Source: src, Discard: true})
		}
	}
	return out
}

// Apply performs a on the session.
func Apply(s *game.Session, a Action) (game.EffectLog, error) {
	if a.Discard {
		return s.ApplyDiscard(a.Source)
	}
	return s.ApplyMove(a.Source, a.Target)
}

// Suggest picks the most promising legal action using a greedy heuristic.
// Ties are broken with rng. It reports false when there is nothing to do.
func Suggest(s *game.Session, rng *rand.Rand) (Action, string, bool) {
	actions := LegalActions(s)
	if len(actions) == 0 {
		return Action{}, "", false
	}
	var best []Action
	bestScore := 0
	bestReason := ""
	for _, a := range actions {
		sc, reason := score(s, a)
		switch {
		case len(best) == 0 || sc > bestScore:
			best = []Action{a}
			bestScore = sc
			bestReason = reason
		case sc == bestScore:
			best = append(best, a)
		}
	}
	return best[rng.Intn(len(best))], bestReason, true
}

// score rates an action; higher is better, negative means it should be a last resort.
func score(s *game.Session, a Action) (int, string) {
	c := s.Card(a.Source)
	if a.Discard {
		switch c.Kind {
		case game.KindWeapon, game.KindShield, game.KindPotion:
			return 2 + c.Value/3, reasonSell
		}
		return 1, reasonFiller
	}

	hero := s.HeroHealth()
	missing := s.MaxHealth() - hero
	d := s.Card(a.Target)

	switch c.Kind {
	case game.KindMonster:
		if d.Kind == game.KindHero {
			if s.PendingReflect() {
				return 40, reasonBlock
			}
			if c.Value >= hero && !s.PendingRevive() {
				return -100, reasonEndure
			}
			return 20 - c.Value, reasonEndure
		}
		over := c.Value - d.Value
		if over <= 0 {
			return 40 + over, reasonBlock
		}
		if over >= hero && !s.PendingRevive() {
			return -100, reasonEndure
		}
		return 25 - over, reasonBlock
	case game.KindWeapon, game.KindShield, game.KindPotion:
		if d != nil {
			if c.Value >= d.Value {
				return 50 + d.Value, reasonKill
			}
			return 10 + c.Value, reasonWound
		}
		if c.Kind == game.KindPotion && a.Target.IsHand() {
			switch {
			case missing >= c.Value:
				return 45 + c.Value, reasonHeal
			case missing > 0:
				return 20 + missing, reasonHeal
			}
			return 3, reasonFiller
		}
		if a.Target.IsHand() {
			return 30, reasonEquip
		}
		return 14, reasonPack
	case game.KindCoin:
		return 60 + c.Value, reasonCollect
	case game.KindAbility:
		if d != nil {
			return abilityScore(s, c.Ability, a.Target), reasonAbility
		}
		if a.Target.IsHand() {
			return 26, reasonEquip
		}
		return 13, reasonPack
	}
	return 0, reasonFiller
}

// Play drives the session with Suggest until the run ends or maxSteps actions
// have been taken. It returns the number of actions taken.
func Play(s *game.Session, rng *rand.Rand, maxSteps int) (int, error) {
	steps := 0
	for !s.Over() && steps < maxSteps {
		a, reason, ok := Suggest(s, rng)
		if !ok {
			return steps, ErrStuck
		}
		if _, err := Apply(s, a); err != nil {
			return steps, fmt.Errorf("step %d (%s): %w", steps, a, err)
		}
		slog.Debug("autoplay action", "tag", "autoplay", "action", a.String(), "reason", reason)
		steps++
	}
	return steps, nil
}
