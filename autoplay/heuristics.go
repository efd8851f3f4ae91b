package autoplay

import "card-crawl-server/game"

// TargetScoreFunc rates using an ability on target. Higher is better.
type TargetScoreFunc func(s *game.Session, target game.Slot) int

const defaultAbilityScore = 28

var heuristics = make(map[game.Ability]TargetScoreFunc)

// Register adds or overwrites the heuristic for an ability.
func Register(a game.Ability, f TargetScoreFunc) {
	heuristics[a] = f
}

func abilityScore(s *game.Session, a game.Ability, target game.Slot) int {
	f, ok := heuristics[a]
	if !ok {
		return defaultAbilityScore
	}
	return f(s, target)
}

func monsterValue(s *game.Session, target game.Slot) int {
	c := s.Card(target)
	if c == nil || c.Kind != game.KindMonster {
		return 0
	}
	return c.Value
}

// removeMonster favours the strongest monster in reach.
func removeMonster(s *game.Session, target game.Slot) int {
	return 30 + monsterValue(s, target)
}

func init() {
	for _, a := range []game.Ability{game.Sap, game.Killer, game.Trap, game.Bribe} {
		Register(a, removeMonster)
	}
	Register(game.Leech, func(s *game.Session, target game.Slot) int {
		gain := monsterValue(s, target)
		if missing := s.MaxHealth() - s.HeroHealth(); gain > missing {
			gain = missing
		}
		return 25 + gain
	})
	Register(game.Sacrifice, func(s *game.Session, target game.Slot) int {
		return 25 + s.MaxHealth() - s.HeroHealth()
	})
	Register(game.Bloodpact, func(s *game.Session, target game.Slot) int {
		if gain := monsterValue(s, target) - s.HeroHealth(); gain > 0 {
			return 30 + gain
		}
		return 5
	})
	Register(game.Doom, func(s *game.Session, target game.Slot) int {
		if s.HeroHealth() > 10 {
			return 20
		}
		return -10
	})
	Register(game.Champion, func(s *game.Session, target game.Slot) int {
		return 90
	})
	Register(game.Vanish, func(s *game.Session, target game.Slot) int {
		return 20
	})
}
