package ability

import (
	"log/slog"

	"card-crawl-server/config"
	"card-crawl-server/game"
)

// Power defines the interface that every ability card must implement.
type Power interface {
	Tag() game.Ability
	Name() string
	Description() string
	// CanTarget reports whether the ability may be played from m.Source onto
	// the occupied slot m.Target.
	CanTarget(s *game.Session, m game.Move) bool
	Apply(r *game.Resolver, m game.Move)
}

// Registry holds all registered abilities indexed by their tag.
type Registry struct {
	powers map[game.Ability]Power
	order  []game.Ability // registration order for deterministic AllAbilities()
}

// NewRegistry creates a new empty ability registry.
func NewRegistry() *Registry {
	return &Registry{
		powers: make(map[game.Ability]Power),
	}
}

// Register adds an ability to the registry.
func (r *Registry) Register(p Power) {
	tag := p.Tag()
	if _, exists := r.powers[tag]; !exists {
		r.order = append(r.order, tag)
	}
	r.powers[tag] = p
}

// Len returns the number of registered abilities.
func (r *Registry) Len() int { return len(r.order) }

// GetAbility returns the ability definition for the game package.
// It satisfies the game.AbilityProvider interface.
func (r *Registry) GetAbility(a game.Ability) (game.AbilityDef, bool) {
	p, ok := r.powers[a]
	if !ok {
		return game.AbilityDef{}, false
	}
	return toDef(p), true
}

// AllAbilities returns all registered abilities in registration order.
// It satisfies the game.AbilityProvider interface.
func (r *Registry) AllAbilities() []game.AbilityDef {
	defs := make([]game.AbilityDef, 0, len(r.order))
	for _, a := range r.order {
		defs = append(defs, toDef(r.powers[a]))
	}
	return defs
}

func toDef(p Power) game.AbilityDef {
	return game.AbilityDef{
		Ability:     p.Tag(),
		Name:        p.Name(),
		Description: p.Description(),
		CanTarget:   p.CanTarget,
		Apply:       p.Apply,
	}
}

// RegisterAll registers all built-in abilities on the registry using the given ability config.
// Tags listed in cfg.Disabled are skipped so they are never dealt.
func RegisterAll(r *Registry, cfg *config.AbilitiesConfig) {
	if cfg == nil {
		cfg = &config.AbilitiesConfig{}
	}
	disabled := make(map[game.Ability]bool, len(cfg.Disabled))
	for _, name := range cfg.Disabled {
		a, ok := game.ParseAbility(name)
		if !ok {
			slog.Warn("Unknown ability in disabled list", "tag", "ability", "name", name)
			continue
		}
		disabled[a] = true
	}
	add := func(p Power) {
		if !disabled[p.Tag()] {
			r.Register(p)
		}
	}

	add(&SapAbility{})
	add(&VanishAbility{})
	add(&LeechAbility{})
	add(&SacrificeAbility{})
	add(&PotionizeAbility{})
	add(&KillerAbility{})
	add(&ExchangeAbility{})
	add(&StealAbility{})
	add(&LashAbility{MaxTargets: cfg.Lash.MaxTargets})
	add(&BashAbility{})
	add(&ReflectAbility{})
	add(&ReviveAbility{})
	add(&FrenzyAbility{})
	add(&LuckyAbility{})
	add(&TradeAbility{Price: cfg.Trade.Price})
	add(&SwapAbility{})
	add(&MorphAbility{})
	add(&FortifyAbility{})
	add(&MidasAbility{})
	add(&DevourAbility{})
	add(&TrapAbility{})
	add(&LifeAbility{})
	add(&BleedAbility{})
	add(&StabAbility{})
	add(&BloodpactAbility{})
	add(&BountyAbility{})
	add(&EqualizeAbility{})
	add(&DiggerAbility{MaxCards: cfg.Digger.MaxCards})
	add(&MirrorAbility{})
	add(&PoisonAbility{})
	add(&DoomAbility{})
	add(&BribeAbility{})
	add(&FeastAbility{})
	add(&ChaosAbility{})
	add(&ChampionAbility{})
	add(&BetrayalAbility{})
}
