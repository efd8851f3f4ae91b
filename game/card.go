package game

// HeroMax is the hero's health at the start of a run and its base maximum.
const HeroMax = 13

// BountyThreshold is the monster value at which a monster becomes a bounty target.
const BountyThreshold = 10

// Kind is the type of a card.
type Kind int

const (
	KindHero Kind = iota
	KindMonster
	KindWeapon
	KindShield
	KindPotion
	KindCoin
	KindAbility
)

// String returns the protocol string for a Kind.
func (k Kind) String() string {
	switch k {
	case KindHero:
		return "hero"
	case KindMonster:
		return "monster"
	case KindWeapon:
		return "weapon"
	case KindShield:
		return "shield"
	case KindPotion:
		return "potion"
	case KindCoin:
		return "coin"
	case KindAbility:
		return "ability"
	default:
		return "unknown"
	}
}

// IsItem reports whether cards of this kind are plain items (weapon, shield, potion, coin).
func (k Kind) IsItem() bool {
	return k == KindWeapon || k == KindShield || k == KindPotion || k == KindCoin
}

// Ability is the special power carried by an ability card. Monsters, shields,
// weapons and potions can also carry a tag (BOUNTY, BASH, FRENZY, POISON).
type Ability int

const (
	NoAbility Ability = iota
	Sap
	Vanish
	Leech
	Sacrifice
	Potionize
	Killer
	Exchange
	Steal
	Lash
	Bash
	Reflect
	Revive
	Frenzy
	Lucky
	Trade
	Swap
	Morph
	Fortify
	Midas
	Devour
	Trap
	Life
	Bleed
	Stab
	Bloodpact
	Bounty
	Equalize
	Digger
	Mirror
	Poison
	Doom
	Bribe
	Feast
	Chaos
	Champion
	Betrayal
)

var abilityNames = [...]string{
	NoAbility: "",
	Sap:       "SAP",
	Vanish:    "VANISH",
	Leech:     "LEECH",
	Sacrifice: "SACRIFICE",
	Potionize: "POTIONIZE",
	Killer:    "KILLER",
	Exchange:  "EXCHANGE",
	Steal:     "STEAL",
	Lash:      "LASH",
	Bash:      "BASH",
	Reflect:   "REFLECT",
	Revive:    "REVIVE",
	Frenzy:    "FRENZY",
	Lucky:     "LUCKY",
	Trade:     "TRADE",
	Swap:      "SWAP",
	Morph:     "MORPH",
	Fortify:   "FORTIFY",
	Midas:     "MIDAS",
	Devour:    "DEVOUR",
	Trap:      "TRAP",
	Life:      "LIFE",
	Bleed:     "BLEED",
	Stab:      "STAB",
	Bloodpact: "BLOODPACT",
	Bounty:    "BOUNTY",
	Equalize:  "EQUALIZE",
	Digger:    "DIGGER",
	Mirror:    "MIRROR",
	Poison:    "POISON",
	Doom:      "DOOM",
	Bribe:     "BRIBE",
	Feast:     "FEAST",
	Chaos:     "CHAOS",
	Champion:  "CHAMPION",
	Betrayal:  "BETRAYAL",
}

// String returns the display name of the ability tag ("" for NoAbility).
func (a Ability) String() string {
	if a < 0 || int(a) >= len(abilityNames) {
		return "UNKNOWN"
	}
	return abilityNames[a]
}

// ParseAbility returns the tag with the given name. SUICIDE is accepted as
// the old name of STAB.
func ParseAbility(name string) (Ability, bool) {
	if name == "SUICIDE" {
		return Stab, true
	}
	for i, n := range abilityNames {
		if n != "" && n == name {
			return Ability(i), true
		}
	}
	return NoAbility, false
}

// AllAbilities returns every ability tag in declaration order.
func AllAbilities() []Ability {
	all := make([]Ability, 0, len(abilityNames)-1)
	for i := 1; i < len(abilityNames); i++ {
		all = append(all, Ability(i))
	}
	return all
}

// BaseValue is the value an ability card of this tag is created with.
func (a Ability) BaseValue() int {
	switch a {
	case Leech, Lash:
		return 3
	case Fortify, Life, Bounty:
		return 5
	default:
		return 0
	}
}

var monsterNames = [...]string{"", "", "PLAGUE", "CROW", "FIRELAMB", "SLIME", "INCUBUS", "GOBLIN", "SPIDER", "TROLL", "SOULEATER"}

// Card is a single card. Value changes during play; InitialValue records the
// value the card was created with.
type Card struct {
	Kind         Kind
	Value        int
	InitialValue int
	Ability      Ability
}

// NewHero returns a hero card at full health.
func NewHero() *Card {
	return &Card{Kind: KindHero, Value: HeroMax, InitialValue: HeroMax}
}

// NewMonster returns a monster of the given value, tagged BOUNTY when strong enough.
func NewMonster(value int) *Card {
	c := &Card{Kind: KindMonster, Value: value, InitialValue: value}
	tagBounty(c)
	return c
}

// NewItem returns a weapon, shield, potion or coin card.
func NewItem(kind Kind, value int) *Card {
	return &Card{Kind: kind, Value: value, InitialValue: value}
}

// NewAbilityCard returns an ability card carrying a at its base value.
func NewAbilityCard(a Ability) *Card {
	v := a.BaseValue()
	return &Card{Kind: KindAbility, Value: v, InitialValue: v, Ability: a}
}

// tagBounty marks a monster as a bounty target once its value reaches the
// threshold. The tag is never removed by later value changes.
func tagBounty(c *Card) {
	if c.Kind == KindMonster && c.Value >= BountyThreshold {
		c.Ability = Bounty
	}
}

// Wounded reports whether the card has lost value since it was created.
func (c *Card) Wounded() bool {
	return c.Value < c.InitialValue
}

// Has reports whether the card carries tag a.
func (c *Card) Has(a Ability) bool {
	return c != nil && c.Ability == a
}

// Name returns the display name: the monster species, the ability name, or the kind.
func (c *Card) Name() string {
	switch c.Kind {
	case KindMonster:
		if c.InitialValue >= 2 && c.InitialValue < len(monsterNames) {
			return monsterNames[c.InitialValue]
		}
		return "MONSTER"
	case KindAbility:
		return c.Ability.String()
	case KindHero:
		return "HERO"
	default:
		return c.Kind.String()
	}
}

// Clone returns a copy of the card.
func (c *Card) Clone() *Card {
	if c == nil {
		return nil
	}
	cp := *c
	return &cp
}

// restore returns a destroyed card to the state it was created in.
func (c *Card) restore() {
	c.Value = c.InitialValue
	if c.Kind != KindAbility {
		c.Ability = NoAbility
	}
	tagBounty(c)
}
