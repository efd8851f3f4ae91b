package game

import "math/rand"

// DeckSize is the number of cards in a freshly generated deck.
const DeckSize = 54

// AbilitiesPerDeck is the number of distinct ability cards dealt into a deck.
const AbilitiesPerDeck = 5

// Deck is an ordered pile of cards. The next card to deal sits at the end of
// the slice; cards returned to the deck go to the front.
type Deck struct {
	cards []*Card
}

// NewDeck builds a deck that deals order[0] first.
func NewDeck(order []*Card) *Deck {
	cards := make([]*Card, len(order))
	for i, c := range order {
		cards[len(order)-1-i] = c
	}
	return &Deck{cards: cards}
}

// Size returns the number of cards left.
func (d *Deck) Size() int { return len(d.cards) }

// Deal removes and returns the next card, or nil when the deck is empty.
func (d *Deck) Deal() *Card {
	if len(d.cards) == 0 {
		return nil
	}
	return d.DealAt(0)
}

// Find returns the deal position (0 is the next card) of the nearest card of
// the given kind, or -1.
func (d *Deck) Find(kind Kind) int {
	for i := len(d.cards) - 1; i >= 0; i-- {
		if d.cards[i].Kind == kind {
			return len(d.cards) - 1 - i
		}
	}
	return -1
}

// DealAt removes and returns the card at deal position pos, or nil when pos is out of range.
func (d *Deck) DealAt(pos int) *Card {
	if pos < 0 || pos >= len(d.cards) {
		return nil
	}
	i := len(d.cards) - 1 - pos
	c := d.cards[i]
	d.cards = append(d.cards[:i], d.cards[i+1:]...)
	return c
}

// DealKind removes and returns the nearest card of the given kind, or nil.
func (d *Deck) DealKind(kind Kind) *Card {
	return d.DealAt(d.Find(kind))
}

// Receive puts c at the bottom of the draw order.
func (d *Deck) Receive(c *Card) {
	d.cards = append(d.cards, nil)
	copy(d.cards[1:], d.cards)
	d.cards[0] = c
}

// Cards returns the remaining cards in deal order.
func (d *Deck) Cards() []*Card {
	out := make([]*Card, len(d.cards))
	for i, c := range d.cards {
		out[len(d.cards)-1-i] = c
	}
	return out
}

// drain empties the deck and returns its cards in deal order.
func (d *Deck) drain() []*Card {
	out := d.Cards()
	d.cards = nil
	return out
}

// Composition returns the unshuffled cards of a new deck: 19 monsters, six
// weapons and six shields, nine potions and nine coins, and one ability card
// for each of up to AbilitiesPerDeck distinct tags drawn from pool.
func Composition(rng *rand.Rand, pool []Ability) []*Card {
	cards := make([]*Card, 0, DeckSize)
	for v := 2; v <= 10; v++ {
		cards = append(cards, NewMonster(v), NewMonster(v))
	}
	cards = append(cards, NewMonster(10))
	for v := 2; v <= 7; v++ {
		cards = append(cards, NewItem(KindWeapon, v), NewItem(KindShield, v))
	}
	for v := 2; v <= 10; v++ {
		cards = append(cards, NewItem(KindPotion, v), NewItem(KindCoin, v))
	}
	for i, p := range rng.Perm(len(pool)) {
		if i == AbilitiesPerDeck {
			break
		}
		cards = append(cards, NewAbilityCard(pool[p]))
	}
	return cards
}

// GenerateDeck shuffles the composition until it passes ValidLayout, giving
// up after attempts tries and arranging a valid layout directly.
func GenerateDeck(rng *rand.Rand, pool []Ability, attempts int) *Deck {
	cards := Composition(rng, pool)
	for i := 0; i < attempts; i++ {
		rng.Shuffle(len(cards), func(a, b int) { cards[a], cards[b] = cards[b], cards[a] })
		if ValidLayout(cards) {
			return NewDeck(cards)
		}
	}
	return NewDeck(arrangeLayout(rng, cards))
}

// ValidLayout checks a deal order against the layout rules: no three
// identical items in a row, no four monsters in a row, no ability among the
// first four cards or within two cards of another ability, and a monster in
// every four consecutive cards.
func ValidLayout(order []*Card) bool {
	run := 0
	lastAbility := -AbilitiesPerDeck
	sinceMonster := 0
	for i, c := range order {
		if i > 0 && order[i-1].Kind == c.Kind {
			run++
		} else {
			run = 1
		}
		switch {
		case c.Kind == KindMonster:
			if run >= 4 {
				return false
			}
			sinceMonster = 0
		case c.Kind == KindAbility:
			if i < 4 || i-lastAbility <= 2 {
				return false
			}
			lastAbility = i
			sinceMonster++
		default:
			if run >= 3 {
				return false
			}
			sinceMonster++
		}
		if sinceMonster >= 4 {
			return false
		}
	}
	return true
}

// arrangeLayout builds a valid order from the given cards: monsters are
// separated by gaps of one or two other cards, and ability cards sit in
// pairwise non-adjacent gaps past the second monster.
func arrangeLayout(rng *rand.Rand, cards []*Card) []*Card {
	var monsters, items, abilities []*Card
	for _, c := range cards {
		switch c.Kind {
		case KindMonster:
			monsters = append(monsters, c)
		case KindAbility:
			abilities = append(abilities, c)
		default:
			items = append(items, c)
		}
	}
	shuffle(rng, monsters)
	shuffle(rng, items)

	gaps := len(monsters) + 1
	others := len(items) + len(abilities)
	sizes := make([]int, gaps)
	for i := range sizes {
		sizes[i] = 1
	}
	for i := 0; i < others-gaps && i < gaps; i++ {
		sizes[i] = 2
	}
	rng.Shuffle(len(sizes), func(a, b int) { sizes[a], sizes[b] = sizes[b], sizes[a] })

	// Gaps 2 and later start at deal position 4 or beyond.
	hosts := make(map[int]bool, len(abilities))
	for _, g := range rng.Perm(gaps - 2) {
		if len(hosts) == len(abilities) {
			break
		}
		g += 2
		if hosts[g-1] || hosts[g+1] {
			continue
		}
		hosts[g] = true
	}

	order := make([]*Card, 0, len(cards))
	for g := 0; g < gaps; g++ {
		gap := make([]*Card, 0, sizes[g])
		n := sizes[g]
		if hosts[g] {
			n--
		}
		for ; n > 0 && len(items) > 0; n-- {
			gap = append(gap, items[len(items)-1])
			items = items[:len(items)-1]
		}
		if hosts[g] {
			a := abilities[len(abilities)-1]
			abilities = abilities[:len(abilities)-1]
			at := rng.Intn(len(gap) + 1)
			gap = append(gap, nil)
			copy(gap[at+1:], gap[at:])
			gap[at] = a
		}
		order = append(order, gap...)
		if g < len(monsters) {
			order = append(order, monsters[g])
		}
	}
	// Leftovers only exist for compositions with more than two other cards per gap.
	order = append(order, items...)
	order = append(order, abilities...)
	return order
}

func shuffle(rng *rand.Rand, cards []*Card) {
	rng.Shuffle(len(cards), func(a, b int) { cards[a], cards[b] = cards[b], cards[a] })
}
