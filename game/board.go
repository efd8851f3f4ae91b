package game

import "fmt"

// Slot is one of the eight board positions.
type Slot int

// SlotNone marks effects that are not tied to a board position.
const SlotNone Slot = -1

const (
	Top0 Slot = iota
	Top1
	Top2
	Top3
	LeftHand
	Hero
	RightHand
	Backpack
)

// NumSlots is the number of board positions.
const NumSlots = 8

// DungeonSlots lists the dungeon row left to right.
var DungeonSlots = [4]Slot{Top0, Top1, Top2, Top3}

// HeroRow lists the hero row left to right.
var HeroRow = [4]Slot{LeftHand, Hero, RightHand, Backpack}

var slotNames = [NumSlots]string{"top0", "top1", "top2", "top3", "left_hand", "hero", "right_hand", "backpack"}

// String returns the protocol string for a Slot.
func (s Slot) String() string {
	if !s.Valid() {
		return "none"
	}
	return slotNames[s]
}

// ParseSlot returns the slot with the given protocol name.
func ParseSlot(name string) (Slot, error) {
	for i, n := range slotNames {
		if n == name {
			return Slot(i), nil
		}
	}
	return SlotNone, fmt.Errorf("unknown slot %q", name)
}

// MarshalText implements encoding.TextMarshaler.
func (s Slot) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Slot) UnmarshalText(b []byte) error {
	v, err := ParseSlot(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// Valid reports whether s names a board position.
func (s Slot) Valid() bool { return s >= Top0 && s <= Backpack }

// IsDungeon reports whether s is in the dungeon row.
func (s Slot) IsDungeon() bool { return s >= Top0 && s <= Top3 }

// IsHand reports whether s is the left or right hand.
func (s Slot) IsHand() bool { return s == LeftHand || s == RightHand }

// IsHeroRow reports whether s is in the hero row.
func (s Slot) IsHeroRow() bool { return s >= LeftHand && s <= Backpack }

// OtherHand returns the opposite hand slot.
func (s Slot) OtherHand() Slot {
	if s == LeftHand {
		return RightHand
	}
	return LeftHand
}

// Neighbours returns the dungeon slots on either side of a dungeon slot.
func (s Slot) Neighbours() []Slot {
	if !s.IsDungeon() {
		return nil
	}
	var n []Slot
	if s > Top0 {
		n = append(n, s-1)
	}
	if s < Top3 {
		n = append(n, s+1)
	}
	return n
}

// SlotStatus is the lifecycle state of a board position.
type SlotStatus int

const (
	Empty SlotStatus = iota
	Active
	// Spent cards stay on the board until the next row refill.
	Spent
)

// String returns the protocol string for a SlotStatus.
func (st SlotStatus) String() string {
	switch st {
	case Empty:
		return "empty"
	case Active:
		return "active"
	case Spent:
		return "spent"
	default:
		return "unknown"
	}
}

type cell struct {
	card   *Card
	status SlotStatus
}

// Board holds the eight slots. A slot's status travels with its card when the card moves.
type Board struct {
	cells [NumSlots]cell
}

func (b *Board) card(s Slot) *Card {
	if !s.Valid() {
		return nil
	}
	return b.cells[s].card
}

func (b *Board) status(s Slot) SlotStatus {
	if !s.Valid() {
		return Empty
	}
	return b.cells[s].status
}

func (b *Board) put(s Slot, c *Card, st SlotStatus) {
	if c == nil {
		b.cells[s] = cell{}
		return
	}
	b.cells[s] = cell{card: c, status: st}
}

// take vacates s and returns what it held.
func (b *Board) take(s Slot) (*Card, SlotStatus) {
	c := b.cells[s]
	b.cells[s] = cell{}
	return c.card, c.status
}

func (b *Board) setStatus(s Slot, st SlotStatus) {
	if b.cells[s].card != nil {
		b.cells[s].status = st
	}
}

// move carries the card at from, with its status, to the empty slot to.
func (b *Board) move(from, to Slot) {
	c, st := b.take(from)
	b.put(to, c, st)
}

func (b *Board) hero() *Card {
	return b.cells[Hero].card
}

// cleared reports whether a dungeon slot is empty or spent.
func (b *Board) cleared(s Slot) bool {
	return b.cells[s].card == nil || b.cells[s].status == Spent
}

// occupied returns the number of non-hero cards on the board.
func (b *Board) occupied() int {
	n := 0
	for s := Top0; s <= Backpack; s++ {
		if s != Hero && b.cells[s].card != nil {
			n++
		}
	}
	return n
}
