package ledger

import (
	"cmp"
	"fmt"
	"strings"

	"hotel-concierge/internal/domain/inventory"
	"hotel-concierge/internal/domain/reservation"
)

// Selector names either one unit by id or any unit of a kind matching a predicate.
// Predicates only inspect static attributes; availability is always decided under lock.
type Selector struct {
	kind  inventory.Kind
	id    string
	match func(inventory.Unit) bool
	rank  func(a, b inventory.Unit) int
	desc  string
}

func ByID(kind inventory.Kind, id string) Selector {
	return Selector{kind: kind, id: strings.TrimSpace(id), desc: fmt.Sprintf("%s %s", kind, id)}
}

type RoomQuery struct {
	Class    inventory.Class
	Floor    *int
	MinFloor *int
}

func AnyRoom(q RoomQuery) Selector {
	desc := fmt.Sprintf("any %s room", q.Class)
	switch {
	case q.Floor != nil:
		desc += fmt.Sprintf(" on floor %d", *q.Floor)
	case q.MinFloor != nil:
		desc += fmt.Sprintf(" on floor >= %d", *q.MinFloor)
	}
	return Selector{
		kind: inventory.KindRoom,
		match: func(u inventory.Unit) bool {
			r, ok := u.(inventory.Room)
			if !ok {
				return false
			}
			if q.Class != "" && r.Class() != q.Class {
				return false
			}
			if q.Floor != nil && r.Floor() != *q.Floor {
				return false
			}
			if q.MinFloor != nil && r.Floor() < *q.MinFloor {
				return false
			}
			return true
		},
		rank: func(a, b inventory.Unit) int {
			return cmp.Compare(a.(inventory.Room).Floor(), b.(inventory.Room).Floor())
		},
		desc: desc,
	}
}

type TableQuery struct {
	MinCapacity int
	Location    string
}

// AnyTable prefers the smallest table that seats the party.
func AnyTable(q TableQuery) Selector {
	location := strings.ToLower(strings.TrimSpace(q.Location))
	desc := fmt.Sprintf("any table for %d", q.MinCapacity)
	if location != "" {
		desc += " at " + location
	}
	return Selector{
		kind: inventory.KindTable,
		match: func(u inventory.Unit) bool {
			t, ok := u.(inventory.Table)
			if !ok {
				return false
			}
			if t.Capacity() < q.MinCapacity {
				return false
			}
			return location == "" || t.Location() == location
		},
		rank: func(a, b inventory.Unit) int {
			return cmp.Compare(a.(inventory.Table).Capacity(), b.(inventory.Table).Capacity())
		},
		desc: desc,
	}
}

func (s Selector) Kind() inventory.Kind { return s.kind }
func (s Selector) ID() string           { return s.id }
func (s Selector) IsSpecific() bool     { return s.id != "" }
func (s Selector) String() string       { return s.desc }

func (s Selector) matches(u inventory.Unit) bool {
	if u.Kind() != s.kind {
		return false
	}
	if s.IsSpecific() {
		return u.ID() == s.id
	}
	return s.match == nil || s.match(u)
}

func (s Selector) less(a, b inventory.Unit) int {
	if s.rank != nil {
		if c := s.rank(a, b); c != 0 {
			return c
		}
	}
	return cmp.Compare(a.Key(), b.Key())
}

// Claim asks the ledger for one unit and describes what the resulting record prices.
type Claim struct {
	Selector   Selector
	Quantity   int
	Stay       reservation.Stay
	Slot       reservation.Slot
	Components [][]string
}

func RoomClaim(sel Selector, stay reservation.Stay) Claim {
	return Claim{Selector: sel, Quantity: stay.Nights(), Stay: stay}
}

func TableClaim(sel Selector, slot reservation.Slot) Claim {
	return Claim{Selector: sel, Quantity: 1, Slot: slot}
}

func FoodClaim(itemKey string, quantity int, components [][]string) Claim {
	return Claim{
		Selector:   ByID(inventory.KindMenuItem, itemKey),
		Quantity:   quantity,
		Components: components,
	}
}

func (c Claim) recordKind() reservation.Kind {
	switch c.Selector.kind {
	case inventory.KindRoom:
		return reservation.KindRoomBooking
	case inventory.KindTable:
		return reservation.KindTableBooking
	case inventory.KindMenuItem:
		return reservation.KindFoodOrder
	default:
		return ""
	}
}

func (c Claim) validate() error {
	if !c.Selector.kind.IsValid() {
		return fmt.Errorf("unknown unit kind %q", c.Selector.kind)
	}
	if c.Quantity <= 0 {
		return fmt.Errorf("%s: quantity must be positive", c.Selector)
	}
	switch c.Selector.kind {
	case inventory.KindRoom:
		if c.Stay.IsZero() {
			return fmt.Errorf("%s: stay is required", c.Selector)
		}
	case inventory.KindTable:
		if c.Slot.IsZero() {
			return fmt.Errorf("%s: slot is required", c.Selector)
		}
	case inventory.KindMenuItem:
		if !c.Selector.IsSpecific() {
			return fmt.Errorf("%s: menu items are claimed by key", c.Selector)
		}
	}
	return nil
}
