// Package intent defines the closed set of structured requests produced by the external classifier.
package intent

import (
	"time"

	"hotel-concierge/internal/domain/inventory"

	"github.com/google/uuid"
)

type Kind string

const (
	KindBookRoom          Kind = "book_room"
	KindOrderFood         Kind = "order_food"
	KindReserveTable      Kind = "reserve_table"
	KindGenerateInvoice   Kind = "generate_invoice"
	KindDirectAnswer      Kind = "direct_answer"
	KindCancelReservation Kind = "cancel_reservation"
	KindCheckAvailability Kind = "check_availability"
)

func (k Kind) String() string {
	return string(k)
}

// Intent is implemented only by the types in this package.
type Intent interface {
	Kind() Kind
	isIntent()
}

type BookRoom struct {
	RoomID   string
	Class    inventory.Class
	CheckIn  time.Time
	CheckOut time.Time
	Floor    *int
	MinFloor *int
}

type OrderFood struct {
	Items []OrderLine
}

// OrderLine with two Components is a split (half-and-half) item.
type OrderLine struct {
	Name       string
	Quantity   int
	Components [][]string
}

type ReserveTable struct {
	TableID   string
	PartySize int
	At        time.Time
	Duration  time.Duration
	Location  string
}

type GenerateInvoice struct {
	RecordIDs   []uuid.UUID
	Adjustments []Adjustment
}

// Adjustment amounts are minor units; negative values are credits.
type Adjustment struct {
	Description string
	AmountMinor int64
}

type DirectAnswer struct {
	Reply string
}

type CancelReservation struct {
	RecordID uuid.UUID
}

type CheckAvailability struct {
	Resource  inventory.Kind
	Class     inventory.Class
	PartySize int
}

func (BookRoom) Kind() Kind          { return KindBookRoom }
func (OrderFood) Kind() Kind         { return KindOrderFood }
func (ReserveTable) Kind() Kind      { return KindReserveTable }
func (GenerateInvoice) Kind() Kind   { return KindGenerateInvoice }
func (DirectAnswer) Kind() Kind      { return KindDirectAnswer }
func (CancelReservation) Kind() Kind { return KindCancelReservation }
func (CheckAvailability) Kind() Kind { return KindCheckAvailability }

func (BookRoom) isIntent()          {}
func (OrderFood) isIntent()         {}
func (ReserveTable) isIntent()      {}
func (GenerateInvoice) isIntent()   {}
func (DirectAnswer) isIntent()      {}
func (CancelReservation) isIntent() {}
func (CheckAvailability) isIntent() {}

// DependsOnBookings reports whether the intent must wait for the booking intents of its turn.
func DependsOnBookings(i Intent) bool {
	_, ok := i.(GenerateInvoice)
	return ok
}

// IsBooking reports whether the intent commits new ledger records.
func IsBooking(i Intent) bool {
	switch i.(type) {
	case BookRoom, OrderFood, ReserveTable:
		return true
	default:
		return false
	}
}

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one entry of the conversation history passed in by the caller.
type Message struct {
	Role    Role
	Content string
}

// Classification is the classifier's reading of one user turn.
// Atomic asks for every booking intent to commit in a single all-or-nothing transaction.
type Classification struct {
	Intents []Intent
	Atomic  bool
}
