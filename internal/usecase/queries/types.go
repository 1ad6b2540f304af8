package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side)
type RoomView struct {
	ID               string
	Floor            int
	Class            string
	NightlyRateMinor int64
	Currency         string
	Status           string
}

type TableView struct {
	ID              string
	Capacity        int
	Location        string
	BookingFeeMinor int64
	Currency        string
	Status          string
}

type MenuItemView struct {
	Key            string
	Name           string
	Aliases        []string
	PriceMinor     int64
	Currency       string
	Customizations map[string]int64
	Available      bool
	Portions       *int
}

type FoodLineView struct {
	ItemKey        string
	Components     [][]string
	UnitPriceMinor int64
}

type ReservationView struct {
	ID            uuid.UUID
	TransactionID uuid.UUID
	Kind          string
	Resources     []string
	Quantity      int
	SubtotalMinor int64
	Currency      string
	Status        string
	CheckIn       *time.Time
	CheckOut      *time.Time
	SlotStart     *time.Time
	SlotEnd       *time.Time
	PartySize     int
	Line          *FoodLineView
	CreatedAt     time.Time
	CancelledAt   *time.Time
}
