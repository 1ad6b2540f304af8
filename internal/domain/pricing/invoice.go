package pricing

import (
	"hotel-concierge/internal/domain/reservation"

	"github.com/google/uuid"
)

type Line struct {
	RecordID    uuid.UUID
	Kind        reservation.Kind
	Description string
	Quantity    int
	Subtotal    reservation.Money
	Cancelled   bool
}

// Adjustment is a freeform charge or credit added by billing.
type Adjustment struct {
	Description string
	Amount      reservation.Money
}

type AppliedDiscount struct {
	Rule      DiscountRule
	PercentBP int64
	Amount    reservation.Money
}

// Invoice is derived data; it is never stored and can be recomputed from its records.
type Invoice struct {
	Currency        string
	Lines           []Line
	Adjustments     []Adjustment
	Subtotal        reservation.Money
	TaxRateBP       int64
	Tax             reservation.Money
	ServiceChargeBP int64
	ServiceCharge   reservation.Money
	Discount        *AppliedDiscount
	GrandTotal      reservation.Money
}

func (i Invoice) DiscountRule() DiscountRule {
	if i.Discount == nil {
		return DiscountNone
	}
	return i.Discount.Rule
}
