package pricing

import (
	"strings"

	"hotel-concierge/internal/domain/reservation"
	"hotel-concierge/internal/pkg/errs"
)

type Calculator interface {
	ComputeInvoice(records []reservation.Record, dctx DiscountContext, adjustments ...Adjustment) (Invoice, error)
}

type DefaultCalculator struct {
	policy Policy
}

func NewCalculator(policy Policy) *DefaultCalculator {
	return &DefaultCalculator{policy: policy}
}

func (c *DefaultCalculator) Policy() Policy {
	return c.policy
}

// ComputeInvoice sums committed subtotals and adjustments, adds tax and service charge on the
// subtotal, then applies at most one discount on the gross amount: bulk before loyalty.
func (c *DefaultCalculator) ComputeInvoice(
	records []reservation.Record,
	dctx DiscountContext,
	adjustments ...Adjustment,
) (Invoice, error) {
	if len(records) == 0 {
		return Invoice{}, errs.Wrap(errs.ErrInvalidRecordSet, "cannot invoice zero records")
	}

	inv := Invoice{
		Currency:        c.policy.Currency,
		Lines:           make([]Line, 0, len(records)),
		TaxRateBP:       c.policy.TaxRateBP,
		ServiceChargeBP: c.policy.ServiceChargeBP,
	}

	quantity := 0
	for _, r := range records {
		inv.Lines = append(inv.Lines, Line{
			RecordID:    r.ID(),
			Kind:        r.Kind(),
			Description: describe(r),
			Quantity:    r.Quantity(),
			Subtotal:    r.Subtotal(),
			Cancelled:   r.IsCancelled(),
		})
		if r.IsCancelled() {
			continue
		}
		inv.Subtotal = inv.Subtotal.Add(r.Subtotal())
		// bulk counts every committed unit: room nights, table bookings and portions
		quantity += r.Quantity()
	}
	for _, a := range adjustments {
		inv.Adjustments = append(inv.Adjustments, a)
		inv.Subtotal = inv.Subtotal.Add(a.Amount)
	}

	taxable := inv.Subtotal
	if taxable.IsNegative() {
		taxable = reservation.Money{}
	}
	inv.Tax = taxable.PercentBP(c.policy.TaxRateBP)
	inv.ServiceCharge = taxable.PercentBP(c.policy.ServiceChargeBP)
	gross := reservation.Sum(inv.Subtotal, inv.Tax, inv.ServiceCharge)

	if rule, bp := c.selectDiscount(quantity, dctx); rule != DiscountNone && gross.Minor() > 0 {
		inv.Discount = &AppliedDiscount{
			Rule:      rule,
			PercentBP: bp,
			Amount:    gross.PercentBP(bp),
		}
		gross = gross.Sub(inv.Discount.Amount)
	}

	if gross.IsNegative() {
		gross = reservation.Money{}
	}
	inv.GrandTotal = gross
	return inv, nil
}

// first matching rule wins; rules never stack
func (c *DefaultCalculator) selectDiscount(quantity int, dctx DiscountContext) (DiscountRule, int64) {
	switch {
	case c.policy.Bulk.PercentBP > 0 && quantity >= c.policy.Bulk.MinQuantity:
		return DiscountBulk, c.policy.Bulk.PercentBP
	case c.policy.Loyalty.PercentBP > 0 && dctx.LoyaltyMember:
		return DiscountLoyalty, c.policy.Loyalty.PercentBP
	default:
		return DiscountNone, 0
	}
}

func describe(r reservation.Record) string {
	keys := r.ResourceKeys()
	switch r.Kind() {
	case reservation.KindFoodOrder:
		if line := r.Line(); line != nil {
			return line.ItemKey
		}
	case reservation.KindRoomBooking, reservation.KindTableBooking:
	}
	return strings.Join(keys, ",")
}
