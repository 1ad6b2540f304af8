package specialist

import (
	"context"
	"fmt"

	"hotel-concierge/internal/domain/intent"
	"hotel-concierge/internal/domain/pricing"
	"hotel-concierge/internal/domain/reservation"

	"github.com/google/uuid"
)

// Billing only reads: it never reserves or releases anything.
type Billing struct {
	ledger     Ledger
	calculator pricing.Calculator
}

func NewBilling(l Ledger, calc pricing.Calculator) *Billing {
	return &Billing{ledger: l, calculator: calc}
}

// Handle invoices the records named by the intent plus those committed earlier in the turn.
func (b *Billing) Handle(_ context.Context, req Request) (Result, error) {
	in, ok := req.Intent.(intent.GenerateInvoice)
	if !ok {
		return Result{}, unexpected(req.Intent)
	}

	seen := make(map[uuid.UUID]bool, len(req.Prior)+len(in.RecordIDs))
	records := make([]reservation.Record, 0, len(req.Prior)+len(in.RecordIDs))
	for _, r := range req.Prior {
		if !seen[r.ID()] {
			seen[r.ID()] = true
			records = append(records, r)
		}
	}
	for _, id := range in.RecordIDs {
		if seen[id] {
			continue
		}
		r, err := b.ledger.Record(id)
		if err != nil {
			return Result{}, err
		}
		seen[id] = true
		records = append(records, r)
	}

	adjustments := make([]pricing.Adjustment, 0, len(in.Adjustments))
	for _, a := range in.Adjustments {
		adjustments = append(adjustments, pricing.Adjustment{
			Description: a.Description,
			Amount:      reservation.NewMoney(a.AmountMinor),
		})
	}

	inv, err := b.calculator.ComputeInvoice(records, req.Discount, adjustments...)
	if err != nil {
		return Result{}, err
	}
	return Result{Invoice: &inv, Summary: describeInvoice(inv)}, nil
}

// Summarize prices the records of a turn that asked for no explicit invoice.
func (b *Billing) Summarize(records []reservation.Record, dctx pricing.DiscountContext) (pricing.Invoice, error) {
	return b.calculator.ComputeInvoice(records, dctx)
}

func describeInvoice(inv pricing.Invoice) string {
	s := fmt.Sprintf("invoice over %d line(s), total %d %s", len(inv.Lines), inv.GrandTotal.Minor(), inv.Currency)
	if inv.Discount != nil {
		s += fmt.Sprintf(" after %s discount", inv.Discount.Rule)
	}
	return s
}
