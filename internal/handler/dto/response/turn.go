package response

import (
	"hotel-concierge/internal/domain/inventory"
	"hotel-concierge/internal/domain/pricing"
	"hotel-concierge/internal/usecase/dispatch"
	"hotel-concierge/internal/usecase/queries"
)

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type InvoiceLineResponse struct {
	RecordID    string        `json:"record_id"`
	Kind        string        `json:"kind"`
	Description string        `json:"description"`
	Quantity    int           `json:"quantity"`
	Subtotal    MoneyResponse `json:"subtotal"`
	Cancelled   bool          `json:"cancelled,omitempty"`
}

type AdjustmentResponse struct {
	Description string        `json:"description"`
	Amount      MoneyResponse `json:"amount"`
}

type DiscountResponse struct {
	Rule      string        `json:"rule"`
	PercentBP int64         `json:"percent_bp"`
	Amount    MoneyResponse `json:"amount"`
}

type InvoiceResponse struct {
	Currency        string                `json:"currency"`
	Lines           []InvoiceLineResponse `json:"lines"`
	Adjustments     []AdjustmentResponse  `json:"adjustments,omitempty"`
	Subtotal        MoneyResponse         `json:"subtotal"`
	TaxRateBP       int64                 `json:"tax_rate_bp"`
	Tax             MoneyResponse         `json:"tax"`
	ServiceChargeBP int64                 `json:"service_charge_bp"`
	ServiceCharge   MoneyResponse         `json:"service_charge"`
	Discount        *DiscountResponse     `json:"discount,omitempty"`
	GrandTotal      MoneyResponse         `json:"grand_total"`
}

type UnitResponse struct {
	Kind      string `json:"kind"`
	ID        string `json:"id"`
	Name      string `json:"name,omitempty"`
	Class     string `json:"class,omitempty"`
	Floor     int    `json:"floor,omitempty"`
	Capacity  int    `json:"capacity,omitempty"`
	Location  string `json:"location,omitempty"`
	Available bool   `json:"available"`
}

type PartResponse struct {
	Index        int                    `json:"index"`
	Kind         string                 `json:"kind"`
	Status       string                 `json:"status"`
	Summary      string                 `json:"summary,omitempty"`
	Notes        []string               `json:"notes,omitempty"`
	Reservations []*ReservationResponse `json:"reservations,omitempty"`
	Invoice      *InvoiceResponse       `json:"invoice,omitempty"`
	Units        []UnitResponse         `json:"units,omitempty"`
	Error        *ErrorResponse         `json:"error,omitempty"`
}

type TurnResponse struct {
	TurnID      string           `json:"turn_id"`
	State       string           `json:"state"`
	Transitions []string         `json:"transitions"`
	Atomic      bool             `json:"atomic"`
	Parts       []PartResponse   `json:"parts"`
	Invoice     *InvoiceResponse `json:"invoice,omitempty"`
	Reply       string           `json:"reply"`
	Error       *ErrorResponse   `json:"error,omitempty"`
}

func FromOutcome(o dispatch.Outcome, currency string) *TurnResponse {
	res := &TurnResponse{
		TurnID:      o.TurnID.String(),
		State:       string(o.State),
		Transitions: make([]string, len(o.Transitions)),
		Atomic:      o.Atomic,
		Parts:       make([]PartResponse, len(o.Parts)),
		Invoice:     FromInvoice(o.Invoice),
		Reply:       o.Reply,
		Error:       fromError(o.Error),
	}
	for i, s := range o.Transitions {
		res.Transitions[i] = string(s)
	}
	for i, p := range o.Parts {
		part := PartResponse{
			Index:   p.Index,
			Kind:    p.Kind.String(),
			Status:  string(p.Status),
			Summary: p.Summary,
			Notes:   p.Notes,
			Invoice: FromInvoice(p.Invoice),
			Error:   fromError(p.Error),
		}
		for _, r := range p.Records {
			part.Reservations = append(part.Reservations, FromReservationView(queries.NewReservationView(r, currency)))
		}
		for _, u := range p.Units {
			part.Units = append(part.Units, fromUnit(u))
		}
		res.Parts[i] = part
	}
	return res
}

func FromInvoice(inv *pricing.Invoice) *InvoiceResponse {
	if inv == nil {
		return nil
	}
	money := func(minor int64) MoneyResponse {
		return MoneyResponse{AmountMinor: minor, Currency: inv.Currency}
	}
	res := &InvoiceResponse{
		Currency:        inv.Currency,
		Lines:           make([]InvoiceLineResponse, len(inv.Lines)),
		Subtotal:        money(inv.Subtotal.Minor()),
		TaxRateBP:       inv.TaxRateBP,
		Tax:             money(inv.Tax.Minor()),
		ServiceChargeBP: inv.ServiceChargeBP,
		ServiceCharge:   money(inv.ServiceCharge.Minor()),
		GrandTotal:      money(inv.GrandTotal.Minor()),
	}
	for i, l := range inv.Lines {
		res.Lines[i] = InvoiceLineResponse{
			RecordID:    l.RecordID.String(),
			Kind:        l.Kind.String(),
			Description: l.Description,
			Quantity:    l.Quantity,
			Subtotal:    money(l.Subtotal.Minor()),
			Cancelled:   l.Cancelled,
		}
	}
	for _, a := range inv.Adjustments {
		res.Adjustments = append(res.Adjustments, AdjustmentResponse{Description: a.Description, Amount: money(a.Amount.Minor())})
	}
	if d := inv.Discount; d != nil {
		res.Discount = &DiscountResponse{Rule: string(d.Rule), PercentBP: d.PercentBP, Amount: money(d.Amount.Minor())}
	}
	return res
}

func fromError(e *dispatch.Error) *ErrorResponse {
	if e == nil {
		return nil
	}
	return &ErrorResponse{Code: e.Code, Message: e.Message}
}

func fromUnit(u inventory.Unit) UnitResponse {
	res := UnitResponse{Kind: string(u.Kind()), ID: u.ID(), Available: u.IsAvailable()}
	switch v := u.(type) {
	case inventory.Room:
		res.Class = string(v.Class())
		res.Floor = v.Floor()
	case inventory.Table:
		res.Capacity = v.Capacity()
		res.Location = v.Location()
	case inventory.MenuItem:
		res.Name = v.Name()
	}
	return res
}
