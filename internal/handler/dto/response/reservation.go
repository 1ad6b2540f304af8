package response

import (
	"time"

	"hotel-concierge/internal/usecase/queries"
)

const dateLayout = "2006-01-02"

type MoneyResponse struct {
	AmountMinor int64  `json:"amount_minor"`
	Currency    string `json:"currency"`
}

type FoodLineResponse struct {
	ItemKey        string     `json:"item_key"`
	Components     [][]string `json:"components,omitempty"`
	UnitPriceMinor int64      `json:"unit_price_minor"`
}

type ReservationResponse struct {
	ID            string            `json:"id"`
	TransactionID string            `json:"transaction_id"`
	Kind          string            `json:"kind"`
	Resources     []string          `json:"resources"`
	Quantity      int               `json:"quantity"`
	Subtotal      MoneyResponse     `json:"subtotal"`
	Status        string            `json:"status"`
	CheckIn       string            `json:"check_in,omitempty"`
	CheckOut      string            `json:"check_out,omitempty"`
	SlotStart     string            `json:"slot_start,omitempty"`
	SlotEnd       string            `json:"slot_end,omitempty"`
	PartySize     int               `json:"party_size,omitempty"`
	Line          *FoodLineResponse `json:"line,omitempty"`
	CreatedAt     int64             `json:"created_at"`
	CancelledAt   *int64            `json:"cancelled_at,omitempty"`
}

func FromReservationView(v *queries.ReservationView) *ReservationResponse {
	res := &ReservationResponse{
		ID:            v.ID.String(),
		TransactionID: v.TransactionID.String(),
		Kind:          v.Kind,
		Resources:     v.Resources,
		Quantity:      v.Quantity,
		Subtotal:      MoneyResponse{AmountMinor: v.SubtotalMinor, Currency: v.Currency},
		Status:        v.Status,
		CheckIn:       formatTime(v.CheckIn, dateLayout),
		CheckOut:      formatTime(v.CheckOut, dateLayout),
		SlotStart:     formatTime(v.SlotStart, time.RFC3339),
		SlotEnd:       formatTime(v.SlotEnd, time.RFC3339),
		PartySize:     v.PartySize,
		CreatedAt:     v.CreatedAt.Unix(),
	}
	if v.Line != nil {
		res.Line = &FoodLineResponse{
			ItemKey:        v.Line.ItemKey,
			Components:     v.Line.Components,
			UnitPriceMinor: v.Line.UnitPriceMinor,
		}
	}
	if v.CancelledAt != nil {
		at := v.CancelledAt.Unix()
		res.CancelledAt = &at
	}
	return res
}

func FromReservationViews(views []*queries.ReservationView) []*ReservationResponse {
	res := make([]*ReservationResponse, len(views))
	for i, v := range views {
		res[i] = FromReservationView(v)
	}
	return res
}

func formatTime(t *time.Time, layout string) string {
	if t == nil {
		return ""
	}
	return t.Format(layout)
}
