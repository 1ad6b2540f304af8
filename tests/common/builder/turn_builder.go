//go:build unit || e2e

package builder

import (
	"time"

	reqdto "hotel-concierge/internal/handler/dto/request"
	"hotel-concierge/internal/usecase/queries"

	"github.com/google/uuid"
)

type TurnRequestBuilder struct {
	req reqdto.SubmitTurnRequest
}

func NewTurnRequestBuilder() *TurnRequestBuilder {
	return &TurnRequestBuilder{req: reqdto.SubmitTurnRequest{
		Text:     "Book a double room from May 10 to May 13 and a pepperoni pizza",
		Language: "en",
		History: []reqdto.MessageRequest{
			{Role: "user", Content: "Hello"},
			{Role: "assistant", Content: "Welcome! How can I help?"},
		},
	}}
}

func (b *TurnRequestBuilder) WithText(text string) *TurnRequestBuilder {
	b.req.Text = text
	return b
}

func (b *TurnRequestBuilder) WithLoyalty() *TurnRequestBuilder {
	b.req.LoyaltyMember = true
	return b
}

func (b *TurnRequestBuilder) Build() reqdto.SubmitTurnRequest {
	return b.req
}

type ReservationViewBuilder struct {
	view queries.ReservationView
}

func NewReservationViewBuilder() *ReservationViewBuilder {
	in := time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC)
	out := in.AddDate(0, 0, 3)
	return &ReservationViewBuilder{view: queries.ReservationView{
		ID:            uuid.New(),
		TransactionID: uuid.New(),
		Kind:          "room_booking",
		Resources:     []string{"room/201"},
		Quantity:      3,
		SubtotalMinor: 45000,
		Currency:      "USD",
		Status:        "committed",
		CheckIn:       &in,
		CheckOut:      &out,
		CreatedAt:     time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC),
	}}
}

func (b *ReservationViewBuilder) Cancelled(at time.Time) *ReservationViewBuilder {
	b.view.Status = "cancelled"
	b.view.CancelledAt = &at
	return b
}

func (b *ReservationViewBuilder) Build() *queries.ReservationView {
	v := b.view
	return &v
}
