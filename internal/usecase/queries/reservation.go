package queries

import (
	"context"

	"hotel-concierge/internal/domain/reservation"
	"hotel-concierge/internal/infra/ledger"
	"hotel-concierge/internal/pkg/errs"

	"github.com/google/uuid"
)

type ReservationFilter struct {
	TransactionID uuid.UUID
	Status        reservation.Status
	Kind          reservation.Kind
}

type RecordReader interface {
	Record(id uuid.UUID) (reservation.Record, error)
	Records(f ledger.RecordFilter) []reservation.Record
}

type ReservationQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*ReservationView, error)
	List(ctx context.Context, f ReservationFilter) ([]*ReservationView, error)
}

type reservationQueriesImpl struct {
	reader   RecordReader
	currency string
}

func NewReservationQueries(reader RecordReader, currency string) ReservationQueries {
	return &reservationQueriesImpl{reader: reader, currency: currency}
}

func (q *reservationQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*ReservationView, error) {
	if err := errs.FromContext(ctx); err != nil {
		return nil, err
	}
	rec, err := q.reader.Record(id)
	if err != nil {
		return nil, err
	}
	return NewReservationView(rec, q.currency), nil
}

func (q *reservationQueriesImpl) List(ctx context.Context, f ReservationFilter) ([]*ReservationView, error) {
	if err := errs.FromContext(ctx); err != nil {
		return nil, err
	}
	if f.Status != "" && !f.Status.IsValid() {
		return nil, errs.Wrapf(errs.ErrInvalidIntent, "unknown status %q", f.Status)
	}
	if f.Kind != "" && !f.Kind.IsValid() {
		return nil, errs.Wrapf(errs.ErrInvalidIntent, "unknown kind %q", f.Kind)
	}
	recs := q.reader.Records(ledger.RecordFilter{
		TransactionID: f.TransactionID,
		Status:        f.Status,
		Kind:          f.Kind,
	})
	views := make([]*ReservationView, 0, len(recs))
	for _, r := range recs {
		views = append(views, NewReservationView(r, q.currency))
	}
	return views, nil
}

func NewReservationView(r reservation.Record, currency string) *ReservationView {
	v := &ReservationView{
		ID:            r.ID(),
		TransactionID: r.TransactionID(),
		Kind:          r.Kind().String(),
		Resources:     r.ResourceKeys(),
		Quantity:      r.Quantity(),
		SubtotalMinor: r.Subtotal().Minor(),
		Currency:      currency,
		Status:        r.Status().String(),
		CreatedAt:     r.CreatedAt(),
		CancelledAt:   r.CancelledAt(),
	}
	if stay := r.Stay(); !stay.IsZero() {
		in, out := stay.CheckIn(), stay.CheckOut()
		v.CheckIn, v.CheckOut = &in, &out
	}
	if slot := r.Slot(); !slot.IsZero() {
		start, end := slot.Start(), slot.End()
		v.SlotStart, v.SlotEnd = &start, &end
		v.PartySize = slot.PartySize()
	}
	if line := r.Line(); line != nil {
		v.Line = &FoodLineView{
			ItemKey:        line.ItemKey,
			Components:     line.Components,
			UnitPriceMinor: line.UnitPrice.Minor(),
		}
	}
	return v
}
