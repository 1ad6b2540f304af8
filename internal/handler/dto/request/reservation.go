package request

import (
	"hotel-concierge/internal/domain/reservation"
	"hotel-concierge/internal/usecase/queries"

	"github.com/google/uuid"
)

type ListReservationsQuery struct {
	TransactionID string `form:"transaction_id" binding:"omitempty,uuid"`
	Status        string `form:"status" binding:"omitempty,oneof=committed cancelled"`
	Kind          string `form:"kind" binding:"omitempty,oneof=room_booking table_booking food_order"`
}

func (q ListReservationsQuery) ToFilter() queries.ReservationFilter {
	f := queries.ReservationFilter{
		Status: reservation.Status(q.Status),
		Kind:   reservation.Kind(q.Kind),
	}
	if id, err := uuid.Parse(q.TransactionID); err == nil {
		f.TransactionID = id
	}
	return f
}
