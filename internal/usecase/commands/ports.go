package commands

import (
	"context"

	"hotel-concierge/internal/domain/reservation"
	"hotel-concierge/internal/usecase/dispatch"

	"github.com/google/uuid"
)

// Write-side ports; the ledger and dispatcher satisfy them directly
type TurnDispatcher interface {
	Handle(ctx context.Context, turn dispatch.Turn) (dispatch.Outcome, error)
}

type ReservationReleaser interface {
	Release(ctx context.Context, id uuid.UUID) (reservation.Record, error)
}
