package commands

import (
	"context"
	"log/slog"

	"hotel-concierge/internal/domain/reservation"
	"hotel-concierge/internal/pkg/clock"
	"hotel-concierge/internal/usecase/dispatch"
	"hotel-concierge/internal/usecase/queries"

	"github.com/google/uuid"
)

type ReservationCommands interface {
	Cancel(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error)
}

type reservationCommandsImpl struct {
	releaser ReservationReleaser
	notifier dispatch.Notifier
	clock    clock.Clock
	currency string
	logger   *slog.Logger
}

func NewReservationCommands(
	releaser ReservationReleaser,
	notifier dispatch.Notifier,
	clk clock.Clock,
	currency string,
	logger *slog.Logger,
) ReservationCommands {
	return &reservationCommandsImpl{
		releaser: releaser,
		notifier: notifier,
		clock:    clk,
		currency: currency,
		logger:   logger,
	}
}

// Cancel releases the record's units. The cancellation event is best effort.
func (u *reservationCommandsImpl) Cancel(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	rec, err := u.releaser.Release(ctx, id)
	if err != nil {
		return nil, err
	}

	if u.notifier != nil {
		e := reservation.NewEvent(reservation.EventCancelled, uuid.Nil, rec, u.clock.Now())
		if pubErr := u.notifier.Publish(context.WithoutCancel(ctx), e); pubErr != nil {
			u.logger.WarnContext(ctx, "failed to publish cancellation",
				slog.String("record_id", id.String()),
				slog.String("error", pubErr.Error()))
		}
	}
	return queries.NewReservationView(rec, u.currency), nil
}
