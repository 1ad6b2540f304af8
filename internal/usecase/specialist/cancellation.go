package specialist

import (
	"context"
	"fmt"
	"log/slog"

	"hotel-concierge/internal/domain/intent"
	"hotel-concierge/internal/domain/reservation"
)

type Cancellation struct {
	ledger Ledger
	logger *slog.Logger
}

func NewCancellation(l Ledger, logger *slog.Logger) *Cancellation {
	return &Cancellation{ledger: l, logger: logger}
}

func (c *Cancellation) Handle(ctx context.Context, req Request) (Result, error) {
	in, ok := req.Intent.(intent.CancelReservation)
	if !ok {
		return Result{}, unexpected(req.Intent)
	}
	rec, err := c.ledger.Release(ctx, in.RecordID)
	if err != nil {
		return Result{}, err
	}
	c.logger.InfoContext(ctx, "reservation cancelled",
		slog.String("record_id", rec.ID().String()),
		slog.String("kind", rec.Kind().String()))
	return Result{
		Records: []reservation.Record{rec},
		Summary: fmt.Sprintf("cancelled %s %s", rec.Kind(), rec.ID()),
	}, nil
}
