// Package specialist turns one intent into ledger operations and a structured result.
package specialist

import (
	"context"

	"hotel-concierge/internal/domain/intent"
	"hotel-concierge/internal/domain/inventory"
	"hotel-concierge/internal/domain/pricing"
	"hotel-concierge/internal/domain/reservation"
	"hotel-concierge/internal/infra/ledger"
	"hotel-concierge/internal/pkg/errs"

	"github.com/google/uuid"
)

// Ledger is the part of the resource ledger the specialists rely on.
type Ledger interface {
	ReserveAll(ctx context.Context, txID uuid.UUID, claims []ledger.Claim) ([]reservation.Record, error)
	Release(ctx context.Context, id uuid.UUID) (reservation.Record, error)
	Query(f ledger.Filter) []inventory.Unit
	Record(id uuid.UUID) (reservation.Record, error)
}

// Request is one intent of a turn. Prior holds records committed earlier in the same turn.
type Request struct {
	TurnID   uuid.UUID
	Intent   intent.Intent
	Prior    []reservation.Record
	Discount pricing.DiscountContext
}

type Result struct {
	Records []reservation.Record
	Summary string
	Notes   []string
	Invoice *pricing.Invoice
	Units   []inventory.Unit
}

type Handler interface {
	Handle(ctx context.Context, req Request) (Result, error)
}

// Plan is what a booking specialist would claim, without committing anything.
// Fallback, when set, replaces Claims on a second and final attempt.
type Plan struct {
	Claims   []ledger.Claim
	Fallback []ledger.Claim
	Note     string
}

type Planner interface {
	Plan(ctx context.Context, req Request) (Plan, error)
	Describe(recs []reservation.Record) string
}

type BookingHandler interface {
	Handler
	Planner
}

func invalid(format string, args ...any) error {
	return errs.Mark(errs.Newf(format, args...), errs.ErrInvalidIntent)
}

func unexpected(i intent.Intent) error {
	if i == nil {
		return invalid("missing intent")
	}
	return invalid("unexpected intent %s", i.Kind())
}

// commit reserves plan.Claims and, when they are unavailable, plan.Fallback once.
// Each commit is its own ledger transaction with a ledger-assigned id.
// The first error is the one reported when both attempts fail.
func commit(ctx context.Context, l Ledger, plan Plan) ([]reservation.Record, bool, error) {
	recs, err := l.ReserveAll(ctx, uuid.Nil, plan.Claims)
	if err == nil {
		return recs, false, nil
	}
	if len(plan.Fallback) == 0 || !errs.Is(err, errs.ErrResourceUnavailable) {
		return nil, false, err
	}
	recs, fbErr := l.ReserveAll(ctx, uuid.Nil, plan.Fallback)
	if fbErr != nil {
		if errs.Is(fbErr, errs.ErrCanceled) {
			return nil, false, fbErr
		}
		return nil, false, err
	}
	return recs, true, nil
}
