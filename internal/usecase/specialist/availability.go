package specialist

import (
	"context"
	"fmt"

	"hotel-concierge/internal/domain/intent"
	"hotel-concierge/internal/domain/inventory"
	"hotel-concierge/internal/infra/ledger"
)

// Availability answers from a snapshot; the answer can be stale by the time a booking follows.
type Availability struct {
	ledger Ledger
}

func NewAvailability(l Ledger) *Availability {
	return &Availability{ledger: l}
}

func (a *Availability) Handle(_ context.Context, req Request) (Result, error) {
	in, ok := req.Intent.(intent.CheckAvailability)
	if !ok {
		return Result{}, unexpected(req.Intent)
	}

	f := ledger.Filter{Kind: in.Resource, OnlyAvailable: true}
	switch in.Resource {
	case inventory.KindRoom:
		if in.Class != "" {
			if !in.Class.IsValid() {
				return Result{}, invalid("check availability: unknown class %q", in.Class)
			}
			f.Match = func(u inventory.Unit) bool {
				r, ok := u.(inventory.Room)
				return ok && r.Class() == in.Class
			}
		}
	case inventory.KindTable:
		if in.PartySize > 0 {
			f.Match = func(u inventory.Unit) bool {
				t, ok := u.(inventory.Table)
				return ok && t.Capacity() >= in.PartySize
			}
		}
	case inventory.KindMenuItem:
	default:
		return Result{}, invalid("check availability: unknown resource %q", in.Resource)
	}

	units := a.ledger.Query(f)
	return Result{
		Units:   units,
		Summary: fmt.Sprintf("%d %s(s) available", len(units), in.Resource),
	}, nil
}
