package dispatch

import (
	"context"
	"log/slog"

	"hotel-concierge/internal/domain/intent"
	"hotel-concierge/internal/infra/ledger"
	"hotel-concierge/internal/pkg/errs"
	"hotel-concierge/internal/usecase/specialist"

	"github.com/google/uuid"
)

// runBundle commits the booking intents at idx in one ledger transaction.
// Either every part completes or every part fails with the same error.
// The fallback attempt reuses the transaction id of the first one.
func (d *Dispatcher) runBundle(ctx context.Context, turn Turn, intents []intent.Intent, idx []int, parts []Part) {
	started := d.clock.Now()
	planners := make([]specialist.Planner, len(idx))
	plans := make([]specialist.Plan, len(idx))

	fail := func(err error) {
		for _, i := range idx {
			parts[i] = Part{Index: i, Kind: intents[i].Kind(), Status: PartFailed, Error: newError(err)}
			d.recorder.ObserveIntent(intents[i].Kind(), PartFailed, d.clock.Now().Sub(started))
		}
		d.logger.InfoContext(ctx, "booking bundle failed",
			slog.String("turn_id", turn.ID.String()),
			slog.Int("intents", len(idx)),
			slog.String("code", errs.Code(err)),
			slog.String("error", err.Error()))
	}

	for k, i := range idx {
		p, err := d.plannerFor(intents[i])
		if err == nil && p == nil {
			err = errs.Mark(errs.Newf("specialist for %s is not configured", intents[i].Kind()), errs.ErrInvalidIntent)
		}
		if err != nil {
			fail(err)
			return
		}
		plan, err := p.Plan(ctx, specialist.Request{TurnID: turn.ID, Intent: intents[i], Discount: turn.Discount})
		if err != nil {
			fail(errs.Wrapf(err, "intent %d (%s)", i+1, intents[i].Kind()))
			return
		}
		planners[k] = p
		plans[k] = plan
	}

	primary := make([][]ledger.Claim, len(plans))
	alternate := make([][]ledger.Claim, len(plans))
	hasFallback := false
	for k, plan := range plans {
		primary[k] = plan.Claims
		alternate[k] = plan.Claims
		if len(plan.Fallback) > 0 {
			alternate[k] = plan.Fallback
			hasFallback = true
		}
	}

	txID := uuid.New()
	used, fellBack := primary, false
	recs, err := d.ledger.ReserveAll(ctx, txID, flatten(primary))
	if err != nil && hasFallback && errs.Is(err, errs.ErrResourceUnavailable) {
		fbRecs, fbErr := d.ledger.ReserveAll(ctx, txID, flatten(alternate))
		switch {
		case fbErr == nil:
			recs, err, used, fellBack = fbRecs, nil, alternate, true
		case errs.Is(fbErr, errs.ErrCanceled):
			err = fbErr
		}
	}
	if err != nil {
		fail(err)
		return
	}

	offset := 0
	for k, i := range idx {
		n := len(used[k])
		mine := recs[offset : offset+n : offset+n]
		offset += n

		part := Part{Index: i, Kind: intents[i].Kind(), Status: PartCompleted, Records: mine, Summary: planners[k].Describe(mine)}
		if fellBack && len(plans[k].Fallback) > 0 {
			part.Notes = append(part.Notes, plans[k].Note)
		}
		parts[i] = part
		d.recorder.ObserveIntent(part.Kind, PartCompleted, d.clock.Now().Sub(started))
	}
}

func flatten(groups [][]ledger.Claim) []ledger.Claim {
	var out []ledger.Claim
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}
