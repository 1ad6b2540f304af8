package specialist

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"hotel-concierge/internal/domain/intent"
	"hotel-concierge/internal/domain/inventory"
	"hotel-concierge/internal/domain/reservation"
	"hotel-concierge/internal/infra/ledger"
)

const DefaultSitting = 2 * time.Hour

type Table struct {
	ledger Ledger
	logger *slog.Logger
}

func NewTable(l Ledger, logger *slog.Logger) *Table {
	return &Table{ledger: l, logger: logger}
}

// Plan picks the smallest table seating the party. A location preference is
// dropped on the fallback attempt.
func (t *Table) Plan(_ context.Context, req Request) (Plan, error) {
	in, ok := req.Intent.(intent.ReserveTable)
	if !ok {
		return Plan{}, unexpected(req.Intent)
	}
	duration := in.Duration
	if duration == 0 {
		duration = DefaultSitting
	}
	slot, err := reservation.NewSlot(in.At, duration, in.PartySize)
	if err != nil {
		return Plan{}, invalid("reserve table: %v", err)
	}

	if id := strings.TrimSpace(in.TableID); id != "" {
		return Plan{Claims: []ledger.Claim{ledger.TableClaim(ledger.ByID(inventory.KindTable, id), slot)}}, nil
	}
	q := ledger.TableQuery{MinCapacity: in.PartySize, Location: in.Location}
	plan := Plan{Claims: []ledger.Claim{ledger.TableClaim(ledger.AnyTable(q), slot)}}
	if strings.TrimSpace(in.Location) != "" {
		q.Location = ""
		plan.Fallback = []ledger.Claim{ledger.TableClaim(ledger.AnyTable(q), slot)}
		plan.Note = fmt.Sprintf("no table free at %s, seated elsewhere", in.Location)
	}
	return plan, nil
}

func (t *Table) Handle(ctx context.Context, req Request) (Result, error) {
	plan, err := t.Plan(ctx, req)
	if err != nil {
		return Result{}, err
	}
	recs, moved, err := commit(ctx, t.ledger, plan)
	if err != nil {
		return Result{}, err
	}
	res := Result{Records: recs, Summary: t.Describe(recs)}
	if moved {
		res.Notes = append(res.Notes, plan.Note)
	}
	return res, nil
}

func (t *Table) Describe(recs []reservation.Record) string {
	parts := make([]string, 0, len(recs))
	for _, rec := range recs {
		parts = append(parts, fmt.Sprintf("%s reserved for %d at %s",
			strings.Join(rec.ResourceKeys(), ","), rec.Slot().PartySize(), rec.Slot().Start().Format(time.RFC3339)))
	}
	return strings.Join(parts, "; ")
}
