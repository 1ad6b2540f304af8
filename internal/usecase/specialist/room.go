package specialist

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"hotel-concierge/internal/domain/intent"
	"hotel-concierge/internal/domain/inventory"
	"hotel-concierge/internal/domain/reservation"
	"hotel-concierge/internal/infra/ledger"
)

type Room struct {
	ledger Ledger
	logger *slog.Logger
}

func NewRoom(l Ledger, logger *slog.Logger) *Room {
	return &Room{ledger: l, logger: logger}
}

// Plan selects a named room or any room of the class. Class requests fall back
// once to the next larger class with the same floor preferences.
func (r *Room) Plan(_ context.Context, req Request) (Plan, error) {
	in, ok := req.Intent.(intent.BookRoom)
	if !ok {
		return Plan{}, unexpected(req.Intent)
	}
	stay, err := reservation.NewStay(in.CheckIn, in.CheckOut)
	if err != nil {
		return Plan{}, invalid("book room: %v", err)
	}

	if id := strings.TrimSpace(in.RoomID); id != "" {
		return Plan{Claims: []ledger.Claim{ledger.RoomClaim(ledger.ByID(inventory.KindRoom, id), stay)}}, nil
	}

	class := in.Class
	if class == "" {
		class = inventory.ClassSingle
	}
	if !class.IsValid() {
		return Plan{}, invalid("book room: unknown class %q", in.Class)
	}
	q := ledger.RoomQuery{Class: class, Floor: in.Floor, MinFloor: in.MinFloor}
	plan := Plan{Claims: []ledger.Claim{ledger.RoomClaim(ledger.AnyRoom(q), stay)}}
	if next, ok := class.Upgrade(); ok {
		q.Class = next
		plan.Fallback = []ledger.Claim{ledger.RoomClaim(ledger.AnyRoom(q), stay)}
		plan.Note = fmt.Sprintf("no %s room was free, upgraded to %s", class, next)
	}
	return plan, nil
}

func (r *Room) Handle(ctx context.Context, req Request) (Result, error) {
	plan, err := r.Plan(ctx, req)
	if err != nil {
		return Result{}, err
	}
	recs, upgraded, err := commit(ctx, r.ledger, plan)
	if err != nil {
		return Result{}, err
	}
	res := Result{Records: recs, Summary: r.Describe(recs)}
	if upgraded {
		r.logger.InfoContext(ctx, "room booking upgraded", slog.String("note", plan.Note))
		res.Notes = append(res.Notes, plan.Note)
	}
	return res, nil
}

func (r *Room) Describe(recs []reservation.Record) string {
	parts := make([]string, 0, len(recs))
	for _, rec := range recs {
		parts = append(parts, fmt.Sprintf("%s booked for %d night(s) from %s",
			strings.Join(rec.ResourceKeys(), ","), rec.Stay().Nights(), rec.Stay().CheckIn().Format("2006-01-02")))
	}
	return strings.Join(parts, "; ")
}
