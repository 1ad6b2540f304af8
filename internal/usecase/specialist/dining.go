package specialist

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"hotel-concierge/internal/domain/intent"
	"hotel-concierge/internal/domain/inventory"
	"hotel-concierge/internal/domain/menu"
	"hotel-concierge/internal/domain/reservation"
	"hotel-concierge/internal/infra/ledger"
	"hotel-concierge/internal/pkg/errs"
)

// Dining takes food orders. Dish names are resolved against the menu known at startup.
type Dining struct {
	ledger  Ledger
	matcher *menu.Matcher
	logger  *slog.Logger
}

func NewDining(l Ledger, threshold int, logger *slog.Logger) *Dining {
	units := l.Query(ledger.Filter{Kind: inventory.KindMenuItem})
	entries := make([]menu.Entry, 0, len(units))
	for _, u := range units {
		item, ok := u.(inventory.MenuItem)
		if !ok {
			continue
		}
		entries = append(entries, menu.Entry{
			Key:   item.ID(),
			Names: append([]string{item.Name()}, item.Aliases()...),
		})
	}
	return &Dining{ledger: l, matcher: menu.NewMatcher(entries, threshold), logger: logger}
}

// Plan resolves every line; one unknown dish fails the whole order.
func (d *Dining) Plan(ctx context.Context, req Request) (Plan, error) {
	in, ok := req.Intent.(intent.OrderFood)
	if !ok {
		return Plan{}, unexpected(req.Intent)
	}
	if len(in.Items) == 0 {
		return Plan{}, invalid("order food: no items")
	}

	claims := make([]ledger.Claim, 0, len(in.Items))
	for _, line := range in.Items {
		match, err := d.matcher.Resolve(line.Name)
		if err != nil {
			return Plan{}, errs.Wrapf(err, "order food: %q", line.Name)
		}
		if !match.Exact {
			d.logger.DebugContext(ctx, "fuzzy menu match",
				slog.String("query", line.Name),
				slog.String("key", match.Key),
				slog.Int("score", match.Score))
		}
		if len(line.Components) > inventory.MaxComponents {
			return Plan{}, invalid("order food: %q has %d components, at most %d",
				line.Name, len(line.Components), inventory.MaxComponents)
		}
		qty := line.Quantity
		if qty == 0 {
			qty = 1
		}
		if qty < 0 {
			return Plan{}, invalid("order food: negative quantity for %q", line.Name)
		}
		claims = append(claims, ledger.FoodClaim(match.Key, qty, line.Components))
	}
	return Plan{Claims: claims}, nil
}

func (d *Dining) Handle(ctx context.Context, req Request) (Result, error) {
	plan, err := d.Plan(ctx, req)
	if err != nil {
		return Result{}, err
	}
	recs, _, err := commit(ctx, d.ledger, plan)
	if err != nil {
		return Result{}, err
	}
	return Result{Records: recs, Summary: d.Describe(recs)}, nil
}

func (d *Dining) Describe(recs []reservation.Record) string {
	parts := make([]string, 0, len(recs))
	for _, rec := range recs {
		line := rec.Line()
		if line == nil {
			continue
		}
		desc := fmt.Sprintf("%d x %s", rec.Quantity(), line.ItemKey)
		if len(line.Components) > 0 {
			halves := make([]string, 0, len(line.Components))
			for _, c := range line.Components {
				halves = append(halves, strings.Join(c, "+"))
			}
			desc += " (" + strings.Join(halves, " | ") + ")"
		}
		parts = append(parts, desc)
	}
	return "ordered " + strings.Join(parts, ", ")
}
