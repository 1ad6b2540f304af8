package dispatch

import (
	"context"
	"slices"
	"strings"

	"hotel-concierge/internal/domain/intent"
	"hotel-concierge/internal/domain/inventory"
	"hotel-concierge/internal/usecase/specialist"
)

// kindRecord scopes accesses to a reservation record rather than a unit.
const kindRecord inventory.Kind = "record"

// access is a unit an intent may read or write. An empty id stands for every unit of the kind.
type access struct {
	kind inventory.Kind
	id   string
}

func (a access) overlaps(b access) bool {
	return a.kind == b.kind && (a.id == "" || b.id == "" || a.id == b.id)
}

func overlapping(a, b []access) bool {
	for _, x := range a {
		for _, y := range b {
			if x.overlaps(y) {
				return true
			}
		}
	}
	return false
}

// task is one unit of delegated work: a single intent or an atomic bundle.
type task struct {
	first  int
	access []access
	run    func()
}

// footprint is a superset of what the intent touches. Intents that cannot be
// planned touch nothing; they fail the same way when run.
func (d *Dispatcher) footprint(ctx context.Context, turn Turn, in intent.Intent) []access {
	switch in := in.(type) {
	case intent.BookRoom, intent.OrderFood, intent.ReserveTable:
		p, err := d.plannerFor(in)
		if err != nil || p == nil {
			return nil
		}
		plan, err := p.Plan(ctx, specialist.Request{TurnID: turn.ID, Intent: in, Discount: turn.Discount})
		if err != nil {
			return nil
		}
		var out []access
		for _, c := range slices.Concat(plan.Claims, plan.Fallback) {
			out = append(out, access{kind: c.Selector.Kind(), id: c.Selector.ID()})
		}
		return out
	case intent.CancelReservation:
		out := []access{{kind: kindRecord, id: in.RecordID.String()}}
		rec, err := d.ledger.Record(in.RecordID)
		if err != nil {
			return out
		}
		for _, k := range rec.ResourceKeys() {
			kind, id, _ := strings.Cut(k, "/")
			out = append(out, access{kind: inventory.Kind(kind), id: id})
		}
		return out
	case intent.CheckAvailability:
		return []access{{kind: in.Resource}}
	default:
		return nil
	}
}

// conflictGroups partitions tasks so that no two groups share an access.
// Groups and their members keep the order of tasks.
func conflictGroups(tasks []task) [][]task {
	parent := make([]int, len(tasks))
	for i := range parent {
		parent[i] = i
	}
	find := func(i int) int {
		for parent[i] != i {
			parent[i] = parent[parent[i]]
			i = parent[i]
		}
		return i
	}
	for i := range tasks {
		for j := i + 1; j < len(tasks); j++ {
			if overlapping(tasks[i].access, tasks[j].access) {
				parent[find(j)] = find(i)
			}
		}
	}

	index := make(map[int]int)
	var groups [][]task
	for i, t := range tasks {
		root := find(i)
		g, ok := index[root]
		if !ok {
			g = len(groups)
			index[root] = g
			groups = append(groups, nil)
		}
		groups[g] = append(groups[g], t)
	}
	return groups
}
