package ledger

import (
	"slices"

	"github.com/google/uuid"

	"hotel-concierge/internal/domain/inventory"
	"hotel-concierge/internal/domain/reservation"
)

type Filter struct {
	Kind          inventory.Kind
	OnlyAvailable bool
	Match         func(inventory.Unit) bool
}

// Query returns committed unit values in key order without taking any lock.
// The result may lag a transaction that is committing concurrently.
func (l *Ledger) Query(f Filter) []inventory.Unit {
	var out []inventory.Unit
	for _, k := range l.keys {
		if f.Kind != "" && k.Kind() != f.Kind {
			continue
		}
		u := l.entries[k].load()
		if f.OnlyAvailable && !u.IsAvailable() {
			continue
		}
		if f.Match != nil && !f.Match(u) {
			continue
		}
		out = append(out, u)
	}
	return out
}

func (l *Ledger) Unit(key inventory.Key) (inventory.Unit, bool) {
	e, ok := l.entries[key]
	if !ok {
		return nil, false
	}
	return e.load(), true
}

type RecordFilter struct {
	IDs           []uuid.UUID
	TransactionID uuid.UUID
	Status        reservation.Status
	Kind          reservation.Kind
}

// Records lists records in commit order.
func (l *Ledger) Records(f RecordFilter) []reservation.Record {
	l.mu.RLock()
	defer l.mu.RUnlock()
	var out []reservation.Record
	for _, id := range l.recOrder {
		if len(f.IDs) > 0 && !slices.Contains(f.IDs, id) {
			continue
		}
		r := l.records[id]
		if f.TransactionID != uuid.Nil && r.TransactionID() != f.TransactionID {
			continue
		}
		if f.Status != "" && r.Status() != f.Status {
			continue
		}
		if f.Kind != "" && r.Kind() != f.Kind {
			continue
		}
		out = append(out, r)
	}
	return out
}
