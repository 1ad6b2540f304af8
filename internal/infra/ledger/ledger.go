package ledger

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"hotel-concierge/internal/domain/inventory"
	"hotel-concierge/internal/domain/reservation"
	"hotel-concierge/internal/pkg/clock"
	"hotel-concierge/internal/pkg/errs"
)

var ErrDuplicateUnit = errs.New("duplicate unit key")

// entry guards one unit. The channel is a context-aware mutex and the pointer
// holds the last committed value so readers never block on writers.
type entry struct {
	key  inventory.Key
	lock chan struct{}
	cur  atomic.Pointer[inventory.Unit]
}

func newEntry(u inventory.Unit) *entry {
	e := &entry{key: u.Key(), lock: make(chan struct{}, 1)}
	e.store(u)
	return e
}

func (e *entry) acquire(ctx context.Context) error {
	select {
	case e.lock <- struct{}{}:
		return nil
	case <-ctx.Done():
		return errs.FromContext(ctx)
	}
}

func (e *entry) release() { <-e.lock }

func (e *entry) load() inventory.Unit { return *e.cur.Load() }

func (e *entry) store(u inventory.Unit) { e.cur.Store(&u) }

// Ledger is the single authority on which units are reserved. Every mutation
// runs as a transaction holding the locks of every unit it may touch.
type Ledger struct {
	entries map[inventory.Key]*entry
	keys    []inventory.Key

	mu       sync.RWMutex
	records  map[uuid.UUID]reservation.Record
	recOrder []uuid.UUID

	clock  clock.Clock
	logger *slog.Logger
}

func New(units []inventory.Unit, clk clock.Clock, logger *slog.Logger) (*Ledger, error) {
	if clk == nil {
		clk = clock.NewRealClock()
	}
	if logger == nil {
		logger = slog.Default()
	}
	l := &Ledger{
		entries: make(map[inventory.Key]*entry, len(units)),
		records: make(map[uuid.UUID]reservation.Record),
		clock:   clk,
		logger:  logger,
	}
	for _, u := range units {
		if _, ok := l.entries[u.Key()]; ok {
			return nil, errs.Wrapf(ErrDuplicateUnit, "key %s", u.Key())
		}
		l.entries[u.Key()] = newEntry(u)
		l.keys = append(l.keys, u.Key())
	}
	slices.Sort(l.keys)
	return l, nil
}

// Reserve claims a single unit.
func (l *Ledger) Reserve(ctx context.Context, txID uuid.UUID, c Claim) (reservation.Record, error) {
	recs, err := l.ReserveAll(ctx, txID, []Claim{c})
	if err != nil {
		return reservation.Record{}, err
	}
	return recs[0], nil
}

// ReserveAll commits every claim or none. Records come back in claim order and
// carry txID, or a fresh id when txID is nil.
func (l *Ledger) ReserveAll(ctx context.Context, txID uuid.UUID, claims []Claim) ([]reservation.Record, error) {
	if len(claims) == 0 {
		return nil, errs.Mark(errs.New("no claims"), errs.ErrInvalidIntent)
	}
	for _, c := range claims {
		if err := c.validate(); err != nil {
			return nil, errs.Mark(err, errs.ErrInvalidIntent)
		}
	}
	if err := errs.FromContext(ctx); err != nil {
		return nil, err
	}

	candidates := make([][]*entry, len(claims))
	var lockSet []*entry
	seen := make(map[inventory.Key]bool)
	for i, c := range claims {
		candidates[i] = l.candidates(c)
		if len(candidates[i]) == 0 {
			return nil, l.unavailable(c, "no matching unit")
		}
		for _, e := range candidates[i] {
			if !seen[e.key] {
				seen[e.key] = true
				lockSet = append(lockSet, e)
			}
		}
	}

	unlock, err := l.lockAll(ctx, lockSet)
	if err != nil {
		return nil, err
	}
	defer unlock()

	working := make(map[inventory.Key]inventory.Unit, len(lockSet))
	for _, e := range lockSet {
		working[e.key] = e.load()
	}

	chosen := make([]inventory.Unit, len(claims))
	for _, i := range assignmentOrder(claims, candidates) {
		c := claims[i]
		pool := make([]inventory.Unit, 0, len(candidates[i]))
		for _, e := range candidates[i] {
			pool = append(pool, working[e.key])
		}
		slices.SortStableFunc(pool, c.Selector.less)

		var picked bool
		for _, u := range pool {
			if !fits(c, u) {
				continue
			}
			if m, ok := u.(inventory.MenuItem); ok {
				if _, err := m.UnitPrice(c.Components); err != nil {
					return nil, errs.Mark(errs.Wrapf(err, "%s", c.Selector), errs.ErrInvalidIntent)
				}
			}
			next, err := u.Claim(c.Quantity)
			if err != nil {
				continue
			}
			chosen[i] = u
			working[u.Key()] = next
			picked = true
			break
		}
		if !picked {
			return nil, l.unavailable(c, "nothing free")
		}
	}

	// the context is honoured up to the commit point and not after
	if err := errs.FromContext(ctx); err != nil {
		return nil, err
	}

	if txID == uuid.Nil {
		txID = uuid.New()
	}
	now := l.clock.Now()
	recs := make([]reservation.Record, len(claims))
	for i, c := range claims {
		rec, err := buildRecord(txID, c, chosen[i], now)
		if err != nil {
			return nil, errs.Mark(err, errs.ErrInvalidIntent)
		}
		recs[i] = rec
	}

	// units first: a visible record always has its units claimed
	for _, e := range lockSet {
		e.store(working[e.key])
	}
	l.mu.Lock()
	for _, r := range recs {
		l.records[r.ID()] = r
		l.recOrder = append(l.recOrder, r.ID())
	}
	l.mu.Unlock()

	l.logger.DebugContext(ctx, "ledger transaction committed",
		slog.String("transaction_id", txID.String()),
		slog.Int("records", len(recs)))
	return recs, nil
}

// Release cancels a committed record and returns its units to the pool.
func (l *Ledger) Release(ctx context.Context, id uuid.UUID) (reservation.Record, error) {
	rec, err := l.Record(id)
	if err != nil {
		return reservation.Record{}, err
	}
	if rec.IsCancelled() {
		return reservation.Record{}, errs.Wrapf(errs.ErrNotFound, "reservation %s is already cancelled", id)
	}

	lockSet := make([]*entry, 0, len(rec.ResourceKeys()))
	for _, k := range rec.ResourceKeys() {
		if e, ok := l.entries[inventory.Key(k)]; ok {
			lockSet = append(lockSet, e)
		}
	}
	unlock, err := l.lockAll(ctx, lockSet)
	if err != nil {
		return reservation.Record{}, err
	}
	defer unlock()

	l.mu.Lock()
	current := l.records[id]
	cancelled, err := current.Cancel(l.clock.Now())
	if err != nil {
		l.mu.Unlock()
		return reservation.Record{}, errs.Wrapf(errs.ErrNotFound, "reservation %s is already cancelled", id)
	}
	l.records[id] = cancelled
	l.mu.Unlock()

	for _, e := range lockSet {
		e.store(e.load().Unclaim(current.Quantity()))
	}

	l.logger.DebugContext(ctx, "ledger record released", slog.String("record_id", id.String()))
	return cancelled, nil
}

func (l *Ledger) Record(id uuid.UUID) (reservation.Record, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	rec, ok := l.records[id]
	if !ok {
		return reservation.Record{}, errs.Wrapf(errs.ErrNotFound, "reservation %s", id)
	}
	return rec, nil
}

func (l *Ledger) lockAll(ctx context.Context, set []*entry) (func(), error) {
	slices.SortFunc(set, func(a, b *entry) int {
		switch {
		case a.key < b.key:
			return -1
		case a.key > b.key:
			return 1
		}
		return 0
	})
	held := 0
	unlock := func() {
		for i := held - 1; i >= 0; i-- {
			set[i].release()
		}
	}
	for _, e := range set {
		if err := e.acquire(ctx); err != nil {
			unlock()
			return nil, err
		}
		held++
	}
	return unlock, nil
}

func (l *Ledger) candidates(c Claim) []*entry {
	if c.Selector.IsSpecific() {
		if e, ok := l.entries[inventory.NewKey(c.Selector.kind, c.Selector.id)]; ok {
			return []*entry{e}
		}
		return nil
	}
	var out []*entry
	for _, k := range l.keys {
		e := l.entries[k]
		if c.Selector.matches(e.load()) {
			out = append(out, e)
		}
	}
	return out
}

func (l *Ledger) unavailable(c Claim, reason string) error {
	return errs.Wrapf(errs.ErrResourceUnavailable, "%s: %s", c.Selector, reason)
}

// assignmentOrder places named units first, then the most constrained predicates.
func assignmentOrder(claims []Claim, candidates [][]*entry) []int {
	order := make([]int, len(claims))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		sa, sb := claims[a].Selector.IsSpecific(), claims[b].Selector.IsSpecific()
		if sa != sb {
			if sa {
				return -1
			}
			return 1
		}
		return len(candidates[a]) - len(candidates[b])
	})
	return order
}

func fits(c Claim, u inventory.Unit) bool {
	if t, ok := u.(inventory.Table); ok {
		return t.Capacity() >= c.Slot.PartySize()
	}
	return true
}

func buildRecord(txID uuid.UUID, c Claim, u inventory.Unit, now time.Time) (reservation.Record, error) {
	p := reservation.RecordParams{
		TransactionID: txID,
		Kind:          c.recordKind(),
		ResourceKeys:  []string{u.Key().String()},
		Quantity:      c.Quantity,
		Stay:          c.Stay,
		Slot:          c.Slot,
		CreatedAt:     now,
	}
	switch v := u.(type) {
	case inventory.Room:
		p.Subtotal = v.StayPrice(c.Stay.Nights())
	case inventory.Table:
		p.Subtotal = v.BookingFee()
	case inventory.MenuItem:
		unit, err := v.UnitPrice(c.Components)
		if err != nil {
			return reservation.Record{}, err
		}
		p.Subtotal = unit.Mul(c.Quantity)
		components := make([][]string, len(c.Components))
		for i, comp := range c.Components {
			components[i] = slices.Clone(comp)
		}
		p.Line = &reservation.FoodLine{ItemKey: v.ID(), Components: components, UnitPrice: unit}
	}
	return reservation.NewRecord(p)
}
