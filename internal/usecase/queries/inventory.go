package queries

import (
	"context"
	"strings"

	"hotel-concierge/internal/domain/inventory"
	"hotel-concierge/internal/infra/ledger"
	"hotel-concierge/internal/pkg/errs"
)

type RoomFilter struct {
	Class         inventory.Class
	Floor         *int
	OnlyAvailable bool
}

type TableFilter struct {
	MinCapacity   int
	Location      string
	OnlyAvailable bool
}

type MenuFilter struct {
	OnlyAvailable bool
}

type InventoryReader interface {
	Query(f ledger.Filter) []inventory.Unit
}

type InventoryQueries interface {
	Rooms(ctx context.Context, f RoomFilter) ([]*RoomView, error)
	Tables(ctx context.Context, f TableFilter) ([]*TableView, error)
	Menu(ctx context.Context, f MenuFilter) ([]*MenuItemView, error)
}

type inventoryQueriesImpl struct {
	reader   InventoryReader
	currency string
}

func NewInventoryQueries(reader InventoryReader, currency string) InventoryQueries {
	return &inventoryQueriesImpl{reader: reader, currency: currency}
}

func (q *inventoryQueriesImpl) Rooms(ctx context.Context, f RoomFilter) ([]*RoomView, error) {
	if err := errs.FromContext(ctx); err != nil {
		return nil, err
	}
	if f.Class != "" && !f.Class.IsValid() {
		return nil, errs.Wrapf(errs.ErrInvalidIntent, "unknown room class %q", f.Class)
	}
	units := q.reader.Query(ledger.Filter{
		Kind:          inventory.KindRoom,
		OnlyAvailable: f.OnlyAvailable,
		Match: func(u inventory.Unit) bool {
			r, ok := u.(inventory.Room)
			if !ok {
				return false
			}
			if f.Class != "" && r.Class() != f.Class {
				return false
			}
			return f.Floor == nil || r.Floor() == *f.Floor
		},
	})

	views := make([]*RoomView, 0, len(units))
	for _, u := range units {
		r := u.(inventory.Room)
		views = append(views, &RoomView{
			ID:               r.ID(),
			Floor:            r.Floor(),
			Class:            string(r.Class()),
			NightlyRateMinor: r.NightlyRate().Minor(),
			Currency:         q.currency,
			Status:           string(r.Status()),
		})
	}
	return views, nil
}

func (q *inventoryQueriesImpl) Tables(ctx context.Context, f TableFilter) ([]*TableView, error) {
	if err := errs.FromContext(ctx); err != nil {
		return nil, err
	}
	location := strings.ToLower(strings.TrimSpace(f.Location))
	units := q.reader.Query(ledger.Filter{
		Kind:          inventory.KindTable,
		OnlyAvailable: f.OnlyAvailable,
		Match: func(u inventory.Unit) bool {
			t, ok := u.(inventory.Table)
			if !ok {
				return false
			}
			if t.Capacity() < f.MinCapacity {
				return false
			}
			return location == "" || t.Location() == location
		},
	})

	views := make([]*TableView, 0, len(units))
	for _, u := range units {
		t := u.(inventory.Table)
		views = append(views, &TableView{
			ID:              t.ID(),
			Capacity:        t.Capacity(),
			Location:        t.Location(),
			BookingFeeMinor: t.BookingFee().Minor(),
			Currency:        q.currency,
			Status:          string(t.Status()),
		})
	}
	return views, nil
}

func (q *inventoryQueriesImpl) Menu(ctx context.Context, f MenuFilter) ([]*MenuItemView, error) {
	if err := errs.FromContext(ctx); err != nil {
		return nil, err
	}
	units := q.reader.Query(ledger.Filter{Kind: inventory.KindMenuItem, OnlyAvailable: f.OnlyAvailable})

	views := make([]*MenuItemView, 0, len(units))
	for _, u := range units {
		m, ok := u.(inventory.MenuItem)
		if !ok {
			continue
		}
		custom := make(map[string]int64)
		for name, delta := range m.Customizations() {
			custom[name] = delta.Minor()
		}
		var portions *int
		if n, limited := m.Portions(); limited {
			portions = &n
		}
		views = append(views, &MenuItemView{
			Key:            m.ID(),
			Name:           m.Name(),
			Aliases:        m.Aliases(),
			PriceMinor:     m.BasePrice().Minor(),
			Currency:       q.currency,
			Customizations: custom,
			Available:      m.IsAvailable(),
			Portions:       portions,
		})
	}
	return views, nil
}
