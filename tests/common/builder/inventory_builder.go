//go:build unit || e2e

package builder

import (
	"fmt"

	"hotel-concierge/internal/domain/inventory"
	"hotel-concierge/internal/domain/reservation"
)

type RoomSpec struct {
	ID    string
	Floor int
	Class inventory.Class
	Rate  int64
}

type TableSpec struct {
	ID       string
	Capacity int
	Location string
	Fee      int64
}

type MenuItemSpec struct {
	Key            string
	Name           string
	Aliases        []string
	Price          int64
	Customizations map[string]int64
	Unavailable    bool
	Portions       *int
}

// InventoryBuilder produces a small hotel: rooms, tables and a menu with minor-unit prices.
type InventoryBuilder struct {
	Rooms  []RoomSpec
	Tables []TableSpec
	Menu   []MenuItemSpec
}

func NewInventoryBuilder() *InventoryBuilder {
	return &InventoryBuilder{
		Rooms: []RoomSpec{
			{ID: "101", Floor: 1, Class: inventory.ClassSingle, Rate: 10000},
			{ID: "102", Floor: 1, Class: inventory.ClassSingle, Rate: 10000},
			{ID: "201", Floor: 2, Class: inventory.ClassDouble, Rate: 15000},
			{ID: "202", Floor: 2, Class: inventory.ClassDouble, Rate: 15000},
			{ID: "301", Floor: 3, Class: inventory.ClassTriple, Rate: 20000},
		},
		Tables: []TableSpec{
			{ID: "T1", Capacity: 2, Location: "window"},
			{ID: "T2", Capacity: 4, Location: "patio"},
			{ID: "T3", Capacity: 6, Location: "main"},
		},
		Menu: []MenuItemSpec{
			{
				Key:     "pepperoni_pizza",
				Name:    "Pepperoni Pizza",
				Aliases: []string{"پیتزا پپرونی"},
				Price:   1500,
				Customizations: map[string]int64{
					"extra cheese": 200,
					"mushroom":     150,
				},
			},
			{Key: "vegetable_pizza", Name: "Vegetable Pizza", Aliases: []string{"پیتزا سبزیجات"}, Price: 1200},
			{Key: "cheeseburger", Name: "Cheeseburger", Aliases: []string{"چیزبرگر"}, Price: 1000},
			{Key: "caesar_salad", Name: "Caesar Salad", Aliases: []string{"سالاد سزار"}, Price: 800},
			{Key: "soft_drink", Name: "Soft Drink", Aliases: []string{"نوشابه"}, Price: 200},
			{Key: "kabob_koobideh", Name: "Persian Kabob Koobideh", Aliases: []string{"کباب کوبیده"}, Price: 2500},
			{Key: "joojeh_kabab", Name: "Saffron Joojeh Kabab", Aliases: []string{"جوجه کباب"}, Price: 2200},
		},
	}
}

func (b *InventoryBuilder) With(mutate func(*InventoryBuilder)) *InventoryBuilder {
	mutate(b)
	return b
}

func (b *InventoryBuilder) WithPortions(key string, n int) *InventoryBuilder {
	for i := range b.Menu {
		if b.Menu[i].Key == key {
			portions := n
			b.Menu[i].Portions = &portions
		}
	}
	return b
}

func (b *InventoryBuilder) WithRoomsOnly(rooms ...RoomSpec) *InventoryBuilder {
	b.Rooms = rooms
	b.Tables = nil
	b.Menu = nil
	return b
}

func (b *InventoryBuilder) BuildUnits() ([]inventory.Unit, error) {
	units := make([]inventory.Unit, 0, len(b.Rooms)+len(b.Tables)+len(b.Menu))
	for _, r := range b.Rooms {
		room, err := inventory.NewRoom(r.ID, r.Floor, r.Class, reservation.NewMoney(r.Rate))
		if err != nil {
			return nil, fmt.Errorf("room %s: %w", r.ID, err)
		}
		units = append(units, room)
	}
	for _, t := range b.Tables {
		table, err := inventory.NewTable(t.ID, t.Capacity, t.Location, reservation.NewMoney(t.Fee))
		if err != nil {
			return nil, fmt.Errorf("table %s: %w", t.ID, err)
		}
		units = append(units, table)
	}
	for _, m := range b.Menu {
		custom := make(map[string]reservation.Money, len(m.Customizations))
		for name, delta := range m.Customizations {
			custom[name] = reservation.NewMoney(delta)
		}
		item, err := inventory.NewMenuItem(inventory.MenuItemParams{
			Key:            m.Key,
			Name:           m.Name,
			Aliases:        m.Aliases,
			BasePrice:      reservation.NewMoney(m.Price),
			Customizations: custom,
			Available:      !m.Unavailable,
			Portions:       m.Portions,
		})
		if err != nil {
			return nil, fmt.Errorf("menu item %s: %w", m.Key, err)
		}
		units = append(units, item)
	}
	return units, nil
}

func (b *InventoryBuilder) MustBuildUnits() []inventory.Unit {
	units, err := b.BuildUnits()
	if err != nil {
		panic(err)
	}
	return units
}
