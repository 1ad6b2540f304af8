// Package seed loads the starting hotel inventory from YAML.
package seed

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"hotel-concierge/internal/domain/inventory"
	"hotel-concierge/internal/domain/reservation"
	"hotel-concierge/internal/pkg/patch"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultSeed []byte

type RoomConfig struct {
	ID    string `yaml:"id"`
	Floor int    `yaml:"floor"`
	Class string `yaml:"class"`
	Rate  int64  `yaml:"rate"`
}

type TableConfig struct {
	ID       string `yaml:"id"`
	Capacity int    `yaml:"capacity"`
	Location string `yaml:"location"`
	Fee      int64  `yaml:"fee"`
}

type MenuItemConfig struct {
	Key            string           `yaml:"key"`
	Name           string           `yaml:"name"`
	Aliases        []string         `yaml:"aliases"`
	Price          int64            `yaml:"price"`
	Customizations map[string]int64 `yaml:"customizations"`
	// Nil means available
	Available *bool `yaml:"available,omitempty"`
	// Nil means unlimited
	Portions *int `yaml:"portions,omitempty"`
}

// Inventory is the root of a seed file. Prices are minor units.
type Inventory struct {
	Rooms  []RoomConfig     `yaml:"rooms"`
	Tables []TableConfig    `yaml:"tables"`
	Menu   []MenuItemConfig `yaml:"menu"`
}

// Load reads the seed at path, or the embedded default when path is empty.
func Load(path string) ([]inventory.Unit, error) {
	data := defaultSeed
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read inventory seed: %w", err)
		}
	}
	return Parse(data)
}

func Parse(data []byte) ([]inventory.Unit, error) {
	var inv Inventory
	if err := yaml.Unmarshal(data, &inv); err != nil {
		return nil, fmt.Errorf("parse inventory seed: %w", err)
	}
	if err := inv.Validate(); err != nil {
		return nil, fmt.Errorf("validate inventory seed: %w", err)
	}
	return inv.Units()
}

// Validate checks for problems the unit constructors cannot see.
func (inv *Inventory) Validate() error {
	if len(inv.Rooms)+len(inv.Tables)+len(inv.Menu) == 0 {
		return fmt.Errorf("no inventory defined")
	}

	seen := make(map[inventory.Key]bool)
	check := func(kind inventory.Kind, id string) error {
		id = strings.TrimSpace(id)
		if id == "" {
			return fmt.Errorf("%s id is required", kind)
		}
		key := inventory.NewKey(kind, id)
		if seen[key] {
			return fmt.Errorf("duplicate %s id: %s", kind, id)
		}
		seen[key] = true
		return nil
	}

	for i, r := range inv.Rooms {
		if err := check(inventory.KindRoom, r.ID); err != nil {
			return fmt.Errorf("rooms[%d]: %w", i, err)
		}
		if _, err := inventory.ParseClass(r.Class); err != nil {
			return fmt.Errorf("rooms[%d]: class %q: %w", i, r.Class, err)
		}
	}
	for i, t := range inv.Tables {
		if err := check(inventory.KindTable, t.ID); err != nil {
			return fmt.Errorf("tables[%d]: %w", i, err)
		}
	}
	for i, m := range inv.Menu {
		if err := check(inventory.KindMenuItem, m.Key); err != nil {
			return fmt.Errorf("menu[%d]: %w", i, err)
		}
		if strings.TrimSpace(m.Name) == "" {
			return fmt.Errorf("menu[%d]: name is required", i)
		}
		if m.Portions != nil && *m.Portions < 0 {
			return fmt.Errorf("menu[%d]: portions cannot be negative", i)
		}
	}
	return nil
}

func (inv *Inventory) Units() ([]inventory.Unit, error) {
	units := make([]inventory.Unit, 0, len(inv.Rooms)+len(inv.Tables)+len(inv.Menu))

	for _, r := range inv.Rooms {
		class, err := inventory.ParseClass(r.Class)
		if err != nil {
			return nil, fmt.Errorf("room %s: %w", r.ID, err)
		}
		room, err := inventory.NewRoom(r.ID, r.Floor, class, reservation.NewMoney(r.Rate))
		if err != nil {
			return nil, fmt.Errorf("room %s: %w", r.ID, err)
		}
		units = append(units, room)
	}

	for _, t := range inv.Tables {
		table, err := inventory.NewTable(t.ID, t.Capacity, t.Location, reservation.NewMoney(t.Fee))
		if err != nil {
			return nil, fmt.Errorf("table %s: %w", t.ID, err)
		}
		units = append(units, table)
	}

	for _, m := range inv.Menu {
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
			Available:      patch.Coalesce(m.Available, true),
			Portions:       m.Portions,
		})
		if err != nil {
			return nil, fmt.Errorf("menu item %s: %w", m.Key, err)
		}
		units = append(units, item)
	}

	return units, nil
}
