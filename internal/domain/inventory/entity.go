package inventory

import (
	"errors"
	"maps"
	"slices"
	"strings"

	"hotel-concierge/internal/domain/reservation"
)

var (
	ErrEmptyID                = errors.New("unit id cannot be empty")
	ErrInvalidClass           = errors.New("invalid room class")
	ErrNegativePrice          = errors.New("price cannot be negative")
	ErrInvalidCapacity        = errors.New("table capacity must be positive")
	ErrAlreadyReserved        = errors.New("unit is already reserved")
	ErrItemUnavailable        = errors.New("menu item is unavailable")
	ErrInsufficientPortions   = errors.New("not enough portions left")
	ErrInvalidCustomization   = errors.New("unknown customization")
	ErrTooManyComponents      = errors.New("an item can be split into at most two components")
	ErrInvalidPortionQuantity = errors.New("portion quantity must be positive")
)

const MaxComponents = 2

// Unit is a bookable value held by the ledger. Claim and Unclaim return updated copies.
type Unit interface {
	Key() Key
	Kind() Kind
	ID() string
	IsAvailable() bool
	Claim(quantity int) (Unit, error)
	Unclaim(quantity int) Unit
}

type Room struct {
	id          string
	floor       int
	class       Class
	nightlyRate reservation.Money
	status      Status
}

func NewRoom(id string, floor int, class Class, nightlyRate reservation.Money) (Room, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Room{}, ErrEmptyID
	}
	if !class.IsValid() {
		return Room{}, ErrInvalidClass
	}
	if nightlyRate.IsNegative() {
		return Room{}, ErrNegativePrice
	}
	return Room{id: id, floor: floor, class: class, nightlyRate: nightlyRate, status: StatusAvailable}, nil
}

func (r Room) Key() Key                       { return NewKey(KindRoom, r.id) }
func (r Room) Kind() Kind                     { return KindRoom }
func (r Room) ID() string                     { return r.id }
func (r Room) Floor() int                     { return r.floor }
func (r Room) Class() Class                   { return r.class }
func (r Room) NightlyRate() reservation.Money { return r.nightlyRate }
func (r Room) Status() Status                 { return r.status }
func (r Room) IsAvailable() bool              { return r.status == StatusAvailable }

func (r Room) StayPrice(nights int) reservation.Money {
	return r.nightlyRate.Mul(nights)
}

func (r Room) Claim(_ int) (Unit, error) {
	if r.status != StatusAvailable {
		return nil, ErrAlreadyReserved
	}
	r.status = StatusReserved
	return r, nil
}

func (r Room) Unclaim(_ int) Unit {
	r.status = StatusAvailable
	return r
}

type Table struct {
	id         string
	capacity   int
	location   string
	bookingFee reservation.Money
	status     Status
}

func NewTable(id string, capacity int, location string, bookingFee reservation.Money) (Table, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Table{}, ErrEmptyID
	}
	if capacity <= 0 {
		return Table{}, ErrInvalidCapacity
	}
	if bookingFee.IsNegative() {
		return Table{}, ErrNegativePrice
	}
	return Table{
		id:         id,
		capacity:   capacity,
		location:   strings.ToLower(strings.TrimSpace(location)),
		bookingFee: bookingFee,
		status:     StatusAvailable,
	}, nil
}

func (t Table) Key() Key                      { return NewKey(KindTable, t.id) }
func (t Table) Kind() Kind                    { return KindTable }
func (t Table) ID() string                    { return t.id }
func (t Table) Capacity() int                 { return t.capacity }
func (t Table) Location() string              { return t.location }
func (t Table) BookingFee() reservation.Money { return t.bookingFee }
func (t Table) Status() Status                { return t.status }
func (t Table) IsAvailable() bool             { return t.status == StatusAvailable }

func (t Table) Claim(_ int) (Unit, error) {
	if t.status != StatusAvailable {
		return nil, ErrAlreadyReserved
	}
	t.status = StatusReserved
	return t, nil
}

func (t Table) Unclaim(_ int) Unit {
	t.status = StatusAvailable
	return t
}

// MenuItem is keyed by a canonical, language-neutral key. Portions nil means unlimited.
type MenuItem struct {
	key            string
	name           string
	aliases        []string
	basePrice      reservation.Money
	customizations map[string]reservation.Money
	available      bool
	portions       *int
}

type MenuItemParams struct {
	Key            string
	Name           string
	Aliases        []string
	BasePrice      reservation.Money
	Customizations map[string]reservation.Money
	Available      bool
	Portions       *int
}

func NewMenuItem(p MenuItemParams) (MenuItem, error) {
	key := strings.TrimSpace(p.Key)
	if key == "" {
		return MenuItem{}, ErrEmptyID
	}
	if p.BasePrice.IsNegative() {
		return MenuItem{}, ErrNegativePrice
	}
	custom := make(map[string]reservation.Money, len(p.Customizations))
	for name, delta := range p.Customizations {
		custom[strings.ToLower(strings.TrimSpace(name))] = delta
	}
	var portions *int
	if p.Portions != nil {
		n := *p.Portions
		portions = &n
	}
	return MenuItem{
		key:            key,
		name:           strings.TrimSpace(p.Name),
		aliases:        slices.Clone(p.Aliases),
		basePrice:      p.BasePrice,
		customizations: custom,
		available:      p.Available,
		portions:       portions,
	}, nil
}

func (m MenuItem) Key() Key                     { return NewKey(KindMenuItem, m.key) }
func (m MenuItem) Kind() Kind                   { return KindMenuItem }
func (m MenuItem) ID() string                   { return m.key }
func (m MenuItem) Name() string                 { return m.name }
func (m MenuItem) Aliases() []string            { return slices.Clone(m.aliases) }
func (m MenuItem) BasePrice() reservation.Money { return m.basePrice }
func (m MenuItem) Available() bool              { return m.available }

func (m MenuItem) Customizations() map[string]reservation.Money {
	return maps.Clone(m.customizations)
}

// Portions reports the remaining portions; ok is false when unlimited.
func (m MenuItem) Portions() (n int, ok bool) {
	if m.portions == nil {
		return 0, false
	}
	return *m.portions, true
}

func (m MenuItem) IsAvailable() bool {
	if !m.available {
		return false
	}
	return m.portions == nil || *m.portions > 0
}

// UnitPrice prices one instance: the base price plus every customization delta of every component.
func (m MenuItem) UnitPrice(components [][]string) (reservation.Money, error) {
	if len(components) > MaxComponents {
		return reservation.Money{}, ErrTooManyComponents
	}
	price := m.basePrice
	for _, component := range components {
		for _, name := range component {
			delta, ok := m.customizations[strings.ToLower(strings.TrimSpace(name))]
			if !ok {
				return reservation.Money{}, ErrInvalidCustomization
			}
			price = price.Add(delta)
		}
	}
	return price, nil
}

func (m MenuItem) Claim(quantity int) (Unit, error) {
	if quantity <= 0 {
		return nil, ErrInvalidPortionQuantity
	}
	if !m.available {
		return nil, ErrItemUnavailable
	}
	if m.portions == nil {
		return m, nil
	}
	if *m.portions < quantity {
		return nil, ErrInsufficientPortions
	}
	left := *m.portions - quantity
	m.portions = &left
	return m, nil
}

func (m MenuItem) Unclaim(quantity int) Unit {
	if m.portions == nil || quantity <= 0 {
		return m
	}
	restored := *m.portions + quantity
	m.portions = &restored
	return m
}
