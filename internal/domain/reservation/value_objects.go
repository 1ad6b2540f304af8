package reservation

import (
	"errors"
	"time"
)

const basisPoints = 10000

// Money is an amount in integer minor units of the configured currency.
type Money struct {
	minor int64
}

func NewMoney(minor int64) Money {
	return Money{minor: minor}
}

func NewMoneyFromInt(minor int64) (Money, error) {
	if minor < 0 {
		return Money{}, errors.New("money cannot be negative")
	}
	return Money{minor: minor}, nil
}

func (m Money) Minor() int64 {
	return m.minor
}

func (m Money) IsNegative() bool {
	return m.minor < 0
}

func (m Money) IsZero() bool {
	return m.minor == 0
}

func (m Money) Add(other Money) Money {
	return Money{minor: m.minor + other.minor}
}

func (m Money) Sub(other Money) Money {
	return Money{minor: m.minor - other.minor}
}

func (m Money) Mul(n int) Money {
	return Money{minor: m.minor * int64(n)}
}

// PercentBP returns m × bp / 10000 rounded half-up (half away from zero) to the minor unit.
func (m Money) PercentBP(bp int64) Money {
	product := m.minor * bp
	if product < 0 {
		return Money{minor: -((-product + basisPoints/2) / basisPoints)}
	}
	return Money{minor: (product + basisPoints/2) / basisPoints}
}

func Sum(amounts ...Money) Money {
	var total Money
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}

var (
	ErrInvalidStay = errors.New("check-out must be after check-in")
	ErrInvalidSlot = errors.New("table slot must have a positive duration")
)

// Stay is a calendar date range; only the date part of either bound matters.
type Stay struct {
	checkIn  time.Time
	checkOut time.Time
}

func NewStay(checkIn, checkOut time.Time) (Stay, error) {
	in := dateOnly(checkIn)
	out := dateOnly(checkOut)
	if !out.After(in) {
		return Stay{}, ErrInvalidStay
	}
	return Stay{checkIn: in, checkOut: out}, nil
}

func (s Stay) CheckIn() time.Time  { return s.checkIn }
func (s Stay) CheckOut() time.Time { return s.checkOut }

func (s Stay) Nights() int {
	return int(s.checkOut.Sub(s.checkIn).Hours() / 24)
}

func (s Stay) IsZero() bool {
	return s.checkIn.IsZero()
}

// Slot is a table sitting.
type Slot struct {
	start     time.Time
	duration  time.Duration
	partySize int
}

func NewSlot(start time.Time, duration time.Duration, partySize int) (Slot, error) {
	if duration <= 0 || partySize <= 0 {
		return Slot{}, ErrInvalidSlot
	}
	return Slot{start: start, duration: duration, partySize: partySize}, nil
}

func (s Slot) Start() time.Time        { return s.start }
func (s Slot) End() time.Time          { return s.start.Add(s.duration) }
func (s Slot) Duration() time.Duration { return s.duration }
func (s Slot) PartySize() int          { return s.partySize }

func (s Slot) IsZero() bool {
	return s.partySize == 0
}

// FoodLine describes what a food order record priced.
type FoodLine struct {
	ItemKey    string
	Components [][]string
	UnitPrice  Money
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
