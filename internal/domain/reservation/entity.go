package reservation

import (
	"errors"
	"slices"
	"time"

	"github.com/google/uuid"
)

var (
	ErrRecordCancelled  = errors.New("reservation record is already cancelled")
	ErrNegativeSubtotal = errors.New("subtotal cannot be negative")
	ErrInvalidQuantity  = errors.New("quantity must be positive")
	ErrNoResources      = errors.New("record must reference at least one resource")
	ErrInvalidKind      = errors.New("invalid reservation kind")
)

// Record is an immutable allocation against ledger resources. Cancellation yields a new value.
type Record struct {
	id            uuid.UUID
	transactionID uuid.UUID
	kind          Kind
	resourceKeys  []string
	quantity      int
	subtotal      Money
	status        Status
	stay          Stay
	slot          Slot
	line          *FoodLine
	createdAt     time.Time
	cancelledAt   *time.Time
}

type RecordParams struct {
	TransactionID uuid.UUID
	Kind          Kind
	ResourceKeys  []string
	Quantity      int
	Subtotal      Money
	Stay          Stay
	Slot          Slot
	Line          *FoodLine
	CreatedAt     time.Time
}

func NewRecord(p RecordParams) (Record, error) {
	if !p.Kind.IsValid() {
		return Record{}, ErrInvalidKind
	}
	if len(p.ResourceKeys) == 0 {
		return Record{}, ErrNoResources
	}
	if p.Quantity <= 0 {
		return Record{}, ErrInvalidQuantity
	}
	if p.Subtotal.IsNegative() {
		return Record{}, ErrNegativeSubtotal
	}

	var line *FoodLine
	if p.Line != nil {
		l := *p.Line
		line = &l
	}

	return Record{
		id:            uuid.New(),
		transactionID: p.TransactionID,
		kind:          p.Kind,
		resourceKeys:  slices.Clone(p.ResourceKeys),
		quantity:      p.Quantity,
		subtotal:      p.Subtotal,
		status:        StatusCommitted,
		stay:          p.Stay,
		slot:          p.Slot,
		line:          line,
		createdAt:     p.CreatedAt,
	}, nil
}

// Cancel returns the cancelled copy of r.
func (r Record) Cancel(at time.Time) (Record, error) {
	if r.status == StatusCancelled {
		return Record{}, ErrRecordCancelled
	}
	cancelled := r
	cancelled.status = StatusCancelled
	cancelled.cancelledAt = &at
	return cancelled, nil
}

func (r Record) IsCommitted() bool {
	return r.status == StatusCommitted
}

func (r Record) IsCancelled() bool {
	return r.status == StatusCancelled
}

func (r Record) ID() uuid.UUID            { return r.id }
func (r Record) TransactionID() uuid.UUID { return r.transactionID }
func (r Record) Kind() Kind               { return r.kind }
func (r Record) ResourceKeys() []string   { return slices.Clone(r.resourceKeys) }
func (r Record) Quantity() int            { return r.quantity }
func (r Record) Subtotal() Money          { return r.subtotal }
func (r Record) Status() Status           { return r.status }
func (r Record) Stay() Stay               { return r.stay }
func (r Record) Slot() Slot               { return r.slot }
func (r Record) CreatedAt() time.Time     { return r.createdAt }
func (r Record) CancelledAt() *time.Time  { return r.cancelledAt }

func (r Record) Line() *FoodLine {
	if r.line == nil {
		return nil
	}
	l := *r.line
	return &l
}
