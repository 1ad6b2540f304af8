package reservation

import (
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	EventCommitted EventType = "reservation.committed"
	EventCancelled EventType = "reservation.cancelled"
)

// Event announces a ledger change after it has been committed.
type Event struct {
	Type          EventType `json:"type"`
	TurnID        uuid.UUID `json:"turnId"`
	RecordID      uuid.UUID `json:"recordId"`
	TransactionID uuid.UUID `json:"transactionId"`
	Kind          Kind      `json:"kind"`
	ResourceKeys  []string  `json:"resourceKeys"`
	Quantity      int       `json:"quantity"`
	SubtotalMinor int64     `json:"subtotalMinor"`
	OccurredAt    time.Time `json:"occurredAt"`
}

func NewEvent(t EventType, turnID uuid.UUID, r Record, at time.Time) Event {
	return Event{
		Type:          t,
		TurnID:        turnID,
		RecordID:      r.ID(),
		TransactionID: r.TransactionID(),
		Kind:          r.Kind(),
		ResourceKeys:  r.ResourceKeys(),
		Quantity:      r.Quantity(),
		SubtotalMinor: r.Subtotal().Minor(),
		OccurredAt:    at,
	}
}
