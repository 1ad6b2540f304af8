package dispatch

import (
	"hotel-concierge/internal/domain/intent"
	"hotel-concierge/internal/domain/inventory"
	"hotel-concierge/internal/domain/pricing"
	"hotel-concierge/internal/domain/reservation"
	"hotel-concierge/internal/pkg/errs"

	"github.com/google/uuid"
)

type State string

const (
	StateReceived     State = "received"
	StateClassified   State = "classified"
	StateDirectAnswer State = "direct_answer"
	StateDelegating   State = "delegating"
	StateAggregating  State = "aggregating"
	StateCompleted    State = "completed"
	StateFailed       State = "failed"
)

type PartStatus string

const (
	PartCompleted PartStatus = "completed"
	PartFailed    PartStatus = "failed"
)

// Turn is one user message with the history the caller keeps.
type Turn struct {
	ID       uuid.UUID
	Text     string
	History  []intent.Message
	Language string
	Discount pricing.DiscountContext
}

type Error struct {
	Code    string
	Message string
}

func newError(err error) *Error {
	return &Error{Code: errs.Code(err), Message: err.Error()}
}

// Part is the outcome of one intent, reported at the intent's position.
type Part struct {
	Index   int
	Kind    intent.Kind
	Status  PartStatus
	Records []reservation.Record
	Summary string
	Notes   []string
	Invoice *pricing.Invoice
	Units   []inventory.Unit
	Error   *Error
}

func (p Part) Succeeded() bool { return p.Status == PartCompleted }

// Outcome is the composite result of a turn. Invoice is the explicit invoice
// when one was asked for, otherwise a summary over the records the turn committed.
type Outcome struct {
	TurnID      uuid.UUID
	State       State
	Transitions []State
	Atomic      bool
	Parts       []Part
	Invoice     *pricing.Invoice
	Reply       string
	Error       *Error
}

// Committed lists the records still committed that this turn produced, in intent order.
func (o Outcome) Committed() []reservation.Record {
	return committedRecords(o.Parts)
}

func committedRecords(parts []Part) []reservation.Record {
	var out []reservation.Record
	for _, p := range parts {
		if !p.Succeeded() {
			continue
		}
		switch p.Kind {
		case intent.KindBookRoom, intent.KindOrderFood, intent.KindReserveTable:
		default:
			continue
		}
		for _, r := range p.Records {
			if r.IsCommitted() {
				out = append(out, r)
			}
		}
	}
	return out
}
