package dispatch

import (
	"context"
	"time"

	"hotel-concierge/internal/domain/intent"
	"hotel-concierge/internal/domain/pricing"
	"hotel-concierge/internal/domain/reservation"
	"hotel-concierge/internal/usecase/specialist"
)

// Classifier reads a user turn. It returns errs.ErrUnclassifiable when the text
// cannot be understood; any other error is treated as transient.
type Classifier interface {
	Classify(ctx context.Context, text string, history []intent.Message) (intent.Classification, error)
}

// Renderer turns a structured outcome into user-facing text in the given language.
type Renderer interface {
	Render(ctx context.Context, outcome Outcome, language string) (string, error)
}

type Notifier interface {
	Publish(ctx context.Context, e reservation.Event) error
}

type Recorder interface {
	ObserveClassification(attempt int, err error)
	ObserveIntent(kind intent.Kind, status PartStatus, elapsed time.Duration)
	ObserveTurn(state State, elapsed time.Duration)
}

type Biller interface {
	specialist.Handler
	Summarize(records []reservation.Record, dctx pricing.DiscountContext) (pricing.Invoice, error)
}

// Specialists is the fixed set of handlers a turn can be routed to.
type Specialists struct {
	Room         specialist.BookingHandler
	Dining       specialist.BookingHandler
	Table        specialist.BookingHandler
	Billing      Biller
	Cancellation specialist.Handler
	Availability specialist.Handler
}

type nopNotifier struct{}

func (nopNotifier) Publish(context.Context, reservation.Event) error { return nil }

type nopRecorder struct{}

func (nopRecorder) ObserveClassification(int, error) {}
func (nopRecorder) ObserveIntent(intent.Kind, PartStatus, time.Duration) {}
func (nopRecorder) ObserveTurn(State, time.Duration) {}
