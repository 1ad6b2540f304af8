// Package dispatch routes a classified user turn to the specialists and aggregates their results.
package dispatch

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"hotel-concierge/internal/domain/intent"
	"hotel-concierge/internal/domain/reservation"
	"hotel-concierge/internal/pkg/clock"
	"hotel-concierge/internal/pkg/errs"
	"hotel-concierge/internal/usecase/specialist"

	"github.com/google/uuid"
)

type Options struct {
	MaxAttempts int
	BaseBackoff time.Duration
	MaxBackoff  time.Duration
	TurnTimeout time.Duration
}

type Dispatcher struct {
	classifier  Classifier
	renderer    Renderer
	specialists Specialists
	ledger      specialist.Ledger
	notifier    Notifier
	recorder    Recorder
	clock       clock.Clock
	opts        Options
	logger      *slog.Logger
}

func New(
	classifier Classifier,
	renderer Renderer,
	specialists Specialists,
	ledger specialist.Ledger,
	notifier Notifier,
	recorder Recorder,
	clk clock.Clock,
	opts Options,
	logger *slog.Logger,
) *Dispatcher {
	if notifier == nil {
		notifier = nopNotifier{}
	}
	if recorder == nil {
		recorder = nopRecorder{}
	}
	if clk == nil {
		clk = clock.NewRealClock()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		classifier:  classifier,
		renderer:    renderer,
		specialists: specialists,
		ledger:      ledger,
		notifier:    notifier,
		recorder:    recorder,
		clock:       clk,
		opts:        opts,
		logger:      logger,
	}
}

// Handle processes one turn. The returned error is non-nil only when the turn
// could not be classified; per-intent failures are reported in the Outcome.
func (d *Dispatcher) Handle(ctx context.Context, turn Turn) (Outcome, error) {
	started := d.clock.Now()
	if turn.ID == uuid.Nil {
		turn.ID = uuid.New()
	}
	if d.opts.TurnTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.opts.TurnTimeout)
		defer cancel()
	}

	out := &Outcome{TurnID: turn.ID}
	d.transition(ctx, out, StateReceived)

	cls, err := d.classify(ctx, turn)
	if err != nil {
		out.Error = newError(err)
		d.transition(ctx, out, StateFailed)
		out.Reply = d.render(ctx, *out, turn.Language)
		d.recorder.ObserveTurn(out.State, d.clock.Now().Sub(started))
		return *out, err
	}
	out.Atomic = cls.Atomic
	out.Parts = make([]Part, len(cls.Intents))
	d.transition(ctx, out, StateClassified)

	if onlyDirectAnswers(cls.Intents) {
		d.transition(ctx, out, StateDirectAnswer)
		for i, in := range cls.Intents {
			out.Parts[i] = d.run(ctx, turn, i, in, nil)
		}
	} else {
		d.transition(ctx, out, StateDelegating)
		d.delegate(ctx, turn, cls, out.Parts)
	}

	d.transition(ctx, out, StateAggregating)
	d.aggregate(ctx, turn, cls, out)

	final := StateCompleted
	if allFailed(out.Parts) {
		final = StateFailed
	}
	d.transition(ctx, out, final)

	out.Reply = d.render(ctx, *out, turn.Language)
	d.recorder.ObserveTurn(out.State, d.clock.Now().Sub(started))
	return *out, nil
}

// delegate runs booking work concurrently and invoice intents after it.
// Intents that may touch the same unit run one after another in intent order;
// only disjoint groups run in parallel. Each task owns its slots of parts.
func (d *Dispatcher) delegate(ctx context.Context, turn Turn, cls intent.Classification, parts []Part) {
	var bundle, independent, dependent []int
	for i, in := range cls.Intents {
		switch {
		case intent.DependsOnBookings(in):
			dependent = append(dependent, i)
		case cls.Atomic && intent.IsBooking(in):
			bundle = append(bundle, i)
		default:
			independent = append(independent, i)
		}
	}
	if len(bundle) == 1 {
		independent = append(independent, bundle...)
		bundle = nil
	}

	tasks := make([]task, 0, len(independent)+1)
	if len(bundle) > 0 {
		var acc []access
		for _, i := range bundle {
			acc = append(acc, d.footprint(ctx, turn, cls.Intents[i])...)
		}
		tasks = append(tasks, task{first: bundle[0], access: acc, run: func() {
			d.runBundle(ctx, turn, cls.Intents, bundle, parts)
		}})
	}
	for _, i := range independent {
		tasks = append(tasks, task{first: i, access: d.footprint(ctx, turn, cls.Intents[i]), run: func() {
			parts[i] = d.run(ctx, turn, i, cls.Intents[i], nil)
		}})
	}
	slices.SortFunc(tasks, func(a, b task) int { return cmp.Compare(a.first, b.first) })

	var wg sync.WaitGroup
	for _, group := range conflictGroups(tasks) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, t := range group {
				t.run()
			}
		}()
	}
	wg.Wait()

	prior := committedRecords(parts)
	for _, i := range dependent {
		parts[i] = d.run(ctx, turn, i, cls.Intents[i], prior)
	}
}

func (d *Dispatcher) run(ctx context.Context, turn Turn, idx int, in intent.Intent, prior []reservation.Record) Part {
	started := d.clock.Now()
	part := Part{Index: idx, Kind: in.Kind()}

	h, err := d.handlerFor(in)
	var res specialist.Result
	if err == nil {
		res, err = h.Handle(ctx, specialist.Request{
			TurnID:   turn.ID,
			Intent:   in,
			Prior:    prior,
			Discount: turn.Discount,
		})
	}
	if err != nil {
		part.Status = PartFailed
		part.Error = newError(err)
		d.logger.InfoContext(ctx, "intent failed",
			slog.String("turn_id", turn.ID.String()),
			slog.String("intent", in.Kind().String()),
			slog.String("code", part.Error.Code),
			slog.String("error", err.Error()))
	} else {
		part.Status = PartCompleted
		part.Records = res.Records
		part.Summary = res.Summary
		part.Notes = res.Notes
		part.Invoice = res.Invoice
		part.Units = res.Units
	}
	d.recorder.ObserveIntent(part.Kind, part.Status, d.clock.Now().Sub(started))
	return part
}

// handlerFor is the only place intents meet specialists.
func (d *Dispatcher) handlerFor(in intent.Intent) (specialist.Handler, error) {
	var h specialist.Handler
	switch in.(type) {
	case intent.BookRoom:
		h = d.specialists.Room
	case intent.OrderFood:
		h = d.specialists.Dining
	case intent.ReserveTable:
		h = d.specialists.Table
	case intent.GenerateInvoice:
		h = d.specialists.Billing
	case intent.CancelReservation:
		h = d.specialists.Cancellation
	case intent.CheckAvailability:
		h = d.specialists.Availability
	case intent.DirectAnswer:
		return directAnswer{}, nil
	default:
		return nil, errs.Mark(errs.Newf("no specialist for %T", in), errs.ErrInvalidIntent)
	}
	if h == nil {
		return nil, errs.Mark(errs.Newf("specialist for %s is not configured", in.Kind()), errs.ErrInvalidIntent)
	}
	return h, nil
}

func (d *Dispatcher) plannerFor(in intent.Intent) (specialist.Planner, error) {
	switch in.(type) {
	case intent.BookRoom:
		return d.specialists.Room, nil
	case intent.OrderFood:
		return d.specialists.Dining, nil
	case intent.ReserveTable:
		return d.specialists.Table, nil
	default:
		return nil, errs.Mark(errs.Newf("%s cannot join a booking bundle", in.Kind()), errs.ErrInvalidIntent)
	}
}

type directAnswer struct{}

func (directAnswer) Handle(_ context.Context, req specialist.Request) (specialist.Result, error) {
	in, _ := req.Intent.(intent.DirectAnswer)
	return specialist.Result{Summary: in.Reply}, nil
}

func (d *Dispatcher) aggregate(ctx context.Context, turn Turn, cls intent.Classification, out *Outcome) {
	explicit := false
	for i, in := range cls.Intents {
		if _, ok := in.(intent.GenerateInvoice); ok {
			explicit = true
			if out.Parts[i].Invoice != nil {
				out.Invoice = out.Parts[i].Invoice
			}
		}
	}

	committed := committedRecords(out.Parts)
	if !explicit && len(committed) > 0 && d.specialists.Billing != nil {
		inv, err := d.specialists.Billing.Summarize(committed, turn.Discount)
		if err != nil {
			d.logger.WarnContext(ctx, "summary invoice failed",
				slog.String("turn_id", turn.ID.String()),
				slog.String("error", err.Error()))
		} else {
			out.Invoice = &inv
		}
	}

	d.publish(ctx, turn, out.Parts)
}

// publish is best effort; the records it announces are already committed.
func (d *Dispatcher) publish(ctx context.Context, turn Turn, parts []Part) {
	ctx = context.WithoutCancel(ctx)
	now := d.clock.Now()
	for _, p := range parts {
		if !p.Succeeded() {
			continue
		}
		for _, r := range p.Records {
			typ := reservation.EventCommitted
			if r.IsCancelled() {
				typ = reservation.EventCancelled
			}
			if err := d.notifier.Publish(ctx, reservation.NewEvent(typ, turn.ID, r, now)); err != nil {
				d.logger.WarnContext(ctx, "event publish failed",
					slog.String("record_id", r.ID().String()),
					slog.String("error", err.Error()))
			}
		}
	}
}

func (d *Dispatcher) render(ctx context.Context, out Outcome, language string) string {
	if d.renderer != nil {
		reply, err := d.renderer.Render(ctx, out, language)
		if err == nil && strings.TrimSpace(reply) != "" {
			return reply
		}
		if err != nil {
			d.logger.WarnContext(ctx, "render failed, using plain summary",
				slog.String("turn_id", out.TurnID.String()),
				slog.String("error", err.Error()))
		}
	}
	return PlainReply(out)
}

// PlainReply lists every part with its status so partial failures stay visible.
func PlainReply(out Outcome) string {
	if out.Error != nil {
		return fmt.Sprintf("request failed (%s): %s", out.Error.Code, out.Error.Message)
	}
	var b strings.Builder
	for _, p := range out.Parts {
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		if p.Kind == intent.KindDirectAnswer && p.Succeeded() {
			b.WriteString(p.Summary)
			continue
		}
		fmt.Fprintf(&b, "%d. %s: %s", p.Index+1, p.Kind, p.Status)
		switch {
		case p.Error != nil:
			fmt.Fprintf(&b, " (%s) %s", p.Error.Code, p.Error.Message)
		case p.Summary != "":
			fmt.Fprintf(&b, " - %s", p.Summary)
		}
		for _, n := range p.Notes {
			fmt.Fprintf(&b, " [%s]", n)
		}
	}
	if out.Invoice != nil {
		fmt.Fprintf(&b, "\ntotal: %d %s", out.Invoice.GrandTotal.Minor(), out.Invoice.Currency)
	}
	return b.String()
}

func (d *Dispatcher) transition(ctx context.Context, out *Outcome, to State) {
	from := out.State
	out.State = to
	out.Transitions = append(out.Transitions, to)
	d.logger.DebugContext(ctx, "turn state",
		slog.String("turn_id", out.TurnID.String()),
		slog.String("from", string(from)),
		slog.String("to", string(to)))
}

func onlyDirectAnswers(intents []intent.Intent) bool {
	for _, in := range intents {
		if in.Kind() != intent.KindDirectAnswer {
			return false
		}
	}
	return true
}

func allFailed(parts []Part) bool {
	for _, p := range parts {
		if p.Succeeded() {
			return false
		}
	}
	return len(parts) > 0
}
