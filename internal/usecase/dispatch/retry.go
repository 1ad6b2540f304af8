package dispatch

import (
	"context"
	"log/slog"
	"time"

	"hotel-concierge/internal/domain/intent"
	"hotel-concierge/internal/pkg/errs"
)

// classify asks the classifier up to MaxAttempts times with exponential backoff.
// ErrUnclassifiable and cancellation end the loop immediately.
func (d *Dispatcher) classify(ctx context.Context, turn Turn) (intent.Classification, error) {
	attempts := max(d.opts.MaxAttempts, 1)
	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if attempt > 1 {
			if err := wait(ctx, d.backoff(attempt-1)); err != nil {
				return intent.Classification{}, err
			}
		}

		cls, err := d.classifier.Classify(ctx, turn.Text, turn.History)
		d.recorder.ObserveClassification(attempt, err)
		if err == nil {
			return cls, validateClassification(cls)
		}
		if errs.Is(err, errs.ErrUnclassifiable) {
			return intent.Classification{}, err
		}
		if ctxErr := errs.FromContext(ctx); ctxErr != nil {
			return intent.Classification{}, ctxErr
		}
		lastErr = err
		d.logger.WarnContext(ctx, "classification attempt failed",
			slog.String("turn_id", turn.ID.String()),
			slog.Int("attempt", attempt),
			slog.String("error", err.Error()))
	}
	return intent.Classification{}, errs.Mark(
		errs.Wrapf(lastErr, "classifier failed after %d attempts", attempts),
		errs.ErrClassificationUnavailable,
	)
}

func (d *Dispatcher) backoff(retry int) time.Duration {
	delay := d.opts.BaseBackoff
	for i := 1; i < retry; i++ {
		delay *= 2
		if d.opts.MaxBackoff > 0 && delay >= d.opts.MaxBackoff {
			return d.opts.MaxBackoff
		}
	}
	if d.opts.MaxBackoff > 0 && delay > d.opts.MaxBackoff {
		return d.opts.MaxBackoff
	}
	return delay
}

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return errs.FromContext(ctx)
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return errs.FromContext(ctx)
	}
}

func validateClassification(cls intent.Classification) error {
	if len(cls.Intents) == 0 {
		return errs.Wrap(errs.ErrUnclassifiable, "classifier returned no intents")
	}
	for i, in := range cls.Intents {
		if in == nil {
			return errs.Wrapf(errs.ErrUnclassifiable, "intent %d is empty", i)
		}
	}
	return nil
}
