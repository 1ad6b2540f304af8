package components

import (
	"log/slog"

	"hotel-concierge/internal/domain/pricing"
	"hotel-concierge/internal/infra/ledger"
	"hotel-concierge/internal/infra/metrics"
	"hotel-concierge/internal/pkg/clock"
	"hotel-concierge/internal/pkg/config"
	"hotel-concierge/internal/usecase/commands"
	"hotel-concierge/internal/usecase/dispatch"
	"hotel-concierge/internal/usecase/queries"
	"hotel-concierge/internal/usecase/specialist"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseSpecialistsModule,
	usecaseQueriesModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	metrics.New,
	NewPricingCalculator,
)

var usecaseSpecialistsModule = fx.Module("usecase/specialists",
	fx.Provide(
		NewSpecialists,
		NewDispatcher,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		func(l *ledger.Ledger, cfg config.Config) queries.InventoryQueries {
			return queries.NewInventoryQueries(l, cfg.Pricing.Currency)
		},
		func(l *ledger.Ledger, cfg config.Config) queries.ReservationQueries {
			return queries.NewReservationQueries(l, cfg.Pricing.Currency)
		},
	),
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		func(d *dispatch.Dispatcher, cfg config.Config) commands.TurnCommands {
			return commands.NewTurnCommands(d, cfg.NLU.DefaultLang)
		},
		func(l *ledger.Ledger, n dispatch.Notifier, clk clock.Clock, cfg config.Config, logger *slog.Logger) commands.ReservationCommands {
			return commands.NewReservationCommands(l, n, clk, cfg.Pricing.Currency, logger)
		},
	),
)

func NewPricingCalculator(cfg config.Config) (pricing.Calculator, error) {
	p := cfg.Pricing
	policy, err := pricing.NewPolicy(
		p.Currency,
		p.TaxRateBP,
		p.ServiceChargeBP,
		pricing.BulkRule{MinQuantity: p.BulkMinQuantity, PercentBP: p.BulkDiscountBP},
		pricing.LoyaltyRule{PercentBP: p.LoyaltyDiscountBP},
	)
	if err != nil {
		return nil, err
	}
	return pricing.NewCalculator(policy), nil
}

func NewSpecialists(l *ledger.Ledger, calc pricing.Calculator, cfg config.Config, logger *slog.Logger) dispatch.Specialists {
	return dispatch.Specialists{
		Room:         specialist.NewRoom(l, logger),
		Dining:       specialist.NewDining(l, cfg.Dining.FuzzyThreshold, logger),
		Table:        specialist.NewTable(l, logger),
		Billing:      specialist.NewBilling(l, calc),
		Cancellation: specialist.NewCancellation(l, logger),
		Availability: specialist.NewAvailability(l),
	}
}

func NewDispatcher(
	cls dispatch.Classifier,
	renderer dispatch.Renderer,
	sp dispatch.Specialists,
	l *ledger.Ledger,
	n dispatch.Notifier,
	m *metrics.Metrics,
	clk clock.Clock,
	cfg config.Config,
	logger *slog.Logger,
) *dispatch.Dispatcher {
	d := cfg.Dispatcher
	return dispatch.New(cls, renderer, sp, l, n, m, clk, dispatch.Options{
		MaxAttempts: d.ClassifyMaxAttempts,
		BaseBackoff: d.ClassifyBaseBackoff,
		MaxBackoff:  d.ClassifyMaxBackoff,
		TurnTimeout: d.TurnTimeout,
	}, logger)
}
