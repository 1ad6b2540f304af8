package components

import (
	"log/slog"

	"hotel-concierge/internal/infra/ledger"
	"hotel-concierge/internal/infra/seed"
	"hotel-concierge/internal/pkg/clock"
	"hotel-concierge/internal/pkg/config"

	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		clock.NewRealClock,
		NewLedger,
	),
)

func NewLedger(cfg config.Config, clk clock.Clock, logger *slog.Logger) (*ledger.Ledger, error) {
	units, err := seed.Load(cfg.Inventory.SeedPath)
	if err != nil {
		return nil, err
	}
	l, err := ledger.New(units, clk, logger)
	if err != nil {
		return nil, err
	}
	logger.Info("inventory loaded", "units", len(units), "seed", cfg.Inventory.SeedPath)
	return l, nil
}
