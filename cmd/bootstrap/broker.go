package bootstrap

import (
	"context"
	"log/slog"

	"hotel-concierge/internal/infra/notify"
	"hotel-concierge/internal/pkg/config"
	"hotel-concierge/internal/usecase/dispatch"

	"go.uber.org/fx"
)

var BrokerModule = fx.Module("broker",
	fx.Provide(
		NewNotifier,
	),
)

func NewNotifier(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (dispatch.Notifier, error) {
	if cfg.Broker.URL == "" {
		return notify.NewLogNotifier(logger), nil
	}

	pub, err := notify.Dial(cfg.Broker.URL, cfg.Broker.Exchange, logger)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return pub.Close()
		},
	})

	return pub, nil
}
