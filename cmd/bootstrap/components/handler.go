package components

import (
	"hotel-concierge/internal/handler"
	"hotel-concierge/internal/handler/api"
	"hotel-concierge/internal/pkg/config"
	"hotel-concierge/internal/usecase/commands"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		func(cmds commands.TurnCommands, cfg config.Config) *api.TurnHandler {
			return api.NewTurnHandler(cmds, cfg.Pricing.Currency)
		},
		api.NewInventoryHandler,
		api.NewReservationHandler,
		func(t *api.TurnHandler, i *api.InventoryHandler, r *api.ReservationHandler) handler.Handlers {
			return handler.Handlers{Turn: t, Inventory: i, Reservation: r}
		},
	),
	fx.Invoke(handler.NewRouter),
)
