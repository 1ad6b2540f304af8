package bootstrap

import (
	"hotel-concierge/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	RedisModule,
	BrokerModule,
	components.PersistenceModule,
	components.NLUModule,
	components.UseCaseModule,
	components.HandlerModule,
)
