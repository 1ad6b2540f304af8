package components

import (
	"log/slog"

	"hotel-concierge/internal/infra/nlu"
	"hotel-concierge/internal/pkg/config"
	"hotel-concierge/internal/usecase/dispatch"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var NLUModule = fx.Module("nlu",
	fx.Provide(
		NewNLUClient,
		NewClassifier,
		NewRenderer,
	),
)

func NewNLUClient(cfg config.Config, logger *slog.Logger) *nlu.Client {
	return nlu.NewClient(cfg.NLU, logger)
}

// rdb is nil when Redis is not configured
func NewClassifier(client *nlu.Client, rdb *redis.Client, cfg config.Config, logger *slog.Logger) dispatch.Classifier {
	if rdb == nil {
		return client
	}
	return nlu.NewCachedClassifier(client, rdb, cfg.NLU.CacheTTL, logger)
}

// A nil renderer makes the dispatcher compose plain replies.
func NewRenderer(client *nlu.Client, cfg config.Config) dispatch.Renderer {
	if !cfg.NLU.RenderEnabled {
		return nil
	}
	return client
}
