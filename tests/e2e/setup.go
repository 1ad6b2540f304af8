//go:build e2e

package e2e

import (
	"context"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"hotel-concierge/cmd/bootstrap"
	"hotel-concierge/cmd/bootstrap/components"
	"hotel-concierge/internal/pkg/config"
	"hotel-concierge/tests/common/nlustub"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/fx"
)

// ------------------------------------------------------------
// Per-test environment: a stub language service, an in-memory
// Redis and the full application graph on top of them
// ------------------------------------------------------------
func setupE2EEnvironment(t *testing.T) (*gin.Engine, config.Config, *nlustub.Server, *miniredis.Miniredis) {
	gin.SetMode(gin.TestMode)

	stub := nlustub.New(t)
	redisServer := miniredis.RunT(t)

	cfg := createTestConfig(stub.URL, redisServer.Addr())
	router, app := buildE2EApp(cfg)
	require.NotNil(t, router, "router setup failed")

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := app.Stop(ctx); err != nil {
			slog.Warn("failed to stop fx application", "error", err.Error())
		}
	})

	return router, cfg, stub, redisServer
}

// ------------------------------------------------------------
// Builds the application the way main does, minus the HTTP listener
// ------------------------------------------------------------
func buildE2EApp(cfg config.Config) (*gin.Engine, *fx.App) {
	var router *gin.Engine

	testConfigModule := fx.Module("testconfig",
		fx.Provide(func() config.Config { return cfg }),
	)

	app := fx.New(
		testConfigModule,
		fx.Provide(func() *gin.Engine { return gin.New() }),
		bootstrap.LoggerModule,
		bootstrap.RedisModule,
		bootstrap.BrokerModule,
		components.PersistenceModule,
		components.NLUModule,
		components.UseCaseModule,
		components.HandlerModule,

		fx.Populate(&router),

		fx.NopLogger,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.Start(ctx); err != nil {
		panic(fmt.Sprintf("failed to start fx app: %v", err))
	}

	return router, app
}

func createTestConfig(nluURL, redisAddr string) config.Config {
	testConfig := config.NewTestConfig()
	testConfig.NLU.BaseURL = nluURL
	testConfig.NLU.RenderEnabled = true
	testConfig.Redis.Addr = redisAddr
	return testConfig
}

// ------------------------------------------------------------
// Shared setup for e2e suites; every test gets a fresh ledger
// ------------------------------------------------------------
type SharedSuite struct {
	suite.Suite
	Router *gin.Engine
	Config config.Config
	NLU    *nlustub.Server
	Redis  *miniredis.Miniredis
}

func (s *SharedSuite) SetupTest() {
	s.Router, s.Config, s.NLU, s.Redis = setupE2EEnvironment(s.T())
	require.NotNil(s.T(), s.NLU, "language service stub setup failed")
}
