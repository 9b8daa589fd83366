package app

import (
	"context"
	"net/http"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/fixture-gateway/external/sportmonks"
	"github.com/riskibarqy/fixture-gateway/internal/config"
	"github.com/riskibarqy/fixture-gateway/internal/domain/country"
	"github.com/riskibarqy/fixture-gateway/internal/interfaces/httpapi"
	"github.com/riskibarqy/fixture-gateway/internal/platform/logging"
	"github.com/riskibarqy/fixture-gateway/internal/server"
	"github.com/riskibarqy/fixture-gateway/internal/usecase"
)

// App holds the wired service. Countries are loaded before New returns, so
// the dispatcher never accepts a connection without them.
type App struct {
	Dispatcher *server.Dispatcher
	Router     http.Handler
	Countries  country.Directory
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}

	client := sportmonks.NewClient(sportmonks.ClientConfig{
		Token:          cfg.SportMonksToken,
		Timeout:        cfg.SportMonksTimeout,
		Logger:         logger,
		CircuitBreaker: cfg.SportMonksCircuit,
	})

	countries, err := usecase.LoadCountries(ctx, client, cfg, logger)
	if err != nil {
		return nil, crerr.Wrap(err, "load country directory")
	}

	resolver := usecase.NewFixtureResolver(client, cfg, logger)
	fixtureSvc := usecase.NewFixtureService(resolver, client, cfg, countries, logger)

	handler := httpapi.NewHandler(fixtureSvc, logger)
	router := httpapi.NewRouter(handler, logger)

	dispatcher, err := server.New(server.Config{
		Name:         cfg.ServiceName,
		PoolSize:     cfg.WorkerPoolSize,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
		KeepAlive:    cfg.KeepAlive,
	}, router, logger)
	if err != nil {
		return nil, crerr.Wrap(err, "build dispatcher")
	}

	return &App{
		Dispatcher: dispatcher,
		Router:     router,
		Countries:  countries,
	}, nil
}
