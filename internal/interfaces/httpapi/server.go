package httpapi

import (
	"net/http"

	"github.com/riskibarqy/fixture-gateway/internal/platform/logging"
)

func NewRouter(handler *Handler, logger *logging.Logger) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", handler.Healthz)
	mux.HandleFunc("GET /{$}", handler.GetLatestFixture)

	return RequestTracing(RequestLogging(logger, recoverPanic(logger, mux)))
}
