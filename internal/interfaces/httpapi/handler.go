package httpapi

import (
	"context"
	"errors"
	"net/http"

	"github.com/riskibarqy/fixture-gateway/external/sportmonks"
	"github.com/riskibarqy/fixture-gateway/internal/domain/fixture"
	"github.com/riskibarqy/fixture-gateway/internal/platform/logging"
	"github.com/riskibarqy/fixture-gateway/internal/usecase"
)

// LatestFixtureService is satisfied by *usecase.FixtureService.
type LatestFixtureService interface {
	GetLatest(ctx context.Context, perPage, page int) (fixture.Fixture, error)
}

type Handler struct {
	fixtures LatestFixtureService
	logger   *logging.Logger
}

func NewHandler(fixtures LatestFixtureService, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{fixtures: fixtures, logger: logger}
}

// GetLatestFixture runs the whole pipeline for one request: resolve the
// newest fixture on the requested page, fetch it and answer with the
// simplified projection.
func (h *Handler) GetLatestFixture(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLatestFixture")
	defer span.End()

	query := r.URL.Query()
	perPage := parseIntParam(query.Get("per_page"))
	page := parseIntParam(query.Get("page"))

	out, err := h.fixtures.GetLatest(ctx, perPage, page)
	if err != nil {
		h.writeFixtureError(ctx, w, err)
		return
	}

	if err := writeJSON(ctx, w, http.StatusOK, out); err != nil {
		h.logger.ErrorContext(ctx, "encode fixture response failed", "error", err)
		writeInternalError(ctx, w)
	}
}

func (h *Handler) writeFixtureError(ctx context.Context, w http.ResponseWriter, err error) {
	if statusErr, ok := sportmonks.AsStatusError(err); ok {
		h.logger.WarnContext(ctx, "upstream fixture call failed", "status", statusErr.StatusCode, "error", err)
		writeText(ctx, w, statusErr.StatusCode, upstreamErrorText(statusErr.StatusCode))
		return
	}
	if errors.Is(err, usecase.ErrNotFound) {
		h.logger.InfoContext(ctx, "fixture has no data", "error", err)
		writeText(ctx, w, http.StatusNotFound, textNoData)
		return
	}

	h.logger.ErrorContext(ctx, "handle fixture request failed", "error", err)
	writeInternalError(ctx, w)
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeText(r.Context(), w, http.StatusOK, "ok")
}
