package usecase

import (
	"context"

	"github.com/riskibarqy/fixture-gateway/external/sportmonks"
	"github.com/riskibarqy/fixture-gateway/internal/platform/logging"
	"go.opentelemetry.io/otel/attribute"
)

type FixtureResolver struct {
	fetcher UpstreamFetcher
	urls    URLBuilder
	logger  *logging.Logger
}

func NewFixtureResolver(fetcher UpstreamFetcher, urls URLBuilder, logger *logging.Logger) *FixtureResolver {
	if logger == nil {
		logger = logging.Default()
	}
	return &FixtureResolver{fetcher: fetcher, urls: urls, logger: logger}
}

// ResolveLatestFixtureID returns the id of the first fixture in the
// starting_at-desc listing. Every failure is logged and reported as ok=false
// so the caller can fall back to a default id.
func (r *FixtureResolver) ResolveLatestFixtureID(ctx context.Context, perPage, page int) (int64, bool) {
	ctx, span := startSpan(ctx, "usecase.FixtureResolver.ResolveLatestFixtureID",
		attribute.Int("fixtures.per_page", perPage),
		attribute.Int("fixtures.page", page),
	)
	defer span.End()

	fullURL := r.urls.FixturesURL(perPage, page)
	r.logger.InfoContext(ctx, "calling fixtures list", "url", sportmonks.RedactURL(fullURL))

	raw, err := r.fetcher.Get(ctx, fullURL)
	if err != nil {
		r.logger.WarnContext(ctx, "resolve latest fixture failed", "error", err)
		return 0, false
	}

	data, _, err := sportmonks.DecodeEnvelope(raw)
	if err != nil {
		r.logger.WarnContext(ctx, "resolve latest fixture failed", "error", err)
		return 0, false
	}

	items, ok := data.([]any)
	if !ok || len(items) == 0 {
		r.logger.WarnContext(ctx, "fixtures list returned no data", "per_page", perPage, "page", page)
		return 0, false
	}
	first, ok := asObject(items[0])
	if !ok {
		return 0, false
	}
	id, ok := intField(first, "id")
	if !ok {
		r.logger.WarnContext(ctx, "first fixture has no integer id")
		return 0, false
	}

	r.logger.InfoContext(ctx, "resolved latest fixture", "fixture_id", id)
	span.SetAttributes(attribute.Int64("fixture.id", id))
	return id, true
}
