package usecase

import (
	"context"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/fixture-gateway/external/sportmonks"
	"github.com/riskibarqy/fixture-gateway/internal/domain/country"
	"github.com/riskibarqy/fixture-gateway/internal/domain/fixture"
	"github.com/riskibarqy/fixture-gateway/internal/platform/logging"
	"go.opentelemetry.io/otel/attribute"
)

// DefaultFixtureID is used when the latest fixture cannot be resolved.
const DefaultFixtureID int64 = 1

type FixtureService struct {
	resolver  *FixtureResolver
	fetcher   UpstreamFetcher
	urls      URLBuilder
	countries country.Directory
	logger    *logging.Logger
}

func NewFixtureService(
	resolver *FixtureResolver,
	fetcher UpstreamFetcher,
	urls URLBuilder,
	countries country.Directory,
	logger *logging.Logger,
) *FixtureService {
	if logger == nil {
		logger = logging.Default()
	}
	return &FixtureService{
		resolver:  resolver,
		fetcher:   fetcher,
		urls:      urls,
		countries: countries,
		logger:    logger,
	}
}

// GetLatest resolves the newest fixture for the page, fetches it with
// lineups and parses it. A non-2xx single-fixture answer is returned as
// *sportmonks.StatusError; a payload without data wraps ErrNotFound.
func (s *FixtureService) GetLatest(ctx context.Context, perPage, page int) (fixture.Fixture, error) {
	ctx, span := startSpan(ctx, "usecase.FixtureService.GetLatest",
		attribute.Int("fixtures.per_page", perPage),
		attribute.Int("fixtures.page", page),
	)
	defer span.End()

	id, ok := s.resolver.ResolveLatestFixtureID(ctx, perPage, page)
	if !ok {
		id = DefaultFixtureID
		s.logger.WarnContext(ctx, "using default fixture id", "fixture_id", id)
	}
	span.SetAttributes(attribute.Int64("fixture.id", id), attribute.Bool("fixture.default_id", !ok))

	fullURL := s.urls.FixtureURL(id)
	s.logger.InfoContext(ctx, "calling fixture", "url", sportmonks.RedactURL(fullURL), "fixture_id", id)

	raw, err := s.fetcher.Get(ctx, fullURL)
	if err != nil {
		return fixture.Fixture{}, failSpan(span, crerr.Wrapf(err, "fetch fixture id=%d", id))
	}

	data, present, err := sportmonks.DecodeEnvelope(raw)
	if err != nil {
		return fixture.Fixture{}, failSpan(span, crerr.Wrapf(err, "fixture id=%d", id))
	}
	if !present || data == nil {
		return fixture.Fixture{}, failSpan(span, crerr.Wrapf(ErrNotFound, "fixture id=%d has no data", id))
	}

	out := ParseFixture(data, s.countries)
	s.logger.InfoContext(ctx, "fixture parsed", "fixture_id", id, "players", len(out.Players))
	return out, nil
}
