package usecase

import (
	"context"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/fixture-gateway/external/sportmonks"
	"github.com/riskibarqy/fixture-gateway/internal/domain/country"
	"github.com/riskibarqy/fixture-gateway/internal/platform/logging"
	"go.opentelemetry.io/otel/attribute"
)

// LoadCountries fetches the full countries list once and freezes it into a
// directory. Any failure here is meant to abort startup.
func LoadCountries(ctx context.Context, fetcher UpstreamFetcher, urls URLBuilder, logger *logging.Logger) (country.Directory, error) {
	ctx, span := startSpan(ctx, "usecase.LoadCountries")
	defer span.End()

	if logger == nil {
		logger = logging.Default()
	}

	fullURL := urls.CountriesURL()
	logger.InfoContext(ctx, "loading countries", "url", sportmonks.RedactURL(fullURL))

	raw, err := fetcher.Get(ctx, fullURL)
	if err != nil {
		return country.Directory{}, failSpan(span, crerr.Wrap(err, "fetch countries"))
	}

	payload, err := sportmonks.DecodeCountries(raw)
	if err != nil {
		return country.Directory{}, failSpan(span, err)
	}

	entries := make([]country.Entry, 0, len(payload.Data))
	for _, item := range payload.Data {
		name := country.UnknownName
		if item.Name != nil {
			name = *item.Name
		}
		entries = append(entries, country.Entry{ID: *item.ID, Name: name})
	}

	dir := country.NewDirectory(entries)
	dir.Each(func(id int64, name string) {
		logger.DebugContext(ctx, "country loaded", "id", id, "name", name)
	})
	logger.InfoContext(ctx, "countries loaded", "count", dir.Len())
	span.SetAttributes(attribute.Int("countries.count", dir.Len()))

	return dir, nil
}
