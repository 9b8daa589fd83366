package usecase

import "context"

// UpstreamFetcher performs one GET and returns the raw 2xx body.
type UpstreamFetcher interface {
	Get(ctx context.Context, fullURL string) ([]byte, error)
}

// URLBuilder produces fully qualified provider URLs with the token embedded.
type URLBuilder interface {
	CountriesURL() string
	FixturesURL(perPage, page int) string
	FixtureURL(id int64) string
}
