package usecase

import (
	"fmt"
	"testing"

	"github.com/riskibarqy/fixture-gateway/external/sportmonks"
)

type stubURLs struct{}

func (stubURLs) CountriesURL() string { return "https://provider.test/core/countries?api_token=tok" }

func (stubURLs) FixturesURL(perPage, page int) string {
	return fmt.Sprintf("https://provider.test/football/fixtures/?api_token=tok&per_page=%d&page=%d", perPage, page)
}

func (stubURLs) FixtureURL(id int64) string {
	return fmt.Sprintf("https://provider.test/football/fixtures/%d?include=lineups.player&api_token=tok", id)
}

func decodeData(t *testing.T, body string) any {
	t.Helper()
	data, present, err := sportmonks.DecodeEnvelope([]byte(body))
	if err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if !present {
		t.Fatalf("payload has no data key: %s", body)
	}
	return data
}
