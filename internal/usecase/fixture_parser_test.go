package usecase

import (
	"testing"
	"time"

	"github.com/riskibarqy/fixture-gateway/internal/domain/country"
)

func TestParseFixture_ScenarioWithKnownCountry(t *testing.T) {
	t.Parallel()

	countries := country.NewDirectory([]country.Entry{{ID: 12, Name: "Brazil"}})
	data := decodeData(t, `{"data":{
		"name":"Team A vs Team B",
		"starting_at":"2024-05-01T18:00:00Z",
		"lineups":[{"player_name":"X","jersey_number":10,"player":{"date_of_birth":"1995-03-02","nationality_id":12}}]
	}}`)

	got := ParseFixture(data, countries)

	if got.Name != "Team A vs Team B" {
		t.Fatalf("unexpected name: %q", got.Name)
	}
	if want := time.Date(2024, 5, 1, 18, 0, 0, 0, time.UTC); !got.Starting.Equal(want) {
		t.Fatalf("unexpected starting: %s", got.Starting)
	}
	if len(got.Players) != 1 {
		t.Fatalf("expected one player, got %d", len(got.Players))
	}
	p := got.Players[0]
	if p.Name == nil || *p.Name != "X" {
		t.Fatalf("unexpected player name: %v", p.Name)
	}
	if p.Number != 10 {
		t.Fatalf("unexpected number: %d", p.Number)
	}
	if p.Country == nil || *p.Country != "Brazil" {
		t.Fatalf("unexpected country: %v", p.Country)
	}
	if want := time.Date(1995, 3, 2, 0, 0, 0, 0, time.UTC); !p.DateOfBirth.Equal(want) {
		t.Fatalf("unexpected date of birth: %s", p.DateOfBirth)
	}
}

func TestParseFixture_MissingLineupsYieldsNoPlayers(t *testing.T) {
	t.Parallel()

	got := ParseFixture(decodeData(t, `{"data":{"name":"A vs B"}}`), country.Directory{})
	if got.Players == nil || len(got.Players) != 0 {
		t.Fatalf("expected empty non-nil players, got %#v", got.Players)
	}

	got = ParseFixture(decodeData(t, `{"data":{"name":"A vs B","lineups":{"data":[]}}}`), country.Directory{})
	if len(got.Players) != 0 {
		t.Fatalf("non-array lineups should yield no players, got %d", len(got.Players))
	}
}

func TestParseFixture_PlayerWithoutNestedObject(t *testing.T) {
	t.Parallel()

	countries := country.NewDirectory([]country.Entry{{ID: 12, Name: "Brazil"}})
	data := decodeData(t, `{"data":{"name":"A vs B","lineups":[
		{"player_name":"Full","jersey_number":9,"player":{"date_of_birth":"1990-01-15","nationality_id":12}},
		{"player_name":"Bare","jersey_number":4}
	]}}`)

	got := ParseFixture(data, countries)
	if len(got.Players) != 2 {
		t.Fatalf("expected two players, got %d", len(got.Players))
	}
	second := got.Players[1]
	if !second.DateOfBirth.IsZero() {
		t.Fatalf("expected zero date of birth, got %s", second.DateOfBirth)
	}
	if second.Country != nil {
		t.Fatalf("expected no country, got %q", *second.Country)
	}
	if second.Number != 4 {
		t.Fatalf("unexpected number: %d", second.Number)
	}
}

func TestParseFixture_NationalityResolution(t *testing.T) {
	t.Parallel()

	countries := country.NewDirectory([]country.Entry{{ID: 12, Name: "Brazil"}, {ID: 44, Name: "Serbia"}})

	cases := []struct {
		name        string
		nationality string
		want        *string
	}{
		{name: "cached id", nationality: `12`, want: strPtr("Brazil")},
		{name: "other cached id", nationality: `44`, want: strPtr("Serbia")},
		{name: "unknown id", nationality: `999`, want: strPtr(country.UnknownName)},
		{name: "string id", nationality: `"12"`, want: strPtr(country.UnknownName)},
		{name: "fractional id", nationality: `12.5`, want: strPtr(country.UnknownName)},
		{name: "null id", nationality: `null`, want: nil},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			data := decodeData(t, `{"data":{"lineups":[{"player":{"nationality_id":`+tc.nationality+`}}]}}`)
			got := ParseFixture(data, countries).Players[0].Country
			switch {
			case tc.want == nil && got != nil:
				t.Fatalf("expected no country, got %q", *got)
			case tc.want != nil && (got == nil || *got != *tc.want):
				t.Fatalf("expected %q, got %v", *tc.want, got)
			}
		})
	}
}

func TestParseFixture_MalformedFieldsAreDefaulted(t *testing.T) {
	t.Parallel()

	data := decodeData(t, `{"data":{
		"name":42,
		"starting_at":"yesterday evening",
		"lineups":[
			"not an object",
			{"player_name":7,"jersey_number":"10","player":{"date_of_birth":"   ","nationality_id":12}},
			{"player_name":"Ok","jersey_number":11.5,"player":"nested as string"},
			{"player_name":"Late","jersey_number":8,"player":{"date_of_birth":"02/03/1995"}}
		]
	}}`)

	got := ParseFixture(data, country.Directory{})

	if got.Name != "" {
		t.Fatalf("expected empty name for non-string value, got %q", got.Name)
	}
	if !got.Starting.IsZero() {
		t.Fatalf("expected zero starting for malformed timestamp, got %s", got.Starting)
	}
	if len(got.Players) != 3 {
		t.Fatalf("expected non-object entry to be skipped, got %d players", len(got.Players))
	}

	first := got.Players[0]
	if first.Name != nil || first.Number != 0 || !first.DateOfBirth.IsZero() {
		t.Fatalf("expected defaults for mistyped fields, got %#v", first)
	}
	if first.Country == nil || *first.Country != country.UnknownName {
		t.Fatalf("expected Unknown country with empty directory, got %v", first.Country)
	}

	second := got.Players[1]
	if second.Name == nil || *second.Name != "Ok" || second.Number != 0 || second.Country != nil {
		t.Fatalf("unexpected second player: %#v", second)
	}

	third := got.Players[2]
	if third.Number != 8 || !third.DateOfBirth.IsZero() {
		t.Fatalf("unexpected third player: %#v", third)
	}
}

func TestParseFixture_ProviderTimestampLayout(t *testing.T) {
	t.Parallel()

	got := ParseFixture(decodeData(t, `{"data":{"starting_at":"2024-08-17 14:00:00"}}`), country.Directory{})
	if want := time.Date(2024, 8, 17, 14, 0, 0, 0, time.UTC); !got.Starting.Equal(want) {
		t.Fatalf("unexpected starting: %s", got.Starting)
	}
}

func TestParseFixture_NonObjectData(t *testing.T) {
	t.Parallel()

	got := ParseFixture([]any{"x"}, country.Directory{})
	if got.Name != "" || len(got.Players) != 0 {
		t.Fatalf("expected empty fixture, got %#v", got)
	}
}

func strPtr(v string) *string { return &v }

func TestParseFixture_NullPlayerNameBecomesEmpty(t *testing.T) {
	t.Parallel()

	data := decodeData(t, `{"data":{"lineups":[{"player_name":null,"jersey_number":3},{"jersey_number":4}]}}`)
	players := ParseFixture(data, country.Directory{}).Players
	if len(players) != 2 {
		t.Fatalf("expected two players, got %d", len(players))
	}
	if players[0].Name == nil || *players[0].Name != "" {
		t.Fatalf("expected empty name for null player_name, got %v", players[0].Name)
	}
	if players[1].Name != nil {
		t.Fatalf("expected no name when player_name is absent, got %q", *players[1].Name)
	}
}
