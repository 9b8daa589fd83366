package usecase

import (
	"github.com/riskibarqy/fixture-gateway/internal/domain/country"
	"github.com/riskibarqy/fixture-gateway/internal/domain/fixture"
)

// ParseFixture projects a single-fixture data payload into the domain model.
// It never fails: missing or mistyped fields keep their zero value and a bad
// lineup entry does not affect its neighbours.
func ParseFixture(data any, countries country.Directory) fixture.Fixture {
	out := fixture.New()

	obj, ok := asObject(data)
	if !ok {
		return out
	}

	if name, ok := stringField(obj, "name"); ok {
		out.Name = name
	}
	if raw, ok := stringField(obj, "starting_at"); ok {
		if startingAt, ok := parseProviderTime(raw); ok {
			out.Starting = startingAt
		}
	}

	lineups, ok := obj["lineups"].([]any)
	if !ok {
		return out
	}
	for _, item := range lineups {
		entry, ok := asObject(item)
		if !ok {
			continue
		}
		out.Players = append(out.Players, parseLineupPlayer(entry, countries))
	}

	return out
}

func parseLineupPlayer(entry map[string]any, countries country.Directory) fixture.Player {
	var player fixture.Player

	if raw, present := entry["player_name"]; present {
		switch typed := raw.(type) {
		case string:
			player.Name = &typed
		case nil:
			empty := ""
			player.Name = &empty
		}
	}
	if number, ok := intField(entry, "jersey_number"); ok {
		player.Number = int(number)
	}

	nested, ok := asObject(entry["player"])
	if !ok {
		return player
	}

	if raw, ok := stringField(nested, "date_of_birth"); ok {
		if dob, ok := parseProviderTime(raw); ok {
			player.DateOfBirth = dob
		}
	}

	// A present nationality always yields a country; ids we cannot resolve
	// (unknown or not an integer) become "Unknown".
	if raw, present := nested["nationality_id"]; present && raw != nil {
		name := country.UnknownName
		if id, ok := asInt64(raw); ok {
			name = countries.Name(id)
		}
		player.Country = &name
	}

	return player
}
