package fixture

import "time"

// Fixture is the projection of one match returned to callers. It is built
// per request and never stored.
type Fixture struct {
	Name     string    `json:"Name"`
	Starting time.Time `json:"Starting"`
	Players  []Player  `json:"Players"`
}

// Player is one lineup entry. Name and Country are nil when the provider
// did not send them.
type Player struct {
	Name        *string   `json:"Name"`
	DateOfBirth time.Time `json:"DateOfBirth"`
	Number      int       `json:"Number"`
	Country     *string   `json:"Country"`
}

func New() Fixture {
	return Fixture{Players: make([]Player, 0)}
}
