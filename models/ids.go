package models

import "github.com/google/uuid"

// Identifiers are UUID strings, one type per table so that a country id
// cannot be passed where an event id is expected.
type (
	CountryID     string
	IndicatorID   string
	PulseScoreID  string
	EventID       string
	EventImpactID string
)

func newID() string {
	return uuid.NewString()
}

// ParseCountryID validates an identifier received from outside the process.
func ParseCountryID(s string) (CountryID, error) {
	if _, err := uuid.Parse(s); err != nil {
		return "", err
	}
	return CountryID(s), nil
}

// ParseEventID validates an identifier received from outside the process.
func ParseEventID(s string) (EventID, error) {
	if _, err := uuid.Parse(s); err != nil {
		return "", err
	}
	return EventID(s), nil
}
