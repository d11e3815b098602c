package detail

import (
	"errors"

	"github.com/AbdulWasayUl/country-explorer/services/country"
)

var ErrMissingCode = errors.New("no country code provided")

// BorderRef is a resolved neighbour, enough to render a link.
type BorderRef struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

// ViewModel is built fresh for every navigation to a country code.
type ViewModel struct {
	Country         country.Record `json:"country"`
	BorderCountries []BorderRef    `json:"borderCountries"`
	IsFavorite      bool           `json:"isFavorite"`
	// CanFavorite is false when nobody is signed in; the toggle is hidden.
	CanFavorite bool `json:"canFavorite"`
}

// Outcome is the page state a load result maps to.
type Outcome int

const (
	OutcomeReady Outcome = iota
	OutcomeMissingCode
	OutcomeNotFound
	OutcomeUnavailable
)

func (o Outcome) String() string {
	switch o {
	case OutcomeReady:
		return "ready"
	case OutcomeMissingCode:
		return "missing_code"
	case OutcomeNotFound:
		return "not_found"
	default:
		return "unavailable"
	}
}

// Message is the user-facing text for the outcome.
func (o Outcome) Message() string {
	switch o {
	case OutcomeReady:
		return ""
	case OutcomeMissingCode:
		return "No country code provided"
	case OutcomeNotFound:
		return "Country not found"
	default:
		return "Could not load country details. Please try again."
	}
}
