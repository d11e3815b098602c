package listing

import (
	"context"

	"github.com/AbdulWasayUl/country-explorer/services/country"
)

type SortKey string

const (
	SortByName       SortKey = "name"
	SortByPopulation SortKey = "population"
	SortByRegion     SortKey = "region"
)

type SortOrder string

const (
	Ascending  SortOrder = "asc"
	Descending SortOrder = "desc"
)

type ViewMode string

const (
	ViewGrid ViewMode = "grid"
	ViewList ViewMode = "list"
)

// QueryState is everything the user has selected on the listing page. Only
// Search and Region are reflected in the URL.
type QueryState struct {
	Search    string
	Region    country.Region
	SortKey   SortKey
	SortOrder SortOrder
	ViewMode  ViewMode
}

// DefaultState is the state of a freshly mounted page.
func DefaultState() QueryState {
	return QueryState{SortKey: SortByName, SortOrder: Ascending, ViewMode: ViewGrid}
}

// FetchMode names the single upstream retrieval mode used for a state.
type FetchMode int

const (
	FetchAll FetchMode = iota
	FetchByRegion
	FetchBySearch
)

func (m FetchMode) String() string {
	switch m {
	case FetchByRegion:
		return "region"
	case FetchBySearch:
		return "search"
	default:
		return "all"
	}
}

// FetchPlan is the upstream call for a state plus any region filter that has
// to be applied client-side because the upstream cannot combine filters.
type FetchPlan struct {
	Mode         FetchMode
	Search       string
	Region       country.Region
	ClientRegion country.Region
}

// Directory is the part of the country directory the listing reads.
type Directory interface {
	FetchAll(ctx context.Context) ([]country.Record, error)
	FetchByRegion(ctx context.Context, region country.Region) ([]country.Record, error)
	SearchByName(ctx context.Context, query string) ([]country.Record, error)
}

// URLWriter is the host's router. ReplaceQuery rewrites the current query
// string without adding a history entry.
type URLWriter interface {
	ReplaceQuery(rawQuery string)
}

// View is what the page renders.
type View struct {
	State     QueryState
	Countries []country.Record
	Err       error
	Loading   bool
}
