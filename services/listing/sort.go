package listing

import (
	"cmp"
	"slices"

	"github.com/AbdulWasayUl/country-explorer/services/country"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Sort returns a sorted copy of records. Text keys use English collation and
// population compares numerically. Descending is the exact reverse of
// ascending, ties included.
func Sort(records []country.Record, key SortKey, order SortOrder) []country.Record {
	out := slices.Clone(records)

	// a Collator is not safe for concurrent use
	col := collate.New(language.English)

	var compare func(a, b country.Record) int
	switch key {
	case SortByPopulation:
		compare = func(a, b country.Record) int { return cmp.Compare(a.Population, b.Population) }
	case SortByRegion:
		compare = func(a, b country.Record) int { return col.CompareString(string(a.Region), string(b.Region)) }
	default:
		compare = func(a, b country.Record) int { return col.CompareString(a.Names.Common, b.Names.Common) }
	}

	slices.SortStableFunc(out, compare)
	if order == Descending {
		slices.Reverse(out)
	}
	return out
}

// nextSort applies a click on a sort header: the same key flips the order,
// a new key starts ascending.
func nextSort(s QueryState, key SortKey) QueryState {
	if s.SortKey == key {
		if s.SortOrder == Ascending {
			s.SortOrder = Descending
		} else {
			s.SortOrder = Ascending
		}
		return s
	}
	s.SortKey = key
	s.SortOrder = Ascending
	return s
}
