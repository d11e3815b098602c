package listing

import (
	"net/url"
	"strings"

	"github.com/AbdulWasayUl/country-explorer/services/country"
)

const (
	paramSearch = "search"
	paramRegion = "region"
)

// EncodeQuery renders the URL-persisted part of s. Empty values are omitted.
func EncodeQuery(s QueryState) string {
	v := url.Values{}
	if search := strings.TrimSpace(s.Search); search != "" {
		v.Set(paramSearch, search)
	}
	if s.Region != "" {
		v.Set(paramRegion, string(s.Region))
	}
	return v.Encode()
}

// DecodeQuery reads search and region from a raw query string. A region that
// is not one of country.Regions is ignored.
func DecodeQuery(rawQuery string) (search string, region country.Region) {
	// on error ParseQuery still returns the pairs it could parse
	v, _ := url.ParseQuery(strings.TrimPrefix(rawQuery, "?"))
	search = strings.TrimSpace(v.Get(paramSearch))
	if r, ok := country.ParseRegion(v.Get(paramRegion)); ok {
		region = r
	}
	return search, region
}
