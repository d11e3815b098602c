package country

import "strings"

// Region is the continent-level grouping used by the upstream source.
type Region string

const (
	RegionAfrica    Region = "Africa"
	RegionAmericas  Region = "Americas"
	RegionAsia      Region = "Asia"
	RegionEurope    Region = "Europe"
	RegionOceania   Region = "Oceania"
	RegionAntarctic Region = "Antarctic"
)

// Regions lists the regions the filter UI offers, in display order.
var Regions = []Region{
	RegionAfrica,
	RegionAmericas,
	RegionAsia,
	RegionEurope,
	RegionOceania,
	RegionAntarctic,
}

// ParseRegion matches s case-insensitively against Regions and returns the
// canonical spelling.
func ParseRegion(s string) (Region, bool) {
	s = strings.TrimSpace(s)
	for _, r := range Regions {
		if strings.EqualFold(string(r), s) {
			return r, true
		}
	}
	return "", false
}

// RawCountry mirrors the subset of the REST Countries v3.1 payload we read.
// Extra upstream fields are ignored by the decoder.
type RawCountry struct {
	Name       RawName                `json:"name"`
	CCA2       string                 `json:"cca2"`
	CCA3       string                 `json:"cca3"`
	Capital    []string               `json:"capital"`
	Region     string                 `json:"region"`
	Subregion  string                 `json:"subregion"`
	Population int64                  `json:"population"`
	Area       *float64               `json:"area"`
	Languages  map[string]string      `json:"languages"`
	Currencies map[string]RawCurrency `json:"currencies"`
	Borders    []string               `json:"borders"`
	Flags      RawImages              `json:"flags"`
	CoatOfArms RawImages              `json:"coatOfArms"`
	Maps       RawMaps                `json:"maps"`
}

type RawName struct {
	Common   string `json:"common"`
	Official string `json:"official"`
}

type RawCurrency struct {
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
}

type RawImages struct {
	PNG string `json:"png"`
	SVG string `json:"svg"`
	Alt string `json:"alt"`
}

type RawMaps struct {
	GoogleMaps     string `json:"googleMaps"`
	OpenStreetMaps string `json:"openStreetMaps"`
}

// Record is a normalized country. Alpha3 is the canonical identifier used in
// routes, favorites and border references.
type Record struct {
	Names      Names               `json:"names" bson:"names"`
	Codes      Codes               `json:"codes" bson:"codes"`
	Capital    []string            `json:"capital" bson:"capital"`
	Region     Region              `json:"region" bson:"region"`
	Subregion  string              `json:"subregion,omitempty" bson:"subregion,omitempty"`
	Population int64               `json:"population" bson:"population"`
	Area       *float64            `json:"area,omitempty" bson:"area_sqkm,omitempty"`
	Languages  map[string]string   `json:"languages,omitempty" bson:"languages,omitempty"`
	Currencies map[string]Currency `json:"currencies,omitempty" bson:"currencies,omitempty"`
	Borders    []string            `json:"borders" bson:"borders"`
	Flags      Flags               `json:"flags" bson:"flags"`
	CoatOfArms *Images             `json:"coatOfArms,omitempty" bson:"coat_of_arms,omitempty"`
	Maps       Maps                `json:"maps" bson:"maps"`
}

type Names struct {
	Common   string `json:"common" bson:"common"`
	Official string `json:"official" bson:"official"`
}

type Codes struct {
	Alpha2 string `json:"alpha2" bson:"alpha2"`
	Alpha3 string `json:"alpha3" bson:"alpha3"`
}

type Currency struct {
	Name   string `json:"name" bson:"name"`
	Symbol string `json:"symbol" bson:"symbol"`
}

type Flags struct {
	PNG string `json:"png" bson:"png"`
	SVG string `json:"svg" bson:"svg"`
	Alt string `json:"alt,omitempty" bson:"alt,omitempty"`
}

type Images struct {
	PNG string `json:"png" bson:"png"`
	SVG string `json:"svg" bson:"svg"`
}

type Maps struct {
	GoogleMaps     string `json:"googleMaps" bson:"google_maps"`
	OpenStreetMaps string `json:"openStreetMaps" bson:"open_street_maps"`
}

// HasCode reports whether code matches the record's alpha2 or alpha3 code.
func (r Record) HasCode(code string) bool {
	code = strings.ToUpper(strings.TrimSpace(code))
	return code != "" && (code == r.Codes.Alpha3 || code == r.Codes.Alpha2)
}

// Raw converts a record back into its upstream shape.
func (r Record) Raw() RawCountry {
	raw := RawCountry{
		Name:       RawName{Common: r.Names.Common, Official: r.Names.Official},
		CCA2:       r.Codes.Alpha2,
		CCA3:       r.Codes.Alpha3,
		Capital:    append([]string(nil), r.Capital...),
		Region:     string(r.Region),
		Subregion:  r.Subregion,
		Population: r.Population,
		Borders:    append([]string(nil), r.Borders...),
		Flags:      RawImages{PNG: r.Flags.PNG, SVG: r.Flags.SVG, Alt: r.Flags.Alt},
		Maps:       RawMaps{GoogleMaps: r.Maps.GoogleMaps, OpenStreetMaps: r.Maps.OpenStreetMaps},
	}
	if r.Area != nil {
		area := *r.Area
		raw.Area = &area
	}
	if r.Languages != nil {
		raw.Languages = make(map[string]string, len(r.Languages))
		for k, v := range r.Languages {
			raw.Languages[k] = v
		}
	}
	if r.Currencies != nil {
		raw.Currencies = make(map[string]RawCurrency, len(r.Currencies))
		for k, v := range r.Currencies {
			raw.Currencies[k] = RawCurrency{Name: v.Name, Symbol: v.Symbol}
		}
	}
	if r.CoatOfArms != nil {
		raw.CoatOfArms = RawImages{PNG: r.CoatOfArms.PNG, SVG: r.CoatOfArms.SVG}
	}
	return raw
}
