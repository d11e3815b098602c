package country

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/AbdulWasayUl/country-explorer/internal/logger"
	jsoniter "github.com/json-iterator/go"
	"github.com/samber/lo"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Normalize shapes one upstream payload into a Record. Only a missing common
// name or alpha3 code is fatal; every other field degrades to its default.
func Normalize(raw RawCountry) (Record, error) {
	common := strings.TrimSpace(raw.Name.Common)
	if common == "" {
		return Record{}, fmt.Errorf("%w: missing name.common (cca3=%q)", ErrInvalidRecord, raw.CCA3)
	}
	alpha3 := normalizeCode(raw.CCA3)
	if alpha3 == "" {
		return Record{}, fmt.Errorf("%w: missing cca3 for %q", ErrInvalidRecord, common)
	}

	official := strings.TrimSpace(raw.Name.Official)
	if official == "" {
		official = common
	}

	region := Region(strings.TrimSpace(raw.Region))
	if r, ok := ParseRegion(string(region)); ok {
		region = r
	}

	rec := Record{
		Names:      Names{Common: common, Official: official},
		Codes:      Codes{Alpha2: normalizeCode(raw.CCA2), Alpha3: alpha3},
		Capital:    cleanStrings(raw.Capital, strings.TrimSpace),
		Region:     region,
		Subregion:  strings.TrimSpace(raw.Subregion),
		Population: max(raw.Population, 0),
		Borders:    lo.Uniq(cleanStrings(raw.Borders, normalizeCode)),
		Flags: Flags{
			PNG: strings.TrimSpace(raw.Flags.PNG),
			SVG: strings.TrimSpace(raw.Flags.SVG),
			Alt: strings.TrimSpace(raw.Flags.Alt),
		},
		Maps: Maps{
			GoogleMaps:     strings.TrimSpace(raw.Maps.GoogleMaps),
			OpenStreetMaps: strings.TrimSpace(raw.Maps.OpenStreetMaps),
		},
	}

	if raw.Area != nil && *raw.Area >= 0 {
		area := *raw.Area
		rec.Area = &area
	}

	if len(raw.Languages) > 0 {
		langs := make(map[string]string, len(raw.Languages))
		for code, name := range raw.Languages {
			if code = strings.TrimSpace(code); code != "" {
				langs[code] = strings.TrimSpace(name)
			}
		}
		if len(langs) > 0 {
			rec.Languages = langs
		}
	}

	if len(raw.Currencies) > 0 {
		curs := make(map[string]Currency, len(raw.Currencies))
		for code, c := range raw.Currencies {
			if code = strings.TrimSpace(code); code != "" {
				curs[code] = Currency{Name: strings.TrimSpace(c.Name), Symbol: strings.TrimSpace(c.Symbol)}
			}
		}
		if len(curs) > 0 {
			rec.Currencies = curs
		}
	}

	png, svg := strings.TrimSpace(raw.CoatOfArms.PNG), strings.TrimSpace(raw.CoatOfArms.SVG)
	if png != "" || svg != "" {
		rec.CoatOfArms = &Images{PNG: png, SVG: svg}
	}

	return rec, nil
}

// NormalizeBatch decodes an upstream body holding an array of countries, or a
// single country object. Fields are decoded leniently by DecodeRaw; records
// that are not objects or fail Normalize are dropped, as are later duplicates
// of an alpha3 code already seen.
func NormalizeBatch(data []byte) ([]Record, error) {
	trimmed := bytes.TrimSpace(data)
	if !json.Valid(trimmed) {
		return nil, fmt.Errorf("%w: invalid JSON body", ErrUpstreamMalformed)
	}

	var items []jsoniter.RawMessage
	if len(trimmed) > 0 && trimmed[0] == '{' {
		items = []jsoniter.RawMessage{trimmed}
	} else if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamMalformed, err)
	}

	records := make([]Record, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for i, item := range items {
		raw, err := DecodeRaw(item)
		if err != nil {
			logger.Debug("dropping country record %d: %v", i, err)
			continue
		}
		rec, err := Normalize(raw)
		if err != nil {
			logger.Debug("dropping country record %d: %v", i, err)
			continue
		}
		if _, dup := seen[rec.Codes.Alpha3]; dup {
			logger.Debug("dropping duplicate country record %s", rec.Codes.Alpha3)
			continue
		}
		seen[rec.Codes.Alpha3] = struct{}{}
		records = append(records, rec)
	}

	return records, nil
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func cleanStrings(in []string, clean func(string) string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = clean(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// validCode reports whether code looks like an ISO alpha2 or alpha3 code.
func validCode(code string) bool {
	if len(code) != 2 && len(code) != 3 {
		return false
	}
	for _, c := range code {
		if c < 'A' || c > 'Z' {
			return false
		}
	}
	return true
}
