package country

import (
	"bytes"
	"fmt"
	"math"

	jsoniter "github.com/json-iterator/go"
)

type rawObject map[string]jsoniter.RawMessage

// DecodeRaw reads one upstream country object field by field. A field with
// an unexpected type is left at its zero value instead of failing the whole
// record, so only a missing name.common or cca3 can reject it in Normalize.
func DecodeRaw(data []byte) (RawCountry, error) {
	obj, ok := decodeObject(data)
	if !ok {
		return RawCountry{}, fmt.Errorf("%w: country is not a JSON object", ErrInvalidRecord)
	}

	name, _ := decodeObject(obj["name"])
	raw := RawCountry{
		Name: RawName{
			Common:   decodeString(name["common"]),
			Official: decodeString(name["official"]),
		},
		CCA2:       decodeString(obj["cca2"]),
		CCA3:       decodeString(obj["cca3"]),
		Capital:    decodeStrings(obj["capital"]),
		Region:     decodeString(obj["region"]),
		Subregion:  decodeString(obj["subregion"]),
		Population: decodeInt(obj["population"]),
		Area:       decodeFloat(obj["area"]),
		Languages:  decodeStringMap(obj["languages"]),
		Currencies: decodeCurrencies(obj["currencies"]),
		Borders:    decodeStrings(obj["borders"]),
		Flags:      decodeImages(obj["flags"]),
		CoatOfArms: decodeImages(obj["coatOfArms"]),
	}

	if maps, ok := decodeObject(obj["maps"]); ok {
		raw.Maps = RawMaps{
			GoogleMaps:     decodeString(maps["googleMaps"]),
			OpenStreetMaps: decodeString(maps["openStreetMaps"]),
		}
	}

	return raw, nil
}

func decodeObject(data jsoniter.RawMessage) (rawObject, bool) {
	if len(data) == 0 {
		return nil, false
	}
	var obj rawObject
	if err := json.Unmarshal(data, &obj); err != nil || obj == nil {
		return nil, false
	}
	return obj, true
}

func decodeString(data jsoniter.RawMessage) string {
	var s string
	if len(data) == 0 || json.Unmarshal(data, &s) != nil {
		return ""
	}
	return s
}

// decodeStrings keeps the string elements of an array and skips the rest.
func decodeStrings(data jsoniter.RawMessage) []string {
	var items []jsoniter.RawMessage
	if len(data) == 0 || json.Unmarshal(data, &items) != nil {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		var s string
		if json.Unmarshal(item, &s) == nil {
			out = append(out, s)
		}
	}
	return out
}

func decodeInt(data jsoniter.RawMessage) int64 {
	f := decodeFloat(data)
	if f == nil || *f > math.MaxInt64 {
		return 0
	}
	return int64(*f)
}

func decodeFloat(data jsoniter.RawMessage) *float64 {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	var f float64
	if json.Unmarshal(data, &f) != nil {
		return nil
	}
	return &f
}

func decodeStringMap(data jsoniter.RawMessage) map[string]string {
	obj, ok := decodeObject(data)
	if !ok {
		return nil
	}
	out := make(map[string]string, len(obj))
	for k, v := range obj {
		var s string
		if json.Unmarshal(v, &s) == nil {
			out[k] = s
		}
	}
	return out
}

func decodeCurrencies(data jsoniter.RawMessage) map[string]RawCurrency {
	obj, ok := decodeObject(data)
	if !ok {
		return nil
	}
	out := make(map[string]RawCurrency, len(obj))
	for code, v := range obj {
		c, ok := decodeObject(v)
		if !ok {
			continue
		}
		out[code] = RawCurrency{Name: decodeString(c["name"]), Symbol: decodeString(c["symbol"])}
	}
	return out
}

func decodeImages(data jsoniter.RawMessage) RawImages {
	obj, ok := decodeObject(data)
	if !ok {
		return RawImages{}
	}
	return RawImages{
		PNG: decodeString(obj["png"]),
		SVG: decodeString(obj["svg"]),
		Alt: decodeString(obj["alt"]),
	}
}
