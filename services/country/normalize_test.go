package country

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func float(v float64) *float64 { return &v }

func TestNormalize(t *testing.T) {
	tests := []struct {
		name        string
		input       RawCountry
		expectError bool
		validate    func(*testing.T, Record)
	}{
		{
			name: "full record",
			input: RawCountry{
				Name:       RawName{Common: "France", Official: "French Republic"},
				CCA2:       "FR",
				CCA3:       "FRA",
				Capital:    []string{"Paris"},
				Region:     "Europe",
				Subregion:  "Western Europe",
				Population: 67391582,
				Area:       float(551695),
				Languages:  map[string]string{"fra": "French"},
				Currencies: map[string]RawCurrency{"EUR": {Name: "Euro", Symbol: "€"}},
				Borders:    []string{"AND", "BEL", "DEU"},
				Flags:      RawImages{PNG: "https://flagcdn.com/w320/fr.png", SVG: "https://flagcdn.com/fr.svg", Alt: "tricolour"},
				CoatOfArms: RawImages{PNG: "coa.png", SVG: "coa.svg"},
				Maps:       RawMaps{GoogleMaps: "https://goo.gl/maps/g7QxxSFsWyTPKuzd7", OpenStreetMaps: "https://www.openstreetmap.org/relation/1403916"},
			},
			validate: func(t *testing.T, r Record) {
				assert.Equal(t, Names{Common: "France", Official: "French Republic"}, r.Names)
				assert.Equal(t, Codes{Alpha2: "FR", Alpha3: "FRA"}, r.Codes)
				assert.Equal(t, []string{"Paris"}, r.Capital)
				assert.Equal(t, RegionEurope, r.Region)
				assert.Equal(t, int64(67391582), r.Population)
				require.NotNil(t, r.Area)
				assert.Equal(t, 551695.0, *r.Area)
				assert.Equal(t, "French", r.Languages["fra"])
				assert.Equal(t, Currency{Name: "Euro", Symbol: "€"}, r.Currencies["EUR"])
				assert.Equal(t, []string{"AND", "BEL", "DEU"}, r.Borders)
				require.NotNil(t, r.CoatOfArms)
				assert.Equal(t, "coa.svg", r.CoatOfArms.SVG)
			},
		},
		{
			name: "optional fields absent degrade to defaults",
			input: RawCountry{
				Name: RawName{Common: "Antarctica"},
				CCA3: "ata",
			},
			validate: func(t *testing.T, r Record) {
				assert.Equal(t, "ATA", r.Codes.Alpha3)
				assert.Equal(t, "Antarctica", r.Names.Official)
				assert.NotNil(t, r.Capital)
				assert.Empty(t, r.Capital)
				assert.NotNil(t, r.Borders)
				assert.Empty(t, r.Borders)
				assert.Nil(t, r.Area)
				assert.Nil(t, r.Languages)
				assert.Nil(t, r.Currencies)
				assert.Nil(t, r.CoatOfArms)
				assert.Equal(t, "", r.Subregion)
			},
		},
		{
			name: "malformed values are cleaned",
			input: RawCountry{
				Name:       RawName{Common: "  Testland  "},
				CCA3:       " tst ",
				Capital:    []string{"", " Capital City "},
				Region:     "europe",
				Population: -5,
				Area:       float(-1),
				Languages:  map[string]string{},
				Borders:    []string{"fra", "", "FRA", " deu"},
			},
			validate: func(t *testing.T, r Record) {
				assert.Equal(t, "Testland", r.Names.Common)
				assert.Equal(t, "TST", r.Codes.Alpha3)
				assert.Equal(t, []string{"Capital City"}, r.Capital)
				assert.Equal(t, RegionEurope, r.Region)
				assert.Equal(t, int64(0), r.Population)
				assert.Nil(t, r.Area)
				assert.Nil(t, r.Languages)
				assert.Equal(t, []string{"FRA", "DEU"}, r.Borders)
			},
		},
		{
			name:        "missing common name",
			input:       RawCountry{Name: RawName{Official: "Nowhere"}, CCA3: "NOW"},
			expectError: true,
		},
		{
			name:        "missing alpha3",
			input:       RawCountry{Name: RawName{Common: "Nowhere"}, CCA2: "NW"},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := Normalize(tt.input)

			if tt.expectError {
				assert.True(t, errors.Is(err, ErrInvalidRecord), "expected ErrInvalidRecord, got %v", err)
				return
			}

			require.NoError(t, err)
			if tt.validate != nil {
				tt.validate(t, rec)
			}
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []RawCountry{
		{
			Name:       RawName{Common: "Peru", Official: "Republic of Peru"},
			CCA2:       "PE",
			CCA3:       "PER",
			Capital:    []string{"Lima"},
			Region:     "Americas",
			Subregion:  "South America",
			Population: 32971846,
			Area:       float(1285216),
			Languages:  map[string]string{"aym": "Aymara", "que": "Quechua", "spa": "Spanish"},
			Currencies: map[string]RawCurrency{"PEN": {Name: "Peruvian sol", Symbol: "S/ "}},
			Borders:    []string{"BOL", "BRA", "CHL", "COL", "ECU"},
			Flags:      RawImages{PNG: "pe.png", SVG: "pe.svg"},
			Maps:       RawMaps{GoogleMaps: "g", OpenStreetMaps: "o"},
		},
		{
			Name: RawName{Common: "Bouvet Island"},
			CCA3: "BVT",
		},
	}

	for _, in := range inputs {
		first, err := Normalize(in)
		require.NoError(t, err)

		second, err := Normalize(first.Raw())
		require.NoError(t, err)

		assert.Equal(t, first, second)
	}
}

func TestNormalizeBatch(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expectError bool
		wantCodes   []string
	}{
		{
			name:      "array of records",
			input:     `[{"name":{"common":"France"},"cca3":"FRA"},{"name":{"common":"Germany"},"cca3":"DEU"}]`,
			wantCodes: []string{"FRA", "DEU"},
		},
		{
			name:      "single object",
			input:     `{"name":{"common":"France"},"cca3":"FRA"}`,
			wantCodes: []string{"FRA"},
		},
		{
			name:      "records missing required fields are dropped",
			input:     `[{"name":{"common":"France"},"cca3":"FRA"},{"name":{"official":"X"},"cca3":"XXX"},{"name":{"common":42},"cca3":"NUM"},{"name":{"common":"Y"},"cca3":7},"not an object"]`,
			wantCodes: []string{"FRA"},
		},
		{
			name:      "mistyped optional fields keep the record",
			input:     `[{"name":{"common":"France"},"cca3":"FRA","capital":"Paris"},{"name":{"common":"Peru"},"cca3":"PER","area":"big"},{"name":{"common":"Chile"},"cca3":"CHL","population":"many"}]`,
			wantCodes: []string{"FRA", "PER", "CHL"},
		},
		{
			name:      "every record invalid yields empty",
			input:     `[{"cca3":"AAA"},{"name":{"common":"B"}}]`,
			wantCodes: []string{},
		},
		{
			name:      "duplicate alpha3 keeps first",
			input:     `[{"name":{"common":"France"},"cca3":"FRA"},{"name":{"common":"France again"},"cca3":"fra"}]`,
			wantCodes: []string{"FRA"},
		},
		{
			name:        "not json",
			input:       `<html>oops</html>`,
			expectError: true,
		},
		{
			name:        "string body",
			input:       `"message"`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := NormalizeBatch([]byte(tt.input))

			if tt.expectError {
				assert.True(t, errors.Is(err, ErrUpstreamMalformed), "expected ErrUpstreamMalformed, got %v", err)
				return
			}

			require.NoError(t, err)
			codes := make([]string, 0, len(records))
			for _, r := range records {
				codes = append(codes, r.Codes.Alpha3)
			}
			assert.Equal(t, tt.wantCodes, codes)
		})
	}
}

func TestNormalizeBatch_MistypedFieldsDegrade(t *testing.T) {
	input := `[
		{"name":{"common":"France","official":7},"cca3":"FRA","capital":"Paris","borders":["BEL",3,"deu"]},
		{"name":{"common":"Peru"},"cca3":"PER","area":"big","languages":{"spa":"Spanish","que":1}},
		{"name":{"common":"Chile"},"cca3":"CHL","population":"many","area":null,"currencies":{"CLP":"peso"},"flags":"chile.png"}
	]`

	records, err := NormalizeBatch([]byte(input))
	require.NoError(t, err)
	require.Len(t, records, 3)

	france, peru, chile := records[0], records[1], records[2]

	assert.Equal(t, "France", france.Names.Official)
	assert.Empty(t, france.Capital)
	assert.NotNil(t, france.Capital)
	assert.Equal(t, []string{"BEL", "DEU"}, france.Borders)

	assert.Nil(t, peru.Area)
	assert.Equal(t, map[string]string{"spa": "Spanish"}, peru.Languages)

	assert.Equal(t, int64(0), chile.Population)
	assert.Nil(t, chile.Area)
	assert.Nil(t, chile.Currencies)
	assert.Equal(t, Flags{}, chile.Flags)
}

func TestDecodeRaw_NotAnObject(t *testing.T) {
	_, err := DecodeRaw([]byte(`["FRA"]`))
	assert.ErrorIs(t, err, ErrInvalidRecord)
}

func TestParseRegion(t *testing.T) {
	tests := []struct {
		in     string
		want   Region
		wantOK bool
	}{
		{"Europe", RegionEurope, true},
		{"asia", RegionAsia, true},
		{" ANTARCTIC ", RegionAntarctic, true},
		{"Atlantis", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseRegion(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
