package main

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/AbdulWasayUl/country-explorer/services/country"
	"github.com/AbdulWasayUl/country-explorer/services/detail"
	"github.com/AbdulWasayUl/country-explorer/services/listing"
	jsoniter "github.com/json-iterator/go"
	"github.com/samber/lo"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var printer = message.NewPrinter(language.English)

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func renderListing(w io.Writer, view listing.View, query string) error {
	if len(view.Countries) == 0 {
		fmt.Fprintln(w, "No countries found.")
	} else if view.State.ViewMode == listing.ViewList {
		if err := renderList(w, view.Countries); err != nil {
			return err
		}
	} else if err := renderTable(w, view.Countries); err != nil {
		return err
	}

	fmt.Fprintf(w, "\n%d countries, sorted by %s %s", len(view.Countries), view.State.SortKey, view.State.SortOrder)
	if query != "" {
		fmt.Fprintf(w, ", ?%s", query)
	}
	fmt.Fprintln(w)
	return nil
}

func renderTable(w io.Writer, records []country.Record) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "CODE\tNAME\tCAPITAL\tREGION\tPOPULATION")
	for _, r := range records {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			r.Codes.Alpha3, r.Names.Common, orNA(strings.Join(r.Capital, ", ")), r.Region, printer.Sprintf("%d", r.Population))
	}
	return tw.Flush()
}

// renderList is the compact view: one line per country.
func renderList(w io.Writer, records []country.Record) error {
	for _, r := range records {
		if _, err := fmt.Fprintf(w, "%s  %s\n", r.Codes.Alpha3, r.Names.Common); err != nil {
			return err
		}
	}
	return nil
}

func renderDetail(w io.Writer, vm *detail.ViewModel) error {
	r := vm.Country
	tw := newTable(w)

	fmt.Fprintf(tw, "Name\t%s\n", r.Names.Common)
	fmt.Fprintf(tw, "Official name\t%s\n", r.Names.Official)
	fmt.Fprintf(tw, "Codes\t%s / %s\n", r.Codes.Alpha3, orNA(r.Codes.Alpha2))
	fmt.Fprintf(tw, "Capital\t%s\n", orNA(strings.Join(r.Capital, ", ")))
	fmt.Fprintf(tw, "Region\t%s\n", joinNonEmpty(string(r.Region), r.Subregion))
	fmt.Fprintf(tw, "Population\t%s\n", printer.Sprintf("%d", r.Population))
	if r.Area != nil {
		fmt.Fprintf(tw, "Area\t%s km²\n", printer.Sprintf("%.0f", *r.Area))
	} else {
		fmt.Fprintf(tw, "Area\tN/A\n")
	}
	fmt.Fprintf(tw, "Languages\t%s\n", orNA(strings.Join(sortedValues(r.Languages), ", ")))
	fmt.Fprintf(tw, "Currencies\t%s\n", orNA(strings.Join(currencies(r.Currencies), ", ")))
	fmt.Fprintf(tw, "Flag\t%s\n", orNA(r.Flags.PNG))
	fmt.Fprintf(tw, "Map\t%s\n", orNA(r.Maps.GoogleMaps))

	borders := lo.Map(vm.BorderCountries, func(b detail.BorderRef, _ int) string {
		return fmt.Sprintf("%s (%s)", b.Name, b.Code)
	})
	fmt.Fprintf(tw, "Borders\t%s\n", orNA(strings.Join(borders, ", ")))

	if vm.CanFavorite {
		fmt.Fprintf(tw, "Favorite\t%s\n", lo.Ternary(vm.IsFavorite, "yes", "no"))
	}
	return tw.Flush()
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func joinNonEmpty(parts ...string) string {
	return strings.Join(lo.Compact(parts), ", ")
}

func sortedValues(m map[string]string) []string {
	out := lo.Values(m)
	slices.Sort(out)
	return out
}

func currencies(m map[string]country.Currency) []string {
	codes := lo.Keys(m)
	slices.Sort(codes)
	return lo.Map(codes, func(code string, _ int) string {
		c := m[code]
		if c.Symbol == "" {
			return fmt.Sprintf("%s (%s)", c.Name, code)
		}
		return fmt.Sprintf("%s (%s, %s)", c.Name, code, c.Symbol)
	})
}
