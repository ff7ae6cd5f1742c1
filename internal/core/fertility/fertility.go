// Package fertility holds the fertility-rate data model: per-country series
// as loaded from the upstream, and the flat observation table built from them
package fertility

import (
	"context"
	"fmt"
	"strings"

	perr "fertilitydash/internal/platform/errors"
)

// Indicator is the World Bank code for total fertility rate (births per woman)
const Indicator = "SP.DYN.TFRT.IN"

// CutoffYear is the exclusive upper bound applied to every table build
const CutoffYear = 2019

// CountryCodes are the countries the dashboard covers
var CountryCodes = []string{"de", "at", "ch", "nl", "es", "it", "gb", "fr", "pt", "be", "swe", "fi", "nor"}

// DefaultYears is the range requested from the upstream
var DefaultYears = YearRange{Start: 1990, End: 2021}

// YearRange is an inclusive span of years
type YearRange struct {
	Start int
	End   int
}

// String renders the range the way the upstream expects it, "start:end"
func (y YearRange) String() string { return fmt.Sprintf("%d:%d", y.Start, y.End) }

// Validate rejects inverted ranges
func (y YearRange) Validate() error {
	if y.Start > y.End {
		return perr.InvalidArgf("year range %d:%d is inverted", y.Start, y.End)
	}
	return nil
}

// Query selects what a Source loads
type Query struct {
	Indicator    string
	CountryCodes []string
	Years        YearRange
}

// DefaultQuery returns the fixed indicator, countries and range
func DefaultQuery() Query {
	return Query{
		Indicator:    Indicator,
		CountryCodes: append([]string(nil), CountryCodes...),
		Years:        DefaultYears,
	}
}

// Validate checks that q can be turned into an upstream request
func (q Query) Validate() error {
	if strings.TrimSpace(q.Indicator) == "" {
		return perr.InvalidArgf("indicator is required")
	}
	if len(q.CountryCodes) == 0 {
		return perr.InvalidArgf("at least one country code is required")
	}
	return q.Years.Validate()
}

// Source loads country series for a query. Implementations make one
// upstream call per LoadSeries and keep no state between calls
type Source interface {
	LoadSeries(ctx context.Context, q Query) (SeriesSet, error)
}

// SourceFunc adapts a function to Source
type SourceFunc func(ctx context.Context, q Query) (SeriesSet, error)

// LoadSeries calls f
func (f SourceFunc) LoadSeries(ctx context.Context, q Query) (SeriesSet, error) { return f(ctx, q) }
