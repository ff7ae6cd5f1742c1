package fertility

import "slices"

// Observation is one (country, year, rate) row. Rate is nil when absent
type Observation struct {
	Country string   `json:"country"`
	Year    int      `json:"year"`
	Rate    *float64 `json:"rate"`
}

// Table is a flat list of observations
type Table []Observation

// Flatten zips every country's years and rates into rows, countries in
// first-seen order. Each country contributes exactly its own pair count
func Flatten(s SeriesSet) Table {
	out := make(Table, 0, s.Pairs())
	for _, c := range s.order {
		cs := s.byCountry[c]
		for i, y := range cs.Years {
			out = append(out, Observation{Country: c, Year: y, Rate: cs.Values[i]})
		}
	}
	return out
}

// BuildTable flattens s and applies f. Rows at or beyond CutoffYear are
// always dropped, even when f names those years explicitly
func BuildTable(s SeriesSet, f Filter) Table {
	flat := Flatten(s)

	var countries map[string]struct{}
	if f.Countries != nil {
		countries = setOf(f.Countries)
	}
	var years map[int]struct{}
	if f.Years != nil {
		years = setOf(f.Years)
	}

	out := make(Table, 0, len(flat))
	for _, o := range flat {
		if o.Year >= CutoffYear {
			continue
		}
		if countries != nil {
			if _, ok := countries[o.Country]; !ok {
				continue
			}
		}
		if years != nil {
			if _, ok := years[o.Year]; !ok {
				continue
			}
		}
		out = append(out, o)
	}
	return out
}

// Len is the row count
func (t Table) Len() int { return len(t) }

// Countries returns distinct country names in first-seen order
func (t Table) Countries() []string {
	seen := make(map[string]struct{}, 16)
	out := make([]string, 0, 16)
	for _, o := range t {
		if _, ok := seen[o.Country]; ok {
			continue
		}
		seen[o.Country] = struct{}{}
		out = append(out, o.Country)
	}
	return out
}

// Years returns distinct years ascending
func (t Table) Years() []int {
	seen := make(map[int]struct{}, 32)
	out := make([]int, 0, 32)
	for _, o := range t {
		if _, ok := seen[o.Year]; ok {
			continue
		}
		seen[o.Year] = struct{}{}
		out = append(out, o.Year)
	}
	slices.Sort(out)
	return out
}

// RateOf returns the rate for (country, year). ok is false when no row
// matches; a matching row with an absent rate returns (nil, true)
func (t Table) RateOf(country string, year int) (rate *float64, ok bool) {
	for _, o := range t {
		if o.Country == country && o.Year == year {
			return o.Rate, true
		}
	}
	return nil, false
}
