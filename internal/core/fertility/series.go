package fertility

// CountrySeries holds one country's years and rates. The two slices are
// index aligned; a nil rate means the upstream had no value for that year
type CountrySeries struct {
	Years  []int
	Values []*float64
}

// Len is the number of (year, rate) pairs
func (s CountrySeries) Len() int { return len(s.Years) }

// SeriesSet maps a country display name to its series and remembers the
// order countries were first seen in
type SeriesSet struct {
	byCountry map[string]*CountrySeries
	order     []string
}

// NewSeriesSet returns an empty set
func NewSeriesSet() SeriesSet {
	return SeriesSet{byCountry: map[string]*CountrySeries{}}
}

// Append adds one (year, rate) pair to country, creating the entry on first sight
func (s *SeriesSet) Append(country string, year int, rate *float64) {
	if s.byCountry == nil {
		s.byCountry = map[string]*CountrySeries{}
	}
	cs, ok := s.byCountry[country]
	if !ok {
		cs = &CountrySeries{}
		s.byCountry[country] = cs
		s.order = append(s.order, country)
	}
	cs.Years = append(cs.Years, year)
	cs.Values = append(cs.Values, rate)
}

// Countries returns country names in first-seen order
func (s SeriesSet) Countries() []string { return append([]string(nil), s.order...) }

// Series returns the series for country
func (s SeriesSet) Series(country string) (CountrySeries, bool) {
	cs, ok := s.byCountry[country]
	if !ok {
		return CountrySeries{}, false
	}
	return *cs, true
}

// Pairs is the total number of (year, rate) pairs across all countries
func (s SeriesSet) Pairs() int {
	n := 0
	for _, cs := range s.byCountry {
		n += cs.Len()
	}
	return n
}

// Len is the number of countries
func (s SeriesSet) Len() int { return len(s.order) }
