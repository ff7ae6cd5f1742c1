package fertility

// Filter restricts a table build. A nil slice means "not supplied" and
// selects everything present; a non-nil empty slice selects nothing
type Filter struct {
	Countries []string `json:"countries,omitempty"`
	Years     []int    `json:"years,omitempty"`
}

// ForCountries filters to the given countries, all years
func ForCountries(countries ...string) Filter {
	return Filter{Countries: append([]string{}, countries...)}
}

// ForYears filters to the given years, all countries
func ForYears(years ...int) Filter {
	return Filter{Years: append([]int{}, years...)}
}

func setOf[T comparable](items []T) map[T]struct{} {
	set := make(map[T]struct{}, len(items))
	for _, it := range items {
		set[it] = struct{}{}
	}
	return set
}
