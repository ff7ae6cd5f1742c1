// Package domain holds DTOs for fertility http and service contracts
package domain

import (
	"fertilitydash/internal/core/fertility"
	"fertilitydash/internal/core/figures"
)

// TableInput filters the observation table
// an omitted list selects everything, an empty list selects nothing
type TableInput struct {
	Countries []string `json:"countries,omitempty" validate:"omitempty,max=64,dive,country,max=100" example:"Germany,France"`
	Years     []int    `json:"years,omitempty" validate:"omitempty,max=200,dive,min=1900,max=2100" example:"1990,2018"`
}

// Filter converts the input to a table filter
func (in TableInput) Filter() fertility.Filter {
	return fertility.Filter{Countries: in.Countries, Years: in.Years}
}

// TableOutput is a filtered table with its distinct axes
type TableOutput struct {
	Rows      []fertility.Observation `json:"rows"`
	Countries []string                `json:"countries" example:"Germany,France"`
	Years     []int                   `json:"years" example:"1990,2018"`
	Cutoff    int                     `json:"cutoff" example:"2019"`
}

// CountriesOutput lists the countries present in the table
type CountriesOutput struct {
	Countries []string `json:"countries" example:"Austria,Belgium"`
	Count     int      `json:"count" example:"12"`
}

// Export is a rendered table download
type Export struct {
	Filename    string
	ContentType string
	Body        []byte
}

// Chart aliases the figure spec so transports do not import core directly
type Chart = figures.ChartSpec
