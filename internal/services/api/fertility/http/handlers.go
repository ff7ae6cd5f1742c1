// Package http provides http transport for fertility figures and tables
package http

import (
	stdhttp "net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"fertilitydash/internal/modkit/httpkit"
	"fertilitydash/internal/modkit/swaggerkit"
	perr "fertilitydash/internal/platform/errors"
	"fertilitydash/internal/services/api/fertility/domain"
)

// Register mounts fertility endpoints on the given router
func Register(r httpkit.Router, s domain.ServicePort) {
	h := &handlers{svc: s}

	// dashboard charts
	httpkit.Get(r, "/figures", h.figures)
	httpkit.Get(r, "/figures/{n}", h.figure)

	// observation table
	httpkit.PostJSON[domain.TableInput](r, "/table", h.table)
	httpkit.Get(r, "/table.csv", h.exportAs("csv"))
	httpkit.Get(r, "/table.xlsx", h.exportAs("xlsx"))

	httpkit.Get(r, "/countries", h.countries)
}

// Docs describes the routes for the served OpenAPI document
func Docs(prefix string) swaggerkit.SpecMutator {
	const tag = "Fertility"
	return swaggerkit.Operations(
		swaggerkit.Op{Method: "GET", Path: prefix + "/figures", Tag: tag, Summary: "All four dashboard charts"},
		swaggerkit.Op{Method: "GET", Path: prefix + "/figures/{n}", Tag: tag, Summary: "One dashboard chart, n in 1..4"},
		swaggerkit.Op{Method: "POST", Path: prefix + "/table", Tag: tag, Summary: "Filtered observation table", Body: "TableInput"},
		swaggerkit.Op{Method: "GET", Path: prefix + "/table.csv", Tag: tag, Summary: "Table as CSV", Produces: []string{"text/csv"}},
		swaggerkit.Op{Method: "GET", Path: prefix + "/table.xlsx", Tag: tag, Summary: "Table as an Excel workbook",
			Produces: []string{"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"}},
		swaggerkit.Op{Method: "GET", Path: prefix + "/countries", Tag: tag, Summary: "Countries in collation order"},
	)
}

type handlers struct{ svc domain.ServicePort }

// swagger:route GET /fertility/figures Fertility fertilityFigures
// @Summary All four dashboard charts
// @Tags Fertility
// @Produce json
// @Success 200 {array} figures.ChartSpec "ok"
// @Failure 502 {object} ErrorResponse "world bank failure"
// @Router /fertility/figures [get]
func (h *handlers) figures(r *stdhttp.Request) (any, error) {
	return h.svc.Figures(r.Context())
}

// swagger:route GET /fertility/figures/{n} Fertility fertilityFigure
// @Summary One dashboard chart
// @Tags Fertility
// @Produce json
// @Param n path int true "chart number 1..4"
// @Success 200 {object} figures.ChartSpec "ok"
// @Failure 404 {object} ErrorResponse "no such chart"
// @Router /fertility/figures/{n} [get]
func (h *handlers) figure(r *stdhttp.Request) (any, error) {
	raw := chi.URLParam(r, "n")
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, perr.NotFoundf("figure %q does not exist", raw)
	}
	return h.svc.Figure(r.Context(), n)
}

// swagger:route POST /fertility/table Fertility fertilityTable
// @Summary Filtered observation table
// @Tags Fertility
// @Accept json
// @Produce json
// @Param payload body domain.TableInput true "Filter"
// @Success 200 {object} domain.TableOutput "ok"
// @Router /fertility/table [post]
func (h *handlers) table(r *stdhttp.Request, in domain.TableInput) (any, error) {
	return h.svc.Table(r.Context(), in)
}

// swagger:route GET /fertility/table.csv Fertility fertilityTableCSV
// @Summary Unfiltered table download
// @Tags Fertility
// @Produce text/csv
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} file "ok"
// @Router /fertility/table.csv [get]
// @Router /fertility/table.xlsx [get]
func (h *handlers) exportAs(format string) func(*stdhttp.Request) (any, error) {
	return func(r *stdhttp.Request) (any, error) {
		x, err := h.svc.Export(r.Context(), domain.TableInput{}, format)
		if err != nil {
			return nil, err
		}
		return httpkit.Attachment(x.Filename, x.ContentType, x.Body), nil
	}
}

// swagger:route GET /fertility/countries Fertility fertilityCountries
// @Summary Countries in English collation order
// @Tags Fertility
// @Produce json
// @Success 200 {object} domain.CountriesOutput "ok"
// @Router /fertility/countries [get]
func (h *handlers) countries(r *stdhttp.Request) (any, error) {
	return h.svc.Countries(r.Context())
}
