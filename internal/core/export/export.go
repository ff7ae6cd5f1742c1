// Package export writes observation tables as JSON, CSV or XLSX
package export

import (
	"encoding/json"
	"io"
	"strconv"
	"strings"

	"fertilitydash/internal/core/fertility"
	perr "fertilitydash/internal/platform/errors"
)

// Format is an export encoding
type Format string

// Supported formats
const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// Header is the column order shared by every tabular format
var Header = []string{"country", "year", "rate"}

// ParseFormat accepts a format name case-insensitively
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatJSON, FormatCSV, FormatXLSX:
		return f, nil
	default:
		return "", perr.InvalidArgf("unknown export format %q; want json, csv or xlsx", s)
	}
}

// ContentType is the MIME type for f
func (f Format) ContentType() string {
	switch f {
	case FormatCSV:
		return "text/csv; charset=utf-8"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "application/json; charset=utf-8"
	}
}

// Filename is the download name for a table export in f
func (f Format) Filename() string { return "fertility." + string(f) }

// Write encodes t to w in format f
func Write(w io.Writer, t fertility.Table, f Format) error {
	switch f {
	case FormatJSON:
		return JSON(w, t, false)
	case FormatCSV:
		return CSV(w, t)
	case FormatXLSX:
		return XLSX(w, t)
	default:
		return perr.InvalidArgf("unknown export format %q", f)
	}
}

// JSON writes t as a JSON array of observations; absent rates are null
func JSON(w io.Writer, t fertility.Table, pretty bool) error {
	if t == nil {
		t = fertility.Table{}
	}
	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(t); err != nil {
		return perr.Wrap(err, perr.ErrorCodeUnknown, "encode table json")
	}
	return nil
}

// rateText renders a rate for text formats; absent is the empty string
func rateText(r *float64) string {
	if r == nil {
		return ""
	}
	return strconv.FormatFloat(*r, 'f', -1, 64)
}
