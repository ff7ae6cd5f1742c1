package export

import (
	"io"

	"fertilitydash/internal/core/fertility"
	perr "fertilitydash/internal/platform/errors"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// Frame turns t into a gota DataFrame with the export columns. The rate
// column is text so absent values stay empty cells instead of NaN
func Frame(t fertility.Table) dataframe.DataFrame {
	countries := make([]string, len(t))
	years := make([]int, len(t))
	rates := make([]string, len(t))
	for i, o := range t {
		countries[i] = o.Country
		years[i] = o.Year
		rates[i] = rateText(o.Rate)
	}
	return dataframe.New(
		series.New(countries, series.String, Header[0]),
		series.New(years, series.Int, Header[1]),
		series.New(rates, series.String, Header[2]),
	)
}

// CSV writes t with a header row
func CSV(w io.Writer, t fertility.Table) error {
	if len(t) == 0 {
		// gota cannot write a frame without rows; the header alone is still a valid file
		_, err := io.WriteString(w, "country,year,rate\n")
		return perr.WrapIf(err, perr.ErrorCodeUnknown, "write csv header")
	}
	df := Frame(t)
	if df.Err != nil {
		return perr.Wrap(df.Err, perr.ErrorCodeUnknown, "build csv frame")
	}
	if err := df.WriteCSV(w); err != nil {
		return perr.Wrap(err, perr.ErrorCodeUnknown, "write csv")
	}
	return nil
}
