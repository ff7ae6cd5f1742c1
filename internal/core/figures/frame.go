package figures

import (
	"math"
	"strconv"

	"fertilitydash/internal/core/fertility"
	perr "fertilitydash/internal/platform/errors"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// column names of the observation frame
const (
	colCountry = "country"
	colYear    = "year"
	colRate    = "rate"
	colSeq     = "seq"
)

// frame wraps a gota DataFrame built from an observation table. seq keeps the
// original row position so every sort has a deterministic tie break
type frame struct {
	df dataframe.DataFrame
}

func newFrame(t fertility.Table) frame {
	if len(t) == 0 {
		return frame{}
	}
	countries := make([]string, len(t))
	years := make([]int, len(t))
	rates := make([]string, len(t))
	seq := make([]int, len(t))
	for i, o := range t {
		countries[i] = o.Country
		years[i] = o.Year
		rates[i] = "NaN"
		if o.Rate != nil && !math.IsNaN(*o.Rate) {
			rates[i] = strconv.FormatFloat(*o.Rate, 'g', -1, 64)
		}
		seq[i] = i
	}
	return frame{df: dataframe.New(
		series.New(countries, series.String, colCountry),
		series.New(years, series.Int, colYear),
		series.New(rates, series.Float, colRate),
		series.New(seq, series.Int, colSeq),
	)}
}

func (f frame) err() error {
	if f.df.Err != nil {
		return perr.Wrap(f.df.Err, perr.ErrorCodeUnknown, "figures frame operation failed")
	}
	return nil
}

func (f frame) rows() int { return f.df.Nrow() }

// byYear sorts ascending by year
func (f frame) byYear() frame {
	if f.rows() == 0 {
		return f
	}
	return frame{df: f.df.Arrange(dataframe.Sort(colYear), dataframe.Sort(colSeq))}
}

// byRateDesc sorts descending by rate; absent rates go last
func (f frame) byRateDesc() frame {
	if f.rows() == 0 {
		return f
	}
	return frame{df: f.df.Arrange(dataframe.RevSort(colRate), dataframe.Sort(colSeq))}
}

func (f frame) whereCountry(c string) frame {
	if f.rows() == 0 {
		return f
	}
	return frame{df: f.df.Filter(dataframe.F{Colname: colCountry, Comparator: series.Eq, Comparando: c})}
}

func (f frame) whereYear(y int) frame {
	if f.rows() == 0 {
		return f
	}
	return frame{df: f.df.Filter(dataframe.F{Colname: colYear, Comparator: series.Eq, Comparando: y})}
}

func (f frame) countries() []string {
	if f.rows() == 0 {
		return nil
	}
	return f.df.Col(colCountry).Records()
}

func (f frame) years() []int {
	if f.rows() == 0 {
		return nil
	}
	ys, err := f.df.Col(colYear).Int()
	if err != nil {
		return nil
	}
	return ys
}

// rates maps NaN back to nil
func (f frame) rates() []*float64 {
	if f.rows() == 0 {
		return []*float64{}
	}
	col := f.df.Col(colRate)
	out := make([]*float64, col.Len())
	for i := 0; i < col.Len(); i++ {
		e := col.Elem(i)
		if e.IsNA() {
			continue
		}
		v := e.Float()
		if math.IsNaN(v) {
			continue
		}
		out[i] = &v
	}
	return out
}

// distinct keeps first-seen order
func distinct[T comparable](in []T) []T {
	seen := make(map[T]struct{}, len(in))
	out := make([]T, 0, len(in))
	for _, v := range in {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

func anySlice[T any](in []T) []any {
	out := make([]any, len(in))
	for i, v := range in {
		out[i] = v
	}
	return out
}
