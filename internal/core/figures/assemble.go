package figures

import (
	"context"
	"fmt"
	"math"
	"strconv"

	"fertilitydash/internal/core/fertility"
	"fertilitydash/internal/platform/config"
	perr "fertilitydash/internal/platform/errors"
	"fertilitydash/internal/platform/logger"
)

// Count is the number of charts Assemble produces
const Count = 4

// TableFunc builds a filtered table; fertility.Builder.Table satisfies it
type TableFunc func(ctx context.Context, f fertility.Filter) (fertility.Table, error)

// Config picks the focus country and the two compared years
type Config struct {
	FocusCountry string
	EarlyYear    int
	LateYear     int
}

// DefaultConfig is Germany, 1990 vs 2018
func DefaultConfig() Config {
	return Config{FocusCountry: "Germany", EarlyYear: 1990, LateYear: 2018}
}

// FromConfig reads FOCUS_COUNTRY, EARLY_YEAR and LATE_YEAR from an already
// prefixed view, falling back to DefaultConfig
func FromConfig(c config.Conf) Config {
	d := DefaultConfig()
	return Config{
		FocusCountry: c.MayString("FOCUS_COUNTRY", d.FocusCountry),
		EarlyYear:    c.MayInt("EARLY_YEAR", d.EarlyYear),
		LateYear:     c.MayInt("LATE_YEAR", d.LateYear),
	}
}

// Validate rejects configs whose charts would be empty by construction
func (c Config) Validate() error {
	if c.FocusCountry == "" {
		return perr.InvalidArgf("focus country is required")
	}
	if c.EarlyYear >= c.LateYear {
		return perr.InvalidArgf("early year %d must precede late year %d", c.EarlyYear, c.LateYear)
	}
	if c.LateYear >= fertility.CutoffYear {
		return perr.InvalidArgf("late year %d is not before the cutoff %d", c.LateYear, fertility.CutoffYear)
	}
	return nil
}

func (c Config) span() string { return fmt.Sprintf("%d-%d", c.EarlyYear, fertility.CutoffYear-1) }

func (c Config) pair() string { return fmt.Sprintf("%d vs. %d", c.EarlyYear, c.LateYear) }

// Assembler builds the four dashboard charts. Each chart asks Tables for its
// own table, so each one costs an upstream fetch
type Assembler struct {
	Tables TableFunc
	Config Config
}

// New returns an Assembler
func New(tables TableFunc, cfg Config) *Assembler {
	return &Assembler{Tables: tables, Config: cfg}
}

// Assemble returns the four charts in dashboard order
func (a *Assembler) Assemble(ctx context.Context) ([]ChartSpec, error) {
	out := make([]ChartSpec, 0, Count)
	for n := 1; n <= Count; n++ {
		c, err := a.Figure(ctx, n)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// Figure returns chart n, counting from 1
func (a *Assembler) Figure(ctx context.Context, n int) (ChartSpec, error) {
	switch n {
	case 1:
		return a.CountryLine(ctx)
	case 2:
		return a.CountryLines(ctx)
	case 3:
		return a.PairedBars(ctx)
	case 4:
		return a.PairedDelta(ctx)
	default:
		return ChartSpec{}, perr.NotFoundf("figure %d does not exist; valid figures are 1..%d", n, Count)
	}
}

func (a *Assembler) table(ctx context.Context, op string, f fertility.Filter) (fertility.Table, error) {
	if a == nil || a.Tables == nil {
		return nil, perr.Internalf("figures assembler has no table source")
	}
	if err := a.Config.Validate(); err != nil {
		return nil, err
	}
	t, err := a.Tables(ctx, f)
	if err != nil {
		return nil, perr.WithOp(err, op)
	}
	return t, nil
}

func (a *Assembler) frame(ctx context.Context, op string, f fertility.Filter) (frame, error) {
	t, err := a.table(ctx, op, f)
	if err != nil {
		return frame{}, err
	}
	fr := newFrame(t)
	logger.C(ctx).Debug().Str("chart", op).Int("rows", fr.rows()).Msg("figures frame built")
	return fr, fr.err()
}

// CountryLine is the focus country's rate over time
func (a *Assembler) CountryLine(ctx context.Context) (ChartSpec, error) {
	fr, err := a.frame(ctx, "country_line", fertility.ForCountries(a.Config.FocusCountry))
	if err != nil {
		return ChartSpec{}, err
	}
	fr = fr.byYear()
	if err := fr.err(); err != nil {
		return ChartSpec{}, err
	}
	return ChartSpec{
		Kind: KindLine,
		Series: []Series{{
			Type: TypeScatter,
			Mode: ModeLines,
			X:    anySlice(fr.years()),
			Y:    fr.rates(),
		}},
		Layout: Layout{
			Title: fmt.Sprintf("Fertility Rate in %s (%s)", a.Config.FocusCountry, a.Config.span()),
			XAxis: &Axis{Title: "Year"},
			YAxis: &Axis{Title: "Fertility Rate"},
		},
	}, nil
}

// CountryLines is one line per country over time
func (a *Assembler) CountryLines(ctx context.Context) (ChartSpec, error) {
	fr, err := a.frame(ctx, "country_lines", fertility.Filter{})
	if err != nil {
		return ChartSpec{}, err
	}
	fr = fr.byYear()
	if err := fr.err(); err != nil {
		return ChartSpec{}, err
	}
	names := distinct(fr.countries())
	ss := make([]Series, 0, len(names))
	for _, c := range names {
		sub := fr.whereCountry(c)
		if err := sub.err(); err != nil {
			return ChartSpec{}, err
		}
		ss = append(ss, Series{
			Name: c,
			Type: TypeScatter,
			Mode: ModeLines,
			X:    anySlice(sub.years()),
			Y:    sub.rates(),
		})
	}
	return ChartSpec{
		Kind:   KindLines,
		Series: ss,
		Layout: Layout{
			Title: fmt.Sprintf("Fertility Rate in Selected European Countries (%s)", a.Config.span()),
			XAxis: &Axis{Title: "Year"},
			YAxis: &Axis{Title: "Fertility Rate"},
		},
	}, nil
}

// PairedBars compares every country's rate in the two configured years,
// highest rates first. Series follow the order the years first appear in
// after sorting
func (a *Assembler) PairedBars(ctx context.Context) (ChartSpec, error) {
	fr, err := a.frame(ctx, "paired_bars", fertility.ForYears(a.Config.EarlyYear, a.Config.LateYear))
	if err != nil {
		return ChartSpec{}, err
	}
	fr = fr.byRateDesc()
	if err := fr.err(); err != nil {
		return ChartSpec{}, err
	}
	years := distinct(fr.years())
	ss := make([]Series, 0, len(years))
	for _, y := range years {
		sub := fr.whereYear(y)
		if err := sub.err(); err != nil {
			return ChartSpec{}, err
		}
		ss = append(ss, Series{
			Name: strconv.Itoa(y),
			Type: TypeBar,
			X:    anySlice(sub.countries()),
			Y:    sub.rates(),
		})
	}
	return ChartSpec{
		Kind:   KindBars,
		Series: ss,
		Layout: Layout{
			Title: fmt.Sprintf("Comparison of Fertility Rate (%s)", a.Config.pair()),
			YAxis: &Axis{Title: "Fertility Rate"},
		},
	}, nil
}

// PairedDelta is late minus early rate per country. Countries are taken in
// the order they appear for the early year and paired with the late year by
// name; a missing or absent side gives an absent delta
func (a *Assembler) PairedDelta(ctx context.Context) (ChartSpec, error) {
	t, err := a.table(ctx, "paired_delta", fertility.ForYears(a.Config.EarlyYear, a.Config.LateYear))
	if err != nil {
		return ChartSpec{}, err
	}
	fr := newFrame(t)
	if err := fr.err(); err != nil {
		return ChartSpec{}, err
	}
	early := fr.whereYear(a.Config.EarlyYear)
	if err := early.err(); err != nil {
		return ChartSpec{}, err
	}

	ec, er := early.countries(), early.rates()
	xs := make([]any, 0, len(ec))
	ys := make([]*float64, 0, len(ec))
	for i, c := range ec {
		late, _ := t.RateOf(c, a.Config.LateYear)
		xs = append(xs, c)
		ys = append(ys, delta(late, er[i]))
	}
	return ChartSpec{
		Kind: KindScatter,
		Series: []Series{{
			Type: TypeScatter,
			Mode: ModeMarkers,
			X:    xs,
			Y:    ys,
		}},
		Layout: Layout{
			Title: fmt.Sprintf("Difference in Fertility Rate (%s)", a.Config.pair()),
			YAxis: &Axis{Title: "Fertility Rate Difference (absolute)"},
		},
	}, nil
}

func delta(late, early *float64) *float64 {
	if late == nil || early == nil || math.IsNaN(*late) || math.IsNaN(*early) {
		return nil
	}
	d := *late - *early
	return &d
}
