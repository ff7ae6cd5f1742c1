package figures

import (
	"context"
	"encoding/json"
	"math"
	"strings"
	"testing"

	"fertilitydash/internal/core/fertility"
	"fertilitydash/internal/platform/config"
	perr "fertilitydash/internal/platform/errors"
	kit "fertilitydash/internal/platform/testkit"
)

// fakeTables serves BuildTable over a fixed series set and counts calls
type fakeTables struct {
	series fertility.SeriesSet
	calls  int
	err    error
}

func (f *fakeTables) table(_ context.Context, flt fertility.Filter) (fertility.Table, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return fertility.BuildTable(f.series, flt), nil
}

func deltaScenario() fertility.SeriesSet {
	s := fertility.NewSeriesSet()
	s.Append("Germany", 1990, kit.Float(1.4))
	s.Append("Germany", 2018, kit.Float(1.6))
	s.Append("France", 1990, kit.Float(1.8))
	s.Append("France", 2018, kit.Float(1.9))
	return s
}

func dashboardSeries() fertility.SeriesSet {
	s := fertility.NewSeriesSet()
	// years arrive newest first, like the upstream sends them
	for y := 2020; y >= 1990; y-- {
		s.Append("Germany", y, kit.Float(1.0+float64(y-1990)/100))
	}
	for y := 2020; y >= 1990; y-- {
		var r *float64
		if y != 2018 {
			r = kit.Float(2.0)
		}
		s.Append("Spain", y, r)
	}
	s.Append("Norway", 2018, kit.Float(1.56))
	return s
}

func newAssembler(s fertility.SeriesSet) (*Assembler, *fakeTables) {
	ft := &fakeTables{series: s}
	return New(ft.table, DefaultConfig()), ft
}

func TestPairedDelta_Scenario(t *testing.T) {
	a, _ := newAssembler(deltaScenario())
	c, err := a.PairedDelta(context.Background())
	if err != nil {
		t.Fatalf("PairedDelta: %v", err)
	}
	if c.Kind != KindScatter || c.Len() != 1 {
		t.Fatalf("spec = %+v", c)
	}
	s := c.Series[0]
	if s.Mode != ModeMarkers || len(s.X) != 2 || s.X[0] != "Germany" || s.X[1] != "France" {
		t.Fatalf("series x = %v mode=%s", s.X, s.Mode)
	}
	kit.MustApprox(t, s.Y[0], 0.2, 1e-9)
	kit.MustApprox(t, s.Y[1], 0.1, 1e-9)
	if c.Layout.Title != "Difference in Fertility Rate (1990 vs. 2018)" ||
		c.Layout.XAxis != nil ||
		c.Layout.YAxis == nil || c.Layout.YAxis.Title != "Fertility Rate Difference (absolute)" {
		t.Fatalf("layout = %+v", c.Layout)
	}
}

func TestPairedDelta_MissingSideIsAbsent(t *testing.T) {
	a, _ := newAssembler(dashboardSeries())
	c, err := a.PairedDelta(context.Background())
	if err != nil {
		t.Fatalf("PairedDelta: %v", err)
	}
	s := c.Series[0]
	// Norway has no 1990 row so it is not on the x axis; Spain 2018 is absent
	if len(s.X) != 2 || s.X[0] != "Germany" || s.X[1] != "Spain" {
		t.Fatalf("x = %v", s.X)
	}
	kit.MustApprox(t, s.Y[0], 0.28, 1e-9)
	if s.Y[1] != nil {
		t.Fatalf("Spain delta should be absent, got %v", *s.Y[1])
	}
}

func TestPairedDelta_LateRateLookup(t *testing.T) {
	s := fertility.NewSeriesSet()
	s.Append("Germany", 2018, kit.Float(1.57))
	s.Append("Germany", 1990, kit.Float(1.45))
	s.Append("France", 2018, kit.Float(math.NaN()))
	s.Append("France", 1990, kit.Float(1.77))

	a, _ := newAssembler(s)
	c, err := a.PairedDelta(context.Background())
	if err != nil {
		t.Fatalf("PairedDelta: %v", err)
	}
	y := c.Series[0].Y
	if len(y) != 2 {
		t.Fatalf("y = %v", y)
	}
	kit.MustApprox(t, y[0], 0.12, 1e-9)
	if y[1] != nil {
		t.Fatalf("NaN late rate should give an absent delta, got %v", *y[1])
	}
}

func TestCountryLine(t *testing.T) {
	a, _ := newAssembler(dashboardSeries())
	c, err := a.CountryLine(context.Background())
	if err != nil {
		t.Fatalf("CountryLine: %v", err)
	}
	if c.Kind != KindLine || c.Len() != 1 {
		t.Fatalf("spec = %+v", c)
	}
	s := c.Series[0]
	if len(s.X) != 29 || len(s.Y) != 29 || s.Mode != ModeLines {
		t.Fatalf("len x=%d y=%d mode=%s", len(s.X), len(s.Y), s.Mode)
	}
	for i := range s.X {
		if s.X[i] != 1990+i {
			t.Fatalf("x[%d] = %v, years must ascend", i, s.X[i])
		}
	}
	kit.MustApprox(t, s.Y[0], 1.0, 1e-9)
	kit.MustApprox(t, s.Y[28], 1.28, 1e-9)
	if c.Layout.Title != "Fertility Rate in Germany (1990-2018)" ||
		c.Layout.XAxis == nil || c.Layout.XAxis.Title != "Year" ||
		c.Layout.YAxis == nil || c.Layout.YAxis.Title != "Fertility Rate" {
		t.Fatalf("layout = %+v", c.Layout)
	}
}

func TestCountryLines(t *testing.T) {
	a, _ := newAssembler(dashboardSeries())
	c, err := a.CountryLines(context.Background())
	if err != nil {
		t.Fatalf("CountryLines: %v", err)
	}
	if c.Kind != KindLines || c.Len() != 3 {
		t.Fatalf("want 3 series, got %d", c.Len())
	}
	// after the year sort Germany and Spain share 1990 and Germany comes first
	names := []string{c.Series[0].Name, c.Series[1].Name, c.Series[2].Name}
	if names[0] != "Germany" || names[1] != "Spain" || names[2] != "Norway" {
		t.Fatalf("names = %v", names)
	}
	spain := c.Series[1]
	if len(spain.X) != 29 || spain.X[0] != 1990 || spain.Y[28] != nil {
		t.Fatalf("spain series = %+v", spain)
	}
	if c.Layout.Title != "Fertility Rate in Selected European Countries (1990-2018)" {
		t.Fatalf("title = %q", c.Layout.Title)
	}
}

func TestPairedBars(t *testing.T) {
	a, _ := newAssembler(dashboardSeries())
	c, err := a.PairedBars(context.Background())
	if err != nil {
		t.Fatalf("PairedBars: %v", err)
	}
	if c.Kind != KindBars || c.Len() != 2 {
		t.Fatalf("spec = %+v", c)
	}
	// Spain 1990 (2.0) is the highest rate, so 1990 is seen first
	if c.Series[0].Name != "1990" || c.Series[1].Name != "2018" {
		t.Fatalf("series names = %s, %s", c.Series[0].Name, c.Series[1].Name)
	}
	y1990 := c.Series[0]
	if y1990.Type != TypeBar || len(y1990.X) != 2 || y1990.X[0] != "Spain" || y1990.X[1] != "Germany" {
		t.Fatalf("1990 bars = %+v", y1990)
	}
	y2018 := c.Series[1]
	// Norway 1.56 > Germany 1.28, Spain absent sorts last
	if len(y2018.X) != 3 || y2018.X[0] != "Norway" || y2018.X[1] != "Germany" || y2018.X[2] != "Spain" {
		t.Fatalf("2018 bars x = %v", y2018.X)
	}
	if y2018.Y[2] != nil {
		t.Fatalf("absent rate should stay null")
	}
	if c.Layout.Title != "Comparison of Fertility Rate (1990 vs. 2018)" || c.Layout.XAxis != nil {
		t.Fatalf("layout = %+v", c.Layout)
	}
}

func TestAssemble_FourChartsOneFetchEach(t *testing.T) {
	a, ft := newAssembler(dashboardSeries())
	specs, err := a.Assemble(context.Background())
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if len(specs) != Count || ft.calls != Count {
		t.Fatalf("specs=%d calls=%d", len(specs), ft.calls)
	}
	kinds := []Kind{KindLine, KindLines, KindBars, KindScatter}
	for i, k := range kinds {
		if specs[i].Kind != k {
			t.Fatalf("spec %d kind = %s, want %s", i, specs[i].Kind, k)
		}
	}

	b, err := json.Marshal(specs[2])
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(b), `"y":[1.56,1.28,null]`) {
		t.Fatalf("absent values should serialise as null: %s", b)
	}
}

func TestAssemble_EmptyDataGivesEmptyCharts(t *testing.T) {
	a, _ := newAssembler(fertility.NewSeriesSet())
	specs, err := a.Assemble(context.Background())
	if err != nil {
		t.Fatalf("Assemble on empty data: %v", err)
	}
	if specs[0].Len() != 1 || len(specs[0].Series[0].X) != 0 {
		t.Fatalf("line chart should have one empty series: %+v", specs[0])
	}
	if specs[1].Len() != 0 || specs[2].Len() != 0 {
		t.Fatalf("per-country and per-year charts should have no series")
	}
	if len(specs[3].Series[0].X) != 0 {
		t.Fatalf("delta chart should be empty")
	}
}

func TestAssemble_ErrorsPropagate(t *testing.T) {
	ft := &fakeTables{err: perr.Unavailablef("worldbank down")}
	_, err := New(ft.table, DefaultConfig()).Assemble(context.Background())
	if !perr.IsCode(err, perr.ErrorCodeUnavailable) {
		t.Fatalf("expected unavailable, got %v", err)
	}
	if e, _ := perr.As(err); e.Op() != "country_line" {
		t.Fatalf("op = %q", e.Op())
	}
	if ft.calls != 1 {
		t.Fatalf("assemble should stop at the first failure, calls=%d", ft.calls)
	}
}

func TestFigure_Range(t *testing.T) {
	a, _ := newAssembler(deltaScenario())
	for _, n := range []int{0, 5, -1} {
		if _, err := a.Figure(context.Background(), n); !perr.IsCode(err, perr.ErrorCodeNotFound) {
			t.Fatalf("Figure(%d) err = %v", n, err)
		}
	}
	c, err := a.Figure(context.Background(), 4)
	if err != nil || c.Kind != KindScatter {
		t.Fatalf("Figure(4) = %+v, %v", c, err)
	}
}

func TestConfig(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	bad := []Config{
		{FocusCountry: "", EarlyYear: 1990, LateYear: 2018},
		{FocusCountry: "Germany", EarlyYear: 2018, LateYear: 1990},
		{FocusCountry: "Germany", EarlyYear: 1990, LateYear: 2019},
	}
	for _, c := range bad {
		if err := c.Validate(); !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
			t.Fatalf("config %+v should be invalid, got %v", c, err)
		}
	}

	ft := &fakeTables{series: deltaScenario()}
	cfg := Config{FocusCountry: "France", EarlyYear: 2000, LateYear: 2010}
	c, err := New(ft.table, cfg).CountryLine(context.Background())
	if err != nil {
		t.Fatalf("CountryLine: %v", err)
	}
	if c.Layout.Title != "Fertility Rate in France (2000-2018)" {
		t.Fatalf("title = %q", c.Layout.Title)
	}
}

func TestFromConfig(t *testing.T) {
	t.Setenv("FIGURES_FOCUS_COUNTRY", "France")
	t.Setenv("FIGURES_LATE_YEAR", "2015")

	c := FromConfig(config.New().Prefix("FIGURES_"))
	if c.FocusCountry != "France" || c.EarlyYear != 1990 || c.LateYear != 2015 {
		t.Fatalf("config = %+v", c)
	}
	if err := c.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}
