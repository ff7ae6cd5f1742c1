// Package service contains fertility workflows
package service

import (
	"bytes"
	"context"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"fertilitydash/internal/core/export"
	"fertilitydash/internal/core/fertility"
	"fertilitydash/internal/core/figures"
	"fertilitydash/internal/platform/logger"
	"fertilitydash/internal/services/api/fertility/domain"
)

// Svc implements the fertility service
// every call rebuilds from a fresh upstream fetch
type Svc struct {
	tables *fertility.Builder
	charts *figures.Assembler
	lang   language.Tag
}

var _ domain.ServicePort = (*Svc)(nil)

// New constructs a fertility service over src
func New(src fertility.Source, cfg figures.Config) *Svc {
	if src == nil {
		panic("fertility.Service requires a non nil Source")
	}
	b := fertility.NewBuilder(src)
	return &Svc{
		tables: b,
		charts: figures.New(b.Table, cfg),
		lang:   language.English,
	}
}

// Figures returns the four dashboard charts
func (s *Svc) Figures(ctx context.Context) ([]domain.Chart, error) {
	ctx = logger.WithOp(ctx, "figures")
	return s.charts.Assemble(ctx)
}

// Figure returns chart n, counting from 1
func (s *Svc) Figure(ctx context.Context, n int) (domain.Chart, error) {
	ctx = logger.WithOp(ctx, "figure")
	return s.charts.Figure(ctx, n)
}

// Table returns the filtered observation table
func (s *Svc) Table(ctx context.Context, in domain.TableInput) (domain.TableOutput, error) {
	t, err := s.tables.Table(logger.WithOp(ctx, "table"), in.Filter())
	if err != nil {
		return domain.TableOutput{}, err
	}
	if t == nil {
		t = fertility.Table{}
	}
	return domain.TableOutput{
		Rows:      t,
		Countries: t.Countries(),
		Years:     t.Years(),
		Cutoff:    fertility.CutoffYear,
	}, nil
}

// Countries lists the countries in the unfiltered table in English collation order
func (s *Svc) Countries(ctx context.Context) (domain.CountriesOutput, error) {
	t, err := s.tables.Table(logger.WithOp(ctx, "countries"), fertility.Filter{})
	if err != nil {
		return domain.CountriesOutput{}, err
	}
	names := t.Countries()
	// a Collator is not safe for concurrent use
	collate.New(s.lang, collate.Loose).SortStrings(names)
	return domain.CountriesOutput{Countries: names, Count: len(names)}, nil
}

// Export renders the filtered table in the named format
func (s *Svc) Export(ctx context.Context, in domain.TableInput, format string) (domain.Export, error) {
	f, err := export.ParseFormat(format)
	if err != nil {
		return domain.Export{}, err
	}
	ctx = logger.WithOp(ctx, "export")
	t, err := s.tables.Table(ctx, in.Filter())
	if err != nil {
		return domain.Export{}, err
	}
	var buf bytes.Buffer
	if err := export.Write(&buf, t, f); err != nil {
		return domain.Export{}, err
	}
	logger.C(ctx).Debug().Str("format", string(f)).Int("rows", t.Len()).Int("bytes", buf.Len()).Msg("table exported")
	return domain.Export{
		Filename:    f.Filename(),
		ContentType: f.ContentType(),
		Body:        buf.Bytes(),
	}, nil
}
