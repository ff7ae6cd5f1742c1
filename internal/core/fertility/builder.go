package fertility

import (
	"context"

	perr "fertilitydash/internal/platform/errors"
	"fertilitydash/internal/platform/logger"
)

// Builder loads series from a Source and builds filtered tables.
// Every call goes back to the Source; nothing is cached
type Builder struct {
	Source Source
	Query  Query
}

// NewBuilder returns a Builder over src using DefaultQuery
func NewBuilder(src Source) *Builder {
	return &Builder{Source: src, Query: DefaultQuery()}
}

// Table loads fresh series and returns the filtered table
func (b *Builder) Table(ctx context.Context, f Filter) (Table, error) {
	if b == nil || b.Source == nil {
		return nil, perr.Internalf("fertility builder has no source")
	}
	if err := b.Query.Validate(); err != nil {
		return nil, err
	}
	s, err := b.Source.LoadSeries(ctx, b.Query)
	if err != nil {
		return nil, err
	}
	t := BuildTable(s, f)
	logger.C(ctx).Debug().
		Int("countries", s.Len()).
		Int("pairs", s.Pairs()).
		Int("rows", t.Len()).
		Msg("fertility table built")
	return t, nil
}
