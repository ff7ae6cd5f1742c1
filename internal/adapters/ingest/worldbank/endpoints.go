package worldbank

import (
	"bytes"
	"context"
	"encoding/json"
	"net/url"
	"strconv"
	"strings"

	"fertilitydash/internal/core/fertility"
	perr "fertilitydash/internal/platform/errors"
	"fertilitydash/internal/platform/logger"
)

var _ fertility.Source = (*Client)(nil)

// SeriesURL builds the indicator URL for q
func (c *Client) SeriesURL(q fertility.Query) string {
	v := url.Values{}
	v.Set("format", "json")
	v.Set("per_page", strconv.Itoa(c.opts.PerPage))
	v.Set("date", q.Years.String())
	return c.opts.BaseURL + "/v2/countries/" + strings.Join(q.CountryCodes, ";") +
		"/indicators/" + url.PathEscape(q.Indicator) + "?" + v.Encode()
}

// LoadSeries fetches q in a single request and groups the records by country
// display name. Records without a country name or a parseable year are skipped
// and counted; unusable values become absent rates
func (c *Client) LoadSeries(ctx context.Context, q fertility.Query) (fertility.SeriesSet, error) {
	if err := q.Validate(); err != nil {
		return fertility.SeriesSet{}, err
	}
	body, err := c.get(ctx, c.SeriesURL(q))
	if err != nil {
		return fertility.SeriesSet{}, err
	}
	meta, recs, bad, err := decodeSeries(body)
	if err != nil {
		return fertility.SeriesSet{}, err
	}

	log := logger.C(ctx).With().Str("component", "worldbank").Str("indicator", q.Indicator).Logger()
	if meta.Pages > 1 {
		log.Warn().
			Int("pages", int(meta.Pages)).
			Int("total", int(meta.Total)).
			Int("per_page", int(meta.PerPage)).
			Msg("worldbank results span several pages; only the first is used")
	}

	out := fertility.NewSeriesSet()
	skipped, absent := bad, 0
	for _, r := range recs {
		name := strings.TrimSpace(r.Country.Value)
		year, ok := r.Year()
		if name == "" || !ok {
			skipped++
			continue
		}
		rate := r.Rate()
		if rate == nil {
			absent++
		}
		out.Append(name, year, rate)
	}
	if skipped > 0 {
		log.Warn().Int("skipped", skipped).Int("undecodable", bad).Msg("worldbank records without country or year skipped")
	}
	log.Info().
		Int("records", len(recs)+bad).
		Int("countries", out.Len()).
		Int("absent", absent).
		Str("last_updated", meta.LastUpdated).
		Msg("worldbank series loaded")
	return out, nil
}

// decodeSeries splits the two element response into metadata and records.
// A single element carrying messages is the API reporting an error. Records
// are decoded one by one; bad counts those that do not fit Record
func decodeSeries(body []byte) (meta PageMeta, recs []Record, bad int, err error) {
	var parts []json.RawMessage
	if err := json.Unmarshal(body, &parts); err != nil {
		return PageMeta{}, nil, 0, perr.Wrapf(err, perr.ErrorCodeUpstream, "worldbank response is not a JSON array")
	}
	if len(parts) == 0 {
		return PageMeta{}, nil, 0, perr.Upstreamf("worldbank response is empty")
	}
	if len(parts) == 1 {
		var ae apiError
		if err := json.Unmarshal(parts[0], &ae); err != nil || len(ae.Message) == 0 {
			return PageMeta{}, nil, 0, perr.Upstreamf("worldbank response has no records element")
		}
		return PageMeta{}, nil, 0, perr.Upstreamf("worldbank api error: %s", messages(ae.Message))
	}

	if err := json.Unmarshal(parts[0], &meta); err != nil {
		return PageMeta{}, nil, 0, perr.Wrapf(err, perr.ErrorCodeUpstream, "worldbank page metadata undecodable")
	}
	// no matches comes back as null
	if bytes.Equal(bytes.TrimSpace(parts[1]), []byte("null")) {
		return meta, nil, 0, nil
	}
	var raws []json.RawMessage
	if err := json.Unmarshal(parts[1], &raws); err != nil {
		return PageMeta{}, nil, 0, perr.Wrapf(err, perr.ErrorCodeUpstream, "worldbank records undecodable")
	}
	recs = make([]Record, 0, len(raws))
	for _, raw := range raws {
		var r Record
		if json.Unmarshal(raw, &r) != nil {
			bad++
			continue
		}
		recs = append(recs, r)
	}
	return meta, recs, bad, nil
}

// IndicatorURL builds the metadata URL for an indicator
func (c *Client) IndicatorURL(indicator string) string {
	return c.opts.BaseURL + "/v2/indicators/" + url.PathEscape(indicator) + "?format=json"
}

// Ping checks the API answers for the fertility indicator
func (c *Client) Ping(ctx context.Context) error {
	body, err := c.get(ctx, c.IndicatorURL(fertility.Indicator))
	if err != nil {
		return err
	}
	var parts []json.RawMessage
	if err := json.Unmarshal(body, &parts); err != nil || len(parts) == 0 {
		return perr.Upstreamf("worldbank indicator metadata is not a JSON array")
	}
	if len(parts) == 1 {
		var ae apiError
		if json.Unmarshal(parts[0], &ae) == nil && len(ae.Message) > 0 {
			return perr.Upstreamf("worldbank api error: %s", messages(ae.Message))
		}
	}
	return nil
}
