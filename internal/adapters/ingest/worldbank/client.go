// Package worldbank loads indicator series from the World Bank v2 data API
package worldbank

import (
	"context"
	"io"
	"net/http"
	"time"

	"fertilitydash/internal/platform/config"
	perr "fertilitydash/internal/platform/errors"
	"fertilitydash/internal/platform/logger"
	pnet "fertilitydash/internal/platform/net"

	"github.com/google/uuid"
)

const (
	baseURLDefault = "https://api.worldbank.org"
	defaultTimeout = 10 * time.Second
	defaultUA      = "fertilitydash-worldbank"
	defaultPerPage = 500
	maxBodyBytes   = 4 << 20
)

// Options configures the Client
type Options struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration

	// PerPage must be large enough that the whole selection fits one page;
	// the client never follows pagination
	PerPage int
}

// Client is a minimal World Bank API client. It makes exactly one request per
// load and does not retry
type Client struct {
	http  *http.Client
	opts  Options
	log   logger.Logger
	now   func() time.Time
	newID func() string
}

// NewClient creates a new Client with sane defaults
func NewClient(o Options) *Client {
	if o.BaseURL == "" {
		o.BaseURL = baseURLDefault
	}
	if o.UserAgent == "" {
		o.UserAgent = defaultUA
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	if o.PerPage <= 0 {
		o.PerPage = defaultPerPage
	}
	return &Client{
		http:  &http.Client{Timeout: o.Timeout},
		opts:  o,
		log:   *logger.Named("worldbank"),
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// Options returns the effective options after defaults
func (c *Client) Options() Options { return c.opts }

// get issues one GET for url and returns the capped body of a 200 response.
// Transport failures map to Unavailable, anything else unusable to Upstream
func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnknown, "worldbank new request failed")
	}
	reqID := pnet.RequestID(ctx)
	if reqID == "" {
		reqID = c.newID()
	}
	req.Header.Set("User-Agent", c.opts.UserAgent)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", reqID)

	start := c.now()
	resp, err := c.http.Do(req)
	lat := c.now().Sub(start)
	if err != nil {
		if ctx.Err() != nil {
			return nil, perr.Wrapf(ctx.Err(), perr.ErrorCodeUnavailable, "worldbank request cancelled")
		}
		return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "worldbank do failed")
	}
	defer func() {
		if cerr := drainAndClose(resp.Body); cerr != nil {
			c.log.Error().Err(cerr).Str("url", url).Msg("worldbank close body failed")
		}
	}()

	c.log.Debug().
		Str("url", url).
		Str("request_id", reqID).
		Int("status", resp.StatusCode).
		Dur("latency", lat).
		Msg("worldbank http response")

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return nil, perr.Newf(perr.ErrorCodeUpstream, "worldbank unexpected status %d body %s", resp.StatusCode, trimBody(body))
	}

	b, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes+1))
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "worldbank read body failed")
	}
	if len(b) > maxBodyBytes {
		return nil, perr.Newf(perr.ErrorCodeUpstream, "worldbank body exceeds %d bytes", maxBodyBytes)
	}
	return b, nil
}

// FromConfig reads WORLDBANK_* style keys from c, which should already carry the prefix
func FromConfig(c config.Conf) Options {
	return Options{
		BaseURL:   c.MayURL("BASE_URL", baseURLDefault),
		UserAgent: c.MayString("USER_AGENT", defaultUA),
		Timeout:   c.MayDuration("TIMEOUT", defaultTimeout),
		PerPage:   c.MayInt("PER_PAGE", defaultPerPage),
	}
}
