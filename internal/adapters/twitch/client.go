// Package twitch provides a small Helix client for user lookup and live status
package twitch

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"

	perr "devstreams/internal/platform/errors"
	"devstreams/internal/platform/logger"
)

const (
	baseURLDefault   = "https://api.twitch.tv/helix"
	defaultTimeout   = 5 * time.Second
	defaultUA        = "devstreams-api"
	defaultRetryBase = 250 * time.Millisecond
	maxBody          = 1 << 20

	// MaxPerRequest is the Helix cap on repeated login or user_id params
	MaxPerRequest = 100
)

// Options configures the Client
type Options struct {
	BaseURL   string
	ClientID  string
	UserAgent string
	Timeout   time.Duration

	// App access token, sent as a bearer when set
	Token string

	// Retries for transport errors and 5xx, zero disables
	MaxRetries int
	RetryBase  time.Duration

	// Transport overrides the pooled default, mainly for tests
	Transport http.RoundTripper
}

// Client is a process wide Helix client. It is safe for concurrent use and keeps
// one pooled transport, call Close on shutdown
type Client struct {
	http *http.Client
	opts Options
	log  logger.Logger
	now  func() time.Time
	wait func(context.Context, time.Duration) error
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
	if o.MaxRetries < 0 {
		o.MaxRetries = 0
	}
	if o.RetryBase <= 0 {
		o.RetryBase = defaultRetryBase
	}
	tr := o.Transport
	if tr == nil {
		t := http.DefaultTransport.(*http.Transport).Clone()
		t.MaxIdleConnsPerHost = 16
		t.IdleConnTimeout = 90 * time.Second
		tr = t
	}
	return &Client{
		http: &http.Client{Timeout: o.Timeout, Transport: tr},
		opts: o,
		log:  *logger.Named("twitch"),
		now:  time.Now,
		wait: sleepCtx,
	}
}

// Close releases idle pooled connections
func (c *Client) Close() {
	c.http.CloseIdleConnections()
}

// get issues a GET against path with query q and decodes the JSON body into out
func (c *Client) get(ctx context.Context, path string, q url.Values, out any) error {
	u := c.opts.BaseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}

	attempts := 0
	for {
		if err := ctx.Err(); err != nil {
			return perr.Wrapf(err, perr.ErrorCodeUnavailable, "twitch %s canceled", path)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return perr.Wrapf(err, perr.ErrorCodeUnknown, "twitch new request failed")
		}
		req.Header.Set("User-Agent", c.opts.UserAgent)
		req.Header.Set("Accept", "application/json")
		if c.opts.ClientID != "" {
			req.Header.Set("Client-Id", c.opts.ClientID)
		}
		if c.opts.Token != "" {
			req.Header.Set("Authorization", "Bearer "+c.opts.Token)
		}

		start := c.now()
		resp, err := c.http.Do(req)
		lat := c.now().Sub(start)

		if err != nil {
			if !c.shouldRetry(attempts) || ctx.Err() != nil {
				return perr.Wrapf(err, perr.ErrorCodeUnavailable, "twitch %s failed", path)
			}
			back := c.backoff(attempts)
			c.log.Warn().Err(err).Dur("retry_in", back).Int("attempt", attempts).Msg("twitch transport error retrying")
			if werr := c.wait(ctx, back); werr != nil {
				return perr.Wrapf(werr, perr.ErrorCodeUnavailable, "twitch %s canceled during backoff", path)
			}
			attempts++
			continue
		}

		c.log.Debug().
			Str("path", path).
			Int("status", resp.StatusCode).
			Int("attempt", attempts).
			Dur("latency", lat).
			Str("ratelimit_remaining", resp.Header.Get("Ratelimit-Remaining")).
			Msg("twitch http response")

		switch {
		case resp.StatusCode == http.StatusOK:
			defer func() {
				if cerr := resp.Body.Close(); cerr != nil {
					c.log.Error().Err(cerr).Str("path", path).Msg("twitch close body failed")
				}
			}()
			b, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
			if err != nil {
				return perr.Wrapf(err, perr.ErrorCodeUnavailable, "twitch %s read failed", path)
			}
			if err := json.Unmarshal(b, out); err != nil {
				return perr.Wrapf(err, perr.ErrorCodeJSON, "twitch %s decode failed", path)
			}
			return nil
		case resp.StatusCode >= 500:
			_ = drainAndClose(resp.Body)
			if !c.shouldRetry(attempts) {
				return perr.Newf(perr.ErrorCodeUnavailable, "twitch %s status %d", path, resp.StatusCode)
			}
			back := c.backoff(attempts)
			c.log.Warn().Int("status", resp.StatusCode).Dur("retry_in", back).Msg("twitch server error retrying")
			if werr := c.wait(ctx, back); werr != nil {
				return perr.Wrapf(werr, perr.ErrorCodeUnavailable, "twitch %s canceled during backoff", path)
			}
			attempts++
			continue
		case resp.StatusCode == http.StatusTooManyRequests:
			_ = drainAndClose(resp.Body)
			return perr.Newf(perr.ErrorCodeRateLimited, "twitch %s rate limited", path)
		case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
			_ = drainAndClose(resp.Body)
			return perr.Newf(perr.ErrorCodeUpstreamAuth, "twitch %s rejected credentials", path)
		default:
			body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
			_ = resp.Body.Close()
			return perr.Newf(perr.ErrorCodeUnavailable, "twitch %s unexpected status %d body %s", path, resp.StatusCode, string(body))
		}
	}
}

func (c *Client) backoff(attempt int) time.Duration {
	d := c.opts.RetryBase << uint(attempt)
	if d > 5*time.Second {
		d = 5 * time.Second
	}
	return d
}

func (c *Client) shouldRetry(attempt int) bool {
	return attempt < c.opts.MaxRetries
}

// sleepCtx waits d or until ctx is done, whichever comes first
func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func drainAndClose(rc io.ReadCloser) error {
	_, _ = io.Copy(io.Discard, io.LimitReader(rc, 512))
	return rc.Close()
}
