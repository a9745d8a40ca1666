// Package catalog provides a resilient HTTP client for the upstream catalog service
package catalog

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"newsstand/internal/core/content"
	"newsstand/internal/core/dates"
	perr "newsstand/internal/platform/errors"
	"newsstand/internal/platform/logger"
)

const (
	defaultTimeout   = 10 * time.Second
	defaultUA        = "newsstand-api"
	defaultMaxRetry  = 5
	defaultRetryBase = 500 * time.Millisecond
)

// Options configures the Client
type Options struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration

	// Retry config for transient responses
	MaxRetries int
	RetryBase  time.Duration
}

// Client fetches catalog slices with retries and date normalization
// it satisfies the window.Source port
type Client struct {
	http  *http.Client
	opts  Options
	log   logger.Logger
	norm  *dates.Normalizer
	sleep func(time.Duration)
}

// NewClient creates a Client with sane defaults
func NewClient(o Options) *Client {
	if o.UserAgent == "" {
		o.UserAgent = defaultUA
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	if o.MaxRetries <= 0 {
		o.MaxRetries = defaultMaxRetry
	}
	if o.RetryBase <= 0 {
		o.RetryBase = defaultRetryBase
	}
	return &Client{
		http:  &http.Client{Timeout: o.Timeout},
		opts:  o,
		log:   *logger.Named("catalog"),
		norm:  dates.NewNormalizer(),
		sleep: time.Sleep,
	}
}

// wireItem is the upstream JSON shape, dates arrive as free-form strings
type wireItem struct {
	ID         string   `json:"id"`
	Date       string   `json:"date"`
	Categories []string `json:"categories"`
	Breaking   bool     `json:"breaking"`
	Featured   bool     `json:"featured"`
	HasContent bool     `json:"has_content"`
}

// toItem normalizes the wire date; unparseable dates become the zero Day so
// the resolver folds them into its invalid-date decision rather than erroring
func (c *Client) toItem(w wireItem) content.Item {
	day, _ := c.norm.Normalize(w.Date)
	return content.Item{
		ID:         w.ID,
		Date:       day,
		Categories: w.Categories,
		Breaking:   w.Breaking,
		Featured:   w.Featured,
		HasContent: w.HasContent,
	}
}

// ItemsInRange fetches items dated within [start, end]
func (c *Client) ItemsInRange(ctx context.Context, start, end dates.Day) ([]content.Item, error) {
	q := url.Values{}
	q.Set("start", dates.FormatDay(start))
	q.Set("end", dates.FormatDay(end))
	return c.getItems(ctx, "/items?"+q.Encode())
}

// AllItems fetches the full catalog
func (c *Client) AllItems(ctx context.Context) ([]content.Item, error) {
	return c.getItems(ctx, "/items/all")
}

// FeaturedItems fetches the featured slice
func (c *Client) FeaturedItems(ctx context.Context) ([]content.Item, error) {
	return c.getItems(ctx, "/items/featured")
}

// ItemsForDate fetches the items of one calendar day
func (c *Client) ItemsForDate(ctx context.Context, d dates.Day) ([]content.Item, error) {
	q := url.Values{}
	q.Set("date", dates.FormatDay(d))
	return c.getItems(ctx, "/items?"+q.Encode())
}

// ItemsForPage fetches one page of the catalog
func (c *Client) ItemsForPage(ctx context.Context, page int) ([]content.Item, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	return c.getItems(ctx, "/items?"+q.Encode())
}

// HasContent asks the catalog whether the item is consumable yet
func (c *Client) HasContent(ctx context.Context, id string) (bool, error) {
	resp, err := c.do(ctx, "/items/"+url.PathEscape(id)+"/has-content")
	if err != nil {
		return false, err
	}
	defer c.close(resp.Body)

	var out struct {
		HasContent bool `json:"has_content"`
	}
	if err := decode(resp.Body, &out); err != nil {
		return false, perr.Wrapf(err, perr.ErrorCodeUpstream, "catalog has-content decode failed")
	}
	return out.HasContent, nil
}

// getItems fetches and decodes one item slice
func (c *Client) getItems(ctx context.Context, path string) ([]content.Item, error) {
	resp, err := c.do(ctx, path)
	if err != nil {
		return nil, err
	}
	defer c.close(resp.Body)

	var wire []wireItem
	if err := decode(resp.Body, &wire); err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUpstream, "catalog decode failed for %s", path)
	}

	out := make([]content.Item, 0, len(wire))
	for _, w := range wire {
		out = append(out, c.toItem(w))
	}
	return out, nil
}

// do issues a GET with retries on transport errors and transient statuses
func (c *Client) do(ctx context.Context, path string) (*http.Response, error) {
	u := c.opts.BaseURL + path
	attempts := 0
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return nil, perr.Wrapf(err, perr.ErrorCodeUnknown, "catalog new request failed")
		}
		req.Header.Set("User-Agent", c.opts.UserAgent)
		req.Header.Set("Accept", "application/json")

		resp, err := c.http.Do(req)
		if err != nil {
			if !c.shouldRetry(attempts) {
				return nil, perr.Wrapf(err, perr.ErrorCodeUpstream, "catalog request failed")
			}
			back := c.backoff(attempts)
			c.log.Warn().Dur("retry_in", back).Int("attempt", attempts).Msg("catalog transport error retrying")
			c.sleep(back)
			attempts++
			continue
		}

		switch resp.StatusCode {
		case http.StatusOK:
			return resp, nil
		case http.StatusTooManyRequests, http.StatusBadGateway,
			http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			_ = drainAndClose(resp.Body)
			if !c.shouldRetry(attempts) {
				return nil, perr.Upstreamf("catalog transient status %d for %s", resp.StatusCode, path)
			}
			back := c.backoff(attempts)
			c.log.Warn().
				Int("status", resp.StatusCode).
				Dur("retry_in", back).
				Int("attempt", attempts).
				Msg("catalog transient error retrying")
			c.sleep(back)
			attempts++
			continue
		case http.StatusNotFound:
			_ = drainAndClose(resp.Body)
			return nil, perr.NotFoundf("catalog path %s not found", path)
		default:
			body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
			_ = resp.Body.Close()
			return nil, perr.Upstreamf("catalog unexpected status %d body %s", resp.StatusCode, string(body))
		}
	}
}

func (c *Client) backoff(attempt int) time.Duration {
	ms := int64(c.opts.RetryBase / time.Millisecond)
	ms = ms << uint(attempt)
	ceiling := int64(30 * time.Second / time.Millisecond)
	if ms > ceiling {
		ms = ceiling
	}
	return time.Duration(ms) * time.Millisecond
}

func (c *Client) shouldRetry(attempt int) bool {
	return attempt < c.opts.MaxRetries
}

func (c *Client) close(body io.ReadCloser) {
	if err := drainAndClose(body); err != nil {
		c.log.Error().Err(err).Msg("catalog close body failed")
	}
}

func decode(r io.Reader, v any) error {
	return json.NewDecoder(io.LimitReader(r, 4<<20)).Decode(v)
}

func drainAndClose(body io.ReadCloser) error {
	_, _ = io.Copy(io.Discard, io.LimitReader(body, 1<<20))
	return body.Close()
}
