// Package aspc is a client for the ASPC dining menu API.
package aspc

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/example/frarold/internal/calendar"
	"github.com/example/frarold/internal/config"
	"github.com/example/frarold/internal/dining"
)

// Client fetches one hall's menu per call. It does not retry.
type Client struct {
	hc      *http.Client
	baseURL string
	token   string
	log     *zap.Logger
}

// New builds a Client from the menu API settings. A zero Timeout leaves requests unbounded
// except by the caller's context.
func New(cfg config.MenuAPIConfig, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	base := strings.TrimSpace(cfg.BaseURL)
	if base == "" {
		base = DefaultBaseURL
	}
	return &Client{
		hc:      &http.Client{Timeout: cfg.Timeout},
		baseURL: base,
		token:   cfg.AuthToken,
		log:     log.Named("aspc"),
	}
}

// WithHTTPClient swaps the underlying transport, mainly for tests.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.hc = hc
	return c
}

// FetchMenu returns what hall posted for meal on date. Transport failures and non-2xx answers
// return *FetchError; bodies that are not a menu array return *ParseError.
func (c *Client) FetchMenu(ctx context.Context, hall dining.Hall, date calendar.ResolvedDate, meal dining.Meal) (MenuResult, error) {
	day := date.DayCode()
	u := menuURL(c.baseURL, hall, day, meal, c.token)
	c.log.Debug("fetch menu", zap.Stringer("hall", hall), zap.String("day", day), zap.Stringer("meal", meal))

	status, body, err := c.get(ctx, u)
	if err != nil {
		return MenuResult{}, &FetchError{Hall: hall, Day: day, Meal: meal, Err: err}
	}
	if status < 200 || status >= 300 {
		return MenuResult{}, &FetchError{Hall: hall, Day: day, Meal: meal, Status: status, Err: fmt.Errorf("unexpected status: %s", snippet(body))}
	}

	res, err := parseMenu(body)
	if err != nil {
		return MenuResult{}, &ParseError{Hall: hall, Day: day, Meal: meal, Err: err}
	}
	c.log.Debug("menu fetched", zap.Stringer("hall", hall), zap.Bool("posted", res.Posted), zap.Int("items", len(res.Items)))
	return res, nil
}

// Ping fetches Frary's lunch menu for date and reports only whether the API answered with
// a well-formed menu.
func (c *Client) Ping(ctx context.Context, date calendar.ResolvedDate) error {
	_, err := c.FetchMenu(ctx, dining.Frary, date, dining.Lunch)
	return err
}

func (c *Client) get(ctx context.Context, rawURL string) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return 0, nil, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("accept", "application/json")
	req.Header.Set("user-agent", "frarold/1.0")

	res, err := c.hc.Do(req)
	if err != nil {
		var ue *url.Error
		if errors.As(err, &ue) {
			ue.URL = redactToken(ue.URL)
		}
		return 0, nil, fmt.Errorf("do request: %w", err)
	}
	defer res.Body.Close()

	b, err := io.ReadAll(res.Body)
	if err != nil {
		return res.StatusCode, nil, fmt.Errorf("read body: %w", err)
	}
	return res.StatusCode, b, nil
}

// redactToken hides the auth token so transport errors can be logged.
func redactToken(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	q := u.Query()
	if q.Has("auth_token") {
		q.Set("auth_token", "REDACTED")
		u.RawQuery = q.Encode()
	}
	return u.String()
}

func snippet(b []byte) string {
	s := strings.TrimSpace(string(b))
	if len(s) > 200 {
		s = s[:200] + "..."
	}
	if s == "" {
		return "(empty body)"
	}
	return s
}
