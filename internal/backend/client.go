package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"resty.dev/v3"

	"xwitter/internal/config"
	"xwitter/internal/metrics"
)

const defaultTimeout = 10 * time.Second

// Client talks to the external Xwitter REST backend on behalf of a session.
type Client struct {
	Logger *slog.Logger
	Config *config.Config

	client *resty.Client
}

func (c *Client) Init(_ context.Context) error {
	c.Logger = c.Logger.With("component", "backend.Client")

	if c.Config.BackendURL == "" {
		return ErrNoBackendURL
	}

	timeout := c.Config.BackendTimeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	c.client = resty.NewWithTransportSettings(DefaultTransportSettings).
		SetBaseURL(strings.TrimRight(c.Config.BackendURL, "/")).
		SetTimeout(timeout).
		AddResponseMiddleware(metricMiddleware)

	return nil
}

func (c *Client) Shutdown(_ context.Context) error {
	return c.client.Close()
}

func (c *Client) r(ctx context.Context, token string) *resty.Request {
	r := c.client.R().WithContext(ctx)
	if token != "" {
		r.SetAuthToken(token)
	}
	return r
}

func metricMiddleware(_ *resty.Client, response *resty.Response) error {
	reqURL, err := url.Parse(response.Request.URL)
	if err != nil {
		return err
	}

	metrics.BackendLatency.WithLabelValues(
		response.Request.Method,
		reqURL.Path,
		fmt.Sprintf("%d", response.StatusCode()),
	).Observe(response.Duration().Seconds())

	return nil
}

type call struct {
	method   string
	path     string
	token    string
	body     any
	query    url.Values
	fallback string
}

// do executes the call and decodes a successful JSON answer into T. Non-2xx
// answers become *Error, transport failures wrap ErrUnavailable.
func do[T any](ctx context.Context, c *Client, cl call) (T, error) {
	var zero T

	result := new(T)
	errBody := new(json.RawMessage)

	r := c.r(ctx, cl.token).
		SetResult(result).
		SetError(errBody)

	if cl.body != nil {
		r.SetBody(cl.body)
	}
	if cl.query != nil {
		r.SetQueryParamsFromValues(cl.query)
	}

	res, err := r.Execute(cl.method, cl.path)
	if err != nil {
		c.Logger.Debug("backend request failed", "method", cl.method, "path", cl.path, "error", err)
		return zero, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	if res.IsError() {
		return zero, &Error{
			Status:  res.StatusCode(),
			Message: ResolveMessage(*errBody, cl.fallback),
		}
	}

	return *result, nil
}

func path(parts ...string) string {
	escaped := make([]string, 0, len(parts))
	for _, p := range parts {
		escaped = append(escaped, url.PathEscape(p))
	}
	return "/" + strings.Join(escaped, "/")
}

// asArray returns the elements of a JSON array, or an empty slice when raw is
// anything else.
func asArray(raw json.RawMessage) []json.RawMessage {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil || items == nil {
		return []json.RawMessage{}
	}
	return items
}
