package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	defaultTimeout = 30 * time.Second
	maxErrorBody   = 512
	maxBody        = 1 << 20
	maxRedirects   = 10
)

// Client implements Relay over HTTP. It is safe for concurrent use.
type Client struct {
	client       *http.Client
	allowedHosts map[string]struct{}
}

// Option configures a Client
type Option func(*Client)

// WithTimeout sets the HTTP client timeout. Zero disables it.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.client.Timeout = d }
}

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.client = hc }
}

// WithAllowedHosts restricts destinations to the given hosts (host or host:port, case-insensitive).
// Entries may themselves be comma-separated lists. An empty list allows any destination.
func WithAllowedHosts(hosts []string) Option {
	return func(c *Client) {
		c.allowedHosts = make(map[string]struct{}, len(hosts))
		for _, entry := range hosts {
			for _, h := range strings.Split(entry, ",") {
				h = strings.ToLower(strings.TrimSpace(h))
				if h != "" {
					c.allowedHosts[h] = struct{}{}
				}
			}
		}
	}
}

// NewClient creates a webhook relay client
func NewClient(opts ...Option) *Client {
	c := &Client{
		client: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	// Redirect targets go through the same allow-list as the first destination
	if c.client.CheckRedirect == nil {
		c.client.CheckRedirect = c.checkRedirect
	}
	return c
}

func (c *Client) checkRedirect(req *http.Request, via []*http.Request) error {
	if !c.Allowed(req.URL.String()) {
		return fmt.Errorf("%w: redirect to %s", ErrDestinationNotAllowed, req.URL.Host)
	}
	if len(via) >= maxRedirects {
		return fmt.Errorf("stopped after %d redirects", maxRedirects)
	}
	return nil
}

// NewClientFromConfig creates a client from relay.timeout and relay.allowed_hosts.
// opts are applied last.
func NewClientFromConfig(opts ...Option) *Client {
	timeout := defaultTimeout
	if viper.IsSet("relay.timeout") {
		timeout = viper.GetDuration("relay.timeout")
	}
	return NewClient(append([]Option{
		WithTimeout(timeout),
		WithAllowedHosts(viper.GetStringSlice("relay.allowed_hosts")),
	}, opts...)...)
}

// Allowed reports whether destination passes the allow-list
func (c *Client) Allowed(destination string) bool {
	if len(c.allowedHosts) == 0 {
		return true
	}
	u, err := url.Parse(destination)
	if err != nil {
		return false
	}
	host := strings.ToLower(u.Host)
	if _, ok := c.allowedHosts[host]; ok {
		return true
	}
	_, ok := c.allowedHosts[strings.ToLower(u.Hostname())]
	return ok
}

// Forward implements Relay.Forward. A single attempt is made.
func (c *Client) Forward(ctx context.Context, destination string, payload any) (*Result, error) {
	if !c.Allowed(destination) {
		return nil, fmt.Errorf("%w: %s", ErrDestinationNotAllowed, destination)
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, destination, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		if errors.Is(err, ErrDestinationNotAllowed) {
			return nil, err
		}
		return nil, &UnavailableError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &RejectedError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}

	// The target's body is best effort: unreadable or non-JSON content still counts as success.
	result := &Result{StatusCode: resp.StatusCode}
	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err == nil {
		raw = bytes.TrimSpace(raw)
		if len(raw) > 0 && !bytes.Equal(raw, []byte("null")) && json.Valid(raw) {
			result.Body = json.RawMessage(raw)
		}
	}
	return result, nil
}
