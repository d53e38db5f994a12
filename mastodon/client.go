// Package mastodon is a minimal client for the parts of the Mastodon API
// the bot touches: credential verification, account lookup, posting, and the
// user websocket stream.
package mastodon

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/carlmjohnson/versioninfo"
)

// Client talks to one Mastodon instance with one access token.
type Client struct {
	// Client is the HTTP client to use. If not set, http.DefaultClient.
	Client *http.Client
	// PostClient, if set, is used for status posts instead of Client.
	// Posting is not idempotent, so it should not retry on its own: the
	// reply sender owns every resend decision.
	PostClient  *http.Client
	Host        string
	AccessToken string
	UserAgent   *string
}

func (c *Client) getClient() *http.Client {
	if c.Client == nil {
		return http.DefaultClient
	}
	return c.Client
}

func (c *Client) getPostClient() *http.Client {
	if c.PostClient == nil {
		return c.getClient()
	}
	return c.PostClient
}

func (c *Client) userAgent() string {
	if c.UserAgent != nil {
		return *c.UserAgent
	}
	return "wortwert/" + versioninfo.Short()
}

// APIError is the JSON error body Mastodon returns on non-2xx responses.
type APIError struct {
	ErrStr string `json:"error"`
}

func (ae *APIError) Error() string {
	return ae.ErrStr
}

// RatelimitInfo carries the X-RateLimit-* response headers.
type RatelimitInfo struct {
	Limit     int
	Remaining int
	Reset     time.Time
}

// Error wraps a failed API call with its HTTP status and any rate-limit
// metadata the server sent.
type Error struct {
	StatusCode int
	Wrapped    error
	Ratelimit  *RatelimitInfo
}

func (e *Error) Error() string {
	if e.Wrapped == nil {
		return fmt.Sprintf("mastodon API error %d", e.StatusCode)
	}
	if e.IsThrottled() && e.Ratelimit != nil {
		return fmt.Sprintf("mastodon API error %d: %s (throttled until %s)", e.StatusCode, e.Wrapped, e.Ratelimit.Reset.Local())
	}
	return fmt.Sprintf("mastodon API error %d: %s", e.StatusCode, e.Wrapped)
}

func (e *Error) Unwrap() error {
	return e.Wrapped
}

func (e *Error) IsThrottled() bool {
	return e.StatusCode == http.StatusTooManyRequests
}

// IsNotFound reports a 404, used to distinguish "account does not exist"
// from transport trouble at startup.
func (e *Error) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

func errorFromHTTPResponse(resp *http.Response, err error) error {
	r := &Error{
		StatusCode: resp.StatusCode,
		Wrapped:    err,
	}
	if resp.Header.Get("X-RateLimit-Limit") != "" {
		r.Ratelimit = &RatelimitInfo{}
		if n, err := strconv.Atoi(resp.Header.Get("X-RateLimit-Limit")); err == nil {
			r.Ratelimit.Limit = n
		}
		if n, err := strconv.Atoi(resp.Header.Get("X-RateLimit-Remaining")); err == nil {
			r.Ratelimit.Remaining = n
		}
		if ts, err := time.Parse(time.RFC3339, resp.Header.Get("X-RateLimit-Reset")); err == nil {
			r.Ratelimit.Reset = ts
		}
	}
	return r
}

func (c *Client) do(ctx context.Context, hc *http.Client, method, path string, params url.Values, bodyobj interface{}, out interface{}) error {
	var body io.Reader
	if bodyobj != nil {
		b, err := json.Marshal(bodyobj)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}

	uri := c.Host + path
	if len(params) > 0 {
		uri += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, uri, body)
	if err != nil {
		return err
	}
	if bodyobj != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("User-Agent", c.userAgent())
	req.Header.Set("Authorization", "Bearer "+c.AccessToken)

	resp, err := hc.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var ae APIError
		if err := json.NewDecoder(resp.Body).Decode(&ae); err != nil {
			return errorFromHTTPResponse(resp, fmt.Errorf("failed to decode error body: %w", err))
		}
		return errorFromHTTPResponse(resp, &ae)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}
	return nil
}

// VerifyCredentials returns the account the access token belongs to.
func (c *Client) VerifyCredentials(ctx context.Context) (*Account, error) {
	var acct Account
	if err := c.do(ctx, c.getClient(), http.MethodGet, "/api/v1/accounts/verify_credentials", nil, nil, &acct); err != nil {
		return nil, err
	}
	return &acct, nil
}

// LookupAccount resolves a webfinger-style handle (without leading @) to an
// account.
func (c *Client) LookupAccount(ctx context.Context, acct string) (*Account, error) {
	params := url.Values{}
	params.Set("acct", acct)
	var out Account
	if err := c.do(ctx, c.getClient(), http.MethodGet, "/api/v1/accounts/lookup", params, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// PostStatus publishes a status and returns the created entity.
func (c *Client) PostStatus(ctx context.Context, toot Toot) (*Status, error) {
	var out Status
	if err := c.do(ctx, c.getPostClient(), http.MethodPost, "/api/v1/statuses", nil, toot, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
