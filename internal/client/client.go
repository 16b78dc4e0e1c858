// Package client talks to a running roundtrip server: it uploads a value and
// fetches the stored record back.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/deppfellow/roundtrip/internal/model"
	"github.com/deppfellow/roundtrip/internal/validation"
)

// DefaultTimeout bounds a whole request, body included.
const DefaultTimeout = 30 * time.Second

// maxBodyBytes caps how much of a reply is read.
const maxBodyBytes = 1 << 20

type Config struct {
	Timeout     time.Duration
	DialTimeout time.Duration
	UserAgent   string
}

func DefaultConfig() Config {
	return Config{
		Timeout:     DefaultTimeout,
		DialTimeout: 5 * time.Second,
		UserAgent:   "roundtrip-client",
	}
}

// Client calls the submit and fetch endpoints.
type Client struct {
	http      *http.Client
	userAgent string
}

func New(cfg Config) *Client {
	dialer := &net.Dialer{Timeout: cfg.DialTimeout}
	return &Client{
		http: &http.Client{
			Transport: &http.Transport{
				Proxy:       http.ProxyFromEnvironment,
				DialContext: dialer.DialContext,
			},
			Timeout: cfg.Timeout,
		},
		userAgent: cfg.UserAgent,
	}
}

// UploadBody is the form body posted for value: a single UploadValue field
// holding {"UploadValue":"<value>"}.
func UploadBody(value string) (string, error) {
	doc, err := json.Marshal(map[string]string{validation.UploadValueField: value})
	if err != nil {
		return "", err
	}
	return url.Values{validation.UploadValueField: {string(doc)}}.Encode(), nil
}

// Upload posts value to destURL and returns the server's text reply. The
// value is sent as given; range and format checks are the server's job.
func (c *Client) Upload(ctx context.Context, destURL, value string) (string, error) {
	body, err := UploadBody(value)
	if err != nil {
		return "", fmt.Errorf("encode upload body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, destURL, strings.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build upload request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "text/plain")

	reply, _, err := c.do(req)
	if err != nil {
		return "", err
	}
	return string(reply), nil
}

// Fetch reads the stored record from fetchURL. raw is the body as received.
func (c *Client) Fetch(ctx context.Context, fetchURL string) (model.FetchResponse, json.RawMessage, error) {
	var out model.FetchResponse

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fetchURL, nil)
	if err != nil {
		return out, nil, fmt.Errorf("build fetch request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	body, _, err := c.do(req)
	if err != nil {
		return out, nil, err
	}

	if err := json.Unmarshal(body, &out); err != nil {
		return out, nil, fmt.Errorf("decode fetch response: %w", err)
	}
	return out, json.RawMessage(body), nil
}

// StatusError is returned when the server answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	msg := strings.TrimSpace(e.Body)
	var payload struct {
		Message string `json:"message"`
	}
	if json.Unmarshal([]byte(msg), &payload) == nil && payload.Message != "" {
		msg = payload.Message
	}
	return fmt.Sprintf("server returned %d: %s", e.StatusCode, msg)
}

func (c *Client) do(req *http.Request) ([]byte, int, error) {
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("%s %s: %w", req.Method, req.URL.Redacted(), err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, resp.StatusCode, &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}
	return body, resp.StatusCode, nil
}
