package todoapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/TWRT/todo-client/internal/pkg/logger"
	"github.com/TWRT/todo-client/internal/session"
)

type httpClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type Client struct {
	baseUrl        string
	session        *session.Evaluator
	httpClient     httpClient
	onUnauthorized func(ctx context.Context)
}

// NewClient builds a client for the task API at baseUrl. A nil httpClient
// gets a plain http.Client with a 10s timeout.
func NewClient(baseUrl string, evaluator *session.Evaluator, httpClient httpClient) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		baseUrl:    strings.TrimRight(baseUrl, "/"),
		session:    evaluator,
		httpClient: httpClient,
	}
}

// OnUnauthorized registers a hook run after a 401 has cleared the session.
func (c *Client) OnUnauthorized(fn func(ctx context.Context)) {
	c.onUnauthorized = fn
}

func encodeBody(body any) (io.Reader, error) {
	if body == nil {
		return nil, nil
	}
	b, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(b), nil
}

// request runs an authenticated call. out is left untouched on 204 or an
// empty body.
func (c *Client) request(ctx context.Context, method, endpoint string, body any, out any) error {
	return c.call(ctx, method, endpoint, body, out, true)
}

// call is request with control over the 401 sign-out. Without it a 401 is
// only reported as ErrAuthenticationRequired.
func (c *Client) call(ctx context.Context, method, endpoint string, body any, out any, signOutOn401 bool) error {
	reader, err := encodeBody(body)
	if err != nil {
		return fmt.Errorf("marshal request (todo api): %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseUrl+endpoint, reader)
	if err != nil {
		return fmt.Errorf("build request (todo api): %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if token, ok := c.session.ValidToken(); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s (todo api): %w", method, endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		if signOutOn401 {
			c.handleUnauthorized(ctx)
		}
		return ErrAuthenticationRequired
	}

	if resp.StatusCode == http.StatusNoContent {
		return nil
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response body (todo api): %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &RequestError{
			Status:  resp.StatusCode,
			Message: errorMessage(respBody, fmt.Sprintf("API request failed: %d", resp.StatusCode)),
		}
	}

	if out == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("parse response (todo api): %w", err)
	}
	return nil
}

func (c *Client) handleUnauthorized(ctx context.Context) {
	if err := c.session.Store().Clear(); err != nil {
		logger.Errorf(ctx, "clear session after 401 (todo api): %v", err)
	}
	if c.onUnauthorized != nil {
		c.onUnauthorized(ctx)
	}
}
