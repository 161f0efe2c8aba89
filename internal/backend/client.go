// Package backend talks to the recruitment platform API that owns accounts.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ErrTransport wraps every failure that leaves no usable response: dial and
// TLS errors, timeouts and bodies that are not JSON.
var ErrTransport = errors.New("backend: transport failure")

// maxResponseBytes bounds how much of a response body is read.
const maxResponseBytes = 1 << 20

// RegisterRequest is the account creation payload in the backend's wire names.
type RegisterRequest struct {
	Name     string  `json:"nome"`
	Email    string  `json:"email"`
	TaxID    string  `json:"cpf_cnpj"`
	Password string  `json:"senha"`
	Role     string  `json:"cargo"`
	Photo    *string `json:"foto"`
}

// Result is the settled answer of the backend.
type Result struct {
	Status  int
	Message string
}

// OK reports whether the backend accepted the request.
func (r Result) OK() bool {
	return r.Status >= 200 && r.Status < 300
}

// Client wraps interactions with the registration API.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

// NewClient constructs a client posting to baseURL+registerPath.
func NewClient(baseURL, registerPath string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		endpoint: strings.TrimRight(baseURL, "/") + "/" + strings.TrimLeft(registerPath, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Endpoint returns the fixed URL registrations are posted to.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Register posts req as JSON and decodes the JSON answer. A non-2xx answer is
// not an error: it comes back as a Result carrying the backend's message.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (Result, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return Result{}, fmt.Errorf("backend: encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return Result{}, fmt.Errorf("backend: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	// Any JSON document is a valid answer; only an object may carry a message.
	var payload any
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&payload); err != nil {
		return Result{}, fmt.Errorf("%w: decode response (status %d): %w", ErrTransport, resp.StatusCode, err)
	}
	result := Result{Status: resp.StatusCode}
	if obj, ok := payload.(map[string]any); ok {
		result.Message, _ = obj["message"].(string)
	}
	return result, nil
}
