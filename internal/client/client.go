// ABOUTME: HTTP client for the Gatekey authentication API
// ABOUTME: Wraps the login and register endpoints with proper error handling for CLI usage

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Client is the API client for the Gatekey account service
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// DefaultTimeout bounds each request when no timeout is configured
const DefaultTimeout = 30 * time.Second

// New creates a new API client with the given base URL
func New(baseURL string) *Client {
	return NewWithTimeout(baseURL, DefaultTimeout)
}

// NewWithTimeout creates a client with a caller-chosen request timeout.
// Non-positive values fall back to DefaultTimeout.
func NewWithTimeout(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// BaseURL returns the configured API base URL
func (c *Client) BaseURL() string {
	return c.baseURL
}

// LoginRequest is the body for POST /auth/login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest is the body for POST /auth/register
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is the decoded body of a login or register response.
// User is passed through opaquely; the server's shape is not our contract.
// Message doubles as the error carrier: the server sets it on failure even
// when the HTTP status is 2xx.
type AuthResponse struct {
	AccessToken  string          `json:"accessToken"`
	RefreshToken string          `json:"refreshToken"`
	User         json.RawMessage `json:"user,omitempty"`
	Message      string          `json:"message,omitempty"`
}

// APIError is a response the server produced but rejected.
// Distinct from transport errors so callers can surface the server's
// message verbatim.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("authentication failed (status %d)", e.StatusCode)
}

// Login calls POST /auth/login with the given credentials
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	return c.post(ctx, "/auth/login", LoginRequest{
		Email:    email,
		Password: password,
	})
}

// Register calls POST /auth/register. The name is trimmed before sending.
func (c *Client) Register(ctx context.Context, name, email, password string) (*AuthResponse, error) {
	return c.post(ctx, "/auth/register", RegisterRequest{
		Name:     strings.TrimSpace(name),
		Email:    email,
		Password: password,
	})
}

// post issues one JSON POST and applies the success/failure discriminator:
// a response is a failure if the status is non-2xx OR the body carries a
// non-empty message field, regardless of status.
func (c *Client) post(ctx context.Context, path string, payload interface{}) (*AuthResponse, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.handleRequestError(ctx, err)
	}
	defer resp.Body.Close()

	var auth AuthResponse
	decodeErr := json.NewDecoder(resp.Body).Decode(&auth)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Body may not be JSON at all; an empty message yields the generic text
		return nil, &APIError{StatusCode: resp.StatusCode, Message: auth.Message}
	}

	if decodeErr != nil {
		return nil, fmt.Errorf("invalid response from server: %w", decodeErr)
	}

	if auth.Message != "" {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: auth.Message}
	}

	return &auth, nil
}

// handleRequestError converts transport failures to user-friendly messages
func (c *Client) handleRequestError(ctx context.Context, err error) error {
	if ctx.Err() == context.Canceled {
		return fmt.Errorf("request canceled")
	}
	if ctx.Err() == context.DeadlineExceeded {
		return fmt.Errorf("request timed out")
	}
	return fmt.Errorf("cannot reach server at %s: %w", c.baseURL, err)
}
