// ABOUTME: Tests for the Gatekey auth API client
// ABOUTME: Uses httptest to mock server responses

package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestLogin_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/login" {
			t.Errorf("expected path /auth/login, got %s", r.URL.Path)
		}
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("expected Content-Type application/json, got %s", ct)
		}

		var req LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("failed to decode request body: %v", err)
		}
		if req.Email != "user@example.com" {
			t.Errorf("expected email user@example.com, got %s", req.Email)
		}
		if req.Password != "secret1" {
			t.Errorf("expected password secret1, got %s", req.Password)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(AuthResponse{
			AccessToken:  "access-token",
			RefreshToken: "refresh-token",
		})
	}))
	defer server.Close()

	c := New(server.URL)
	resp, err := c.Login(context.Background(), "user@example.com", "secret1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.AccessToken != "access-token" {
		t.Errorf("expected access token, got %s", resp.AccessToken)
	}
	if resp.RefreshToken != "refresh-token" {
		t.Errorf("expected refresh token, got %s", resp.RefreshToken)
	}
}

func TestRegister_TrimsName(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/register" {
			t.Errorf("expected path /auth/register, got %s", r.URL.Path)
		}

		var req RegisterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("failed to decode request body: %v", err)
		}
		if req.Name != "Ana" {
			t.Errorf("expected trimmed name Ana, got %q", req.Name)
		}
		if req.Email != "ana@x.com" {
			t.Errorf("expected email ana@x.com, got %s", req.Email)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(AuthResponse{AccessToken: "a", RefreshToken: "b"})
	}))
	defer server.Close()

	c := New(server.URL)
	if _, err := c.Register(context.Background(), "  Ana  ", "ana@x.com", "abcdef"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLogin_ServerRejection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"message": "invalid credentials"})
	}))
	defer server.Close()

	c := New(server.URL)
	_, err := c.Login(context.Background(), "user@example.com", "secret1")
	if err == nil {
		t.Fatal("expected error for 401 response, got nil")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %T", err)
	}
	if apiErr.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected status 401, got %d", apiErr.StatusCode)
	}
	if apiErr.Message != "invalid credentials" {
		t.Errorf("expected message %q, got %q", "invalid credentials", apiErr.Message)
	}
	if apiErr.Error() != "invalid credentials" {
		t.Errorf("expected error text to be the server message, got %q", apiErr.Error())
	}
}

func TestLogin_MessageOnSuccessStatusIsFailure(t *testing.T) {
	// The server signals failure through the message field even on 2xx;
	// the presence of message is the discriminator, not the status code.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(AuthResponse{
			AccessToken:  "a",
			RefreshToken: "b",
			Message:      "stale session",
		})
	}))
	defer server.Close()

	c := New(server.URL)
	resp, err := c.Login(context.Background(), "user@example.com", "secret1")
	if err == nil {
		t.Fatal("expected error for 200 response with message, got nil")
	}
	if resp != nil {
		t.Error("expected nil response on failure")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %T", err)
	}
	if apiErr.Message != "stale session" {
		t.Errorf("expected message %q, got %q", "stale session", apiErr.Message)
	}
}

func TestLogin_RejectionWithoutMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	c := New(server.URL)
	_, err := c.Login(context.Background(), "user@example.com", "secret1")

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %T", err)
	}
	if apiErr.Message != "" {
		t.Errorf("expected empty message, got %q", apiErr.Message)
	}
	if apiErr.Error() == "" {
		t.Error("expected generic fallback error text")
	}
}

func TestLogin_ConnectionError(t *testing.T) {
	c := New("http://localhost:1")
	_, err := c.Login(context.Background(), "user@example.com", "secret1")
	if err == nil {
		t.Fatal("expected connection error, got nil")
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		t.Error("transport failure must not be an APIError")
	}
}

func TestLogin_ContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(AuthResponse{AccessToken: "a", RefreshToken: "b"})
	}))
	defer server.Close()

	c := New(server.URL)
	ctx, cancel := context.WithCancel(context.Background())
	cancel() // Cancel immediately

	_, err := c.Login(ctx, "user@example.com", "secret1")
	if err == nil {
		t.Error("expected error for canceled context, got nil")
	}
}

func TestLogin_ContextTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(AuthResponse{AccessToken: "a", RefreshToken: "b"})
	}))
	defer server.Close()

	c := New(server.URL)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := c.Login(ctx, "user@example.com", "secret1")
	if err == nil {
		t.Error("expected error for timed out context, got nil")
	}
}

func TestNewWithTimeout_GovernsRequests(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(AuthResponse{AccessToken: "a", RefreshToken: "b"})
	}))
	defer server.Close()

	c := NewWithTimeout(server.URL, 20*time.Millisecond)
	_, err := c.Login(context.Background(), "user@example.com", "secret1")
	if err == nil {
		t.Fatal("expected error from a request slower than the configured timeout, got nil")
	}
}

func TestNewWithTimeout_FallsBackToDefault(t *testing.T) {
	if got := NewWithTimeout("http://localhost:3000", 0).httpClient.Timeout; got != DefaultTimeout {
		t.Errorf("expected DefaultTimeout for non-positive timeout, got %v", got)
	}
	if got := NewWithTimeout("http://localhost:3000", 5*time.Second).httpClient.Timeout; got != 5*time.Second {
		t.Errorf("expected 5s timeout, got %v", got)
	}
	if got := New("http://localhost:3000").httpClient.Timeout; got != DefaultTimeout {
		t.Errorf("expected DefaultTimeout from New, got %v", got)
	}
}

func TestLogin_OpaqueUserPassthrough(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"accessToken":"a","refreshToken":"b","user":{"id":42,"plan":"pro"}}`))
	}))
	defer server.Close()

	c := New(server.URL)
	resp, err := c.Login(context.Background(), "user@example.com", "secret1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var user map[string]interface{}
	if err := json.Unmarshal(resp.User, &user); err != nil {
		t.Fatalf("user record is not valid JSON: %v", err)
	}
	if user["plan"] != "pro" {
		t.Errorf("expected user.plan pro, got %v", user["plan"])
	}
}
