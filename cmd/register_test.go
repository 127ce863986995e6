// ABOUTME: Tests for the register command
// ABOUTME: Verifies exit codes, name trimming, and validation

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gatekeyhq/gatekey-cli/internal/client"
)

func TestRunRegister_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/register" {
			t.Errorf("expected path /auth/register, got %s", r.URL.Path)
		}

		var req client.RegisterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		if req.Name != "Ana" {
			t.Errorf("expected trimmed name Ana, got %q", req.Name)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(client.AuthResponse{AccessToken: "a", RefreshToken: "b"})
	}))
	defer server.Close()

	var buf bytes.Buffer
	exitCode := runRegister(context.Background(), client.New(server.URL), &buf, "  Ana  ", "ana@x.com", "abcdef", false)

	if exitCode != 0 {
		t.Errorf("expected exit code 0, got %d", exitCode)
	}
	if !strings.Contains(buf.String(), "Account created for Ana") {
		t.Errorf("expected creation confirmation, got %q", buf.String())
	}
}

func TestRunRegister_BlankName(t *testing.T) {
	var buf bytes.Buffer
	exitCode := runRegister(context.Background(), client.New("http://localhost:1"), &buf, "   ", "ana@x.com", "abcdef", false)

	if exitCode != 2 {
		t.Errorf("expected exit code 2 for blank name, got %d", exitCode)
	}
}

func TestRunRegister_ServerRejection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]string{"message": "email already registered"})
	}))
	defer server.Close()

	var buf bytes.Buffer
	exitCode := runRegister(context.Background(), client.New(server.URL), &buf, "Ana", "ana@x.com", "abcdef", false)

	if exitCode != 1 {
		t.Errorf("expected exit code 1 for rejection, got %d", exitCode)
	}
	if !strings.Contains(buf.String(), "email already registered") {
		t.Errorf("expected server message in output, got %q", buf.String())
	}
}

func TestValidateName(t *testing.T) {
	if err := validateName("Ana"); err != nil {
		t.Errorf("unexpected error for valid name: %v", err)
	}
	if err := validateName("   "); err == nil {
		t.Error("expected error for blank name")
	}
}

func TestValidateEmail(t *testing.T) {
	if err := validateEmail("user@example.com"); err != nil {
		t.Errorf("unexpected error for valid email: %v", err)
	}
	if err := validateEmail("nope"); err == nil {
		t.Error("expected error for invalid email")
	}
}

func TestValidatePassword(t *testing.T) {
	if err := validatePassword("secret1"); err != nil {
		t.Errorf("unexpected error for valid password: %v", err)
	}
	if err := validatePassword("short"); err == nil {
		t.Error("expected error for short password")
	}
}
