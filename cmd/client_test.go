package cmd

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
)

func TestNewClientReadsTokenFromEnv(t *testing.T) {
	t.Setenv(tokenEnv, "env-token")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer env-token" {
			t.Errorf("unexpected authorization header: %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status": "healthy", "timestamp": "2024-01-01T00:00:00"}`))
	}))
	defer server.Close()

	client, err := newClient(&ServiceConfig{URL: server.URL}, zap.NewNop())
	if err != nil {
		t.Fatalf("newClient: %v", err)
	}

	status, err := client.Health(context.Background())
	if err != nil {
		t.Fatalf("health: %v", err)
	}
	if !status.Healthy() {
		t.Fatalf("expected healthy status, got %+v", status)
	}
}

func TestNewClientInlineTokenLosesToEnv(t *testing.T) {
	t.Setenv(tokenEnv, "env-token")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer env-token" {
			t.Errorf("unexpected authorization header: %q", got)
		}
		w.Write([]byte(`{"status": "healthy"}`))
	}))
	defer server.Close()

	client, err := newClient(&ServiceConfig{URL: server.URL, Token: "inline", MaxRetries: 2}, zap.NewNop())
	if err != nil {
		t.Fatalf("newClient: %v", err)
	}
	if client.MaxRetries != 2 {
		t.Fatalf("expected max retries override, got %d", client.MaxRetries)
	}

	if _, err := client.Health(context.Background()); err != nil {
		t.Fatalf("health: %v", err)
	}
}
