//go:build integration
// +build integration

package integration

import (
	"io"
	"net/http"
	"strings"
	"testing"
)

func TestHealthz(t *testing.T) {
	resp := get(t, "/healthz")
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status: %d", resp.StatusCode)
	}
}

func TestPingDependencies(t *testing.T) {
	resp := get(t, "/v1/ping")
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("dependencies unavailable: %d", resp.StatusCode)
	}
}

func TestMetricsExposed(t *testing.T) {
	_ = get(t, "/healthz").Body.Close()

	resp := get(t, "/metrics")
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read metrics: %v", err)
	}
	if !strings.Contains(string(body), "quiz_http_request_duration_seconds") {
		t.Fatal("request histogram missing from /metrics")
	}
}
