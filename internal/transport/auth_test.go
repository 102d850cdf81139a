package transport

import (
	"net/http"
	"testing"
)

// TestHeaderAuth tests custom header authentication.
func TestHeaderAuth(t *testing.T) {
	auth := &HeaderAuth{Header: "X-Custom-Key"}
	req := &http.Request{Header: make(http.Header)}

	auth.Apply(req, "test-api-key")

	if got := req.Header.Get("X-Custom-Key"); got != "test-api-key" {
		t.Errorf("Expected X-Custom-Key header 'test-api-key', got '%s'", got)
	}
	if req.Header.Get("Authorization") != "" {
		t.Error("Should not have Authorization header")
	}
}

// TestAPIKeyAuth tests the default KappaML header.
func TestAPIKeyAuth(t *testing.T) {
	req := &http.Request{Header: make(http.Header)}

	APIKeyAuth().Apply(req, "kml-123")

	if got := req.Header.Get("X-API-Key"); got != "kml-123" {
		t.Errorf("Expected X-API-Key header 'kml-123', got '%s'", got)
	}
}

// TestHeaderAuthEmptyKey tests that an empty key adds nothing.
func TestHeaderAuthEmptyKey(t *testing.T) {
	req := &http.Request{Header: make(http.Header)}

	(&HeaderAuth{}).Apply(req, "")

	if len(req.Header) != 0 {
		t.Errorf("Expected no headers with empty key, got %d", len(req.Header))
	}
}
