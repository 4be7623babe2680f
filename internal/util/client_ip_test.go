package util

import (
	"net/http/httptest"
	"testing"
)

func TestClientIPIgnoresForwardedByDefault(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "203.0.113.7:51234"
	r.Header.Set("X-Forwarded-For", "198.51.100.1")
	if got := ClientIP(r, false); got != "203.0.113.7" {
		t.Fatalf("client ip = %q, want peer address", got)
	}
}

func TestClientIPTrustsForwardedWhenConfigured(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "10.0.0.2:443"
	r.Header.Set("X-Forwarded-For", "198.51.100.1, 10.0.0.2")
	if got := ClientIP(r, true); got != "198.51.100.1" {
		t.Fatalf("client ip = %q, want first forwarded entry", got)
	}
}

func TestClientIPFallsBackToRealIP(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "10.0.0.2:443"
	r.Header.Set("X-Real-IP", "198.51.100.9")
	if got := ClientIP(r, true); got != "198.51.100.9" {
		t.Fatalf("client ip = %q, want X-Real-IP value", got)
	}
}
