package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClientIPPrefersForwardedFor(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "10.0.0.1:1234"
	r.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")

	require.Equal(t, "203.0.113.7", ClientIP(r))
}

func TestClientIPSkipsInvalidForwardedEntries(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "10.0.0.1:1234"
	r.Header.Set("X-Forwarded-For", "not-an-ip, 203.0.113.7")

	require.Equal(t, "203.0.113.7", ClientIP(r))
}

func TestClientIPUsesRealIPHeader(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "10.0.0.1:1234"
	r.Header.Set("X-Real-IP", "203.0.113.9")

	require.Equal(t, "203.0.113.9", ClientIP(r))
}

func TestClientIPStripsPortFromRemoteAddr(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "203.0.113.7:5555"

	require.Equal(t, "203.0.113.7", ClientIP(r))
}

func TestClientIPFallsBackToRawRemoteAddr(t *testing.T) {
	// Without a port and without proxy headers the raw value is still
	// returned so each client keeps its own rate bucket.
	r := httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "203.0.113.7"
	require.Equal(t, "203.0.113.7", ClientIP(r))

	r = httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "pipe-17"
	require.Equal(t, "pipe-17", ClientIP(r))
	require.NotEmpty(t, ClientIP(r))
}
