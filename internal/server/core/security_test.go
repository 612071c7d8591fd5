package core

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestConnRateLimiter_AllowsWithinLimit(t *testing.T) {
	t.Parallel()

	rl := NewConnRateLimiter(5, time.Minute)
	for i := 0; i < 5; i++ {
		assert.True(t, rl.Allow("1.2.3.4"), "connection %d should pass", i+1)
	}
}

func TestConnRateLimiter_BansOnBurst(t *testing.T) {
	t.Parallel()

	rl := NewConnRateLimiter(3, time.Minute)
	for i := 0; i < 3; i++ {
		assert.True(t, rl.Allow("1.2.3.4"))
	}

	// Over the limit: banned for the configured duration
	assert.False(t, rl.Allow("1.2.3.4"))
	assert.False(t, rl.Allow("1.2.3.4"))

	// Other IPs are unaffected
	assert.True(t, rl.Allow("5.6.7.8"))
}

func TestMessageRateLimiter(t *testing.T) {
	t.Parallel()

	ml := NewMessageRateLimiter(3)
	for i := 0; i < 3; i++ {
		assert.True(t, ml.Allow("c1"))
	}

	assert.False(t, ml.Allow("c1"))
	assert.False(t, ml.Allow("c1"))
	assert.Equal(t, 2, ml.WarningCount("c1"))

	// Unknown and removed clients have no warnings
	assert.Zero(t, ml.WarningCount("ghost"))
	ml.RemoveClient("c1")
	assert.Zero(t, ml.WarningCount("c1"))
	assert.True(t, ml.Allow("c1"))
}

func TestOriginChecker(t *testing.T) {
	t.Parallel()

	oc := NewOriginChecker([]string{"https://uno.example.com"})

	req := httptest.NewRequest(http.MethodGet, "/ws", nil)
	req.Header.Set("Origin", "https://uno.example.com")
	assert.True(t, oc.Check(req))

	req.Header.Set("Origin", "HTTPS://UNO.EXAMPLE.COM")
	assert.True(t, oc.Check(req), "origin comparison is case-insensitive")

	req.Header.Set("Origin", "https://evil.example.com")
	assert.False(t, oc.Check(req))

	// No Origin header means a non-browser client
	req.Header.Del("Origin")
	assert.True(t, oc.Check(req))
}

func TestOriginChecker_Wildcard(t *testing.T) {
	t.Parallel()

	oc := NewOriginChecker([]string{"*"})
	req := httptest.NewRequest(http.MethodGet, "/ws", nil)
	req.Header.Set("Origin", "https://anywhere.example.com")
	assert.True(t, oc.Check(req))
}

func TestGetClientIP(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/ws", nil)
	req.RemoteAddr = "10.0.0.1:51234"
	assert.Equal(t, "10.0.0.1", GetClientIP(req))

	req.Header.Set("X-Real-IP", "20.0.0.2")
	assert.Equal(t, "20.0.0.2", GetClientIP(req))

	// X-Forwarded-For wins, first hop is the client
	req.Header.Set("X-Forwarded-For", "30.0.0.3, 40.0.0.4")
	assert.Equal(t, "30.0.0.3", GetClientIP(req))
}
