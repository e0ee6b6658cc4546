package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func postFrom(handler http.Handler, remote string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/test", nil)
	req.RemoteAddr = remote
	handler.ServeHTTP(rec, req)
	return rec
}

func TestRateLimiter_AllowsBurst(t *testing.T) {
	rl := NewRateLimiter(1, 10, time.Minute)
	defer rl.Stop()

	handler := rl.Limit()(okHandler())

	for i := 0; i < 10; i++ {
		rec := postFrom(handler, "1.2.3.4:1234")
		assert.Equal(t, http.StatusOK, rec.Code, "request %d should be allowed", i)
	}
}

func TestRateLimiter_BlocksOverBurst(t *testing.T) {
	rl := NewRateLimiter(0.5, 5, time.Minute)
	defer rl.Stop()

	handler := rl.Limit()(okHandler())

	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, postFrom(handler, "1.2.3.4:1234").Code)
	}

	rec := postFrom(handler, "1.2.3.4:1234")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "2", rec.Header().Get("Retry-After"))
}

func TestRateLimiter_PortIgnored(t *testing.T) {
	rl := NewRateLimiter(0.1, 1, time.Minute)
	defer rl.Stop()

	handler := rl.Limit()(okHandler())

	assert.Equal(t, http.StatusOK, postFrom(handler, "5.5.5.5:1000").Code)
	assert.Equal(t, http.StatusTooManyRequests, postFrom(handler, "5.5.5.5:2000").Code)
}

func TestRateLimiter_DifferentIPsIndependent(t *testing.T) {
	rl := NewRateLimiter(0.1, 2, time.Minute)
	defer rl.Stop()

	handler := rl.Limit()(okHandler())

	for i := 0; i < 2; i++ {
		postFrom(handler, "1.1.1.1:1234")
	}

	assert.Equal(t, http.StatusOK, postFrom(handler, "2.2.2.2:5678").Code)
}

func TestRateLimiter_TokenRefill(t *testing.T) {
	rl := NewRateLimiter(10, 1, time.Minute)
	defer rl.Stop()

	handler := rl.Limit()(okHandler())

	assert.Equal(t, http.StatusOK, postFrom(handler, "3.3.3.3:1234").Code)
	assert.Equal(t, http.StatusTooManyRequests, postFrom(handler, "3.3.3.3:1234").Code)

	time.Sleep(150 * time.Millisecond)

	assert.Equal(t, http.StatusOK, postFrom(handler, "3.3.3.3:1234").Code)
}
