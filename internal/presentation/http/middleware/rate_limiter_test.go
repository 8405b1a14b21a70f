package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func rateLimitedRouter(rl *UserRateLimiter, userID uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/test",
		func(c *gin.Context) { c.Set("user_id", userID) },
		rl.Middleware(),
		func(c *gin.Context) { c.Status(http.StatusOK) },
	)
	return router
}

func TestRateLimiterBlocksAfterBurst(t *testing.T) {
	rl := NewUserRateLimiter(RateLimiterConfig{
		RequestsPerSecond: 0.001,
		BurstSize:         2,
		CleanupInterval:   time.Minute,
		EntryTTL:          time.Minute,
	})
	router := rateLimitedRouter(rl, uuid.New())

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d, want 200", i+1, w.Code)
		}
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429 after burst", w.Code)
	}
	if w.Header().Get("Retry-After") == "" {
		t.Error("missing Retry-After header")
	}
}

func TestRateLimiterIsPerUser(t *testing.T) {
	rl := NewUserRateLimiter(RateLimiterConfig{
		RequestsPerSecond: 0.001,
		BurstSize:         1,
		CleanupInterval:   time.Minute,
		EntryTTL:          time.Minute,
	})
	routerA := rateLimitedRouter(rl, uuid.New())
	routerB := rateLimitedRouter(rl, uuid.New())

	w := httptest.NewRecorder()
	routerA.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("first user: status = %d", w.Code)
	}

	w = httptest.NewRecorder()
	routerA.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("first user not limited: status = %d", w.Code)
	}

	// Another user's budget is untouched.
	w = httptest.NewRecorder()
	routerB.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("second user: status = %d", w.Code)
	}
}

func TestRateLimiterPassesUnauthenticated(t *testing.T) {
	rl := NewUserRateLimiter(RateLimiterConfig{
		RequestsPerSecond: 0.001,
		BurstSize:         1,
		CleanupInterval:   time.Minute,
		EntryTTL:          time.Minute,
	})

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/test", rl.Middleware(), func(c *gin.Context) { c.Status(http.StatusOK) })

	// No user_id in the context: auth middleware handles rejection, the
	// limiter stays out of the way.
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d, want 200", i+1, w.Code)
		}
	}
}

func TestCleanupEvictsStaleEntries(t *testing.T) {
	rl := NewUserRateLimiter(RateLimiterConfig{
		RequestsPerSecond: 1,
		BurstSize:         1,
		CleanupInterval:   time.Hour,
		EntryTTL:          time.Nanosecond,
	})

	rl.getLimiter(uuid.New())
	rl.getLimiter(uuid.New())

	time.Sleep(time.Millisecond)
	rl.cleanup()

	rl.mu.RLock()
	n := len(rl.limiters)
	rl.mu.RUnlock()
	if n != 0 {
		t.Errorf("entries after cleanup = %d, want 0", n)
	}
}
