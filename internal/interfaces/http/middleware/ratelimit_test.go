package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func limitedRouter(mw gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(mw)
	router.Any("/probe", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	return router
}

func hitFrom(router *gin.Engine, method, ip string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, "/probe", nil)
	req.RemoteAddr = ip + ":12345"
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRateLimiter(t *testing.T) {
	t.Run("enforces the limit per key", func(t *testing.T) {
		limiter := NewRateLimiter(3, time.Minute)

		for i := 0; i < 3; i++ {
			assert.True(t, limiter.Allow("buyer-1"), "request %d should pass", i+1)
		}
		assert.False(t, limiter.Allow("buyer-1"))

		// Another key has its own budget
		assert.True(t, limiter.Allow("buyer-2"))
	})

	t.Run("budget resets after the window", func(t *testing.T) {
		limiter := NewRateLimiter(1, 50*time.Millisecond)

		assert.True(t, limiter.Allow("buyer-1"))
		assert.False(t, limiter.Allow("buyer-1"))

		time.Sleep(60 * time.Millisecond)
		assert.True(t, limiter.Allow("buyer-1"))
	})

	t.Run("remaining tracks spent tokens", func(t *testing.T) {
		limiter := NewRateLimiter(5, time.Minute)

		assert.Equal(t, 5, limiter.Remaining("fresh"))
		limiter.Allow("fresh")
		limiter.Allow("fresh")
		assert.Equal(t, 3, limiter.Remaining("fresh"))
	})

	t.Run("never exceeds the limit under concurrency", func(t *testing.T) {
		limiter := NewRateLimiter(100, time.Minute)

		var (
			wg      sync.WaitGroup
			mu      sync.Mutex
			allowed int
		)
		for i := 0; i < 150; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if limiter.Allow("shared") {
					mu.Lock()
					allowed++
					mu.Unlock()
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, 100, allowed)
	})
}

func TestRateLimitMiddleware(t *testing.T) {
	t.Run("returns 429 past the limit", func(t *testing.T) {
		router := limitedRouter(RateLimit(NewRateLimiter(2, time.Minute)))

		for i := 0; i < 2; i++ {
			assert.Equal(t, http.StatusOK, hitFrom(router, http.MethodGet, "10.0.0.1").Code)
		}

		w := hitFrom(router, http.MethodGet, "10.0.0.1")
		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.Contains(t, w.Body.String(), "RATE_LIMITED")
	})

	t.Run("authenticated requests are keyed per user", func(t *testing.T) {
		limiter := NewRateLimiter(1, time.Minute)

		gin.SetMode(gin.TestMode)
		router := gin.New()
		router.Use(func(c *gin.Context) {
			c.Set(JWTUserIDKey, c.GetHeader("X-Test-User"))
		})
		router.Use(RateLimit(limiter))
		router.GET("/probe", func(c *gin.Context) {
			c.String(http.StatusOK, "ok")
		})

		hitAs := func(user string) int {
			req := httptest.NewRequest(http.MethodGet, "/probe", nil)
			req.Header.Set("X-Test-User", user)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			return w.Code
		}

		assert.Equal(t, http.StatusOK, hitAs("user-1"))
		assert.Equal(t, http.StatusTooManyRequests, hitAs("user-1"))
		// Same IP, different account, separate budget
		assert.Equal(t, http.StatusOK, hitAs("user-2"))
	})
}

func TestAuthRateLimit(t *testing.T) {
	t.Run("blocks with Retry-After past the limit", func(t *testing.T) {
		router := limitedRouter(AuthRateLimit(NewRateLimiter(2, time.Minute)))

		for i := 0; i < 2; i++ {
			assert.Equal(t, http.StatusOK, hitFrom(router, http.MethodPost, "10.0.0.1").Code)
		}

		w := hitFrom(router, http.MethodPost, "10.0.0.1")
		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.Contains(t, w.Body.String(), "Too many authentication attempts")
		assert.Equal(t, "60", w.Header().Get("Retry-After"))
	})

	t.Run("exposes rate limit headers", func(t *testing.T) {
		router := limitedRouter(AuthRateLimit(NewRateLimiter(5, time.Minute)))

		w := hitFrom(router, http.MethodPost, "10.0.0.1")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "5", w.Header().Get("X-RateLimit-Limit"))
		assert.Equal(t, "4", w.Header().Get("X-RateLimit-Remaining"))
	})

	t.Run("budgets are per client IP", func(t *testing.T) {
		router := limitedRouter(AuthRateLimit(NewRateLimiter(1, time.Minute)))

		assert.Equal(t, http.StatusOK, hitFrom(router, http.MethodPost, "10.0.0.1").Code)
		assert.Equal(t, http.StatusTooManyRequests, hitFrom(router, http.MethodPost, "10.0.0.1").Code)
		assert.Equal(t, http.StatusOK, hitFrom(router, http.MethodPost, "10.0.0.2").Code)
	})

	t.Run("auth budget is isolated from the global limiter", func(t *testing.T) {
		// Same IP and same limiter: only the auth: key prefix keeps the
		// two budgets apart
		limiter := NewRateLimiter(1, time.Minute)

		gin.SetMode(gin.TestMode)
		router := gin.New()
		auth := router.Group("/auth")
		auth.Use(AuthRateLimit(limiter))
		auth.POST("/login", func(c *gin.Context) {
			c.String(http.StatusOK, "ok")
		})
		api := router.Group("/api")
		api.Use(RateLimit(limiter))
		api.GET("/data", func(c *gin.Context) {
			c.String(http.StatusOK, "ok")
		})

		hit := func(method, target string) int {
			req := httptest.NewRequest(method, target, nil)
			req.RemoteAddr = "10.0.0.1:12345"
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			return w.Code
		}

		assert.Equal(t, http.StatusOK, hit(http.MethodPost, "/auth/login"))
		assert.Equal(t, http.StatusTooManyRequests, hit(http.MethodPost, "/auth/login"))
		assert.Equal(t, http.StatusOK, hit(http.MethodGet, "/api/data"))
	})
}
