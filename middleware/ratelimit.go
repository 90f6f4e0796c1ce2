package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// Fixed-window per-IP limiter. Analysis runs are CPU-bound and fan out five
// store reads each, so the ceiling is deliberately lower than a plain CRUD
// API would use.
type rateLimiter struct {
	clients map[string]*clientWindow
	mu      sync.Mutex
	limit   int
	window  time.Duration
}

type clientWindow struct {
	count   int
	resetAt time.Time
}

var limiter = &rateLimiter{
	clients: make(map[string]*clientWindow),
	limit:   60,
	window:  time.Minute,
}

func init() {
	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			limiter.cleanup()
		}
	}()
}

func RateLimiter() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		now := time.Now()

		limiter.mu.Lock()
		client, exists := limiter.clients[ip]
		if !exists || now.After(client.resetAt) {
			limiter.clients[ip] = &clientWindow{count: 1, resetAt: now.Add(limiter.window)}
			limiter.mu.Unlock()
			c.Next()
			return
		}

		if client.count >= limiter.limit {
			retryAfter := client.resetAt.Sub(now).Seconds()
			limiter.mu.Unlock()
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       "Rate limit exceeded",
				"retry_after": retryAfter,
			})
			c.Abort()
			return
		}

		client.count++
		limiter.mu.Unlock()
		c.Next()
	}
}

func (rl *rateLimiter) cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	for ip, client := range rl.clients {
		if now.After(client.resetAt) {
			delete(rl.clients, ip)
		}
	}
}
