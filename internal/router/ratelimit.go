package router

import (
	"net/http"
	"sync"
	"time"

	"github.com/ZcashUsersGroup/zdabe/internal/logger"
	"github.com/ZcashUsersGroup/zdabe/internal/metrics"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// clientLimiter 单个客户端的令牌桶与最近访问时间
type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter 按客户端IP限流
type RateLimiter struct {
	mu      sync.Mutex
	clients map[string]*clientLimiter
	perMin  int
	burst   int
}

// NewRateLimiter 创建IP限流器, requestsPerMinute 为每分钟允许的请求数
func NewRateLimiter(requestsPerMinute, burst int) *RateLimiter {
	rl := &RateLimiter{
		clients: make(map[string]*clientLimiter),
		perMin:  requestsPerMinute,
		burst:   burst,
	}

	// 定期清除长时间未访问的客户端
	go rl.cleanup()

	return rl
}

// allow 判断该IP本次请求是否放行
func (rl *RateLimiter) allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	entry, ok := rl.clients[ip]
	if !ok {
		entry = &clientLimiter{
			limiter: rate.NewLimiter(rate.Limit(float64(rl.perMin)/60.0), rl.burst),
		}
		rl.clients[ip] = entry
	}
	entry.lastSeen = time.Now()

	return entry.limiter.Allow()
}

// cleanup 每分钟清除三分钟内无访问的客户端
func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		rl.mu.Lock()
		cutoff := time.Now().Add(-3 * time.Minute)
		for ip, entry := range rl.clients {
			if entry.lastSeen.Before(cutoff) {
				delete(rl.clients, ip)
			}
		}
		rl.mu.Unlock()
	}
}

// Middleware 超出限额时返回429并中断请求
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if !rl.allow(ip) {
			logger.Warn("Rate limit exceeded for %s on %s", ip, c.Request.URL.Path)
			metrics.RateLimited()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"message": "Too many requests, please try again later.",
			})
			return
		}
		c.Next()
	}
}
