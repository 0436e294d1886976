package router

import (
	"time"

	"github.com/ZcashUsersGroup/zdabe/internal/logger"
	"github.com/ZcashUsersGroup/zdabe/internal/metrics"
	"github.com/gin-gonic/gin"
)

// 对外接口统一携带的响应头
const (
	apiVersion        = "v1"
	cacheControlValue = "public, max-age=30"
)

// apiVersionMiddleware 所有响应携带 X-API-Version 头
func apiVersionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-API-Version", apiVersion)
		c.Next()
	}
}

// cacheControlMiddleware 对外查询接口携带短时缓存头
func cacheControlMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", cacheControlValue)
		c.Next()
	}
}

// accessLogMiddleware 记录访问日志并上报请求指标
func accessLogMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		logger.Info("%s %s %d %v %s",
			c.Request.Method, c.Request.URL.Path, status, time.Since(start), c.ClientIP())

		// 指标按注册路由聚合, 避免标签基数膨胀
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		metrics.HTTPRequest(path, c.Request.Method, status)
	}
}
