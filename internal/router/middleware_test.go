package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestResponseHeaders(t *testing.T) {
	r := gin.New()
	r.Use(apiVersionMiddleware())
	r.GET("/plain", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	api := r.Group("/api", cacheControlMiddleware())
	api.GET("/cards", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/cards", nil))
	if got := w.Header().Get("X-API-Version"); got != "v1" {
		t.Fatalf("expected X-API-Version v1, got %q", got)
	}
	if got := w.Header().Get("Cache-Control"); got != "public, max-age=30" {
		t.Fatalf("expected cache header, got %q", got)
	}

	// 版本头全局生效, 缓存头只加在查询接口上
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/plain", nil))
	if got := w.Header().Get("X-API-Version"); got != "v1" {
		t.Fatalf("expected X-API-Version v1, got %q", got)
	}
	if got := w.Header().Get("Cache-Control"); got != "" {
		t.Fatalf("unexpected cache header %q", got)
	}
}
