package handler

import (
	"net/http"

	"github.com/ZcashUsersGroup/zdabe/internal/logger"
	"github.com/gin-gonic/gin"
)

// internalError 记录错误详情并返回统一的500响应, 内部信息不外泄
func internalError(c *gin.Context, err error) {
	logger.Error("Request %s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}
