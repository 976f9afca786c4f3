package response

import (
	"net/http"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/d60-Lab/posting/pkg/logger"
)

// Created 201，空响应体
func Created(c *gin.Context) {
	c.Status(http.StatusCreated)
}

// OK 200，空响应体
func OK(c *gin.Context) {
	c.Status(http.StatusOK)
}

// Success 200，JSON 响应体
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// BadRequest 400，错误信息作为纯文本响应体
func BadRequest(c *gin.Context, message string) {
	c.String(http.StatusBadRequest, message)
}

// InternalError 500；记录日志并上报 sentry（若已启用）
func InternalError(c *gin.Context, err error) {
	logger.Error("internal error",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Error(err),
	)
	if hub := sentrygin.GetHubFromContext(c); hub != nil {
		hub.CaptureException(err)
	}
	_ = c.Error(err)
	c.String(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
}
