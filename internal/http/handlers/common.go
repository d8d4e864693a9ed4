package handlers

import (
	"context"
	"net/http"

	"marketdash/internal/gateway"
	"marketdash/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

// RespondError sends a plain error payload with request_id included.
func RespondError(c *gin.Context, status int, message string, err error) {
	payload := gin.H{
		"error":      message,
		"request_id": middleware.GetRequestID(c),
	}
	if err != nil {
		payload["details"] = err.Error()
	}
	c.JSON(status, payload)
}

// BindJSONOrError ensures body is present and parsable.
func BindJSONOrError[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		RespondError(c, http.StatusBadRequest, "request body is empty", nil)
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid payload", err)
		return false
	}
	return true
}

// requestContext carries the request id into marketplace calls.
func requestContext(c *gin.Context) context.Context {
	return gateway.WithRequestID(c.Request.Context(), middleware.GetRequestID(c))
}
