package handlers

import (
	"errors"
	"net/http"

	"marketdash/internal/domain"
	"marketdash/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

// ErrorResponse standardizes error payloads.
type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"`
	Details   any    `json:"details,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

func respondError(c *gin.Context, status int, code, message string, details any) {
	if code == "" {
		code = http.StatusText(status)
	}
	c.JSON(status, ErrorResponse{
		Error:     message,
		Code:      code,
		Details:   details,
		RequestID: middleware.GetRequestID(c),
	})
}

// RespondDomainError maps domain errors to HTTP responses. Upstream failures
// keep the marketplace's own message.
func RespondDomainError(c *gin.Context, err error) {
	var validation domain.ValidationError
	var upstream domain.UpstreamError
	switch {
	case errors.As(err, &validation):
		respondError(c, http.StatusBadRequest, "validation_error", err.Error(), gin.H{"field": validation.Field})
	case domain.IsNotFound(err):
		respondError(c, http.StatusNotFound, "not_found", err.Error(), nil)
	case domain.IsConflict(err):
		respondError(c, http.StatusConflict, "conflict", err.Error(), nil)
	case errors.As(err, &upstream):
		var details any
		if upstream.Status != 0 {
			details = gin.H{"upstream_status": upstream.Status}
		}
		respondError(c, http.StatusBadGateway, "upstream_error", upstream.Error(), details)
	default:
		respondError(c, http.StatusInternalServerError, "internal_error", "something went wrong", nil)
	}
}
