package handlers

import (
	"fmt"
	"net/http"

	"marketdash/internal/domain"
	"marketdash/internal/export"
	"marketdash/internal/http/middleware"
	"marketdash/internal/services"
	"marketdash/internal/utils"

	"github.com/gin-gonic/gin"
)

// ListRecords serves one page of a filtered, sorted list view.
// GET /api/{products|orders|payments|withdrawals|users}
func (s *Server) ListRecords(kind domain.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		q, err := services.ParseListQuery(kind, c.Request.URL.Query(), s.env().PageSize(kind))
		if err != nil {
			RespondDomainError(c, err)
			return
		}
		res, err := s.listing(c).List(requestContext(c), q)
		if err != nil {
			RespondDomainError(c, err)
			return
		}
		c.JSON(http.StatusOK, res)
	}
}

// ExportRecords downloads the whole filtered view.
// GET /api/{kind}/export?format=csv|json|xlsx
func (s *Server) ExportRecords(kind domain.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		format, err := export.ParseFormat(c.Query("format"))
		if err != nil {
			RespondDomainError(c, err)
			return
		}
		q, err := services.ParseListQuery(kind, c.Request.URL.Query(), s.env().PageSize(kind))
		if err != nil {
			RespondDomainError(c, err)
			return
		}
		records, err := s.listing(c).Filtered(requestContext(c), q)
		if err != nil {
			RespondDomainError(c, err)
			return
		}
		body, err := export.Bytes(format, kind, records, s.env().CurrencySymbol)
		if err != nil {
			RespondDomainError(c, err)
			return
		}
		name := format.Filename(kind, s.now().Format("20060102_150405"))
		utils.LogEvent(middleware.GetRequestID(c), "export", "download", fmt.Sprintf("kind=%s format=%s rows=%d", kind, format, len(records)))
		c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, name))
		c.Data(http.StatusOK, format.ContentType(), body)
	}
}
