package handlers

import (
	"net/http"

	"marketdash/internal/workflow"

	"github.com/gin-gonic/gin"
)

// POST /api/ratings
func (s *Server) SubmitRating(c *gin.Context) {
	var req workflow.RatingRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if err := s.orders(c).SubmitRating(requestContext(c), req); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "rating submitted"})
}

// POST /api/reports
func (s *Server) SubmitReport(c *gin.Context) {
	var req workflow.ReportRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if err := s.orders(c).SubmitReport(requestContext(c), req); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "report submitted"})
}

// PUT /api/settings
func (s *Server) UpdateSettings(c *gin.Context) {
	var settings map[string]any
	if !BindJSONOrError(c, &settings) {
		return
	}
	if err := s.orders(c).UpdateSettings(requestContext(c), settings); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "settings updated"})
}
