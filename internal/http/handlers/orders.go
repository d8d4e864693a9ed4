package handlers

import (
	"net/http"

	"marketdash/internal/workflow"

	"github.com/gin-gonic/gin"
)

// PUT /api/orders/:id/status
func (s *Server) UpdateOrderStatus(c *gin.Context) {
	var req workflow.OrderStatusRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if err := s.orders(c).UpdateStatus(requestContext(c), c.Param("id"), req); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": c.Param("id"), "status": req.Status})
}

// AdvanceDelivery handles POST /api/orders/:id/delivery/{send|confirm}.
func (s *Server) AdvanceDelivery(ev workflow.DeliveryEvent) gin.HandlerFunc {
	return func(c *gin.Context) {
		state, err := s.orders(c).AdvanceDelivery(requestContext(c), c.Param("id"), ev)
		if err != nil {
			RespondDomainError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": c.Param("id"), "delivery_status": state})
	}
}

// GET /api/shipments/:id/progress
func (s *Server) ShipmentProgress(c *gin.Context) {
	p, err := s.orders(c).ShipmentProgress(requestContext(c), c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}
