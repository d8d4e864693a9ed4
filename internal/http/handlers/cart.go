package handlers

import (
	"net/http"

	"marketdash/internal/workflow"

	"github.com/gin-gonic/gin"
)

// GET /api/cart?buyer_id=
func (s *Server) GetCart(c *gin.Context) {
	view, err := s.cart(c).View(requestContext(c), c.Query("buyer_id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// DELETE /api/cart/items/:id
func (s *Server) RemoveCartItem(c *gin.Context) {
	if err := s.cart(c).RemoveItem(requestContext(c), c.Param("id")); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "item removed", "id": c.Param("id")})
}

// POST /api/checkout
// The marketplace response (payment link or wallet receipt) is passed through as is.
func (s *Server) Checkout(c *gin.Context) {
	var req workflow.CheckoutRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	out, err := s.cart(c).Checkout(requestContext(c), req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if len(out) == 0 {
		c.JSON(http.StatusOK, gin.H{"message": "checkout submitted"})
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", out)
}
