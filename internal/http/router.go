package api

import (
	"log"
	stdhttp "net/http"

	"marketdash/internal/domain"
	h "marketdash/internal/http/handlers"
	"marketdash/internal/http/middleware"
	"marketdash/internal/workflow"

	"github.com/gin-gonic/gin"
)

var listKinds = map[string]domain.Kind{
	"products":    domain.KindProduct,
	"orders":      domain.KindOrder,
	"payments":    domain.KindPayment,
	"withdrawals": domain.KindWithdrawal,
	"users":       domain.KindUser,
}

// NewRouter wires every route onto srv. CORS origins are fixed at startup.
func NewRouter(srv *h.Server) *gin.Engine {
	env := srv.Config()

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger("/api/health"), gin.Recovery(), middleware.CORS(env.CORSAllowedOrigins))

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)
		api.GET("/routes", h.Routes)

		api.POST("/auth/login", srv.Login)

		// List views and exports
		for path, kind := range listKinds {
			api.GET("/"+path, srv.ListRecords(kind))
			api.GET("/"+path+"/export", srv.ExportRecords(kind))
		}

		// Cart
		api.GET("/cart", srv.GetCart)
		api.DELETE("/cart/items/:id", srv.RemoveCartItem)
		api.POST("/checkout", srv.Checkout)

		// Orders & delivery
		orders := api.Group("/orders/:id")
		orders.PUT("/status", srv.UpdateOrderStatus)
		orders.POST("/delivery/send", srv.AdvanceDelivery(workflow.EventSend))
		orders.POST("/delivery/confirm", srv.AdvanceDelivery(workflow.EventConfirm))

		api.GET("/shipments/:id/progress", srv.ShipmentProgress)

		// Feedback & settings
		api.POST("/ratings", srv.SubmitRating)
		api.POST("/reports", srv.SubmitReport)
		api.PUT("/settings", srv.UpdateSettings)

		// Admin overview
		admin := api.Group("/admin", middleware.RequireAdmin(func() string { return srv.Config().JWTSecret }))
		admin.GET("/overview", srv.Overview)
		admin.POST("/overview/refresh", srv.RefreshOverview)
		admin.GET("/overview/history", srv.OverviewHistory)
		admin.GET("/overview/report.pdf", srv.OverviewReportPDF)
		admin.GET("/overview/report.xlsx", srv.OverviewReportXLSX)
	}

	return r
}
