package handlers

import (
	"net/http"
	"sync"

	intconfig "marketdash/internal/config"
	intdb "marketdash/internal/db"

	"github.com/gin-gonic/gin"
)

var (
	routerMu sync.RWMutex
	router   *gin.Engine
)

// SetRouter stores the active gin engine for later inspection (e.g., /api/routes).
func SetRouter(r *gin.Engine) {
	routerMu.Lock()
	defer routerMu.Unlock()
	router = r
}

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "marketdash is running"})
}

// DBCheck reports whether the optional snapshot store is reachable.
func DBCheck(c *gin.Context) {
	db := intconfig.DB
	if db == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "snapshot store is not configured"})
		return
	}
	ctx := c.Request.Context()
	if err := db.PingContext(ctx); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database ping failed: " + err.Error()})
		return
	}
	if !intdb.HasTable(ctx, db, "kpi_snapshots") {
		c.JSON(http.StatusOK, gin.H{"message": "database connection OK", "snapshots_table": false})
		return
	}
	var count int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM kpi_snapshots").Scan(&count); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to count snapshots: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "database connection OK", "snapshots_table": true, "snapshots": count})
}

func Routes(c *gin.Context) {
	routerMu.RLock()
	r := router
	routerMu.RUnlock()
	if r == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "router is not ready"})
		return
	}

	routes := r.Routes()
	out := make([]gin.H, 0, len(routes))
	for _, rt := range routes {
		out = append(out, gin.H{
			"method":  rt.Method,
			"path":    rt.Path,
			"handler": rt.Handler,
		})
	}
	c.JSON(http.StatusOK, gin.H{"routes": out})
}
