package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"marketdash/internal/aggregate"
	"marketdash/internal/http/middleware"
	"marketdash/internal/utils"

	"github.com/gin-gonic/gin"
)

// overviewResponse carries the exact decimal totals plus a *_display string
// for each, formatted to two decimals. Clients should render the display
// fields and keep the raw ones for arithmetic.
type overviewResponse struct {
	aggregate.Overview
	TotalBuyerDepositsDisplay string          `json:"total_buyer_deposits_display"`
	AdminWithdrawnDisplay     string          `json:"admin_withdrawn_display"`
	SellerWithdrawnDisplay    string          `json:"seller_withdrawn_display"`
	CompletedSalesDisplay     string          `json:"completed_sales_display"`
	PlatformProfitDisplay     string          `json:"platform_profit_display"`
	KPIs                      []aggregate.KPI `json:"kpis"`
}

func newOverviewResponse(ov aggregate.Overview, symbol string) overviewResponse {
	return overviewResponse{
		Overview:                  ov,
		TotalBuyerDepositsDisplay: utils.FormatMoney(symbol, ov.TotalBuyerDeposits),
		AdminWithdrawnDisplay:     utils.FormatMoney(symbol, ov.AdminWithdrawn),
		SellerWithdrawnDisplay:    utils.FormatMoney(symbol, ov.SellerWithdrawn),
		CompletedSalesDisplay:     utils.FormatMoney(symbol, ov.CompletedSales),
		PlatformProfitDisplay:     utils.FormatMoney(symbol, ov.PlatformProfit),
		KPIs:                      ov.Money(symbol),
	}
}

// GET /api/admin/overview
func (s *Server) Overview(c *gin.Context) {
	svc := s.overview(c)
	ov := svc.Current(requestContext(c))
	c.JSON(http.StatusOK, newOverviewResponse(ov, svc.Symbol))
}

// POST /api/admin/overview/refresh
func (s *Server) RefreshOverview(c *gin.Context) {
	svc := s.overview(c)
	admin := middleware.GetAdminSubject(c)
	ov, applied := svc.Refresh(requestContext(c))
	utils.LogEvent(svc.RequestID, "admin", "refresh_overview", fmt.Sprintf("admin=%s applied=%t", admin, applied))
	c.JSON(http.StatusOK, gin.H{
		"applied":      applied,
		"requested_by": admin,
		"overview":     newOverviewResponse(ov, svc.Symbol),
	})
}

// GET /api/admin/overview/history?limit=
func (s *Server) OverviewHistory(c *gin.Context) {
	limit := 50
	if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			RespondError(c, http.StatusBadRequest, "limit must be a positive number", nil)
			return
		}
		limit = n
	}
	snaps, err := s.overview(c).Snapshots(c.Request.Context(), limit)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"snapshots": snaps})
}

// GET /api/admin/overview/report.pdf
func (s *Server) OverviewReportPDF(c *gin.Context) {
	svc := s.overview(c)
	body, name, err := svc.ReportPDF(requestContext(c))
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to build report", err)
		return
	}
	utils.LogEvent(svc.RequestID, "admin", "report_download", fmt.Sprintf("admin=%s file=%s", middleware.GetAdminSubject(c), name))
	c.Header("Content-Disposition", fmt.Sprintf(`inline; filename="%s"`, name))
	c.Data(http.StatusOK, "application/pdf", body)
}

// GET /api/admin/overview/report.xlsx
func (s *Server) OverviewReportXLSX(c *gin.Context) {
	svc := s.overview(c)
	body, name, err := svc.ReportXLSX(requestContext(c))
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to build report", err)
		return
	}
	utils.LogEvent(svc.RequestID, "admin", "report_download", fmt.Sprintf("admin=%s file=%s", middleware.GetAdminSubject(c), name))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, name))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", body)
}
