package aggregate

import (
	"strings"
	"time"

	"marketdash/internal/domain"
	"marketdash/internal/utils"

	"github.com/shopspring/decimal"
)

// Sources holds the five admin collections an overview is computed from.
// A source that failed to load is passed as an empty slice.
type Sources struct {
	Users       []domain.Record
	Products    []domain.Record
	Orders      []domain.Record
	Payments    []domain.Record
	Withdrawals []domain.Record
}

// Overview is the admin KPI summary. Money fields are exact unrounded sums;
// Money and utils.FormatMoney give their two-decimal display form.
type Overview struct {
	TotalBuyerDeposits     decimal.Decimal `json:"total_buyer_deposits"`
	PendingDepositRequests int             `json:"pending_deposit_requests"`
	AdminWithdrawn         decimal.Decimal `json:"admin_withdrawn"`
	SellerWithdrawn        decimal.Decimal `json:"seller_withdrawn"`
	ActiveListings         int             `json:"active_listings"`
	PendingListings        int             `json:"pending_listings"`
	CompletedSales         decimal.Decimal `json:"completed_sales"`
	PlatformProfit         decimal.Decimal `json:"platform_profit"`
	OrdersByStatus         map[string]int  `json:"orders_by_status"`
	UsersByRole            map[string]int  `json:"users_by_role"`
	TotalUsers             int             `json:"total_users"`
	TotalProducts          int             `json:"total_products"`
	TotalOrders            int             `json:"total_orders"`
	FailedSources          []string        `json:"failed_sources"`
	GeneratedAt            time.Time       `json:"generated_at"`
}

// BuildOverview aggregates every admin metric from src.
func BuildOverview(src Sources, now time.Time) Overview {
	payments := Aggregate(src.Payments, PaymentMetrics())
	withdrawals := Aggregate(src.Withdrawals, WithdrawalMetrics(src.Users))
	products := Aggregate(src.Products, ProductMetrics())
	orders := Aggregate(src.Orders, OrderMetrics())
	orderCounts := Aggregate(src.Orders, OrderStatusCounts())
	roleCounts := Aggregate(src.Users, UserRoleCounts())

	return Overview{
		TotalBuyerDeposits:     payments.Get(MetricTotalBuyerDeposits),
		PendingDepositRequests: payments.Int(MetricPendingDepositRequests),
		AdminWithdrawn:         withdrawals.Get(MetricAdminWithdrawn),
		SellerWithdrawn:        withdrawals.Get(MetricSellerWithdrawn),
		ActiveListings:         products.Int(MetricActiveListings),
		PendingListings:        products.Int(MetricPendingListings),
		CompletedSales:         orders.Get(MetricCompletedSales),
		PlatformProfit:         orders.Get(MetricPlatformProfit),
		OrdersByStatus:         countsByPrefix(orderCounts, "orders_"),
		UsersByRole:            countsByPrefix(roleCounts, "users_"),
		TotalUsers:             len(src.Users),
		TotalProducts:          len(src.Products),
		TotalOrders:            len(src.Orders),
		FailedSources:          []string{},
		GeneratedAt:            now.UTC(),
	}
}

// Money returns the monetary KPIs formatted for display, in report order.
func (o Overview) Money(symbol string) []KPI {
	return []KPI{
		{Label: "Total buyer deposits", Value: utils.FormatMoney(symbol, o.TotalBuyerDeposits)},
		{Label: "Completed sales", Value: utils.FormatMoney(symbol, o.CompletedSales)},
		{Label: "Platform profit", Value: utils.FormatMoney(symbol, o.PlatformProfit)},
		{Label: "Admin withdrawn", Value: utils.FormatMoney(symbol, o.AdminWithdrawn)},
		{Label: "Seller withdrawn", Value: utils.FormatMoney(symbol, o.SellerWithdrawn)},
	}
}

// KPI is one labelled, display-formatted figure.
type KPI struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// CartSubtotal sums the cart and returns the exact total.
func CartSubtotal(items []domain.Record) decimal.Decimal {
	return Aggregate(items, CartMetrics()).Get(MetricCartSubtotal)
}

func countsByPrefix(r Result, prefix string) map[string]int {
	out := make(map[string]int, len(r))
	for name := range r {
		out[strings.TrimPrefix(name, prefix)] = r.Int(name)
	}
	return out
}
