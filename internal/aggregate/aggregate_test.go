package aggregate

import (
	"testing"
	"time"

	"marketdash/internal/domain"
	"marketdash/internal/domain/models"
	"marketdash/internal/normalize"
	"marketdash/internal/utils"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func amount(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestTotalBuyerDepositsUsesStatusOrCredited(t *testing.T) {
	payments := normalize.Payments([]models.RawPayment{
		{ID: "1", Amount: models.Num("100"), Status: "successful", Credited: false},
		{ID: "2", Amount: models.Num("50"), Status: "pending", Credited: true},
		{ID: "3", Amount: models.Num("25"), Status: "failed", Credited: false},
	})

	got := Aggregate(payments, PaymentMetrics())
	assert.True(t, got.Get(MetricTotalBuyerDeposits).Equal(amount("150")), got.Get(MetricTotalBuyerDeposits).String())
	assert.Equal(t, 1, got.Int(MetricPendingDepositRequests))
}

func TestPendingDepositRequestsNeedsBothNegatives(t *testing.T) {
	payments := normalize.Payments([]models.RawPayment{
		{ID: "1", Amount: models.Num("1"), Status: "Completed"},
		{ID: "2", Amount: models.Num("1"), Status: "pending", Credited: true},
		{ID: "3", Amount: models.Num("1"), Status: "pending"},
		{ID: "4", Amount: models.Num("1"), Status: "cancelled"},
		{ID: "5", Amount: models.Num("1"), Status: "weird"},
	})
	got := Aggregate(payments, PaymentMetrics())
	assert.Equal(t, 3, got.Int(MetricPendingDepositRequests))
	assert.True(t, got.Get(MetricTotalBuyerDeposits).Equal(amount("2")))
}

func TestWithdrawalSplitDefaults(t *testing.T) {
	withdrawals := normalize.Withdrawals([]models.RawWithdrawal{
		{ID: "w1", Amount: models.Num("20"), Status: "approved"},
		{ID: "w2", Amount: models.Num("30"), Status: "approved", UserID: "unknown-id"},
	})

	got := Aggregate(withdrawals, WithdrawalMetrics(nil))
	assert.True(t, got.Get(MetricAdminWithdrawn).Equal(amount("20")))
	assert.True(t, got.Get(MetricSellerWithdrawn).Equal(amount("30")))
}

func TestWithdrawalSplitByRole(t *testing.T) {
	users := normalize.Users([]models.RawUser{
		{ID: "u-admin", Role: "Admin"},
		{ID: "u-seller", Role: "seller"},
	})
	withdrawals := normalize.Withdrawals([]models.RawWithdrawal{
		{ID: "w1", Amount: models.Num("10.10"), Status: "Success", UserID: "u-admin"},
		{ID: "w2", Amount: models.Num("5.05"), Status: "completed", UserID: "u-seller"},
		{ID: "w3", Amount: models.Num("99"), Status: "pending", UserID: "u-seller"},
		{ID: "w4", Amount: models.Num("7"), Status: "rejected"},
	})

	got := Aggregate(withdrawals, WithdrawalMetrics(users))
	assert.True(t, got.Get(MetricAdminWithdrawn).Equal(amount("10.10")))
	assert.True(t, got.Get(MetricSellerWithdrawn).Equal(amount("5.05")))
}

func TestCartSubtotalDisplay(t *testing.T) {
	items := normalize.CartItems([]models.RawCartItem{
		{ID: "1", Price: models.Num("4.49")},
		{ID: "2", Price: models.Num("92.00")},
		{ID: "3", Price: models.Num("0.99")},
	})
	assert.Equal(t, "$97.48", utils.FormatMoney("$", CartSubtotal(items)))
}

func TestSumsDoNotDrift(t *testing.T) {
	var raws []models.RawCartItem
	for i := 0; i < 10; i++ {
		raws = append(raws, models.RawCartItem{ID: "x", Price: models.Num("0.1")})
	}
	assert.True(t, CartSubtotal(normalize.CartItems(raws)).Equal(amount("1")))
}

func TestListingCountsAreExact(t *testing.T) {
	products := normalize.Products([]models.RawProduct{
		{ID: "1", Price: models.Num("1"), Status: "active"},
		{ID: "2", Price: models.Num("1"), Status: "Active"},
		{ID: "3", Price: models.Num("1"), Status: "pending"},
		{ID: "4", Price: models.Num("1"), Status: "inactive"},
		{ID: "5", Price: models.Num("1"), Status: "active "},
	})
	got := Aggregate(products, ProductMetrics())
	assert.Equal(t, 3, got.Int(MetricActiveListings))
	assert.Equal(t, 1, got.Int(MetricPendingListings))
}

func TestEmptyInputYieldsZeroes(t *testing.T) {
	got := Aggregate(nil, append(PaymentMetrics(), ProductMetrics()...))
	for _, name := range []string{MetricTotalBuyerDeposits, MetricPendingDepositRequests, MetricActiveListings, MetricPendingListings} {
		assert.True(t, got.Get(name).IsZero(), name)
	}
	assert.True(t, got.Get("never-defined").IsZero())
}

func TestBuildOverview(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	src := Sources{
		Users: normalize.Users([]models.RawUser{
			{ID: "u1", Role: "admin"}, {ID: "u2", Role: "seller"}, {ID: "u3", Role: "buyer"}, {ID: "u4", Role: "buyer"},
		}),
		Products: normalize.Products([]models.RawProduct{
			{ID: "p1", Price: models.Num("3"), Status: "active"},
			{ID: "p2", Price: models.Num("3"), Status: "pending"},
		}),
		Orders: normalize.Orders([]models.RawOrder{
			{ID: "o1", Amount: models.Num("100"), Commission: models.Num("10"), Status: "completed"},
			{ID: "o2", Amount: models.Num("40"), Commission: models.Num("4"), Status: "disputed"},
			{ID: "o3", Amount: models.Num("60.5"), Commission: models.Num("6.05"), Status: "Completed"},
		}),
		Payments: normalize.Payments([]models.RawPayment{
			{ID: "pay1", Amount: models.Num("100"), Status: "successful"},
		}),
		Withdrawals: normalize.Withdrawals([]models.RawWithdrawal{
			{ID: "w1", Amount: models.Num("20"), Status: "approved", UserID: "u2"},
		}),
	}

	o := BuildOverview(src, now)
	assert.True(t, o.TotalBuyerDeposits.Equal(amount("100")))
	assert.True(t, o.CompletedSales.Equal(amount("160.5")))
	assert.True(t, o.PlatformProfit.Equal(amount("16.05")))
	assert.True(t, o.SellerWithdrawn.Equal(amount("20")))
	assert.True(t, o.AdminWithdrawn.IsZero())
	assert.Equal(t, 1, o.ActiveListings)
	assert.Equal(t, 1, o.PendingListings)
	assert.Equal(t, 2, o.OrdersByStatus[domain.OrderCompleted])
	assert.Equal(t, 1, o.OrdersByStatus[domain.OrderDisputed])
	assert.Equal(t, 0, o.OrdersByStatus[domain.OrderRefunded])
	assert.Equal(t, 2, o.UsersByRole[domain.RoleBuyer])
	assert.Equal(t, 4, o.TotalUsers)
	assert.Equal(t, now, o.GeneratedAt)
	assert.Empty(t, o.FailedSources)

	kpis := o.Money("$")
	assert.Equal(t, KPI{Label: "Platform profit", Value: "$16.05"}, kpis[2])
}
