package aggregate

import (
	"marketdash/internal/domain"
)

// Metric names.
const (
	MetricCartSubtotal           = "cart_subtotal"
	MetricTotalBuyerDeposits     = "total_buyer_deposits"
	MetricPendingDepositRequests = "pending_deposit_requests"
	MetricAdminWithdrawn         = "admin_withdrawn"
	MetricSellerWithdrawn        = "seller_withdrawn"
	MetricActiveListings         = "active_listings"
	MetricPendingListings        = "pending_listings"
	MetricPlatformProfit         = "platform_profit"
	MetricCompletedSales         = "completed_sales"
)

var depositStatus = StatusIn(domain.PaymentSuccessful, domain.PaymentCompleted)

// CartMetrics sums the price of every item in the cart scope.
func CartMetrics() []Definition {
	return []Definition{
		{Name: MetricCartSubtotal, Predicate: All, Accumulator: Sum(Amount)},
	}
}

// PaymentMetrics covers buyer deposits. A payment counts as a deposit when its
// status is successful/completed OR the wallet has credited it; it is a
// pending request only when neither signal is present.
func PaymentMetrics() []Definition {
	return []Definition{
		{Name: MetricTotalBuyerDeposits, Predicate: Or(depositStatus, Credited), Accumulator: Sum(Amount)},
		{Name: MetricPendingDepositRequests, Predicate: And(Not(depositStatus), Not(Credited)), Accumulator: Count()},
	}
}

// ProductMetrics counts listings by exact normalized status.
func ProductMetrics() []Definition {
	return []Definition{
		{Name: MetricActiveListings, Predicate: StatusIs(domain.ProductActive), Accumulator: Count()},
		{Name: MetricPendingListings, Predicate: StatusIs(domain.ProductPending), Accumulator: Count()},
	}
}

// OrderMetrics covers completed sales and the platform commission earned on them.
func OrderMetrics() []Definition {
	completed := StatusIs(domain.OrderCompleted)
	return []Definition{
		{Name: MetricCompletedSales, Predicate: completed, Accumulator: Sum(Amount)},
		{Name: MetricPlatformProfit, Predicate: completed, Accumulator: Sum(Fee)},
	}
}

// OrderStatusCounts counts orders per known status bucket, keyed "orders_<status>".
func OrderStatusCounts() []Definition {
	statuses := []string{domain.OrderPending, domain.OrderCompleted, domain.OrderCancelled, domain.OrderRefunded, domain.OrderDisputed}
	defs := make([]Definition, 0, len(statuses))
	for _, s := range statuses {
		defs = append(defs, Definition{Name: "orders_" + s, Predicate: StatusIs(s), Accumulator: Count()})
	}
	return defs
}

// UserRoleCounts counts users per role, keyed "users_<role>".
func UserRoleCounts() []Definition {
	roles := []string{domain.RoleAdmin, domain.RoleSeller, domain.RoleBuyer}
	defs := make([]Definition, 0, len(roles))
	for _, role := range roles {
		defs = append(defs, Definition{
			Name:        "users_" + role,
			Predicate:   func(r domain.Record) bool { return r.Role == role },
			Accumulator: Count(),
		})
	}
	return defs
}

var paidOut = StatusIn(domain.WithdrawalApproved, domain.WithdrawalSuccess, domain.WithdrawalCompleted)

// WithdrawalMetrics splits paid-out withdrawals between admin and seller by
// the owning user's role. A withdrawal without a user id goes to admin, but
// one whose user id is not found in users goes to seller.
func WithdrawalMetrics(users []domain.Record) []Definition {
	roles := make(map[string]string, len(users))
	for _, u := range users {
		if u.ID != "" {
			roles[u.ID] = u.Role
		}
	}
	isAdmin := func(r domain.Record) bool {
		if r.UserID == "" {
			return true
		}
		role, found := roles[r.UserID]
		if !found {
			return false
		}
		return role == domain.RoleAdmin
	}
	return []Definition{
		{Name: MetricAdminWithdrawn, Predicate: And(paidOut, isAdmin), Accumulator: Sum(Amount)},
		{Name: MetricSellerWithdrawn, Predicate: And(paidOut, Not(isAdmin)), Accumulator: Sum(Amount)},
	}
}
