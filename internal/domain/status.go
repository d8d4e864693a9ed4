package domain

// Known status taxonomies. Values are stored lower-cased.
const (
	OrderPending   = "pending"
	OrderCompleted = "completed"
	OrderCancelled = "cancelled"
	OrderRefunded  = "refunded"
	OrderDisputed  = "disputed"

	PaymentSuccessful = "successful"
	PaymentCompleted  = "completed"
	PaymentFailed     = "failed"
	PaymentCancelled  = "cancelled"
	PaymentPending    = "pending"

	WithdrawalPending   = "pending"
	WithdrawalApproved  = "approved"
	WithdrawalSuccess   = "success"
	WithdrawalCompleted = "completed"
	WithdrawalRejected  = "rejected"
	WithdrawalFailed    = "failed"

	ProductActive   = "active"
	ProductPending  = "pending"
	ProductSold     = "sold"
	ProductInactive = "inactive"
	ProductRejected = "rejected"

	RoleAdmin  = "admin"
	RoleSeller = "seller"
	RoleBuyer  = "buyer"

	UserActive    = "active"
	UserPending   = "pending"
	UserSuspended = "suspended"
)

// FacetAll is the facet value that disables a facet.
const FacetAll = "all"

var knownStatuses = map[Kind]map[string]struct{}{
	KindOrder:      set(OrderPending, OrderCompleted, OrderCancelled, OrderRefunded, OrderDisputed),
	KindPayment:    set(PaymentSuccessful, PaymentCompleted, PaymentFailed, PaymentCancelled, PaymentPending),
	KindWithdrawal: set(WithdrawalPending, WithdrawalApproved, WithdrawalSuccess, WithdrawalCompleted, WithdrawalRejected, WithdrawalFailed),
	KindProduct:    set(ProductActive, ProductPending, ProductSold, ProductInactive, ProductRejected),
	KindUser:       set(UserActive, UserPending, UserSuspended),
	KindShipment:   set("placed", "confirmed", "packed", "in_transit", "out_for_delivery", "delivered"),
}

func set(values ...string) map[string]struct{} {
	out := make(map[string]struct{}, len(values))
	for _, v := range values {
		out[v] = struct{}{}
	}
	return out
}

// IsKnownStatus reports whether status belongs to the closed set for kind.
// Kinds without a taxonomy (cart items) accept any status.
func IsKnownStatus(kind Kind, status string) bool {
	known, ok := knownStatuses[kind]
	if !ok {
		return true
	}
	_, ok = known[status]
	return ok
}

// DisputeStatus is the workflow status of a rating dispute or report.
// The remote API treats it as free-form, so unknown values are kept as-is.
type DisputeStatus string

const (
	DisputeSubmitted   DisputeStatus = "submitted"
	DisputeUnderReview DisputeStatus = "under_review"
	DisputeResolved    DisputeStatus = "resolved"
	DisputeRefunded    DisputeStatus = "refunded"
)

// Known reports whether s is one of the recognised dispute statuses.
func (s DisputeStatus) Known() bool {
	switch s {
	case DisputeSubmitted, DisputeUnderReview, DisputeResolved, DisputeRefunded:
		return true
	}
	return false
}
