package workflow

import (
	"fmt"

	"marketdash/internal/domain"
	"marketdash/internal/utils"
)

// DeliveryState is the seller-side delivery status of an order.
type DeliveryState string

const (
	DeliveryPending    DeliveryState = "pending"
	DeliveryInProgress DeliveryState = "delivery in progress"
	DeliveryDelivered  DeliveryState = "delivered"
)

// DeliveryEvent is a seller or buyer action on a delivery.
type DeliveryEvent string

const (
	EventSend    DeliveryEvent = "send"
	EventConfirm DeliveryEvent = "confirm"
)

// ParseDeliveryState maps the upstream value onto a state. Blank means pending.
func ParseDeliveryState(raw string) (DeliveryState, bool) {
	switch utils.NormalizeStatus(raw) {
	case "", string(DeliveryPending):
		return DeliveryPending, true
	case string(DeliveryInProgress), "in progress", "in_progress":
		return DeliveryInProgress, true
	case string(DeliveryDelivered):
		return DeliveryDelivered, true
	}
	return "", false
}

// Transition applies ev to from. Delivered is terminal; anything off the
// Pending -> In Progress -> Delivered path is a conflict.
func Transition(from DeliveryState, ev DeliveryEvent) (DeliveryState, error) {
	switch {
	case from == DeliveryPending && ev == EventSend:
		return DeliveryInProgress, nil
	case from == DeliveryInProgress && ev == EventConfirm:
		return DeliveryDelivered, nil
	}
	return from, domain.ConflictError{
		Resource: "delivery",
		Msg:      fmt.Sprintf("cannot %s while %s", ev, from),
	}
}

// NextForOrder resolves the delivery state of an order record and applies ev.
func NextForOrder(order domain.Record, ev DeliveryEvent) (DeliveryState, error) {
	from, ok := ParseDeliveryState(order.Delivery)
	if !ok {
		return "", domain.ConflictError{Resource: "delivery", Msg: fmt.Sprintf("unknown delivery status %q", order.Delivery)}
	}
	return Transition(from, ev)
}
