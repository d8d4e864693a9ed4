package services

import (
	"context"
	"encoding/json"

	"marketdash/internal/domain/models"
	"marketdash/internal/gateway"
	"marketdash/internal/poller"
)

// Marketplace is the remote API surface the services use. *gateway.Client
// implements it; tests substitute fakes.
type Marketplace interface {
	poller.Source
	GetCart(ctx context.Context, buyerID string) ([]models.RawCartItem, error)
	GetShipment(ctx context.Context, id string) (models.RawShipment, error)
	UpdateOrderStatus(ctx context.Context, orderID, status string) error
	UpdateDeliveryStatus(ctx context.Context, orderID, deliveryStatus string) error
	RemoveCartItem(ctx context.Context, itemID string) error
	Checkout(ctx context.Context, payload gateway.CheckoutPayload) (json.RawMessage, error)
	SubmitRating(ctx context.Context, payload gateway.RatingPayload) error
	SubmitReport(ctx context.Context, payload gateway.ReportPayload) error
	UpdateSettings(ctx context.Context, settings map[string]any) error
}

var _ Marketplace = (*gateway.Client)(nil)
