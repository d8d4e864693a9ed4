package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"marketdash/internal/domain"
	"marketdash/internal/domain/models"
)

func (c *Client) ListProducts(ctx context.Context) ([]models.RawProduct, error) {
	return getList[models.RawProduct](ctx, c, "/products", nil)
}

func (c *Client) ListOrders(ctx context.Context) ([]models.RawOrder, error) {
	return getList[models.RawOrder](ctx, c, "/orders", nil)
}

func (c *Client) ListPayments(ctx context.Context) ([]models.RawPayment, error) {
	return getList[models.RawPayment](ctx, c, "/payments", nil)
}

func (c *Client) ListWithdrawals(ctx context.Context) ([]models.RawWithdrawal, error) {
	return getList[models.RawWithdrawal](ctx, c, "/withdrawals", nil)
}

func (c *Client) ListUsers(ctx context.Context) ([]models.RawUser, error) {
	return getList[models.RawUser](ctx, c, "/users", nil)
}

// GetCart lists the cart of buyerID. The buyer is always passed explicitly.
func (c *Client) GetCart(ctx context.Context, buyerID string) ([]models.RawCartItem, error) {
	buyerID = strings.TrimSpace(buyerID)
	if buyerID == "" {
		return nil, domain.ValidationError{Field: "buyer_id", Msg: "is required"}
	}
	return getList[models.RawCartItem](ctx, c, "/cart", url.Values{"userId": {buyerID}})
}

func (c *Client) GetShipment(ctx context.Context, id string) (models.RawShipment, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return models.RawShipment{}, domain.ValidationError{Field: "id", Msg: "is required"}
	}
	path := "/shipments/" + url.PathEscape(id)
	raw, err := c.do(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return models.RawShipment{}, err
	}
	out, err := decodeOne[models.RawShipment](raw)
	if err != nil {
		return models.RawShipment{}, domain.UpstreamError{Err: fmt.Errorf("decode %s: %w", path, err)}
	}
	return out, nil
}

// UpdateOrderStatus forwards a seller/admin order status change.
func (c *Client) UpdateOrderStatus(ctx context.Context, orderID, status string) error {
	_, err := c.do(ctx, http.MethodPut, "/orders/"+url.PathEscape(orderID)+"/status", nil, map[string]string{"status": status})
	return err
}

// UpdateDeliveryStatus records a seller delivery step on the order.
func (c *Client) UpdateDeliveryStatus(ctx context.Context, orderID, deliveryStatus string) error {
	_, err := c.do(ctx, http.MethodPut, "/orders/"+url.PathEscape(orderID)+"/status", nil, map[string]string{"deliveryStatus": deliveryStatus})
	return err
}

func (c *Client) RemoveCartItem(ctx context.Context, itemID string) error {
	_, err := c.do(ctx, http.MethodDelete, "/cart/"+url.PathEscape(itemID), nil, nil)
	return err
}

// CheckoutPayload starts a payment for the buyer's cart.
type CheckoutPayload struct {
	UserID   string   `json:"userId"`
	ItemIDs  []string `json:"itemIds,omitempty"`
	Amount   string   `json:"amount"`
	Provider string   `json:"provider"`
	Email    string   `json:"email,omitempty"`
}

// Checkout returns the remote response untouched; it usually carries a
// payment-gateway redirect link the front-end follows.
func (c *Client) Checkout(ctx context.Context, payload CheckoutPayload) (json.RawMessage, error) {
	raw, err := c.do(ctx, http.MethodPost, "/payments/checkout", nil, payload)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(raw), nil
}

// RatingPayload is a buyer's rating of a completed order, optionally disputing it.
type RatingPayload struct {
	OrderID string               `json:"orderId"`
	Stars   int                  `json:"stars"`
	Comment string               `json:"comment,omitempty"`
	Dispute domain.DisputeStatus `json:"disputeStatus,omitempty"`
}

func (c *Client) SubmitRating(ctx context.Context, payload RatingPayload) error {
	_, err := c.do(ctx, http.MethodPost, "/ratings", nil, payload)
	return err
}

// ReportPayload flags a product or order for admin review.
type ReportPayload struct {
	TargetID string `json:"targetId"`
	Reason   string `json:"reason"`
	Details  string `json:"details,omitempty"`
}

func (c *Client) SubmitReport(ctx context.Context, payload ReportPayload) error {
	_, err := c.do(ctx, http.MethodPost, "/reports", nil, payload)
	return err
}

// UpdateSettings forwards account/platform settings as given.
func (c *Client) UpdateSettings(ctx context.Context, settings map[string]any) error {
	_, err := c.do(ctx, http.MethodPut, "/settings", nil, settings)
	return err
}
