package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"marketdash/internal/aggregate"
	"marketdash/internal/domain"
	"marketdash/internal/gateway"
	"marketdash/internal/normalize"
	"marketdash/internal/utils"
	"marketdash/internal/workflow"

	"github.com/shopspring/decimal"
)

// CartView is a buyer's cart with its exact and display subtotal.
type CartView struct {
	BuyerID         string          `json:"buyer_id"`
	Items           []domain.Record `json:"items"`
	Count           int             `json:"count"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	SubtotalDisplay string          `json:"subtotal_display"`
}

type CartService struct {
	API       Marketplace
	Symbol    string
	RequestID string
}

// View loads the cart of buyerID. The buyer is an explicit input; nothing
// is read from ambient session state.
func (s CartService) View(ctx context.Context, buyerID string) (CartView, error) {
	buyerID = strings.TrimSpace(buyerID)
	if buyerID == "" {
		return CartView{}, domain.ValidationError{Field: "buyer_id", Msg: "is required"}
	}
	raws, err := s.API.GetCart(ctx, buyerID)
	if err != nil {
		return CartView{}, err
	}
	items := normalize.CartItems(raws)
	subtotal := aggregate.CartSubtotal(items)
	return CartView{
		BuyerID:         buyerID,
		Items:           items,
		Count:           len(items),
		Subtotal:        subtotal,
		SubtotalDisplay: utils.FormatMoney(s.Symbol, subtotal),
	}, nil
}

func (s CartService) RemoveItem(ctx context.Context, itemID string) error {
	itemID = strings.TrimSpace(itemID)
	if itemID == "" {
		return domain.ValidationError{Field: "id", Msg: "is required"}
	}
	if err := s.API.RemoveCartItem(ctx, itemID); err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "cart", "remove_item", "item_id="+itemID)
	return nil
}

// Checkout validates req, prices the selected items from the live cart and
// forwards the payment request. The remote response is returned untouched.
func (s CartService) Checkout(ctx context.Context, req workflow.CheckoutRequest) (json.RawMessage, error) {
	if err := workflow.ValidateCheckout(&req); err != nil {
		return nil, err
	}
	cart, err := s.View(ctx, req.BuyerID)
	if err != nil {
		return nil, err
	}

	items := cart.Items
	if len(req.ItemIDs) > 0 {
		wanted := make(map[string]struct{}, len(req.ItemIDs))
		for _, id := range req.ItemIDs {
			wanted[strings.TrimSpace(id)] = struct{}{}
		}
		items = items[:0:0]
		for _, it := range cart.Items {
			if _, ok := wanted[it.ID]; ok {
				items = append(items, it)
			}
		}
		if len(items) != len(wanted) {
			return nil, domain.ValidationError{Field: "item_ids", Msg: "contains items not in the cart"}
		}
	}
	if len(items) == 0 {
		return nil, domain.ValidationError{Field: "item_ids", Msg: "cart is empty"}
	}

	ids := make([]string, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ID)
	}
	amount := aggregate.CartSubtotal(items)
	out, err := s.API.Checkout(ctx, gateway.CheckoutPayload{
		UserID:   req.BuyerID,
		ItemIDs:  ids,
		Amount:   amount.String(),
		Provider: req.Provider,
		Email:    req.Email,
	})
	if err != nil {
		return nil, err
	}
	utils.LogEvent(s.RequestID, "cart", "checkout", fmt.Sprintf("buyer_id=%s items=%d amount=%s", req.BuyerID, len(ids), amount))
	return out, nil
}
