package services

import (
	"context"
	"fmt"
	"strings"

	"marketdash/internal/domain"
	"marketdash/internal/gateway"
	"marketdash/internal/normalize"
	"marketdash/internal/utils"
	"marketdash/internal/workflow"
)

// OrderService forwards order, delivery and feedback actions. Inputs are
// checked locally before any remote call; the remote API stays authoritative.
type OrderService struct {
	API       Marketplace
	RequestID string
}

func (s OrderService) UpdateStatus(ctx context.Context, orderID string, req workflow.OrderStatusRequest) error {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return domain.ValidationError{Field: "id", Msg: "is required"}
	}
	if err := workflow.ValidateOrderStatus(&req); err != nil {
		return err
	}
	if err := s.API.UpdateOrderStatus(ctx, orderID, req.Status); err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "orders", "update_status", fmt.Sprintf("order_id=%s status=%s", orderID, req.Status))
	return nil
}

// AdvanceDelivery applies ev to the order's current delivery state and
// forwards the new state.
func (s OrderService) AdvanceDelivery(ctx context.Context, orderID string, ev workflow.DeliveryEvent) (workflow.DeliveryState, error) {
	order, err := s.findOrder(ctx, orderID)
	if err != nil {
		return "", err
	}
	next, err := workflow.NextForOrder(order, ev)
	if err != nil {
		return "", err
	}
	if err := s.API.UpdateDeliveryStatus(ctx, order.ID, string(next)); err != nil {
		return "", err
	}
	utils.LogEvent(s.RequestID, "orders", "delivery_"+string(ev), fmt.Sprintf("order_id=%s state=%s", order.ID, next))
	return next, nil
}

func (s OrderService) findOrder(ctx context.Context, orderID string) (domain.Record, error) {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return domain.Record{}, domain.ValidationError{Field: "id", Msg: "is required"}
	}
	raws, err := s.API.ListOrders(ctx)
	if err != nil {
		return domain.Record{}, err
	}
	for _, rec := range normalize.Orders(raws) {
		if rec.ID == orderID {
			return rec, nil
		}
	}
	return domain.Record{}, domain.NotFoundError{Resource: "order"}
}

// ShipmentProgress renders the stepper for a shipment.
func (s OrderService) ShipmentProgress(ctx context.Context, shipmentID string) (workflow.Progress, error) {
	raw, err := s.API.GetShipment(ctx, shipmentID)
	if err != nil {
		return workflow.Progress{}, err
	}
	return workflow.Render(normalize.Shipment(raw)), nil
}

func (s OrderService) SubmitRating(ctx context.Context, req workflow.RatingRequest) error {
	if err := workflow.ValidateRating(&req); err != nil {
		return err
	}
	if req.Dispute != "" && !req.Dispute.Known() {
		utils.LogEvent(s.RequestID, "ratings", "unknown_dispute_status", string(req.Dispute))
	}
	return s.API.SubmitRating(ctx, gateway.RatingPayload{
		OrderID: req.OrderID,
		Stars:   req.Stars,
		Comment: req.Comment,
		Dispute: req.Dispute,
	})
}

func (s OrderService) SubmitReport(ctx context.Context, req workflow.ReportRequest) error {
	if err := workflow.ValidateReport(&req); err != nil {
		return err
	}
	return s.API.SubmitReport(ctx, gateway.ReportPayload{
		TargetID: req.TargetID,
		Reason:   req.Reason,
		Details:  strings.TrimSpace(req.Details),
	})
}

func (s OrderService) UpdateSettings(ctx context.Context, settings map[string]any) error {
	if len(settings) == 0 {
		return domain.ValidationError{Field: "settings", Msg: "is required"}
	}
	return s.API.UpdateSettings(ctx, settings)
}
