package workflow

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"marketdash/internal/domain"
	"marketdash/internal/utils"

	"github.com/go-playground/validator/v10"
)

// RatingRequest is a buyer's rating of a completed order.
type RatingRequest struct {
	OrderID string               `json:"order_id" validate:"required"`
	Stars   int                  `json:"stars" validate:"required,min=1,max=5"`
	Comment string               `json:"comment" validate:"max=1000"`
	Dispute domain.DisputeStatus `json:"dispute_status"`
}

// ReportRequest flags a product or order.
type ReportRequest struct {
	TargetID string `json:"target_id" validate:"required"`
	Reason   string `json:"reason" validate:"required,max=200"`
	Details  string `json:"details" validate:"max=2000"`
}

// CheckoutRequest starts payment of the buyer's cart.
type CheckoutRequest struct {
	BuyerID  string   `json:"buyer_id" validate:"required"`
	ItemIDs  []string `json:"item_ids"`
	Provider string   `json:"provider" validate:"required,oneof=flutterwave korapay wallet"`
	Email    string   `json:"email" validate:"omitempty,email"`
}

// OrderStatusRequest changes an order's status.
type OrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func instance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return f.Name
			}
			return name
		})
	})
	return validate
}

// Validate checks v's struct tags and reports the first failure as a
// domain.ValidationError keyed by the JSON field name.
func Validate(v any) error {
	err := instance().Struct(v)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if errors.As(err, &ve) && len(ve) > 0 {
		fe := ve[0]
		return domain.ValidationError{Field: fe.Field(), Msg: messageForTag(fe.Tag(), fe.Param()), Err: err}
	}
	return domain.ValidationError{Msg: "invalid payload", Err: err}
}

func messageForTag(tag, param string) string {
	switch tag {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "min":
		return "must be at least " + param
	case "max":
		return "must be at most " + param
	case "oneof":
		return "must be one of " + param
	default:
		return "is invalid"
	}
}

// ValidateRating also normalizes the optional dispute status. Unknown dispute
// values are passed on unchanged.
func ValidateRating(req *RatingRequest) error {
	req.OrderID = strings.TrimSpace(req.OrderID)
	req.Comment = strings.TrimSpace(req.Comment)
	req.Dispute = domain.DisputeStatus(utils.NormalizeStatus(string(req.Dispute)))
	return Validate(req)
}

func ValidateReport(req *ReportRequest) error {
	req.TargetID = strings.TrimSpace(req.TargetID)
	req.Reason = strings.TrimSpace(req.Reason)
	return Validate(req)
}

func ValidateCheckout(req *CheckoutRequest) error {
	req.BuyerID = strings.TrimSpace(req.BuyerID)
	req.Provider = utils.NormalizeStatus(req.Provider)
	return Validate(req)
}

// ValidateOrderStatus requires a status from the order taxonomy.
func ValidateOrderStatus(req *OrderStatusRequest) error {
	req.Status = utils.NormalizeStatus(req.Status)
	if err := Validate(req); err != nil {
		return err
	}
	if !domain.IsKnownStatus(domain.KindOrder, req.Status) {
		return domain.ValidationError{Field: "status", Msg: "unknown order status " + req.Status}
	}
	return nil
}
