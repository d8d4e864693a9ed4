// Package normalize turns raw marketplace API records into domain.Record.
// Every function here is pure and total: malformed fields degrade to a
// default value and are listed in Record.Flags instead of failing.
package normalize

import (
	"strconv"
	"strings"

	"marketdash/internal/domain"
	"marketdash/internal/domain/models"
	"marketdash/internal/utils"

	"github.com/shopspring/decimal"
)

// Record re-applies the canonical rules to an already shaped record.
// Normalizing twice yields the same record.
func Record(r domain.Record) domain.Record {
	r.ID = strings.TrimSpace(r.ID)
	r.Status = utils.NormalizeStatus(r.Status)
	r.Role = utils.NormalizeStatus(r.Role)
	r.Delivery = utils.NormalizeStatus(r.Delivery)
	r.UserID = strings.TrimSpace(r.UserID)
	r.DateRaw = strings.TrimSpace(r.DateRaw)

	if r.ID == "" {
		r.Flags = addFlag(r.Flags, domain.FlagID)
	}
	if r.Kind == domain.KindUser {
		if strings.TrimSpace(r.Name) == "" {
			r.Name = domain.FallbackName
		}
		if strings.TrimSpace(r.Phone) == "" {
			r.Phone = domain.FallbackPhone
		}
	}
	if r.Date == nil && r.DateRaw != "" && !r.HasFlag(domain.FlagDate) {
		if t, ok := utils.ParseISO(r.DateRaw); ok {
			r.Date = &t
		} else {
			r.Flags = addFlag(r.Flags, domain.FlagDate)
		}
	}
	return r
}

func Product(raw models.RawProduct) domain.Record {
	r := domain.Record{
		ID:          recordID(raw.ID, raw.MongoID),
		Kind:        domain.KindProduct,
		Status:      raw.Status.String(),
		Category:    raw.Category.String(),
		Title:       raw.Title.String(),
		Description: raw.Description.String(),
		UserID:      raw.SellerID.String(),
		DateRaw:     raw.CreatedAt.String(),
	}
	r.Amount, r.Flags = money(raw.Price, domain.FlagAmount, true, r.Flags)
	r.Fee = decimal.Zero
	return Record(r)
}

func Order(raw models.RawOrder) domain.Record {
	r := domain.Record{
		ID:        recordID(raw.ID, raw.MongoID),
		Kind:      domain.KindOrder,
		Status:    raw.Status.String(),
		Title:     raw.ProductTitle.String(),
		Email:     raw.BuyerEmail.String(),
		Reference: raw.Reference.String(),
		UserID:    raw.BuyerID.String(),
		Delivery:  raw.DeliveryStatus.String(),
		DateRaw:   raw.CreatedAt.String(),
	}
	r.Amount, r.Flags = money(raw.Amount, domain.FlagAmount, true, r.Flags)
	r.Fee, r.Flags = money(raw.Commission, domain.FlagFee, false, r.Flags)
	return Record(r)
}

func Payment(raw models.RawPayment) domain.Record {
	r := domain.Record{
		ID:        recordID(raw.ID, raw.MongoID),
		Kind:      domain.KindPayment,
		Status:    raw.Status.String(),
		Category:  raw.Provider.String(),
		Email:     raw.CustomerEmail.String(),
		Reference: utils.FirstNonEmpty(raw.Reference.String(), raw.TransactionID.String()),
		UserID:    raw.UserID.String(),
		Credited:  bool(raw.Credited),
		DateRaw:   raw.CreatedAt.String(),
	}
	r.Amount, r.Flags = money(raw.Amount, domain.FlagAmount, true, r.Flags)
	r.Fee = decimal.Zero
	return Record(r)
}

func Withdrawal(raw models.RawWithdrawal) domain.Record {
	r := domain.Record{
		ID:          recordID(raw.ID, raw.MongoID),
		Kind:        domain.KindWithdrawal,
		Status:      raw.Status.String(),
		Title:       raw.BankName.String(),
		Description: raw.AccountNumber.String(),
		Reference:   raw.Reference.String(),
		UserID:      raw.UserID.String(),
		DateRaw:     raw.CreatedAt.String(),
	}
	r.Amount, r.Flags = money(raw.Amount, domain.FlagAmount, true, r.Flags)
	r.Fee = decimal.Zero
	return Record(r)
}

func User(raw models.RawUser) domain.Record {
	r := domain.Record{
		ID:      recordID(raw.ID, raw.MongoID),
		Kind:    domain.KindUser,
		Status:  raw.Status.String(),
		Name:    utils.Fallback(raw.Name.String(), domain.FallbackName),
		Email:   raw.Email.String(),
		Phone:   utils.Fallback(raw.Phone.String(), domain.FallbackPhone),
		Role:    raw.Role.String(),
		Amount:  decimal.Zero,
		Fee:     decimal.Zero,
		DateRaw: raw.CreatedAt.String(),
	}
	return Record(r)
}

func CartItem(raw models.RawCartItem) domain.Record {
	r := domain.Record{
		ID:        recordID(raw.ID, raw.MongoID),
		Kind:      domain.KindCartItem,
		Title:     raw.Title.String(),
		Reference: raw.ProductID.String(),
		Fee:       decimal.Zero,
		DateRaw:   raw.AddedAt.String(),
	}
	r.Amount, r.Flags = money(raw.Price, domain.FlagAmount, true, r.Flags)
	return Record(r)
}

func Shipment(raw models.RawShipment) domain.Record {
	r := domain.Record{
		ID:        recordID(raw.ID, raw.MongoID),
		Kind:      domain.KindShipment,
		Status:    raw.Status.String(),
		Name:      raw.Recipient.String(),
		Reference: raw.TrackingNumber.String(),
		Amount:    decimal.Zero,
		Fee:       decimal.Zero,
		DateRaw:   raw.UpdatedAt.String(),
	}
	if raw.CurrentStep.Set {
		if n, err := strconv.Atoi(strings.TrimSpace(raw.CurrentStep.Raw)); err == nil {
			r.CurrentStep = n
		}
	}
	return Record(r)
}

// Products normalizes a whole collection, preserving order. The other plural
// helpers below do the same for their kinds.
func Products(raws []models.RawProduct) []domain.Record { return mapAll(raws, Product) }

func Orders(raws []models.RawOrder) []domain.Record { return mapAll(raws, Order) }

func Payments(raws []models.RawPayment) []domain.Record { return mapAll(raws, Payment) }

func Withdrawals(raws []models.RawWithdrawal) []domain.Record { return mapAll(raws, Withdrawal) }

func Users(raws []models.RawUser) []domain.Record { return mapAll(raws, User) }

func CartItems(raws []models.RawCartItem) []domain.Record { return mapAll(raws, CartItem) }

func mapAll[T any](raws []T, fn func(T) domain.Record) []domain.Record {
	out := make([]domain.Record, 0, len(raws))
	for _, raw := range raws {
		out = append(out, fn(raw))
	}
	return out
}

func recordID(id, mongoID models.FlexString) string {
	return utils.FirstNonEmpty(id.String(), mongoID.String())
}

// money parses n, defaulting to zero. A required field that is absent is
// flagged so that amount predicates fail closed on it.
func money(n models.FlexNumber, field string, required bool, flags []string) (decimal.Decimal, []string) {
	if !n.Set || strings.TrimSpace(n.Raw) == "" {
		if required {
			return decimal.Zero, addFlag(flags, field)
		}
		return decimal.Zero, flags
	}
	amount, ok := utils.ParseAmount(n.Raw)
	if !ok {
		return decimal.Zero, addFlag(flags, field)
	}
	return amount, flags
}

func addFlag(flags []string, field string) []string {
	for _, f := range flags {
		if f == field {
			return flags
		}
	}
	return append(flags, field)
}
