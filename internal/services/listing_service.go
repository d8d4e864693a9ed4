package services

import (
	"context"
	"fmt"

	"marketdash/internal/domain"
	"marketdash/internal/filter"
	"marketdash/internal/listing"
	"marketdash/internal/normalize"
	"marketdash/internal/utils"
)

// ListResult is a rendered list view. LoadError is set when the source could
// not be fetched; Items is then empty and the caller offers a retry.
type ListResult struct {
	Kind      domain.Kind                 `json:"kind"`
	Sort      listing.SortState           `json:"sort"`
	Page      listing.Page[domain.Record] `json:"page"`
	LoadError string                      `json:"load_error,omitempty"`
}

// ListingService runs fetch, normalize, filter, sort and paginate for one view.
type ListingService struct {
	API       Marketplace
	RequestID string
}

// Fetch loads and normalizes every record of kind.
func (s ListingService) Fetch(ctx context.Context, kind domain.Kind) ([]domain.Record, error) {
	switch kind {
	case domain.KindProduct:
		raws, err := s.API.ListProducts(ctx)
		return normalized(raws, err, normalize.Products)
	case domain.KindOrder:
		raws, err := s.API.ListOrders(ctx)
		return normalized(raws, err, normalize.Orders)
	case domain.KindPayment:
		raws, err := s.API.ListPayments(ctx)
		return normalized(raws, err, normalize.Payments)
	case domain.KindWithdrawal:
		raws, err := s.API.ListWithdrawals(ctx)
		return normalized(raws, err, normalize.Withdrawals)
	case domain.KindUser:
		raws, err := s.API.ListUsers(ctx)
		return normalized(raws, err, normalize.Users)
	}
	return nil, domain.NotFoundError{Resource: fmt.Sprintf("list %q", kind)}
}

func normalized[T any](raws []T, err error, fn func([]T) []domain.Record) ([]domain.Record, error) {
	if err != nil {
		return nil, err
	}
	return fn(raws), nil
}

// List renders one page. Only an unknown kind is returned as an error; a
// fetch failure becomes LoadError.
func (s ListingService) List(ctx context.Context, q ListQuery) (ListResult, error) {
	res := ListResult{Kind: q.Kind, Sort: q.Sort}
	records, err := s.Fetch(ctx, q.Kind)
	if err != nil {
		if domain.IsNotFound(err) {
			return res, err
		}
		utils.LogEvent(s.RequestID, "listing", "fetch_failed", fmt.Sprintf("kind=%s err=%v", q.Kind, err))
		res.LoadError = fmt.Sprintf("failed to load %ss", q.Kind)
		res.Page = listing.Paginate([]domain.Record{}, q.Page, q.PageSize)
		return res, nil
	}
	view := View(records, q.Filter, q.Sort)
	res.Page = listing.Paginate(view, q.Page, q.PageSize)
	return res, nil
}

// Filtered returns the whole filtered and sorted view, unpaginated. Exports
// use it, so a fetch failure is returned instead of rendered.
func (s ListingService) Filtered(ctx context.Context, q ListQuery) ([]domain.Record, error) {
	records, err := s.Fetch(ctx, q.Kind)
	if err != nil {
		return nil, err
	}
	return View(records, q.Filter, q.Sort), nil
}

// View applies filter then sort.
func View(records []domain.Record, f filter.State, sort listing.SortState) []domain.Record {
	return listing.Sort(filter.Apply(records, f), sort.Key, sort.Direction)
}
