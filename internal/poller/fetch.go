// Package poller keeps the admin overview fresh. It fans out to the five admin
// sources, joins on all of them and applies results last-request-wins.
package poller

import (
	"context"
	"fmt"
	"sync"

	"marketdash/internal/aggregate"
	"marketdash/internal/domain"
	"marketdash/internal/domain/models"
	"marketdash/internal/normalize"
	"marketdash/internal/utils"

	"golang.org/x/sync/errgroup"
)

// Source names, in report order.
const (
	SourceUsers       = "users"
	SourceProducts    = "products"
	SourceOrders      = "orders"
	SourcePayments    = "payments"
	SourceWithdrawals = "withdrawals"
)

// Source is the read side of the marketplace API the overview needs.
type Source interface {
	ListUsers(ctx context.Context) ([]models.RawUser, error)
	ListProducts(ctx context.Context) ([]models.RawProduct, error)
	ListOrders(ctx context.Context) ([]models.RawOrder, error)
	ListPayments(ctx context.Context) ([]models.RawPayment, error)
	ListWithdrawals(ctx context.Context) ([]models.RawWithdrawal, error)
}

// FetchAll loads the five sources concurrently and waits for all of them.
// A failed source contributes an empty list and is named in failed.
func FetchAll(ctx context.Context, src Source, requestID string) (out aggregate.Sources, failed []string) {
	var (
		g       errgroup.Group
		mu      sync.Mutex
		errByID = map[string]error{}
	)
	record := func(name string, err error) {
		mu.Lock()
		errByID[name] = err
		mu.Unlock()
	}

	g.Go(func() error {
		raws, err := src.ListUsers(ctx)
		out.Users = collect(raws, err, normalize.Users)
		record(SourceUsers, err)
		return nil
	})
	g.Go(func() error {
		raws, err := src.ListProducts(ctx)
		out.Products = collect(raws, err, normalize.Products)
		record(SourceProducts, err)
		return nil
	})
	g.Go(func() error {
		raws, err := src.ListOrders(ctx)
		out.Orders = collect(raws, err, normalize.Orders)
		record(SourceOrders, err)
		return nil
	})
	g.Go(func() error {
		raws, err := src.ListPayments(ctx)
		out.Payments = collect(raws, err, normalize.Payments)
		record(SourcePayments, err)
		return nil
	})
	g.Go(func() error {
		raws, err := src.ListWithdrawals(ctx)
		out.Withdrawals = collect(raws, err, normalize.Withdrawals)
		record(SourceWithdrawals, err)
		return nil
	})
	_ = g.Wait()

	failed = []string{}
	for _, name := range []string{SourceUsers, SourceProducts, SourceOrders, SourcePayments, SourceWithdrawals} {
		if err := errByID[name]; err != nil {
			failed = append(failed, name)
			utils.LogEvent(requestID, "poller", "source_failed", fmt.Sprintf("source=%s err=%v", name, err))
		}
	}
	return out, failed
}

func collect[T any](raws []T, err error, fn func([]T) []domain.Record) []domain.Record {
	if err != nil {
		return []domain.Record{}
	}
	return fn(raws)
}
