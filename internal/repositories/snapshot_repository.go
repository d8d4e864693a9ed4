package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"marketdash/internal/aggregate"
	intconfig "marketdash/internal/config"
	intdb "marketdash/internal/db"

	"github.com/shopspring/decimal"
)

const snapshotTable = "kpi_snapshots"

// Snapshot is one stored overview tick.
type Snapshot struct {
	ID                     int64           `json:"id"`
	GeneratedAt            time.Time       `json:"generated_at"`
	TotalBuyerDeposits     decimal.Decimal `json:"total_buyer_deposits"`
	PendingDepositRequests int             `json:"pending_deposit_requests"`
	AdminWithdrawn         decimal.Decimal `json:"admin_withdrawn"`
	SellerWithdrawn        decimal.Decimal `json:"seller_withdrawn"`
	ActiveListings         int             `json:"active_listings"`
	PendingListings        int             `json:"pending_listings"`
	CompletedSales         decimal.Decimal `json:"completed_sales"`
	PlatformProfit         decimal.Decimal `json:"platform_profit"`
	FailedSources          []string        `json:"failed_sources"`
}

// SnapshotRepository keeps overview history in MySQL.
type SnapshotRepository struct {
	DB *sql.DB
}

func (r SnapshotRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// EnsureSchema creates kpi_snapshots when it is missing.
func (r SnapshotRepository) EnsureSchema(ctx context.Context) error {
	db := r.db()
	if db == nil {
		return errors.New("database not connected")
	}
	if intdb.HasTable(ctx, db, snapshotTable) {
		return nil
	}
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS `+snapshotTable+` (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			generated_at DATETIME(3) NOT NULL,
			total_buyer_deposits DECIMAL(24,6) NOT NULL DEFAULT 0,
			pending_deposit_requests INT NOT NULL DEFAULT 0,
			admin_withdrawn DECIMAL(24,6) NOT NULL DEFAULT 0,
			seller_withdrawn DECIMAL(24,6) NOT NULL DEFAULT 0,
			active_listings INT NOT NULL DEFAULT 0,
			pending_listings INT NOT NULL DEFAULT 0,
			completed_sales DECIMAL(24,6) NOT NULL DEFAULT 0,
			platform_profit DECIMAL(24,6) NOT NULL DEFAULT 0,
			failed_sources VARCHAR(255) NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			INDEX idx_kpi_snapshots_generated_at (generated_at)
		)`)
	if err != nil {
		return fmt.Errorf("create %s: %w", snapshotTable, err)
	}
	return nil
}

// Save inserts one row for o. It satisfies poller.SnapshotSaver.
func (r SnapshotRepository) Save(ctx context.Context, o aggregate.Overview) error {
	db := r.db()
	if db == nil || !intdb.HasTable(ctx, db, snapshotTable) {
		return fmt.Errorf("table %s not found", snapshotTable)
	}
	_, err := db.ExecContext(ctx, `
		INSERT INTO `+snapshotTable+` (
			generated_at, total_buyer_deposits, pending_deposit_requests,
			admin_withdrawn, seller_withdrawn, active_listings, pending_listings,
			completed_sales, platform_profit, failed_sources
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		o.GeneratedAt.UTC(),
		o.TotalBuyerDeposits,
		o.PendingDepositRequests,
		o.AdminWithdrawn,
		o.SellerWithdrawn,
		o.ActiveListings,
		o.PendingListings,
		o.CompletedSales,
		o.PlatformProfit,
		intdb.NullIfEmpty(strings.Join(o.FailedSources, ",")),
	)
	if err != nil {
		return fmt.Errorf("insert %s: %w", snapshotTable, err)
	}
	return nil
}

// ListRecent returns up to limit snapshots, newest first.
func (r SnapshotRepository) ListRecent(ctx context.Context, limit int) ([]Snapshot, error) {
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	db := r.db()
	if db == nil || !intdb.HasTable(ctx, db, snapshotTable) {
		return []Snapshot{}, nil
	}
	rows, err := db.QueryContext(ctx, `
		SELECT id, generated_at, total_buyer_deposits, pending_deposit_requests,
			admin_withdrawn, seller_withdrawn, active_listings, pending_listings,
			completed_sales, platform_profit, COALESCE(failed_sources,'')
		FROM `+snapshotTable+`
		ORDER BY generated_at DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", snapshotTable, err)
	}
	defer rows.Close()

	out := []Snapshot{}
	for rows.Next() {
		var (
			s      Snapshot
			failed string
		)
		if err := rows.Scan(
			&s.ID,
			&s.GeneratedAt,
			&s.TotalBuyerDeposits,
			&s.PendingDepositRequests,
			&s.AdminWithdrawn,
			&s.SellerWithdrawn,
			&s.ActiveListings,
			&s.PendingListings,
			&s.CompletedSales,
			&s.PlatformProfit,
			&failed,
		); err != nil {
			return nil, err
		}
		s.FailedSources = []string{}
		if failed != "" {
			s.FailedSources = strings.Split(failed, ",")
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
