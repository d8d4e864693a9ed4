package repositories

import (
	"context"
	"testing"
	"time"

	"marketdash/internal/aggregate"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func expectSnapshotTable(mock sqlmock.Sqlmock, exists bool) {
	rows := sqlmock.NewRows([]string{"table_name"})
	if exists {
		rows.AddRow(snapshotTable)
	}
	mock.ExpectQuery("information_schema\\.tables").WithArgs(snapshotTable).WillReturnRows(rows)
}

func TestSnapshotEnsureSchemaCreatesMissingTable(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	expectSnapshotTable(mock, false)
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS kpi_snapshots").WillReturnResult(sqlmock.NewResult(0, 0))

	repo := SnapshotRepository{DB: db}
	require.NoError(t, repo.EnsureSchema(context.Background()))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSnapshotEnsureSchemaSkipsExistingTable(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	expectSnapshotTable(mock, true)

	require.NoError(t, SnapshotRepository{DB: db}.EnsureSchema(context.Background()))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSnapshotSave(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	o := aggregate.Overview{
		TotalBuyerDeposits:     decimal.RequireFromString("150"),
		PendingDepositRequests: 1,
		AdminWithdrawn:         decimal.RequireFromString("20"),
		SellerWithdrawn:        decimal.RequireFromString("30"),
		ActiveListings:         4,
		CompletedSales:         decimal.Zero,
		PlatformProfit:         decimal.Zero,
		FailedSources:          []string{"orders", "users"},
		GeneratedAt:            time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
	}

	expectSnapshotTable(mock, true)
	mock.ExpectExec("INSERT INTO kpi_snapshots").
		WithArgs(o.GeneratedAt, "150", 1, "20", "30", 4, 0, "0", "0", "orders,users").
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, SnapshotRepository{DB: db}.Save(context.Background(), o))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSnapshotSaveWithoutTableFails(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	expectSnapshotTable(mock, false)
	err = SnapshotRepository{DB: db}.Save(context.Background(), aggregate.Overview{})
	assert.Error(t, err)
}

func TestSnapshotListRecent(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	at := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	expectSnapshotTable(mock, true)
	mock.ExpectQuery("SELECT id, generated_at").
		WithArgs(50).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "generated_at", "total_buyer_deposits", "pending_deposit_requests",
			"admin_withdrawn", "seller_withdrawn", "active_listings", "pending_listings",
			"completed_sales", "platform_profit", "failed_sources",
		}).
			AddRow(2, at, "150.000000", 1, "20.000000", "30.000000", 4, 2, "160.500000", "16.050000", "").
			AddRow(1, at.Add(-5*time.Second), "100.000000", 0, "0", "0", 3, 0, "0", "0", "orders"))

	list, err := SnapshotRepository{DB: db}.ListRecent(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, int64(2), list[0].ID)
	assert.True(t, list[0].PlatformProfit.Equal(decimal.RequireFromString("16.05")))
	assert.Empty(t, list[0].FailedSources)
	assert.Equal(t, []string{"orders"}, list[1].FailedSources)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSnapshotListWithoutTableIsEmpty(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	expectSnapshotTable(mock, false)
	list, err := SnapshotRepository{DB: db}.ListRecent(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, list)
}
