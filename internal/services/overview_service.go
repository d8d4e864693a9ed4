package services

import (
	"context"

	"marketdash/internal/aggregate"
	"marketdash/internal/export"
	"marketdash/internal/poller"
	"marketdash/internal/repositories"
)

// SnapshotLister reads stored overview history.
type SnapshotLister interface {
	ListRecent(ctx context.Context, limit int) ([]repositories.Snapshot, error)
}

// OverviewService serves the polled admin overview and its reports.
type OverviewService struct {
	Refresher *poller.Refresher
	History   SnapshotLister
	Symbol    string
	RequestID string
}

// Current returns the last applied overview, refreshing once when none exists yet.
func (s OverviewService) Current(ctx context.Context) aggregate.Overview {
	if ov, ok := s.Refresher.Latest(); ok {
		return ov
	}
	ov, _ := s.Refresher.Refresh(ctx, s.RequestID)
	return ov
}

// Refresh forces a new poll. applied is false when a newer refresh overtook it.
func (s OverviewService) Refresh(ctx context.Context) (aggregate.Overview, bool) {
	return s.Refresher.Refresh(ctx, s.RequestID)
}

// Money is Current formatted for display.
func (s OverviewService) Money(ctx context.Context) []aggregate.KPI {
	return s.Current(ctx).Money(s.Symbol)
}

// Snapshots lists stored history; empty when no store is configured.
func (s OverviewService) Snapshots(ctx context.Context, limit int) ([]repositories.Snapshot, error) {
	if s.History == nil {
		return []repositories.Snapshot{}, nil
	}
	return s.History.ListRecent(ctx, limit)
}

func (s OverviewService) ReportPDF(ctx context.Context) ([]byte, string, error) {
	return export.OverviewPDF(s.Current(ctx), s.Symbol)
}

func (s OverviewService) ReportXLSX(ctx context.Context) ([]byte, string, error) {
	return export.OverviewXLSX(s.Current(ctx), s.Symbol)
}
