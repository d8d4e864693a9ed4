package poller

import (
	"context"
	"fmt"
	"sync"
	"time"

	"marketdash/internal/aggregate"
	"marketdash/internal/utils"
)

// DefaultInterval is the overview poll period when none is configured.
const DefaultInterval = 5 * time.Second

// SnapshotSaver persists an applied overview. Optional.
type SnapshotSaver interface {
	Save(ctx context.Context, o aggregate.Overview) error
}

// Refresher owns the last applied overview. Each refresh is numbered; starting
// one cancels the one in flight, and a result whose number is no longer the
// latest issued, or whose context ended before it finished, is dropped.
type Refresher struct {
	Source    Source
	Snapshots SnapshotSaver
	Now       func() time.Time

	mu         sync.RWMutex
	seq        uint64
	cancelPrev context.CancelFunc
	latest     *aggregate.Overview
	stopped    bool
	inflight   sync.WaitGroup

	schedMu   sync.Mutex
	scheduler Scheduler
	interval  time.Duration
	stopTick  func()
}

func NewRefresher(src Source, snapshots SnapshotSaver) *Refresher {
	return &Refresher{Source: src, Snapshots: snapshots, Now: utils.NowUTC}
}

func (r *Refresher) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return utils.NowUTC()
}

// Refresh fetches every source, aggregates, and applies the overview if no
// newer refresh was started meanwhile and ctx is still live. applied reports
// whether it was. After Stop nothing is fetched or applied.
func (r *Refresher) Refresh(ctx context.Context, requestID string) (ov aggregate.Overview, applied bool) {
	r.mu.Lock()
	if r.stopped {
		r.mu.Unlock()
		utils.LogEvent(requestID, "poller", "refresh_skipped", "stopped")
		return ov, false
	}
	r.inflight.Add(1)
	defer r.inflight.Done()
	r.seq++
	mine := r.seq
	if r.cancelPrev != nil {
		r.cancelPrev()
	}
	ctx, cancel := context.WithCancel(ctx)
	r.cancelPrev = cancel
	r.mu.Unlock()
	defer cancel()

	src, failed := FetchAll(ctx, r.Source, requestID)
	ov = aggregate.BuildOverview(src, r.now())
	ov.FailedSources = failed

	r.mu.Lock()
	if mine != r.seq || ctx.Err() != nil {
		r.mu.Unlock()
		utils.LogEvent(requestID, "poller", "refresh_stale", fmt.Sprintf("seq=%d cancelled=%t", mine, ctx.Err() != nil))
		return ov, false
	}
	r.latest = &ov
	r.mu.Unlock()

	utils.LogEvent(requestID, "poller", "refresh_applied", fmt.Sprintf("seq=%d failed=%d", mine, len(failed)))
	if r.Snapshots != nil {
		if err := r.Snapshots.Save(context.WithoutCancel(ctx), ov); err != nil {
			utils.LogEvent(requestID, "poller", "snapshot_failed", err.Error())
		}
	}
	return ov, true
}

// Latest returns the last applied overview.
func (r *Refresher) Latest() (aggregate.Overview, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.latest == nil {
		return aggregate.Overview{}, false
	}
	return *r.latest, true
}

// Start begins polling on s. Calling Start again replaces the previous schedule.
func (r *Refresher) Start(s Scheduler, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultInterval
	}
	r.mu.Lock()
	r.stopped = false
	r.mu.Unlock()
	r.schedMu.Lock()
	defer r.schedMu.Unlock()
	if r.stopTick != nil {
		r.stopTick()
	}
	r.scheduler = s
	r.interval = interval
	r.stopTick = s.Schedule(interval, func() {
		r.Refresh(context.Background(), "")
	})
	utils.LogEvent("", "poller", "scheduled", "interval="+interval.String())
}

// Reschedule restarts polling with a new interval on the current scheduler.
// It is a no-op when polling is not running or the interval is unchanged.
func (r *Refresher) Reschedule(interval time.Duration) {
	r.schedMu.Lock()
	s, current, running := r.scheduler, r.interval, r.stopTick != nil
	r.schedMu.Unlock()
	if !running || s == nil || interval <= 0 || interval == current {
		return
	}
	r.Start(s, interval)
}

// Stop cancels polling and any refresh in flight, then waits for in-flight
// refreshes to return. Nothing is applied or saved once Stop returns.
func (r *Refresher) Stop() {
	r.schedMu.Lock()
	if r.stopTick != nil {
		r.stopTick()
		r.stopTick = nil
	}
	r.schedMu.Unlock()

	r.mu.Lock()
	r.stopped = true
	r.seq++
	if r.cancelPrev != nil {
		r.cancelPrev()
		r.cancelPrev = nil
	}
	r.mu.Unlock()

	r.inflight.Wait()
	utils.LogEvent("", "poller", "stopped", "")
}
