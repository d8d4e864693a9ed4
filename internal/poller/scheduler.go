package poller

import (
	"sync"
	"time"
)

// Scheduler runs fn every interval until the returned cancel is called.
type Scheduler interface {
	Schedule(interval time.Duration, fn func()) (cancel func())
}

// TickerScheduler is the production Scheduler backed by time.Ticker.
type TickerScheduler struct{}

func (TickerScheduler) Schedule(interval time.Duration, fn func()) func() {
	ticker := time.NewTicker(interval)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-ticker.C:
				fn()
			case <-done:
				return
			}
		}
	}()
	var once sync.Once
	return func() {
		once.Do(func() {
			ticker.Stop()
			close(done)
		})
	}
}

// ManualScheduler only fires when told to. Tests drive polling with it.
type ManualScheduler struct {
	mu       sync.Mutex
	next     int
	jobs     map[int]func()
	interval map[int]time.Duration
}

func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{jobs: map[int]func(){}, interval: map[int]time.Duration{}}
}

func (m *ManualScheduler) Schedule(interval time.Duration, fn func()) func() {
	m.mu.Lock()
	id := m.next
	m.next++
	m.jobs[id] = fn
	m.interval[id] = interval
	m.mu.Unlock()
	return func() {
		m.mu.Lock()
		delete(m.jobs, id)
		delete(m.interval, id)
		m.mu.Unlock()
	}
}

// Tick runs every active job once, synchronously.
func (m *ManualScheduler) Tick() {
	m.mu.Lock()
	jobs := make([]func(), 0, len(m.jobs))
	for i := 0; i < m.next; i++ {
		if fn, ok := m.jobs[i]; ok {
			jobs = append(jobs, fn)
		}
	}
	m.mu.Unlock()
	for _, fn := range jobs {
		fn()
	}
}

// Active returns the intervals of the jobs still scheduled.
func (m *ManualScheduler) Active() []time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []time.Duration{}
	for i := 0; i < m.next; i++ {
		if d, ok := m.interval[i]; ok {
			out = append(out, d)
		}
	}
	return out
}
