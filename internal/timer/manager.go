// Package timer implements the concurrent registry of named countdown
// timers behind the "set timer" voice command.
package timer

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/kfarah/kitchenbuddy/internal/domain"
	"github.com/kfarah/kitchenbuddy/internal/logger"
)

// CompletionFunc runs when a timer expires naturally. It never runs for
// timers stopped early.
type CompletionFunc func(id string, minutes int)

// Option configures the manager.
type Option func(*Manager)

// WithMinuteScale sets how long one timer "minute" lasts. The default is
// time.Minute; tests shrink it to run expiries in milliseconds.
func WithMinuteScale(d time.Duration) Option {
	return func(m *Manager) {
		m.minute = d
	}
}

// Manager is a registry of live countdown timers keyed by id. It is
// constructed and injected by the composition root, never held as a
// package global, so each test gets a fresh registry. All registry mutations
// happen inside one critical section; the per-timer waits run in their
// own goroutines and re-check liveness under the lock before completing,
// so a timer stopped early never fires its callback.
type Manager struct {
	log      *logger.Logger
	narrator domain.Narrator // may be nil
	minute   time.Duration

	mu     sync.Mutex
	timers map[string]*entry
}

type entry struct {
	id         string
	minutes    int
	startTime  time.Time
	endTime    time.Time
	active     bool
	onComplete CompletionFunc
	cancel     chan struct{}
}

// Status is a point-in-time snapshot of one timer.
type Status struct {
	Active           bool
	DurationMinutes  int
	RemainingSeconds int
	RemainingMinutes int
}

// NewManager creates an empty timer registry. narrator may be nil when
// voice output is disabled.
func NewManager(narrator domain.Narrator, log *logger.Logger, opts ...Option) *Manager {
	m := &Manager{
		log:      log,
		narrator: narrator,
		minute:   time.Minute,
		timers:   make(map[string]*entry),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Start registers a timer and schedules its expiry. Returns false with
// no state change when the id is already live. Non-blocking: the wait
// runs in a background goroutine.
func (m *Manager) Start(ctx context.Context, id string, minutes int, onComplete CompletionFunc) bool {
	d := time.Duration(minutes) * m.minute
	now := time.Now()

	m.mu.Lock()
	if _, exists := m.timers[id]; exists {
		m.mu.Unlock()
		m.log.Debug("timer %s already exists, start refused", id)
		return false
	}
	e := &entry{
		id:         id,
		minutes:    minutes,
		startTime:  now,
		endTime:    now.Add(d),
		active:     true,
		onComplete: onComplete,
		cancel:     make(chan struct{}),
	}
	m.timers[id] = e
	m.mu.Unlock()

	go m.wait(e, d)

	m.log.Info("timer %s started (%d min)", id, minutes)
	m.say(ctx, fmt.Sprintf("Timer started for %d minutes", minutes))
	return true
}

// wait sleeps until the timer's deadline or its early cancellation.
func (m *Manager) wait(e *entry, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-t.C:
		m.expire(e.id)
	case <-e.cancel:
	}
}

// expire completes a timer on its scheduled wake-up. A timer removed by
// Stop in the meantime is absent from the registry and the wake-up is a
// no-op. The narrator and callback run outside the lock.
func (m *Manager) expire(id string) {
	m.mu.Lock()
	e, ok := m.timers[id]
	if !ok || !e.active {
		m.mu.Unlock()
		return
	}
	e.active = false
	delete(m.timers, id)
	m.mu.Unlock()

	m.log.Info("timer %s finished (%d min)", id, e.minutes)
	m.say(context.Background(), fmt.Sprintf("Time's up! Your %d minute timer has finished. Let's continue cooking!", e.minutes))

	if e.onComplete != nil {
		m.invoke(e.onComplete, e.id, e.minutes)
	}
}

// invoke runs a completion callback, containing any panic. Callback
// failures are logged and never propagate.
func (m *Manager) invoke(fn CompletionFunc, id string, minutes int) {
	defer func() {
		if r := recover(); r != nil {
			m.log.Error("timer %s callback panicked: %v", id, r)
		}
	}()
	fn(id, minutes)
}

// Stop cancels a live timer. Returns false when the id is unknown; the
// stop notification is only emitted on success.
func (m *Manager) Stop(ctx context.Context, id string) bool {
	m.mu.Lock()
	e, ok := m.timers[id]
	if !ok {
		m.mu.Unlock()
		return false
	}
	e.active = false
	close(e.cancel)
	delete(m.timers, id)
	m.mu.Unlock()

	m.log.Info("timer %s stopped", id)
	m.say(ctx, "Timer stopped")
	return true
}

// StopAll cancels every live timer without notifications. Used on
// shutdown.
func (m *Manager) StopAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, e := range m.timers {
		e.active = false
		close(e.cancel)
		delete(m.timers, id)
	}
}

// Status returns a snapshot of a timer, or ok=false for an unknown id.
func (m *Manager) Status(id string) (Status, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.timers[id]
	if !ok {
		return Status{}, false
	}
	remaining := max(0, int(time.Until(e.endTime)/time.Second))
	return Status{
		Active:           e.active,
		DurationMinutes:  e.minutes,
		RemainingSeconds: remaining,
		RemainingMinutes: remaining / 60,
	}, true
}

// RemainingFormatted returns the remaining time as "MM:SS", or ok=false
// for an unknown id.
func (m *Manager) RemainingFormatted(id string) (string, bool) {
	st, ok := m.Status(id)
	if !ok {
		return "", false
	}
	return fmt.Sprintf("%02d:%02d", st.RemainingSeconds/60, st.RemainingSeconds%60), true
}

// Count returns the number of currently registered timers.
func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.timers)
}

// say narrates a message when a narrator is configured. Fire-and-forget.
func (m *Manager) say(ctx context.Context, text string) {
	if m.narrator == nil {
		return
	}
	m.narrator.Say(ctx, text)
}
