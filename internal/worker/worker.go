// Package worker polls planning and sessions and raises desktop
// notifications when work is due to start or has run over.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/alexanderramin/planner/internal/domain"
	"github.com/alexanderramin/planner/internal/notify"
)

const (
	DefaultPollInterval     = 60 * time.Second
	DefaultPlanningLookback = 5 * time.Minute

	dedupWindow   = 60 * time.Second
	dedupRetain   = time.Hour
	cleanupEvery  = time.Hour
	cleanupMaxAge = 24 * time.Hour
)

// PlanningSource lists planning starting in a window. Satisfied by
// repository.PlanningRepo.
type PlanningSource interface {
	ListStartingBetween(ctx context.Context, from, to time.Time) ([]*domain.Planning, error)
}

// SessionSource is the part of repository.SessionRepo the worker reads.
type SessionSource interface {
	GetActive(ctx context.Context) (*domain.Session, error)
	ExistsForPlanning(ctx context.Context, planningID string) (bool, error)
}

// Gate reports whether notifications are globally enabled. Satisfied by
// service.SettingService.
type Gate interface {
	NotificationsEnabled(ctx context.Context) (bool, error)
}

// Cleaner removes stale notification files. notify.SocketNotifier
// implements it.
type Cleaner interface {
	Cleanup(maxAge time.Duration) (int, error)
}

type Config struct {
	PollInterval        time.Duration
	PlanningLookback    time.Duration
	DefaultIntervalMins int
}

func (c Config) withDefaults() Config {
	if c.PollInterval <= 0 {
		c.PollInterval = DefaultPollInterval
	}
	if c.PlanningLookback <= 0 {
		c.PlanningLookback = DefaultPlanningLookback
	}
	if c.DefaultIntervalMins <= 0 {
		c.DefaultIntervalMins = domain.DefaultNotificationInterval
	}
	return c
}

type Option func(*Worker)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(w *Worker) { w.now = now }
}

func WithLogger(logger *slog.Logger) Option {
	return func(w *Worker) { w.logger = logger }
}

type Worker struct {
	planning PlanningSource
	sessions SessionSource
	gate     Gate
	notifier notify.Notifier
	cfg      Config
	now      func() time.Time
	logger   *slog.Logger

	sent        map[string]time.Time
	lastCleanup time.Time
}

func New(planning PlanningSource, sessions SessionSource, gate Gate, notifier notify.Notifier, cfg Config, opts ...Option) *Worker {
	w := &Worker{
		planning: planning,
		sessions: sessions,
		gate:     gate,
		notifier: notifier,
		cfg:      cfg.withDefaults(),
		now:      time.Now,
		logger:   slog.Default(),
		sent:     make(map[string]time.Time),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run checks once immediately and then on every poll interval until ctx is
// cancelled. Check failures are logged and do not stop the loop.
func (w *Worker) Run(ctx context.Context) error {
	w.logger.InfoContext(ctx, "notification worker started", "poll_interval", w.cfg.PollInterval)
	ticker := time.NewTicker(w.cfg.PollInterval)
	defer ticker.Stop()

	for {
		w.Tick(ctx)
		select {
		case <-ctx.Done():
			w.logger.InfoContext(ctx, "notification worker stopped")
			return nil
		case <-ticker.C:
		}
	}
}

// Tick runs one round of checks.
func (w *Worker) Tick(ctx context.Context) {
	now := w.now()
	w.maybeCleanup(ctx, now)

	if w.gate != nil {
		enabled, err := w.gate.NotificationsEnabled(ctx)
		if err != nil {
			w.logger.ErrorContext(ctx, "reading notification setting", "error", err)
			return
		}
		if !enabled {
			return
		}
	}

	active, err := w.sessions.GetActive(ctx)
	if err != nil {
		w.logger.ErrorContext(ctx, "loading active session", "error", err)
		return
	}
	if err := w.checkPlanning(ctx, now, active); err != nil {
		w.logger.ErrorContext(ctx, "checking planning", "error", err)
	}
	if active != nil {
		w.checkSession(ctx, now, active)
	}
}

func (w *Worker) checkPlanning(ctx context.Context, now time.Time, active *domain.Session) error {
	// The store keeps whole seconds; widen the upper bound so a planning
	// starting exactly now is included.
	to := now.Truncate(time.Second).Add(time.Second)
	items, err := w.planning.ListStartingBetween(ctx, now.Add(-w.cfg.PlanningLookback), to)
	if err != nil {
		return fmt.Errorf("listing upcoming planning: %w", err)
	}
	for _, p := range items {
		if p.ScheduledStart.After(now) {
			continue
		}
		started, err := w.sessions.ExistsForPlanning(ctx, p.ID)
		if err != nil {
			return fmt.Errorf("checking sessions for planning %s: %w", p.ID, err)
		}
		if started {
			continue
		}
		if active != nil && !active.StartTime.Before(p.ScheduledStart) {
			continue
		}

		elapsed := now.Sub(p.ScheduledStart).Minutes()
		if !due(elapsed, p.Project.NotifyInterval(w.cfg.DefaultIntervalMins)) {
			continue
		}
		w.send(ctx, "planning_"+p.ID, now, planningNotification(p, elapsed))
	}
	return nil
}

func (w *Worker) checkSession(ctx context.Context, now time.Time, s *domain.Session) {
	if s.NotificationDisabled {
		return
	}
	elapsed := s.Elapsed(now).Minutes()
	planned := float64(s.PlannedDuration)
	if elapsed < planned {
		return
	}
	overtime := elapsed - planned
	if !due(overtime, s.Project.NotifyInterval(w.cfg.DefaultIntervalMins)) {
		return
	}
	w.send(ctx, "session_"+s.ID, now, sessionNotification(s, elapsed, overtime))
}

// due reports whether minutes falls in the first minute of the event or of
// any later interval.
func due(minutes float64, interval int) bool {
	if minutes < 1 {
		return true
	}
	return math.Mod(minutes, float64(interval)) < 1
}

func (w *Worker) send(ctx context.Context, key string, now time.Time, n notify.Notification) {
	if last, ok := w.sent[key]; ok && now.Sub(last) < dedupWindow {
		return
	}
	if err := w.notifier.Send(ctx, n); err != nil {
		w.logger.WarnContext(ctx, "sending notification", "key", key, "error", err)
	}
	w.mark(key, now)
}

func (w *Worker) mark(key string, now time.Time) {
	w.sent[key] = now
	for k, at := range w.sent {
		if now.Sub(at) > dedupRetain {
			delete(w.sent, k)
		}
	}
}

func (w *Worker) maybeCleanup(ctx context.Context, now time.Time) {
	cleaner, ok := w.notifier.(Cleaner)
	if !ok || (!w.lastCleanup.IsZero() && now.Sub(w.lastCleanup) < cleanupEvery) {
		return
	}
	w.lastCleanup = now
	removed, err := cleaner.Cleanup(cleanupMaxAge)
	if err != nil {
		w.logger.WarnContext(ctx, "cleaning notification files", "error", err)
		return
	}
	if removed > 0 {
		w.logger.DebugContext(ctx, "removed old notification files", "count", removed)
	}
}
