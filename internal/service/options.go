package service

import (
	"context"
	"time"
)

// Option tunes a service's environment.
type Option func(*env)

type env struct {
	now      func() time.Time
	loc      *time.Location
	observer UseCaseObserver
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(e *env) { e.now = now }
}

// WithLocation sets the time zone used for calendar-day rules.
func WithLocation(loc *time.Location) Option {
	return func(e *env) {
		if loc != nil {
			e.loc = loc
		}
	}
}

// WithObserver reports use cases to obs.
func WithObserver(obs UseCaseObserver) Option {
	return func(e *env) { e.observer = useCaseObserverOrNoop([]UseCaseObserver{obs}) }
}

func newEnv(opts []Option) env {
	e := env{now: time.Now, loc: time.Local, observer: NoopUseCaseObserver{}}
	for _, opt := range opts {
		opt(&e)
	}
	return e
}

// nowUTC is the current time in UTC truncated to whole seconds, which is
// the storage precision.
func (e env) nowUTC() time.Time {
	return e.now().UTC().Truncate(time.Second)
}

// observe reports one finished use case.
func (e env) observe(ctx context.Context, name string, startedAt time.Time, err error, fields map[string]any) {
	e.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      name,
		StartedAt: startedAt,
		Duration:  time.Since(startedAt),
		Success:   err == nil,
		Err:       err,
		Fields:    fields,
	})
}
