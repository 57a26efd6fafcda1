package cli

import (
	"context"
	"time"

	"github.com/alexanderramin/planner/internal/notify"
	"github.com/alexanderramin/planner/internal/service"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Projects   service.ProjectService
	Tags       service.TagService
	Planning   service.PlanningService
	Sessions   service.SessionService
	Settings   service.SettingService
	Statistics service.StatisticsService

	// Notifier backs "notify test".
	Notifier notify.Notifier

	// Serve runs the API server and notification worker until ctx ends.
	Serve func(ctx context.Context) error

	Location      *time.Location
	Now           func() time.Time
	IsInteractive func() bool
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

func (a *App) loc() *time.Location {
	if a.Location != nil {
		return a.Location
	}
	return time.Local
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}
