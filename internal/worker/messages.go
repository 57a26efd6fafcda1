package worker

import (
	"fmt"

	"github.com/alexanderramin/planner/internal/domain"
	"github.com/alexanderramin/planner/internal/notify"
)

func planningNotification(p *domain.Planning, elapsed float64) notify.Notification {
	name := "Planned work"
	if p.Project != nil && p.Project.Name != "" {
		name = p.Project.Name
	}

	var n notify.Notification
	if elapsed < 1 {
		n.Title = "Scheduled Work"
		n.Message = "Time to start: " + name
	} else {
		n.Title = "Planning Reminder"
		n.Message = fmt.Sprintf("Reminder: %s\nScheduled %d minutes ago", name, int(elapsed))
	}
	if p.Description != nil && *p.Description != "" {
		n.Message += "\n" + *p.Description
	}

	n.Urgency = domain.UrgencyNormal
	if p.Priority == domain.PriorityCritical {
		n.Urgency = domain.UrgencyCritical
	}
	return n
}

func sessionNotification(s *domain.Session, elapsed, overtime float64) notify.Notification {
	name := s.DisplayName()
	n := notify.Notification{Urgency: domain.UrgencyNormal}
	if overtime < 1 {
		n.Title = "Session Complete: " + name
		n.Message = fmt.Sprintf("Time is up! You've worked for %d minutes.\n"+
			"Consider taking a break or reviewing your session.", s.PlannedDuration)
		return n
	}
	n.Title = "Still Working: " + name
	n.Message = fmt.Sprintf("You're %d minutes over planned time.\nPlanned: %d min, Elapsed: %d min",
		int(overtime), s.PlannedDuration, int(elapsed))
	return n
}
