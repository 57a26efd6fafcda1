package domain

type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityCritical Priority = "critical"
)

// ValidPriorities is the canonical set of accepted priority strings.
var ValidPriorities = map[Priority]bool{
	PriorityLow: true, PriorityMedium: true, PriorityCritical: true,
}

type Urgency string

const (
	UrgencyLow      Urgency = "low"
	UrgencyNormal   Urgency = "normal"
	UrgencyCritical Urgency = "critical"
)

// Defaults shared by services and the notification worker.
const (
	DefaultProjectDuration      = 60
	MinProjectDuration          = 5
	DefaultNotificationInterval = 10
	DefaultAddTimeMinutes       = 15
)
