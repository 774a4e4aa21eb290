package domain

import "time"

// NotificationSeverity is the visual weight of an in-app notification.
type NotificationSeverity string

const (
	SeverityInfo    NotificationSeverity = "info"
	SeveritySuccess NotificationSeverity = "success"
	SeverityWarning NotificationSeverity = "warning"
	SeverityDanger  NotificationSeverity = "danger"
)

// Notification is an in-app message shown to a panel actor, e.g. the
// "invitation created but email failed" outcome of a dispatch.
type Notification struct {
	ID        string               `json:"id" db:"id"`
	UserID    string               `json:"user_id" db:"user_id"`
	Title     string               `json:"title" db:"title"`
	Body      string               `json:"body" db:"body"`
	Severity  NotificationSeverity `json:"severity" db:"severity"`
	Read      bool                 `json:"read" db:"read"`
	CreatedAt time.Time            `json:"created_at" db:"created_at"`
}
