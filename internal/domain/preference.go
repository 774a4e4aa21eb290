package domain

import "time"

// NotificationTopic is a named category of notification that can be
// independently opted out of.
type NotificationTopic string

const (
	TopicNewsletter NotificationTopic = "newsletter"
	TopicPromotions NotificationTopic = "promotions"
)

// KnownTopic reports whether t is one of the recognized opt-out topics.
func KnownTopic(t NotificationTopic) bool {
	switch t {
	case TopicNewsletter, TopicPromotions:
		return true
	}
	return false
}

// NotificationPreference holds a user's per-topic send flags. Mutated only
// by the unsubscribe handler (set false) and the owner panel's preference
// UI, which lives outside this service.
type NotificationPreference struct {
	UserID                   string    `json:"user_id" db:"user_id"`
	Email                    string    `json:"email" db:"email"`
	NotifyNewsletterCustomer bool      `json:"notify_newsletter_customer" db:"notify_newsletter_customer"`
	NotifyPromotionsCustomer bool      `json:"notify_promotions_customer" db:"notify_promotions_customer"`
	UpdatedAt                time.Time `json:"updated_at" db:"updated_at"`
}
