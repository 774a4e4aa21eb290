package domain

import "time"

// SuppressionSource indicates where the suppression signal originated.
type SuppressionSource string

const (
	SourceUnsubscribeLink SuppressionSource = "unsubscribe_link"
	SourceMailerWebhook   SuppressionSource = "mailer_webhook"
)

// Well-known suppression reasons written by the unsubscribe handler.
// Bounce webhooks store the provider-supplied reason verbatim.
const (
	ReasonUserUnsubscribe        = "user_unsubscribe"
	ReasonUserUnsubscribeUnknown = "user_unsubscribe_unknown"
)

// TopicUnsubscribeReason returns the reason recorded for a topic-scoped
// opt-out, e.g. "user_unsubscribe_newsletter".
func TopicUnsubscribeReason(topic NotificationTopic) string {
	return ReasonUserUnsubscribe + "_" + string(topic)
}

// Suppression is a durable record preventing future sends to an address.
// At most one record exists per email; writes are upserts that overwrite
// reason, source and payload.
type Suppression struct {
	ID        string            `json:"id" db:"id"`
	Email     string            `json:"email" db:"email"`
	Reason    string            `json:"reason" db:"reason"`
	Source    SuppressionSource `json:"source" db:"source"`
	Payload   []byte            `json:"-" db:"payload"` // raw webhook body, audit only
	CreatedAt time.Time         `json:"created_at" db:"created_at"`
	UpdatedAt time.Time         `json:"updated_at" db:"updated_at"`
}
