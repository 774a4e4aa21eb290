package domain

import "time"

// BusinessStatus tracks the listing state of a business.
type BusinessStatus string

const (
	BusinessActive    BusinessStatus = "active"
	BusinessSuspended BusinessStatus = "suspended"
)

// Business is a directory listing. A user may own or manage several; the
// owner panel operates on one "active" business at a time, selected via
// session state.
type Business struct {
	ID        string         `json:"id" db:"id"`
	Name      string         `json:"name" db:"name"`
	OwnerID   string         `json:"owner_id" db:"owner_id"`
	Status    BusinessStatus `json:"status" db:"status"`
	CreatedAt time.Time      `json:"created_at" db:"created_at"`
}
