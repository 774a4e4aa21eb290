package invitation

import "errors"

// Sentinel errors for the invitation service layer.
var (
	ErrNotFound         = errors.New("invitation not found")
	ErrEmailRequired    = errors.New("invitee email is required")
	ErrBusinessRequired = errors.New("business id is required")
)
