package suppression

import "errors"

// Sentinel errors for the suppression service layer.
var (
	ErrNotFound      = errors.New("suppression record not found")
	ErrEmailRequired = errors.New("email is required")
)
