package business

import "errors"

// Sentinel errors for the business service layer.
var (
	ErrNotFound = errors.New("business not found")
)
