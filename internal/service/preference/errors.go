package preference

import "errors"

// Sentinel errors for the preference service layer.
var (
	ErrNotFound     = errors.New("notification preference not found")
	ErrUnknownTopic = errors.New("unknown notification topic")
)
