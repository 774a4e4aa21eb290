// Package suppression implements the email suppression list service.
//
// This is the single source of truth for whether an address should receive
// directory mail. Records flow in from two sources (unsubscribe links and
// the mailer bounce webhook) and are keyed uniquely by email: writing an
// address that already exists overwrites its reason, source and payload.
//
// The service layer contains pure business logic and depends on the
// Repository interface defined in repository.go. It never imports
// net/http or database/sql directly.
package suppression
