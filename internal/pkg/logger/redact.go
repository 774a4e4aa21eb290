package logger

import "strings"

// RedactEmail masks the local part of an address so unsubscribe and
// bounce log lines stay correlatable without exposing the recipient.
// The domain is kept intact; it identifies the provider, not the person.
//
//	owner@citybakery.example  → "ow***@citybakery.example"
//	jo@citybakery.example     → "***@citybakery.example"
func RedactEmail(email string) string {
	if strings.Count(email, "@") != 1 {
		return "***@***"
	}
	local, host, _ := strings.Cut(email, "@")
	if host == "" {
		return "***@***"
	}
	if len(local) <= 2 {
		return "***@" + host
	}
	return local[:2] + "***@" + host
}
