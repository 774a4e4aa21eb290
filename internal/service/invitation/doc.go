// Package invitation implements the manager-invitation dispatch flow:
// create an invitation record with a random accept token and a normalized
// permission set, then attempt the invitation email.
//
// Record persistence is deliberately independent of email delivery. A
// failed send leaves the invitation in place and surfaces a warning
// notification to the inviting actor so they can resend manually.
package invitation
