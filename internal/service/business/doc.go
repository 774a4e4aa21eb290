// Package business exposes the businesses an actor owns or manages and
// the membership checks the active-business guard relies on.
package business
