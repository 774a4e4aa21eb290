// Package domain holds the core record types shared across services.
// Types here are plain data with no behavior beyond small helpers; all
// business logic lives in the service packages.
package domain
