package models

import "time"

type Permission string

const (
	PermissionGranted Permission = "granted"
	PermissionDenied  Permission = "denied"
	PermissionDefault Permission = "default"
)

func (p Permission) Valid() bool {
	switch p {
	case PermissionGranted, PermissionDenied, PermissionDefault:
		return true
	}
	return false
}

// Notification is a short-lived alert. DismissAfter bounds how long the
// backend keeps it visible.
type Notification struct {
	Title        string
	Body         string
	Tag          string
	DismissAfter time.Duration
}
