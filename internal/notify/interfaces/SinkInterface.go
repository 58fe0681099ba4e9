package interfaces

import (
	"context"
	"errors"
	"medreminder/internal/models"
)

var ErrNotPermitted = errors.New("notification permission not granted")

type SinkInterface interface {
	RequestPermission() models.Permission
	// Notify returns ErrNotPermitted when permission is not granted.
	Notify(ctx context.Context, n models.Notification) error
}

// PermissionInterface lets an operator resolve the permission state.
type PermissionInterface interface {
	Permission() models.Permission
	SetPermission(p models.Permission) error
}

type BackendInterface interface {
	Deliver(ctx context.Context, n models.Notification) error
}

type PlayerInterface interface {
	Play(ctx context.Context) error
}
