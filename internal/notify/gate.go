package notify

import (
	"context"
	"errors"
	"fmt"
	"medreminder/internal/models"
	"medreminder/internal/notify/interfaces"
	"medreminder/internal/providers"
	"medreminder/internal/structures"
	"sync"
)

const (
	PolicyGranted = "granted"
	PolicyDenied  = "denied"
	PolicyPrompt  = "prompt"
)

var ErrInvalidPermission = errors.New("invalid permission")

// Gate holds the tri-state notification permission in front of a delivery
// backend. Nothing is delivered, queued or retried unless permission is
// granted.
type Gate struct {
	mu      sync.Mutex
	state   models.Permission
	policy  string
	backend interfaces.BackendInterface
	player  interfaces.PlayerInterface
	logger  providers.Logger
	metrics providers.MetricsProviderInterface
}

func NewGate(conf *structures.Config, backend interfaces.BackendInterface, player interfaces.PlayerInterface, logger providers.Logger, metrics providers.MetricsProviderInterface) *Gate {
	return &Gate{
		state:   models.PermissionDefault,
		policy:  conf.Notifier.Permission,
		backend: backend,
		player:  player,
		logger:  logger,
		metrics: metrics,
	}
}

// RequestPermission resolves a pending permission through the configured
// policy. A resolved state is returned unchanged.
func (g *Gate) RequestPermission() models.Permission {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state != models.PermissionDefault {
		return g.state
	}
	switch g.policy {
	case PolicyGranted:
		g.state = models.PermissionGranted
	case PolicyDenied:
		g.state = models.PermissionDenied
	default:
		g.logger.Infof(providers.TypeNotify, "Notification permission pending, grant it via PUT /notifications/permission")
	}
	return g.state
}

func (g *Gate) SetPermission(p models.Permission) error {
	if !p.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidPermission, p)
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.state = p
	g.logger.Infof(providers.TypeNotify, "Notification permission set to %s", p)
	return nil
}

func (g *Gate) Permission() models.Permission {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

func (g *Gate) Notify(ctx context.Context, n models.Notification) error {
	state := g.Permission()
	if state == models.PermissionDefault {
		state = g.RequestPermission()
	}
	if state != models.PermissionGranted {
		g.metrics.IncNotifications("suppressed")
		return interfaces.ErrNotPermitted
	}

	if err := g.backend.Deliver(ctx, n); err != nil {
		g.metrics.IncNotifications("failed")
		return fmt.Errorf("deliver notification: %w", err)
	}
	g.metrics.IncNotifications("delivered")

	if err := g.player.Play(ctx); err != nil {
		g.logger.Warnf(providers.TypeNotify, "Could not play sound: %s", err)
	}
	return nil
}
