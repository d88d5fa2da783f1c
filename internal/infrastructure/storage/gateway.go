package storage

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Backend is one durable blob store for cover assets.
// Two implementations exist: MinIO (primary) and local filesystem (fallback).
type Backend interface {
	Upload(ctx context.Context, name string, data []byte, contentType string) error
	Delete(ctx context.Context, name string) error
	Exists(ctx context.Context, name string) (bool, error)
	PublicURL(name string) string
}

const (
	namePrefix      = "cover"
	maxNameAttempts = 5
)

// Gateway presents a single upload/delete surface over a primary and a
// fallback backend. After the first primary failure it goes degraded and
// routes every subsequent call to the fallback for the rest of its lifetime.
// The flag never flips back without a restart, so a backend known to be down
// is not retried on every request.
type Gateway struct {
	primary  Backend
	fallback Backend
	degraded atomic.Bool
}

// NewGateway builds a gateway. primary may be nil when its initialization
// failed (e.g. the bucket could not be verified); the gateway then starts
// degraded instead of refusing to start.
func NewGateway(primary, fallback Backend) *Gateway {
	g := &Gateway{primary: primary, fallback: fallback}

	if primary == nil {
		log.Warn().Msg("primary storage unavailable, starting in degraded mode")
		g.degraded.Store(true)
	}

	return g
}

// Degraded reports whether the gateway has switched to the fallback backend.
func (g *Gateway) Degraded() bool {
	return g.degraded.Load()
}

func (g *Gateway) active() Backend {
	if g.degraded.Load() {
		return g.fallback
	}
	return g.primary
}

// GenerateName produces a unique object name for the given file extension and
// verifies it is free on the active backend. The collision probability is
// negligible, so the retry loop is capped rather than unbounded.
func (g *Gateway) GenerateName(ctx context.Context, ext string) (string, error) {
	for attempt := 0; attempt < maxNameAttempts; attempt++ {
		name := newObjectName(ext)

		exists, err := g.active().Exists(ctx, name)
		if err != nil {
			// A failing existence check must not block the upload; the
			// upload itself will surface backend trouble.
			log.Warn().Err(err).Str("name", name).Msg("existence check failed, assuming name is free")
			return name, nil
		}
		if !exists {
			return name, nil
		}
	}

	return "", fmt.Errorf("could not generate a free object name after %d attempts", maxNameAttempts)
}

func newObjectName(ext string) string {
	ext = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(ext)), ".")

	name := namePrefix + "_" + uuid.NewString()
	if ext != "" {
		name += "." + ext
	}
	return name
}

// Upload stores data under a freshly generated name and returns that name.
// The primary backend is tried first unless the gateway is already degraded;
// a primary failure flips the sticky degraded flag and the upload is retried
// once against the fallback.
func (g *Gateway) Upload(ctx context.Context, data []byte, ext, contentType string) (string, error) {
	name, err := g.GenerateName(ctx, ext)
	if err != nil {
		return "", err
	}

	if !g.degraded.Load() {
		if err := g.primary.Upload(ctx, name, data, contentType); err == nil {
			return name, nil
		} else {
			log.Error().Err(err).Str("name", name).Msg("primary storage upload failed, switching to fallback")
			g.degraded.Store(true)
		}
	}

	if err := g.fallback.Upload(ctx, name, data, contentType); err != nil {
		return "", fmt.Errorf("upload failed on all backends: %w", err)
	}

	return name, nil
}

// Delete removes an object, following the same primary/fallback order as
// Upload. Callers treat failures as best-effort cleanup and only log them.
func (g *Gateway) Delete(ctx context.Context, name string) error {
	if !g.degraded.Load() {
		if err := g.primary.Delete(ctx, name); err == nil {
			return nil
		} else {
			log.Error().Err(err).Str("name", name).Msg("primary storage delete failed, switching to fallback")
			g.degraded.Store(true)
		}
	}

	if err := g.fallback.Delete(ctx, name); err != nil {
		return fmt.Errorf("delete failed on all backends: %w", err)
	}

	return nil
}

// Exists checks the active backend only; an asset lives on exactly one side.
func (g *Gateway) Exists(ctx context.Context, name string) (bool, error) {
	return g.active().Exists(ctx, name)
}

// PublicURL returns the externally reachable URL on the active backend.
func (g *Gateway) PublicURL(name string) string {
	return g.active().PublicURL(name)
}
