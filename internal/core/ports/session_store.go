package ports

import (
	"context"
	"time"

	"github.com/planvista/visionboard-api/internal/core/domain"
)

// SessionStore persists session records outside the application database so
// that active sessions survive server restarts. Records carry a TTL; the
// store is responsible for expiring them.
type SessionStore interface {
	Save(ctx context.Context, id string, session domain.Session, ttl time.Duration) error
	// Get returns domain.ErrSessionNotFound for absent or expired ids.
	Get(ctx context.Context, id string) (*domain.Session, error)
	Delete(ctx context.Context, id string) error
}

// SessionService is the session authority: it mints cookie tokens, resolves
// them back to identities, slides expiration, and terminates sessions.
type SessionService interface {
	Create(ctx context.Context, identity domain.Identity) (string, error)
	// Resolve returns the identity for a valid token, or
	// domain.ErrSessionNotFound for a missing, expired, or tampered one.
	Resolve(ctx context.Context, token string) (domain.Identity, error)
	// Touch slides the session expiration, but only when more than the
	// configured interval has passed since the last refresh. It reports
	// whether the record was actually refreshed so callers can re-issue the
	// cookie with a matching lifetime.
	Touch(ctx context.Context, token string) (bool, error)
	Destroy(ctx context.Context, token string) error
	// TTL reports the session lifetime, used for the cookie MaxAge.
	TTL() time.Duration
}
