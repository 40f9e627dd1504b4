package service

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/planvista/visionboard-api/internal/core/domain"
	"github.com/planvista/visionboard-api/internal/core/ports"
)

const (
	defaultSessionTTL = 24 * time.Hour
	// defaultTouchAfter bounds write amplification from the sliding
	// expiration: activity inside this window does not rewrite the record.
	defaultTouchAfter = time.Hour
)

// SessionService is the session authority. Session records live in a durable
// store keyed by an opaque id; the cookie value is an HS256 token whose only
// claim is that id, so a tampered cookie fails signature verification before
// any store lookup.
type SessionService struct {
	store      ports.SessionStore
	secret     []byte
	ttl        time.Duration
	touchAfter time.Duration
	logger     zerolog.Logger
	now        func() time.Time
}

func NewSessionService(store ports.SessionStore, secret string, ttl, touchAfter time.Duration, logger zerolog.Logger) *SessionService {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	if touchAfter <= 0 {
		touchAfter = defaultTouchAfter
	}
	return &SessionService{
		store:      store,
		secret:     []byte(secret),
		ttl:        ttl,
		touchAfter: touchAfter,
		logger:     logger,
		now:        time.Now,
	}
}

// TTL reports the session lifetime.
func (s *SessionService) TTL() time.Duration { return s.ttl }

// Create establishes a new session for identity and returns the cookie token.
func (s *SessionService) Create(ctx context.Context, identity domain.Identity) (string, error) {
	id := uuid.NewString()
	session := domain.Session{
		UserID:      identity.ID,
		Username:    identity.Username,
		RefreshedAt: s.now().UTC(),
	}

	if err := s.store.Save(ctx, id, session, s.ttl); err != nil {
		return "", err
	}

	token, err := s.signToken(id)
	if err != nil {
		// The record is unreachable without a token; drop it.
		_ = s.store.Delete(ctx, id)
		return "", err
	}

	s.logger.Debug().Str("user_id", identity.ID).Msg("session created")
	return token, nil
}

// Resolve maps a cookie token back to the stored identity projection.
func (s *SessionService) Resolve(ctx context.Context, token string) (domain.Identity, error) {
	id, err := s.verifyToken(token)
	if err != nil {
		return domain.Identity{}, domain.ErrSessionNotFound
	}

	session, err := s.store.Get(ctx, id)
	if err != nil {
		return domain.Identity{}, err
	}
	return session.Identity(), nil
}

// Touch slides the session expiration if more than touchAfter has elapsed
// since the last refresh. Called on every authenticated request; most calls
// are no-ops. The report of an actual refresh is what prompts the gates to
// re-issue the cookie, keeping the browser-side lifetime sliding along with
// the record's TTL.
func (s *SessionService) Touch(ctx context.Context, token string) (bool, error) {
	id, err := s.verifyToken(token)
	if err != nil {
		return false, domain.ErrSessionNotFound
	}

	session, err := s.store.Get(ctx, id)
	if err != nil {
		return false, err
	}

	now := s.now().UTC()
	if now.Sub(session.RefreshedAt) < s.touchAfter {
		return false, nil
	}

	session.RefreshedAt = now
	if err := s.store.Save(ctx, id, *session, s.ttl); err != nil {
		return false, err
	}
	return true, nil
}

// Destroy terminates the session. Destroying an already-absent session is
// not an error.
func (s *SessionService) Destroy(ctx context.Context, token string) error {
	id, err := s.verifyToken(token)
	if err != nil {
		return nil
	}
	return s.store.Delete(ctx, id)
}

// signToken carries no exp claim: the store TTL is the single authority on
// expiration, so a slid session never outlives its own token.
func (s *SessionService) signToken(id string) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sid": id})
	return t.SignedString(s.secret)
}

func (s *SessionService) verifyToken(token string) (string, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil || !tkn.Valid {
		return "", domain.ErrSessionNotFound
	}

	id, _ := claims["sid"].(string)
	if id == "" {
		return "", domain.ErrSessionNotFound
	}
	return id, nil
}
