package session

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"trilhas/models"
	"trilhas/utils"

	"firebase.google.com/go/v4/auth"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// TokenVerifier verifies Firebase ID tokens. *auth.Client satisfies it.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

// Authenticator turns bearer tokens into sessions, caching verified sessions
// in Redis so repeat requests skip verification.
type Authenticator struct {
	verifier TokenVerifier
	cache    *redis.Client
	ttl      time.Duration
	logger   *zap.Logger
	now      func() time.Time
}

// NewAuthenticator returns an Authenticator. cache may be nil, in which case
// every token is verified.
func NewAuthenticator(verifier TokenVerifier, cache *redis.Client, ttl time.Duration, logger *zap.Logger) *Authenticator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Authenticator{verifier: verifier, cache: cache, ttl: ttl, logger: logger, now: time.Now}
}

// Authenticate returns the session of a valid ID token, or an error matching
// models.ErrUnauthenticated.
func (a *Authenticator) Authenticate(ctx context.Context, idToken string) (*models.Session, error) {
	if idToken == "" {
		return nil, fmt.Errorf("missing token: %w", models.ErrUnauthenticated)
	}
	key := cacheKey(idToken)

	if s, ok := a.cached(ctx, key); ok {
		return s, nil
	}

	token, err := a.verifier.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, fmt.Errorf("verify token: %w: %w", models.ErrUnauthenticated, err)
	}
	s := &models.Session{UserID: token.UID}
	if email, ok := token.Claims["email"].(string); ok {
		s.Email = email
	}

	a.store(ctx, key, s, time.Unix(token.Expires, 0))
	return s, nil
}

// Revoke drops the cached session of idToken.
func (a *Authenticator) Revoke(ctx context.Context, idToken string) error {
	if a.cache == nil {
		return nil
	}
	return a.cache.Del(ctx, cacheKey(idToken)).Err()
}

func (a *Authenticator) cached(ctx context.Context, key string) (*models.Session, bool) {
	if a.cache == nil {
		return nil, false
	}
	raw, err := a.cache.Get(ctx, key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			a.logger.Warn("session cache unavailable, verifying token", zap.Error(err))
		}
		return nil, false
	}
	var s models.Session
	if err := json.Unmarshal([]byte(raw), &s); err != nil || s.UserID == "" {
		return nil, false
	}
	return &s, true
}

func (a *Authenticator) store(ctx context.Context, key string, s *models.Session, expires time.Time) {
	if a.cache == nil {
		return
	}
	ttl := a.ttl
	if until := expires.Sub(a.now()); until < ttl {
		ttl = until
	}
	if ttl <= 0 {
		return
	}
	data, err := json.Marshal(s)
	if err != nil {
		return
	}
	if err := a.cache.Set(ctx, key, data, ttl).Err(); err != nil {
		a.logger.Warn("failed to cache session", zap.Error(err))
	}
}

func cacheKey(idToken string) string {
	sum := sha256.Sum256([]byte(idToken))
	return utils.AuthCachePrefix + hex.EncodeToString(sum[:])
}
