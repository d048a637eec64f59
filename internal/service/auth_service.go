package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/iot-kit/sensor-gateway/internal/auth"
	"github.com/iot-kit/sensor-gateway/internal/config"
	"github.com/iot-kit/sensor-gateway/internal/domain"
	"github.com/iot-kit/sensor-gateway/internal/events"
	apperrors "github.com/iot-kit/sensor-gateway/pkg/util"
)

// AuthService is the token authority: it checks credentials, mints
// tokens, owns the active-token registry and revokes on logout. The
// registry is created here and never reachable as ambient state.
type AuthService struct {
	credentials *auth.CredentialStore
	tokenMgr    *auth.TokenManager
	registry    *auth.TokenRegistry
	dispatcher  events.Dispatcher
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, credentials *auth.CredentialStore, dispatcher events.Dispatcher) *AuthService {
	return &AuthService{
		credentials: credentials,
		tokenMgr:    auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTLMinutes),
		registry:    auth.NewTokenRegistry(),
		dispatcher:  dispatcher,
	}
}

// Issue authenticates username/secret and returns a fresh access token
// registered as active. The registry is untouched on failure.
func (s *AuthService) Issue(ctx context.Context, username, secret string) (string, error) {
	record, ok := s.credentials.Verify(username, secret)
	if !ok {
		return "", apperrors.NewInvalidCredentials()
	}

	token, expiresAt, err := s.tokenMgr.GenerateToken(record.Username, record.Role)
	if err != nil {
		return "", apperrors.NewInternalError(err)
	}
	s.registry.Add(token)

	s.publish(ctx, events.Event{
		Type:    events.EventTokenIssued,
		Subject: record.Username,
		Payload: events.TokenIssuedPayload{Role: record.Role, ExpiresAt: expiresAt},
	})
	return token, nil
}

// Introspect returns the claim of an active token. A token that fails
// to decode, has expired, or is absent from the registry is rejected
// uniformly. An expired token that was never revoked stays in the
// registry; it is rejected here at decode time.
func (s *AuthService) Introspect(token string) (domain.Claim, error) {
	claims, err := s.tokenMgr.ParseToken(token)
	if err != nil {
		return domain.Claim{}, apperrors.NewTokenNotActive()
	}
	if !s.registry.Contains(token) {
		return domain.Claim{}, apperrors.NewTokenNotActive()
	}
	return claims.Claim(), nil
}

// Revoke removes a token from the registry. Revoking an absent or
// already-revoked token reports not-active; absence is the uniform
// signal, a second revoke is not a distinct error.
func (s *AuthService) Revoke(ctx context.Context, token string) error {
	if !s.registry.Remove(token) {
		return apperrors.NewTokenNotActive()
	}
	s.publish(ctx, events.Event{
		Type:    events.EventTokenRevoked,
		Payload: events.TokenRevokedPayload{ActiveTokens: s.registry.Len()},
	})
	return nil
}

// ActiveTokens reports the registry size.
func (s *AuthService) ActiveTokens() int {
	return s.registry.Len()
}

func (s *AuthService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	event.ID = uuid.NewString()
	event.Timestamp = time.Now()
	_ = s.dispatcher.Publish(ctx, event)
}
