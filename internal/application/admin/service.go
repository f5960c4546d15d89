package admin

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/waza/waitlist-api/internal/domain"
	"github.com/waza/waitlist-api/internal/pkg/id"
	pkgtoken "github.com/waza/waitlist-api/internal/pkg/token"
)

// TokenStore persists admin credentials.
type TokenStore interface {
	Put(ctx context.Context, t *domain.AdminToken) error
	Get(ctx context.Context, token string) (*domain.AdminToken, error)
	TouchLastUsed(ctx context.Context, token string, at time.Time) error
	DeactivateByID(ctx context.Context, id string) error
}

type Service interface {
	// Verify authorizes an admin request by raw token value. On success the
	// credential's last_used_at is refreshed in the background.
	Verify(ctx context.Context, token string) error
	// CreateToken mints a new admin credential.
	CreateToken(ctx context.Context, description string, expiresAt *time.Time) (*domain.AdminToken, error)
	// Deactivate disables the credential with the given id.
	Deactivate(ctx context.Context, id string) error
}

type service struct {
	tokens TokenStore
	// fallbackToken authorizes requests only when the token table itself is
	// unreachable. Empty disables the fallback.
	fallbackToken string
	now           func() time.Time
}

func NewService(tokens TokenStore, fallbackToken string, now func() time.Time) Service {
	if now == nil {
		now = time.Now
	}
	return &service{tokens: tokens, fallbackToken: fallbackToken, now: now}
}

func (s *service) Verify(ctx context.Context, token string) error {
	if token == "" {
		return fmt.Errorf("admin token required: %w", domain.ErrUnauthorized)
	}

	t, err := s.tokens.Get(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("invalid admin token: %w", domain.ErrUnauthorized)
		}
		// Storage is unreachable. The static env credential is the only
		// escape hatch, and only for exactly this case.
		slog.Error("admin token lookup failed", "err", err)
		if s.fallbackToken != "" && subtle.ConstantTimeCompare([]byte(token), []byte(s.fallbackToken)) == 1 {
			return nil
		}
		return fmt.Errorf("token verification failed: %w", domain.ErrUnauthorized)
	}

	if !t.Usable(s.now()) {
		return fmt.Errorf("invalid admin token: %w", domain.ErrUnauthorized)
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.tokens.TouchLastUsed(ctx, token, s.now()); err != nil {
			slog.Warn("failed to refresh admin token last_used_at", "err", err)
		}
	}()

	return nil
}

func (s *service) CreateToken(ctx context.Context, description string, expiresAt *time.Time) (*domain.AdminToken, error) {
	raw, err := pkgtoken.NewAdminToken()
	if err != nil {
		return nil, err
	}
	t := &domain.AdminToken{
		ID:          id.New(),
		Token:       raw,
		Description: description,
		IsActive:    true,
		CreatedAt:   s.now().UTC(),
		ExpiresAt:   expiresAt,
	}
	if err := s.tokens.Put(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *service) Deactivate(ctx context.Context, id string) error {
	return s.tokens.DeactivateByID(ctx, id)
}
