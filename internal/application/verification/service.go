package verification

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"time"

	"github.com/waza/waitlist-api/internal/domain"
	"github.com/waza/waitlist-api/internal/infrastructure/smtp"
	pkgtoken "github.com/waza/waitlist-api/internal/pkg/token"
)

const (
	codeTTL     = 10 * time.Minute
	tokenTTL    = 30 * time.Minute
	resendAfter = 60 * time.Second
)

// emailRe accepts the usual local@domain shape: non-empty parts around a
// single @, no whitespace, at least one dot in the domain.
var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// CodeStore persists one-time codes keyed by email.
type CodeStore interface {
	Put(ctx context.Context, c *domain.VerificationCode) error
	Consume(ctx context.Context, email, code string) (bool, error)
	LastCreatedAt(ctx context.Context, email string) (time.Time, bool, error)
}

// TokenStore persists issued verification tokens keyed by token.
type TokenStore interface {
	Put(ctx context.Context, t *domain.VerificationToken) error
}

type Service interface {
	// RequestCode generates, stores and mails a one-time code, returning
	// when the code will expire.
	RequestCode(ctx context.Context, email string) (time.Time, error)
	// VerifyCode consumes the code and issues the verification token that
	// authorizes a later submission.
	VerifyCode(ctx context.Context, email, code string) (string, error)
}

type service struct {
	codes      CodeStore
	tokens     TokenStore
	mailer     smtp.Mailer
	secret     string
	devLogging bool
	now        func() time.Time
}

type ServiceDeps struct {
	Codes  CodeStore
	Tokens TokenStore
	Mailer smtp.Mailer
	// Secret salts verification-token derivation.
	Secret string
	// DevLogging logs issued codes at debug level (development only).
	DevLogging bool
	// Now overrides the clock in tests; defaults to time.Now.
	Now func() time.Time
}

func NewService(deps ServiceDeps) Service {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		codes:      deps.Codes,
		tokens:     deps.Tokens,
		mailer:     deps.Mailer,
		secret:     deps.Secret,
		devLogging: deps.DevLogging,
		now:        now,
	}
}

func (s *service) RequestCode(ctx context.Context, email string) (time.Time, error) {
	if !emailRe.MatchString(email) {
		return time.Time{}, fmt.Errorf("invalid email format: %w", domain.ErrBadRequest)
	}

	ok, err := s.mayRequestCode(ctx, email)
	if err != nil {
		return time.Time{}, fmt.Errorf("check cooldown: %w", err)
	}
	if !ok {
		return time.Time{}, fmt.Errorf("please wait before requesting another verification code: %w", domain.ErrRateLimited)
	}

	code, err := pkgtoken.NewVerificationCode()
	if err != nil {
		return time.Time{}, err
	}

	now := s.now().UTC()
	expiresAt := now.Add(codeTTL)
	c := &domain.VerificationCode{
		Email:     email,
		Code:      code,
		CreatedAt: now,
		ExpiresAt: expiresAt.Unix(),
	}
	if err := s.codes.Put(ctx, c); err != nil {
		return time.Time{}, fmt.Errorf("store verification code: %w", err)
	}

	if s.devLogging {
		slog.Debug("issued verification code", "email", email, "code", code)
	}

	// The code is durable at this point. A transport failure must not roll
	// it back: the user may have received the mail anyway, and a resend
	// simply overwrites the row.
	if err := s.mailer.SendEmail(email, smtp.VerificationSubject, smtp.VerificationBody(code)); err != nil {
		return time.Time{}, fmt.Errorf("send verification email: %v: %w", err, domain.ErrDeliveryFailed)
	}

	return expiresAt, nil
}

func (s *service) VerifyCode(ctx context.Context, email, code string) (string, error) {
	ok, err := s.codes.Consume(ctx, email, code)
	if err != nil {
		return "", fmt.Errorf("consume verification code: %w", err)
	}
	if !ok {
		// Wrong, expired and absent all produce the same answer.
		return "", fmt.Errorf("invalid or expired verification code: %w", domain.ErrInvalidCode)
	}

	now := s.now().UTC()
	tok := pkgtoken.DeriveVerificationToken(email, now, s.secret)
	t := &domain.VerificationToken{
		Token:     tok,
		Email:     email,
		CreatedAt: now,
		ExpiresAt: now.Add(tokenTTL).Unix(),
	}
	if err := s.tokens.Put(ctx, t); err != nil {
		return "", fmt.Errorf("store verification token: %w", err)
	}
	return tok, nil
}

// mayRequestCode is the cooldown guard: deny while the latest code for the
// address is younger than resendAfter. Absence of a code always allows.
func (s *service) mayRequestCode(ctx context.Context, email string) (bool, error) {
	createdAt, found, err := s.codes.LastCreatedAt(ctx, email)
	if err != nil {
		return false, err
	}
	if !found {
		return true, nil
	}
	return s.now().Sub(createdAt) >= resendAfter, nil
}
