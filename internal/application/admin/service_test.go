package admin

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/waza/waitlist-api/internal/domain"
)

type mockTokenStore struct{ mock.Mock }

func (m *mockTokenStore) Put(ctx context.Context, t *domain.AdminToken) error {
	return m.Called(ctx, t).Error(0)
}
func (m *mockTokenStore) Get(ctx context.Context, token string) (*domain.AdminToken, error) {
	args := m.Called(ctx, token)
	if t, _ := args.Get(0).(*domain.AdminToken); t != nil {
		return t, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockTokenStore) TouchLastUsed(ctx context.Context, token string, at time.Time) error {
	return m.Called(ctx, token, at).Error(0)
}
func (m *mockTokenStore) DeactivateByID(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

var testNow = time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)

func newTestService(ts *mockTokenStore, fallback string) Service {
	return NewService(ts, fallback, func() time.Time { return testNow })
}

func activeToken() *domain.AdminToken {
	return &domain.AdminToken{ID: "id1", Token: "tok1", IsActive: true, CreatedAt: testNow.Add(-24 * time.Hour)}
}

func TestVerify_EmptyToken(t *testing.T) {
	err := newTestService(nil, "").Verify(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestVerify_ActiveToken_Succeeds(t *testing.T) {
	ts := &mockTokenStore{}
	ts.On("Get", mock.Anything, "tok1").Return(activeToken(), nil)
	// last_used_at refresh is fire-and-forget.
	ts.On("TouchLastUsed", mock.Anything, "tok1", mock.Anything).Return(nil).Maybe()

	err := newTestService(ts, "").Verify(context.Background(), "tok1")
	assert.NoError(t, err)
}

func TestVerify_UnknownToken(t *testing.T) {
	ts := &mockTokenStore{}
	ts.On("Get", mock.Anything, "nope").Return(nil, fmt.Errorf("missing: %w", domain.ErrNotFound))

	err := newTestService(ts, "").Verify(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestVerify_InactiveToken(t *testing.T) {
	tok := activeToken()
	tok.IsActive = false
	ts := &mockTokenStore{}
	ts.On("Get", mock.Anything, "tok1").Return(tok, nil)

	err := newTestService(ts, "").Verify(context.Background(), "tok1")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestVerify_ExpiredToken(t *testing.T) {
	exp := testNow.Add(-time.Minute)
	tok := activeToken()
	tok.ExpiresAt = &exp
	ts := &mockTokenStore{}
	ts.On("Get", mock.Anything, "tok1").Return(tok, nil)

	err := newTestService(ts, "").Verify(context.Background(), "tok1")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestVerify_FutureExpiry_Succeeds(t *testing.T) {
	exp := testNow.Add(time.Hour)
	tok := activeToken()
	tok.ExpiresAt = &exp
	ts := &mockTokenStore{}
	ts.On("Get", mock.Anything, "tok1").Return(tok, nil)
	ts.On("TouchLastUsed", mock.Anything, "tok1", mock.Anything).Return(nil).Maybe()

	err := newTestService(ts, "").Verify(context.Background(), "tok1")
	assert.NoError(t, err)
}

func TestVerify_StorageDown_FallbackTokenMatches(t *testing.T) {
	ts := &mockTokenStore{}
	ts.On("Get", mock.Anything, "envtok").Return(nil, errors.New("dynamo unreachable"))

	err := newTestService(ts, "envtok").Verify(context.Background(), "envtok")
	assert.NoError(t, err)
}

func TestVerify_StorageDown_FallbackTokenMismatch(t *testing.T) {
	ts := &mockTokenStore{}
	ts.On("Get", mock.Anything, "other").Return(nil, errors.New("dynamo unreachable"))

	err := newTestService(ts, "envtok").Verify(context.Background(), "other")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestVerify_StorageDown_NoFallbackConfigured(t *testing.T) {
	ts := &mockTokenStore{}
	ts.On("Get", mock.Anything, "tok1").Return(nil, errors.New("dynamo unreachable"))

	err := newTestService(ts, "").Verify(context.Background(), "tok1")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestVerify_RejectedToken_DoesNotUseFallback(t *testing.T) {
	// The env credential only covers storage outages; a present-but-invalid
	// row must still be rejected even if its value matches the fallback.
	tok := activeToken()
	tok.IsActive = false
	ts := &mockTokenStore{}
	ts.On("Get", mock.Anything, "tok1").Return(tok, nil)

	err := newTestService(ts, "tok1").Verify(context.Background(), "tok1")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestCreateToken(t *testing.T) {
	ts := &mockTokenStore{}
	ts.On("Put", mock.Anything, mock.MatchedBy(func(tok *domain.AdminToken) bool {
		return tok.IsActive && len(tok.Token) == 32 && tok.ID != ""
	})).Return(nil)

	tok, err := newTestService(ts, "").CreateToken(context.Background(), "dashboard", nil)
	require.NoError(t, err)
	assert.Equal(t, "dashboard", tok.Description)
	assert.Nil(t, tok.ExpiresAt)
	ts.AssertExpectations(t)
}

func TestDeactivate_NotFound(t *testing.T) {
	ts := &mockTokenStore{}
	ts.On("DeactivateByID", mock.Anything, "missing").
		Return(fmt.Errorf("admin token not found: %w", domain.ErrNotFound))

	err := newTestService(ts, "").Deactivate(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
