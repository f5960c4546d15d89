package verification

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/waza/waitlist-api/internal/domain"
)

// --- mocks ---

type mockCodeStore struct{ mock.Mock }

func (m *mockCodeStore) Put(ctx context.Context, c *domain.VerificationCode) error {
	return m.Called(ctx, c).Error(0)
}
func (m *mockCodeStore) Consume(ctx context.Context, email, code string) (bool, error) {
	args := m.Called(ctx, email, code)
	return args.Bool(0), args.Error(1)
}
func (m *mockCodeStore) LastCreatedAt(ctx context.Context, email string) (time.Time, bool, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(time.Time), args.Bool(1), args.Error(2)
}

type mockTokenStore struct{ mock.Mock }

func (m *mockTokenStore) Put(ctx context.Context, t *domain.VerificationToken) error {
	return m.Called(ctx, t).Error(0)
}

type mockMailer struct{ mock.Mock }

func (m *mockMailer) SendEmail(to, subject, htmlBody string) error {
	return m.Called(to, subject, htmlBody).Error(0)
}

// --- builder ---

func newService(cs *mockCodeStore, ts *mockTokenStore, ml *mockMailer, now time.Time) Service {
	return NewService(ServiceDeps{
		Codes:  cs,
		Tokens: ts,
		Mailer: ml,
		Secret: "test-secret",
		Now:    func() time.Time { return now },
	})
}

// --- RequestCode ---

func TestRequestCode_InvalidEmail(t *testing.T) {
	svc := newService(nil, nil, nil, time.Now())

	for _, email := range []string{"", "no-at-sign", "two@@x.com ", "a b@x.com", "a@x"} {
		_, err := svc.RequestCode(context.Background(), email)
		assert.ErrorIs(t, err, domain.ErrBadRequest, "email %q", email)
	}
}

func TestRequestCode_CooldownDenied(t *testing.T) {
	now := time.Now()
	cs := &mockCodeStore{}
	cs.On("LastCreatedAt", mock.Anything, "a@x.com").Return(now.Add(-30*time.Second), true, nil)

	svc := newService(cs, nil, nil, now)
	_, err := svc.RequestCode(context.Background(), "a@x.com")

	assert.ErrorIs(t, err, domain.ErrRateLimited)
	cs.AssertExpectations(t)
}

func TestRequestCode_CooldownElapsed_Succeeds(t *testing.T) {
	now := time.Now()
	cs := &mockCodeStore{}
	cs.On("LastCreatedAt", mock.Anything, "a@x.com").Return(now.Add(-61*time.Second), true, nil)
	cs.On("Put", mock.Anything, mock.MatchedBy(func(c *domain.VerificationCode) bool {
		return c.Email == "a@x.com" && len(c.Code) == 6
	})).Return(nil)
	ml := &mockMailer{}
	ml.On("SendEmail", "a@x.com", mock.Anything, mock.Anything).Return(nil)

	svc := newService(cs, nil, ml, now)
	expiresAt, err := svc.RequestCode(context.Background(), "a@x.com")

	require.NoError(t, err)
	assert.Equal(t, now.UTC().Add(10*time.Minute).Unix(), expiresAt.Unix())
	cs.AssertExpectations(t)
	ml.AssertExpectations(t)
}

func TestRequestCode_NoPriorCode_Succeeds(t *testing.T) {
	cs := &mockCodeStore{}
	cs.On("LastCreatedAt", mock.Anything, "new@x.com").Return(time.Time{}, false, nil)
	cs.On("Put", mock.Anything, mock.Anything).Return(nil)
	ml := &mockMailer{}
	ml.On("SendEmail", "new@x.com", mock.Anything, mock.Anything).Return(nil)

	svc := newService(cs, nil, ml, time.Now())
	_, err := svc.RequestCode(context.Background(), "new@x.com")

	require.NoError(t, err)
}

func TestRequestCode_StorePutFails_Propagates(t *testing.T) {
	cs := &mockCodeStore{}
	cs.On("LastCreatedAt", mock.Anything, "a@x.com").Return(time.Time{}, false, nil)
	cs.On("Put", mock.Anything, mock.Anything).Return(errors.New("dynamo down"))

	svc := newService(cs, nil, nil, time.Now())
	_, err := svc.RequestCode(context.Background(), "a@x.com")

	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrDeliveryFailed)
}

func TestRequestCode_DeliveryFails_CodeStaysStored(t *testing.T) {
	cs := &mockCodeStore{}
	cs.On("LastCreatedAt", mock.Anything, "a@x.com").Return(time.Time{}, false, nil)
	cs.On("Put", mock.Anything, mock.Anything).Return(nil)
	ml := &mockMailer{}
	ml.On("SendEmail", "a@x.com", mock.Anything, mock.Anything).Return(errors.New("smtp timeout"))

	svc := newService(cs, nil, ml, time.Now())
	_, err := svc.RequestCode(context.Background(), "a@x.com")

	assert.ErrorIs(t, err, domain.ErrDeliveryFailed)
	// Put happened and was not rolled back.
	cs.AssertCalled(t, "Put", mock.Anything, mock.Anything)
	cs.AssertNotCalled(t, "Consume", mock.Anything, mock.Anything, mock.Anything)
}

// --- VerifyCode ---

func TestVerifyCode_Success_IssuesToken(t *testing.T) {
	now := time.Now()
	cs := &mockCodeStore{}
	cs.On("Consume", mock.Anything, "a@x.com", "482913").Return(true, nil)
	ts := &mockTokenStore{}
	ts.On("Put", mock.Anything, mock.MatchedBy(func(tok *domain.VerificationToken) bool {
		return tok.Email == "a@x.com" && len(tok.Token) == 64 &&
			tok.ExpiresAt == now.UTC().Add(30*time.Minute).Unix()
	})).Return(nil)

	svc := newService(cs, ts, nil, now)
	token, err := svc.VerifyCode(context.Background(), "a@x.com", "482913")

	require.NoError(t, err)
	assert.Len(t, token, 64) // sha256 hex
	ts.AssertExpectations(t)
}

func TestVerifyCode_WrongOrExpired_SameError(t *testing.T) {
	cs := &mockCodeStore{}
	cs.On("Consume", mock.Anything, "a@x.com", "000000").Return(false, nil)

	svc := newService(cs, nil, nil, time.Now())
	_, err := svc.VerifyCode(context.Background(), "a@x.com", "000000")

	assert.ErrorIs(t, err, domain.ErrInvalidCode)
}

func TestVerifyCode_SecondConsumeFails(t *testing.T) {
	cs := &mockCodeStore{}
	cs.On("Consume", mock.Anything, "a@x.com", "482913").Return(true, nil).Once()
	cs.On("Consume", mock.Anything, "a@x.com", "482913").Return(false, nil).Once()
	ts := &mockTokenStore{}
	ts.On("Put", mock.Anything, mock.Anything).Return(nil)

	svc := newService(cs, ts, nil, time.Now())

	_, err := svc.VerifyCode(context.Background(), "a@x.com", "482913")
	require.NoError(t, err)

	_, err = svc.VerifyCode(context.Background(), "a@x.com", "482913")
	assert.ErrorIs(t, err, domain.ErrInvalidCode)
}

func TestVerifyCode_StoreErrorPropagates(t *testing.T) {
	cs := &mockCodeStore{}
	cs.On("Consume", mock.Anything, "a@x.com", "123456").Return(false, errors.New("dynamo down"))

	svc := newService(cs, nil, nil, time.Now())
	_, err := svc.VerifyCode(context.Background(), "a@x.com", "123456")

	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrInvalidCode)
}

func TestVerifyCode_TokensDifferPerIssueTime(t *testing.T) {
	cs := &mockCodeStore{}
	cs.On("Consume", mock.Anything, "a@x.com", mock.Anything).Return(true, nil)
	ts := &mockTokenStore{}
	ts.On("Put", mock.Anything, mock.Anything).Return(nil)

	t1, err := newService(cs, ts, nil, time.UnixMilli(1000)).VerifyCode(context.Background(), "a@x.com", "111111")
	require.NoError(t, err)
	t2, err := newService(cs, ts, nil, time.UnixMilli(2000)).VerifyCode(context.Background(), "a@x.com", "222222")
	require.NoError(t, err)

	assert.NotEqual(t, t1, t2)
}
