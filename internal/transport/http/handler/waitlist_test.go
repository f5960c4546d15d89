package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/waza/waitlist-api/internal/application/waitlist"
	"github.com/waza/waitlist-api/internal/domain"
)

type mockWaitlistSvc struct{ mock.Mock }

func (m *mockWaitlistSvc) Submit(ctx context.Context, req domain.SubmissionRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

func (m *mockWaitlistSvc) List(ctx context.Context, f waitlist.ListFilters) (*waitlist.AdminListing, error) {
	args := m.Called(ctx, f)
	if l, _ := args.Get(0).(*waitlist.AdminListing); l != nil {
		return l, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockWaitlistSvc) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

const submitBody = `{
	"fullName": "Jane Doe",
	"email": "a@x.com",
	"company": "Acme Robotics",
	"jobTitle": "Hardware Engineer",
	"industry": "Robotics",
	"companySizeRange": "11-50",
	"designExperience": "5-10 years",
	"interestedFeatures": ["schematic-review"],
	"newsletter": true,
	"earlyAccess": false,
	"verificationToken": "T1"
}`

func TestSubmit_InvalidBody(t *testing.T) {
	h := NewWaitlistHandler(&mockWaitlistSvc{})
	rr := postJSON(h.Submit, "not-json")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestSubmit_ValidationError_400(t *testing.T) {
	svc := &mockWaitlistSvc{}
	svc.On("Submit", mock.Anything, mock.Anything).
		Return("", fmt.Errorf("field 'FullName' failed 'min': %w", domain.ErrBadRequest))

	h := NewWaitlistHandler(svc)
	rr := postJSON(h.Submit, submitBody)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestSubmit_InvalidToken_401(t *testing.T) {
	svc := &mockWaitlistSvc{}
	svc.On("Submit", mock.Anything, mock.Anything).
		Return("", fmt.Errorf("invalid token: %w", domain.ErrUnauthorized))

	h := NewWaitlistHandler(svc)
	rr := postJSON(h.Submit, submitBody)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestSubmit_EmailMismatch_401(t *testing.T) {
	svc := &mockWaitlistSvc{}
	svc.On("Submit", mock.Anything, mock.Anything).
		Return("", fmt.Errorf("mismatch: %w", domain.ErrEmailMismatch))

	h := NewWaitlistHandler(svc)
	rr := postJSON(h.Submit, submitBody)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestSubmit_DuplicateEmail_400(t *testing.T) {
	svc := &mockWaitlistSvc{}
	svc.On("Submit", mock.Anything, mock.Anything).
		Return("", fmt.Errorf("already registered: %w", domain.ErrConflict))

	h := NewWaitlistHandler(svc)
	rr := postJSON(h.Submit, submitBody)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestSubmit_Success_201(t *testing.T) {
	svc := &mockWaitlistSvc{}
	svc.On("Submit", mock.Anything, mock.MatchedBy(func(req domain.SubmissionRequest) bool {
		return req.Email == "a@x.com" && req.VerificationToken == "T1"
	})).Return("01J5ZX3", nil)

	h := NewWaitlistHandler(svc)
	rr := postJSON(h.Submit, submitBody)

	require.Equal(t, http.StatusCreated, rr.Code)
	var env SubmittedEnvelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
	assert.True(t, env.Success)
	assert.Equal(t, "01J5ZX3", env.ID)
	svc.AssertExpectations(t)
}
