package handler

import (
	"encoding/json"
	"net/http"

	"github.com/waza/waitlist-api/internal/application/verification"
)

// VerificationHandler handles the email verification flow endpoints.
type VerificationHandler struct {
	svc verification.Service
}

func NewVerificationHandler(svc verification.Service) *VerificationHandler {
	return &VerificationHandler{svc: svc}
}

func (h *VerificationHandler) RequestCode(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.Email == "" {
		writeError(w, http.StatusBadRequest, "email is required")
		return
	}
	expiresAt, err := h.svc.RequestCode(r.Context(), body.Email)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, RequestCodeEnvelope{
		Message: "verification code sent",
		Expiry:  expiresAt.UnixMilli(),
	})
}

func (h *VerificationHandler) CheckCode(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email string `json:"email"`
		Code  string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.Email == "" || body.Code == "" {
		writeError(w, http.StatusBadRequest, "email and code are required")
		return
	}
	token, err := h.svc.VerifyCode(r.Context(), body.Email, body.Code)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, VerifiedEnvelope{
		Message:           "email verified successfully",
		Verified:          true,
		VerificationToken: token,
	})
}
