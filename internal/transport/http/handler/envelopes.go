package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/waza/waitlist-api/internal/application/waitlist"
	"github.com/waza/waitlist-api/internal/domain"
)

// MessageEnvelope is the generic response wrapper.
type MessageEnvelope struct {
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// RequestCodeEnvelope wraps a successful code-request response.
type RequestCodeEnvelope struct {
	Message string `json:"message"`
	// Expiry is Unix milliseconds, matching what the form client expects.
	Expiry int64 `json:"expiry"`
}

// VerifiedEnvelope wraps a successful code check.
type VerifiedEnvelope struct {
	Message           string `json:"message"`
	Verified          bool   `json:"verified"`
	VerificationToken string `json:"verificationToken"`
}

// SubmittedEnvelope wraps a successful waitlist submission.
type SubmittedEnvelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	ID      string `json:"id"`
}

// AdminListEnvelope wraps the admin submissions listing.
type AdminListEnvelope struct {
	Submissions []domain.Submission    `json:"submissions"`
	Stats       domain.Stats           `json:"stats"`
	Filters     waitlist.FilterOptions `json:"filters"`
	Pagination  Pagination             `json:"pagination"`
}

type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

// DeletedEnvelope wraps a successful admin delete.
type DeletedEnvelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// AdminTokenEnvelope wraps a newly created admin credential. This is the only
// moment the raw token value is returned.
type AdminTokenEnvelope struct {
	ID        string     `json:"id"`
	Token     string     `json:"token"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, MessageEnvelope{Error: msg})
}
