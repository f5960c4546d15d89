package handler

import (
	"encoding/json"
	"net/http"

	"github.com/waza/waitlist-api/internal/application/waitlist"
	"github.com/waza/waitlist-api/internal/domain"
)

// WaitlistHandler handles the public submission endpoint.
type WaitlistHandler struct {
	svc waitlist.Service
}

func NewWaitlistHandler(svc waitlist.Service) *WaitlistHandler {
	return &WaitlistHandler{svc: svc}
}

func (h *WaitlistHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req domain.SubmissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	id, err := h.svc.Submit(r.Context(), req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, SubmittedEnvelope{
		Success: true,
		Message: "successfully joined the waitlist",
		ID:      id,
	})
}
