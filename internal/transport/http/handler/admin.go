package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	adminapp "github.com/waza/waitlist-api/internal/application/admin"
	"github.com/waza/waitlist-api/internal/application/waitlist"
)

// AdminHandler handles the token-gated admin surface.
type AdminHandler struct {
	waitlistSvc waitlist.Service
	adminSvc    adminapp.Service
}

func NewAdminHandler(waitlistSvc waitlist.Service, adminSvc adminapp.Service) *AdminHandler {
	return &AdminHandler{waitlistSvc: waitlistSvc, adminSvc: adminSvc}
}

func (h *AdminHandler) ListSubmissions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))

	listing, err := h.waitlistSvc.List(r.Context(), waitlist.ListFilters{
		Industry:   q.Get("industry"),
		Experience: q.Get("experience"),
		Search:     q.Get("search"),
		Page:       page,
		Limit:      limit,
	})
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, AdminListEnvelope{
		Submissions: listing.Submissions,
		Stats:       listing.Stats,
		Filters:     listing.Filters,
		Pagination:  Pagination{Page: listing.Page, Limit: listing.Limit, Total: listing.Total},
	})
}

func (h *AdminHandler) DeleteSubmission(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.ID == "" {
		writeError(w, http.StatusBadRequest, "valid submission ID required")
		return
	}
	if err := h.waitlistSvc.Delete(r.Context(), body.ID); err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, DeletedEnvelope{
		Success: true,
		Message: "submission deleted successfully",
	})
}

func (h *AdminHandler) CreateToken(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Description string     `json:"description"`
		ExpiresAt   *time.Time `json:"expires_at"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	t, err := h.adminSvc.CreateToken(r.Context(), body.Description, body.ExpiresAt)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, AdminTokenEnvelope{
		ID:        t.ID,
		Token:     t.Token,
		ExpiresAt: t.ExpiresAt,
	})
}

func (h *AdminHandler) DeactivateToken(w http.ResponseWriter, r *http.Request) {
	if err := h.adminSvc.Deactivate(r.Context(), chi.URLParam(r, "id")); err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "admin token deactivated"})
}
