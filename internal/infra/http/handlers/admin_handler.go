package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bloomview/bloomview-api/internal/entity"
)

// AdminLeadHandler serves the passcode-guarded lead management routes. The
// guard runs as middleware; by the time these methods execute the caller is
// authorized.
type AdminLeadHandler struct {
	Leads entity.LeadRepositoryInterface
}

func NewAdminLeadHandler(leads entity.LeadRepositoryInterface) *AdminLeadHandler {
	return &AdminLeadHandler{Leads: leads}
}

// List handles GET /api/leads, newest first.
func (h *AdminLeadHandler) List(w http.ResponseWriter, r *http.Request) {
	leads, err := h.Leads.List(r.Context())
	if err != nil {
		log.Printf("listing leads failed: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to list leads")
		return
	}

	writeJSON(w, http.StatusOK, leads)
}

// UpdateStatus handles PATCH /api/leads/{id}.
func (h *AdminLeadHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var input struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if !entity.ValidStatus(input.Status) {
		writeError(w, http.StatusBadRequest, "status must be new, contacted or resolved")
		return
	}

	if err := h.Leads.UpdateStatus(r.Context(), id, input.Status); err != nil {
		if errors.Is(err, entity.ErrLeadNotFound) {
			writeError(w, http.StatusNotFound, "lead not found")
			return
		}
		log.Printf("updating lead %s failed: %v", id, err)
		writeError(w, http.StatusInternalServerError, "Failed to update lead")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Updated"})
}

// Delete handles DELETE /api/leads/{id}. Hard delete, no soft-delete flag.
func (h *AdminLeadHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.Leads.Delete(r.Context(), id); err != nil {
		if errors.Is(err, entity.ErrLeadNotFound) {
			writeError(w, http.StatusNotFound, "lead not found")
			return
		}
		log.Printf("deleting lead %s failed: %v", id, err)
		writeError(w, http.StatusInternalServerError, "Failed to delete lead")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Deleted"})
}
