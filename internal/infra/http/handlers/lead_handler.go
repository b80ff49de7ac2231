package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/bloomview/bloomview-api/internal/infra/http/middleware"
	"github.com/bloomview/bloomview-api/internal/usecase"
)

type LeadHandler struct {
	UC          *usecase.SubmitInquiryUseCase
	rateLimiter *RateLimiter
}

func NewLeadHandler(uc *usecase.SubmitInquiryUseCase) *LeadHandler {
	return &LeadHandler{
		UC:          uc,
		rateLimiter: NewRateLimiter(10, time.Minute), // 10 req/min per IP
	}
}

// Capture handles POST /api/leads, the public intake boundary.
func (h *LeadHandler) Capture(w http.ResponseWriter, r *http.Request) {
	if !h.rateLimiter.Allow(getClientIP(r)) {
		writeError(w, http.StatusTooManyRequests, "Too many requests. Please try again later.")
		return
	}

	var input usecase.SubmitInquiryInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	// A filled decoy field means a bot. Respond exactly like a real capture
	// (fresh id, 201) so the submitter cannot tell it was detected, but
	// persist nothing.
	if input.Honeypot != "" {
		middleware.RecordHoneypotDrop()
		log.Printf("honeypot tripped, submission from %s dropped", getClientIP(r))
		writeJSON(w, http.StatusCreated, usecase.SubmitInquiryOutput{ID: uuid.New().String()})
		return
	}

	output, err := h.UC.Execute(r.Context(), input)
	if err != nil {
		if usecase.IsValidationError(err) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		log.Printf("lead capture failed: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to capture lead")
		return
	}

	middleware.RecordLeadCaptured()
	writeJSON(w, http.StatusCreated, output)
}
