package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/bloomview/bloomview-api/internal/infra/http/middleware"
	"github.com/bloomview/bloomview-api/internal/usecase"
)

type SubscribeHandler struct {
	UC *usecase.SubscribeUseCase
}

func NewSubscribeHandler(uc *usecase.SubscribeUseCase) *SubscribeHandler {
	return &SubscribeHandler{UC: uc}
}

// Handle handles POST /api/subscribe. Re-subscribing the same email returns
// the same success it did the first time.
func (h *SubscribeHandler) Handle(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if err := h.UC.Execute(r.Context(), input.Email); err != nil {
		if usecase.IsValidationError(err) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		log.Printf("subscribe failed: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to subscribe")
		return
	}

	middleware.RecordSubscription()
	writeJSON(w, http.StatusOK, map[string]string{"message": "Subscribed"})
}
