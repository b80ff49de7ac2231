package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/bloomview/bloomview-api/internal/content"
	"github.com/bloomview/bloomview-api/internal/infra/http/middleware"
	"github.com/bloomview/bloomview-api/internal/usecase"
)

// AssistantHandler fronts the external AI. Upstream failures never surface
// as 5xx: chat degrades to a canned reply, trending posts to the static
// catalog. AI may be nil when no API key is configured.
type AssistantHandler struct {
	AI usecase.Assistant
}

func NewAssistantHandler(ai usecase.Assistant) *AssistantHandler {
	return &AssistantHandler{AI: ai}
}

// Chat handles POST /api/assistant/chat.
func (h *AssistantHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if strings.TrimSpace(input.Message) == "" {
		writeError(w, http.StatusBadRequest, "message is required")
		return
	}

	reply := content.AssistantFallbackReply
	if h.AI != nil {
		answer, err := h.AI.AnswerQuestion(r.Context(), input.Message)
		if err != nil {
			middleware.RecordAssistantFallback("chat")
			log.Printf("assistant chat degraded to fallback: %v", err)
		} else {
			reply = answer
		}
	}

	writeJSON(w, http.StatusOK, map[string]string{"reply": reply})
}

// TrendingPosts handles GET /api/posts/trending.
func (h *AssistantHandler) TrendingPosts(w http.ResponseWriter, r *http.Request) {
	if h.AI != nil {
		posts, err := h.AI.FetchTrendingPosts(r.Context())
		if err == nil && len(posts) > 0 {
			writeJSON(w, http.StatusOK, posts)
			return
		}
		if err != nil {
			middleware.RecordAssistantFallback("trending_posts")
			log.Printf("trending posts degraded to fallback: %v", err)
		}
	}

	writeJSON(w, http.StatusOK, content.FallbackPosts)
}
