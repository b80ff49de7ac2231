package usecase

import (
	"context"

	"github.com/bloomview/bloomview-api/internal/entity"
	"github.com/bloomview/bloomview-api/internal/infra/queue"
)

type LeadEventPublisher interface {
	PublishLeadCaptured(ctx context.Context, payload queue.LeadCapturedPayload) error
}

// Assistant is the capability boundary around the external AI. Callers must
// degrade to static content when it errors; it is never allowed to block the
// rest of the API.
type Assistant interface {
	AnswerQuestion(ctx context.Context, question string) (string, error)
	FetchTrendingPosts(ctx context.Context) ([]entity.Post, error)
}
