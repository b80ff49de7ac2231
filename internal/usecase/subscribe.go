package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/bloomview/bloomview-api/internal/entity"
)

type SubscribeUseCase struct {
	Subscribers entity.SubscriberRepositoryInterface
}

func NewSubscribeUseCase(subscribers entity.SubscriberRepositoryInterface) *SubscribeUseCase {
	return &SubscribeUseCase{Subscribers: subscribers}
}

// Execute adds the email to the newsletter set. Subscribing twice is a no-op.
func (uc *SubscribeUseCase) Execute(ctx context.Context, email string) error {
	email = strings.TrimSpace(strings.ToLower(email))

	if email == "" {
		return ValidationError{"email", "is required"}
	}
	if !isValidEmail(email) {
		return ValidationError{"email", "is invalid"}
	}

	if err := uc.Subscribers.Subscribe(ctx, email); err != nil {
		return fmt.Errorf("saving subscriber: %w", err)
	}
	return nil
}
