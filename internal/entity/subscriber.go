package entity

import "context"

// Subscriber is a newsletter opt-in. The email is the identity; the set has
// insert-if-absent semantics and exposes no update or delete path.
type Subscriber struct {
	Email string `json:"email"`
}

type SubscriberRepositoryInterface interface {
	// Subscribe inserts the email if absent. Re-subscribing is a no-op.
	Subscribe(ctx context.Context, email string) error
}
