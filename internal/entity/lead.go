package entity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Lead statuses. Transitions are operator-driven and unordered: any status
// can be set from any other, the admin UI just happens to offer forward ones.
const (
	StatusNew       = "new"
	StatusContacted = "contacted"
	StatusResolved  = "resolved"
)

var (
	ErrLeadNotFound  = errors.New("lead not found")
	ErrInvalidStatus = errors.New("invalid lead status")
)

type Lead struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Service   string    `json:"service"`
	Message   string    `json:"message"`
	Status    string    `json:"status"` // new, contacted, resolved
	CreatedAt time.Time `json:"created_at"`
}

// NewLead assigns the ID and timestamp here so every store implementation
// persists identical records.
func NewLead(name, email, service, message string) *Lead {
	return &Lead{
		ID:        uuid.New().String(),
		Name:      name,
		Email:     email,
		Service:   service,
		Message:   message,
		Status:    StatusNew,
		CreatedAt: time.Now().UTC(),
	}
}

func ValidStatus(status string) bool {
	switch status {
	case StatusNew, StatusContacted, StatusResolved:
		return true
	}
	return false
}

type LeadRepositoryInterface interface {
	Insert(ctx context.Context, lead *Lead) error

	// List returns every lead ordered by created_at descending (newest first).
	List(ctx context.Context) ([]Lead, error)

	// UpdateStatus returns ErrLeadNotFound for unknown ids. Writing the
	// current status again is a no-op, not an error.
	UpdateStatus(ctx context.Context, id, status string) error

	// Delete permanently removes the record. ErrLeadNotFound for unknown ids.
	Delete(ctx context.Context, id string) error
}
