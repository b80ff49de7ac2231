package usecase

import (
	"context"
	"fmt"
	"log"

	"github.com/bloomview/bloomview-api/internal/entity"
	"github.com/bloomview/bloomview-api/internal/infra/queue"
)

type SubmitInquiryInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Service string `json:"service"`
	Message string `json:"message"`

	// Honeypot is a decoy form field invisible to humans. The handler drops
	// submissions that fill it before this usecase ever runs.
	Honeypot string `json:"honeypot,omitempty"`
}

type SubmitInquiryOutput struct {
	ID string `json:"id"`
}

type SubmitInquiryUseCase struct {
	Leads  entity.LeadRepositoryInterface
	Events LeadEventPublisher // optional, nil when the queue is not configured
}

func NewSubmitInquiryUseCase(leads entity.LeadRepositoryInterface, events LeadEventPublisher) *SubmitInquiryUseCase {
	return &SubmitInquiryUseCase{Leads: leads, Events: events}
}

func (uc *SubmitInquiryUseCase) Execute(ctx context.Context, input SubmitInquiryInput) (*SubmitInquiryOutput, error) {
	if errs := ValidateInquiryInput(input); len(errs) > 0 {
		return nil, errs
	}

	lead := entity.NewLead(input.Name, input.Email, input.Service, input.Message)

	if err := uc.Leads.Insert(ctx, lead); err != nil {
		return nil, fmt.Errorf("saving lead: %w", err)
	}

	// Best effort: a dead queue must not fail the submission.
	if uc.Events != nil {
		payload := queue.LeadCapturedPayload{
			LeadID:     lead.ID,
			Name:       lead.Name,
			Email:      lead.Email,
			Service:    lead.Service,
			Message:    lead.Message,
			CapturedAt: lead.CreatedAt,
		}
		if err := uc.Events.PublishLeadCaptured(ctx, payload); err != nil {
			log.Printf("lead %s captured but notification publish failed: %v", lead.ID, err)
		}
	}

	return &SubmitInquiryOutput{ID: lead.ID}, nil
}
