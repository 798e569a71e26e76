package entity

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Email struct {
	ID                string     `json:"id"`
	LeadID            string     `json:"leadId"`
	FromEmail         string     `json:"fromEmail"`
	Subject           string     `json:"subject"`
	Body              string     `json:"body"`
	IsOutbound        bool       `json:"isOutbound"`
	SuggestedResponse *string    `json:"suggestedResponse,omitempty"`
	ResponseGenerated *string    `json:"responseGenerated,omitempty"`
	SentAt            *time.Time `json:"sentAt,omitempty"`
	CreatedAt         time.Time  `json:"createdAt"`

	Lead *Lead `json:"lead,omitempty"`
}

// NewEmail builds an inbound email record. The lead id is filled in once
// the owning lead is resolved inside the pipeline transaction.
func NewEmail(fromEmail, subject, body string, suggestedResponse *string) *Email {
	if subject == "" {
		subject = "No Subject"
	}
	return &Email{
		ID:                uuid.New().String(),
		FromEmail:         fromEmail,
		Subject:           subject,
		Body:              body,
		IsOutbound:        false,
		SuggestedResponse: suggestedResponse,
		CreatedAt:         time.Now(),
	}
}

type EmailRepositoryInterface interface {
	FindByIDWithLead(ctx context.Context, id string) (*Email, error)
	// MarkResponseSent stores the approved response body, stamps sent_at
	// and flips the email to outbound.
	MarkResponseSent(ctx context.Context, id string, responseBody string) (*Email, error)
}
