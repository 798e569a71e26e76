package entity

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

const (
	InteractionTypeCall  = "call"
	InteractionTypeEmail = "email"
)

// Interaction is the append-only audit trail: one row per analysis that
// resolved to a lead. Never updated, never deleted.
type Interaction struct {
	ID              string          `json:"id"`
	LeadID          string          `json:"leadId"`
	Type            string          `json:"type"` // call, email
	Content         string          `json:"content"`
	Intent          *string         `json:"intent,omitempty"`
	ExtractedData   json.RawMessage `json:"extractedData,omitempty"`
	SuggestedAction *string         `json:"suggestedAction,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
}

func NewInteraction(leadID, interactionType, content string) *Interaction {
	return &Interaction{
		ID:        uuid.New().String(),
		LeadID:    leadID,
		Type:      interactionType,
		Content:   content,
		CreatedAt: time.Now(),
	}
}

type InteractionRepositoryInterface interface {
	Create(ctx context.Context, interaction *Interaction) error
	ListByLead(ctx context.Context, leadID string) ([]Interaction, error)
}
