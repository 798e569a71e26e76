package entity

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Call is created as soon as the audio lands. LeadID, Transcription and
// Analysis stay empty until the queue worker finishes the agent round-trip.
type Call struct {
	ID            string          `json:"id"`
	LeadID        *string         `json:"leadId"`
	AudioURL      string          `json:"audioUrl"`
	Duration      int             `json:"duration"`
	Transcription *string         `json:"transcription,omitempty"`
	Analysis      json.RawMessage `json:"analysis,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`

	Lead *Lead `json:"lead,omitempty"`
}

func NewCall(audioURL string) *Call {
	return &Call{
		ID:        uuid.New().String(),
		AudioURL:  audioURL,
		Duration:  0,
		CreatedAt: time.Now(),
	}
}

type CallRepositoryInterface interface {
	Create(ctx context.Context, call *Call) error
	FindByIDWithLead(ctx context.Context, id string) (*Call, error)
	// AttachAnalysis links the call to its lead (nil when the analysis had
	// no lead_email) and stores transcription plus the raw agent payload.
	AttachAnalysis(ctx context.Context, callID string, leadID *string, transcription string, analysis json.RawMessage) error
}
