package entity

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const (
	FollowUpStatusPending   = "pending"
	FollowUpStatusCompleted = "completed"
)

type FollowUp struct {
	ID            string     `json:"id"`
	LeadID        string     `json:"leadId"`
	ScheduledDate time.Time  `json:"scheduledDate"`
	ActionType    string     `json:"actionType"`
	Status        string     `json:"status"` // pending, completed
	Notes         *string    `json:"notes,omitempty"`
	CompletedAt   *time.Time `json:"completedAt,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`

	Lead *Lead `json:"lead,omitempty"`
}

type FollowUpPatch struct {
	Status *string `json:"status"`
	Notes  *string `json:"notes"`
}

func NewFollowUp(leadID string, scheduledDate time.Time, actionType string, notes *string) *FollowUp {
	return &FollowUp{
		ID:            uuid.New().String(),
		LeadID:        leadID,
		ScheduledDate: scheduledDate,
		ActionType:    actionType,
		Status:        FollowUpStatusPending,
		Notes:         notes,
		CreatedAt:     time.Now(),
	}
}

type FollowUpRepositoryInterface interface {
	Create(ctx context.Context, followUp *FollowUp) error
	List(ctx context.Context, status, leadID string) ([]FollowUp, error)
	// Patch applies a partial update. Setting status to "completed" stamps
	// completed_at.
	Patch(ctx context.Context, id string, patch FollowUpPatch) (*FollowUp, error)
}
