package entity

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Lead tiers as scored by the AI agent.
const (
	TierHot  = "hot"
	TierWarm = "warm"
	TierCold = "cold"
)

type Lead struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Company   *string   `json:"company,omitempty"`
	Phone     *string   `json:"phone,omitempty"`
	Score     int       `json:"score"`
	Status    string    `json:"status"` // hot, warm, cold
	Notes     *string   `json:"notes,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Populated on list/detail reads only.
	Counts       *LeadCounts   `json:"_count,omitempty"`
	Calls        []Call        `json:"calls,omitempty"`
	Emails       []Email       `json:"emails,omitempty"`
	Interactions []Interaction `json:"interactions,omitempty"`
	FollowUps    []FollowUp    `json:"followUps,omitempty"`
}

type LeadCounts struct {
	Calls        int `json:"calls"`
	Emails       int `json:"emails"`
	Interactions int `json:"interactions"`
}

// LeadPatch carries a partial update. A nil field means "not provided",
// which is different from setting the field to its zero value.
type LeadPatch struct {
	Status *string `json:"status"`
	Score  *int    `json:"score"`
	Notes  *string `json:"notes"`
}

func (p LeadPatch) Empty() bool {
	return p.Status == nil && p.Score == nil && p.Notes == nil
}

// NewLead builds a lead from an analysis result. Name falls back to
// "Unknown" when the agent could not identify the sender.
func NewLead(name, email string, company *string, score int, status string) *Lead {
	if name == "" {
		name = "Unknown"
	}
	now := time.Now()
	return &Lead{
		ID:        uuid.New().String(),
		Name:      name,
		Email:     email,
		Company:   company,
		Score:     score,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

type LeadRepositoryInterface interface {
	// Upsert inserts the lead or, when the email already exists, updates
	// score/status only. The receiver is overwritten with the stored row.
	Upsert(ctx context.Context, lead *Lead) error
	List(ctx context.Context, status string, limit int) ([]Lead, error)
	FindByIDWithRelations(ctx context.Context, id string) (*Lead, error)
	Patch(ctx context.Context, id string, patch LeadPatch) (*Lead, error)
}
