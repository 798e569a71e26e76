package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/xavierca1/lead-insights/internal/entity"
)

// EmailStore commits the whole email pipeline in one transaction: lead
// upsert, email insert and interaction insert either all land or none do,
// so a failure halfway through cannot leave an orphaned lead behind.
type EmailStore struct {
	DB *sql.DB
}

func NewEmailStore(db *sql.DB) *EmailStore {
	return &EmailStore{DB: db}
}

func (s *EmailStore) SaveProcessedEmail(ctx context.Context, lead *entity.Lead, email *entity.Email, interaction *entity.Interaction) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if err := NewLeadRepository(tx).Upsert(ctx, lead); err != nil {
		return fmt.Errorf("upsert lead: %w", err)
	}

	email.LeadID = lead.ID
	if err := NewEmailRepository(tx).Create(ctx, email); err != nil {
		return fmt.Errorf("create email: %w", err)
	}

	interaction.LeadID = lead.ID
	if err := NewInteractionRepository(tx).Create(ctx, interaction); err != nil {
		return fmt.Errorf("create interaction: %w", err)
	}

	return tx.Commit()
}
