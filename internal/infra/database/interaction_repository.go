package database

import (
	"context"

	"github.com/xavierca1/lead-insights/internal/entity"
)

type InteractionRepository struct {
	DB DBTX
}

func NewInteractionRepository(db DBTX) *InteractionRepository {
	return &InteractionRepository{DB: db}
}

func (r *InteractionRepository) Create(ctx context.Context, interaction *entity.Interaction) error {
	query := `
		INSERT INTO interactions (id, lead_id, type, content, intent, extracted_data, suggested_action, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.DB.ExecContext(ctx, query,
		interaction.ID,
		interaction.LeadID,
		interaction.Type,
		interaction.Content,
		interaction.Intent,
		[]byte(interaction.ExtractedData),
		interaction.SuggestedAction,
		interaction.CreatedAt,
	)
	return err
}

func (r *InteractionRepository) ListByLead(ctx context.Context, leadID string) ([]entity.Interaction, error) {
	query := `
		SELECT id, lead_id, type, content, intent, extracted_data, suggested_action, created_at
		FROM interactions
		WHERE lead_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.DB.QueryContext(ctx, query, leadID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	interactions := []entity.Interaction{}
	for rows.Next() {
		var i entity.Interaction
		var extracted []byte
		if err := rows.Scan(&i.ID, &i.LeadID, &i.Type, &i.Content, &i.Intent, &extracted, &i.SuggestedAction, &i.CreatedAt); err != nil {
			return nil, err
		}
		i.ExtractedData = extracted
		interactions = append(interactions, i)
	}
	return interactions, rows.Err()
}
