package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/xavierca1/lead-insights/internal/entity"
)

type LeadRepository struct {
	DB DBTX
}

func NewLeadRepository(db DBTX) *LeadRepository {
	return &LeadRepository{DB: db}
}

// Upsert resolves a lead by its email in one statement. New emails get the
// full identity from the analysis; existing leads only move score/status
// (first write wins on name/company, last analysis wins on score/status).
// The unique index on email is what keeps concurrent submissions from
// creating duplicates.
func (r *LeadRepository) Upsert(ctx context.Context, lead *entity.Lead) error {
	query := `
		INSERT INTO leads (id, name, email, company, score, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		ON CONFLICT (email)
		DO UPDATE SET
			score = EXCLUDED.score,
			status = EXCLUDED.status,
			updated_at = NOW()
		RETURNING id, name, email, company, phone, score, status, notes, created_at, updated_at
	`

	return r.DB.QueryRowContext(
		ctx,
		query,
		lead.ID,
		lead.Name,
		lead.Email,
		lead.Company,
		lead.Score,
		lead.Status,
	).Scan(
		&lead.ID,
		&lead.Name,
		&lead.Email,
		&lead.Company,
		&lead.Phone,
		&lead.Score,
		&lead.Status,
		&lead.Notes,
		&lead.CreatedAt,
		&lead.UpdatedAt,
	)
}

func (r *LeadRepository) List(ctx context.Context, status string, limit int) ([]entity.Lead, error) {
	query := `
		SELECT l.id, l.name, l.email, l.company, l.phone, l.score, l.status, l.notes,
		       l.created_at, l.updated_at,
		       (SELECT COUNT(*) FROM calls c WHERE c.lead_id = l.id),
		       (SELECT COUNT(*) FROM emails e WHERE e.lead_id = l.id),
		       (SELECT COUNT(*) FROM interactions i WHERE i.lead_id = l.id)
		FROM leads l
	`
	args := []any{}
	if status != "" {
		query += ` WHERE l.status = $1`
		args = append(args, status)
	}
	query += fmt.Sprintf(` ORDER BY l.created_at DESC LIMIT $%d`, len(args)+1)
	args = append(args, limit)

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	leads := []entity.Lead{}
	for rows.Next() {
		var l entity.Lead
		var counts entity.LeadCounts
		if err := rows.Scan(
			&l.ID, &l.Name, &l.Email, &l.Company, &l.Phone, &l.Score, &l.Status, &l.Notes,
			&l.CreatedAt, &l.UpdatedAt,
			&counts.Calls, &counts.Emails, &counts.Interactions,
		); err != nil {
			return nil, err
		}
		l.Counts = &counts
		leads = append(leads, l)
	}
	return leads, rows.Err()
}

func (r *LeadRepository) FindByID(ctx context.Context, id string) (*entity.Lead, error) {
	query := `
		SELECT id, name, email, company, phone, score, status, notes, created_at, updated_at
		FROM leads
		WHERE id = $1
	`

	var l entity.Lead
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&l.ID, &l.Name, &l.Email, &l.Company, &l.Phone, &l.Score, &l.Status, &l.Notes,
		&l.CreatedAt, &l.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// FindByIDWithRelations loads the lead detail view: calls, emails and
// interactions newest first, follow-ups by scheduled date.
func (r *LeadRepository) FindByIDWithRelations(ctx context.Context, id string) (*entity.Lead, error) {
	lead, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	calls := NewCallRepository(r.DB)
	if lead.Calls, err = calls.ListByLead(ctx, id); err != nil {
		return nil, err
	}
	emails := NewEmailRepository(r.DB)
	if lead.Emails, err = emails.ListByLead(ctx, id); err != nil {
		return nil, err
	}
	interactions := NewInteractionRepository(r.DB)
	if lead.Interactions, err = interactions.ListByLead(ctx, id); err != nil {
		return nil, err
	}
	followUps := NewFollowUpRepository(r.DB)
	if lead.FollowUps, err = followUps.ListByLead(ctx, id); err != nil {
		return nil, err
	}

	return lead, nil
}

func (r *LeadRepository) Patch(ctx context.Context, id string, patch entity.LeadPatch) (*entity.Lead, error) {
	sets := []string{"updated_at = NOW()"}
	args := []any{}

	if patch.Status != nil {
		args = append(args, *patch.Status)
		sets = append(sets, fmt.Sprintf("status = $%d", len(args)))
	}
	if patch.Score != nil {
		args = append(args, *patch.Score)
		sets = append(sets, fmt.Sprintf("score = $%d", len(args)))
	}
	if patch.Notes != nil {
		args = append(args, *patch.Notes)
		sets = append(sets, fmt.Sprintf("notes = $%d", len(args)))
	}

	args = append(args, id)
	query := fmt.Sprintf(`
		UPDATE leads SET %s
		WHERE id = $%d
		RETURNING id, name, email, company, phone, score, status, notes, created_at, updated_at
	`, strings.Join(sets, ", "), len(args))

	var l entity.Lead
	err := r.DB.QueryRowContext(ctx, query, args...).Scan(
		&l.ID, &l.Name, &l.Email, &l.Company, &l.Phone, &l.Score, &l.Status, &l.Notes,
		&l.CreatedAt, &l.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}
