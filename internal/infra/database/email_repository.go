package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/xavierca1/lead-insights/internal/entity"
)

type EmailRepository struct {
	DB DBTX
}

func NewEmailRepository(db DBTX) *EmailRepository {
	return &EmailRepository{DB: db}
}

func (r *EmailRepository) Create(ctx context.Context, email *entity.Email) error {
	query := `
		INSERT INTO emails (id, lead_id, from_email, subject, body, is_outbound, suggested_response, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.DB.ExecContext(ctx, query,
		email.ID,
		email.LeadID,
		email.FromEmail,
		email.Subject,
		email.Body,
		email.IsOutbound,
		email.SuggestedResponse,
		email.CreatedAt,
	)
	return err
}

func (r *EmailRepository) FindByIDWithLead(ctx context.Context, id string) (*entity.Email, error) {
	query := `
		SELECT e.id, e.lead_id, e.from_email, e.subject, e.body, e.is_outbound,
		       e.suggested_response, e.response_generated, e.sent_at, e.created_at,
		       l.id, l.name, l.email, l.company, l.phone, l.score, l.status, l.notes, l.created_at, l.updated_at
		FROM emails e
		JOIN leads l ON l.id = e.lead_id
		WHERE e.id = $1
	`

	var e entity.Email
	var l entity.Lead
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&e.ID, &e.LeadID, &e.FromEmail, &e.Subject, &e.Body, &e.IsOutbound,
		&e.SuggestedResponse, &e.ResponseGenerated, &e.SentAt, &e.CreatedAt,
		&l.ID, &l.Name, &l.Email, &l.Company, &l.Phone, &l.Score, &l.Status, &l.Notes, &l.CreatedAt, &l.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	e.Lead = &l
	return &e, nil
}

func (r *EmailRepository) MarkResponseSent(ctx context.Context, id string, responseBody string) (*entity.Email, error) {
	query := `
		UPDATE emails
		SET response_generated = $2, sent_at = NOW(), is_outbound = TRUE
		WHERE id = $1
		RETURNING id, lead_id, from_email, subject, body, is_outbound,
		          suggested_response, response_generated, sent_at, created_at
	`

	var e entity.Email
	err := r.DB.QueryRowContext(ctx, query, id, responseBody).Scan(
		&e.ID, &e.LeadID, &e.FromEmail, &e.Subject, &e.Body, &e.IsOutbound,
		&e.SuggestedResponse, &e.ResponseGenerated, &e.SentAt, &e.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *EmailRepository) ListByLead(ctx context.Context, leadID string) ([]entity.Email, error) {
	query := `
		SELECT id, lead_id, from_email, subject, body, is_outbound,
		       suggested_response, response_generated, sent_at, created_at
		FROM emails
		WHERE lead_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.DB.QueryContext(ctx, query, leadID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	emails := []entity.Email{}
	for rows.Next() {
		var e entity.Email
		if err := rows.Scan(
			&e.ID, &e.LeadID, &e.FromEmail, &e.Subject, &e.Body, &e.IsOutbound,
			&e.SuggestedResponse, &e.ResponseGenerated, &e.SentAt, &e.CreatedAt,
		); err != nil {
			return nil, err
		}
		emails = append(emails, e)
	}
	return emails, rows.Err()
}
