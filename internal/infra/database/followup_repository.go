package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/xavierca1/lead-insights/internal/entity"
)

type FollowUpRepository struct {
	DB DBTX
}

func NewFollowUpRepository(db DBTX) *FollowUpRepository {
	return &FollowUpRepository{DB: db}
}

func (r *FollowUpRepository) Create(ctx context.Context, followUp *entity.FollowUp) error {
	query := `
		INSERT INTO follow_ups (id, lead_id, scheduled_date, action_type, status, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.DB.ExecContext(ctx, query,
		followUp.ID,
		followUp.LeadID,
		followUp.ScheduledDate,
		followUp.ActionType,
		followUp.Status,
		followUp.Notes,
		followUp.CreatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		// 23503: the lead this follow-up points at does not exist.
		if errors.As(err, &pqErr) && pqErr.Code == "23503" {
			return entity.ErrNotFound
		}
		return err
	}
	return nil
}

func (r *FollowUpRepository) List(ctx context.Context, status, leadID string) ([]entity.FollowUp, error) {
	query := `
		SELECT f.id, f.lead_id, f.scheduled_date, f.action_type, f.status, f.notes, f.completed_at, f.created_at,
		       l.id, l.name, l.email, l.company, l.phone, l.score, l.status, l.notes, l.created_at, l.updated_at
		FROM follow_ups f
		JOIN leads l ON l.id = f.lead_id
	`
	where := []string{}
	args := []any{}
	if status != "" {
		args = append(args, status)
		where = append(where, fmt.Sprintf("f.status = $%d", len(args)))
	}
	if leadID != "" {
		args = append(args, leadID)
		where = append(where, fmt.Sprintf("f.lead_id = $%d", len(args)))
	}
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY f.scheduled_date ASC"

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	followUps := []entity.FollowUp{}
	for rows.Next() {
		var f entity.FollowUp
		var l entity.Lead
		if err := rows.Scan(
			&f.ID, &f.LeadID, &f.ScheduledDate, &f.ActionType, &f.Status, &f.Notes, &f.CompletedAt, &f.CreatedAt,
			&l.ID, &l.Name, &l.Email, &l.Company, &l.Phone, &l.Score, &l.Status, &l.Notes, &l.CreatedAt, &l.UpdatedAt,
		); err != nil {
			return nil, err
		}
		f.Lead = &l
		followUps = append(followUps, f)
	}
	return followUps, rows.Err()
}

func (r *FollowUpRepository) ListByLead(ctx context.Context, leadID string) ([]entity.FollowUp, error) {
	query := `
		SELECT id, lead_id, scheduled_date, action_type, status, notes, completed_at, created_at
		FROM follow_ups
		WHERE lead_id = $1
		ORDER BY scheduled_date ASC
	`

	rows, err := r.DB.QueryContext(ctx, query, leadID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	followUps := []entity.FollowUp{}
	for rows.Next() {
		var f entity.FollowUp
		if err := rows.Scan(&f.ID, &f.LeadID, &f.ScheduledDate, &f.ActionType, &f.Status, &f.Notes, &f.CompletedAt, &f.CreatedAt); err != nil {
			return nil, err
		}
		followUps = append(followUps, f)
	}
	return followUps, rows.Err()
}

func (r *FollowUpRepository) Patch(ctx context.Context, id string, patch entity.FollowUpPatch) (*entity.FollowUp, error) {
	sets := []string{}
	args := []any{}

	// An empty status is treated as not provided.
	if patch.Status != nil && *patch.Status != "" {
		args = append(args, *patch.Status)
		sets = append(sets, fmt.Sprintf("status = $%d", len(args)))
		if *patch.Status == entity.FollowUpStatusCompleted {
			sets = append(sets, "completed_at = NOW()")
		}
	}
	if patch.Notes != nil {
		args = append(args, *patch.Notes)
		sets = append(sets, fmt.Sprintf("notes = $%d", len(args)))
	}
	if len(sets) == 0 {
		sets = append(sets, "status = status")
	}

	args = append(args, id)
	query := fmt.Sprintf(`
		UPDATE follow_ups SET %s
		WHERE id = $%d
		RETURNING id, lead_id, scheduled_date, action_type, status, notes, completed_at, created_at
	`, strings.Join(sets, ", "), len(args))

	var f entity.FollowUp
	err := r.DB.QueryRowContext(ctx, query, args...).Scan(
		&f.ID, &f.LeadID, &f.ScheduledDate, &f.ActionType, &f.Status, &f.Notes, &f.CompletedAt, &f.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}
