package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/xavierca1/lead-insights/internal/entity"
)

type CallRepository struct {
	DB DBTX
}

func NewCallRepository(db DBTX) *CallRepository {
	return &CallRepository{DB: db}
}

func (r *CallRepository) Create(ctx context.Context, call *entity.Call) error {
	query := `
		INSERT INTO calls (id, audio_url, duration, created_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.DB.ExecContext(ctx, query, call.ID, call.AudioURL, call.Duration, call.CreatedAt)
	return err
}

func (r *CallRepository) AttachAnalysis(ctx context.Context, callID string, leadID *string, transcription string, analysis json.RawMessage) error {
	query := `
		UPDATE calls
		SET lead_id = $2, transcription = $3, analysis = $4
		WHERE id = $1
	`

	res, err := r.DB.ExecContext(ctx, query, callID, leadID, transcription, []byte(analysis))
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return entity.ErrNotFound
	}
	return nil
}

func (r *CallRepository) FindByIDWithLead(ctx context.Context, id string) (*entity.Call, error) {
	query := `
		SELECT c.id, c.lead_id, c.audio_url, c.duration, c.transcription, c.analysis, c.created_at,
		       l.id, l.name, l.email, l.company, l.phone, l.score, l.status, l.notes, l.created_at, l.updated_at
		FROM calls c
		LEFT JOIN leads l ON l.id = c.lead_id
		WHERE c.id = $1
	`

	var c entity.Call
	var analysis []byte
	var l struct {
		ID        sql.NullString
		Name      sql.NullString
		Email     sql.NullString
		Company   *string
		Phone     *string
		Score     sql.NullInt64
		Status    sql.NullString
		Notes     *string
		CreatedAt sql.NullTime
		UpdatedAt sql.NullTime
	}

	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&c.ID, &c.LeadID, &c.AudioURL, &c.Duration, &c.Transcription, &analysis, &c.CreatedAt,
		&l.ID, &l.Name, &l.Email, &l.Company, &l.Phone, &l.Score, &l.Status, &l.Notes, &l.CreatedAt, &l.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	c.Analysis = analysis
	if l.ID.Valid {
		c.Lead = &entity.Lead{
			ID:        l.ID.String,
			Name:      l.Name.String,
			Email:     l.Email.String,
			Company:   l.Company,
			Phone:     l.Phone,
			Score:     int(l.Score.Int64),
			Status:    l.Status.String,
			Notes:     l.Notes,
			CreatedAt: l.CreatedAt.Time,
			UpdatedAt: l.UpdatedAt.Time,
		}
	}
	return &c, nil
}

func (r *CallRepository) ListByLead(ctx context.Context, leadID string) ([]entity.Call, error) {
	query := `
		SELECT id, lead_id, audio_url, duration, transcription, analysis, created_at
		FROM calls
		WHERE lead_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.DB.QueryContext(ctx, query, leadID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	calls := []entity.Call{}
	for rows.Next() {
		var c entity.Call
		var analysis []byte
		if err := rows.Scan(&c.ID, &c.LeadID, &c.AudioURL, &c.Duration, &c.Transcription, &analysis, &c.CreatedAt); err != nil {
			return nil, err
		}
		c.Analysis = analysis
		calls = append(calls, c)
	}
	return calls, rows.Err()
}
