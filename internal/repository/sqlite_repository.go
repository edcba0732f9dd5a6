package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"zai-proxy/internal/model"
)

type sqliteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) UsageRepository {
	return &sqliteRepository{db: db}
}

func (r *sqliteRepository) InsertRecord(ctx context.Context, rec *model.UsageRecord) error {
	query := `INSERT INTO usage_records
		(id, model, upstream_model, stream, outcome, frames, prompt_tokens, completion_tokens, total_tokens, duration_ms, error, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	var errText sql.NullString
	if rec.Error != "" {
		errText = sql.NullString{String: rec.Error, Valid: true}
	}
	_, err := r.db.ExecContext(ctx, query,
		rec.ID, rec.Model, rec.UpstreamModel, rec.Stream, string(rec.Outcome), rec.Frames,
		rec.PromptTokens, rec.CompletionTokens, rec.TotalTokens, rec.DurationMS, errText, rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("could not insert usage record: %w", err)
	}
	return nil
}

func (r *sqliteRepository) GetRecord(ctx context.Context, id string) (*model.UsageRecord, error) {
	query := `SELECT id, model, upstream_model, stream, outcome, frames, prompt_tokens, completion_tokens, total_tokens, duration_ms, error, created_at
		FROM usage_records WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)

	var (
		rec     model.UsageRecord
		outcome string
		errText sql.NullString
	)
	err := row.Scan(&rec.ID, &rec.Model, &rec.UpstreamModel, &rec.Stream, &outcome, &rec.Frames,
		&rec.PromptTokens, &rec.CompletionTokens, &rec.TotalTokens, &rec.DurationMS, &errText, &rec.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	rec.Outcome = model.Outcome(outcome)
	rec.Error = errText.String
	return &rec, nil
}

func (r *sqliteRepository) Summaries(ctx context.Context) ([]model.UsageSummary, error) {
	query := `SELECT model,
			COUNT(*),
			SUM(CASE WHEN outcome IN ('done', 'completed') THEN 1 ELSE 0 END),
			SUM(CASE WHEN outcome = 'eof' THEN 1 ELSE 0 END),
			SUM(CASE WHEN outcome = 'error' THEN 1 ELSE 0 END),
			SUM(CASE WHEN outcome = 'canceled' THEN 1 ELSE 0 END),
			COALESCE(SUM(prompt_tokens), 0),
			COALESCE(SUM(completion_tokens), 0),
			COALESCE(SUM(total_tokens), 0)
		FROM usage_records GROUP BY model ORDER BY model`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summaries := []model.UsageSummary{}
	for rows.Next() {
		var s model.UsageSummary
		if err := rows.Scan(&s.Model, &s.Requests, &s.Completed, &s.EOF, &s.Errors, &s.Canceled,
			&s.PromptTokens, &s.CompletionTokens, &s.TotalTokens); err != nil {
			return nil, err
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}
