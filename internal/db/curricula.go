package db

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/m-ayala/edcube-mvp/internal/types"
)

// SaveCurriculum inserts or replaces a curriculum document.
func (db *DB) SaveCurriculum(ctx context.Context, curriculum *types.Curriculum) error {
	doc, err := json.Marshal(curriculum)
	if err != nil {
		return fmt.Errorf("failed to marshal curriculum: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO curricula (id, grade_level, subject, topic, status, document, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		 ON CONFLICT (id) DO UPDATE SET status = $5, document = $6, updated_at = NOW()`,
		curriculum.ID, curriculum.GradeLevel, curriculum.Subject, curriculum.Topic,
		curriculum.Status, doc, curriculum.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save curriculum %s: %w", curriculum.ID, err)
	}
	return nil
}

// GetCurriculum loads a curriculum document by ID. Returns nil when the ID
// is unknown.
func (db *DB) GetCurriculum(ctx context.Context, id uuid.UUID) (*types.Curriculum, error) {
	var doc []byte
	err := db.pool.QueryRow(ctx,
		`SELECT document FROM curricula WHERE id = $1`, id,
	).Scan(&doc)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get curriculum %s: %w", id, err)
	}

	var curriculum types.Curriculum
	if err := json.Unmarshal(doc, &curriculum); err != nil {
		return nil, fmt.Errorf("failed to unmarshal curriculum %s: %w", id, err)
	}
	return &curriculum, nil
}

// DeleteCurriculum removes a curriculum; its generation runs go with it
// through the foreign-key cascade. Returns false when the ID is unknown.
func (db *DB) DeleteCurriculum(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := db.pool.Exec(ctx, `DELETE FROM curricula WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete curriculum %s: %w", id, err)
	}
	return tag.RowsAffected() > 0, nil
}

// ListCurricula returns summaries of stored curricula, newest first.
func (db *DB) ListCurricula(ctx context.Context, limit int) ([]CurriculumSummary, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := db.pool.Query(ctx,
		`SELECT id, grade_level, subject, topic, status, created_at, updated_at
		 FROM curricula ORDER BY created_at DESC LIMIT $1`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list curricula: %w", err)
	}
	defer rows.Close()

	var summaries []CurriculumSummary
	for rows.Next() {
		var s CurriculumSummary
		if err := rows.Scan(&s.ID, &s.GradeLevel, &s.Subject, &s.Topic, &s.Status, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan curriculum row: %w", err)
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read curriculum rows: %w", err)
	}
	return summaries, nil
}

// CurriculumSummary is the list-view projection of a curriculum.
type CurriculumSummary struct {
	ID         uuid.UUID              `json:"id"`
	GradeLevel int                    `json:"grade_level"`
	Subject    string                 `json:"subject"`
	Topic      string                 `json:"topic"`
	Status     types.CurriculumStatus `json:"status"`
	CreatedAt  time.Time              `json:"created_at"`
	UpdatedAt  time.Time              `json:"updated_at"`
}
