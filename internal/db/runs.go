package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// CreateRun records the start of one section population run and returns its
// ID.
func (db *DB) CreateRun(ctx context.Context, curriculumID uuid.UUID, sectionIndex int, kind string) (uuid.UUID, error) {
	id := uuid.New()
	_, err := db.pool.Exec(ctx,
		`INSERT INTO generation_runs (id, curriculum_id, section_index, kind, status)
		 VALUES ($1, $2, $3, $4, 'running')`,
		id, curriculumID, sectionIndex, kind,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create generation run: %w", err)
	}
	return id, nil
}

// CompleteRun marks a generation run as finished and stores its result.
func (db *DB) CompleteRun(ctx context.Context, runID uuid.UUID, status string, result any) error {
	var resultJSON []byte
	if result != nil {
		var err error
		resultJSON, err = json.Marshal(result)
		if err != nil {
			return fmt.Errorf("failed to marshal run result: %w", err)
		}
	}

	_, err := db.pool.Exec(ctx,
		`UPDATE generation_runs SET status = $1, result = $2, completed_at = NOW() WHERE id = $3`,
		status, resultJSON, runID,
	)
	if err != nil {
		return fmt.Errorf("failed to complete generation run: %w", err)
	}
	return nil
}
