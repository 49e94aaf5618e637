// Package db provides PostgreSQL storage for query history: each ranking run
// is persisted with its progress, criteria, results, and provenance metadata.
package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// CreateQuery inserts a new query-history row in the processing state and
// returns its ID
func (db *DB) CreateQuery(ctx context.Context, query, datasetID string) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO query_history (query, dataset_id, status)
		 VALUES ($1, $2, $3)
		 RETURNING id`,
		query, datasetID, StatusProcessing,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create query: %w", err)
	}
	return id, nil
}

// UpdateProgress records the current pipeline stage for a query
func (db *DB) UpdateProgress(ctx context.Context, queryID uuid.UUID, stage, message string, percent int, completed bool) error {
	progress := map[string]any{
		"stage":     stage,
		"message":   message,
		"percent":   percent,
		"completed": completed,
	}
	progressJSON, err := json.Marshal(progress)
	if err != nil {
		return fmt.Errorf("failed to marshal progress: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`UPDATE query_history SET progress = $1 WHERE id = $2`,
		progressJSON, queryID,
	)
	if err != nil {
		return fmt.Errorf("failed to update progress: %w", err)
	}
	return nil
}

// SaveResults stores the final criteria, ranked candidates, and run metadata
// for a query and marks it with its terminal status
func (db *DB) SaveResults(ctx context.Context, queryID uuid.UUID, status string, criteria, results, metadata any) error {
	criteriaJSON, err := json.Marshal(criteria)
	if err != nil {
		return fmt.Errorf("failed to marshal criteria: %w", err)
	}
	resultsJSON, err := json.Marshal(results)
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	metadataJSON, err := json.Marshal(metadata)
	if err != nil {
		return fmt.Errorf("failed to marshal metadata: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`UPDATE query_history
		 SET status = $1, criteria = $2, results = $3, metadata = $4, completed_at = NOW()
		 WHERE id = $5`,
		status, criteriaJSON, resultsJSON, metadataJSON, queryID,
	)
	if err != nil {
		return fmt.Errorf("failed to save results: %w", err)
	}
	return nil
}

// FailQuery marks a query as failed with its error message
func (db *DB) FailQuery(ctx context.Context, queryID uuid.UUID, message string) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE query_history SET status = $1, error = $2, completed_at = NOW() WHERE id = $3`,
		StatusFailed, message, queryID,
	)
	if err != nil {
		return fmt.Errorf("failed to mark query failed: %w", err)
	}
	return nil
}

// GetQuery retrieves a query-history row by ID
func (db *DB) GetQuery(ctx context.Context, queryID uuid.UUID) (*QueryRun, error) {
	var run QueryRun
	err := db.pool.QueryRow(ctx,
		`SELECT id, query, dataset_id, status, COALESCE(error, ''), progress, criteria, results, metadata, created_at, completed_at
		 FROM query_history WHERE id = $1`,
		queryID,
	).Scan(&run.ID, &run.Query, &run.DatasetID, &run.Status, &run.Error,
		&run.Progress, &run.Criteria, &run.Results, &run.Metadata,
		&run.CreatedAt, &run.CompletedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get query: %w", err)
	}
	return &run, nil
}

// ListQueries retrieves recent query-history rows
func (db *DB) ListQueries(ctx context.Context, limit int) ([]QueryRun, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := db.pool.Query(ctx,
		`SELECT id, query, dataset_id, status, COALESCE(error, ''), progress, criteria, results, metadata, created_at, completed_at
		 FROM query_history ORDER BY created_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list queries: %w", err)
	}
	defer rows.Close()

	var runs []QueryRun
	for rows.Next() {
		var run QueryRun
		if err := rows.Scan(&run.ID, &run.Query, &run.DatasetID, &run.Status, &run.Error,
			&run.Progress, &run.Criteria, &run.Results, &run.Metadata,
			&run.CreatedAt, &run.CompletedAt); err != nil {
			return nil, fmt.Errorf("failed to scan query: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, nil
}
