package db

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// QueryRun is one persisted ranking run. Progress, criteria, results, and
// metadata are stored as raw JSON; callers decode what they need.
type QueryRun struct {
	ID          uuid.UUID       `json:"id"`
	Query       string          `json:"query"`
	DatasetID   string          `json:"dataset_id"`
	Status      string          `json:"status"`
	Error       string          `json:"error,omitempty"`
	Progress    json.RawMessage `json:"progress,omitempty"`
	Criteria    json.RawMessage `json:"criteria,omitempty"`
	Results     json.RawMessage `json:"results,omitempty"`
	Metadata    json.RawMessage `json:"metadata,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	CompletedAt *time.Time      `json:"completed_at,omitempty"`
}

// Terminal statuses for a query run
const (
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusEmpty      = "empty"
	StatusFailed     = "failed"
)
