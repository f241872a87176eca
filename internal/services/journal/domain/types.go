// Package domain holds the intent journal types
package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Event is one handled assistant request
type Event struct {
	ID        uuid.UUID
	RequestID string
	Kind      string
	Intent    string
	Outcome   string
	Channel   string
	LiveCount int
	ElapsedMS int64
	At        time.Time
}

// OutcomeCount is one row of the outcome summary
type OutcomeCount struct {
	Outcome string `json:"outcome"`
	Count   uint64 `json:"count"`
}

// Summary counts outcomes since a point in time
type Summary struct {
	Since    time.Time      `json:"since"`
	Total    uint64         `json:"total"`
	Outcomes []OutcomeCount `json:"outcomes"`
}

// QueryPort reads the journal
type QueryPort interface {
	Summary(ctx context.Context, since time.Time) (Summary, error)
}
