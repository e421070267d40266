package db

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/interview-coach/internal/types"
)

// Report is a stored final report with its aggregate statistics
type Report struct {
	ID         uuid.UUID   `json:"id"`
	SessionID  uuid.UUID   `json:"session_id"`
	Stats      types.Stats `json:"stats"`
	ReportText string      `json:"report_text"`
	CreatedAt  time.Time   `json:"created_at"`
}

// SaveReport upserts the final report for a session
func (db *DB) SaveReport(ctx context.Context, sessionID uuid.UUID, stats types.Stats, reportText string) (uuid.UUID, error) {
	statsJSON, err := json.Marshal(stats)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal stats: %w", err)
	}

	var id uuid.UUID
	err = db.pool.QueryRow(ctx,
		`INSERT INTO reports (session_id, stats, report_text)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (session_id) DO UPDATE SET stats = $2, report_text = $3, created_at = NOW()
		 RETURNING id`,
		sessionID, statsJSON, reportText,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to save report for session %s: %w", sessionID, err)
	}
	return id, nil
}

// GetReport retrieves the report for a session. Returns nil if not found.
func (db *DB) GetReport(ctx context.Context, sessionID uuid.UUID) (*Report, error) {
	var (
		r         Report
		statsJSON []byte
	)
	err := db.pool.QueryRow(ctx,
		`SELECT id, session_id, stats, report_text, created_at
		 FROM reports WHERE session_id = $1`,
		sessionID,
	).Scan(&r.ID, &r.SessionID, &statsJSON, &r.ReportText, &r.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get report for session %s: %w", sessionID, err)
	}
	if err := json.Unmarshal(statsJSON, &r.Stats); err != nil {
		return nil, fmt.Errorf("failed to unmarshal stats: %w", err)
	}
	return &r, nil
}
