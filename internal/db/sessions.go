package db

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/interview-coach/internal/session"
	"github.com/jonathan/interview-coach/internal/types"
)

// SessionSummary is a lightweight view of a stored session for listing
type SessionSummary struct {
	ID        uuid.UUID `json:"id"`
	Status    string    `json:"status"`
	Questions int       `json:"questions"`
	Answered  int       `json:"answered"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SaveSession upserts the full session state in a single row so a crash
// mid-interview never leaves partial state behind.
func (db *DB) SaveSession(ctx context.Context, userID uuid.UUID, s *session.Session) error {
	fitJSON, err := marshalNullable(s.Profile)
	if err != nil {
		return fmt.Errorf("failed to marshal fit profile: %w", err)
	}
	planJSON, err := marshalNullable(s.Plan)
	if err != nil {
		return fmt.Errorf("failed to marshal plan: %w", err)
	}
	historyJSON, err := json.Marshal(s.History)
	if err != nil {
		return fmt.Errorf("failed to marshal history: %w", err)
	}
	transcriptionsJSON, err := marshalTranscriptions(s.Transcriptions)
	if err != nil {
		return fmt.Errorf("failed to marshal transcriptions: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO interview_sessions
		   (id, user_id, status, job_text, fit_profile, plan, cursor_index, history, transcriptions, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW())
		 ON CONFLICT (id) DO UPDATE SET
		   status = $3, job_text = $4, fit_profile = $5, plan = $6,
		   cursor_index = $7, history = $8, transcriptions = $9, updated_at = NOW()`,
		s.ID, nullableUUID(userID), string(s.Status()), s.JobText,
		fitJSON, planJSON, s.Cursor, historyJSON, transcriptionsJSON, s.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save session %s: %w", s.ID, err)
	}
	return nil
}

// GetSession loads a stored session. Returns nil if not found.
func (db *DB) GetSession(ctx context.Context, id uuid.UUID) (*session.Session, error) {
	var (
		s                  session.Session
		jobText            string
		fitJSON            []byte
		planJSON           []byte
		historyJSON        []byte
		transcriptionsJSON []byte
	)
	err := db.pool.QueryRow(ctx,
		`SELECT id, job_text, fit_profile, plan, cursor_index, history, transcriptions, created_at, updated_at
		 FROM interview_sessions WHERE id = $1`,
		id,
	).Scan(&s.ID, &jobText, &fitJSON, &planJSON, &s.Cursor, &historyJSON, &transcriptionsJSON, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get session %s: %w", id, err)
	}

	s.JobText = jobText
	if len(fitJSON) > 0 {
		var fit types.FitProfile
		if err := json.Unmarshal(fitJSON, &fit); err != nil {
			return nil, fmt.Errorf("failed to unmarshal fit profile: %w", err)
		}
		s.Profile = &fit
	}
	if len(planJSON) > 0 {
		if err := json.Unmarshal(planJSON, &s.Plan); err != nil {
			return nil, fmt.Errorf("failed to unmarshal plan: %w", err)
		}
	}
	if err := json.Unmarshal(historyJSON, &s.History); err != nil {
		return nil, fmt.Errorf("failed to unmarshal history: %w", err)
	}
	s.Transcriptions, err = unmarshalTranscriptions(transcriptionsJSON)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal transcriptions: %w", err)
	}
	return &s, nil
}

// SessionOwner returns the user that owns a session. Anonymous sessions
// report uuid.Nil. The second return is false when the session does not exist.
func (db *DB) SessionOwner(ctx context.Context, id uuid.UUID) (uuid.UUID, bool, error) {
	var owner *uuid.UUID
	err := db.pool.QueryRow(ctx,
		`SELECT user_id FROM interview_sessions WHERE id = $1`, id,
	).Scan(&owner)
	if err != nil {
		if err == pgx.ErrNoRows {
			return uuid.Nil, false, nil
		}
		return uuid.Nil, false, fmt.Errorf("failed to get session owner: %w", err)
	}
	if owner == nil {
		return uuid.Nil, true, nil
	}
	return *owner, true, nil
}

// ListSessionsByUser retrieves the user's sessions, newest first
func (db *DB) ListSessionsByUser(ctx context.Context, userID uuid.UUID, limit int) ([]SessionSummary, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := db.pool.Query(ctx,
		`SELECT id, status, COALESCE(jsonb_array_length(plan), 0), jsonb_array_length(history), created_at, updated_at
		 FROM interview_sessions WHERE user_id = $1
		 ORDER BY created_at DESC LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	var out []SessionSummary
	for rows.Next() {
		var sm SessionSummary
		if err := rows.Scan(&sm.ID, &sm.Status, &sm.Questions, &sm.Answered, &sm.CreatedAt, &sm.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		out = append(out, sm)
	}
	return out, nil
}

// DeleteSession removes a session and its report via cascade
func (db *DB) DeleteSession(ctx context.Context, id uuid.UUID) error {
	result, err := db.pool.Exec(ctx, `DELETE FROM interview_sessions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("session not found: %s", id)
	}
	return nil
}

func marshalNullable(v any) ([]byte, error) {
	switch val := v.(type) {
	case *types.FitProfile:
		if val == nil {
			return nil, nil
		}
	case types.InterviewPlan:
		if val == nil {
			return nil, nil
		}
	}
	return json.Marshal(v)
}

func nullableUUID(id uuid.UUID) any {
	if id == uuid.Nil {
		return nil
	}
	return id
}

// Transcriptions are keyed by question index in memory but stored as a
// JSON object, which only allows string keys.
func marshalTranscriptions(m map[int]string) ([]byte, error) {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[strconv.Itoa(k)] = v
	}
	return json.Marshal(out)
}

func unmarshalTranscriptions(data []byte) (map[int]string, error) {
	raw := make(map[string]string)
	if len(data) > 0 {
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
	}
	out := make(map[int]string, len(raw))
	for k, v := range raw {
		idx, err := strconv.Atoi(k)
		if err != nil {
			return nil, fmt.Errorf("invalid transcription key %q", k)
		}
		out[idx] = v
	}
	return out, nil
}
