// Package session implements the interview session state machine: a fit
// profile, an ordered question plan, a cursor that only moves forward, and an
// append-only history of answered questions.
package session

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/interview-coach/internal/evaluate"
	"github.com/jonathan/interview-coach/internal/types"
)

// Status is the lifecycle state of a session.
type Status string

// Session lifecycle states. A session is completed exactly when the cursor
// has walked past the last planned question.
const (
	StatusNotStarted Status = "not_started"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

// Validation failures reported to the caller as rejected actions; the
// session state is unchanged when these are returned.
var (
	// ErrEmptyAnswer rejects a Submit whose answer is empty or whitespace-only.
	ErrEmptyAnswer = errors.New("answer is empty")
	// ErrCompleted rejects Skip/Submit once the plan is exhausted.
	ErrCompleted = errors.New("interview is already completed")
	// ErrNoPlan rejects Skip/Submit before a non-empty plan is installed.
	ErrNoPlan = errors.New("no interview plan installed")
)

// Session is the single mutable resource of one interview run. It is owned
// by one user context; concurrent Submit/Skip/Reset must be serialized by
// the caller.
type Session struct {
	ID      uuid.UUID           `json:"id"`
	Profile *types.FitProfile   `json:"profile,omitempty"`
	Plan    types.InterviewPlan `json:"plan"`
	Cursor  int                 `json:"cursor"`
	History types.History       `json:"history"`

	// Transcriptions caches speech-to-text results per question index. It is
	// consulted only to pre-fill the answer editor and has no effect on
	// Submit/Skip correctness. Re-transcribing an index overwrites it.
	Transcriptions map[int]string `json:"transcriptions"`

	// JobText is the raw posting text, kept as evaluation context.
	JobText string `json:"job_text,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// New creates a session holding the given profile and job context. The plan
// is installed separately via SetPlan.
func New(fit *types.FitProfile, jobText string) *Session {
	now := time.Now().UTC()
	return &Session{
		ID:             uuid.New(),
		Profile:        fit,
		Plan:           types.InterviewPlan{},
		History:        types.History{},
		Transcriptions: make(map[int]string),
		JobText:        jobText,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// Status reports the lifecycle state. The session moves to in-progress the
// moment a non-empty plan is installed and to completed when the cursor
// reaches the plan length.
func (s *Session) Status() Status {
	if len(s.Plan) == 0 {
		return StatusNotStarted
	}
	if s.Cursor >= len(s.Plan) {
		return StatusCompleted
	}
	return StatusInProgress
}

// SetPlan installs the question plan. Installing a plan restarts the run:
// cursor, history and the transcription cache are reset together.
func (s *Session) SetPlan(plan types.InterviewPlan) {
	s.Plan = plan
	s.Cursor = 0
	s.History = types.History{}
	s.Transcriptions = make(map[int]string)
	s.touch()
}

// Current returns the question at the cursor, or false when the session is
// not in progress.
func (s *Session) Current() (types.QuestionItem, bool) {
	if s.Status() != StatusInProgress {
		return types.QuestionItem{}, false
	}
	return s.Plan[s.Cursor], true
}

// Skip advances past the current question without recording anything.
func (s *Session) Skip() error {
	switch s.Status() {
	case StatusNotStarted:
		return ErrNoPlan
	case StatusCompleted:
		return ErrCompleted
	}

	s.Cursor++
	s.touch()
	return nil
}

// Submit evaluates the answer to the current question and, on success,
// appends a history record and advances the cursor. An empty or
// whitespace-only answer is rejected without touching state. An evaluator
// failure leaves the cursor and history untouched so the caller can retry
// or skip.
func (s *Session) Submit(ctx context.Context, answer string, evaluator evaluate.Evaluator) (*types.EvaluationResult, error) {
	switch s.Status() {
	case StatusNotStarted:
		return nil, ErrNoPlan
	case StatusCompleted:
		return nil, ErrCompleted
	}

	if strings.TrimSpace(answer) == "" {
		return nil, ErrEmptyAnswer
	}

	current := s.Plan[s.Cursor]
	evaluation, err := evaluator.Evaluate(ctx, current.Question, answer, s.JobText)
	if err != nil {
		return nil, err
	}

	s.History = append(s.History, types.HistoryRecord{
		Question:   current.Question,
		Type:       current.Type,
		Topic:      current.Topic,
		Answer:     answer,
		Evaluation: *evaluation,
	})
	s.Cursor++
	s.touch()

	return evaluation, nil
}

// Reset tears the whole run down atomically: plan, cursor, history and the
// transcription cache go together. Partial resets are a correctness
// violation, so this is the only reset entry point.
func (s *Session) Reset() {
	s.Profile = nil
	s.Plan = types.InterviewPlan{}
	s.Cursor = 0
	s.History = types.History{}
	s.Transcriptions = make(map[int]string)
	s.JobText = ""
	s.touch()
}

// SetTranscription stores a speech-to-text result for a question index.
func (s *Session) SetTranscription(index int, text string) {
	if s.Transcriptions == nil {
		s.Transcriptions = make(map[int]string)
	}
	s.Transcriptions[index] = text
	s.touch()
}

// Transcription returns the cached transcription for a question index.
func (s *Session) Transcription(index int) (string, bool) {
	text, ok := s.Transcriptions[index]
	return text, ok
}

// Progress returns a "current/total" label for display.
func (s *Session) Progress() string {
	current := s.Cursor + 1
	if current > len(s.Plan) {
		current = len(s.Plan)
	}
	return strconv.Itoa(current) + "/" + strconv.Itoa(len(s.Plan))
}

func (s *Session) touch() {
	s.UpdatedAt = time.Now().UTC()
}
