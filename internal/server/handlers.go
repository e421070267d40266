package server

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/jonathan/interview-coach/internal/db"
	"github.com/jonathan/interview-coach/internal/plan"
	"github.com/jonathan/interview-coach/internal/profile"
	"github.com/jonathan/interview-coach/internal/report"
	"github.com/jonathan/interview-coach/internal/server/middleware"
	"github.com/jonathan/interview-coach/internal/session"
	"github.com/jonathan/interview-coach/internal/types"
)

// SessionStore is the subset of db.DB the session handlers need.
type SessionStore interface {
	SaveSession(ctx context.Context, userID uuid.UUID, s *session.Session) error
	GetSession(ctx context.Context, id uuid.UUID) (*session.Session, error)
	SessionOwner(ctx context.Context, id uuid.UUID) (uuid.UUID, bool, error)
	ListSessionsByUser(ctx context.Context, userID uuid.UUID, limit int) ([]db.SessionSummary, error)
	DeleteSession(ctx context.Context, id uuid.UUID) error
	SaveReport(ctx context.Context, sessionID uuid.UUID, stats types.Stats, reportText string) (uuid.UUID, error)
	GetReport(ctx context.Context, sessionID uuid.UUID) (*db.Report, error)
}

// CreateSessionRequest starts a new interview from raw CV and job text.
type CreateSessionRequest struct {
	CVText           string `json:"cv_text"`
	JobText          string `json:"job_text"`
	NQuestions       int    `json:"n_questions,omitempty"`
	InterviewerStyle string `json:"interviewer_style,omitempty"`
}

// SubmitAnswerRequest carries a candidate answer to the current question.
type SubmitAnswerRequest struct {
	Answer string `json:"answer"`
}

type transcriptionRequest struct {
	Text string `json:"text"`
}

// handleCreateSession builds the fit profile, generates a plan and stores
// the new session.
func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.CVText) == "" || strings.TrimSpace(req.JobText) == "" {
		http.Error(w, "cv_text and job_text are required", http.StatusBadRequest)
		return
	}

	fit, err := profile.Build(r.Context(), s.llmClient, req.CVText, req.JobText)
	if err != nil {
		http.Error(w, err.Error(), HTTPStatus(err))
		return
	}

	questions, err := plan.Generate(r.Context(), s.llmClient, fit, req.InterviewerStyle, req.NQuestions)
	if err != nil {
		http.Error(w, err.Error(), HTTPStatus(err))
		return
	}

	sess := session.New(fit, req.JobText)
	sess.SetPlan(questions)

	userID := authenticatedUser(r)
	if err := s.store.SaveSession(r.Context(), userID, sess); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, sess)
}

// handleListSessions lists the caller's sessions.
func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			limit = n
		}
	}

	sessions, err := s.store.ListSessionsByUser(r.Context(), authenticatedUser(r), limit)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if sessions == nil {
		sessions = []db.SessionSummary{}
	}
	writeJSON(w, http.StatusOK, sessions)
}

// handleGetSession returns the full session state.
func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.loadOwnedSession(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

// handleCurrentQuestion returns the question at the cursor.
func (s *Server) handleCurrentQuestion(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.loadOwnedSession(w, r)
	if !ok {
		return
	}

	item, active := sess.Current()
	if !active {
		writeJSON(w, http.StatusOK, map[string]any{
			"status":   sess.Status(),
			"progress": sess.Progress(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   sess.Status(),
		"progress": sess.Progress(),
		"question": item,
	})
}

// handleSkip advances past the current question without evaluating.
func (s *Server) handleSkip(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.loadOwnedSession(w, r)
	if !ok {
		return
	}

	if err := sess.Skip(); err != nil {
		http.Error(w, err.Error(), HTTPStatus(err))
		return
	}
	if err := s.store.SaveSession(r.Context(), authenticatedUser(r), sess); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   sess.Status(),
		"progress": sess.Progress(),
	})
}

// handleSubmitAnswer evaluates the answer and advances the session.
func (s *Server) handleSubmitAnswer(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.loadOwnedSession(w, r)
	if !ok {
		return
	}

	var req SubmitAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	evaluation, err := sess.Submit(r.Context(), req.Answer, s.evaluator)
	if err != nil {
		http.Error(w, err.Error(), HTTPStatus(err))
		return
	}
	if err := s.store.SaveSession(r.Context(), authenticatedUser(r), sess); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":     sess.Status(),
		"progress":   sess.Progress(),
		"evaluation": evaluation,
	})
}

// handleSetTranscription stores the speech-to-text output for a question.
func (s *Server) handleSetTranscription(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.loadOwnedSession(w, r)
	if !ok {
		return
	}

	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil || index < 0 {
		http.Error(w, "Invalid question index", http.StatusBadRequest)
		return
	}

	var req transcriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	sess.SetTranscription(index, req.Text)
	if err := s.store.SaveSession(r.Context(), authenticatedUser(r), sess); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Transcription stored"})
}

// handleGenerateReport computes aggregate stats and the final report.
func (s *Server) handleGenerateReport(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.loadOwnedSession(w, r)
	if !ok {
		return
	}

	stats := report.ComputeStats(sess.History)
	text, err := report.GenerateFinalReport(r.Context(), s.llmClient, sess.History)
	if err != nil {
		http.Error(w, err.Error(), HTTPStatus(err))
		return
	}

	if _, err := s.store.SaveReport(r.Context(), sess.ID, stats, text); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"stats":  stats,
		"report": text,
	})
}

// handleGetReport returns a previously generated report.
func (s *Server) handleGetReport(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := s.ownedSessionID(w, r)
	if !ok {
		return
	}

	rep, err := s.store.GetReport(r.Context(), sessionID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if rep == nil {
		http.Error(w, "No report generated for this session", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

// handleDeleteSession removes the session and its report.
func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := s.ownedSessionID(w, r)
	if !ok {
		return
	}

	if err := s.store.DeleteSession(r.Context(), sessionID); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ownedSessionID parses the session ID from the path and verifies the
// caller owns it. Writes the error response itself when the check fails.
func (s *Server) ownedSessionID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	sessionID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		http.Error(w, "Invalid session ID", http.StatusBadRequest)
		return uuid.Nil, false
	}

	owner, exists, err := s.store.SessionOwner(r.Context(), sessionID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return uuid.Nil, false
	}
	if !exists {
		serr := &ErrSessionNotFound{SessionID: sessionID}
		http.Error(w, serr.Error(), HTTPStatus(serr))
		return uuid.Nil, false
	}
	if owner != uuid.Nil && owner != authenticatedUser(r) {
		// Do not reveal that the session exists
		serr := &ErrSessionNotFound{SessionID: sessionID}
		http.Error(w, serr.Error(), HTTPStatus(serr))
		return uuid.Nil, false
	}
	return sessionID, true
}

func (s *Server) loadOwnedSession(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	sessionID, ok := s.ownedSessionID(w, r)
	if !ok {
		return nil, false
	}

	sess, err := s.store.GetSession(r.Context(), sessionID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return nil, false
	}
	if sess == nil {
		serr := &ErrSessionNotFound{SessionID: sessionID}
		http.Error(w, serr.Error(), HTTPStatus(serr))
		return nil, false
	}
	return sess, true
}

// authenticatedUser returns the user ID from the request context, or
// uuid.Nil when the route is not behind auth middleware.
func authenticatedUser(r *http.Request) uuid.UUID {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		return uuid.Nil
	}
	return userID
}

// writeJSON writes a JSON response
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}
