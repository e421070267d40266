package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/interview-coach/internal/db"
	"github.com/jonathan/interview-coach/internal/llm"
	"github.com/jonathan/interview-coach/internal/session"
	"github.com/jonathan/interview-coach/internal/types"
)

// stubLLM routes by prompt content so concurrent extraction calls stay
// deterministic.
type stubLLM struct{}

func (s *stubLLM) GenerateContent(_ context.Context, prompt string, _ llm.ModelTier) (string, error) {
	if strings.Contains(prompt, "interview coach") {
		return "Final report: keep practicing system design.", nil
	}
	return "Solid overlap on Go and SQL.", nil
}

func (s *stubLLM) GenerateJSON(_ context.Context, prompt string, _ llm.ModelTier) (string, error) {
	switch {
	case strings.Contains(prompt, "CV below"):
		return `{"hard_skills":["Go","SQL"],"soft_skills":["communication"],"languages":["English"],"projects":[],"summary":"Backend engineer"}`, nil
	case strings.Contains(prompt, "job posting below"):
		return `{"title":"Backend Engineer","company":"ACME","location":"Paris","hard_skills_required":["Go","Kubernetes"],"soft_skills_required":["communication"],"missions":[],"summary":"Build services"}`, nil
	default:
		return `[{"type":"intro","topic":"background","question":"Tell me about yourself."},{"type":"technique","topic":"go","question":"Explain goroutines."}]`, nil
	}
}

func (s *stubLLM) GetModel(llm.ModelTier) string { return "stub" }
func (s *stubLLM) Close() error                  { return nil }

type stubEvaluator struct {
	calls int
}

func (e *stubEvaluator) Evaluate(_ context.Context, _, _, _ string) (*types.EvaluationResult, error) {
	e.calls++
	return &types.EvaluationResult{Score: 7, Clarity: 4, Relevance: 4, Alignment: 3, Depth: 3, Strengths: []string{"clear"}}, nil
}

// memStore is an in-memory SessionStore for handler tests.
type memStore struct {
	sessions map[uuid.UUID]*session.Session
	owners   map[uuid.UUID]uuid.UUID
	reports  map[uuid.UUID]*db.Report
}

func newMemStore() *memStore {
	return &memStore{
		sessions: make(map[uuid.UUID]*session.Session),
		owners:   make(map[uuid.UUID]uuid.UUID),
		reports:  make(map[uuid.UUID]*db.Report),
	}
}

func (m *memStore) SaveSession(_ context.Context, userID uuid.UUID, s *session.Session) error {
	m.sessions[s.ID] = s
	m.owners[s.ID] = userID
	return nil
}

func (m *memStore) GetSession(_ context.Context, id uuid.UUID) (*session.Session, error) {
	return m.sessions[id], nil
}

func (m *memStore) SessionOwner(_ context.Context, id uuid.UUID) (uuid.UUID, bool, error) {
	if _, ok := m.sessions[id]; !ok {
		return uuid.Nil, false, nil
	}
	return m.owners[id], true, nil
}

func (m *memStore) ListSessionsByUser(_ context.Context, userID uuid.UUID, _ int) ([]db.SessionSummary, error) {
	var out []db.SessionSummary
	for id, owner := range m.owners {
		if owner == userID {
			s := m.sessions[id]
			out = append(out, db.SessionSummary{ID: id, Status: string(s.Status()), Questions: len(s.Plan), Answered: len(s.History)})
		}
	}
	return out, nil
}

func (m *memStore) DeleteSession(_ context.Context, id uuid.UUID) error {
	if _, ok := m.sessions[id]; !ok {
		return fmt.Errorf("session not found: %s", id)
	}
	delete(m.sessions, id)
	delete(m.owners, id)
	delete(m.reports, id)
	return nil
}

func (m *memStore) SaveReport(_ context.Context, sessionID uuid.UUID, stats types.Stats, text string) (uuid.UUID, error) {
	id := uuid.New()
	m.reports[sessionID] = &db.Report{ID: id, SessionID: sessionID, Stats: stats, ReportText: text}
	return id, nil
}

func (m *memStore) GetReport(_ context.Context, sessionID uuid.UUID) (*db.Report, error) {
	return m.reports[sessionID], nil
}

func newTestServer() (*Server, *memStore, *stubEvaluator) {
	store := newMemStore()
	eval := &stubEvaluator{}
	s := &Server{
		store:     store,
		llmClient: &stubLLM{},
		evaluator: eval,
	}
	return s, store, eval
}

func doJSON(t *testing.T, handler http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	s, _, _ := newTestServer()
	rec := doJSON(t, s.routes(), http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"ok"`)
}

func TestCreateSession(t *testing.T) {
	s, store, _ := newTestServer()
	rec := doJSON(t, s.routes(), http.MethodPost, "/sessions", CreateSessionRequest{
		CVText:  "Backend engineer, Go and SQL.",
		JobText: "Hiring a Go backend engineer.",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created session.Session
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Len(t, created.Plan, 2)
	assert.Equal(t, session.StatusInProgress, created.Status())
	assert.Contains(t, created.Profile.OverlapHardSkills, "go")
	assert.Contains(t, created.Profile.MissingHardSkills, "kubernetes")
	assert.Contains(t, store.sessions, created.ID)
}

func TestCreateSession_MissingFields(t *testing.T) {
	s, _, _ := newTestServer()
	rec := doJSON(t, s.routes(), http.MethodPost, "/sessions", CreateSessionRequest{CVText: "only cv"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func createSession(t *testing.T, s *Server) uuid.UUID {
	t.Helper()
	rec := doJSON(t, s.routes(), http.MethodPost, "/sessions", CreateSessionRequest{CVText: "cv", JobText: "job"})
	require.Equal(t, http.StatusCreated, rec.Code)
	var created session.Session
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	return created.ID
}

func TestInterviewFlow(t *testing.T) {
	s, _, eval := newTestServer()
	id := createSession(t, s)
	routes := s.routes()

	// Current question
	rec := doJSON(t, routes, http.MethodGet, "/sessions/"+id.String()+"/question", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Tell me about yourself.")
	assert.Contains(t, rec.Body.String(), "1/2")

	// Answer it
	rec = doJSON(t, routes, http.MethodPost, "/sessions/"+id.String()+"/answers", SubmitAnswerRequest{Answer: "I build services."})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"evaluation"`)
	assert.Equal(t, 1, eval.calls)

	// Skip the second question, completing the interview
	rec = doJSON(t, routes, http.MethodPost, "/sessions/"+id.String()+"/skip", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), string(session.StatusCompleted))

	// Further answers are rejected
	rec = doJSON(t, routes, http.MethodPost, "/sessions/"+id.String()+"/answers", SubmitAnswerRequest{Answer: "more"})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestSubmitAnswer_Empty(t *testing.T) {
	s, _, eval := newTestServer()
	id := createSession(t, s)

	rec := doJSON(t, s.routes(), http.MethodPost, "/sessions/"+id.String()+"/answers", SubmitAnswerRequest{Answer: "   "})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, eval.calls)
}

func TestTranscriptions(t *testing.T) {
	s, store, _ := newTestServer()
	id := createSession(t, s)
	routes := s.routes()

	rec := doJSON(t, routes, http.MethodPut, "/sessions/"+id.String()+"/transcriptions/0", transcriptionRequest{Text: "spoken"})
	require.Equal(t, http.StatusOK, rec.Code)

	text, ok := store.sessions[id].Transcription(0)
	assert.True(t, ok)
	assert.Equal(t, "spoken", text)

	rec = doJSON(t, routes, http.MethodPut, "/sessions/"+id.String()+"/transcriptions/abc", transcriptionRequest{Text: "x"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestReportEndpoints(t *testing.T) {
	s, _, _ := newTestServer()
	id := createSession(t, s)
	routes := s.routes()

	// No report yet
	rec := doJSON(t, routes, http.MethodGet, "/sessions/"+id.String()+"/report", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// Answer one question so the report has content
	rec = doJSON(t, routes, http.MethodPost, "/sessions/"+id.String()+"/answers", SubmitAnswerRequest{Answer: "answer"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, routes, http.MethodPost, "/sessions/"+id.String()+"/report", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Final report")
	assert.Contains(t, rec.Body.String(), `"n_questions":1`)

	rec = doJSON(t, routes, http.MethodGet, "/sessions/"+id.String()+"/report", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSessionNotFound(t *testing.T) {
	s, _, _ := newTestServer()
	routes := s.routes()

	rec := doJSON(t, routes, http.MethodGet, "/sessions/"+uuid.New().String(), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, routes, http.MethodGet, "/sessions/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteSession(t *testing.T) {
	s, store, _ := newTestServer()
	id := createSession(t, s)
	routes := s.routes()

	rec := doJSON(t, routes, http.MethodDelete, "/sessions/"+id.String(), nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.NotContains(t, store.sessions, id)

	rec = doJSON(t, routes, http.MethodDelete, "/sessions/"+id.String(), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
