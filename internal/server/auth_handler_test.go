package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/interview-coach/internal/config"
	"github.com/jonathan/interview-coach/internal/db"
	"github.com/jonathan/interview-coach/internal/types"
)

// memUserStore is an in-memory UserStore for auth tests.
type memUserStore struct {
	users map[uuid.UUID]*db.User
}

func newMemUserStore() *memUserStore {
	return &memUserStore{users: make(map[uuid.UUID]*db.User)}
}

func (m *memUserStore) CreateUser(_ context.Context, name, email, passwordHash string) (uuid.UUID, error) {
	id := uuid.New()
	m.users[id] = &db.User{ID: id, Name: name, Email: email, PasswordHash: passwordHash}
	return id, nil
}

func (m *memUserStore) GetUser(_ context.Context, id uuid.UUID) (*db.User, error) {
	return m.users[id], nil
}

func (m *memUserStore) GetUserByEmail(_ context.Context, email string) (*db.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (m *memUserStore) UpdateUserPassword(_ context.Context, id uuid.UUID, passwordHash string) error {
	u, ok := m.users[id]
	if !ok {
		return &ErrUserNotFound{UserID: id}
	}
	u.PasswordHash = passwordHash
	return nil
}

func newAuthTestServer(t *testing.T) (*Server, *memUserStore) {
	t.Helper()
	store := newMemUserStore()
	passwordConfig := &config.PasswordConfig{BcryptCost: 10}
	userService := NewUserService(store, passwordConfig)
	jwtService := NewJWTService(&config.JWTConfig{Secret: "test-secret", ExpirationHours: 1})

	s := &Server{
		store:       newMemStore(),
		llmClient:   &stubLLM{},
		evaluator:   &stubEvaluator{},
		jwtService:  jwtService,
		userService: userService,
		authHandler: NewAuthHandler(userService, jwtService),
	}
	return s, store
}

func register(t *testing.T, s *Server, email, password string) types.LoginResponse {
	t.Helper()
	rec := doJSON(t, s.routes(), http.MethodPost, "/auth/register", types.CreateUserRequest{
		Name: "Test User", Email: email, Password: password,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var resp types.LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestRegisterAndLogin(t *testing.T) {
	s, _ := newAuthTestServer(t)

	resp := register(t, s, "jane@example.com", "correct-horse")
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "jane@example.com", resp.User.Email)

	// Duplicate email is rejected
	rec := doJSON(t, s.routes(), http.MethodPost, "/auth/register", types.CreateUserRequest{
		Name: "Other", Email: "jane@example.com", Password: "another-pass",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)

	// Login with the right password
	rec = doJSON(t, s.routes(), http.MethodPost, "/auth/login", types.LoginRequest{
		Email: "jane@example.com", Password: "correct-horse",
	})
	assert.Equal(t, http.StatusOK, rec.Code)

	// Wrong password gets a generic 401
	rec = doJSON(t, s.routes(), http.MethodPost, "/auth/login", types.LoginRequest{
		Email: "jane@example.com", Password: "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid email or password")

	// Unknown user gets the same generic 401
	rec = doJSON(t, s.routes(), http.MethodPost, "/auth/login", types.LoginRequest{
		Email: "nobody@example.com", Password: "whatever",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRegister_Validation(t *testing.T) {
	s, _ := newAuthTestServer(t)

	rec := doJSON(t, s.routes(), http.MethodPost, "/auth/register", types.CreateUserRequest{
		Name: "X", Email: "not-an-email", Password: "long-enough",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, s.routes(), http.MethodPost, "/auth/register", types.CreateUserRequest{
		Name: "X", Email: "x@example.com", Password: "short",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	s, _ := newAuthTestServer(t)
	routes := s.routes()

	rec := doJSON(t, routes, http.MethodGet, "/sessions", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/sessions", nil)
	req.Header.Set("Authorization", "Bearer not-a-real-token")
	w := httptest.NewRecorder()
	routes.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProtectedRoutesWithToken(t *testing.T) {
	s, _ := newAuthTestServer(t)
	resp := register(t, s, "jane@example.com", "correct-horse")

	req := httptest.NewRequest(http.MethodGet, "/sessions", nil)
	req.Header.Set("Authorization", "Bearer "+resp.Token)
	rec := httptest.NewRecorder()
	s.routes().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]\n", rec.Body.String())
}

func TestUpdatePassword(t *testing.T) {
	s, _ := newAuthTestServer(t)
	resp := register(t, s, "jane@example.com", "correct-horse")

	body := types.UpdatePasswordRequest{CurrentPassword: "correct-horse", NewPassword: "even-better-pass"}
	data, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPut, "/auth/password", bytes.NewReader(data))
	req.Header.Set("Authorization", "Bearer "+resp.Token)
	rec := httptest.NewRecorder()
	s.routes().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// Old password no longer works
	rec2 := doJSON(t, s.routes(), http.MethodPost, "/auth/login", types.LoginRequest{
		Email: "jane@example.com", Password: "correct-horse",
	})
	assert.Equal(t, http.StatusUnauthorized, rec2.Code)

	rec2 = doJSON(t, s.routes(), http.MethodPost, "/auth/login", types.LoginRequest{
		Email: "jane@example.com", Password: "even-better-pass",
	})
	assert.Equal(t, http.StatusOK, rec2.Code)
}
