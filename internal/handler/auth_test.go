package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gatherhub/api/internal/model"
	"github.com/gatherhub/api/internal/service"
	"github.com/gatherhub/api/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// In-memory repositories backing real services; handler tests exercise the
// full decode/validate/map pipeline.

type memUserRepo struct {
	users      map[string]*model.User
	emailIndex map[string]*model.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{
		users:      make(map[string]*model.User),
		emailIndex: make(map[string]*model.User),
	}
}

func (m *memUserRepo) Create(ctx context.Context, user *model.User) error {
	user.ID = "user:" + user.Email
	user.CreatedOn = time.Now()
	user.UpdatedOn = time.Now()
	m.users[user.ID] = user
	m.emailIndex[user.Email] = user
	return nil
}

func (m *memUserRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	return m.users[id], nil
}

func (m *memUserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return m.emailIndex[email], nil
}

func newTestAuthHandler(t *testing.T) *AuthHandler {
	t.Helper()
	jwtService, err := jwt.NewService(jwt.Config{
		Secret:         "test-secret",
		Issuer:         "test-issuer",
		ExpirationDays: 7,
	})
	require.NoError(t, err)
	return NewAuthHandler(service.NewAuthService(newMemUserRepo(), jwtService))
}

func makeJSONRequest(method, path string, body interface{}) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestAuthHandler_Register_Success(t *testing.T) {
	h := newTestAuthHandler(t)

	req := makeJSONRequest(http.MethodPost, "/v1/auth/register", RegisterRequest{
		Name:     "Ada",
		Email:    "ada@example.com",
		Password: "password123",
	})
	rec := httptest.NewRecorder()

	h.Register(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		Data MessageResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "account created", resp.Data.Message)
	// Registration never hands out a token
	assert.NotContains(t, rec.Body.String(), "token")
}

func TestAuthHandler_Register_DuplicateEmail(t *testing.T) {
	h := newTestAuthHandler(t)

	body := RegisterRequest{Name: "Ada", Email: "ada@example.com", Password: "password123"}

	rec := httptest.NewRecorder()
	h.Register(rec, makeJSONRequest(http.MethodPost, "/v1/auth/register", body))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = httptest.NewRecorder()
	h.Register(rec, makeJSONRequest(http.MethodPost, "/v1/auth/register", body))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAuthHandler_Register_InvalidBody(t *testing.T) {
	h := newTestAuthHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/auth/register", bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()

	h.Register(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAuthHandler_Register_WeakPassword(t *testing.T) {
	h := newTestAuthHandler(t)

	rec := httptest.NewRecorder()
	h.Register(rec, makeJSONRequest(http.MethodPost, "/v1/auth/register", RegisterRequest{
		Name:     "Ada",
		Email:    "ada@example.com",
		Password: "short",
	}))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestAuthHandler_Login_Success(t *testing.T) {
	h := newTestAuthHandler(t)

	rec := httptest.NewRecorder()
	h.Register(rec, makeJSONRequest(http.MethodPost, "/v1/auth/register", RegisterRequest{
		Name:     "Ada",
		Email:    "ada@example.com",
		Password: "password123",
	}))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = httptest.NewRecorder()
	h.Login(rec, makeJSONRequest(http.MethodPost, "/v1/auth/login", LoginRequest{
		Email:    "ada@example.com",
		Password: "password123",
	}))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data LoginResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Data.Token)
	assert.Equal(t, "ada@example.com", resp.Data.User.Email)
}

func TestAuthHandler_Login_UnknownEmail(t *testing.T) {
	h := newTestAuthHandler(t)

	rec := httptest.NewRecorder()
	h.Login(rec, makeJSONRequest(http.MethodPost, "/v1/auth/login", LoginRequest{
		Email:    "nobody@example.com",
		Password: "password123",
	}))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAuthHandler_Login_WrongPassword(t *testing.T) {
	h := newTestAuthHandler(t)

	rec := httptest.NewRecorder()
	h.Register(rec, makeJSONRequest(http.MethodPost, "/v1/auth/register", RegisterRequest{
		Name:     "Ada",
		Email:    "ada@example.com",
		Password: "password123",
	}))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = httptest.NewRecorder()
	h.Login(rec, makeJSONRequest(http.MethodPost, "/v1/auth/login", LoginRequest{
		Email:    "ada@example.com",
		Password: "wrongpassword",
	}))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
