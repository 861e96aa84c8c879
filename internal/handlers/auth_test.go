package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlexSaifo/school-management-system-sub003/internal/models"
)

type fakeUserRepo struct {
	users      map[string]models.User // by id
	byEmail    map[string]models.User
	createErr  error
	authErr    error
	lastRole models.UserRole
}

func newFakeUserRepo(users ...models.User) *fakeUserRepo {
	f := &fakeUserRepo{
		users:   make(map[string]models.User),
		byEmail: make(map[string]models.User),
	}
	for _, u := range users {
		f.users[u.ID] = u
		f.byEmail[u.Email] = u
	}
	return f
}

func (f *fakeUserRepo) CreateUser(_ context.Context, email, password, firstName, lastName string, role models.UserRole) (models.User, error) {
	if f.createErr != nil {
		return models.User{}, f.createErr
	}
	f.lastRole = role
	u := models.User{ID: "new-id", Email: email, FirstName: firstName, LastName: lastName, Role: role, IsActive: true}
	f.users[u.ID] = u
	f.byEmail[u.Email] = u
	return u, nil
}

func (f *fakeUserRepo) AuthenticateUser(_ context.Context, email, password string) (models.User, error) {
	if f.authErr != nil {
		return models.User{}, f.authErr
	}
	u, ok := f.byEmail[email]
	if !ok {
		return models.User{}, errors.New("invalid credentials")
	}
	return u, nil
}

func (f *fakeUserRepo) GetUserByID(_ context.Context, userID string) (models.User, error) {
	u, ok := f.users[userID]
	if !ok {
		return models.User{}, errors.New("not found")
	}
	return u, nil
}

func (f *fakeUserRepo) ListActiveUserIDs(context.Context) ([]string, error) { return nil, nil }

func (f *fakeUserRepo) ListActiveUserIDsByRole(context.Context, models.UserRole) ([]string, error) {
	return nil, nil
}

func TestSignUp(t *testing.T) {
	repo := newFakeUserRepo()
	h := NewAuthHandler(repo, "secret", zerolog.Nop())

	body := `{"email":"jane@school.test","password":"longenough","first_name":"Jane","last_name":"Doe","role":"teacher"}`
	req := httptest.NewRequest(http.MethodPost, "/api/signup", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.SignUp(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, models.RoleTeacher, repo.lastRole, "role input is normalized")

	var user models.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &user))
	assert.Equal(t, "jane@school.test", user.Email)
}

func TestSignUpValidation(t *testing.T) {
	h := NewAuthHandler(newFakeUserRepo(), "secret", zerolog.Nop())

	tests := []struct {
		name string
		body string
	}{
		{"not json", "not-json"},
		{"short password", `{"email":"a@b.c","password":"short","first_name":"A","last_name":"B","role":"student"}`},
		{"bad email", `{"email":"nope","password":"longenough","first_name":"A","last_name":"B","role":"student"}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/signup", strings.NewReader(tc.body))
			rec := httptest.NewRecorder()
			h.SignUp(rec, req)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestSignUpInvalidRole(t *testing.T) {
	h := NewAuthHandler(newFakeUserRepo(), "secret", zerolog.Nop())

	body := `{"email":"jane@school.test","password":"longenough","first_name":"Jane","last_name":"Doe","role":"principal"}`
	req := httptest.NewRequest(http.MethodPost, "/api/signup", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.SignUp(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLogin(t *testing.T) {
	repo := newFakeUserRepo(models.User{
		ID:    "u1",
		Email: "jane@school.test",
		Role:  models.RoleTeacher,
	})
	h := NewAuthHandler(repo, "secret", zerolog.Nop())

	body := `{"email":"jane@school.test","password":"whatever"}`
	req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Token string      `json:"token"`
		User  models.User `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "u1", resp.User.ID)
}

func TestLoginFailure(t *testing.T) {
	repo := newFakeUserRepo()
	repo.authErr = errors.New("invalid credentials")
	h := NewAuthHandler(repo, "secret", zerolog.Nop())

	body := `{"email":"jane@school.test","password":"wrong"}`
	req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
