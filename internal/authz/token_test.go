package authz

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlexSaifo/school-management-system-sub003/internal/models"
)

const testSecret = "test-secret"

var testUser = models.User{
	ID:        "u1",
	Email:     "jane@school.test",
	FirstName: "Jane",
	LastName:  "Doe",
	Role:      models.RoleTeacher,
}

func TestIssueAndVerifyToken(t *testing.T) {
	token, err := IssueToken(testSecret, testUser, time.Hour)
	require.NoError(t, err)

	identity, err := VerifyToken(testSecret, token)
	require.NoError(t, err)
	assert.Equal(t, "u1", identity.UserID)
	assert.Equal(t, models.RoleTeacher, identity.Role)
}

func TestVerifyTokenWrongSecret(t *testing.T) {
	token, err := IssueToken(testSecret, testUser, time.Hour)
	require.NoError(t, err)

	_, err = VerifyToken("other-secret", token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyTokenExpired(t *testing.T) {
	token, err := IssueToken(testSecret, testUser, -time.Minute)
	require.NoError(t, err)

	_, err = VerifyToken(testSecret, token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyTokenGarbage(t *testing.T) {
	_, err := VerifyToken(testSecret, "not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAuthenticateMiddleware(t *testing.T) {
	token, err := IssueToken(testSecret, testUser, time.Hour)
	require.NoError(t, err)

	var gotUserID string
	var gotRole models.UserRole
	handler := Authenticate(testSecret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID, _ = UserIDFromRequest(r)
		gotRole, _ = RoleFromRequest(r)
		w.WriteHeader(http.StatusNoContent)
	}))

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
	}{
		{"valid token", "Bearer " + token, http.StatusNoContent},
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic " + token, http.StatusUnauthorized},
		{"bad token", "Bearer garbage", http.StatusUnauthorized},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/anything", nil)
			if tc.authHeader != "" {
				req.Header.Set("Authorization", tc.authHeader)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			assert.Equal(t, tc.wantStatus, rec.Code)
		})
	}

	assert.Equal(t, "u1", gotUserID)
	assert.Equal(t, models.RoleTeacher, gotRole)
}

func TestRequireRole(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	tests := []struct {
		name       string
		role       models.UserRole
		required   models.UserRole
		wantStatus int
	}{
		{"exact role", models.RoleTeacher, models.RoleTeacher, http.StatusNoContent},
		{"higher tier passes", models.RoleAdmin, models.RoleTeacher, http.StatusNoContent},
		{"lower tier rejected", models.RoleStudent, models.RoleTeacher, http.StatusForbidden},
		{"parent below teacher", models.RoleParent, models.RoleTeacher, http.StatusForbidden},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/assignments", nil)
			req = req.WithContext(WithIdentity(req.Context(), "u1", tc.role))
			rec := httptest.NewRecorder()
			RequireRole(tc.required)(next).ServeHTTP(rec, req)
			assert.Equal(t, tc.wantStatus, rec.Code)
		})
	}
}

func TestRequireRoleNoIdentity(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/assignments", nil)
	rec := httptest.NewRecorder()
	RequireRole(models.RoleTeacher)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("handler should not run")
	})).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
