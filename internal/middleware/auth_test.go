// AngelaMos | 2026
// auth_test.go

package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/drycleaning-api/internal/core"
)

type fakeVerifier struct {
	valid map[string]string
	err   error
}

func (f *fakeVerifier) VerifySessionToken(
	_ context.Context,
	token string,
) (*SessionClaims, error) {
	if userID, ok := f.valid[token]; ok {
		return &SessionClaims{
			UserID:    userID,
			TokenID:   "jti-" + token,
			ExpiresAt: time.Now().Add(time.Hour),
		}, nil
	}
	if f.err != nil {
		return nil, f.err
	}
	return nil, core.ErrTokenInvalid
}

type fakeRoles map[string]string

func (f fakeRoles) RoleOf(_ context.Context, userID string) (string, error) {
	role, ok := f[userID]
	if !ok {
		return "", core.ErrNotFound
	}
	return role, nil
}

func echoUser(w http.ResponseWriter, r *http.Request) {
	_, _ = w.Write([]byte(GetUserID(r.Context()) + "|" + GetUserRole(r.Context())))
}

func TestAuthenticator(t *testing.T) {
	verifier := &fakeVerifier{valid: map[string]string{"good": "user-1"}}
	handler := Authenticator(verifier, "jwt")(http.HandlerFunc(echoUser))

	tests := []struct {
		name     string
		prepare  func(r *http.Request)
		wantCode int
		wantBody string
	}{
		{
			name:     "cookie",
			prepare:  func(r *http.Request) { r.AddCookie(&http.Cookie{Name: "jwt", Value: "good"}) },
			wantCode: http.StatusOK,
			wantBody: "user-1|",
		},
		{
			name:     "bearer header",
			prepare:  func(r *http.Request) { r.Header.Set("Authorization", "Bearer good") },
			wantCode: http.StatusOK,
			wantBody: "user-1|",
		},
		{
			name:     "missing",
			prepare:  func(*http.Request) {},
			wantCode: http.StatusUnauthorized,
		},
		{
			name:     "invalid",
			prepare:  func(r *http.Request) { r.AddCookie(&http.Cookie{Name: "jwt", Value: "forged"}) },
			wantCode: http.StatusUnauthorized,
		},
	}

	var unauthorizedBodies []string
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			tc.prepare(req)
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tc.wantCode, rec.Code)
			if tc.wantBody != "" {
				assert.Equal(t, tc.wantBody, rec.Body.String())
			}
			if rec.Code == http.StatusUnauthorized {
				unauthorizedBodies = append(unauthorizedBodies, rec.Body.String())
			}
		})
	}

	require.Len(t, unauthorizedBodies, 2)
	assert.Equal(t, unauthorizedBodies[0], unauthorizedBodies[1])
}

func TestAuthenticator_ExpiredLooksLikeInvalid(t *testing.T) {
	expired := Authenticator(&fakeVerifier{err: core.ErrTokenExpired}, "jwt")(http.HandlerFunc(echoUser))
	invalid := Authenticator(&fakeVerifier{err: errors.New("bad signature")}, "jwt")(http.HandlerFunc(echoUser))

	bodies := make([]string, 0, 2)
	for _, h := range []http.Handler{expired, invalid} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "jwt", Value: "anything"})
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		bodies = append(bodies, rec.Body.String())
	}
	assert.Equal(t, bodies[0], bodies[1])
}

func TestRequireRole(t *testing.T) {
	verifier := &fakeVerifier{valid: map[string]string{
		"owner-token": "owner-1",
		"staff-token": "staff-1",
		"ghost-token": "deleted-1",
	}}
	roles := fakeRoles{"owner-1": "owner", "staff-1": "staff"}

	handler := Authenticator(verifier, "jwt")(
		RequireRole(roles, "owner")(http.HandlerFunc(echoUser)),
	)

	tests := []struct {
		token    string
		wantCode int
	}{
		{"owner-token", http.StatusOK},
		{"staff-token", http.StatusForbidden},
		{"ghost-token", http.StatusUnauthorized},
	}

	for _, tc := range tests {
		t.Run(tc.token, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin/stats", nil)
			req.AddCookie(&http.Cookie{Name: "jwt", Value: tc.token})
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)
			assert.Equal(t, tc.wantCode, rec.Code)
		})
	}
}

func TestRequireRole_WithoutAuthenticator(t *testing.T) {
	handler := RequireRole(fakeRoles{}, "owner")(http.HandlerFunc(echoUser))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestExtractToken_PrefersCookie(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "jwt", Value: "from-cookie"})
	req.Header.Set("Authorization", "Bearer from-header")

	assert.Equal(t, "from-cookie", ExtractToken(req, "jwt"))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	assert.Empty(t, ExtractToken(req, "jwt"))
}
