package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/justsurfingit/jobhunt/internal/config"
	"github.com/justsurfingit/jobhunt/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager() *TokenManager {
	return NewTokenManager(config.AuthConfig{Secret: "test-secret", TokenTTL: 30 * time.Minute})
}

func TestIssueAndParse(t *testing.T) {
	m := newTestManager()

	token, expiresAt, err := m.Issue(42)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(30*time.Minute), expiresAt, 5*time.Second)

	id, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), id)
}

func TestParse_Expired(t *testing.T) {
	m := newTestManager()
	m.now = func() time.Time { return time.Now().Add(-time.Hour) }
	token, _, err := m.Issue(1)
	require.NoError(t, err)

	m.now = time.Now
	_, err = m.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParse_WrongSecret(t *testing.T) {
	token, _, err := newTestManager().Issue(1)
	require.NoError(t, err)

	other := NewTokenManager(config.AuthConfig{Secret: "other", TokenTTL: time.Minute})
	_, err = other.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParse_RejectsOtherAlgorithms(t *testing.T) {
	claims := jwt.RegisteredClaims{
		Subject:   "1",
		Issuer:    issuer,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = newTestManager().Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParse_BadSubject(t *testing.T) {
	for _, subject := range []string{"alice", "0", "-1", "18446744073709551616"} {
		t.Run(subject, func(t *testing.T) {
			claims := jwt.RegisteredClaims{
				Subject:   subject,
				Issuer:    issuer,
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
			}
			token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
			require.NoError(t, err)

			_, err = newTestManager().Parse(token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

type fakeScopes map[uint]bool

func (f fakeScopes) Exists(_ context.Context, id uint) error {
	if f[id] {
		return nil
	}
	return fmt.Errorf("%w: user %d does not exist", services.ErrInvalidScope, id)
}

type brokenScopes struct{}

func (brokenScopes) Exists(context.Context, uint) error {
	return errors.New("database is locked")
}

func TestMiddleware_LookupFailureIsServerError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := newTestManager()

	r := gin.New()
	r.GET("/me", m.Middleware(brokenScopes{}), func(c *gin.Context) { c.Status(http.StatusOK) })

	token, _, err := m.Issue(7)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Empty(t, w.Header().Get("WWW-Authenticate"))
}

func TestMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := newTestManager()

	r := gin.New()
	r.GET("/me", m.Middleware(fakeScopes{7: true}), func(c *gin.Context) {
		id, ok := UserID(c)
		require.True(t, ok)
		fromCtx, ok := UserIDFromContext(c.Request.Context())
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"user_id": id, "ctx_user_id": fromCtx})
	})

	valid, _, err := m.Issue(7)
	require.NoError(t, err)
	unknown, _, err := m.Issue(8)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{name: "valid", header: "Bearer " + valid, want: http.StatusOK},
		{name: "missing", header: "", want: http.StatusUnauthorized},
		{name: "not bearer", header: "Basic abc", want: http.StatusUnauthorized},
		{name: "garbage", header: "Bearer not-a-jwt", want: http.StatusUnauthorized},
		{name: "unknown user", header: "Bearer " + unknown, want: http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.want, w.Code)
			if tt.want == http.StatusUnauthorized {
				assert.Equal(t, "Bearer", w.Header().Get("WWW-Authenticate"))
			} else {
				assert.JSONEq(t, `{"user_id":7,"ctx_user_id":7}`, w.Body.String())
			}
		})
	}
}
