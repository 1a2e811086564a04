package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret"

func newEcho() *echo.Echo {
	e := echo.New()
	g := e.Group("", JwtAuthMiddleware(secret))
	g.GET("/vitals/latest/:user_id", func(c echo.Context) error {
		return c.String(http.StatusOK, c.Get(UserIDKey).(string))
	})
	g.GET("/status", func(c echo.Context) error {
		return c.String(http.StatusOK, c.Get(UserIDKey).(string))
	})
	return e
}

func do(e *echo.Echo, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestJwtAuthMiddleware(t *testing.T) {
	e := newEcho()
	good, err := IssueToken(secret, "u1", time.Now())
	require.NoError(t, err)
	expired, err := IssueToken(secret, "u1", time.Now().Add(-48*time.Hour))
	require.NoError(t, err)
	forged, err := IssueToken("other-secret", "u1", time.Now())
	require.NoError(t, err)

	tests := []struct {
		name  string
		path  string
		token string
		code  int
	}{
		{"missing token", "/status", "", http.StatusUnauthorized},
		{"valid token", "/status", good, http.StatusOK},
		{"matching user", "/vitals/latest/u1", good, http.StatusOK},
		{"other user", "/vitals/latest/u2", good, http.StatusForbidden},
		{"expired", "/status", expired, http.StatusUnauthorized},
		{"wrong secret", "/status", forged, http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(e, tt.path, tt.token)
			assert.Equal(t, tt.code, rec.Code)
			if tt.code == http.StatusOK {
				assert.Equal(t, "u1", rec.Body.String())
			}
		})
	}
}

func TestParseToken_RoundTrip(t *testing.T) {
	tok, err := IssueToken(secret, "patient-7", time.Now())
	require.NoError(t, err)

	claims, err := ParseToken(secret, tok)
	require.NoError(t, err)
	assert.Equal(t, "patient-7", claims.UserID)
	assert.Equal(t, "patient-7", claims.Subject)
}

func TestParseToken_RejectsMissingExpiryAndOtherAlgorithms(t *testing.T) {
	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, JwtCustomClaims{UserID: "u1"}).SignedString([]byte(secret))
	require.NoError(t, err)
	_, err = ParseToken(secret, noExp)
	assert.ErrorIs(t, err, jwt.ErrTokenRequiredClaimMissing)

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, JwtCustomClaims{
		UserID:           "u1",
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	}).SignedString([]byte(secret))
	require.NoError(t, err)
	_, err = ParseToken(secret, hs512)
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)

	assert.Equal(t, http.StatusUnauthorized, do(newEcho(), "/status", noExp).Code)
}
