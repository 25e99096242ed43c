package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "taskdesk.com/taskdesk/internal/errors"
)

func serve(e *echo.Echo, method, path, auth string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if auth != "" {
		req.Header.Set(echo.HeaderAuthorization, auth)
	}
	req.RemoteAddr = "10.0.0.1:1234"
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func newEcho() *echo.Echo {
	e := echo.New()
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		_ = c.NoContent(apperrors.StatusCode(err))
	}
	return e
}

func TestRateLimiter_PerPath(t *testing.T) {
	e := newEcho()
	e.Use(RateLimiter(2, time.Minute))
	ok := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	e.POST("/login", ok)
	e.POST("/register", ok)

	assert.Equal(t, http.StatusOK, serve(e, http.MethodPost, "/login", "").Code)
	assert.Equal(t, http.StatusOK, serve(e, http.MethodPost, "/login", "").Code)
	assert.Equal(t, http.StatusTooManyRequests, serve(e, http.MethodPost, "/login", "").Code)
	assert.Equal(t, http.StatusOK, serve(e, http.MethodPost, "/register", "").Code)
}

func TestAuthenticate(t *testing.T) {
	secret := []byte("s3cret")

	e := newEcho()
	e.GET("/me", func(c echo.Context) error {
		return c.String(http.StatusOK, c.Get(UsernameKey).(string))
	}, Authenticate(secret))

	sign := func(key []byte, claims jwt.MapClaims) string {
		s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
		require.NoError(t, err)
		return s
	}

	good := sign(secret, jwt.MapClaims{"sub": "alice", "exp": time.Now().Add(time.Hour).Unix()})
	rec := serve(e, http.MethodGet, "/me", "Bearer "+good)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "alice", rec.Body.String())

	tests := map[string]string{
		"missing":     "",
		"not bearer":  "Basic abc",
		"wrong key":   "Bearer " + sign([]byte("other"), jwt.MapClaims{"sub": "alice"}),
		"expired":     "Bearer " + sign(secret, jwt.MapClaims{"sub": "alice", "exp": time.Now().Add(-time.Hour).Unix()}),
		"no subject":  "Bearer " + sign(secret, jwt.MapClaims{"exp": time.Now().Add(time.Hour).Unix()}),
		"not a token": "Bearer garbage",
	}
	for name, header := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, http.StatusUnauthorized, serve(e, http.MethodGet, "/me", header).Code)
		})
	}
}
