package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/places-api/internal/utils"
)

const testSecret = "unit-test-secret"

// runJWT sends a request through the middleware into a probe handler
// that records the injected user ID.
func runJWT(t *testing.T, method, authHeader string) (*httptest.ResponseRecorder, any) {
	t.Helper()
	e := echo.New()
	var captured any
	h := JWTAuth(testSecret)(func(c echo.Context) error {
		captured = c.Get(UserIDKey)
		return c.NoContent(http.StatusOK)
	})
	req := httptest.NewRequest(method, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	require.NoError(t, h(c))
	return rec, captured
}

func TestJWTAuthValidToken(t *testing.T) {
	tok, err := utils.NewAccessToken(testSecret, 42, "a@example.com", 5)
	require.NoError(t, err)

	rec, uid := runJWT(t, http.MethodGet, "Bearer "+tok.Token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, uint64(42), uid)
}

func TestJWTAuthMissingHeader(t *testing.T) {
	rec, uid := runJWT(t, http.MethodGet, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, uid)
}

func TestJWTAuthMalformedHeader(t *testing.T) {
	rec, _ := runJWT(t, http.MethodGet, "Token abc")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = runJWT(t, http.MethodGet, "Bearer ")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthWrongSecret(t *testing.T) {
	tok, err := utils.NewAccessToken("some-other-secret", 42, "a@example.com", 5)
	require.NoError(t, err)

	rec, _ := runJWT(t, http.MethodGet, "Bearer "+tok.Token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthExpiredToken(t *testing.T) {
	tok, err := utils.NewAccessToken(testSecret, 42, "a@example.com", -5)
	require.NoError(t, err)

	rec, _ := runJWT(t, http.MethodGet, "Bearer "+tok.Token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthPreflightPassesThrough(t *testing.T) {
	rec, uid := runJWT(t, http.MethodOptions, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, uid)
}
