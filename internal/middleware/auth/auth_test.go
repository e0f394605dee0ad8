package authmw

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/akarpov/product_api/internal/tokens"
)

func testIssuer() *tokens.Issuer {
	return &tokens.Issuer{Secret: []byte("test-secret"), TTL: time.Hour}
}

func doRequest(t *testing.T, mw echo.MiddlewareFunc, authHeader string) (*httptest.ResponseRecorder, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v2/products", nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := mw(func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	return rec, handler(c)
}

func requireHTTPError(t *testing.T, err error, code int) {
	t.Helper()
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected HTTPError, got %v", err)
	require.Equal(t, code, he.Code)
}

func TestRequireAuthMissingToken(t *testing.T) {
	m := New(testIssuer())

	_, err := doRequest(t, m.RequireAuth, "")
	requireHTTPError(t, err, http.StatusUnauthorized)

	_, err = doRequest(t, m.RequireAuth, "Bearer ")
	requireHTTPError(t, err, http.StatusUnauthorized)

	// token without the Bearer scheme is treated as missing
	_, err = doRequest(t, m.RequireAuth, "sometoken")
	requireHTTPError(t, err, http.StatusUnauthorized)
}

func TestRequireAuthInvalidToken(t *testing.T) {
	m := New(testIssuer())

	_, err := doRequest(t, m.RequireAuth, "Bearer garbage")
	requireHTTPError(t, err, http.StatusUnauthorized)
}

func TestRequireAuthExpiredToken(t *testing.T) {
	expired := &tokens.Issuer{Secret: []byte("test-secret"), TTL: -time.Minute}
	raw, err := expired.Issue(1, "user")
	require.NoError(t, err)

	m := New(testIssuer())
	_, err = doRequest(t, m.RequireAuth, "Bearer "+raw)
	requireHTTPError(t, err, http.StatusUnauthorized)
}

func TestRequireAuthSetsContext(t *testing.T) {
	issuer := testIssuer()
	raw, err := issuer.Issue(7, "user")
	require.NoError(t, err)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v2/products", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+raw)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	m := New(issuer)
	handler := m.RequireAuth(func(c echo.Context) error {
		require.Equal(t, 7, c.Get(ContextUserID))
		require.Equal(t, "user", c.Get(ContextRole))
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, handler(c))
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireAdmin(t *testing.T) {
	issuer := testIssuer()
	m := New(issuer)

	userToken, err := issuer.Issue(1, "user")
	require.NoError(t, err)
	_, err = doRequest(t, m.RequireAdmin, "Bearer "+userToken)
	requireHTTPError(t, err, http.StatusForbidden)

	adminToken, err := issuer.Issue(2, "admin")
	require.NoError(t, err)
	rec, err := doRequest(t, m.RequireAdmin, "Bearer "+adminToken)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, rec.Code)
}
