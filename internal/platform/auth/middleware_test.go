package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

var testSigningKey = []byte("test-secret-key-for-unit-tests-only")

func createTestToken(t *testing.T, claims Claims, key []byte) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenStr, err := token.SignedString(key)
	if err != nil {
		t.Fatalf("failed to sign test token: %v", err)
	}
	return tokenStr
}

func okHandler(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

func expectStatus(t *testing.T, err error, code int) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %d, got nil error", code)
	}
	httpErr, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected echo.HTTPError, got %T", err)
	}
	if httpErr.Code != code {
		t.Errorf("expected %d, got %d", code, httpErr.Code)
	}
}

func TestBasicAuth_Headers(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/patients", nil)
	req.Header.Set(UsernameHeader, "admin")
	req.Header.Set(PasswordHeader, "s3cret")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var user string
	var roles []string
	handler := func(c echo.Context) error {
		user = UserIDFromContext(c.Request().Context())
		roles = RolesFromContext(c.Request().Context())
		return nil
	}

	mw := BasicAuthMiddleware(BasicConfig{Username: "admin", Password: "s3cret"})
	if err := mw(handler)(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user != "admin" || len(roles) != 1 || roles[0] != RoleAdmin {
		t.Errorf("unexpected identity %q %v", user, roles)
	}
}

func TestBasicAuth_HTTPBasic(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.SetBasicAuth("admin", "s3cret")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := BasicAuthMiddleware(BasicConfig{Username: "admin", Password: "s3cret"})
	if err := mw(okHandler)(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestBasicAuth_Rejects(t *testing.T) {
	tests := []struct {
		name  string
		setup func(r *http.Request)
	}{
		{"no credentials", func(r *http.Request) {}},
		{"wrong password", func(r *http.Request) {
			r.Header.Set(UsernameHeader, "admin")
			r.Header.Set(PasswordHeader, "guess")
		}},
		{"wrong basic user", func(r *http.Request) { r.SetBasicAuth("root", "s3cret") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			tt.setup(req)
			c := e.NewContext(req, httptest.NewRecorder())

			mw := BasicAuthMiddleware(BasicConfig{Username: "admin", Password: "s3cret"})
			expectStatus(t, mw(okHandler)(c), http.StatusUnauthorized)
		})
	}
}

func TestBasicAuth_Skipper(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetPath("/health")

	mw := BasicAuthMiddleware(BasicConfig{Username: "admin", Password: "s3cret", Skipper: AuthSkipper})
	if err := mw(okHandler)(c); err != nil {
		t.Fatalf("expected /health to skip auth, got %v", err)
	}
}

func TestJWTMiddleware_MissingHeader(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	mw := JWTMiddleware(JWTConfig{SigningKey: testSigningKey})
	expectStatus(t, mw(okHandler)(c), http.StatusUnauthorized)
}

func TestJWTMiddleware_InvalidFormat(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{"no bearer prefix", "Token abc123"},
		{"missing token", "Bearer"},
		{"empty value", "Bearer "},
		{"basic auth", "Basic dXNlcjpwYXNz"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("Authorization", tt.header)
			c := e.NewContext(req, httptest.NewRecorder())

			mw := JWTMiddleware(JWTConfig{SigningKey: testSigningKey})
			expectStatus(t, mw(okHandler)(c), http.StatusUnauthorized)
		})
	}
}

func TestJWTMiddleware_ValidToken(t *testing.T) {
	token := createTestToken(t, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "nurse-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		Roles: []string{RoleStaff},
	}, testSigningKey)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	c := e.NewContext(req, httptest.NewRecorder())

	var user string
	handler := func(c echo.Context) error {
		user = UserIDFromContext(c.Request().Context())
		return nil
	}

	if err := JWTMiddleware(JWTConfig{SigningKey: testSigningKey})(handler)(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user != "nurse-1" {
		t.Errorf("expected nurse-1, got %q", user)
	}
}

func TestJWTMiddleware_Rejects(t *testing.T) {
	expired := createTestToken(t, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "nurse-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}, testSigningKey)
	wrongKey := createTestToken(t, Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "nurse-1"},
	}, []byte("another-key"))
	wrongIssuer := createTestToken(t, Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "nurse-1", Issuer: "elsewhere"},
	}, testSigningKey)

	for name, token := range map[string]string{"expired": expired, "wrong key": wrongKey, "wrong issuer": wrongIssuer} {
		t.Run(name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			c := e.NewContext(req, httptest.NewRecorder())

			mw := JWTMiddleware(JWTConfig{SigningKey: testSigningKey, Issuer: "healthcare"})
			expectStatus(t, mw(okHandler)(c), http.StatusUnauthorized)
		})
	}
}

func TestIssueToken_RoundTrip(t *testing.T) {
	token, err := IssueToken(testSigningKey, "healthcare", "clerk", []string{RoleViewer}, time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	c := e.NewContext(req, httptest.NewRecorder())

	var roles []string
	handler := func(c echo.Context) error {
		roles = RolesFromContext(c.Request().Context())
		return nil
	}
	if err := JWTMiddleware(JWTConfig{SigningKey: testSigningKey, Issuer: "healthcare"})(handler)(c); err != nil {
		t.Fatalf("issued token rejected: %v", err)
	}
	if len(roles) != 1 || roles[0] != RoleViewer {
		t.Errorf("unexpected roles %v", roles)
	}
}

func TestIssueToken_RequiresKey(t *testing.T) {
	if _, err := IssueToken(nil, "", "clerk", nil, time.Minute); err == nil {
		t.Error("expected error without signing key")
	}
}

func TestDevAuthMiddleware(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	var user string
	handler := func(c echo.Context) error {
		user = UserIDFromContext(c.Request().Context())
		return nil
	}
	if err := DevAuthMiddleware()(handler)(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user != "dev-user" {
		t.Errorf("expected dev-user, got %q", user)
	}
}
