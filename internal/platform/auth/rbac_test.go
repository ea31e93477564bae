package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func contextWithRoles(method string, roles ...string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(method, "/", nil)
	ctx := context.WithValue(req.Context(), UserRolesKey, roles)
	return e.NewContext(req.WithContext(ctx), httptest.NewRecorder())
}

func TestRequireRole_Allowed(t *testing.T) {
	c := contextWithRoles(http.MethodGet, RoleStaff)
	if err := RequireRole(RoleStaff)(okHandler)(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRequireRole_Denied(t *testing.T) {
	c := contextWithRoles(http.MethodGet, RoleViewer)
	expectStatus(t, RequireRole(RoleStaff)(okHandler)(c), http.StatusForbidden)
}

func TestRequireRole_AdminBypass(t *testing.T) {
	c := contextWithRoles(http.MethodDelete, RoleAdmin)
	if err := RequireRole(RoleStaff)(okHandler)(c); err != nil {
		t.Fatalf("admin should pass: %v", err)
	}
}

func TestRequireWriteRole(t *testing.T) {
	mw := RequireWriteRole([]string{RoleViewer}, []string{RoleStaff})

	if err := mw(okHandler)(contextWithRoles(http.MethodGet, RoleViewer)); err != nil {
		t.Errorf("viewer should read: %v", err)
	}
	expectStatus(t, mw(okHandler)(contextWithRoles(http.MethodPost, RoleViewer)), http.StatusForbidden)
	if err := mw(okHandler)(contextWithRoles(http.MethodPatch, RoleStaff)); err != nil {
		t.Errorf("staff should write: %v", err)
	}
	if err := mw(okHandler)(contextWithRoles(http.MethodGet, RoleStaff)); err != nil {
		t.Errorf("staff should read: %v", err)
	}
	expectStatus(t, mw(okHandler)(contextWithRoles(http.MethodGet)), http.StatusForbidden)
}

func TestRequireWriteRole_Message(t *testing.T) {
	mw := RequireWriteRole([]string{RoleViewer}, []string{RoleStaff})

	err := mw(okHandler)(contextWithRoles(http.MethodDelete, RoleViewer))
	he, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected *echo.HTTPError, got %T", err)
	}
	if he.Message != "required role: staff" {
		t.Errorf("unexpected message: %v", he.Message)
	}

	err = mw(okHandler)(contextWithRoles(http.MethodGet))
	he, _ = err.(*echo.HTTPError)
	if he == nil || he.Message != "required role: viewer or staff" {
		t.Errorf("unexpected read denial: %v", err)
	}
}
