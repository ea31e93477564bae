package auth

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// RequireRole returns middleware that checks if the user has at least one of the specified roles.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if hasRole(RolesFromContext(c.Request().Context()), roles) {
				return next(c)
			}
			return echo.NewHTTPError(http.StatusForbidden,
				fmt.Sprintf("required role: %s", strings.Join(roles, " or ")))
		}
	}
}

// RequireWriteRole lets reads through for any of readRoles and requires one
// of writeRoles for every other method.
func RequireWriteRole(readRoles, writeRoles []string) echo.MiddlewareFunc {
	read := RequireRole(append(append([]string{}, readRoles...), writeRoles...)...)
	write := RequireRole(writeRoles...)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		readNext, writeNext := read(next), write(next)
		return func(c echo.Context) error {
			switch c.Request().Method {
			case http.MethodGet, http.MethodHead:
				return readNext(c)
			}
			return writeNext(c)
		}
	}
}

// hasRole reports whether any of userRoles satisfies required. Admin
// satisfies everything.
func hasRole(userRoles, required []string) bool {
	for _, has := range userRoles {
		if has == RoleAdmin {
			return true
		}
		for _, r := range required {
			if has == r {
				return true
			}
		}
	}
	return false
}
