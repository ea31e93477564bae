// Package rest holds the small helpers shared by the REST handlers: path and
// query parameter parsing and mapping of core errors to HTTP errors.
package rest

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/healthcare/healthcare/internal/platform/patch"
	"github.com/healthcare/healthcare/internal/platform/store"
)

// Message is the body returned for informational, non-error outcomes.
type Message struct {
	Message string `json:"message"`
}

// Error translates a core error into an echo HTTP error.
func Error(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, store.ErrConflict):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, store.ErrPartialWrite), errors.Is(err, store.ErrInvalidKeyType):
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	case errors.Is(err, patch.ErrPatchFailure):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
}

// ID parses the ":id" path parameter.
func ID(c echo.Context) (int, error) {
	return IntParam(c, "id")
}

func IntParam(c echo.Context, name string) (int, error) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return id, nil
}

// OptString returns the query parameter or nil when it is absent or empty.
func OptString(c echo.Context, name string) *string {
	v := c.QueryParam(name)
	if v == "" {
		return nil
	}
	return &v
}

// OptInt returns the integer query parameter or nil when it is absent.
func OptInt(c echo.Context, name string) (*int, error) {
	v := c.QueryParam(name)
	if v == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("invalid %s: %s", name, v))
	}
	return &n, nil
}

// OptFloat returns the float query parameter or nil when it is absent.
func OptFloat(c echo.Context, name string) (*float64, error) {
	v := c.QueryParam(name)
	if v == "" {
		return nil, nil
	}
	n, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("invalid %s: %s", name, v))
	}
	return &n, nil
}

// Bind decodes a full entity body.
func Bind(c echo.Context, v interface{}) error {
	if err := c.Bind(v); err != nil {
		if he := tooLarge(err); he != nil {
			return he
		}
		var he *echo.HTTPError
		if errors.As(err, &he) {
			return echo.NewHTTPError(http.StatusBadRequest, he.Message)
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

// BindPatch decodes a partial entity body, rejecting unknown fields.
func BindPatch[P any](c echo.Context) (P, error) {
	p, err := patch.Decode[P](c.Request().Body)
	if err != nil {
		if he := tooLarge(err); he != nil {
			return p, he
		}
		return p, Error(err)
	}
	return p, nil
}

// tooLarge finds a 413 raised while the body was being read, however deeply
// the decoder wrapped it.
func tooLarge(err error) *echo.HTTPError {
	var he *echo.HTTPError
	for errors.As(err, &he) {
		if he.Code == http.StatusRequestEntityTooLarge {
			return he
		}
		if he.Internal == nil {
			return nil
		}
		err = he.Internal
	}
	return nil
}
