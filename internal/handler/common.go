package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-dashboard/internal/middleware"
	"github.com/iliyamo/restaurant-dashboard/internal/repository"
	"github.com/iliyamo/restaurant-dashboard/internal/service"
	"github.com/iliyamo/restaurant-dashboard/internal/workflow"
)

// tenantOf returns the tenant id of an authenticated request.  JWTAuth
// guarantees it is set on /v1 routes.
func tenantOf(c echo.Context) (string, bool) {
	t := middleware.TenantID(c)
	return t, t != ""
}

func unauthorized(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
}

// statusFor maps a service or repository error to its HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrTenantRequired),
		errors.Is(err, service.ErrInvalidPayload),
		errors.Is(err, service.ErrMissingMetadata),
		errors.Is(err, service.ErrUnknownPack),
		errors.Is(err, service.ErrAuthentication),
		errors.Is(err, workflow.ErrUnknownStatus):
		return http.StatusBadRequest
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, workflow.ErrInvalidTransition),
		errors.Is(err, workflow.ErrAmbiguousTransition),
		errors.Is(err, service.ErrInsufficientMinutes),
		errors.Is(err, repository.ErrConflict):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// writeError renders err as {"error": ...}.  Internal errors are logged
// and rendered with a generic message; the missing-configuration case
// keeps its own message so operators can tell it apart.
func writeError(c echo.Context, err error) error {
	code := statusFor(err)
	body := echo.Map{"error": err.Error()}
	var te *workflow.TransitionError
	if errors.As(err, &te) {
		body["from"] = te.From
		body["to"] = te.To
	}
	if code == http.StatusInternalServerError {
		log.Printf("[http] %s %s failed: %v", c.Request().Method, c.Path(), err)
		switch {
		case errors.Is(err, service.ErrNotConfigured):
			body["error"] = "missing configuration"
		case errors.Is(err, service.ErrUpstream):
			body["error"] = "upstream provider unavailable"
		default:
			body["error"] = "internal error"
		}
	}
	return c.JSON(code, body)
}
