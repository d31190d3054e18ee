package echo

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	appraisalapp "github.com/mohammadpnp/appraisal-import/internal/application/appraisal"
	rosterapp "github.com/mohammadpnp/appraisal-import/internal/application/roster"
	runapp "github.com/mohammadpnp/appraisal-import/internal/application/run"
	"github.com/mohammadpnp/appraisal-import/internal/domain/tenant"
	"github.com/mohammadpnp/appraisal-import/internal/infrastructure/file"
)

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type apiResponse struct {
	Data  any        `json:"data,omitempty"`
	Error *errorBody `json:"error,omitempty"`
}

func fail(c echo.Context, status int, code, message string) error {
	return c.JSON(status, apiResponse{Error: &errorBody{Code: code, Message: message}})
}

// writeError maps a use case error onto the response envelope. fallback is
// the message used for unexpected errors.
func writeError(c echo.Context, err error, fallback string) error {
	switch {
	case errors.Is(err, tenant.ErrUnauthenticated):
		return fail(c, http.StatusUnauthorized, "unauthenticated", "missing user or tenant identity")
	case errors.Is(err, file.ErrUnsupportedFormat):
		return fail(c, http.StatusBadRequest, "unsupported_format", "file must be .csv, .xlsx or .json")
	case errors.Is(err, file.ErrMissingHeader):
		return fail(c, http.StatusBadRequest, "missing_header", "file must start with a header row")
	case errors.Is(err, appraisalapp.ErrNoRows), errors.Is(err, rosterapp.ErrNoRows):
		return fail(c, http.StatusBadRequest, "no_rows", "file contains no rows")
	case errors.Is(err, rosterapp.ErrNoTargets):
		return fail(c, http.StatusBadRequest, "no_targets", "no valid selected users to invite")
	case errors.Is(err, runapp.ErrInvalidRunID):
		return fail(c, http.StatusBadRequest, "invalid_run_id", "id must be a valid UUID")
	case errors.Is(err, runapp.ErrRunNotFound):
		return fail(c, http.StatusNotFound, "not_found", "run not found")
	default:
		c.Set(errorCauseKey, err)
		return fail(c, http.StatusInternalServerError, "internal_error", fallback)
	}
}
