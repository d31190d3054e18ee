package echo

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	appraisalapp "github.com/mohammadpnp/appraisal-import/internal/application/appraisal"
	runapp "github.com/mohammadpnp/appraisal-import/internal/application/run"
)

// RunStarter launches a background run and returns its ID.
type RunStarter interface {
	Start(ctx context.Context, job runapp.Job) (string, error)
}

type runStarted struct {
	RunID string `json:"run_id"`
}

type AppraisalHandler struct {
	preview  appraisalapp.PreviewAppraisals
	importer appraisalapp.ImportAppraisals
	runs     RunStarter
}

func NewAppraisalHandler(preview appraisalapp.PreviewAppraisals, importer appraisalapp.ImportAppraisals, runs RunStarter) *AppraisalHandler {
	return &AppraisalHandler{preview: preview, importer: importer, runs: runs}
}

func (h *AppraisalHandler) Preview(c echo.Context) error {
	rows, err := readUploadRows(c)
	if errors.Is(err, errBadRequest) {
		return fail(c, http.StatusBadRequest, "invalid_request", err.Error())
	}
	if err != nil {
		return writeError(c, err, "failed to read upload")
	}

	out, err := h.preview.Execute(c.Request().Context(), appraisalapp.PreviewAppraisalsInput{
		Principal: principalFrom(c),
		Rows:      rows,
	})
	if err != nil {
		return writeError(c, err, "failed to preview appraisals")
	}
	return c.JSON(http.StatusOK, apiResponse{Data: out})
}

// Import accepts reviewed rows and commits them in the background.
func (h *AppraisalHandler) Import(c echo.Context) error {
	var req importAppraisalsRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid_request", "invalid request body")
	}
	if err := req.Validate(); err != nil {
		return fail(c, http.StatusBadRequest, "invalid_request", err.Error())
	}

	principal := principalFrom(c)
	if principal.TeamID == "" {
		return fail(c, http.StatusBadRequest, "team_required", "appraisals are imported into a team; set "+HeaderTeamID)
	}

	id, err := h.runs.Start(c.Request().Context(), runapp.AppraisalImportJob(h.importer, appraisalapp.ImportAppraisalsInput{
		Principal: principal,
		Rows:      req.Rows,
	}))
	if err != nil {
		return writeError(c, err, "failed to start import")
	}
	return c.JSON(http.StatusAccepted, apiResponse{Data: runStarted{RunID: id}})
}
