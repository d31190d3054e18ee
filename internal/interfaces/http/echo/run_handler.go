package echo

import (
	"net/http"

	"github.com/labstack/echo/v4"

	runapp "github.com/mohammadpnp/appraisal-import/internal/application/run"
)

type RunHandler struct {
	getRun runapp.GetRun
}

func NewRunHandler(getRun runapp.GetRun) *RunHandler {
	return &RunHandler{getRun: getRun}
}

func (h *RunHandler) GetRun(c echo.Context) error {
	out, err := h.getRun.Execute(c.Request().Context(), runapp.GetRunInput{
		Principal: principalFrom(c),
		ID:        c.Param("id"),
	})
	if err != nil {
		return writeError(c, err, "failed to get run")
	}
	return c.JSON(http.StatusOK, apiResponse{Data: out})
}
