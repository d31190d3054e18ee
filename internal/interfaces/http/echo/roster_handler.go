package echo

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	rosterapp "github.com/mohammadpnp/appraisal-import/internal/application/roster"
	runapp "github.com/mohammadpnp/appraisal-import/internal/application/run"
	rosterdomain "github.com/mohammadpnp/appraisal-import/internal/domain/roster"
)

type RosterHandler struct {
	parse  rosterapp.ParseRoster
	invite rosterapp.InviteSelected
	runs   RunStarter
}

func NewRosterHandler(parse rosterapp.ParseRoster, invite rosterapp.InviteSelected, runs RunStarter) *RosterHandler {
	return &RosterHandler{parse: parse, invite: invite, runs: runs}
}

func (h *RosterHandler) Preview(c echo.Context) error {
	rows, err := readUploadRows(c)
	if errors.Is(err, errBadRequest) {
		return fail(c, http.StatusBadRequest, "invalid_request", err.Error())
	}
	if err != nil {
		return writeError(c, err, "failed to read upload")
	}

	users, err := h.parse.Execute(c.Request().Context(), rosterapp.ParseRosterInput{
		Principal: principalFrom(c),
		Rows:      rows,
	})
	if err != nil {
		return writeError(c, err, "failed to parse roster")
	}
	return c.JSON(http.StatusOK, apiResponse{Data: users})
}

// Invite starts a bulk invitation run for the selected users. The run
// revalidates them before anything is sent.
func (h *RosterHandler) Invite(c echo.Context) error {
	var req inviteUsersRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid_request", "invalid request body")
	}
	if err := req.Validate(); err != nil {
		return fail(c, http.StatusBadRequest, "invalid_request", err.Error())
	}
	if !anySelected(req.Users) {
		return writeError(c, rosterapp.ErrNoTargets, "")
	}

	id, err := h.runs.Start(c.Request().Context(), runapp.BulkInviteJob(h.invite, rosterapp.InviteSelectedInput{
		Principal: principalFrom(c),
		Users:     req.Users,
	}))
	if err != nil {
		return writeError(c, err, "failed to start invitations")
	}
	return c.JSON(http.StatusAccepted, apiResponse{Data: runStarted{RunID: id}})
}

func anySelected(users []rosterdomain.ParsedUser) bool {
	for _, u := range users {
		if u.IsSelected {
			return true
		}
	}
	return false
}
