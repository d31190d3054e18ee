package echo

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/mohammadpnp/appraisal-import/internal/application/ingest"
	appraisaldomain "github.com/mohammadpnp/appraisal-import/internal/domain/appraisal"
	rosterdomain "github.com/mohammadpnp/appraisal-import/internal/domain/roster"
	"github.com/mohammadpnp/appraisal-import/internal/infrastructure/file"
)

const uploadField = "file"

var errBadRequest = errors.New("bad request")

type rowsRequest struct {
	Rows json.RawMessage `json:"rows"`
}

type importAppraisalsRequest struct {
	Rows []appraisaldomain.ValidationResult `json:"rows" validate:"required,min=1"`
}

func (r *importAppraisalsRequest) Validate() error {
	return formatValidationError(ingest.Validator().Struct(r))
}

type inviteUsersRequest struct {
	Users []rosterdomain.ParsedUser `json:"users" validate:"required,min=1,max=1000"`
}

func (r *inviteUsersRequest) Validate() error {
	for i := range r.Users {
		r.Users[i].Email = strings.ToLower(strings.TrimSpace(r.Users[i].Email))
	}
	return formatValidationError(ingest.Validator().Struct(r))
}

func formatValidationError(err error) error {
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return fmt.Errorf("%w: %s failed %q", errBadRequest, strings.ToLower(fe.Field()), fe.Tag())
	}
	return fmt.Errorf("%w: %v", errBadRequest, err)
}

// readUploadRows accepts either a multipart file upload or a JSON body of
// the form {"rows": [{...}, ...]}.
func readUploadRows(c echo.Context) ([]ingest.RawRow, error) {
	if strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm) {
		header, err := c.FormFile(uploadField)
		if err != nil {
			return nil, fmt.Errorf("%w: multipart field %q is required", errBadRequest, uploadField)
		}
		format, err := file.DetectFormat(header.Filename)
		if err != nil {
			return nil, err
		}
		src, err := header.Open()
		if err != nil {
			return nil, fmt.Errorf("open upload: %w", err)
		}
		defer src.Close()
		return file.ReadRows(format, src)
	}

	var req rowsRequest
	if err := c.Bind(&req); err != nil {
		return nil, fmt.Errorf("%w: invalid request body", errBadRequest)
	}
	if len(req.Rows) == 0 {
		return nil, fmt.Errorf("%w: rows is required", errBadRequest)
	}
	rows, err := file.ReadRows(file.FormatJSON, bytes.NewReader(req.Rows))
	if errors.Is(err, file.ErrMissingHeader) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: rows must be an array of objects", errBadRequest)
	}
	return rows, nil
}
