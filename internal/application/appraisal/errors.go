package appraisal

import "errors"

var (
	ErrReadExistingKeys = errors.New("failed to read existing appraisals")
	ErrNoRows           = errors.New("no rows to preview")
)
