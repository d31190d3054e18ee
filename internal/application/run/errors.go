package run

import "errors"

var (
	ErrInvalidRunID = errors.New("invalid run id")
	ErrRunNotFound  = errors.New("run not found")
	ErrGetRun       = errors.New("failed to get run")
	ErrCreateRun    = errors.New("failed to create run")
)
