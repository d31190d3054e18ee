package roster

import "errors"

var (
	ErrNoRows        = errors.New("roster has no rows")
	ErrLoadDirectory = errors.New("failed to load tenant directory")
	ErrNoTargets     = errors.New("no selected users to invite")
)
