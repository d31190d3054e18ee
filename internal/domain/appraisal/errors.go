package appraisal

import "errors"

// ErrPermissionDenied marks a write rejected by the store's access policy.
var ErrPermissionDenied = errors.New("permission denied")
