package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/mohammadpnp/appraisal-import/internal/domain/tenant"
)

var errInvalidRows = errors.New("file has invalid rows")

// offlinePrincipal stands in for a signed-in user when nothing is written.
var offlinePrincipal = tenant.Principal{UserID: "importctl", TenantID: "local"}

func writeReport(w io.Writer, report any, compact bool) error {
	enc := json.NewEncoder(w)
	if !compact {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
