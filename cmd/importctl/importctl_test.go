package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mohammadpnp/appraisal-import/internal/infrastructure/file"
)

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestAppraisalsCommand(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "appraisals.csv", "Street Address,Date,Vendor,Stage\n"+
		"12 Rata St,21/03/2024,J Smith,map\n"+
		",21/03/2024,,\n")

	out, err := runCmd(t, "appraisals", "appraisals.csv", "--base-dir", dir)
	require.NoError(t, err)

	var report struct {
		ValidCount   int `json:"valid_count"`
		InvalidCount int `json:"invalid_count"`
		Results      []struct {
			Row struct {
				Stage string `json:"stage"`
			} `json:"row"`
		} `json:"results"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, 1, report.ValidCount)
	assert.Equal(t, 1, report.InvalidCount)
	assert.Equal(t, "MAP", report.Results[0].Row.Stage)

	_, err = runCmd(t, "appraisals", "appraisals.csv", "--base-dir", dir, "--fail-on-invalid", "--compact")
	require.ErrorIs(t, err, errInvalidRows)
}

func TestRosterCommand(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "roster.json", `[
		{"Name":"Ana Lee","Email":"ana@example.com","Role":"Admin"},
		{"Name":"Bo Chan","Email":"ana@example.com"}
	]`)

	out, err := runCmd(t, "roster", filepath.Join(dir, "roster.json"))
	require.NoError(t, err)

	var report rosterReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	require.Len(t, report.Users, 2)
	assert.Equal(t, 1, report.ValidCount)
	assert.Equal(t, "admin", report.Users[0].Role)
	assert.False(t, report.Users[1].IsValid)
}

func TestCommandsRejectUnsupportedFiles(t *testing.T) {
	t.Parallel()

	_, err := runCmd(t, "roster", "roster.pdf")
	require.ErrorIs(t, err, file.ErrUnsupportedFormat)

	_, err = runCmd(t, "appraisals")
	require.Error(t, err)
}
