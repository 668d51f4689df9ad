package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("STORAGE_BACKEND", "sqlite")
	t.Setenv("SQLITE_PATH", filepath.Join(dir, "cdce.db"))
	t.Setenv("API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("INSTITUTION_PROFILE", "")
	t.Setenv("LOG_LEVEL", "error")
	return dir
}

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := run(context.Background(), args, &out, io.Discard)
	return out.String(), err
}

func TestSubcommandHelpGoesToStderr(t *testing.T) {
	setupEnv(t)
	var stdout, stderr bytes.Buffer

	err := run(context.Background(), []string{"backup", "-h"}, &stdout, &stderr)
	require.ErrorIs(t, err, pflag.ErrHelp)
	assert.Empty(t, stdout.String())
	assert.Contains(t, stderr.String(), "--output")

	stderr.Reset()
	err = run(context.Background(), []string{"report", "--bogus"}, &stdout, &stderr)
	require.Error(t, err)
	assert.Contains(t, stderr.String(), "unknown flag: --bogus")
}

func TestUsage(t *testing.T) {
	out, err := runCmd(t)
	require.NoError(t, err)
	assert.Contains(t, out, "usage: cdcectl")

	_, err = runCmd(t, "frobnicate")
	assert.Error(t, err)
}

func TestBackupRestoreRoundTrip(t *testing.T) {
	dir := setupEnv(t)
	backupPath := filepath.Join(dir, "backup.json")

	_, err := runCmd(t, "backup", "-o", backupPath)
	require.NoError(t, err)

	raw, err := os.ReadFile(backupPath)
	require.NoError(t, err)
	var doc map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.Contains(t, doc, "tickets")
	assert.Contains(t, doc, "inventory")

	empty := filepath.Join(dir, "empty.json")
	require.NoError(t, os.WriteFile(empty, []byte(`{"tickets":[],"inventory":[]}`), 0o644))
	out, err := runCmd(t, "restore", empty)
	require.NoError(t, err)
	assert.Contains(t, out, "0 tickets, 0 items")

	out, err = runCmd(t, "restore", backupPath)
	require.NoError(t, err)
	assert.Contains(t, out, "4 tickets, 8 items")
}

func TestRestoreRejectsBadFile(t *testing.T) {
	dir := setupEnv(t)
	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"tickets":[]}`), 0o644))

	_, err := runCmd(t, "restore", bad)
	assert.Error(t, err)

	_, err = runCmd(t, "restore")
	assert.Error(t, err)
}

func TestExportCommands(t *testing.T) {
	dir := setupEnv(t)

	pdfPath := filepath.Join(dir, "history.pdf")
	_, err := runCmd(t, "export", "history", "--format", "pdf", "-o", pdfPath)
	require.NoError(t, err)
	raw, err := os.ReadFile(pdfPath)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(raw, []byte("%PDF")))

	out, err := runCmd(t, "export", "inventory", "--format", "email")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "mailto:?subject="))

	_, err = runCmd(t, "export", "tickets")
	assert.Error(t, err)
	_, err = runCmd(t, "export", "history", "--format", "whatsapp")
	assert.Error(t, err)
}

func TestReportWithoutKey(t *testing.T) {
	setupEnv(t)

	out, err := runCmd(t, "report", "--start", "2023-10-01", "--end", "2023-10-24")
	require.NoError(t, err)
	assert.Contains(t, out, "Periodo: 1/10/2023 - 24/10/2023")
	assert.Contains(t, out, "API_KEY no configurada")

	_, err = runCmd(t, "report", "--start", "not-a-date", "--end", "2023-10-24")
	assert.Error(t, err)
}

func TestSeedResetsData(t *testing.T) {
	dir := setupEnv(t)
	empty := filepath.Join(dir, "empty.json")
	require.NoError(t, os.WriteFile(empty, []byte(`{"tickets":[],"inventory":[]}`), 0o644))
	_, err := runCmd(t, "restore", empty)
	require.NoError(t, err)

	out, err := runCmd(t, "seed")
	require.NoError(t, err)
	assert.Equal(t, "seeded 4 tickets, 8 items\n", out)
}
