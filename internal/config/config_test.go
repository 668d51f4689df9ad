package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "")
	t.Setenv("API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "gk-test")
	t.Setenv("REPORT_TIMEOUT_SECONDS", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, BackendSQLite, cfg.Storage.Backend)
	assert.Equal(t, "gk-test", cfg.Report.APIKey)
	assert.Equal(t, "gemini-2.5-flash", cfg.Report.Model)
	assert.Zero(t, cfg.Report.Timeout())
	assert.False(t, cfg.Archive.Enabled())
}

func TestLoadRejectsUnknownBackend(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "mongo")
	_, err := Load()
	assert.Error(t, err)
}

func TestReportTimeout(t *testing.T) {
	assert.Equal(t, 15*time.Second, ReportConfig{TimeoutSeconds: 15}.Timeout())
}

func TestAppLocationFallsBackToUTC(t *testing.T) {
	assert.Equal(t, time.UTC, AppConfig{Timezone: "Nowhere/Invalid"}.Location())
	assert.Equal(t, time.UTC, AppConfig{}.Location())
}

func TestParseProfileOverlaysDefaults(t *testing.T) {
	profile, err := ParseProfile([]byte(`
short_name: CDCE Sucre
responsible: ING. Ana Díaz
departments:
  - Informatica
  - Despacho
`))
	require.NoError(t, err)
	assert.Equal(t, "CDCE Sucre", profile.ShortName)
	assert.Equal(t, "ING. Ana Díaz", profile.Responsible)
	assert.Equal(t, "Encargado de Sala de Informática", profile.ResponsibleRole)
	assert.Equal(t, []string{"Informatica", "Despacho"}, profile.Departments)
}

func TestLoadProfileFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.yaml")
	require.NoError(t, os.WriteFile(path, []byte("region: Estado Sucre, Venezuela\n"), 0o600))

	profile, err := LoadProfile(path)
	require.NoError(t, err)
	assert.Equal(t, "Estado Sucre, Venezuela", profile.Region)
	assert.Len(t, profile.Departments, 25)

	_, err = LoadProfile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
