package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/studyslot/internal/models"
	"github.com/julianstephens/studyslot/internal/scheduler"
)

func isolateHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	return home
}

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	home := isolateHome(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, ".config", "studyslot", "studyslot.db"), cfg.Database)
	assert.False(t, cfg.Debug)
	assert.Empty(t, cfg.Timezone)

	cat, err := cfg.BuildCatalog()
	require.NoError(t, err)
	assert.Equal(t, scheduler.DefaultCatalog(), cat)
}

func TestLoadFromDefaultDir(t *testing.T) {
	home := isolateHome(t)
	dir := filepath.Join(home, ".config", "studyslot")
	require.NoError(t, os.MkdirAll(dir, 0700))
	writeConfig(t, dir, "debug: true\ntimezone: Asia/Seoul\n")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.True(t, cfg.Debug)
	assert.Equal(t, "Asia/Seoul", cfg.Timezone)
}

func TestLoadExplicitFile(t *testing.T) {
	isolateHome(t)
	path := writeConfig(t, t.TempDir(), `
database: /tmp/planner.db
catalog:
  days: [월, 화, wed]
  periods:
    - {start: "8시 30분", end: "9시 20분"}
    - {start: "0930", end: "1020"}
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/planner.db", cfg.Database)

	cat, err := cfg.BuildCatalog()
	require.NoError(t, err)
	assert.Equal(t, []models.Weekday{models.Monday, models.Tuesday, models.Wednesday}, cat.Days)
	assert.Equal(t, []models.TimeRange{
		{Start: "08:30", End: "09:20"},
		{Start: "09:30", End: "10:20"},
	}, cat.Periods)
	assert.Equal(t, 50, cat.LongestPeriodMin())
}

func TestLoadMissingExplicitFile(t *testing.T) {
	isolateHome(t)
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestEnvOverridesFile(t *testing.T) {
	isolateHome(t)
	path := writeConfig(t, t.TempDir(), "database: /tmp/file.db\ndebug: false\n")
	t.Setenv("STUDYSLOT_DATABASE", "keyring")
	t.Setenv("STUDYSLOT_DEBUG", "true")
	t.Setenv("STUDYSLOT_CATALOG_DAYS", "mon,fri")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "keyring", cfg.Database)
	assert.True(t, cfg.Debug)

	cat, err := cfg.BuildCatalog()
	require.NoError(t, err)
	assert.Equal(t, []models.Weekday{models.Monday, models.Friday}, cat.Days)
}

func TestInvalidTimezone(t *testing.T) {
	isolateHome(t)
	path := writeConfig(t, t.TempDir(), "timezone: Mars/Olympus\n")
	_, err := Load(path)
	assert.ErrorContains(t, err, "invalid timezone")
}

func TestBuildCatalogErrors(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{
			name: "weekend day",
			cfg:  Config{Catalog: CatalogConfig{Days: []string{"sat"}, Periods: []models.TimeRange{{Start: "09:00", End: "10:00"}}}},
			want: "catalog.days",
		},
		{
			name: "reversed period",
			cfg:  Config{Catalog: CatalogConfig{Days: []string{"mon"}, Periods: []models.TimeRange{{Start: "11:00", End: "10:00"}}}},
			want: "empty or reversed",
		},
		{
			name: "repeated day",
			cfg:  Config{Catalog: CatalogConfig{Days: []string{"mon", "월"}, Periods: []models.TimeRange{{Start: "09:00", End: "10:00"}}}},
			want: "more than once",
		},
		{
			name: "overlapping periods",
			cfg:  Config{Catalog: CatalogConfig{Days: []string{"mon"}, Periods: []models.TimeRange{{Start: "09:00", End: "10:00"}, {Start: "9", End: "10"}}}},
			want: "overlaps",
		},
		{
			name: "no periods",
			cfg:  Config{Catalog: CatalogConfig{Days: []string{"mon"}}},
			want: "no periods",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.cfg.BuildCatalog()
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestExpandHome(t *testing.T) {
	home := isolateHome(t)
	assert.Equal(t, filepath.Join(home, "x.db"), ExpandHome("~/x.db"))
	assert.Equal(t, "/abs/x.db", ExpandHome("/abs/x.db"))
	assert.Equal(t, "postgres://u@h/db", ExpandHome("postgres://u@h/db"))
}
