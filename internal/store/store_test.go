package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m-aljasem/Sample-Size-Calculator/internal/config"
)

func TestOpen_Disabled(t *testing.T) {
	st, err := Open(context.Background(), config.StoreConfig{})
	require.NoError(t, err)
	assert.Nil(t, st)
}

func TestOpen_SQLite(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "open.db")

	st, err := Open(ctx, config.StoreConfig{Driver: "sqlite", DatabaseURL: dsn})
	require.NoError(t, err)
	require.NotNil(t, st)
	t.Cleanup(func() { st.Close() }) //nolint:errcheck

	// Migrated on open.
	require.NoError(t, st.SetPreference(ctx, "theme", "light"))
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := Open(context.Background(), config.StoreConfig{Driver: "mongo"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported driver: mongo")
}

func TestOpen_PostgresBadURL(t *testing.T) {
	_, err := Open(context.Background(), config.StoreConfig{Driver: "postgres", DatabaseURL: "://bad"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "postgres: parse config")
}

func TestScenarioFilter_Defaults(t *testing.T) {
	assert.Equal(t, defaultListLimit, ScenarioFilter{}.limit())
	assert.Equal(t, 5, ScenarioFilter{Limit: 5}.limit())
	assert.Equal(t, 0, ScenarioFilter{Offset: -3}.offset())
}
