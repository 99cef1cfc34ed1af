package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8111", cfg.Server.Port)
	assert.Equal(t, "memory", cfg.Store.Backend)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.NotEmpty(t, cfg.Server.AllowedOrigins)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("FINCOACH_SERVER_PORT", "9999")
	t.Setenv("FINCOACH_STORE_BACKEND", "firestore")
	t.Setenv("FINCOACH_STORE_PROJECT_ID", "demo-project")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9999", cfg.Server.Port)
	assert.Equal(t, "firestore", cfg.Store.Backend)
	assert.Equal(t, "demo-project", cfg.Store.ProjectID)
}

func TestLoadRejectsBadBackend(t *testing.T) {
	t.Setenv("FINCOACH_STORE_BACKEND", "dynamo")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown store backend")
}

func TestLoadFirestoreRequiresProject(t *testing.T) {
	t.Setenv("FINCOACH_STORE_BACKEND", "firestore")
	t.Setenv("FINCOACH_STORE_PROJECT_ID", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "project_id")
}
