package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poofware/widget-service/internal/repositories"
)

func envOf(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestFromEnvDefaults(t *testing.T) {
	cfg, err := FromEnv(envOf(nil))
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, defaultAppPort, cfg.AppPort)
	assert.Equal(t, "http://localhost:"+defaultAppPort, cfg.AppUrl)
	assert.Equal(t, repositories.StoreDriverMemory, cfg.StoreDriver)
	assert.True(t, cfg.AutoMigrate)
	assert.False(t, cfg.LDFlag_SeedDbWithTestData)
	assert.False(t, cfg.LDFlag_CORSHighSecurity)
	assert.Equal(t, OrganizationName, cfg.OrganizationName)
}

func TestFromEnvSQLiteDefaultsPath(t *testing.T) {
	cfg, err := FromEnv(envOf(map[string]string{"STORE_DRIVER": "sqlite"}))
	require.NoError(t, err)
	assert.Equal(t, defaultSQLitePath, cfg.SQLitePath)
}

func TestFromEnvOverrides(t *testing.T) {
	cfg, err := FromEnv(envOf(map[string]string{
		"ENV":                    "staging",
		"APP_PORT":               "9090",
		"APP_URL_FROM_ANYWHERE":  "https://widgets.example.com",
		"STORE_DRIVER":           "postgres",
		"DB_URL":                 "postgres://u:p@db:5432/widgets",
		"AUTO_MIGRATE":           "false",
		"SEED_DB_WITH_TEST_DATA": "true",
		"CORS_HIGH_SECURITY":     "1",
	}))
	require.NoError(t, err)

	assert.Equal(t, "staging", cfg.Env)
	assert.Equal(t, "9090", cfg.AppPort)
	assert.Equal(t, "https://widgets.example.com", cfg.AppUrl)
	assert.Equal(t, repositories.StoreDriverPostgres, cfg.StoreDriver)
	assert.Equal(t, "postgres://u:p@db:5432/widgets", cfg.DBUrl)
	assert.False(t, cfg.AutoMigrate)
	assert.True(t, cfg.LDFlag_SeedDbWithTestData)
	assert.True(t, cfg.LDFlag_CORSHighSecurity)
}

func TestFromEnvRejectsBadValues(t *testing.T) {
	cases := map[string]map[string]string{
		"postgres without url": {"STORE_DRIVER": "postgres"},
		"unknown driver":       {"STORE_DRIVER": "mongo"},
		"port not numeric":     {"APP_PORT": "http"},
		"bad bool":             {"AUTO_MIGRATE": "sometimes"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := FromEnv(envOf(env))
			assert.Error(t, err)
		})
	}
}
