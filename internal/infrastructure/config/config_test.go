package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var managedEnv = []string{
	"ERP_APP_NAME", "ERP_APP_ENV", "ERP_APP_PORT",
	"ERP_DATABASE_HOST", "ERP_DATABASE_PORT", "ERP_DATABASE_USER", "ERP_DATABASE_PASSWORD",
	"ERP_DATABASE_DBNAME", "ERP_DATABASE_SSLMODE", "ERP_DATABASE_MAX_OPEN_CONNS", "ERP_DATABASE_MAX_IDLE_CONNS",
	"ERP_IDEMPOTENCY_ENABLED", "ERP_IDEMPOTENCY_TTL", "ERP_ADVANCE_COMPARE_DIGITS",
	"ERP_ADVANCE_EXCLUDED_METHOD_CODES", "ERP_TELEMETRY_SAMPLING_RATIO", "ERP_TELEMETRY_DB_LOG_FULL_SQL",
	"ERP_PROFILING_ENABLED", "ERP_PROFILING_PROFILE_TYPES",
}

// clearEnv unsets the managed variables for the duration of the test
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range managedEnv {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func TestLoad(t *testing.T) {
	t.Run("loads default values when env vars not set", func(t *testing.T) {
		clearEnv(t)

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "sale-workflow", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "sale_workflow", cfg.Database.DBName)
		assert.Equal(t, 25, cfg.Database.MaxOpenConns)
		assert.Equal(t, 5, cfg.Database.MaxIdleConns)
		assert.True(t, cfg.Idempotency.Enabled)
		assert.Equal(t, 24*time.Hour, cfg.Idempotency.TTL)
		assert.Equal(t, int32(2), cfg.Advance.CompareDigits)
		assert.Empty(t, cfg.Advance.ExcludedMethodCodes)
		assert.Equal(t, "sale-workflow", cfg.Telemetry.ServiceName)
		assert.False(t, cfg.Profiling.Enabled)
		assert.True(t, cfg.Profiling.SpanProfiles)
		assert.Equal(t, "sale-workflow", cfg.Profiling.ApplicationName)
		assert.Equal(t, []string{"cpu", "alloc_space", "inuse_space", "goroutines"}, cfg.Profiling.ProfileTypes)
	})

	t.Run("loads values from environment variables with ERP prefix", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("ERP_APP_NAME", "test-app")
		t.Setenv("ERP_APP_PORT", "9000")
		t.Setenv("ERP_DATABASE_HOST", "testdb.local")
		t.Setenv("ERP_DATABASE_PORT", "5433")
		t.Setenv("ERP_DATABASE_MAX_OPEN_CONNS", "50")
		t.Setenv("ERP_DATABASE_MAX_IDLE_CONNS", "10")
		t.Setenv("ERP_IDEMPOTENCY_ENABLED", "false")
		t.Setenv("ERP_IDEMPOTENCY_TTL", "1h")
		t.Setenv("ERP_ADVANCE_COMPARE_DIGITS", "3")
		t.Setenv("ERP_ADVANCE_EXCLUDED_METHOD_CODES", "sepa_direct_debit check")
		t.Setenv("ERP_PROFILING_ENABLED", "true")
		t.Setenv("ERP_PROFILING_PROFILE_TYPES", "cpu mutex")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "test-app", cfg.App.Name)
		assert.Equal(t, "9000", cfg.App.Port)
		assert.Equal(t, "testdb.local", cfg.Database.Host)
		assert.Equal(t, 5433, cfg.Database.Port)
		assert.Equal(t, 50, cfg.Database.MaxOpenConns)
		assert.Equal(t, 10, cfg.Database.MaxIdleConns)
		assert.False(t, cfg.Idempotency.Enabled)
		assert.Equal(t, time.Hour, cfg.Idempotency.TTL)
		assert.Equal(t, int32(3), cfg.Advance.CompareDigits)
		assert.Equal(t, []string{"sepa_direct_debit", "check"}, cfg.Advance.ExcludedMethodCodes)
		assert.True(t, cfg.Profiling.Enabled)
		assert.Equal(t, []string{"cpu", "mutex"}, cfg.Profiling.ProfileTypes)
	})

	t.Run("validates MaxIdleConns cannot exceed MaxOpenConns", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("ERP_DATABASE_MAX_OPEN_CONNS", "10")
		t.Setenv("ERP_DATABASE_MAX_IDLE_CONNS", "20")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot exceed")
	})

	t.Run("validates sampling ratio", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("ERP_TELEMETRY_SAMPLING_RATIO", "1.5")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "sampling_ratio")
	})

	t.Run("validates compare digits", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("ERP_ADVANCE_COMPARE_DIGITS", "9")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "compare_digits")
	})
}

func TestLoad_ConfigFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	toml := `
[app]
name = "advance-api"

[database]
host = "db.internal"

[advance]
excluded_method_codes = ["manual", "check"]
compare_digits = 4
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(toml), 0o600))
	t.Chdir(dir)
	t.Setenv("ERP_DATABASE_HOST", "env-db")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "advance-api", cfg.App.Name)
	assert.Equal(t, "advance-api", cfg.Telemetry.ServiceName)
	assert.Equal(t, "env-db", cfg.Database.Host)
	assert.Equal(t, []string{"manual", "check"}, cfg.Advance.ExcludedMethodCodes)
	assert.Equal(t, int32(4), cfg.Advance.CompareDigits)
	assert.Equal(t, 15*time.Second, cfg.HTTP.ReadTimeout)
}

func TestLoad_CommaSeparatedList(t *testing.T) {
	clearEnv(t)
	t.Setenv("ERP_ADVANCE_EXCLUDED_METHOD_CODES", "manual,check")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"manual", "check"}, cfg.Advance.ExcludedMethodCodes)
}

func TestLoad_ProductionValidation(t *testing.T) {
	setValidProductionBase := func(t *testing.T) {
		clearEnv(t)
		t.Setenv("ERP_APP_ENV", "production")
		t.Setenv("ERP_DATABASE_PASSWORD", "secure-password")
		t.Setenv("ERP_DATABASE_SSLMODE", "require")
	}

	t.Run("requires database.password in production", func(t *testing.T) {
		setValidProductionBase(t)
		require.NoError(t, os.Unsetenv("ERP_DATABASE_PASSWORD"))

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database.password is required in production")
	})

	t.Run("requires SSL enabled in production", func(t *testing.T) {
		setValidProductionBase(t)
		t.Setenv("ERP_DATABASE_SSLMODE", "disable")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "sslmode")
	})

	t.Run("rejects full SQL logging in production", func(t *testing.T) {
		setValidProductionBase(t)
		t.Setenv("ERP_TELEMETRY_DB_LOG_FULL_SQL", "true")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "db_log_full_sql")
	})

	t.Run("passes validation with valid production config", func(t *testing.T) {
		setValidProductionBase(t)

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "production", cfg.App.Env)
	})
}

func TestDatabaseConfig_DSN(t *testing.T) {
	t.Run("generates valid DSN", func(t *testing.T) {
		cfg := DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "testuser",
			Password: "testpass",
			DBName:   "testdb",
			SSLMode:  "disable",
		}

		dsn := cfg.DSN()
		assert.Contains(t, dsn, "localhost:5432")
		assert.Contains(t, dsn, "testuser")
		assert.Contains(t, dsn, "testdb")
		assert.Contains(t, dsn, "sslmode=disable")
	})

	t.Run("escapes special characters in password", func(t *testing.T) {
		cfg := DatabaseConfig{Host: "localhost", Port: 5432, User: "user", Password: "pass@word#123", DBName: "db", SSLMode: "disable"}
		assert.Contains(t, cfg.DSN(), "pass%40word%23123")
	})
}

func TestRedisConfig_Addr(t *testing.T) {
	cfg := RedisConfig{Host: "cache", Port: 6380}
	assert.Equal(t, "cache:6380", cfg.Addr())
}
