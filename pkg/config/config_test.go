package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/fuel-dashboard-api/pkg/config"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("HTTP_PORT", "")
	t.Setenv("REDIS_ADDR", "")
	t.Setenv("JWT_EXPIRATION_MINUTES", "")
	t.Setenv("APP_ENV", "")
	t.Setenv("HTTP_HOST", "")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.False(t, cfg.Redis.Enabled(), "sin REDIS_ADDR la caché queda desactivada")
	assert.Equal(t, 60*24*7, cfg.JWT.Expiration)
}

func TestLoad_DesdeEntorno(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("DASHBOARD_CACHE_TTL_SECONDS", "45")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "s3cret", cfg.JWT.Secret)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, 45*time.Second, cfg.Redis.DashboardTTL())
	assert.NoError(t, cfg.Validate())
}

func TestValidate_SinSecret(t *testing.T) {
	cfg := &config.Config{JWT: config.JWTConfig{Expiration: 60}}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestDBConfig_DSNEscapaPassword(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss/word", DBName: "fuel", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%2Fword@db:5432/fuel?sslmode=disable", c.DSN())

	c.DatabaseURL = "postgres://override"
	assert.Equal(t, "postgres://override", c.ConnectionString())
}
