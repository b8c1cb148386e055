package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, RegisterModePending, cfg.Auth.RegisterMode)
	assert.Equal(t, 15*time.Minute, cfg.JWT.AccessTTL)
	assert.Equal(t, 7*24*time.Hour, cfg.JWT.RefreshTTL)
	assert.Equal(t, 24*time.Hour, cfg.Auth.VerificationTTL)
	assert.Equal(t, 7*24*time.Hour, cfg.Auth.InvitationTTL)
}

func TestLoad_RegisterModeInvalido(t *testing.T) {
	t.Setenv("AUTH_REGISTER_MODE", "instant")
	_, err := Load()
	assert.Error(t, err, "un modo de registro desconocido debe rechazarse al arrancar")
}

func TestLoad_RegisterModeTokens(t *testing.T) {
	t.Setenv("AUTH_REGISTER_MODE", RegisterModeTokens)
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, RegisterModeTokens, cfg.Auth.RegisterMode)
}

// getDuration acepta formato Go y minutos como entero.
func TestGetDuration(t *testing.T) {
	v := viper.New()
	v.Set("TTL_GO", "36h")
	v.Set("TTL_MIN", "30")
	v.Set("TTL_BASURA", "no-es-duracion")

	assert.Equal(t, 36*time.Hour, getDuration(v, "TTL_GO", time.Minute))
	assert.Equal(t, 30*time.Minute, getDuration(v, "TTL_MIN", time.Minute))
	assert.Equal(t, time.Minute, getDuration(v, "TTL_BASURA", time.Minute))
	assert.Equal(t, time.Minute, getDuration(v, "NO_EXISTE", time.Minute))
}

func TestDBConfig_DSN(t *testing.T) {
	dsn := DBConfig{
		Host: "localhost", Port: 5432,
		User: "postgres", Password: "p@ss:word",
		DBName: "identidad", SSLMode: "disable",
	}.DSN()
	assert.Contains(t, dsn, "postgres://")
	assert.Contains(t, dsn, "p%40ss%3Aword", "la contraseña debe ir URL-encoded")

	withURL := DBConfig{DatabaseURL: "postgresql://u:p@host/db"}
	assert.Equal(t, "postgresql://u:p@host/db", withURL.ConnectionString())
}
