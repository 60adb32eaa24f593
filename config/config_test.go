package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testYAML = `
env:
  env: test
  serviceName: pizzeria
  log:
    pretty: true
    level: debug
http:
  port: 8080
bot:
  autoLoginAfterRegister: true
  sessionIdleTimeout: 30m
  orderListLimit: 5
viacep:
  baseUrl: https://viacep.com.br
  timeout: 5s
`

func writeTestConfig(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "test.yaml"), []byte(testYAML), 0o600))
	t.Chdir(dir)
}

func TestLoadWithEnv_FromYAML(t *testing.T) {
	writeTestConfig(t)

	cfg, err := LoadWithEnv[Config]("test")
	require.NoError(t, err)

	assert.Equal(t, "pizzeria", cfg.Env.ServiceName)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.True(t, cfg.Bot.AutoLoginAfterRegister)
	assert.Equal(t, 30*time.Minute, cfg.Bot.SessionIdleTimeout)
	assert.Equal(t, 5, cfg.Bot.OrderListLimit)
	require.NotNil(t, cfg.ViaCEP)
	assert.Equal(t, 5*time.Second, cfg.ViaCEP.Timeout)
	assert.Nil(t, cfg.AMQP)
}

func TestLoadWithEnv_EnvOverride(t *testing.T) {
	writeTestConfig(t)
	t.Setenv("BOT_ORDERLISTLIMIT", "9")
	t.Setenv("HTTP_PORT", "9090")

	cfg, err := LoadWithEnv[Config]("test")
	require.NoError(t, err)

	assert.Equal(t, 9, cfg.Bot.OrderListLimit)
	assert.Equal(t, 9090, cfg.HTTP.Port)
}

func TestLoadWithEnv_MissingFile(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := LoadWithEnv[Config]("nonexistent")
	require.Error(t, err)
}
