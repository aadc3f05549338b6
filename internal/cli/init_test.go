package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"gastos/internal/config"
	"gastos/internal/log"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := SetupLogger(&config.Config{LogLevel: "warn"}, &buf)

	logger.Info("hidden")
	logger.Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestLoadAndValidateConfig(t *testing.T) {
	t.Setenv("DATA_BACKEND", "memory")
	t.Setenv("LOG_LEVEL", "info")
	t.Setenv("AMQP_URL", "")
	cfg, err := LoadAndValidateConfig()
	require.NoError(t, err)
	assert.Equal(t, "memory", cfg.DataBackend)

	t.Setenv("DATA_BACKEND", "sheets")
	_, err = LoadAndValidateConfig()
	assert.Error(t, err)
}

func TestInitGateway(t *testing.T) {
	cfg := &config.Config{DataBackend: "json", DataFile: filepath.Join(t.TempDir(), "gastos.json")}
	res, err := InitGateway(context.Background(), log.Discard(), cfg)
	require.NoError(t, err)
	got, err := res.Gateway.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = InitGateway(context.Background(), log.Discard(), &config.Config{DataBackend: "sqlite"})
	assert.Error(t, err)
}

func TestInitPublisherDisabled(t *testing.T) {
	pub, closeFn := InitPublisher(log.Discard(), &config.Config{})
	assert.Nil(t, pub)
	require.NotNil(t, closeFn)
	closeFn()
}
