package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	// 当前目录没有 config.yaml，全部使用默认值
	cfg, err := Load("")
	require.NoError(t, err)

	require.Equal(t, "forum", cfg.App.Name)
	require.Equal(t, "memory", cfg.Database.Type)
	require.Equal(t, 3, cfg.Database.Retry.MaxAttempts)
	require.Equal(t, 100*time.Millisecond, cfg.Database.Retry.InitialDelay)
	require.True(t, cfg.IsDevelopment())
	t.Log("✓ 默认配置加载成功")
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestLoadFromFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte(`
app:
  env: production
database:
  type: sqlite
  sqlite_path: /tmp/forum-test.db
server:
  port: "9090"
`)
	require.NoError(t, os.WriteFile(path, content, 0o644))
	t.Setenv("FORUM_SERVER_PORT", "7070")

	cfg, err := Load(path)
	require.NoError(t, err)

	require.True(t, cfg.IsProduction())
	require.Equal(t, "sqlite", cfg.Database.Type)
	require.Equal(t, "/tmp/forum-test.db", cfg.Database.SQLitePath)
	require.Equal(t, "7070", cfg.Server.Port, "环境变量优先于配置文件")
}

func TestValidate(t *testing.T) {
	cfg := &Config{Database: DatabaseConfig{Type: "mongodb"}}
	require.Error(t, cfg.Validate())

	cfg = &Config{Database: DatabaseConfig{Type: "postgres"}}
	require.NoError(t, cfg.Validate())

	cfg = &Config{Database: DatabaseConfig{Type: "sqlite"}}
	require.Error(t, cfg.Validate())

	cfg = &Config{Database: DatabaseConfig{Type: "memory"}, Server: ServerConfig{RateLimit: RateLimitConfig{Enabled: true}}}
	require.Error(t, cfg.Validate())

	cfg = &Config{Database: DatabaseConfig{Type: "memory"}, Tracing: TracingConfig{Enabled: true, Exporter: "zipkin"}}
	require.Error(t, cfg.Validate())

	cfg = &Config{Database: DatabaseConfig{Type: "memory"}}
	require.NoError(t, cfg.Validate())
}
