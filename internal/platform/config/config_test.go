package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
version: "1.0"
mode: dev
server:
  addr: ":8443"
database:
  host: localhost
  port: 3306
  user: devoluciones
  password: secret
  dbname: devoluciones
services:
  loans_base_url: "https://prestamos.example.com/api/prestamos"
  inventory_base_url: "https://inventario.example.com/api/equipos"
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.Mode)
	assert.Equal(t, ":8443", cfg.Server.Addr)
	assert.Equal(t, "devoluciones", cfg.DB.Username)
	assert.Equal(t, 3306, cfg.DB.Port)
	assert.Equal(t, "https://prestamos.example.com/api/prestamos", cfg.Services.LoansBaseURL)
	// default when the file omits it
	assert.Equal(t, 10, cfg.Services.TimeoutSeconds)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PASSWORD", "fromenv")
	t.Setenv("LOANS_BASE_URL", "http://loans.internal/api/prestamos")

	cfg, err := Load(writeConfig(t, sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.DB.Host)
	assert.Equal(t, "fromenv", cfg.DB.Password)
	assert.Equal(t, "http://loans.internal/api/prestamos", cfg.Services.LoansBaseURL)
	// untouched values keep the file contents
	assert.Equal(t, "devoluciones", cfg.DB.DBName)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadBadYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "mode: [unclosed"))
	assert.Error(t, err)
}
