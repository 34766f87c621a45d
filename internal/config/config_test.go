package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "burrow.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const validConfig = `
version: "1.0"
workspace: ws-1
redis:
  addr: localhost:6379
platform:
  base_url: https://api.example.com
  token_env: BURROW_TOKEN
generator:
  base_url: https://gen.example.com/v1
  model: gen-large
  api_key_env: BURROW_GEN_KEY
`

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, validConfig))
	require.NoError(t, err)

	assert.Equal(t, "1.0", cfg.Version)
	assert.Equal(t, "ws-1", cfg.Workspace)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, "https://api.example.com", cfg.Platform.BaseURL)
	assert.True(t, cfg.Generator.Enabled())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config")
}

func TestLoadRejectsInvalid(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"wrong version", `
version: "2.0"
redis: {addr: localhost:6379}
platform: {base_url: https://api.example.com, token_env: T}
`},
		{"missing redis addr", `
version: "1.0"
redis: {}
platform: {base_url: https://api.example.com, token_env: T}
`},
		{"missing platform token env", `
version: "1.0"
redis: {addr: localhost:6379}
platform: {base_url: https://api.example.com}
`},
		{"generator url without model", `
version: "1.0"
redis: {addr: localhost:6379}
platform: {base_url: https://api.example.com, token_env: T}
generator: {base_url: https://gen.example.com}
`},
		{"not yaml", `{{{{`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tc.content))
			assert.Error(t, err)
		})
	}
}

func TestGeneratorOptional(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
version: "1.0"
redis: {addr: localhost:6379}
platform: {base_url: https://api.example.com, token_env: BURROW_TOKEN}
`))
	require.NoError(t, err)
	assert.False(t, cfg.Generator.Enabled())
	assert.Empty(t, cfg.Generator.APIKey())
}

func TestToken(t *testing.T) {
	c := PlatformConfig{TokenEnv: "BURROW_TEST_TOKEN"}

	t.Run("unset", func(t *testing.T) {
		_, err := c.Token()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "BURROW_TEST_TOKEN")
	})

	t.Run("set", func(t *testing.T) {
		t.Setenv("BURROW_TEST_TOKEN", "tok-123")
		token, err := c.Token()
		require.NoError(t, err)
		assert.Equal(t, "tok-123", token)
	})
}

func TestAPIKey(t *testing.T) {
	c := GeneratorConfig{APIKeyEnv: "BURROW_TEST_GEN_KEY"}
	t.Setenv("BURROW_TEST_GEN_KEY", "gen-key")
	assert.Equal(t, "gen-key", c.APIKey())
}
