package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("MONGO_URI", "")
	t.Setenv("MONGO_HOST", "")
	t.Setenv("RESTCOUNTRIES_API_BASE_URL", "")
	t.Setenv("FEATURED_COUNT", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://restcountries.com/v3.1", cfg.RestCountriesAPIBaseURL)
	assert.Equal(t, 60, cfg.RestCountriesMaxRequests)
	assert.Equal(t, time.Minute, cfg.RestCountriesPerDuration)
	assert.Equal(t, 10*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, "", cfg.MongoURI)
	assert.Equal(t, "countries", cfg.DBCountries)
	assert.Equal(t, "users", cfg.CollectionUsers)
	assert.Equal(t, 6, cfg.FeaturedCount)
	assert.Equal(t, "0 1 * * *", cfg.FeaturedCron)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("MONGO_URI", "")
	t.Setenv("MONGO_HOST", "mongo")
	t.Setenv("MONGO_PORT", "")
	t.Setenv("HTTP_TIMEOUT", "3s")
	t.Setenv("FEATURED_COUNT", "4")
	t.Setenv("SESSION_JWT_SECRET", "s3cret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "mongodb://mongo:27017", cfg.MongoURI)
	assert.Equal(t, 3*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 4, cfg.FeaturedCount)
	assert.Equal(t, "s3cret", cfg.SessionJWTSecret)
}

func TestLoad_InvalidNumbers(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"bad int", "WORKER_COUNT", "many"},
		{"bad duration", "HTTP_TIMEOUT", "soon"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Chdir(t.TempDir())
			t.Setenv("CONFIG_FILE", "")
			t.Setenv(tt.key, tt.val)

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.key)
		})
	}
}

func TestLoadFile_ExpandsEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
restcountries_api_base_url: http://localhost:9999
http_timeout: 2s
mongo_uri: ${TEST_MONGO_URI}
featured_count: 3
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv("TEST_MONGO_URI", "mongodb://example:27017")

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:9999", cfg.RestCountriesAPIBaseURL)
	assert.Equal(t, 2*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, "mongodb://example:27017", cfg.MongoURI)
	assert.Equal(t, 3, cfg.FeaturedCount)
	assert.Equal(t, "users", cfg.CollectionUsers)
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config file")
}
