package configloader

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testConfig is a minimal configuration used to exercise the loader.
type testConfig struct {
	Server struct {
		Port int `koanf:"port"`
	} `koanf:"server"`
	CORS struct {
		Origin string `koanf:"origin"`
	} `koanf:"cors"`
}

func (c *testConfig) Validate() error {
	if c.Server.Port == 0 {
		return errors.New("server.port is required")
	}
	return nil
}

func Test_Load_FromSystemEnv(t *testing.T) {
	// given
	t.Setenv("TESTSVC_SERVER_PORT", "8080")
	t.Setenv("TESTSVC_CORS_ORIGIN", "http://localhost:3000")

	// when
	cfg, err := Load[*testConfig]("testsvc", nil)

	// then
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "http://localhost:3000", cfg.CORS.Origin)
}

func Test_Load_AliasOverridesPrefixedEnv(t *testing.T) {
	// given
	t.Setenv("TESTSVC_SERVER_PORT", "8080")
	t.Setenv("TESTSVC_CORS_ORIGIN", "http://localhost:3000")
	t.Setenv("FRONTEND_URL", "https://shop.example.com")

	// when
	cfg, err := Load[*testConfig]("testsvc", map[string]string{"FRONTEND_URL": "cors.origin"})

	// then
	require.NoError(t, err)
	assert.Equal(t, "https://shop.example.com", cfg.CORS.Origin, "alias should take priority over the prefixed variable")
}

func Test_Load_AliasUnsetFallsBack(t *testing.T) {
	// given
	t.Setenv("TESTSVC_SERVER_PORT", "8080")
	t.Setenv("TESTSVC_CORS_ORIGIN", "http://localhost:3000")

	// when - the alias is declared but FRONTEND_URL is not set
	cfg, err := Load[*testConfig]("testsvc", map[string]string{"FRONTEND_URL": "cors.origin"})

	// then
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:3000", cfg.CORS.Origin)
}

func Test_Load_ValidationFailure(t *testing.T) {
	// given - no configuration sources at all

	// when
	_, err := Load[*testConfig]("missingsvc", nil)

	// then
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config validation failed")
}
