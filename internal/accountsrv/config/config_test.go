package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nimbusworks/nimbus/internal/accountsrv/account"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "accountsrv.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestConfigDefaults(t *testing.T) {
	TestInit()
	t.Cleanup(TestInit)

	cfg := Config()
	assert.Equal(t, "accountsrv", cfg.ServiceName)
	assert.Equal(t, account.LatestContainerJSONVersion, cfg.ContainerSchemaVersion)

	codec, err := cfg.Codec()
	require.NoError(t, err)
	assert.Equal(t, account.LatestContainerJSONVersion, codec.ContainerVersion())
}

func TestLoadConfig(t *testing.T) {
	t.Cleanup(TestInit)

	path := writeConfig(t, `
service_name = "accountsrv-test"
container_schema_version = 1

[cloud]
bucket = "nimbus-blobs"
region = "us-west-2"
endpoint = "http://localhost:9000"
`)
	require.NoError(t, LoadConfig(path))

	cfg := Config()
	assert.Equal(t, "accountsrv-test", cfg.ServiceName)
	assert.Equal(t, 1, cfg.ContainerSchemaVersion)
	assert.Equal(t, "nimbus-blobs", cfg.Cloud.Bucket)
	assert.Equal(t, "us-west-2", cfg.Cloud.Region)
	assert.Equal(t, "http://localhost:9000", cfg.Cloud.Endpoint)

	codec, err := cfg.Codec()
	require.NoError(t, err)
	assert.Equal(t, 1, codec.ContainerVersion())
}

func TestLoadConfigAppliesDefaults(t *testing.T) {
	t.Cleanup(TestInit)

	path := writeConfig(t, `service_name = "custom"`)
	require.NoError(t, LoadConfig(path))
	assert.Equal(t, "custom", Config().ServiceName)
	assert.Equal(t, account.LatestContainerJSONVersion, Config().ContainerSchemaVersion)
}

func TestLoadConfigErrors(t *testing.T) {
	t.Cleanup(TestInit)

	assert.Error(t, LoadConfig(filepath.Join(t.TempDir(), "missing.toml")))

	assert.Error(t, LoadConfig(writeConfig(t, `service_name = `)))
	assert.Error(t, LoadConfig(writeConfig(t, `service_name = ""`)))
	assert.Error(t, LoadConfig(writeConfig(t, `container_schema_version = 3`)))
}
